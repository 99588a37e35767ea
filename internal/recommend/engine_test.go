package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyguard/internal/models"
)

func balancedResult() models.AnalysisResult {
	return models.AnalysisResult{
		Ratio:           1.0,
		Anomaly:         false,
		AlertLevel:      models.AlertNormal,
		EfficiencyScore: 100.0,
		RecoveredKWh:    24.0,
		RemainingKWh:    6.0,
	}
}

func TestAnalyze_BalancedHomeReading(t *testing.T) {
	engine := NewEngine()

	reading := models.Reading{
		UsageKWh:           100,
		ExpectedKWh:        100,
		Sector:             models.SectorHome,
		TimeOfDay:          models.TimeDay,
		SunlightAvailable:  false,
		TemperatureCelsius: 20,
	}

	rec := engine.Analyze(reading, balancedResult())

	require.Len(t, rec.Reasons, 1)
	assert.Equal(t, "Energy usage is 1.00x expected", rec.Reasons[0])

	require.Len(t, rec.Actions, 3)
	assert.Equal(t, models.PriorityHigh, rec.Actions[0].Priority)
	assert.Equal(t, "Recover wasted electricity continuously (~24.00 kWh)", rec.Actions[0].Text)
	assert.Equal(t, models.PriorityHigh, rec.Actions[1].Priority)
	assert.Equal(t, "Reserve for system stability (~6.00 kWh)", rec.Actions[1].Text)
	assert.Equal(t, models.PriorityLow, rec.Actions[2].Priority)
	assert.Equal(t, "System operating optimally", rec.Actions[2].Text)

	assert.Equal(t, 30, rec.ConfidencePercent)
}

func TestAnalyze_CriticalFactoryReading(t *testing.T) {
	engine := NewEngine()

	reading := models.Reading{
		UsageKWh:           100,
		ExpectedKWh:        100,
		Sector:             models.SectorFactory,
		TimeOfDay:          models.TimeDay,
		SunlightAvailable:  true,
		TemperatureCelsius: 35,
	}

	result := models.AnalysisResult{
		Ratio:        1.0,
		Anomaly:      true,
		AlertLevel:   models.AlertCritical,
		RecoveredKWh: 24.0,
		RemainingKWh: 6.0,
	}

	rec := engine.Analyze(reading, result)

	// All five reasons fire, in fixed order.
	require.Len(t, rec.Reasons, 5)
	assert.Equal(t, "Energy usage is 1.00x expected", rec.Reasons[0])
	assert.Equal(t, "Sudden abnormal spike detected", rec.Reasons[1])
	assert.Equal(t, "High temperature increased cooling demand", rec.Reasons[2])
	assert.Equal(t, "Sunlight available but underutilized", rec.Reasons[3])
	assert.Equal(t, "High recoverable industrial losses", rec.Reasons[4])

	// 30 + 15 + 10 + 15 + 15
	assert.Equal(t, 85, rec.ConfidencePercent)

	require.Len(t, rec.Actions, 6)
	assert.Equal(t, models.PriorityHigh, rec.Actions[0].Priority)
	assert.Equal(t, models.PriorityHigh, rec.Actions[1].Priority)
	assert.Equal(t, models.Action{Priority: models.PriorityImmediate, Text: "Activate leak-capture line"}, rec.Actions[2])
	assert.Equal(t, models.Action{Priority: models.PriorityImmediate, Text: "Reduce non-essential loads"}, rec.Actions[3])
	assert.Equal(t, models.Action{Priority: models.PriorityHigh, Text: "Shift base load to renewable sources"}, rec.Actions[4])
	assert.Equal(t, models.Action{Priority: models.PriorityImmediate, Text: "Activate daylight-mirroring system"}, rec.Actions[5])
}

func TestAnalyze_WarningAction(t *testing.T) {
	engine := NewEngine()

	result := balancedResult()
	result.Ratio = 1.2
	result.AlertLevel = models.AlertWarning

	rec := engine.Analyze(models.Reading{UsageKWh: 120, ExpectedKWh: 100, Sector: models.SectorHome}, result)

	require.Len(t, rec.Actions, 3)
	assert.Equal(t, models.Action{Priority: models.PriorityMedium, Text: "Optimize operating schedule"}, rec.Actions[2])
}

func TestAnalyze_CriticalWithoutSunlightSkipsDaylightMirroring(t *testing.T) {
	engine := NewEngine()

	result := balancedResult()
	result.AlertLevel = models.AlertCritical

	rec := engine.Analyze(models.Reading{UsageKWh: 150, ExpectedKWh: 100, Sector: models.SectorHome}, result)

	require.Len(t, rec.Actions, 4)
	for _, action := range rec.Actions {
		assert.NotEqual(t, "Activate daylight-mirroring system", action.Text)
	}
}

func TestAnalyze_SunlightAtNightDoesNotFire(t *testing.T) {
	engine := NewEngine()

	reading := models.Reading{
		UsageKWh:          100,
		ExpectedKWh:       100,
		Sector:            models.SectorHome,
		TimeOfDay:         models.TimeNight,
		SunlightAvailable: true,
	}

	rec := engine.Analyze(reading, balancedResult())

	assert.NotContains(t, rec.Reasons, "Sunlight available but underutilized")
	assert.Equal(t, 30, rec.ConfidencePercent)
}

func TestAnalyze_UnknownSectorPassesThrough(t *testing.T) {
	engine := NewEngine()

	reading := models.Reading{
		UsageKWh:    100,
		ExpectedKWh: 100,
		Sector:      models.ParseSector("ocean"),
		TimeOfDay:   models.ParseTimeOfDay("dusk"),
	}

	rec := engine.Analyze(reading, balancedResult())

	// Unmatched enum values never error; they simply trigger nothing.
	require.Len(t, rec.Reasons, 1)
	assert.Equal(t, 30, rec.ConfidencePercent)
}

func TestAnalyze_ConfidenceMonotoneAndCapped(t *testing.T) {
	engine := NewEngine()

	type trigger struct {
		anomaly    bool
		hot        bool
		sunlit     bool
		industrial bool
	}

	confidenceFor := func(tr trigger) int {
		reading := models.Reading{
			UsageKWh:    100,
			ExpectedKWh: 100,
			Sector:      models.SectorHome,
			TimeOfDay:   models.TimeDay,
		}
		result := balancedResult()

		if tr.anomaly {
			result.Anomaly = true
			result.AlertLevel = models.AlertCritical
		}
		if tr.hot {
			reading.TemperatureCelsius = 35
		}
		if tr.sunlit {
			reading.SunlightAvailable = true
		}
		if tr.industrial {
			reading.Sector = models.SectorFactory
		}

		return engine.Analyze(reading, result).ConfidencePercent
	}

	// Toggling any single condition on never decreases confidence.
	for i := 0; i < 16; i++ {
		base := trigger{
			anomaly:    i&1 != 0,
			hot:        i&2 != 0,
			sunlit:     i&4 != 0,
			industrial: i&8 != 0,
		}
		baseConf := confidenceFor(base)

		assert.LessOrEqual(t, baseConf, 100)
		assert.GreaterOrEqual(t, baseConf, 30)

		for bit := 0; bit < 4; bit++ {
			if i&(1<<bit) != 0 {
				continue
			}
			flipped := trigger{
				anomaly:    base.anomaly || bit == 0,
				hot:        base.hot || bit == 1,
				sunlit:     base.sunlit || bit == 2,
				industrial: base.industrial || bit == 3,
			}
			assert.GreaterOrEqual(t, confidenceFor(flipped), baseConf,
				"enabling condition %d from mask %04b lowered confidence", bit, i)
		}
	}
}

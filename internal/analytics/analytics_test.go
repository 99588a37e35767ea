package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyguard/internal/history"
	"energyguard/internal/models"
)

func TestUsageRatio(t *testing.T) {
	t.Run("usage equal to expected yields exactly one", func(t *testing.T) {
		ratio, err := UsageRatio(models.Reading{UsageKWh: 100, ExpectedKWh: 100})
		require.NoError(t, err)
		assert.Equal(t, 1.0, ratio)
	})

	t.Run("zero expected is a validation error, not Inf", func(t *testing.T) {
		_, err := UsageRatio(models.Reading{UsageKWh: 100, ExpectedKWh: 0})
		require.Error(t, err)

		var validationErr *models.ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("negative usage is accepted", func(t *testing.T) {
		ratio, err := UsageRatio(models.Reading{UsageKWh: -50, ExpectedKWh: 100})
		require.NoError(t, err)
		assert.Equal(t, -0.5, ratio)
	})
}

func TestDetectAnomaly(t *testing.T) {
	t.Run("first reading is never anomalous", func(t *testing.T) {
		h := history.New()

		assert.False(t, DetectAnomaly(models.Reading{UsageKWh: 1e9, ExpectedKWh: 1}, h))
	})

	t.Run("exact boundary is not a spike", func(t *testing.T) {
		h := history.New()
		h.Add(models.Reading{UsageKWh: 100, ExpectedKWh: 100}, 24, 6)

		// 100 * 1.25 == 125; strictly greater required.
		assert.False(t, DetectAnomaly(models.Reading{UsageKWh: 125, ExpectedKWh: 100}, h))
	})

	t.Run("just above boundary is a spike", func(t *testing.T) {
		h := history.New()
		h.Add(models.Reading{UsageKWh: 100, ExpectedKWh: 100}, 24, 6)

		assert.True(t, DetectAnomaly(models.Reading{UsageKWh: 125.01, ExpectedKWh: 100}, h))
	})

	t.Run("compares against the immediately prior reading only", func(t *testing.T) {
		h := history.New()
		h.Add(models.Reading{UsageKWh: 1000, ExpectedKWh: 100}, 240, 60)
		h.Add(models.Reading{UsageKWh: 50, ExpectedKWh: 100}, 12, 3)

		// 70 would not spike against 1000, but does against 50.
		assert.True(t, DetectAnomaly(models.Reading{UsageKWh: 70, ExpectedKWh: 100}, h))
	})
}

func TestAlertLevelFor(t *testing.T) {
	tests := []struct {
		name    string
		ratio   float64
		anomaly bool
		want    models.AlertLevel
	}{
		{name: "normal ratio", ratio: 1.0, anomaly: false, want: models.AlertNormal},
		{name: "just below warning", ratio: 1.149, anomaly: false, want: models.AlertNormal},
		{name: "warning threshold inclusive", ratio: 1.15, anomaly: false, want: models.AlertWarning},
		{name: "just below critical", ratio: 1.349, anomaly: false, want: models.AlertWarning},
		{name: "critical threshold inclusive", ratio: 1.35, anomaly: false, want: models.AlertCritical},
		{name: "anomaly overrides normal ratio", ratio: 1.0, anomaly: true, want: models.AlertCritical},
		{name: "anomaly overrides warning ratio", ratio: 1.2, anomaly: true, want: models.AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlertLevelFor(tt.ratio, tt.anomaly))
		})
	}
}

func TestEfficiencyScore(t *testing.T) {
	t.Run("perfect ratio scores 100", func(t *testing.T) {
		assert.Equal(t, 100.0, EfficiencyScore(1.0))
	})

	t.Run("linear penalty", func(t *testing.T) {
		assert.Equal(t, 85.0, EfficiencyScore(1.2))
		assert.Equal(t, 85.0, EfficiencyScore(0.8))
		assert.Equal(t, 62.5, EfficiencyScore(1.5))
	})

	t.Run("symmetric around ratio one", func(t *testing.T) {
		for _, d := range []float64{0.1, 0.2, 0.3, 0.5, 1.0, 1.3} {
			assert.Equal(t, EfficiencyScore(1-d), EfficiencyScore(1+d), "deviation %v", d)
		}
	})

	t.Run("monotonically decreasing in deviation", func(t *testing.T) {
		prev := EfficiencyScore(1.0)
		for d := 0.1; d <= 2.0; d += 0.1 {
			score := EfficiencyScore(1 + d)
			assert.LessOrEqual(t, score, prev, "deviation %v", d)
			prev = score
		}
	})

	t.Run("floored at zero", func(t *testing.T) {
		assert.Equal(t, 0.0, EfficiencyScore(2.5))
		assert.Equal(t, 0.0, EfficiencyScore(-0.5))
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		// |1.111 - 1| * 75 = 8.325 -> 91.675 -> 91.7
		assert.Equal(t, 91.7, EfficiencyScore(1.111))
	})
}

func TestWasteRecovery(t *testing.T) {
	t.Run("fixed split of usage", func(t *testing.T) {
		recovered, remaining := WasteRecovery(models.Reading{UsageKWh: 100, ExpectedKWh: 100})
		assert.Equal(t, 24.0, recovered)
		assert.Equal(t, 6.0, remaining)
	})

	t.Run("recovered plus remaining equals total waste within rounding", func(t *testing.T) {
		for _, usage := range []float64{0, 1, 33.333, 100, 1234.56, 0.07} {
			recovered, remaining := WasteRecovery(models.Reading{UsageKWh: usage, ExpectedKWh: 1})
			assert.InDelta(t, 0.30*usage, recovered+remaining, 0.01, "usage %v", usage)
		}
	})

	t.Run("values rounded independently", func(t *testing.T) {
		// usage 33.333: wasted 9.9999, recovered 7.99992 -> 8.00,
		// remaining 1.99998 -> 2.00
		recovered, remaining := WasteRecovery(models.Reading{UsageKWh: 33.333, ExpectedKWh: 1})
		assert.Equal(t, 8.0, recovered)
		assert.Equal(t, 2.0, remaining)
	})

	t.Run("zero usage", func(t *testing.T) {
		recovered, remaining := WasteRecovery(models.Reading{UsageKWh: 0, ExpectedKWh: 1})
		assert.Equal(t, 0.0, recovered)
		assert.Equal(t, 0.0, remaining)
	})
}

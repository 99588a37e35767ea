// Package recommend turns an analyzed reading into a ranked diagnosis: a
// fixed-order list of reasons, a prioritized action plan, and a confidence
// percentage. The engine is a single-shot, stateless rule ladder; all
// statefulness lives in the session history consulted upstream.
package recommend

import (
	"fmt"

	"energyguard/internal/models"
)

const (
	baseConfidence = 30
	maxConfidence  = 100

	// Confidence contributions per triggered rule. Rules are independent and
	// additive; triggering more rules never lowers confidence.
	anomalyBonus    = 15
	coolingBonus    = 10
	sunlightBonus   = 15
	industrialBonus = 15

	// Cooling demand kicks in above this temperature.
	coolingTempCelsius = 30.0
)

// Engine builds recommendations from a reading and its analysis result.
type Engine struct{}

// NewEngine creates a recommendation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze produces the diagnosis for one analyzed reading. Reason and action
// ordering is fixed; each reason rule fires independently, while the
// alert-level action branches are mutually exclusive.
func (e *Engine) Analyze(reading models.Reading, result models.AnalysisResult) models.Recommendation {
	reasons := make([]string, 0, 5)
	actions := make([]models.Action, 0, 6)
	confidence := baseConfidence

	reasons = append(reasons, fmt.Sprintf("Energy usage is %.2fx expected", result.Ratio))

	if result.Anomaly {
		reasons = append(reasons, "Sudden abnormal spike detected")
		confidence += anomalyBonus
	}

	if reading.TemperatureCelsius > coolingTempCelsius {
		reasons = append(reasons, "High temperature increased cooling demand")
		confidence += coolingBonus
	}

	if reading.SunlightAvailable && reading.TimeOfDay == models.TimeDay {
		reasons = append(reasons, "Sunlight available but underutilized")
		confidence += sunlightBonus
	}

	if reading.Sector.IsIndustrial() {
		reasons = append(reasons, "High recoverable industrial losses")
		confidence += industrialBonus
	}

	// Continuous recovery runs regardless of alert level.
	actions = append(actions,
		models.Action{
			Priority: models.PriorityHigh,
			Text:     fmt.Sprintf("Recover wasted electricity continuously (~%.2f kWh)", result.RecoveredKWh),
		},
		models.Action{
			Priority: models.PriorityHigh,
			Text:     fmt.Sprintf("Reserve for system stability (~%.2f kWh)", result.RemainingKWh),
		},
	)

	if result.Anomaly {
		actions = append(actions, models.Action{
			Priority: models.PriorityImmediate,
			Text:     "Activate leak-capture line",
		})
	}

	switch result.AlertLevel {
	case models.AlertCritical:
		actions = append(actions,
			models.Action{
				Priority: models.PriorityImmediate,
				Text:     "Reduce non-essential loads",
			},
			models.Action{
				Priority: models.PriorityHigh,
				Text:     "Shift base load to renewable sources",
			},
		)
		if reading.SunlightAvailable {
			actions = append(actions, models.Action{
				Priority: models.PriorityImmediate,
				Text:     "Activate daylight-mirroring system",
			})
		}
	case models.AlertWarning:
		actions = append(actions, models.Action{
			Priority: models.PriorityMedium,
			Text:     "Optimize operating schedule",
		})
	default:
		actions = append(actions, models.Action{
			Priority: models.PriorityLow,
			Text:     "System operating optimally",
		})
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return models.Recommendation{
		Reasons:           reasons,
		Actions:           actions,
		ConfidencePercent: confidence,
	}
}

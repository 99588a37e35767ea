package models

// AlertLevel classifies how far a reading deviates from expectation.
type AlertLevel string

const (
	AlertNormal   AlertLevel = "NORMAL"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Banner returns the fixed status line adapters display for the level.
func (a AlertLevel) Banner() string {
	switch a {
	case AlertCritical:
		return "CRITICAL - Immediate optimization required"
	case AlertWarning:
		return "WARNING - Efficiency dropping"
	default:
		return "NORMAL - System balanced"
	}
}

// AnalysisResult holds the derived values for one analyzed reading.
// It is a transient value, not a stored entity; only the recovered and
// remaining figures are written into the session history.
type AnalysisResult struct {
	Ratio           float64    `json:"ratio"`
	Anomaly         bool       `json:"anomaly"`
	AlertLevel      AlertLevel `json:"alert_level"`
	EfficiencyScore float64    `json:"efficiency_score"`
	RecoveredKWh    float64    `json:"recovered_kwh"`
	RemainingKWh    float64    `json:"remaining_kwh"`
}

// Priority ranks a recommended action.
type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityMedium    Priority = "MEDIUM"
	PriorityHigh      Priority = "HIGH"
	PriorityImmediate Priority = "IMMEDIATE"
)

// Action is one prioritized step from the recommendation engine. Actions only
// recommend; executing them is outside the engine.
type Action struct {
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
}

// Recommendation is the rule engine output for one reading: ordered reasons,
// ordered prioritized actions, and an overall confidence percentage.
type Recommendation struct {
	Reasons           []string `json:"reasons"`
	Actions           []Action `json:"actions"`
	ConfidencePercent int      `json:"confidence_percent"`
}

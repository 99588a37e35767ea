package analytics

import (
	"math"

	"energyguard/internal/history"
	"energyguard/internal/models"
)

// Threshold and formula constants for the analytics rules.
const (
	// CriticalRatio is the usage/expected ratio at or above which a reading
	// is critical regardless of anomaly state.
	CriticalRatio = 1.35
	// WarningRatio is the ratio at or above which a reading is a warning.
	WarningRatio = 1.15
	// SpikeFactor is the relative jump over the immediately prior reading
	// that counts as an anomaly. Strictly greater; exactly 1.25x is not a spike.
	SpikeFactor = 1.25

	// wasteFraction of usage is assumed wasted; recoveryFraction of that
	// waste is continuously recovered. The rest is reserved unrecovered.
	wasteFraction    = 0.30
	recoveryFraction = 0.80

	// scoreSlope is the efficiency penalty per unit of ratio deviation from 1.
	scoreSlope = 75.0
)

// UsageRatio computes usage divided by expected usage. The reading must have
// a positive expected value; a zero or negative divisor is surfaced as a
// validation error instead of producing Inf/NaN.
func UsageRatio(r models.Reading) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r.UsageKWh / r.ExpectedKWh, nil
}

// DetectAnomaly reports whether the reading spikes more than SpikeFactor
// above the immediately preceding reading in the session history. The first
// reading of a session is never anomalous. This is a single-step comparison,
// not a moving average.
func DetectAnomaly(r models.Reading, h *history.History) bool {
	last, ok := h.LastUsage()
	if !ok {
		return false
	}
	return r.UsageKWh > last*SpikeFactor
}

// AlertLevelFor classifies a reading. The critical check runs first: an
// anomaly forces CRITICAL even when the ratio alone would be normal.
func AlertLevelFor(ratio float64, anomaly bool) models.AlertLevel {
	switch {
	case ratio >= CriticalRatio || anomaly:
		return models.AlertCritical
	case ratio >= WarningRatio:
		return models.AlertWarning
	default:
		return models.AlertNormal
	}
}

// EfficiencyScore maps the usage ratio onto a 0-100 score, one decimal place.
// A perfect match scores 100; deviation in either direction is penalized
// linearly at scoreSlope points per unit of ratio deviation.
func EfficiencyScore(ratio float64) float64 {
	score := 100 - math.Abs(ratio-1)*scoreSlope
	return round1(math.Max(0, math.Min(100, score)))
}

// WasteRecovery splits the assumed waste of a reading into the continuously
// recovered share and the remaining unrecovered share. Both values are
// rounded to two decimals independently, not re-derived from a rounded total.
func WasteRecovery(r models.Reading) (recoveredKWh, remainingKWh float64) {
	wasted := wasteFraction * r.UsageKWh
	recovered := recoveryFraction * wasted
	remaining := wasted - recovered
	return round2(recovered), round2(remaining)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

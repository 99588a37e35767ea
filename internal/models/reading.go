package models

import (
	"strings"
	"time"
)

// Sector identifies the kind of consumer a reading was taken from.
type Sector string

const (
	SectorHome       Sector = "home"
	SectorFactory    Sector = "factory"
	SectorPowerPlant Sector = "power_plant"
	SectorUnknown    Sector = "unknown"
)

// ParseSector normalizes free-form sector input. Unrecognized values map to
// SectorUnknown rather than erroring; unknown sectors simply never trigger
// sector-specific diagnosis rules.
func ParseSector(s string) Sector {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return SectorHome
	case "factory":
		return SectorFactory
	case "power plant", "powerplant", "power_plant":
		return SectorPowerPlant
	default:
		return SectorUnknown
	}
}

// IsIndustrial reports whether the sector carries recoverable industrial losses.
func (s Sector) IsIndustrial() bool {
	return s == SectorFactory || s == SectorPowerPlant
}

// TimeOfDay is the coarse time bucket a reading belongs to.
type TimeOfDay string

const (
	TimeDay     TimeOfDay = "day"
	TimeNight   TimeOfDay = "night"
	TimeUnknown TimeOfDay = "unknown"
)

// ParseTimeOfDay normalizes free-form time-of-day input. Unrecognized values
// map to TimeUnknown without erroring.
func ParseTimeOfDay(s string) TimeOfDay {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return TimeDay
	case "night":
		return TimeNight
	default:
		return TimeUnknown
	}
}

// Reading represents a single normalized energy usage observation
type Reading struct {
	UsageKWh           float64   `json:"usage_kwh"`
	ExpectedKWh        float64   `json:"expected_kwh"`
	Sector             Sector    `json:"sector"`
	TimeOfDay          TimeOfDay `json:"time_of_day"`
	SunlightAvailable  bool      `json:"sunlight_available"`
	TemperatureCelsius float64   `json:"temperature_celsius"`
	RecordedAt         time.Time `json:"recorded_at,omitempty"`
}

// Validate checks the reading invariants. ExpectedKWh must be strictly
// positive because it is the divisor of the usage ratio; negative usage and
// temperature are accepted as-is.
func (r *Reading) Validate() error {
	if r.ExpectedKWh <= 0 {
		return &ValidationError{
			Field:   "expected_kwh",
			Value:   r.ExpectedKWh,
			Message: "expected usage must be positive",
		}
	}
	return nil
}

// ValidationError represents a reading validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}

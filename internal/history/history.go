package history

import (
	"sync"

	"energyguard/internal/models"
)

// Entry is one recorded monitoring step: the reading together with the
// recovered/remaining waste split derived for it.
type Entry struct {
	Reading      models.Reading `json:"reading"`
	RecoveredKWh float64        `json:"recovered_kwh"`
	RemainingKWh float64        `json:"remaining_kwh"`
}

// Timeseries exposes the recorded values as parallel sequences indexed by
// monitoring step. All slices have the same length and insertion order.
type Timeseries struct {
	Steps        []int     `json:"steps"`
	UsageKWh     []float64 `json:"usage_kwh"`
	RecoveredKWh []float64 `json:"recovered_kwh"`
	RemainingKWh []float64 `json:"remaining_kwh"`
}

// History is the append-only log of analyzed readings for one monitoring
// session. It lives for the session only; nothing is persisted. The mutex
// guards against concurrent requests arriving on the same session.
type History struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Add appends one entry. Entries are never mutated or pruned afterward.
func (h *History) Add(reading models.Reading, recoveredKWh, remainingKWh float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Entry{
		Reading:      reading,
		RecoveredKWh: recoveredKWh,
		RemainingKWh: remainingKWh,
	})
}

// LastUsage returns the usage of the most recently added reading. The second
// return value is false when the history is empty.
func (h *History) LastUsage() (float64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return 0, false
	}
	return h.entries[len(h.entries)-1].Reading.UsageKWh, true
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the recorded entries in insertion order.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Series builds the parallel usage/recovered/remaining sequences for charting.
func (h *History) Series() Timeseries {
	h.mu.Lock()
	defer h.mu.Unlock()

	ts := Timeseries{
		Steps:        make([]int, len(h.entries)),
		UsageKWh:     make([]float64, len(h.entries)),
		RecoveredKWh: make([]float64, len(h.entries)),
		RemainingKWh: make([]float64, len(h.entries)),
	}

	for i, e := range h.entries {
		ts.Steps[i] = i
		ts.UsageKWh[i] = e.Reading.UsageKWh
		ts.RecoveredKWh[i] = e.RecoveredKWh
		ts.RemainingKWh[i] = e.RemainingKWh
	}

	return ts
}

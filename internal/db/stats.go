package db

import (
	"sync"
	"time"
)

// QueryStats captures the outcome of the most recent statement for the
// status bar.
type QueryStats struct {
	Kind     QueryType
	Rows     int
	Affected int64
	Elapsed  time.Duration
	When     time.Time
}

// StatsRecorder keeps the latest QueryStats. The UI goroutine reads it
// while executions complete on Bubble Tea command goroutines, so access
// is guarded.
type StatsRecorder struct {
	mu   sync.RWMutex
	last *QueryStats
}

// NewStatsRecorder returns an empty recorder.
func NewStatsRecorder() *StatsRecorder {
	return &StatsRecorder{}
}

// Record stores the stats of a completed statement.
func (r *StatsRecorder) Record(out *Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &QueryStats{
		Kind:     out.Kind,
		Rows:     len(out.Rows),
		Affected: out.Affected,
		Elapsed:  out.Elapsed,
		When:     time.Now(),
	}
}

// Last returns the most recent stats, if any.
func (r *StatsRecorder) Last() (QueryStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return QueryStats{}, false
	}
	return *r.last, true
}

// Reset clears the recorder.
func (r *StatsRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = nil
}

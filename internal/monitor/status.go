package monitor

import (
	"skinwatch/internal/models"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type StatusSnapshot struct {
	Runs        int64          `json:"runs"`
	Alerts      int64          `json:"alerts"`
	Failures    int64          `json:"failures"`
	LastOutcome models.Outcome `json:"last_outcome,omitempty"`
	LastRunAt   time.Time      `json:"last_run_at,omitempty"`
	Running     bool           `json:"running"`

	ByOutcome map[models.Outcome]int64 `json:"by_outcome"`
}

// StatusTracker is read by the status endpoints while runs write to it.
type StatusTracker struct {
	runs        atomic.Int64
	alerts      atomic.Int64
	failures    atomic.Int64
	running     atomic.Bool
	lastOutcome atomic.String
	lastRunAt   atomic.Time

	mu        sync.Mutex
	byOutcome map[models.Outcome]int64
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{byOutcome: make(map[models.Outcome]int64)}
}

func (st *StatusTracker) begin() {
	st.running.Store(true)
}

func (st *StatusTracker) finish(outcome models.Outcome, at time.Time) {
	st.runs.Inc()
	switch outcome {
	case models.OutcomeAlerted:
		st.alerts.Inc()
	case models.OutcomeDeliveryFailed, models.OutcomeStoreError, models.OutcomeFailed:
		st.failures.Inc()
	}
	st.mu.Lock()
	st.byOutcome[outcome]++
	st.mu.Unlock()
	st.lastOutcome.Store(string(outcome))
	st.lastRunAt.Store(at)
	st.running.Store(false)
}

func (st *StatusTracker) Snapshot() StatusSnapshot {
	st.mu.Lock()
	byOutcome := make(map[models.Outcome]int64, len(st.byOutcome))
	for outcome, n := range st.byOutcome {
		byOutcome[outcome] = n
	}
	st.mu.Unlock()

	return StatusSnapshot{
		Runs:        st.runs.Load(),
		Alerts:      st.alerts.Load(),
		Failures:    st.failures.Load(),
		LastOutcome: models.Outcome(st.lastOutcome.Load()),
		LastRunAt:   st.lastRunAt.Load(),
		Running:     st.running.Load(),
		ByOutcome:   byOutcome,
	}
}

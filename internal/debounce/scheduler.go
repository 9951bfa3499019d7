// Package debounce coalesces rapid query triggers and drops stale results.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQuiet is the quiet period applied to keystroke-driven triggers.
const DefaultQuiet = 300 * time.Millisecond

// Scheduler serializes query executions against a quiet period and tracks
// the highest sequence token whose result has been applied, so late
// responses from superseded queries can be ignored instead of cancelled.
//
// Safe for concurrent use.
type Scheduler struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer

	applied atomic.Uint64
}

// NewScheduler creates a scheduler with the given quiet period.
// A zero quiet period makes every execution immediate.
func NewScheduler(quiet time.Duration) *Scheduler {
	return &Scheduler{quiet: quiet}
}

// Schedule arranges for fn to run. When delayed, fn runs after the quiet
// period elapses without another Schedule call; otherwise it runs
// synchronously. Either way, any pending delayed execution is cancelled
// first: only the latest trigger survives.
func (s *Scheduler) Schedule(delayed bool, fn func()) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if !delayed || s.quiet == 0 {
		s.mu.Unlock()
		fn()
		return
	}

	s.timer = time.AfterFunc(s.quiet, fn)
	s.mu.Unlock()
}

// Stop cancels any pending delayed execution.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// TryApply claims seq as applied if it exceeds every sequence applied so
// far. Returns false when a newer query's result already landed; the caller
// then discards its result.
func (s *Scheduler) TryApply(seq uint64) bool {
	for {
		cur := s.applied.Load()
		if seq <= cur {
			return false
		}
		if s.applied.CompareAndSwap(cur, seq) {
			return true
		}
	}
}

// Applied returns the highest sequence token applied so far.
func (s *Scheduler) Applied() uint64 {
	return s.applied.Load()
}

package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleImmediateRunsSynchronously(t *testing.T) {
	s := NewScheduler(DefaultQuiet)

	ran := false
	s.Schedule(false, func() { ran = true })
	assert.True(t, ran)
}

func TestScheduleCoalescesRapidTriggers(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)

	var runs atomic.Int32
	var last atomic.Value
	for _, term := range []string{"t", "to", "tol"} {
		term := term
		s.Schedule(true, func() {
			runs.Add(1)
			last.Store(term)
		})
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return runs.Load() > 0 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, "tol", last.Load())
}

func TestScheduleImmediateCancelsPending(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)

	var delayedRan atomic.Bool
	s.Schedule(true, func() { delayedRan.Store(true) })

	ran := false
	s.Schedule(false, func() { ran = true })
	assert.True(t, ran)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, delayedRan.Load())
}

func TestStopCancelsPending(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)

	var ran atomic.Bool
	s.Schedule(true, func() { ran.Store(true) })
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestTryApplyRejectsStaleSequences(t *testing.T) {
	s := NewScheduler(0)

	assert.True(t, s.TryApply(2))
	assert.False(t, s.TryApply(1), "older result must not overwrite a newer one")
	assert.False(t, s.TryApply(2))
	assert.True(t, s.TryApply(5))
	assert.Equal(t, uint64(5), s.Applied())
}

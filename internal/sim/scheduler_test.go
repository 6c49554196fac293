package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDueRejectsForeignSender(t *testing.T) {
	s := NewScheduler("owner")
	ran := false
	s.Register("job", time.Millisecond, true, func(now time.Time, dt float64) error {
		ran = true
		return nil
	})

	err := s.RunDue(time.Now(), "intruder")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, ran, "no job may run for a rejected sender")

	var coded *Error
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, CodeUnauthorized, coded.Code)
}

func TestRunDueRunsImmediateJobs(t *testing.T) {
	s := NewScheduler("owner")
	runs := 0
	s.Register("job", time.Second, true, func(now time.Time, dt float64) error {
		runs++
		return nil
	})

	now := time.Now()
	require.NoError(t, s.RunDue(now, "owner"))
	assert.Equal(t, 1, runs)

	// Not due again until the interval elapses.
	require.NoError(t, s.RunDue(now.Add(200*time.Millisecond), "owner"))
	assert.Equal(t, 1, runs)

	require.NoError(t, s.RunDue(now.Add(time.Second), "owner"))
	assert.Equal(t, 2, runs)
}

func TestRunDueDeferredFirstRun(t *testing.T) {
	s := NewScheduler("owner")
	runs := 0
	s.Register("job", time.Hour, false, func(now time.Time, dt float64) error {
		runs++
		return nil
	})

	require.NoError(t, s.RunDue(time.Now(), "owner"))
	assert.Equal(t, 0, runs, "deferred job must wait a full interval")
}

func TestRunDueReportsElapsedDt(t *testing.T) {
	s := NewScheduler("owner")
	var seen []float64
	s.Register("job", time.Second, true, func(now time.Time, dt float64) error {
		seen = append(seen, dt)
		return nil
	})

	base := time.Now()
	require.NoError(t, s.RunDue(base, "owner"))
	// A late invocation reports the real elapsed time, not the interval.
	require.NoError(t, s.RunDue(base.Add(1500*time.Millisecond), "owner"))

	require.Len(t, seen, 2)
	assert.Equal(t, 1.0, seen[0], "first run falls back to the interval")
	assert.InDelta(t, 1.5, seen[1], 1e-9)
}

func TestRunDueStopsOnFirstError(t *testing.T) {
	s := NewScheduler("owner")
	boom := errors.New("boom")
	secondRan := false
	s.Register("first", time.Millisecond, true, func(now time.Time, dt float64) error {
		return boom
	})
	s.Register("second", time.Millisecond, true, func(now time.Time, dt float64) error {
		secondRan = true
		return nil
	})

	err := s.RunDue(time.Now(), "owner")
	assert.ErrorIs(t, err, boom)
	assert.False(t, secondRan)
}

func TestErrorCodes(t *testing.T) {
	assert.True(t, errors.Is(NotFound("animal-3"), ErrNotFound))
	assert.True(t, errors.Is(InvalidState("animal-3", "burrowed"), ErrInvalidState))
	assert.Contains(t, InvalidState("animal-3", "burrowed").Error(), "burrowed")
}

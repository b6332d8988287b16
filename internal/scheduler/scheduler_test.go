package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

func TestEveryRunsJobRepeatedly(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.Every("counter", 10*time.Millisecond, func() { runs.Add(1) })
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestStopReturnsWhenContextEnds(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	_, err = s.Every("slow", 5*time.Millisecond, func() {
		once.Do(func() { close(started) })
		<-release
	})
	require.NoError(t, err)
	s.Start(context.Background())
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = s.Stop(ctx)
	close(release)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	_, err = s.Every("broken", 0, func() {})
	assert.Error(t, err)
}

func TestTickJobDrivesTimeKeeper(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))
	keeper := timekeeper.New(model.DefaultDurations(), nil, timekeeper.Config{Clock: clock, Location: time.UTC})
	defer keeper.Close()

	// The scheduler runs on wall time while the keeper reads the fake clock,
	// so completion depends only on the fake clock and not on tick cadence.
	s, err := New(nil)
	require.NoError(t, err)
	_, err = s.Every("tick", 5*time.Millisecond, func() { keeper.Tick() })
	require.NoError(t, err)
	s.Start(context.Background())
	defer func() { _ = s.Stop(context.Background()) }()

	keeper.Start()
	clock.Advance(25 * time.Minute)

	require.Eventually(t, func() bool {
		return keeper.Snapshot().Mode == model.ModeShortBreak
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, keeper.Ledger().Total())
}

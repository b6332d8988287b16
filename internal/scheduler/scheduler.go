// Package scheduler drives periodic work such as timer ticks. Jobs never
// overlap: a run that is still executing when the next is due pushes that
// run back instead of stacking another one.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// New creates a scheduler running on clock. A nil clock uses wall time.
func New(clock clockwork.Clock) (*Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Every registers fn to run at interval and returns the job id.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("schedule %s: interval must be positive", name)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("schedule %s: %w", name, err)
	}
	return job.ID().String(), nil
}

// Start begins running jobs.
func (s *Scheduler) Start(ctx context.Context) {
	slog.DebugContext(ctx, "Starting scheduler", slog.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down. If ctx ends
// first Stop returns its error and the shutdown finishes in the background.
func (s *Scheduler) Stop(ctx context.Context) error {
	slog.DebugContext(ctx, "Stopping scheduler")
	done := make(chan error, 1)
	go func() {
		done <- s.scheduler.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("shutdown scheduler: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown scheduler: %w", ctx.Err())
	}
}

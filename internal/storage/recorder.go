package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logfields"
)

// LedgerSource hands out a copy of the current History Ledger.
type LedgerSource interface {
	Ledger() *history.Ledger
}

// Recorder persists timer state as events arrive: the ledger after every
// focus completion, and the Duration Table and selected mode whenever they
// change. Write failures are logged and otherwise ignored.
type Recorder struct {
	store  Store
	source LedgerSource
	logger *slog.Logger
	done   chan struct{}

	mu        sync.Mutex
	saved     model.Durations
	savedMode model.Mode
}

// NewRecorder creates a recorder. saved and mode are the values already in
// the store.
func NewRecorder(store Store, source LedgerSource, saved model.Durations, mode model.Mode, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, source: source, saved: saved, savedMode: mode, logger: logger, done: make(chan struct{})}
}

// Run handles events until the channel is closed or ctx ends. It must be
// called at most once.
func (recorder *Recorder) Run(ctx context.Context, events <-chan timekeeper.Event) {
	defer close(recorder.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			recorder.Handle(ctx, event)
		}
	}
}

// Handle processes a single event.
func (recorder *Recorder) Handle(ctx context.Context, event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventComplete:
		if event.Completion != nil && event.Completion.DateKey != "" {
			recorder.saveHistory(ctx, event.Completion)
		}
		recorder.saveMode(ctx, event.Snapshot.Mode)
	case timekeeper.EventStateChange:
		recorder.saveDurations(ctx, event.Snapshot.Durations)
		recorder.saveMode(ctx, event.Snapshot.Mode)
	}
}

// Wait blocks until Run has returned or ctx ends.
func (recorder *Recorder) Wait(ctx context.Context) error {
	select {
	case <-recorder.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for recorder: %w", ctx.Err())
	}
}

// Flush writes the current ledger regardless of which completion events were
// seen. Events are dropped when the subscriber falls behind, so shutdown
// calls this to keep today's count.
func (recorder *Recorder) Flush(ctx context.Context) error {
	if err := SaveHistory(ctx, recorder.store, recorder.source.Ledger()); err != nil {
		return fmt.Errorf("flush history: %w", err)
	}
	return nil
}

// MarkSaved records durations as already persisted, e.g. after they were
// reloaded from the store.
func (recorder *Recorder) MarkSaved(durations model.Durations) {
	recorder.mu.Lock()
	recorder.saved = durations
	recorder.mu.Unlock()
}

func (recorder *Recorder) saveHistory(ctx context.Context, completion *timekeeper.Completion) {
	if err := SaveHistory(ctx, recorder.store, recorder.source.Ledger()); err != nil {
		recorder.logger.Warn("Failed to save history",
			logfields.DateKey(completion.DateKey),
			logfields.Error(err))
		return
	}
	recorder.logger.Debug("History saved",
		logfields.DateKey(completion.DateKey),
		logfields.DayCount(completion.DayCount))
}

func (recorder *Recorder) saveDurations(ctx context.Context, durations model.Durations) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if durations == recorder.saved {
		return
	}
	if err := SaveDurations(ctx, recorder.store, durations); err != nil {
		recorder.logger.Warn("Failed to save durations", logfields.Error(err))
		return
	}
	recorder.saved = durations
}

func (recorder *Recorder) saveMode(ctx context.Context, mode model.Mode) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if mode == "" || mode == recorder.savedMode {
		return
	}
	if err := SaveMode(ctx, recorder.store, mode); err != nil {
		recorder.logger.Warn("Failed to save mode", logfields.Mode(mode), logfields.Error(err))
		return
	}
	recorder.savedMode = mode
}

// Package effects turns timer events into best-effort side effects: a sound,
// a system notification and a screen wake-lock. Every capability is optional
// and no failure ever reaches the timer.
package effects

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logfields"
)

// Sound plays the completion chime.
type Sound interface {
	Play(ctx context.Context) error
}

// Notifier shows a system notification.
type Notifier interface {
	Notify(title, body string) error
}

// WakeLock keeps the screen awake while held.
type WakeLock interface {
	Acquire(reason string) error
	Release() error
}

// Capabilities bundles the optional side effects. Nil fields are skipped.
type Capabilities struct {
	Sound    Sound
	Notifier Notifier
	WakeLock WakeLock
	// Prompt is called at most once, on the first start while the permission
	// is still PermissionPrompt, so the UI can ask the user. The answer comes
	// back through SetPermission.
	Prompt func()
}

// Dispatcher consumes TimeKeeper events and drives the capabilities.
type Dispatcher struct {
	caps   Capabilities
	logger *slog.Logger

	mu         sync.Mutex
	permission Permission
	prompted   bool
	running    bool
	foreground bool
	locked     bool
}

// NewDispatcher creates a dispatcher for an app that starts in the foreground.
func NewDispatcher(caps Capabilities, permission Permission, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if !permission.Valid() {
		permission = PermissionPrompt
	}
	return &Dispatcher{
		caps:       caps,
		logger:     logger,
		permission: permission,
		foreground: true,
	}
}

// Run handles events until the channel is closed or ctx ends. The wake-lock
// is released on return.
func (dispatcher *Dispatcher) Run(ctx context.Context, events <-chan timekeeper.Event) {
	defer dispatcher.releaseAll()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			dispatcher.Handle(ctx, event)
		}
	}
}

// Handle processes a single event.
func (dispatcher *Dispatcher) Handle(ctx context.Context, event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventComplete:
		dispatcher.complete(ctx, event)
		dispatcher.setRunning(event.Snapshot.Running)
	case timekeeper.EventStateChange:
		dispatcher.setRunning(event.Snapshot.Running)
	}
}

// SetForeground records whether the app window is in front. Backgrounding
// releases the wake-lock; returning re-acquires it while the timer runs.
func (dispatcher *Dispatcher) SetForeground(foreground bool) {
	dispatcher.mu.Lock()
	dispatcher.foreground = foreground
	dispatcher.mu.Unlock()
	dispatcher.syncWakeLock()
}

// SetPermission stores the user's notification answer.
func (dispatcher *Dispatcher) SetPermission(permission Permission) {
	if !permission.Valid() {
		return
	}
	dispatcher.mu.Lock()
	dispatcher.permission = permission
	dispatcher.mu.Unlock()
}

// Permission returns the current notification permission.
func (dispatcher *Dispatcher) Permission() Permission {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.permission
}

func (dispatcher *Dispatcher) complete(ctx context.Context, event timekeeper.Event) {
	completion := event.Completion
	if completion == nil {
		return
	}
	dispatcher.logger.Info("Interval complete",
		logfields.Mode(completion.Finished),
		logfields.NextMode(completion.Next),
		logfields.SessionID(event.Snapshot.SessionID))

	if dispatcher.caps.Sound != nil {
		if err := dispatcher.caps.Sound.Play(ctx); err != nil {
			dispatcher.absorb("sound", err)
		}
	}

	if dispatcher.caps.Notifier != nil && dispatcher.Permission() == PermissionGranted {
		title, body := NotificationText(*completion)
		if err := dispatcher.caps.Notifier.Notify(title, body); err != nil {
			dispatcher.absorb("notification", err)
		}
	}
}

func (dispatcher *Dispatcher) setRunning(running bool) {
	dispatcher.mu.Lock()
	wasRunning := dispatcher.running
	dispatcher.running = running
	prompt := running && !wasRunning && !dispatcher.prompted &&
		dispatcher.permission == PermissionPrompt && dispatcher.caps.Prompt != nil
	if prompt {
		dispatcher.prompted = true
	}
	dispatcher.mu.Unlock()

	if prompt {
		dispatcher.caps.Prompt()
	}
	dispatcher.syncWakeLock()
}

// syncWakeLock holds the lock exactly while running in the foreground.
func (dispatcher *Dispatcher) syncWakeLock() {
	if dispatcher.caps.WakeLock == nil {
		return
	}
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	want := dispatcher.running && dispatcher.foreground
	switch {
	case want && !dispatcher.locked:
		if err := dispatcher.caps.WakeLock.Acquire("Pomodoro timer running"); err != nil {
			dispatcher.absorb("wake_lock", err)
			return
		}
		dispatcher.locked = true
	case !want && dispatcher.locked:
		if err := dispatcher.caps.WakeLock.Release(); err != nil {
			dispatcher.absorb("wake_lock", err)
		}
		dispatcher.locked = false
	}
}

func (dispatcher *Dispatcher) releaseAll() {
	dispatcher.mu.Lock()
	dispatcher.running = false
	dispatcher.mu.Unlock()
	dispatcher.syncWakeLock()
}

func (dispatcher *Dispatcher) absorb(capability string, err error) {
	dispatcher.logger.Debug("Side effect failed", logfields.Capability(capability), logfields.Error(err))
}

// NotificationText returns the title and body announcing a completion.
func NotificationText(completion timekeeper.Completion) (string, string) {
	switch completion.Finished {
	case model.ModeFocus:
		body := "Time for a short break."
		if completion.Next == model.ModeLongBreak {
			body = "Time for a long break."
		}
		switch {
		case completion.DayCount == 1:
			body += " 1 focus session today."
		case completion.DayCount > 1:
			body += fmt.Sprintf(" %d focus sessions today.", completion.DayCount)
		}
		return "Focus session complete", body
	case model.ModeShortBreak, model.ModeLongBreak:
		return "Break is over", "Time to focus."
	}
	return "Timer complete", completion.Next.Label()
}

package effects

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

type recorder struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (r *recorder) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	if r.failOn == call {
		return errors.New(call + " unavailable")
	}
	return nil
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Play(context.Context) error { return r.record("play") }
func (r *recorder) Notify(title, body string) error { return r.record("notify:" + title) }
func (r *recorder) Acquire(string) error { return r.record("acquire") }
func (r *recorder) Release() error { return r.record("release") }

func capabilitiesFor(r *recorder) Capabilities {
	return Capabilities{Sound: r, Notifier: r, WakeLock: r}
}

func stateEvent(running bool) timekeeper.Event {
	return timekeeper.Event{Type: timekeeper.EventStateChange, Snapshot: timekeeper.Snapshot{Running: running}}
}

func completeEvent(finished, next model.Mode) timekeeper.Event {
	return timekeeper.Event{
		Type:       timekeeper.EventComplete,
		Snapshot:   timekeeper.Snapshot{Mode: next, Running: true},
		Completion: &timekeeper.Completion{Finished: finished, Next: next, DayCount: 2},
	}
}

func TestCompletionPlaysSoundAndNotifiesWhenGranted(t *testing.T) {
	r := &recorder{}
	dispatcher := NewDispatcher(capabilitiesFor(r), PermissionGranted, nil)
	ctx := context.Background()

	dispatcher.Handle(ctx, stateEvent(true))
	dispatcher.Handle(ctx, completeEvent(model.ModeFocus, model.ModeShortBreak))

	assert.Equal(t, []string{"acquire", "play", "notify:Focus session complete"}, r.Calls())
}

func TestNotificationGatedByPermission(t *testing.T) {
	for _, permission := range []Permission{PermissionDenied, PermissionPrompt} {
		r := &recorder{}
		dispatcher := NewDispatcher(Capabilities{Sound: r, Notifier: r}, permission, nil)

		dispatcher.Handle(context.Background(), completeEvent(model.ModeShortBreak, model.ModeFocus))
		assert.Equal(t, []string{"play"}, r.Calls(), "permission %s", permission)
	}
}

func TestCapabilityErrorsAreAbsorbed(t *testing.T) {
	r := &recorder{failOn: "play"}
	dispatcher := NewDispatcher(capabilitiesFor(r), PermissionGranted, nil)

	dispatcher.Handle(context.Background(), completeEvent(model.ModeFocus, model.ModeLongBreak))
	assert.Equal(t, []string{"play", "notify:Focus session complete", "acquire"}, r.Calls())
}

func TestWakeLockFollowsRunningAndForeground(t *testing.T) {
	r := &recorder{}
	dispatcher := NewDispatcher(Capabilities{WakeLock: r}, PermissionDenied, nil)
	ctx := context.Background()

	dispatcher.Handle(ctx, stateEvent(true))
	dispatcher.Handle(ctx, stateEvent(true))
	dispatcher.SetForeground(false)
	dispatcher.SetForeground(true)
	dispatcher.Handle(ctx, stateEvent(false))
	dispatcher.SetForeground(false)
	dispatcher.SetForeground(true)

	assert.Equal(t, []string{"acquire", "release", "acquire", "release"}, r.Calls())
}

func TestFailedAcquireIsNotReleased(t *testing.T) {
	r := &recorder{failOn: "acquire"}
	dispatcher := NewDispatcher(Capabilities{WakeLock: r}, PermissionDenied, nil)

	dispatcher.Handle(context.Background(), stateEvent(true))
	dispatcher.Handle(context.Background(), stateEvent(false))
	assert.Equal(t, []string{"acquire"}, r.Calls(), "nothing to release after a failed acquire")
}

func TestPromptAskedOnceOnFirstStart(t *testing.T) {
	prompts := 0
	dispatcher := NewDispatcher(Capabilities{Prompt: func() { prompts++ }}, PermissionPrompt, nil)
	ctx := context.Background()

	dispatcher.Handle(ctx, stateEvent(false))
	assert.Zero(t, prompts)
	dispatcher.Handle(ctx, stateEvent(true))
	dispatcher.Handle(ctx, stateEvent(false))
	dispatcher.Handle(ctx, stateEvent(true))
	assert.Equal(t, 1, prompts)

	dispatcher.SetPermission(PermissionGranted)
	assert.Equal(t, PermissionGranted, dispatcher.Permission())
	dispatcher.SetPermission("maybe")
	assert.Equal(t, PermissionGranted, dispatcher.Permission())
}

func TestNoCapabilitiesIsFine(t *testing.T) {
	dispatcher := NewDispatcher(Capabilities{}, "", nil)
	assert.Equal(t, PermissionPrompt, dispatcher.Permission())

	dispatcher.Handle(context.Background(), stateEvent(true))
	dispatcher.Handle(context.Background(), completeEvent(model.ModeFocus, model.ModeShortBreak))
	dispatcher.SetForeground(false)
}

func TestRunConsumesTimeKeeperEvents(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC))
	keeper := timekeeper.New(model.DefaultDurations(), nil, timekeeper.Config{Clock: clock, Location: time.UTC})

	r := &recorder{}
	dispatcher := NewDispatcher(capabilitiesFor(r), PermissionGranted, nil)
	events := keeper.Subscribe(8)
	done := make(chan struct{})
	go func() {
		dispatcher.Run(context.Background(), events)
		close(done)
	}()

	keeper.Start()
	clock.Advance(25 * time.Minute)
	keeper.Tick()
	keeper.Pause()
	keeper.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher did not stop after the event channel closed")
	}
	require.Equal(t, []string{"acquire", "play", "notify:Focus session complete", "release"}, r.Calls())
}

func TestNotificationText(t *testing.T) {
	title, body := NotificationText(timekeeper.Completion{Finished: model.ModeFocus, Next: model.ModeLongBreak, DayCount: 4})
	assert.Equal(t, "Focus session complete", title)
	assert.Equal(t, "Time for a long break. 4 focus sessions today.", body)

	_, body = NotificationText(timekeeper.Completion{Finished: model.ModeFocus, Next: model.ModeShortBreak, DayCount: 1})
	assert.Equal(t, "Time for a short break. 1 focus session today.", body)

	title, body = NotificationText(timekeeper.Completion{Finished: model.ModeLongBreak, Next: model.ModeFocus})
	assert.Equal(t, "Break is over", title)
	assert.Equal(t, "Time to focus.", body)
}

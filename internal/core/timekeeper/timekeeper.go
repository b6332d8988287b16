package timekeeper

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
)

// LongBreakEvery is the number of completed focus intervals per long break.
const LongBreakEvery = 4

// Config contains runtime options for TimeKeeper.
type Config struct {
	Clock clockwork.Clock
	// Location decides which calendar day a completion is attributed to.
	Location *time.Location
	// Mode is the mode selected at construction, e.g. the last one used.
	// Focus when empty or unknown.
	Mode model.Mode
}

// TimeKeeper is the timer state machine. Remaining time is derived from an
// absolute target instant while running, so late or skipped ticks never
// accumulate error.
type TimeKeeper struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	location  *time.Location
	durations model.Durations
	ledger    *history.Ledger
	mode      model.Mode
	remaining int
	running   bool
	target    time.Time
	sessionID string
	events    []chan Event
	closed    bool
}

// New creates an idle TimeKeeper. The ledger is copied; later changes to the
// caller's ledger are not observed.
func New(durations model.Durations, ledger *history.Ledger, options Config) *TimeKeeper {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if _, err := model.ParseMode(string(options.Mode)); err != nil {
		options.Mode = model.ModeFocus
	}
	if ledger == nil {
		ledger = history.New()
	}

	keeper := &TimeKeeper{
		clock:     options.Clock,
		location:  options.Location,
		durations: durations.Clamped(),
		ledger:    ledger.Clone(),
		mode:      options.Mode,
	}
	keeper.remaining = keeper.durations.Seconds(keeper.mode)
	return keeper
}

// Subscribe registers a new observer channel. Sends never block: an observer
// that falls behind misses events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Close closes every observer channel. The TimeKeeper keeps working but no
// longer emits events.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins counting down the remaining time. No-op while running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return
	}

	now := keeper.clock.Now()
	keeper.running = true
	keeper.target = now.Add(time.Duration(keeper.remaining) * time.Second)
	keeper.sessionID = uuid.NewString()
	keeper.emitStateLocked(now)
}

// Pause freezes the countdown, reading the clock at the moment of pausing
// rather than trusting the last tick. No-op while idle.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}

	now := keeper.clock.Now()
	keeper.remaining = remainingSeconds(keeper.target, now)
	keeper.stopLocked()
	keeper.emitStateLocked(now)
}

// Tick recomputes the remaining time and completes the interval once it
// reaches zero. It is meant to be called periodically by an external
// scheduler at any cadence; calling it while idle has no effect.
func (keeper *TimeKeeper) Tick() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return keeper.snapshotLocked()
	}

	now := keeper.clock.Now()
	keeper.remaining = remainingSeconds(keeper.target, now)
	if keeper.remaining == 0 {
		keeper.completeLocked(now)
		return keeper.snapshotLocked()
	}

	keeper.emitLocked(Event{
		Type:     EventTick,
		Snapshot: keeper.snapshotLocked(),
		At:       now,
	})
	return keeper.snapshotLocked()
}

// SwitchMode stops any run and selects mode with its full duration.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.stopLocked()
	keeper.mode = mode
	keeper.remaining = keeper.durations.Seconds(mode)
	keeper.emitStateLocked(keeper.clock.Now())
}

// Reset stops any run and restores the current mode's full duration.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.stopLocked()
	keeper.remaining = keeper.durations.Seconds(keeper.mode)
	keeper.emitStateLocked(keeper.clock.Now())
}

// SetDuration stores the clamped duration for mode and returns the updated
// table. While idle on that mode the remaining time follows immediately;
// while running the new value applies the next time the mode is entered.
func (keeper *TimeKeeper) SetDuration(mode model.Mode, seconds int) model.Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.applyDurationsLocked(keeper.durations.With(mode, seconds))
	return keeper.durations
}

// UpdateDurations replaces the whole table with the same rules as SetDuration.
func (keeper *TimeKeeper) UpdateDurations(durations model.Durations) model.Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.applyDurationsLocked(durations.Clamped())
	return keeper.durations
}

// Snapshot returns a copy of the current state. While running the remaining
// time is recomputed from the clock without completing the interval.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	snapshot := keeper.snapshotLocked()
	if keeper.running {
		snapshot.RemainingSeconds = remainingSeconds(keeper.target, keeper.clock.Now())
	}
	return snapshot
}

// Durations returns the current duration table.
func (keeper *TimeKeeper) Durations() model.Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.durations
}

// Ledger returns a copy of the completion history.
func (keeper *TimeKeeper) Ledger() *history.Ledger {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.Clone()
}

// Today returns the current instant in the location used for date keys.
func (keeper *TimeKeeper) Today() time.Time {
	return keeper.clock.Now().In(keeper.location)
}

func (keeper *TimeKeeper) completeLocked(now time.Time) {
	completion := Completion{Finished: keeper.mode}

	if keeper.mode == model.ModeFocus {
		completion.DateKey = history.DateKey(now.In(keeper.location))
		completion.DayCount = keeper.ledger.Increment(completion.DateKey)
		completion.Next = model.ModeShortBreak
		if total := keeper.ledger.Total(); total > 0 && total%LongBreakEvery == 0 {
			completion.Next = model.ModeLongBreak
		}
	} else {
		completion.Next = model.ModeFocus
	}
	completion.TotalFocus = keeper.ledger.Total()

	keeper.mode = completion.Next
	keeper.remaining = keeper.durations.Seconds(completion.Next)
	keeper.target = now.Add(time.Duration(keeper.remaining) * time.Second)

	keeper.emitLocked(Event{
		Type:       EventComplete,
		Snapshot:   keeper.snapshotLocked(),
		Completion: &completion,
		At:         now,
	})
}

func (keeper *TimeKeeper) applyDurationsLocked(durations model.Durations) {
	previous := keeper.durations.Seconds(keeper.mode)
	keeper.durations = durations
	if !keeper.running && durations.Seconds(keeper.mode) != previous {
		keeper.remaining = durations.Seconds(keeper.mode)
	}
	keeper.emitStateLocked(keeper.clock.Now())
}

func (keeper *TimeKeeper) stopLocked() {
	keeper.running = false
	keeper.target = time.Time{}
	keeper.sessionID = ""
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:             keeper.mode,
		RemainingSeconds: keeper.remaining,
		Running:          keeper.running,
		Target:           keeper.target,
		SessionID:        keeper.sessionID,
		Durations:        keeper.durations,
	}
}

func (keeper *TimeKeeper) emitStateLocked(now time.Time) {
	keeper.emitLocked(Event{
		Type:     EventStateChange,
		Snapshot: keeper.snapshotLocked(),
		At:       now,
	})
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// remainingSeconds rounds up so a countdown shows 1 until it truly hits zero.
func remainingSeconds(target, now time.Time) int {
	left := target.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

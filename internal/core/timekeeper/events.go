package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
)

// Snapshot is a copy of the timer state. Mutating it has no effect on the
// TimeKeeper.
type Snapshot struct {
	Mode             model.Mode
	RemainingSeconds int
	Running          bool
	// Target is the instant the running countdown reaches zero. Zero when idle.
	Target    time.Time
	SessionID string
	Durations model.Durations
}

// Progress returns the elapsed fraction of the current interval.
func (snapshot Snapshot) Progress() float64 {
	total := snapshot.Durations.Seconds(snapshot.Mode)
	if total <= 0 {
		return 1
	}
	progress := float64(total-snapshot.RemainingSeconds) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Completion describes a finished interval.
type Completion struct {
	Finished model.Mode
	Next     model.Mode
	// DateKey and DayCount are set only when a focus interval finished.
	DateKey  string
	DayCount int
	// TotalFocus is the ledger total after the completion.
	TotalFocus int
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type       EventType
	Snapshot   Snapshot
	Completion *Completion
	At         time.Time
}

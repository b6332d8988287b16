package model

import "time"

const (
	// MinSeconds is the lower bound for every mode.
	MinSeconds = 60

	MaxFocusSeconds      = 120 * 60
	MaxShortBreakSeconds = 30 * 60
	MaxLongBreakSeconds  = 60 * 60

	DefaultFocusSeconds      = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
)

// Durations is the configured length of each mode in seconds.
type Durations struct {
	FocusSeconds int
	ShortSeconds int
	LongSeconds  int
}

// DefaultDurations returns the 25/5/15 minute table.
func DefaultDurations() Durations {
	return Durations{
		FocusSeconds: DefaultFocusSeconds,
		ShortSeconds: DefaultShortBreakSeconds,
		LongSeconds:  DefaultLongBreakSeconds,
	}
}

// MaxSeconds returns the upper bound for mode.
func MaxSeconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return MaxShortBreakSeconds
	case ModeLongBreak:
		return MaxLongBreakSeconds
	}
	return MaxFocusSeconds
}

// ClampSeconds forces seconds into the bounds allowed for mode.
func ClampSeconds(mode Mode, seconds int) int {
	if seconds < MinSeconds {
		return MinSeconds
	}
	if limit := MaxSeconds(mode); seconds > limit {
		return limit
	}
	return seconds
}

// Seconds returns the configured duration of mode.
func (durations Durations) Seconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return durations.ShortSeconds
	case ModeLongBreak:
		return durations.LongSeconds
	}
	return durations.FocusSeconds
}

// Duration returns the configured duration of mode as a time.Duration.
func (durations Durations) Duration(mode Mode) time.Duration {
	return time.Duration(durations.Seconds(mode)) * time.Second
}

// With returns a copy with mode set to the clamped value of seconds.
func (durations Durations) With(mode Mode, seconds int) Durations {
	seconds = ClampSeconds(mode, seconds)
	switch mode {
	case ModeShortBreak:
		durations.ShortSeconds = seconds
	case ModeLongBreak:
		durations.LongSeconds = seconds
	default:
		durations.FocusSeconds = seconds
	}
	return durations
}

// Clamped returns a copy with every mode forced into its bounds.
func (durations Durations) Clamped() Durations {
	for _, mode := range Modes {
		durations = durations.With(mode, durations.Seconds(mode))
	}
	return durations
}

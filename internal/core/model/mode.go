package model

import (
	"errors"
	"fmt"
)

// ErrUnknownMode indicates a mode string that is not focus, short or long.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is one of the three timer phases.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short"
	ModeLongBreak  Mode = "long"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// ParseMode converts a persisted or user supplied string into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return Mode(value), nil
	}
	return "", fmt.Errorf("parse mode %q: %w", value, ErrUnknownMode)
}

// IsBreak reports whether the mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns the human readable name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	}
	return string(mode)
}

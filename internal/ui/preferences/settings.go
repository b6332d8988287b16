package preferences

import (
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/effects"
)

// Settings defines editable user preferences, in the minutes the form shows.
type Settings struct {
	FocusMinutes  int
	ShortMinutes  int
	LongMinutes   int
	Notifications effects.Permission
}

// Bounds are the accepted minutes per mode.
type Bounds struct {
	Min int
	Max int
}

// MinuteBounds returns the accepted range for mode.
func MinuteBounds(mode model.Mode) Bounds {
	return Bounds{Min: model.MinSeconds / 60, Max: model.MaxSeconds(mode) / 60}
}

// FromDurations converts stored seconds to form minutes.
func FromDurations(durations model.Durations, permission effects.Permission) Settings {
	return Settings{
		FocusMinutes:  toMinutes(durations.FocusSeconds),
		ShortMinutes:  toMinutes(durations.ShortSeconds),
		LongMinutes:   toMinutes(durations.LongSeconds),
		Notifications: permission,
	}
}

// Durations converts the form minutes to a clamped duration table.
func (settings Settings) Durations() model.Durations {
	return model.Durations{
		FocusSeconds: settings.FocusMinutes * 60,
		ShortSeconds: settings.ShortMinutes * 60,
		LongSeconds:  settings.LongMinutes * 60,
	}.Clamped()
}

// ApplyTo returns current with only the modes whose form minutes changed
// replaced. A stored 61s shows as 1 minute and stays 61s when saved as is.
func (settings Settings) ApplyTo(current model.Durations) model.Durations {
	updated := settings.Durations()
	if settings.FocusMinutes == toMinutes(current.FocusSeconds) {
		updated.FocusSeconds = current.FocusSeconds
	}
	if settings.ShortMinutes == toMinutes(current.ShortSeconds) {
		updated.ShortSeconds = current.ShortSeconds
	}
	if settings.LongMinutes == toMinutes(current.LongSeconds) {
		updated.LongSeconds = current.LongSeconds
	}
	return updated
}

// Minutes returns the form value for mode.
func (settings Settings) Minutes(mode model.Mode) int {
	switch mode {
	case model.ModeShortBreak:
		return settings.ShortMinutes
	case model.ModeLongBreak:
		return settings.LongMinutes
	default:
		return settings.FocusMinutes
	}
}

// ParseMinutes reads an entry value and clamps it to the mode's bounds.
// Anything that is not a number keeps fallback.
func ParseMinutes(mode model.Mode, value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	bounds := MinuteBounds(mode)
	if parsed < bounds.Min {
		return bounds.Min
	}
	if parsed > bounds.Max {
		return bounds.Max
	}
	return parsed
}

// Permission choices as shown in the select.
const (
	choiceAllow = "Allow"
	choiceBlock = "Block"
	choiceAsk   = "Ask on first start"
)

func permissionChoices() []string {
	return []string{choiceAllow, choiceBlock, choiceAsk}
}

func choiceFor(permission effects.Permission) string {
	switch permission {
	case effects.PermissionGranted:
		return choiceAllow
	case effects.PermissionDenied:
		return choiceBlock
	default:
		return choiceAsk
	}
}

func permissionFor(choice string) effects.Permission {
	switch choice {
	case choiceAllow:
		return effects.PermissionGranted
	case choiceBlock:
		return effects.PermissionDenied
	default:
		return effects.PermissionPrompt
	}
}

func toMinutes(seconds int) int {
	minutes := (seconds + 30) / 60
	if minutes < 1 {
		return 1
	}
	return minutes
}

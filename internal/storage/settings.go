package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/effects"
)

// durationsDocument is the persisted Duration Table. The minute fields are
// read for values written by older versions that stored minutes.
type durationsDocument struct {
	FocusSeconds *int `yaml:"focusSeconds,omitempty" json:"focusSeconds,omitempty"`
	ShortSeconds *int `yaml:"shortSeconds,omitempty" json:"shortSeconds,omitempty"`
	LongSeconds  *int `yaml:"longSeconds,omitempty" json:"longSeconds,omitempty"`

	FocusMinutes *int `yaml:"focusMinutes,omitempty" json:"focusMinutes,omitempty"`
	ShortMinutes *int `yaml:"shortMinutes,omitempty" json:"shortMinutes,omitempty"`
	LongMinutes  *int `yaml:"longMinutes,omitempty" json:"longMinutes,omitempty"`
}

// LoadDurations reads the Duration Table. Missing or malformed fields fall back
// to their defaults; the returned table is always usable and err only explains
// what was ignored.
func LoadDurations(ctx context.Context, store Store) (model.Durations, error) {
	durations := model.DefaultDurations()
	raw, err := store.Get(ctx, KeySettings)
	if err != nil {
		return durations, missingOrError(KeySettings, err)
	}

	var doc durationsDocument
	decodeErr := yaml.Unmarshal(raw, &doc)
	applyDurations(&durations, doc)
	if decodeErr != nil {
		return durations, fmt.Errorf("parse %s: %w", KeySettings, decodeErr)
	}
	return durations, nil
}

// SaveDurations writes the whole Duration Table.
func SaveDurations(ctx context.Context, store Store, durations model.Durations) error {
	doc := durationsDocument{
		FocusSeconds: &durations.FocusSeconds,
		ShortSeconds: &durations.ShortSeconds,
		LongSeconds:  &durations.LongSeconds,
	}
	return putYAML(ctx, store, KeySettings, doc)
}

// LoadHistory reads the History Ledger, dropping entries that are not a valid
// date key with a positive count.
func LoadHistory(ctx context.Context, store Store) (*history.Ledger, error) {
	raw, err := store.Get(ctx, KeyHistory)
	if err != nil {
		return history.New(), missingOrError(KeyHistory, err)
	}

	counts := map[string]int{}
	decodeErr := yaml.Unmarshal(raw, &counts)
	ledger := history.FromMap(counts)
	if decodeErr != nil {
		return ledger, fmt.Errorf("parse %s: %w", KeyHistory, decodeErr)
	}
	return ledger, nil
}

// SaveHistory writes the whole History Ledger.
func SaveHistory(ctx context.Context, store Store, ledger *history.Ledger) error {
	return putYAML(ctx, store, KeyHistory, ledger.Snapshot())
}

// LoadTheme reads the theme preference, defaulting to dark.
func LoadTheme(ctx context.Context, store Store) (model.Theme, error) {
	value, ok, err := loadLiteral(ctx, store, KeyTheme)
	if !ok {
		return model.DefaultTheme, err
	}
	theme := model.Theme(value)
	if !theme.Valid() {
		return model.DefaultTheme, fmt.Errorf("parse %s: unknown theme %q", KeyTheme, value)
	}
	return theme, nil
}

// SaveTheme writes the theme preference.
func SaveTheme(ctx context.Context, store Store, theme model.Theme) error {
	return putYAML(ctx, store, KeyTheme, string(theme))
}

// LoadPermission reads the notification permission, defaulting to prompt.
func LoadPermission(ctx context.Context, store Store) (effects.Permission, error) {
	value, ok, err := loadLiteral(ctx, store, KeyNotifications)
	if !ok {
		return effects.PermissionPrompt, err
	}
	permission := effects.Permission(value)
	if !permission.Valid() {
		return effects.PermissionPrompt, fmt.Errorf("parse %s: unknown permission %q", KeyNotifications, value)
	}
	return permission, nil
}

// SavePermission writes the notification permission.
func SavePermission(ctx context.Context, store Store, permission effects.Permission) error {
	return putYAML(ctx, store, KeyNotifications, string(permission))
}

// LoadMode reads the last selected mode, defaulting to focus.
func LoadMode(ctx context.Context, store Store) (model.Mode, error) {
	value, ok, err := loadLiteral(ctx, store, KeyMode)
	if !ok {
		return model.ModeFocus, err
	}
	mode, err := model.ParseMode(value)
	if err != nil {
		return model.ModeFocus, fmt.Errorf("parse %s: %w", KeyMode, err)
	}
	return mode, nil
}

// SaveMode writes the selected mode.
func SaveMode(ctx context.Context, store Store, mode model.Mode) error {
	return putYAML(ctx, store, KeyMode, string(mode))
}

func applyDurations(durations *model.Durations, doc durationsDocument) {
	pick := func(mode model.Mode, seconds, minutes *int) {
		switch {
		case seconds != nil && *seconds > 0:
			*durations = durations.With(mode, *seconds)
		case minutes != nil && *minutes > 0:
			*durations = durations.With(mode, *minutes*60)
		}
	}
	pick(model.ModeFocus, doc.FocusSeconds, doc.FocusMinutes)
	pick(model.ModeShortBreak, doc.ShortSeconds, doc.ShortMinutes)
	pick(model.ModeLongBreak, doc.LongSeconds, doc.LongMinutes)
}

// loadLiteral reads a single string scalar. ok is false when there is no
// usable value, in which case err explains why (nil for a missing key).
func loadLiteral(ctx context.Context, store Store, key string) (string, bool, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return "", false, missingOrError(key, err)
	}
	var value string
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return "", false, fmt.Errorf("parse %s: %w", key, err)
	}
	return strings.TrimSpace(value), true, nil
}

func putYAML(ctx context.Context, store Store, key string, value any) error {
	serialized, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Put(ctx, key, serialized); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// missingOrError hides ErrNotFound: a key that was never written is the normal
// first-run state, not a failure.
func missingOrError(key string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return fmt.Errorf("load %s: %w", key, err)
}

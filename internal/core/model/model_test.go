package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, mode := range Modes {
		parsed, err := ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := ParseMode("lunch")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestClampSeconds(t *testing.T) {
	cases := []struct {
		mode    Mode
		seconds int
		want    int
	}{
		{ModeFocus, -10, 60},
		{ModeFocus, 0, 60},
		{ModeFocus, 59, 60},
		{ModeFocus, 1500, 1500},
		{ModeFocus, 7200, 7200},
		{ModeFocus, 7201, 7200},
		{ModeShortBreak, 1801, 1800},
		{ModeShortBreak, 300, 300},
		{ModeLongBreak, 3601, 3600},
		{ModeLongBreak, 61, 61},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampSeconds(tc.mode, tc.seconds), "%s %d", tc.mode, tc.seconds)
	}
}

func TestDurationsWithOnlyTouchesOneMode(t *testing.T) {
	durations := DefaultDurations().With(ModeShortBreak, 10*60)

	assert.Equal(t, Durations{FocusSeconds: 1500, ShortSeconds: 600, LongSeconds: 900}, durations)
	assert.Equal(t, 600, durations.Seconds(ModeShortBreak))
	assert.Equal(t, DefaultDurations(), DefaultDurations().Clamped())
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.False(t, Theme("sepia").Valid())
	assert.True(t, DefaultTheme.Valid())
}

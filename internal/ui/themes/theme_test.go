package themes

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestVariantFollowsPreference(t *testing.T) {
	base := theme.DefaultTheme()

	dark := New(model.ThemeDark, model.ModeFocus)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	light := New(model.ThemeLight, model.ModeFocus)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))
}

func TestPrimaryFollowsMode(t *testing.T) {
	for _, mode := range model.Modes {
		custom := New(model.ThemeDark, mode)
		assert.Equal(t, Accent(mode), custom.Color(theme.ColorNamePrimary, theme.VariantDark), mode)
	}
	assert.NotEqual(t, Accent(model.ModeFocus), Accent(model.ModeShortBreak))
	assert.Equal(t, Accent(model.ModeFocus), Accent(model.Mode("bogus")))
}

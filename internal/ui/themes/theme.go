// Package themes provides the app's fyne theme: the stock theme with a forced
// light or dark variant and a primary colour per timer mode.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/core/model"
)

var accents = map[model.Mode]color.NRGBA{
	model.ModeFocus:      {R: 0xe0, G: 0x4f, B: 0x3f, A: 0xff},
	model.ModeShortBreak: {R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff},
	model.ModeLongBreak:  {R: 0x3d, G: 0x7e, B: 0xc9, A: 0xff},
}

// Theme is a fyne.Theme bound to one preference and mode.
type Theme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	accent  color.NRGBA
}

var _ fyne.Theme = (*Theme)(nil)

// New builds the theme for preference and mode.
func New(preference model.Theme, mode model.Mode) *Theme {
	variant := theme.VariantDark
	if preference == model.ThemeLight {
		variant = theme.VariantLight
	}
	accent, ok := accents[mode]
	if !ok {
		accent = accents[model.ModeFocus]
	}
	return &Theme{base: theme.DefaultTheme(), variant: variant, accent: accent}
}

// Accent returns the mode colour used for primary elements.
func Accent(mode model.Mode) color.Color {
	if accent, ok := accents[mode]; ok {
		return accent
	}
	return accents[model.ModeFocus]
}

// Color ignores the requested variant in favour of the user's preference.
func (custom *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return custom.accent
	case theme.ColorNameSelection:
		selection := custom.accent
		selection.A = 0x55
		return selection
	}
	return custom.base.Color(name, custom.variant)
}

func (custom *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return custom.base.Font(style)
}

func (custom *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return custom.base.Icon(name)
}

func (custom *Theme) Size(name fyne.ThemeSizeName) float32 {
	return custom.base.Size(name)
}

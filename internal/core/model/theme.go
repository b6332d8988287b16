package model

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference has been stored.
const DefaultTheme = ThemeDark

// Valid reports whether theme is one of the known literals.
func (theme Theme) Valid() bool {
	return theme == ThemeLight || theme == ThemeDark
}

// Toggle returns the opposite theme.
func (theme Theme) Toggle() Theme {
	if theme == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

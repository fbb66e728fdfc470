package models

// Theme is the page display mode.
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeRedBlack Theme = "red-black"

	DefaultTheme = ThemeLight
)

// ParseTheme reports whether s names a known theme.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeRedBlack:
		return Theme(s), true
	default:
		return DefaultTheme, false
	}
}

// Toggle returns the other theme. Anything that is not red-black counts
// as light.
func (t Theme) Toggle() Theme {
	if t == ThemeRedBlack {
		return ThemeLight
	}
	return ThemeRedBlack
}

package styles

import "github.com/opencode-ai/studymind/internal/theme"

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Focus      string
	Success    string
	Warning    string
	Error      string
	Info       string
	// Chart colors series and bars in order.
	Chart []string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"light":         LightTheme,
	"dark":          DarkTheme,
	"high-contrast": HighContrastTheme,
}

// ForAppearance picks the palette for a resolved theme. High contrast
// replaces the dark palette only.
func ForAppearance(appearance theme.Appearance, highContrast bool) Theme {
	if appearance == theme.AppearanceLight {
		return LightTheme
	}
	if highContrast {
		return HighContrastTheme
	}
	return DarkTheme
}

var chartColors = []string{"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5", "#5D878F"}

package styles

// HighContrastTheme replaces the dark palette when tui.high_contrast is set.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background: "#000000",
		Panel:      "#000000",
		Text:       "#FFFFFF",
		TextMuted:  "#D0D0D0",
		Border:     "#FFFFFF",
		Accent:     "#00E5FF",
		Focus:      "#FFE14D",
		Success:    "#3DFF8A",
		Warning:    "#FFB000",
		Error:      "#FF4D4D",
		Info:       "#7FF3FF",
		Chart:      []string{"#00E5FF", "#FFE14D", "#FF4D4D", "#3DFF8A", "#FFFFFF"},
	},
}

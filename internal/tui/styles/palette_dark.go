package styles

// DarkTheme is the palette for dark terminals.
var DarkTheme = Theme{
	Name: "dark",
	Tokens: ThemeTokens{
		Background: "#1F2121",
		Panel:      "#262828",
		Text:       "#F5F5F5",
		TextMuted:  "#A7A9A9",
		Border:     "#3A3D3D",
		Accent:     "#32B8C6",
		Focus:      "#45C9D6",
		Success:    "#32B8C6",
		Warning:    "#E68161",
		Error:      "#FF5459",
		Info:       "#A7A9A9",
		Chart:      chartColors,
	},
}

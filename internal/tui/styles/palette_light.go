package styles

// LightTheme is the palette for light terminals.
var LightTheme = Theme{
	Name: "light",
	Tokens: ThemeTokens{
		Background: "#FCFCF9",
		Panel:      "#FFFFFD",
		Text:       "#13343B",
		TextMuted:  "#626C71",
		Border:     "#D5D9D9",
		Accent:     "#21808D",
		Focus:      "#1D7480",
		Success:    "#21808D",
		Warning:    "#A84B2F",
		Error:      "#C0152F",
		Info:       "#626C71",
		Chart:      []string{"#21808D", "#E68161", "#B4413C", "#5D878F", "#A84B2F"},
	},
}

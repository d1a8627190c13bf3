package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme        Theme
	Title        lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Panel        lipgloss.Style
	Card         lipgloss.Style
	Border       lipgloss.Style
	Focus        lipgloss.Style
	Selected     lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Button       lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	TimerIdle    lipgloss.Style
	TimerRunning lipgloss.Style
	TimerPaused  lipgloss.Style
	ChartBars    []lipgloss.Style
}

// DefaultStyles builds styles from the dark theme.
func DefaultStyles() Styles {
	return BuildStyles(DarkTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	bars := make([]lipgloss.Style, len(tokens.Chart))
	for i, c := range tokens.Chart {
		bars[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		Theme:        theme,
		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:         lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Border:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Focus:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true),
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Padding(0, 1),
		ActiveTab:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true).Underline(true).Padding(0, 1),
		Button:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Background)).Background(lipgloss.Color(tokens.Accent)).Padding(0, 1),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:         lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
		TimerIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		TimerRunning: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		TimerPaused:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		ChartBars:    bars,
	}
}

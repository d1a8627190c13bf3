package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer draws a projection.
type Renderer interface {
	Draw(p Projection) (string, error)
}

// TerminalRenderer draws horizontal bar charts with lipgloss.
type TerminalRenderer struct {
	// Width is the length of a full-scale bar in cells.
	Width int
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	// Bars colors each series in turn.
	Bars []lipgloss.Style
}

// NewTerminalRenderer returns a renderer with unstyled output.
func NewTerminalRenderer(width int) *TerminalRenderer {
	if width <= 0 {
		width = 30
	}
	return &TerminalRenderer{
		Width: width,
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle(),
		Value: lipgloss.NewStyle(),
		Bars:  []lipgloss.Style{lipgloss.NewStyle()},
	}
}

// Draw renders one row per label and series.
func (r *TerminalRenderer) Draw(p Projection) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	labelWidth := 0
	for _, label := range p.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(label))
	}
	scale := p.Scale()

	var b strings.Builder
	b.WriteString(r.Title.Render(p.Title))
	b.WriteString("\n")
	for i, label := range p.Labels {
		for si, series := range p.Series {
			name := ""
			if si == 0 {
				name = label
			}
			v := series.Values[i]
			bar := r.barStyle(si).Render(Bar(v, scale, r.Width))
			fmt.Fprintf(&b, "%s %s %s\n",
				r.Label.Render(padRight(name, labelWidth)),
				bar,
				r.Value.Render(formatValue(v)),
			)
		}
	}
	if len(p.Series) > 1 {
		legend := make([]string, len(p.Series))
		for si, series := range p.Series {
			legend[si] = r.barStyle(si).Render("█") + " " + series.Label
		}
		b.WriteString(strings.Join(legend, "  "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (r *TerminalRenderer) barStyle(i int) lipgloss.Style {
	if len(r.Bars) == 0 {
		return lipgloss.NewStyle()
	}
	return r.Bars[i%len(r.Bars)]
}

// Bar returns a bar of full and light blocks, width cells long.
func Bar(value, scale float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if scale > 0 && value > 0 {
		filled = int(math.Round(value / scale * float64(width)))
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

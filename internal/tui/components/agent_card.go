// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/studymind/internal/tui/styles"
)

const (
	maxActivityLength = 28
	agentCardWidth    = 34
)

// AgentCard contains data needed to render a study assistant card.
type AgentCard struct {
	Name       string
	Role       string
	Specialty  string
	Activity   string
	Confidence int
	Active     bool
}

// RenderAgentCard renders a compact agent summary card.
func RenderAgentCard(styleSet styles.Styles, card AgentCard) string {
	header := styleSet.Accent.Render(defaultIfEmpty(card.Name, "Agent"))
	roleLine := styleSet.Text.Render(defaultIfEmpty(card.Role, "--"))
	specialtyLine := styleSet.Muted.Render(fmt.Sprintf("Specialty: %s", defaultIfEmpty(card.Specialty, "--")))

	activity := strings.TrimSpace(card.Activity)
	if activity == "" || !card.Active {
		activity = "Standing by"
	}
	activityLine := fmt.Sprintf("%s %s", renderActivityBadge(styleSet, card.Active), styleSet.Muted.Render(truncate(activity, maxActivityLength)))
	confidenceLine := styleSet.Text.Render(fmt.Sprintf("Confidence: %d%%", card.Confidence))

	content := strings.Join([]string{
		header,
		roleLine,
		specialtyLine,
		activityLine,
		confidenceLine,
	}, "\n")

	return styleSet.Card.
		Width(agentCardWidth).
		MaxWidth(agentCardWidth + 2).
		Render(content)
}

// RenderAgentGrid lays cards out in rows of perRow.
func RenderAgentGrid(styleSet styles.Styles, cards []AgentCard, perRow int) string {
	if perRow <= 0 {
		perRow = 1
	}
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rendered := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			rendered = append(rendered, RenderAgentCard(styleSet, card))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

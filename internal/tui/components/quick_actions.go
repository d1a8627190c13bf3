package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/studymind/internal/pomodoro"
	"github.com/opencode-ai/studymind/internal/tui/styles"
)

// QuickAction represents a keyboard-triggered action.
type QuickAction struct {
	Key     string // Keyboard key (e.g., "s", "r")
	Label   string // Display label (e.g., "Start", "Reset")
	Enabled bool   // Whether the action is available
}

// RenderQuickActionBar renders a horizontal bar of available quick actions.
// Format: "s:Start  r:Reset  f:Close"
func RenderQuickActionBar(styleSet styles.Styles, actions []QuickAction) string {
	var parts []string
	for _, action := range actions {
		if !action.Enabled {
			continue
		}
		keyStyle := styleSet.Accent.Bold(true)
		part := fmt.Sprintf("%s:%s", keyStyle.Render(action.Key), styleSet.Muted.Render(action.Label))
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

// TimerQuickActions returns the pomodoro controls for a timer state.
func TimerQuickActions(state pomodoro.State) []QuickAction {
	toggle := QuickAction{Key: "s", Label: "Start", Enabled: true}
	if state.Running() {
		toggle.Label = "Pause"
	} else if state.Status == pomodoro.StatusPaused {
		toggle.Label = "Resume"
	}
	return []QuickAction{
		toggle,
		{Key: "r", Label: "Reset", Enabled: true},
		{Key: "f", Label: "Close", Enabled: true},
	}
}

// RenderCenteredActions renders the action bar centered in width.
func RenderCenteredActions(styleSet styles.Styles, actions []QuickAction, width int) string {
	bar := RenderQuickActionBar(styleSet, actions)
	if bar == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(bar)
}

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/studymind/internal/planner"
	"github.com/opencode-ai/studymind/internal/pomodoro"
	"github.com/opencode-ai/studymind/internal/tui/styles"
)

// RenderTimerBadge renders the pomodoro status with icon and color.
func RenderTimerBadge(styleSet styles.Styles, state pomodoro.State) string {
	icon, label, style := timerDescriptor(styleSet, state.Status)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func timerDescriptor(styleSet styles.Styles, status pomodoro.Status) (string, string, lipgloss.Style) {
	switch status {
	case pomodoro.StatusRunning:
		return ">", "Running", styleSet.TimerRunning
	case pomodoro.StatusPaused:
		return "P", "Paused", styleSet.TimerPaused
	default:
		return "-", "Ready", styleSet.TimerIdle
	}
}

func renderActivityBadge(styleSet styles.Styles, active bool) string {
	if active {
		return styleSet.Success.Render("●")
	}
	return styleSet.Muted.Render("○")
}

// RenderAnalysisBadge renders the caption under an analysis progress bar.
func RenderAnalysisBadge(styleSet styles.Styles, agent planner.AgentProgress) string {
	switch {
	case agent.Done:
		return styleSet.Success.Render("OK " + agent.Status())
	case agent.Started:
		return styleSet.Info.Render("~ " + agent.Status())
	default:
		return styleSet.Muted.Render("- " + agent.Status())
	}
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/studymind/internal/app"
)

// Ambient animation cadence for the dashboard agent cards.
const (
	activityInterval   = 5 * time.Second
	confidenceInterval = 15 * time.Second
)

// effectMsg delivers a scheduled app effect back to the update loop.
type effectMsg struct {
	effect app.Effect
}

type activityTickMsg time.Time

type confidenceTickMsg time.Time

// effectCmd turns an effect into a delayed message. Tests replace it to
// capture effects instead of sleeping.
var effectCmd = func(e app.Effect) tea.Cmd {
	return tea.Tick(e.After, func(time.Time) tea.Msg {
		return effectMsg{effect: e}
	})
}

func scheduleEffects(effects []app.Effect) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		if cmd := effectCmd(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func activityTickCmd() tea.Cmd {
	return tea.Tick(activityInterval, func(t time.Time) tea.Msg {
		return activityTickMsg(t)
	})
}

func confidenceTickCmd() tea.Cmd {
	return tea.Tick(confidenceInterval, func(t time.Time) tea.Msg {
		return confidenceTickMsg(t)
	})
}

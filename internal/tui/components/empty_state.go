// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/studymind/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "📚", "🗓️").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested key or command with description.
type Suggestion struct {
	// Command is the key or CLI command to run (e.g., "alt+p").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	// Icon + Title
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	// Subtitle
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	// Suggestions
	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// Common empty states for reuse across views.

// EmptyPlan is shown on the calendar before a plan has been accepted.
func EmptyPlan() EmptyState {
	return EmptyState{
		Icon:     "🗓️",
		Title:    "No study plan yet",
		Subtitle: "The AI planner builds a weekly plan from your subjects.",
		Suggestions: []Suggestion{
			{Command: "alt+p", Description: "open the AI planner"},
		},
	}
}

// EmptySelection is shown when no subject is selected in the planner.
func EmptySelection() EmptyState {
	return EmptyState{
		Icon:     "📚",
		Title:    "No subjects selected",
		Subtitle: "All subjects will be planned.",
		Suggestions: []Suggestion{
			{Command: "space", Description: "select the highlighted subject"},
		},
	}
}

// EmptyDay is the compact placeholder for a free calendar day.
func EmptyDay() EmptyState {
	return EmptyState{Title: "Free"}
}

// EmptyInsights is shown when the sample data has no insights.
func EmptyInsights() EmptyState {
	return EmptyState{
		Icon:     "💡",
		Title:    "No insights yet",
		Subtitle: "Agents share observations as you study.",
	}
}

// EmptyHistory is shown when no study sessions were recorded.
func EmptyHistory() EmptyState {
	return EmptyState{
		Icon:     "📈",
		Title:    "No study sessions recorded",
		Subtitle: "Start a focus session with the pomodoro timer.",
		Suggestions: []Suggestion{
			{Command: "f", Description: "open the pomodoro timer"},
		},
	}
}

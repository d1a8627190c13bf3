// Package cli provides status formatting helpers.
package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/theme"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

func formatEventType(eventType models.EventType) string {
	label, color := statusLabelForEvent(eventType)
	return colorize(formatStatusLabel(label, string(eventType)), color)
}

func formatThemePreference(pref theme.Preference) string {
	color := colorCyan
	switch pref {
	case theme.Light:
		color = colorYellow
	case theme.Dark:
		color = colorMagenta
	}
	return colorize(fmt.Sprintf("%s %s", pref.Icon(), pref), color)
}

func statusLabelForEvent(eventType models.EventType) (string, string) {
	switch eventType {
	case models.EventTypeUserLoggedIn, models.EventTypeUserRegistered, models.EventTypeUserLoggedOut:
		return "USER", colorGreen
	case models.EventTypeViewNavigated, models.EventTypeWizardStepChanged:
		return "NAV", colorCyan
	case models.EventTypeTimerStarted, models.EventTypeTimerPaused, models.EventTypeTimerReset, models.EventTypeTimerPhaseChanged:
		return "TIMER", colorMagenta
	case models.EventTypePlanGenerated, models.EventTypePlanAccepted:
		return "PLAN", colorGreen
	case models.EventTypeThemeChanged:
		return "THEME", colorCyan
	case models.EventTypeError:
		return "ERR", colorRed
	default:
		return "WARN", colorYellow
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}

func colorize(text, color string) string {
	if color == "" || !colorEnabled() {
		return text
	}
	return color + text + colorReset
}

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

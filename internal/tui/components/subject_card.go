package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/tui/styles"
)

const subjectCardWidth = 26

// SubjectCard contains data needed to render a selectable subject.
type SubjectCard struct {
	Subject  models.Subject
	Selected bool
	Cursor   bool
}

// RenderSubjectCard renders a subject with difficulty and progress.
func RenderSubjectCard(styleSet styles.Styles, card SubjectCard) string {
	marker := "[ ]"
	if card.Selected {
		marker = "[x]"
	}
	nameStyle := styleSet.Text
	if card.Selected {
		nameStyle = styleSet.Selected
	}
	header := fmt.Sprintf("%s %s", styleSet.Accent.Render(marker), nameStyle.Render(defaultIfEmpty(card.Subject.Name, "Subject")))
	difficulty := renderDifficulty(styleSet, card.Subject.Difficulty)
	progress := styleSet.Muted.Render(fmt.Sprintf("%d%% complete  %dh", card.Subject.Progress, card.Subject.HoursAllocated))

	content := strings.Join([]string{header, difficulty, progress}, "\n")

	border := lipgloss.Color(styleSet.Theme.Tokens.Border)
	if card.Cursor {
		border = lipgloss.Color(styleSet.Theme.Tokens.Focus)
	}
	return styleSet.Card.
		BorderForeground(border).
		Width(subjectCardWidth).
		MaxWidth(subjectCardWidth + 2).
		Render(content)
}

func renderDifficulty(styleSet styles.Styles, difficulty models.Difficulty) string {
	label := fmt.Sprintf("Difficulty: %s", defaultIfEmpty(string(difficulty), "--"))
	switch difficulty {
	case models.DifficultyHigh:
		return styleSet.Error.Render(label)
	case models.DifficultyMedium:
		return styleSet.Warning.Render(label)
	default:
		return styleSet.Success.Render(label)
	}
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Package events provides helper functions for logging StudyMind interactions.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opencode-ai/studymind/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogNavigated records a view change.
func LogNavigated(ctx context.Context, repo Repository, from, to string) error {
	return record(ctx, repo, models.EventTypeViewNavigated, models.EntityTypeView, to,
		models.NavigatedPayload{From: from, To: to})
}

// LogStepChanged records a wizard step transition.
func LogStepChanged(ctx context.Context, repo Repository, wizard string, from, to int) error {
	return record(ctx, repo, models.EventTypeWizardStepChanged, models.EntityTypeWizard, wizard,
		models.StepChangedPayload{Wizard: wizard, From: from, To: to})
}

// LogTimer records a pomodoro control action (start, pause, reset).
func LogTimer(ctx context.Context, repo Repository, eventType models.EventType, remaining int) error {
	return record(ctx, repo, eventType, models.EntityTypeTimer, "pomodoro",
		models.PhaseChangedPayload{RemainingSeconds: remaining})
}

// LogPhaseChanged records a focus/break flip.
func LogPhaseChanged(ctx context.Context, repo Repository, phase string, remaining int) error {
	return record(ctx, repo, models.EventTypeTimerPhaseChanged, models.EntityTypeTimer, "pomodoro",
		models.PhaseChangedPayload{Phase: phase, RemainingSeconds: remaining})
}

// LogThemeChanged records a theme preference change.
func LogThemeChanged(ctx context.Context, repo Repository, oldTheme, newTheme string) error {
	return record(ctx, repo, models.EventTypeThemeChanged, models.EntityTypeTheme, "theme",
		models.ThemeChangedPayload{Old: oldTheme, New: newTheme})
}

// LogUser records a login, logout or registration.
func LogUser(ctx context.Context, repo Repository, eventType models.EventType, email string) error {
	if email == "" {
		return fmt.Errorf("user email is required")
	}
	return record(ctx, repo, eventType, models.EntityTypeUser, email, nil)
}

// LogPlan records a generated or accepted study plan.
func LogPlan(ctx context.Context, repo Repository, eventType models.EventType, days, sessions int) error {
	return record(ctx, repo, eventType, models.EntityTypePlan, "weekly",
		models.PlanPayload{Days: days, Sessions: sessions})
}

func record(ctx context.Context, repo Repository, eventType models.EventType, entityType models.EntityType, entityID string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if entityID == "" {
		return fmt.Errorf("%s id is required", entityType)
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Payload = data
	}

	return repo.Create(ctx, event)
}

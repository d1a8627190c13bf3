package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the interaction log.
type EventType string

const (
	// User events
	EventTypeUserLoggedIn   EventType = "user.logged_in"
	EventTypeUserLoggedOut  EventType = "user.logged_out"
	EventTypeUserRegistered EventType = "user.registered"

	// Navigation events
	EventTypeViewNavigated     EventType = "view.navigated"
	EventTypeWizardStepChanged EventType = "wizard.step_changed"

	// Timer events
	EventTypeTimerStarted      EventType = "timer.started"
	EventTypeTimerPaused       EventType = "timer.paused"
	EventTypeTimerReset        EventType = "timer.reset"
	EventTypeTimerPhaseChanged EventType = "timer.phase_changed"

	// Planner events
	EventTypePlanGenerated EventType = "plan.generated"
	EventTypePlanAccepted  EventType = "plan.accepted"

	// Preference events
	EventTypeThemeChanged EventType = "theme.changed"

	// System events
	EventTypeError   EventType = "error"
	EventTypeWarning EventType = "warning"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeUser   EntityType = "user"
	EntityTypeView   EntityType = "view"
	EntityTypeWizard EntityType = "wizard"
	EntityTypeTimer  EntityType = "timer"
	EntityTypePlan   EntityType = "plan"
	EntityTypeTheme  EntityType = "theme"
	EntityTypeSystem EntityType = "system"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// NavigatedPayload is the payload for view.navigated events.
type NavigatedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StepChangedPayload is the payload for wizard.step_changed events.
type StepChangedPayload struct {
	Wizard string `json:"wizard"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// PhaseChangedPayload is the payload for timer.phase_changed events.
type PhaseChangedPayload struct {
	Phase            string `json:"phase"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// ThemeChangedPayload is the payload for theme.changed events.
type ThemeChangedPayload struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// PlanPayload is the payload for plan.generated and plan.accepted events.
type PlanPayload struct {
	Days     int `json:"days"`
	Sessions int `json:"sessions"`
}

// ErrorPayload is the payload for error events.
type ErrorPayload struct {
	Error   string `json:"error"`
	Context string `json:"context,omitempty"`
}

package models

import (
	"errors"
	"testing"
)

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"John Doe":          "JD",
		"ada lovelace":      "AL",
		"  Marie   Curie  ": "MC",
		"":                  "",
		"émile zola":        "ÉZ",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnapshotValidate(t *testing.T) {
	snap := &Snapshot{
		Subjects: []Subject{
			{ID: 1, Name: "Mathematics", Progress: 65},
			{ID: 1, Name: "", Progress: 120},
		},
	}
	err := snap.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verr.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Errors), err)
	}
}

func TestEventValidate(t *testing.T) {
	event := &Event{Type: EventTypeThemeChanged, EntityType: EntityTypeTheme}
	if err := event.Validate(); err == nil {
		t.Fatal("expected missing entity id to fail validation")
	}
	event.EntityID = "theme"
	if err := event.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/opencode-ai/studymind/internal/models"
)

func TestEventRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewEventRepository(db)
	ctx := context.Background()

	payload, _ := json.Marshal(models.ThemeChangedPayload{Old: "auto", New: "light"})
	event := &models.Event{
		Type:       models.EventTypeThemeChanged,
		EntityType: models.EntityTypeTheme,
		EntityID:   "theme",
		Payload:    payload,
		Metadata:   map[string]string{"source": "shortcut"},
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Type != models.EventTypeThemeChanged {
		t.Fatalf("unexpected type: %q", got.Type)
	}
	if got.Metadata["source"] != "shortcut" {
		t.Fatalf("unexpected metadata: %v", got.Metadata)
	}
	if string(got.Payload) != string(payload) {
		t.Fatalf("payload = %s, want %s", got.Payload, payload)
	}
}

func TestEventRepository_RejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := NewEventRepository(db).Create(context.Background(), &models.Event{Type: models.EventTypeError})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("Create() error = %v, want ErrInvalidEvent", err)
	}
}

func TestEventRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := NewEventRepository(db).Get(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Get() error = %v, want ErrEventNotFound", err)
	}
}

func TestEventRepository_QueryPagination(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewEventRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		event := &models.Event{
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Type:       models.EventTypeViewNavigated,
			EntityType: models.EntityTypeView,
			EntityID:   "dashboard",
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	other := &models.Event{
		Timestamp:  base.Add(10 * time.Second),
		Type:       models.EventTypeTimerStarted,
		EntityType: models.EntityTypeTimer,
		EntityID:   "pomodoro",
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	navType := models.EventTypeViewNavigated
	page, err := repo.Query(ctx, EventQuery{Type: &navType, Limit: 3})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Events) != 3 || page.NextCursor == "" {
		t.Fatalf("first page: %d events, cursor %q", len(page.Events), page.NextCursor)
	}

	page, err = repo.Query(ctx, EventQuery{Type: &navType, Limit: 3, Cursor: page.NextCursor})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Events) != 2 || page.NextCursor != "" {
		t.Fatalf("second page: %d events, cursor %q", len(page.Events), page.NextCursor)
	}

	recent, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 || recent[0].Type != models.EventTypeTimerStarted {
		t.Fatalf("Recent() = %+v", recent)
	}

	counts, err := repo.CountByType(ctx)
	if err != nil {
		t.Fatalf("CountByType() error = %v", err)
	}
	if counts[models.EventTypeViewNavigated] != 5 || counts[models.EventTypeTimerStarted] != 1 {
		t.Fatalf("CountByType() = %v", counts)
	}
}

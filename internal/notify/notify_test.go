package notify

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestNotificationsExpire(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	e := NewEmitter(WithClock(clock.Now))

	e.Push(KindSuccess, "Welcome back!")
	clock.now = clock.now.Add(2 * time.Second)
	e.Push(KindInfo, "Previous week loaded")

	if got := len(e.Active()); got != 2 {
		t.Fatalf("expected 2 active, got %d", got)
	}

	clock.now = clock.now.Add(1 * time.Second)
	active := e.Active()
	if len(active) != 1 || active[0].Message != "Previous week loaded" {
		t.Fatalf("unexpected active notifications: %+v", active)
	}

	clock.now = clock.now.Add(5 * time.Second)
	if got := len(e.Active()); got != 0 {
		t.Fatal("expected no notifications after expiry")
	}
}

func TestUnknownKindFallsBackToInfo(t *testing.T) {
	e := NewEmitter()
	n := e.Push(Kind("shout"), "hello")
	if n.Kind != KindInfo {
		t.Fatalf("expected info, got %q", n.Kind)
	}
}

func TestActiveOrderAndIDs(t *testing.T) {
	e := NewEmitter(WithTTL(time.Minute))
	first := e.Push(KindWarning, "one")
	second := e.Push(KindError, "two")
	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}
	active := e.Active()
	if len(active) != 2 || active[1].Message != "two" || active[1].Kind != KindError {
		t.Fatalf("unexpected active notifications: %+v", active)
	}
}

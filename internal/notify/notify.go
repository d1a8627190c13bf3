// Package notify holds transient, self-expiring user notifications.
package notify

import "time"

// Kind is the notification severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Notification is one banner.
type Notification struct {
	ID        uint64
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Emitter queues notifications and drops them once expired.
type Emitter struct {
	ttl   time.Duration
	now   func() time.Time
	next  uint64
	items []Notification
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTTL overrides the visibility window.
func WithTTL(ttl time.Duration) Option {
	return func(e *Emitter) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEmitter creates an empty emitter.
func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TTL returns the visibility window.
func (e *Emitter) TTL() time.Duration { return e.ttl }

// Push queues a message. Unknown kinds are treated as info.
func (e *Emitter) Push(kind Kind, message string) Notification {
	switch kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
	default:
		kind = KindInfo
	}
	now := e.now()
	e.next++
	n := Notification{
		ID:        e.next,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(e.ttl),
	}
	e.items = append(e.items, n)
	return n
}

// Active prunes expired notifications and returns the rest, oldest first.
func (e *Emitter) Active() []Notification {
	now := e.now()
	kept := e.items[:0]
	for _, n := range e.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	e.items = kept
	return append([]Notification(nil), kept...)
}

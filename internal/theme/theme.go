// Package theme persists and resolves the tri-state color preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/studymind/internal/db"
)

// PreferenceKey is the preferences row holding the theme.
const PreferenceKey = "theme"

// Preference is the stored choice.
type Preference string

const (
	Auto  Preference = "auto"
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Appearance is the palette actually applied.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

var order = []Preference{Auto, Light, Dark}

// Parse converts a stored value into a Preference. Unknown values map to Auto.
func Parse(value string) Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return Auto
	}
}

// Valid reports whether value names a preference exactly.
func Valid(value string) bool {
	switch Preference(value) {
	case Auto, Light, Dark:
		return true
	}
	return false
}

// Next returns the preference after p in the auto, light, dark rotation.
func (p Preference) Next() Preference {
	for i, candidate := range order {
		if candidate == p {
			return order[(i+1)%len(order)]
		}
	}
	return Light
}

// Label is the text shown next to the theme toggle.
func (p Preference) Label() string {
	switch p {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "Auto"
	}
}

// Icon is the glyph on the theme toggle.
func (p Preference) Icon() string {
	switch p {
	case Light:
		return "🌙"
	case Dark:
		return "☀️"
	default:
		return "🌓"
	}
}

// Repository is the subset of the preference store the theme needs.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ChangeFunc is called after the preference changes.
type ChangeFunc func(old, next Preference)

// Store holds the current preference and persists every change.
type Store struct {
	repo       Repository
	pref       Preference
	detectDark func() bool
	dark       *bool
	listeners  []ChangeFunc
	logger     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBackgroundDetector overrides terminal background detection for auto.
func WithBackgroundDetector(fn func() bool) Option {
	return func(s *Store) {
		if fn != nil {
			s.detectDark = fn
		}
	}
}

// NewStore loads the persisted preference. When nothing is stored the
// fallback is used; unknown stored values load as Auto.
func NewStore(ctx context.Context, repo Repository, fallback Preference, logger zerolog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		repo:       repo,
		pref:       Parse(string(fallback)),
		detectDark: lipgloss.HasDarkBackground,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if repo == nil {
		return s, nil
	}

	value, err := repo.Get(ctx, PreferenceKey)
	switch {
	case errors.Is(err, db.ErrPreferenceNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load theme: %w", err)
	default:
		if !Valid(value) {
			s.logger.Debug().Str("value", value).Msg("unknown stored theme, using auto")
		}
		s.pref = Parse(value)
	}
	return s, nil
}

// Preference returns the current choice.
func (s *Store) Preference() Preference {
	return s.pref
}

// Appearance resolves the preference to a concrete palette. Auto follows the
// terminal background, detected once.
func (s *Store) Appearance() Appearance {
	switch s.pref {
	case Light:
		return AppearanceLight
	case Dark:
		return AppearanceDark
	}
	if s.dark == nil {
		dark := s.detectDark()
		s.dark = &dark
	}
	if *s.dark {
		return AppearanceDark
	}
	return AppearanceLight
}

// OnChange registers fn to run after each change.
func (s *Store) OnChange(fn ChangeFunc) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Cycle rotates auto -> light -> dark -> auto and persists the result.
// The new preference applies even when persisting fails.
func (s *Store) Cycle(ctx context.Context) (Preference, error) {
	next := s.pref.Next()
	return next, s.Set(ctx, next)
}

// Set applies and persists p.
func (s *Store) Set(ctx context.Context, p Preference) error {
	if !Valid(string(p)) {
		return fmt.Errorf("unknown theme %q", p)
	}
	old := s.pref
	s.pref = p
	for _, fn := range s.listeners {
		fn(old, p)
	}
	s.logger.Debug().Str("old", string(old)).Str("new", string(p)).Msg("theme changed")

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Set(ctx, PreferenceKey, string(p)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Package pomodoro implements the focus/break countdown timer.
//
// The timer is a pure state machine: it never sleeps or spawns goroutines.
// The caller delivers one Tick per second, tagged with the Handle returned by
// Start. Ticks carrying any other handle are stale and ignored, so at most
// one countdown can drive the timer at a time.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Phase is the timer sub-state.
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseBreak
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	if p == PhaseBreak {
		return "break"
	}
	return "focus"
}

// Label is the heading shown above the clock.
func (p Phase) Label() string {
	if p == PhaseBreak {
		return "Break Time"
	}
	return "Focus Time"
}

// Notice is the notification emitted when the timer enters the phase.
func (p Phase) Notice() string {
	if p == PhaseBreak {
		return "Break time!"
	}
	return "Focus time!"
}

// Status is the coarse timer state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	default:
		return "idle"
	}
}

// Handle identifies one countdown. The zero Handle never matches.
type Handle uint64

// Config holds the phase durations.
type Config struct {
	Focus time.Duration
	Break time.Duration
}

// DefaultConfig returns the classic 25/5 split.
func DefaultConfig() Config {
	return Config{Focus: 25 * time.Minute, Break: 5 * time.Minute}
}

// State is a read-only view of the timer.
type State struct {
	Remaining int // seconds
	Phase     Phase
	Status    Status
}

// Running reports whether a countdown is active.
func (s State) Running() bool { return s.Status == StatusRunning }

// Clock formats the remaining time as MM:SS.
func (s State) Clock() string { return FormatClock(s.Remaining) }

// PhaseChange describes a completed phase.
type PhaseChange struct {
	Phase     Phase // the phase just entered
	Remaining int
}

// TickResult reports what a tick did.
type TickResult struct {
	// Applied is false when the tick was stale and ignored.
	Applied bool
	// Continue is true when the caller should schedule another tick.
	Continue bool
	// Change is set when the countdown reached zero.
	Change *PhaseChange
}

// Timer is the pomodoro state machine.
type Timer struct {
	focus     int
	brk       int
	remaining int
	phase     Phase
	status    Status
	active    Handle
	issued    Handle
	logger    zerolog.Logger
}

// New creates an idle timer loaded with the focus duration.
func New(cfg Config, logger zerolog.Logger) *Timer {
	def := DefaultConfig()
	if cfg.Focus < time.Second {
		cfg.Focus = def.Focus
	}
	if cfg.Break < time.Second {
		cfg.Break = def.Break
	}
	t := &Timer{
		focus:  int(cfg.Focus / time.Second),
		brk:    int(cfg.Break / time.Second),
		logger: logger,
	}
	t.remaining = t.focus
	return t
}

// State returns a snapshot of the timer.
func (t *Timer) State() State {
	return State{Remaining: t.remaining, Phase: t.phase, Status: t.status}
}

// Durations returns the configured focus and break lengths in seconds.
func (t *Timer) Durations() (focus, brk int) { return t.focus, t.brk }

// Start begins a countdown. It is a no-op returning false when already running.
func (t *Timer) Start() (Handle, bool) {
	if t.status == StatusRunning {
		return t.active, false
	}
	t.issued++
	t.active = t.issued
	t.status = StatusRunning
	t.logger.Debug().Uint64("handle", uint64(t.active)).Str("phase", t.phase.String()).Int("remaining", t.remaining).Msg("timer started")
	return t.active, true
}

// Pause halts the countdown and keeps the remaining time.
func (t *Timer) Pause() bool {
	if t.status != StatusRunning {
		return false
	}
	t.active = 0
	t.status = StatusPaused
	t.logger.Debug().Int("remaining", t.remaining).Msg("timer paused")
	return true
}

// Stop halts the countdown without touching phase or remaining time.
func (t *Timer) Stop() {
	t.active = 0
	if t.status == StatusRunning {
		t.status = StatusPaused
	}
}

// Reset halts the countdown and reloads the focus phase.
func (t *Timer) Reset() {
	t.active = 0
	t.status = StatusIdle
	t.phase = PhaseFocus
	t.remaining = t.focus
	t.logger.Debug().Msg("timer reset")
}

// Tick advances the countdown by one second if h is the live handle.
func (t *Timer) Tick(h Handle) TickResult {
	if h == 0 || h != t.active || t.status != StatusRunning {
		return TickResult{}
	}

	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return TickResult{Applied: true, Continue: true}
	}

	if t.phase == PhaseFocus {
		t.phase = PhaseBreak
		t.remaining = t.brk
	} else {
		t.phase = PhaseFocus
		t.remaining = t.focus
	}
	t.active = 0
	t.status = StatusIdle

	t.logger.Info().Str("phase", t.phase.String()).Int("remaining", t.remaining).Msg("timer phase changed")
	return TickResult{
		Applied: true,
		Change:  &PhaseChange{Phase: t.phase, Remaining: t.remaining},
	}
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

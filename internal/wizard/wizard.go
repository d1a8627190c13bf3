// Package wizard implements ordered multi-step flows with one visible step.
package wizard

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrUnknownStep is returned for step numbers outside [1, N].
var ErrUnknownStep = errors.New("unknown wizard step")

// Step declares one screen of a wizard.
type Step struct {
	Label string

	// Validate gates forward movement out of this step. Optional.
	Validate func() error

	// OnEnter runs every time the step becomes active. Optional.
	OnEnter func()
}

// Indicator is the progress marker for one step.
type Indicator struct {
	Number int
	Label  string
	Active bool
	Done   bool
}

// Wizard is a state machine over step numbers 1..N.
type Wizard struct {
	name     string
	steps    []Step
	current  int
	onChange func(from, to int)
	logger   zerolog.Logger
}

// New creates a wizard positioned at step 1.
func New(name string, steps []Step, logger zerolog.Logger) (*Wizard, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard %s: no steps declared", name)
	}
	return &Wizard{
		name:    name,
		steps:   append([]Step(nil), steps...),
		current: 1,
		logger:  logger.With().Str("wizard", name).Logger(),
	}, nil
}

// Name returns the wizard name.
func (w *Wizard) Name() string { return w.name }

// Current returns the active step number.
func (w *Wizard) Current() int { return w.current }

// Len returns the number of steps.
func (w *Wizard) Len() int { return len(w.steps) }

// IsActive reports whether step n is the visible one.
func (w *Wizard) IsActive(n int) bool { return n == w.current }

// Label returns the label of step n, or "" when n is not declared.
func (w *Wizard) Label(n int) string {
	if !w.valid(n) {
		return ""
	}
	return w.steps[n-1].Label
}

// OnChange registers fn to run after every step change.
func (w *Wizard) OnChange(fn func(from, to int)) { w.onChange = fn }

// Advance moves to step target. Moving forward requires the current step's
// gate to pass. Undeclared targets leave the wizard unchanged.
func (w *Wizard) Advance(target int) error {
	if !w.valid(target) {
		w.logger.Debug().Int("target", target).Msg("advance to undeclared step ignored")
		return fmt.Errorf("%w: %d", ErrUnknownStep, target)
	}
	if target > w.current {
		if gate := w.steps[w.current-1].Validate; gate != nil {
			if err := gate(); err != nil {
				return err
			}
		}
	}
	w.moveTo(target)
	return nil
}

// Retreat moves to step target without running gates.
func (w *Wizard) Retreat(target int) error {
	if !w.valid(target) {
		w.logger.Debug().Int("target", target).Msg("retreat to undeclared step ignored")
		return fmt.Errorf("%w: %d", ErrUnknownStep, target)
	}
	w.moveTo(target)
	return nil
}

// Next advances one step.
func (w *Wizard) Next() error { return w.Advance(w.current + 1) }

// Back retreats one step.
func (w *Wizard) Back() error { return w.Retreat(w.current - 1) }

// Reset returns to step 1 without running hooks.
func (w *Wizard) Reset() {
	from := w.current
	w.current = 1
	if from != 1 && w.onChange != nil {
		w.onChange(from, 1)
	}
}

// Indicators returns the step markers in order.
func (w *Wizard) Indicators() []Indicator {
	out := make([]Indicator, len(w.steps))
	for i, step := range w.steps {
		n := i + 1
		out[i] = Indicator{
			Number: n,
			Label:  step.Label,
			Active: n == w.current,
			Done:   n < w.current,
		}
	}
	return out
}

func (w *Wizard) valid(n int) bool {
	return n >= 1 && n <= len(w.steps)
}

func (w *Wizard) moveTo(target int) {
	from := w.current
	w.current = target
	if hook := w.steps[target-1].OnEnter; hook != nil {
		hook()
	}
	if w.onChange != nil {
		w.onChange(from, target)
	}
	w.logger.Debug().Int("from", from).Int("to", target).Msg("step changed")
}

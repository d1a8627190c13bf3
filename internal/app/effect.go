package app

import (
	"time"

	"github.com/opencode-ai/studymind/internal/navigator"
)

// EffectKind names a piece of deferred work.
type EffectKind int

const (
	EffectTimerTick EffectKind = iota + 1
	EffectAnalysisFrame
	EffectFinishLogin
	EffectFinishRegistration
	EffectShowCalendar
	EffectExpireNotification
)

// String returns the effect name for logs.
func (k EffectKind) String() string {
	switch k {
	case EffectTimerTick:
		return "timer_tick"
	case EffectAnalysisFrame:
		return "analysis_frame"
	case EffectFinishLogin:
		return "finish_login"
	case EffectFinishRegistration:
		return "finish_registration"
	case EffectShowCalendar:
		return "show_calendar"
	case EffectExpireNotification:
		return "expire_notification"
	default:
		return "unknown"
	}
}

// Effect is work the UI loop must deliver back through Apply after the delay.
// Handle identifies the run that scheduled it; stale handles are ignored.
type Effect struct {
	Kind   EffectKind
	After  time.Duration
	Handle uint64
}

// Delays are the simulated latencies of the canned flows.
type Delays struct {
	Login        time.Duration
	Registration time.Duration
	PlanRedirect time.Duration
}

// DefaultDelays returns the stock latencies.
func DefaultDelays() Delays {
	return Delays{
		Login:        1500 * time.Millisecond,
		Registration: 2 * time.Second,
		PlanRedirect: 1500 * time.Millisecond,
	}
}

func (d Delays) withDefaults() Delays {
	def := DefaultDelays()
	if d.Login <= 0 {
		d.Login = def.Login
	}
	if d.Registration <= 0 {
		d.Registration = def.Registration
	}
	if d.PlanRedirect <= 0 {
		d.PlanRedirect = def.PlanRedirect
	}
	return d
}

func (s *State) schedule(kind EffectKind, after time.Duration, handle uint64) {
	s.effects = append(s.effects, Effect{Kind: kind, After: after, Handle: handle})
}

// Effects returns and clears the work scheduled since the last call.
func (s *State) Effects() []Effect {
	out := s.effects
	s.effects = nil
	return out
}

// Apply runs a previously scheduled effect.
func (s *State) Apply(e Effect) {
	switch e.Kind {
	case EffectTimerTick:
		s.timerTick(e.Handle)
	case EffectAnalysisFrame:
		s.analysisFrame(e.Handle)
	case EffectFinishLogin:
		if s.claim(e) {
			s.finishLogin()
		}
	case EffectFinishRegistration:
		if s.claim(e) {
			s.finishRegistration()
		}
	case EffectShowCalendar:
		if s.claim(e) {
			s.Sections.NavigateTo(navigator.SectionCalendar)
		}
	case EffectExpireNotification:
		s.Notifier.Active()
	default:
		s.logger.Debug().Int("kind", int(e.Kind)).Msg("unknown effect ignored")
	}
}

// deferAction starts a single-flight delayed action of kind, replacing any
// pending one of the same kind.
func (s *State) deferAction(kind EffectKind, after time.Duration) {
	s.seq++
	s.pending[kind] = s.seq
	s.schedule(kind, after, s.seq)
}

func (s *State) claim(e Effect) bool {
	if s.pending[e.Kind] != e.Handle || e.Handle == 0 {
		s.logger.Debug().Str("effect", e.Kind.String()).Uint64("handle", e.Handle).Msg("stale effect ignored")
		return false
	}
	delete(s.pending, e.Kind)
	return true
}

// Pending reports whether a delayed action of kind is in flight.
func (s *State) Pending(kind EffectKind) bool {
	_, ok := s.pending[kind]
	return ok
}

package app

import (
	"context"
	"time"

	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/pomodoro"
)

// TimerInterval is the countdown resolution.
const TimerInterval = time.Second

// PomodoroOpen reports whether the pomodoro panel is shown.
func (s *State) PomodoroOpen() bool { return s.pomodoroOpen }

// TogglePomodoro opens or closes the pomodoro panel. Opening it starts from
// a fresh focus phase; closing it halts a running countdown.
func (s *State) TogglePomodoro() {
	s.pomodoroOpen = !s.pomodoroOpen
	if s.pomodoroOpen {
		s.ResetTimer()
		return
	}
	s.Timer.Stop()
}

// StartTimer starts the countdown. It is a no-op when already running.
func (s *State) StartTimer() bool {
	h, ok := s.Timer.Start()
	if !ok {
		return false
	}
	s.schedule(EffectTimerTick, TimerInterval, uint64(h))
	s.logTimer(models.EventTypeTimerStarted)
	return true
}

// PauseTimer halts the countdown, keeping the remaining time.
func (s *State) PauseTimer() bool {
	if !s.Timer.Pause() {
		return false
	}
	s.logTimer(models.EventTypeTimerPaused)
	return true
}

// ResetTimer reloads the focus phase.
func (s *State) ResetTimer() {
	s.Timer.Reset()
	s.logTimer(models.EventTypeTimerReset)
}

func (s *State) logTimer(eventType models.EventType) {
	remaining := s.Timer.State().Remaining
	s.record(func(ctx context.Context, repo events.Repository) error {
		return events.LogTimer(ctx, repo, eventType, remaining)
	})
}

func (s *State) timerTick(h uint64) {
	res := s.Timer.Tick(pomodoro.Handle(h))
	if res.Continue {
		s.schedule(EffectTimerTick, TimerInterval, h)
	}
	if change := res.Change; change != nil {
		s.notify(notify.KindSuccess, change.Phase.Notice())
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogPhaseChanged(ctx, repo, change.Phase.String(), change.Remaining)
		})
	}
}

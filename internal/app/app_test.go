package app

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencode-ai/studymind/internal/auth"
	"github.com/opencode-ai/studymind/internal/config"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/navigator"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/pomodoro"
	"github.com/opencode-ai/studymind/internal/seed"
	"github.com/opencode-ai/studymind/internal/theme"
)

type fakeEvents struct {
	events []*models.Event
}

func (f *fakeEvents) Create(_ context.Context, event *models.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) count(eventType models.EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type scheduled struct {
	at     time.Duration
	seq    int
	effect Effect
}

// virtualLoop delivers scheduled effects in virtual time, standing in for
// the bubbletea runtime.
type virtualLoop struct {
	s     *State
	now   time.Duration
	seq   int
	queue []scheduled
}

func (l *virtualLoop) collect() {
	for _, e := range l.s.Effects() {
		l.seq++
		l.queue = append(l.queue, scheduled{at: l.now + e.After, seq: l.seq, effect: e})
	}
}

func (l *virtualLoop) advance(d time.Duration) {
	deadline := l.now + d
	l.collect()
	for {
		sort.SliceStable(l.queue, func(i, j int) bool {
			if l.queue[i].at != l.queue[j].at {
				return l.queue[i].at < l.queue[j].at
			}
			return l.queue[i].seq < l.queue[j].seq
		})
		if len(l.queue) == 0 || l.queue[0].at > deadline {
			break
		}
		next := l.queue[0]
		l.queue = l.queue[1:]
		l.now = next.at
		l.s.Apply(next.effect)
		l.collect()
	}
	l.now = deadline
}

type harness struct {
	state  *State
	loop   *virtualLoop
	events *fakeEvents
}

func newHarness(t *testing.T, mutate func(cfg *config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	snapshot, err := seed.Builtin()
	require.NoError(t, err)

	store, err := theme.NewStore(context.Background(), nil, theme.Auto, zerolog.Nop(),
		theme.WithBackgroundDetector(func() bool { return true }))
	require.NoError(t, err)

	loop := &virtualLoop{}
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	recorder := &fakeEvents{}

	s, err := New(context.Background(), Deps{
		Config:   cfg,
		Snapshot: snapshot,
		Theme:    store,
		Auth:     auth.NewService(nil, zerolog.Nop(), auth.WithCost(bcrypt.MinCost)),
		Events:   recorder,
		Notifier: notify.NewEmitter(notify.WithClock(func() time.Time { return base.Add(loop.now) })),
		Rand:     rand.New(rand.NewSource(7)),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	loop.s = s
	return &harness{state: s, loop: loop, events: recorder}
}

func (h *harness) latest(t *testing.T) notify.Notification {
	t.Helper()
	active := h.state.Notifier.Active()
	require.NotEmpty(t, active, "expected an active notification")
	return active[len(active)-1]
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	require.True(t, h.state.BeginLogin("student@example.com", "secret"))
	h.loop.advance(DefaultDelays().Login)
	require.True(t, h.state.SignedIn())
}

func TestNewRequiresSnapshotAndTheme(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	require.Error(t, err)
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	assert.Equal(t, navigator.PageLanding, s.Pages.Current())
	assert.Equal(t, navigator.SectionDashboard, s.Sections.Current())
	assert.Equal(t, 1, s.Registration.Current())
	assert.Equal(t, 1, s.Planner.Current())
	assert.Len(t, s.Projections(), 2)
	assert.Len(t, s.Week(), 7)
	assert.False(t, s.SignedIn())
}

func TestLoginIsDelayed(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.ShowAuth(AuthLogin)

	require.True(t, s.BeginLogin("student@example.com", "secret"))
	assert.False(t, s.BeginLogin("student@example.com", "secret"), "second login while pending")
	assert.True(t, s.Pending(EffectFinishLogin))

	h.loop.advance(1499 * time.Millisecond)
	assert.Equal(t, navigator.PageAuth, s.Pages.Current())

	h.loop.advance(time.Millisecond)
	assert.Equal(t, navigator.PageApp, s.Pages.Current())
	assert.Equal(t, navigator.SectionDashboard, s.Sections.Current())
	require.NotNil(t, s.User())
	assert.Equal(t, auth.DemoInitials, s.User().Initials)
	assert.Equal(t, "Welcome back!", h.latest(t).Message)
	assert.Equal(t, 1, h.events.count(models.EventTypeUserLoggedIn))

	h.loop.advance(3 * time.Second)
	assert.Empty(t, s.Notifier.Active(), "notification should expire")
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.state.BeginLogin("", "secret"))
	assert.Equal(t, notify.KindError, h.latest(t).Kind)
	assert.False(t, h.state.Pending(EffectFinishLogin))
}

func TestRegistrationGates(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.ShowAuth(AuthRegister)

	assert.False(t, s.RegistrationNext())
	assert.Equal(t, 1, s.Registration.Current())
	assert.Equal(t, notify.KindWarning, h.latest(t).Kind)

	s.Form.Name = "Grace Hopper"
	s.Form.Email = "grace@example.com"
	require.True(t, s.RegistrationNext())
	assert.Equal(t, 2, s.Registration.Current())

	s.Form.Password = "abc"
	assert.False(t, s.RegistrationNext())
	s.Form.Password = "Compiler1"
	require.True(t, s.RegistrationNext())
	assert.Equal(t, 3, s.Registration.Current())
	assert.False(t, s.RegistrationNext(), "no step after the last")

	require.True(t, s.RegistrationBack())
	require.True(t, s.RegistrationNext())

	require.True(t, s.CompleteRegistration())
	assert.False(t, s.CompleteRegistration())
	h.loop.advance(1999 * time.Millisecond)
	assert.False(t, s.SignedIn())
	h.loop.advance(time.Millisecond)

	require.True(t, s.SignedIn())
	assert.Equal(t, "GH", s.User().Initials)
	assert.Equal(t, navigator.PageApp, s.Pages.Current())
	assert.Equal(t, "Account created successfully!", h.latest(t).Message)
	assert.Equal(t, 1, s.Registration.Current())
	assert.Equal(t, 1, h.events.count(models.EventTypeUserRegistered))
}

func TestLogout(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)
	h.state.ToggleUserMenu()

	h.state.Logout()
	assert.False(t, h.state.SignedIn())
	assert.False(t, h.state.UserMenuOpen())
	assert.Equal(t, navigator.PageLanding, h.state.Pages.Current())
	assert.Equal(t, "Logged out successfully", h.latest(t).Message)
	assert.Equal(t, 1, h.events.count(models.EventTypeUserLoggedOut))
}

func TestShortcutsGatedOnAppPage(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state

	assert.False(t, s.Shortcut('d'))
	assert.False(t, s.Shortcut('c'))
	assert.Equal(t, navigator.PageLanding, s.Pages.Current())

	assert.True(t, s.Shortcut('t'))
	assert.Equal(t, theme.Light, s.Theme.Preference())
	assert.Equal(t, 1, h.events.count(models.EventTypeThemeChanged))

	h.signIn(t)
	assert.True(t, s.Shortcut('c'))
	assert.Equal(t, navigator.SectionCalendar, s.Sections.Current())
	assert.True(t, s.Shortcut('p'))
	assert.Equal(t, navigator.SectionPlanner, s.Sections.Current())
	assert.True(t, s.Shortcut('d'))
	assert.Equal(t, navigator.SectionDashboard, s.Sections.Current())
	assert.False(t, s.Shortcut('x'))
}

func TestSectionInitializers(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	h.signIn(t)

	require.True(t, s.ShowSection(navigator.SectionAnalytics))
	assert.Len(t, s.Projections(), 3)

	s.ToggleUserMenu()
	require.True(t, s.ShowSection(navigator.SectionSettings))
	assert.False(t, s.UserMenuOpen())

	require.True(t, s.ShowSection(navigator.SectionPlanner))
	require.True(t, s.ToggleSubject(1))
	assert.True(t, s.SubjectSelected(1))
	require.True(t, s.ShowSection(navigator.SectionPlanner))
	assert.False(t, s.SubjectSelected(1), "entering the planner resets the selection")
	assert.False(t, s.ToggleSubject(999))

	assert.False(t, s.ShowSection(navigator.ViewID("nowhere")))
}

func TestCalendarWeeks(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.PreviousWeek()
	assert.Equal(t, -1, s.WeekOffset())
	assert.Equal(t, "Previous week loaded", h.latest(t).Message)
	s.NextWeek()
	s.NextWeek()
	assert.Equal(t, 1, s.WeekOffset())
	assert.Equal(t, "Next week loaded", h.latest(t).Message)
	for _, day := range s.Week()[5:] {
		assert.Empty(t, day.Sessions)
	}
}

func TestPlannerFlow(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	h.signIn(t)
	require.True(t, s.ShowSection(navigator.SectionPlanner))

	require.True(t, s.ToggleSubject(1))
	require.True(t, s.ToggleSubject(2))
	assert.Equal(t, []string{"Mathematics", "Physics"}, s.SelectedSubjects())

	require.True(t, s.PlannerNext())
	s.AdjustStudyHours(2)
	s.CycleStudyTime()
	s.CycleSessionLength()
	assert.Equal(t, 6, s.Prefs.HoursPerDay)
	assert.Equal(t, "Afternoon", s.Prefs.PreferredTime)
	assert.Equal(t, 90, s.Prefs.SessionLength)

	require.True(t, s.PlannerNext())
	assert.Equal(t, StepAnalysis, s.Planner.Current())
	require.NotNil(t, s.Analysis())

	assert.False(t, s.PlannerNext(), "analysis gate blocks manual advance")
	assert.Equal(t, StepAnalysis, s.Planner.Current())

	h.loop.advance(6499 * time.Millisecond)
	assert.Equal(t, StepAnalysis, s.Planner.Current())
	h.loop.advance(time.Millisecond)
	assert.Equal(t, StepPlan, s.Planner.Current())

	plan := s.Plan()
	require.Len(t, plan, 5)
	for _, day := range plan {
		for _, subject := range day.Sessions {
			assert.Contains(t, []string{"Mathematics", "Physics"}, subject)
		}
	}
	assert.Equal(t, 1, h.events.count(models.EventTypePlanGenerated))

	require.True(t, s.AcceptPlan())
	assert.Equal(t, "Study plan accepted! Redirecting to calendar...", h.latest(t).Message)
	h.loop.advance(1499 * time.Millisecond)
	assert.Equal(t, navigator.SectionPlanner, s.Sections.Current())
	h.loop.advance(time.Millisecond)
	assert.Equal(t, navigator.SectionCalendar, s.Sections.Current())
	assert.Equal(t, 1, h.events.count(models.EventTypePlanAccepted))
}

func TestReenteringAnalysisReplacesRun(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	h.signIn(t)
	require.True(t, s.ShowSection(navigator.SectionPlanner))
	require.True(t, s.PlannerNext())
	require.True(t, s.PlannerNext())
	first := s.Analysis().Handle()

	h.loop.advance(3 * time.Second)
	require.True(t, s.PlannerBack())
	require.True(t, s.PlannerNext())
	second := s.Analysis().Handle()
	assert.NotEqual(t, first, second)

	h.loop.advance(6499 * time.Millisecond)
	assert.Equal(t, StepAnalysis, s.Planner.Current())
	h.loop.advance(time.Millisecond)
	assert.Equal(t, StepPlan, s.Planner.Current())
	assert.Equal(t, 1, h.events.count(models.EventTypePlanGenerated))
	assert.Empty(t, h.loop.queueOf(EffectAnalysisFrame))
}

func TestAnalysisCompletesAfterSteppingBack(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	h.signIn(t)
	require.True(t, s.ShowSection(navigator.SectionPlanner))
	require.True(t, s.PlannerNext())
	require.True(t, s.PlannerNext())

	h.loop.advance(time.Second)
	require.True(t, s.PlannerBack())
	assert.Equal(t, StepPreferences, s.Planner.Current())

	h.loop.advance(10 * time.Second)
	assert.Equal(t, StepPlan, s.Planner.Current())
	assert.Len(t, s.Plan(), 5)
	assert.Equal(t, 1, h.events.count(models.EventTypePlanGenerated))
}

func TestAcceptPlanRequiresPlanStep(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.state.AcceptPlan())
}

func TestPomodoroPhases(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Timer.Focus = 3 * time.Second
		cfg.Timer.Break = 2 * time.Second
	})
	s := h.state

	require.True(t, s.StartTimer())
	assert.False(t, s.StartTimer())
	h.loop.advance(2 * time.Second)
	assert.Equal(t, 1, s.Timer.State().Remaining)

	h.loop.advance(time.Second)
	state := s.Timer.State()
	assert.Equal(t, pomodoro.PhaseBreak, state.Phase)
	assert.Equal(t, 2, state.Remaining)
	assert.False(t, state.Running())
	assert.Equal(t, "Break time!", h.latest(t).Message)

	require.True(t, s.StartTimer())
	h.loop.advance(2 * time.Second)
	assert.Equal(t, pomodoro.PhaseFocus, s.Timer.State().Phase)
	assert.Equal(t, "Focus time!", h.latest(t).Message)
	assert.Equal(t, 2, h.events.count(models.EventTypeTimerPhaseChanged))
}

func TestClosingPomodoroHaltsCountdown(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.TogglePomodoro()
	require.True(t, s.PomodoroOpen())
	require.True(t, s.StartTimer())
	h.loop.advance(5 * time.Second)
	remaining := s.Timer.State().Remaining

	s.TogglePomodoro()
	h.loop.advance(10 * time.Second)
	assert.Equal(t, remaining, s.Timer.State().Remaining)
	assert.False(t, s.Timer.State().Running())
}

func TestOpeningPomodoroResetsTimer(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Timer.Focus = 3 * time.Second
		cfg.Timer.Break = 2 * time.Second
	})
	s := h.state
	s.TogglePomodoro()
	require.True(t, s.StartTimer())
	h.loop.advance(3 * time.Second)
	require.Equal(t, pomodoro.PhaseBreak, s.Timer.State().Phase)
	require.True(t, s.StartTimer())
	h.loop.advance(time.Second)
	s.TogglePomodoro()
	require.Equal(t, pomodoro.StatusPaused, s.Timer.State().Status)

	s.TogglePomodoro()
	state := s.Timer.State()
	focus, _ := s.Timer.Durations()
	assert.Equal(t, pomodoro.PhaseFocus, state.Phase)
	assert.Equal(t, focus, state.Remaining)
	assert.Equal(t, pomodoro.StatusIdle, state.Status)
	assert.Equal(t, 2, h.events.count(models.EventTypeTimerReset))
}

func TestPauseTimer(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	assert.False(t, s.PauseTimer())
	require.True(t, s.StartTimer())
	h.loop.advance(3 * time.Second)
	require.True(t, s.PauseTimer())
	h.loop.advance(3 * time.Second)
	assert.Equal(t, 1497, s.Timer.State().Remaining)
	assert.Equal(t, 1, h.events.count(models.EventTypeTimerPaused))
}

func TestStaleEffectsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.Apply(Effect{Kind: EffectFinishLogin, Handle: 42})
	s.Apply(Effect{Kind: EffectShowCalendar})
	s.Apply(Effect{Kind: EffectKind(99)})
	assert.Equal(t, navigator.PageLanding, s.Pages.Current())
	assert.False(t, s.SignedIn())
}

func TestRegistrationFormHelpers(t *testing.T) {
	h := newHarness(t, nil)
	s := h.state
	s.CycleStudyGoal()
	assert.Equal(t, StudyGoals[1], s.Form.StudyGoal)
	s.AdjustDailyHours(-10)
	assert.Equal(t, 1, s.Form.DailyHours)
	s.Form.Password = "Abcdefg1"
	assert.Equal(t, auth.Strong, s.Form.Strength().Level)
}

func (l *virtualLoop) queueOf(kind EffectKind) []scheduled {
	l.collect()
	var out []scheduled
	for _, q := range l.queue {
		if q.effect.Kind == kind {
			out = append(out, q)
		}
	}
	return out
}

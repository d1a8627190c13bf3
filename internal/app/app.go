// Package app holds the session state shared by every StudyMind screen.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/studymind/internal/auth"
	"github.com/opencode-ai/studymind/internal/chart"
	"github.com/opencode-ai/studymind/internal/config"
	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/navigator"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/planner"
	"github.com/opencode-ai/studymind/internal/pomodoro"
	"github.com/opencode-ai/studymind/internal/theme"
	"github.com/opencode-ai/studymind/internal/wizard"
)

// Wizard names, also used as event entity ids.
const (
	RegistrationWizard = "registration"
	PlannerWizard      = "planner"
)

// Planner wizard steps.
const (
	StepSubjects    = 1
	StepPreferences = 2
	StepAnalysis    = 3
	StepPlan        = 4
)

// ErrAnalysisRunning gates the analysis step until the simulation finishes.
var ErrAnalysisRunning = errors.New("analysis still running")

// AuthMode selects the form shown on the auth page.
type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthRegister
)

// Deps are the collaborators State is built from.
type Deps struct {
	Config   *config.Config
	Snapshot *models.Snapshot
	Theme    *theme.Store
	Auth     *auth.Service
	// Events receives the interaction log. Optional.
	Events   events.Repository
	Notifier *notify.Emitter
	Rand     *rand.Rand
	Delays   Delays
	Logger   zerolog.Logger
}

// State is the application context. It is owned by the UI loop and is not
// safe for concurrent use.
type State struct {
	Pages        *navigator.Navigator
	Sections     *navigator.Navigator
	Registration *wizard.Wizard
	Planner      *wizard.Wizard
	Analyzer     *planner.Analyzer
	Timer        *pomodoro.Timer
	Theme        *theme.Store
	Notifier     *notify.Emitter
	Board        *planner.Board
	Snapshot     *models.Snapshot

	Form     RegistrationForm
	Prefs    PlannerPreferences
	AuthMode AuthMode

	ctx          context.Context
	user         *models.User
	selected     map[int]bool
	plan         []planner.PlanDay
	week         []planner.CalendarDay
	weekOffset   int
	projections  []chart.Projection
	userMenuOpen bool
	pomodoroOpen bool

	loginEmail    string
	loginPassword string

	seq     uint64
	pending map[EffectKind]uint64
	effects []Effect

	auth   *auth.Service
	events events.Repository
	rng    *rand.Rand
	delays Delays
	logger zerolog.Logger
}

// New builds the state. ctx bounds the persistence calls made on behalf of
// the session.
func New(ctx context.Context, deps Deps) (*State, error) {
	if deps.Snapshot == nil {
		return nil, fmt.Errorf("sample data snapshot is required")
	}
	if deps.Theme == nil {
		return nil, fmt.Errorf("theme store is required")
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rng := deps.Rand
	if rng == nil {
		seed := cfg.Planner.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	authSvc := deps.Auth
	if authSvc == nil {
		authSvc = auth.NewService(nil, deps.Logger)
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NewEmitter()
	}

	s := &State{
		Theme:    deps.Theme,
		Notifier: notifier,
		Snapshot: deps.Snapshot,
		Prefs:    DefaultPlannerPreferences(),
		Form:     RegistrationForm{DailyHours: 2, StudyGoal: StudyGoals[0]},
		ctx:      ctx,
		selected: make(map[int]bool),
		pending:  make(map[EffectKind]uint64),
		auth:     authSvc,
		events:   deps.Events,
		rng:      rng,
		delays:   deps.Delays.withDefaults(),
		logger:   deps.Logger,
	}

	var err error
	if s.Pages, err = navigator.New("pages", navigator.Pages(), navigator.PageLanding, deps.Logger); err != nil {
		return nil, err
	}
	if s.Sections, err = navigator.New("sections", navigator.Sections(), navigator.SectionDashboard, deps.Logger); err != nil {
		return nil, err
	}
	if s.Registration, err = wizard.New(RegistrationWizard, s.registrationSteps(), deps.Logger); err != nil {
		return nil, err
	}
	if s.Planner, err = wizard.New(PlannerWizard, s.plannerSteps(), deps.Logger); err != nil {
		return nil, err
	}

	s.Analyzer = planner.NewAnalyzer(planner.Config{
		Frame:        cfg.Planner.FrameInterval,
		Stagger:      cfg.Planner.Stagger,
		MaxIncrement: planner.DefaultConfig().MaxIncrement,
		InsightDelay: planner.DefaultConfig().InsightDelay,
		AdvanceDelay: planner.DefaultConfig().AdvanceDelay,
	}, planner.DefaultAgents(), rng, deps.Logger.With().Str("component", "analyzer").Logger())
	s.Timer = pomodoro.New(pomodoro.Config{Focus: cfg.Timer.Focus, Break: cfg.Timer.Break},
		deps.Logger.With().Str("component", "pomodoro").Logger())
	s.Board = planner.NewBoard(deps.Snapshot.Agents, rng)

	s.wireNavigation()
	s.Registration.OnChange(func(from, to int) {
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogStepChanged(ctx, repo, RegistrationWizard, from, to)
		})
	})
	s.Planner.OnChange(func(from, to int) {
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogStepChanged(ctx, repo, PlannerWizard, from, to)
		})
	})
	s.Theme.OnChange(func(old, next theme.Preference) {
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogThemeChanged(ctx, repo, string(old), string(next))
		})
	})

	s.projections = chart.Dashboard(deps.Snapshot)
	s.week = planner.GenerateWeek(rng, deps.Snapshot.SubjectNames())
	return s, nil
}

func (s *State) wireNavigation() {
	s.Pages.OnEnter(navigator.PageApp, func() {
		s.Sections.NavigateTo(navigator.SectionDashboard)
	})
	s.Sections.OnEnter(navigator.SectionDashboard, func() {
		s.projections = chart.Dashboard(s.Snapshot)
	})
	s.Sections.OnEnter(navigator.SectionPlanner, func() {
		s.selected = make(map[int]bool)
	})
	s.Sections.OnEnter(navigator.SectionCalendar, s.regenerateWeek)
	s.Sections.OnEnter(navigator.SectionAnalytics, func() {
		s.projections = chart.Analytics(s.Snapshot)
	})
	s.Sections.OnEnter(navigator.SectionSettings, func() {
		s.userMenuOpen = false
	})

	logNav := func(from, to navigator.ViewID) {
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogNavigated(ctx, repo, string(from), string(to))
		})
	}
	s.Pages.OnChange(logNav)
	s.Sections.OnChange(logNav)
}

// record writes an interaction event. Failures are logged, never surfaced.
func (s *State) record(fn func(ctx context.Context, repo events.Repository) error) {
	if s.events == nil {
		return
	}
	if err := fn(s.ctx, s.events); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record interaction")
	}
}

func (s *State) notify(kind notify.Kind, message string) {
	n := s.Notifier.Push(kind, message)
	s.schedule(EffectExpireNotification, s.Notifier.TTL(), n.ID)
}

// User returns the signed-in user, or nil.
func (s *State) User() *models.User { return s.user }

// SignedIn reports whether a user is signed in.
func (s *State) SignedIn() bool { return s.user != nil }

// Projections returns the charts of the current section.
func (s *State) Projections() []chart.Projection { return s.projections }

// Plan returns the generated study plan, or nil before analysis.
func (s *State) Plan() []planner.PlanDay { return s.plan }

// Week returns the calendar grid.
func (s *State) Week() []planner.CalendarDay { return s.week }

// WeekOffset is the number of weeks away from the current one.
func (s *State) WeekOffset() int { return s.weekOffset }

// UserMenuOpen reports whether the account menu is shown.
func (s *State) UserMenuOpen() bool { return s.userMenuOpen }

// ToggleUserMenu opens or closes the account menu.
func (s *State) ToggleUserMenu() { s.userMenuOpen = !s.userMenuOpen }

// Summary returns statistics over the session history.
func (s *State) Summary() chart.Summary { return chart.Summarize(s.Snapshot) }

// ShowLanding opens the landing page.
func (s *State) ShowLanding() bool { return s.Pages.NavigateTo(navigator.PageLanding) }

// ShowAuth opens the auth page with the given form.
func (s *State) ShowAuth(mode AuthMode) bool {
	s.AuthMode = mode
	if mode == AuthRegister {
		s.Registration.Reset()
	}
	return s.Pages.NavigateTo(navigator.PageAuth)
}

// ShowSection switches the app shell section. It does nothing outside the
// app page.
func (s *State) ShowSection(id navigator.ViewID) bool {
	if s.Pages.Current() != navigator.PageApp {
		return false
	}
	return s.Sections.NavigateTo(id)
}

// CycleTheme rotates the theme preference.
func (s *State) CycleTheme() theme.Preference {
	next, err := s.Theme.Cycle(s.ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist theme")
		s.notify(notify.KindWarning, "Theme applied but could not be saved")
	}
	return next
}

// Shortcut handles the modifier shortcuts d, p, c and t. Navigation keys
// only act on the app page.
func (s *State) Shortcut(key rune) bool {
	switch key {
	case 't':
		s.CycleTheme()
		return true
	case 'd':
		return s.ShowSection(navigator.SectionDashboard)
	case 'p':
		return s.ShowSection(navigator.SectionPlanner)
	case 'c':
		return s.ShowSection(navigator.SectionCalendar)
	}
	return false
}

// PreviousWeek moves the calendar back one week.
func (s *State) PreviousWeek() {
	s.weekOffset--
	s.regenerateWeek()
	s.notify(notify.KindInfo, "Previous week loaded")
}

// NextWeek moves the calendar forward one week.
func (s *State) NextWeek() {
	s.weekOffset++
	s.regenerateWeek()
	s.notify(notify.KindInfo, "Next week loaded")
}

func (s *State) regenerateWeek() {
	s.week = planner.GenerateWeek(s.rng, s.Snapshot.SubjectNames())
}

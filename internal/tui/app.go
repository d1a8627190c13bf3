// Package tui implements the StudyMind terminal user interface.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/studymind/internal/app"
	"github.com/opencode-ai/studymind/internal/navigator"
	"github.com/opencode-ai/studymind/internal/theme"
	"github.com/opencode-ai/studymind/internal/tui/styles"
)

// Options configures the TUI program.
type Options struct {
	State        *app.State
	HighContrast bool
	Logger       zerolog.Logger
}

// Run launches the StudyMind TUI program.
func Run(opts Options) error {
	if opts.State == nil {
		return errors.New("tui: application state is required")
	}
	// Background detection queries the terminal and must happen before
	// bubbletea takes over stdin.
	opts.State.Theme.Appearance()

	program := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	state    *app.State
	styles   map[theme.Appearance]styles.Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	inputs   [fieldCount]textinput.Model
	focus    formField
	page     navigator.ViewID
	cursor   int
	width    int
	height   int
	showHelp bool
	spinning bool
	logger   zerolog.Logger
}

const (
	minWidth  = 60
	minHeight = 15
)

func newModel(opts Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		state: opts.State,
		styles: map[theme.Appearance]styles.Styles{
			theme.AppearanceLight: styles.BuildStyles(styles.ForAppearance(theme.AppearanceLight, opts.HighContrast)),
			theme.AppearanceDark:  styles.BuildStyles(styles.ForAppearance(theme.AppearanceDark, opts.HighContrast)),
		},
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		inputs:  newInputs(),
		focus:   fieldNone,
		page:    opts.State.Pages.Current(),
		logger:  opts.Logger,
	}
	m.syncFocus()
	return m
}

func (m model) currentStyles() styles.Styles {
	return m.styles[m.state.Theme.Appearance()]
}

func (m model) Init() tea.Cmd {
	return tea.Batch(activityTickCmd(), confidenceTickCmd(), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case effectMsg:
		m.state.Apply(msg.effect)
	case activityTickMsg:
		m.state.Board.RotateActivities()
		cmds = append(cmds, activityTickCmd())
	case confidenceTickMsg:
		m.state.Board.DriftConfidence()
		cmds = append(cmds, confidenceTickCmd())
	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	default:
		if m.focus != fieldNone {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if current := m.state.Pages.Current(); current != m.page {
		m.logger.Debug().Str("from", string(m.page)).Str("to", string(current)).Msg("page changed")
		m.page = current
		m.cursor = 0
		m.clearInputs()
	}
	m.syncFocus()

	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	cmds = append(cmds, scheduleEffects(m.state.Effects())...)
	return m, tea.Batch(cmds...)
}

// busy reports whether a delayed sign-in or account creation is in flight.
func (m model) busy() bool {
	return m.state.Pending(app.EffectFinishLogin) || m.state.Pending(app.EffectFinishRegistration)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.state.Shortcut('t')
		return m, nil
	case key.Matches(msg, m.keys.Dashboard):
		m.state.Shortcut('d')
		return m, nil
	case key.Matches(msg, m.keys.Planner):
		m.state.Shortcut('p')
		return m, nil
	case key.Matches(msg, m.keys.Calendar):
		m.state.Shortcut('c')
		return m, nil
	}

	switch m.state.Pages.Current() {
	case navigator.PageLanding:
		return m.handleLandingKey(msg)
	case navigator.PageAuth:
		return m.handleAuthKey(msg)
	default:
		if m.state.PomodoroOpen() {
			return m.handlePomodoroKey(msg), nil
		}
		return m.handleAppKey(msg)
	}
}

func (m model) handleLandingKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Login):
		m.state.ShowAuth(app.AuthLogin)
	case key.Matches(msg, m.keys.Register):
		m.state.ShowAuth(app.AuthRegister)
	case key.Matches(msg, m.keys.CycleTheme):
		m.state.CycleTheme()
	}
	return m, nil
}

func (m model) handleAuthKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.state.AuthMode == app.AuthRegister && m.state.Registration.Current() > 1 {
			m.state.RegistrationBack()
		} else {
			m.state.ShowLanding()
		}
		return m, nil
	case key.Matches(msg, m.keys.ToLogin):
		m.state.ShowAuth(app.AuthLogin)
		return m, nil
	case key.Matches(msg, m.keys.ToSignUp):
		m.state.ShowAuth(app.AuthRegister)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submitAuth()
		return m, nil
	case m.focus != fieldNone && key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return m, nil
	case m.focus != fieldNone && key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return m, nil
	}

	if m.focus == fieldNone {
		// The study goals step has no text inputs.
		switch {
		case key.Matches(msg, m.keys.Goal):
			m.state.CycleStudyGoal()
		case key.Matches(msg, m.keys.Left):
			m.state.AdjustDailyHours(-1)
		case key.Matches(msg, m.keys.Right):
			m.state.AdjustDailyHours(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.pushForm()
	return m, cmd
}

func (m *model) submitAuth() {
	if m.busy() {
		return
	}
	if m.state.AuthMode == app.AuthLogin {
		m.state.BeginLogin(m.inputs[fieldLoginEmail].Value(), m.inputs[fieldLoginPassword].Value())
		return
	}
	m.pushForm()
	if m.state.Registration.Current() < m.state.Registration.Len() {
		m.state.RegistrationNext()
		return
	}
	m.state.CompleteRegistration()
}

func (m model) handlePomodoroKey(msg tea.KeyMsg) model {
	switch {
	case key.Matches(msg, m.keys.TimerToggle):
		if m.state.Timer.State().Running() {
			m.state.PauseTimer()
		} else {
			m.state.StartTimer()
		}
	case key.Matches(msg, m.keys.TimerReset):
		m.state.ResetTimer()
	case key.Matches(msg, m.keys.Pomodoro), key.Matches(msg, m.keys.Back):
		m.state.TogglePomodoro()
	}
	return m
}

func (m model) handleAppKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.state.UserMenuOpen() {
		switch {
		case key.Matches(msg, m.keys.Logout):
			m.state.Logout()
		case key.Matches(msg, m.keys.Settings):
			m.state.ShowSection(navigator.SectionSettings)
		case key.Matches(msg, m.keys.UserMenu), key.Matches(msg, m.keys.Back):
			m.state.ToggleUserMenu()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.NextSection):
		m.shiftSection(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevSection):
		m.shiftSection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		m.jumpSection(msg.String())
		return m, nil
	case key.Matches(msg, m.keys.UserMenu):
		m.state.ToggleUserMenu()
		return m, nil
	case key.Matches(msg, m.keys.Pomodoro):
		m.state.TogglePomodoro()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.state.CycleTheme()
		return m, nil
	}

	switch m.state.Sections.Current() {
	case navigator.SectionPlanner:
		m.handlePlannerKey(msg)
	case navigator.SectionCalendar:
		switch {
		case key.Matches(msg, m.keys.PrevWeek):
			m.state.PreviousWeek()
		case key.Matches(msg, m.keys.NextWeek):
			m.state.NextWeek()
		}
	}
	return m, nil
}

// preference rows on the planner preferences step.
const (
	prefHours = iota
	prefTime
	prefLength
	prefRows
)

func (m *model) handlePlannerKey(msg tea.KeyMsg) {
	step := m.state.Planner.Current()
	switch {
	case key.Matches(msg, m.keys.PrevStep):
		if m.state.PlannerBack() {
			m.cursor = 0
		}
		return
	case step == app.StepPlan && key.Matches(msg, m.keys.Accept):
		m.state.AcceptPlan()
		return
	case step < app.StepAnalysis && key.Matches(msg, m.keys.NextStep):
		if m.state.PlannerNext() {
			m.cursor = 0
		}
		return
	}

	switch step {
	case app.StepSubjects:
		subjects := m.state.Snapshot.Subjects
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = max(min(m.cursor+1, len(subjects)-1), 0)
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(subjects) {
				m.state.ToggleSubject(subjects[m.cursor].ID)
			}
		}
	case app.StepPreferences:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, prefRows-1)
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
			delta := 1
			if key.Matches(msg, m.keys.Left) {
				delta = -1
			}
			switch m.cursor {
			case prefHours:
				m.state.AdjustStudyHours(delta)
			case prefTime:
				m.state.CycleStudyTime()
			case prefLength:
				m.state.CycleSessionLength()
			}
		}
	}
}

func (m *model) shiftSection(delta int) {
	m.state.ShowSection(m.state.Sections.Neighbor(delta))
	m.cursor = 0
}

func (m *model) jumpSection(keyName string) {
	sections := m.state.Sections.Views()
	var n int
	if _, err := fmt.Sscanf(keyName, "%d", &n); err != nil || n < 1 || n > len(sections) {
		return
	}
	m.state.ShowSection(sections[n-1])
	m.cursor = 0
}

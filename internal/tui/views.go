package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/studymind/internal/app"
	"github.com/opencode-ai/studymind/internal/auth"
	"github.com/opencode-ai/studymind/internal/chart"
	"github.com/opencode-ai/studymind/internal/navigator"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/tui/components"
	"github.com/opencode-ai/studymind/internal/tui/styles"
	"github.com/opencode-ai/studymind/internal/wizard"
)

const (
	chartWidth    = 24
	progressWidth = 30
)

var sectionTitles = map[navigator.ViewID]string{
	navigator.SectionDashboard: "Dashboard",
	navigator.SectionPlanner:   "AI Planner",
	navigator.SectionCalendar:  "Calendar",
	navigator.SectionAnalytics: "Analytics",
	navigator.SectionSettings:  "Settings",
}

func (m model) View() string {
	st := m.currentStyles()
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(st), "\n"))
		}
	}

	var lines []string
	switch m.state.Pages.Current() {
	case navigator.PageLanding:
		lines = m.landingLines(st)
	case navigator.PageAuth:
		lines = m.authLines(st)
	default:
		lines = m.appLines(st)
	}

	if toasts := m.notificationLines(st); len(toasts) > 0 {
		lines = append(lines, "")
		lines = append(lines, toasts...)
	}
	m.help.ShowAll = m.showHelp
	lines = append(lines, "", m.help.View(m.helpKeys()))

	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) smallViewLines(st styles.Styles) []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		st.Warning.Render(message),
		st.Muted.Render(hint),
		st.Muted.Render("Press ctrl+c to quit."),
	}
}

func (m model) themeToggle(st styles.Styles) string {
	pref := m.state.Theme.Preference()
	return st.Muted.Render(fmt.Sprintf("%s %s", pref.Icon(), pref.Label()))
}

func (m model) landingLines(st styles.Styles) []string {
	features := []struct{ icon, title, text string }{
		{"🤖", "AI study agents", "Specialised assistants plan, adapt and analyse your studying."},
		{"🗓️", "Smart scheduling", "Weekly plans built around your subjects and preferences."},
		{"⏱️", "Focus timer", "Pomodoro sessions with automatic breaks."},
		{"📈", "Progress analytics", "Track hours, scores and completion over time."},
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, st.Title.Render("StudyMind"), "  ", m.themeToggle(st)),
		"",
		st.Accent.Render("Your AI-powered study companion"),
		st.Text.Render("Plan smarter, focus longer and see your progress at a glance."),
		"",
	}
	for _, f := range features {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", f.icon, st.Text.Bold(true).Render(f.title), st.Muted.Render(f.text)))
	}
	lines = append(lines, "",
		lipgloss.JoinHorizontal(lipgloss.Top, st.Button.Render("r  Get Started"), "  ", st.Border.Render("l  Log In")),
	)
	return lines
}

func (m model) authLines(st styles.Styles) []string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, st.Title.Render("StudyMind"), "  ", m.themeToggle(st)),
		"",
	}
	if m.state.AuthMode == app.AuthLogin {
		lines = append(lines, m.loginLines(st)...)
	} else {
		lines = append(lines, m.registerLines(st)...)
	}
	if m.busy() {
		label := "Signing in..."
		if m.state.AuthMode == app.AuthRegister {
			label = "Creating your account..."
		}
		lines = append(lines, "", st.Info.Render(m.spinner.View()+" "+label))
	}
	return lines
}

func (m model) inputLine(st styles.Styles, label string, field formField) string {
	labelStyle := st.Muted
	if m.focus == field {
		labelStyle = st.Focus
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label), st.Panel.Render(m.inputs[field].View()))
}

func (m model) loginLines(st styles.Styles) []string {
	return []string{
		st.Accent.Render("Welcome back"),
		st.Muted.Render("Sign in to continue your study plan."),
		"",
		m.inputLine(st, "Email", fieldLoginEmail),
		m.inputLine(st, "Password", fieldLoginPassword),
		"",
		st.Muted.Render("No account yet? ctrl+r to sign up."),
	}
}

func (m model) registerLines(st styles.Styles) []string {
	lines := []string{
		st.Accent.Render("Create your account"),
		renderIndicators(st, m.state.Registration),
		"",
	}
	switch m.state.Registration.Current() {
	case 1:
		lines = append(lines,
			m.inputLine(st, "Full name", fieldRegName),
			m.inputLine(st, "Email", fieldRegEmail),
		)
	case 2:
		lines = append(lines,
			m.inputLine(st, "Password", fieldRegPassword),
			renderStrength(st, m.state.Form.Strength()),
		)
	default:
		lines = append(lines,
			fmt.Sprintf("%s %s", st.Muted.Render("Study goal:"), st.Selected.Render(m.state.Form.StudyGoal)),
			fmt.Sprintf("%s %s", st.Muted.Render("Daily study hours:"), st.Selected.Render(fmt.Sprintf("%d", m.state.Form.DailyHours))),
			"",
			st.Muted.Render("g change goal  ←/→ adjust hours  enter create account"),
		)
	}
	lines = append(lines, "", st.Muted.Render("Already registered? ctrl+l to log in."))
	return lines
}

func renderStrength(st styles.Styles, strength auth.Strength) string {
	color := st.Theme.Tokens.Error
	style := st.Error
	switch strength.Level {
	case auth.Medium:
		color, style = st.Theme.Tokens.Warning, st.Warning
	case auth.Strong:
		color, style = st.Theme.Tokens.Success, st.Success
	}
	bar := progress.New(progress.WithSolidFill(color), progress.WithWidth(progressWidth), progress.WithoutPercentage())
	return fmt.Sprintf("%s %s", bar.ViewAs(strength.Percent()), style.Render(strength.Feedback()))
}

func renderIndicators(st styles.Styles, w *wizard.Wizard) string {
	parts := make([]string, 0, w.Len())
	for _, ind := range w.Indicators() {
		label := fmt.Sprintf("%d %s", ind.Number, ind.Label)
		switch {
		case ind.Active:
			parts = append(parts, st.ActiveTab.Render(label))
		case ind.Done:
			parts = append(parts, st.Success.Render("✓ "+ind.Label))
		default:
			parts = append(parts, st.Tab.Render(label))
		}
	}
	return strings.Join(parts, st.Border.Render("─"))
}

func (m model) appLines(st styles.Styles) []string {
	lines := []string{m.headerLine(st), m.tabsLine(st), ""}

	if m.state.UserMenuOpen() {
		lines = append(lines, m.userMenu(st), "")
	}
	if m.state.PomodoroOpen() {
		lines = append(lines, m.pomodoroPanel(st), "")
	}

	switch m.state.Sections.Current() {
	case navigator.SectionPlanner:
		lines = append(lines, m.plannerLines(st)...)
	case navigator.SectionCalendar:
		lines = append(lines, m.calendarLines(st)...)
	case navigator.SectionAnalytics:
		lines = append(lines, m.analyticsLines(st)...)
	case navigator.SectionSettings:
		lines = append(lines, m.settingsLines(st)...)
	default:
		lines = append(lines, m.dashboardLines(st)...)
	}
	return lines
}

func (m model) headerLine(st styles.Styles) string {
	initials := "?"
	if user := m.state.User(); user != nil {
		initials = user.Initials
	}
	right := strings.Join([]string{
		components.RenderTimerBadge(st, m.state.Timer.State()),
		m.themeToggle(st),
		st.Button.Render(initials),
	}, "  ")
	left := st.Title.Render("StudyMind")
	if m.width > 0 {
		gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 1 {
			return left + strings.Repeat(" ", gap) + right
		}
	}
	return left + "  " + right
}

func (m model) tabsLine(st styles.Styles) string {
	sections := m.state.Sections.Views()
	tabs := make([]string, len(sections))
	for i, id := range sections {
		label := fmt.Sprintf("%d %s", i+1, sectionTitles[id])
		if m.state.Sections.IsActive(id) {
			tabs[i] = st.ActiveTab.Render(label)
		} else {
			tabs[i] = st.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) userMenu(st styles.Styles) string {
	user := m.state.User()
	if user == nil {
		return ""
	}
	content := strings.Join([]string{
		st.Text.Bold(true).Render(user.Name),
		st.Muted.Render(user.Email),
		"",
		components.RenderQuickActionBar(st, []components.QuickAction{
			{Key: "s", Label: "Settings", Enabled: true},
			{Key: "o", Label: "Log out", Enabled: true},
			{Key: "u", Label: "Close", Enabled: true},
		}),
	}, "\n")
	return st.Card.Render(content)
}

func (m model) pomodoroPanel(st styles.Styles) string {
	timer := m.state.Timer.State()
	clock := st.Title.Render(timer.Clock())
	content := strings.Join([]string{
		st.Accent.Render(timer.Phase.Label()),
		clock,
		components.RenderTimerBadge(st, timer),
		"",
		components.RenderCenteredActions(st, components.TimerQuickActions(timer), progressWidth-4),
	}, "\n")
	return st.Card.Align(lipgloss.Center).Width(progressWidth).Render(content)
}

func (m model) chartRenderer(st styles.Styles) *chart.TerminalRenderer {
	r := chart.NewTerminalRenderer(chartWidth)
	r.Title = st.Accent.Bold(true)
	r.Label = st.Muted
	r.Value = st.Text
	if len(st.ChartBars) > 0 {
		r.Bars = st.ChartBars
	}
	return r
}

func (m model) renderCharts(st styles.Styles, projections []chart.Projection) string {
	r := m.chartRenderer(st)
	panels := make([]string, 0, len(projections))
	for _, p := range projections {
		out, err := r.Draw(p)
		if err != nil {
			m.logger.Debug().Err(err).Str("chart", p.Name).Msg("chart skipped")
			continue
		}
		panels = append(panels, st.Card.Render(out))
	}
	if m.width > 0 && m.width < 2*(chartWidth+20) {
		return lipgloss.JoinVertical(lipgloss.Left, panels...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m model) dashboardLines(st styles.Styles) []string {
	stats := m.state.Snapshot.UserStats
	name := "there"
	if user := m.state.User(); user != nil {
		name = strings.Fields(user.Name + " student")[0]
	}

	statCards := []string{
		statCard(st, "Study hours", fmt.Sprintf("%d", stats.TotalStudyHours)),
		statCard(st, "Streak", fmt.Sprintf("%d days", stats.StreakDays)),
		statCard(st, "Completion", fmt.Sprintf("%d%%", stats.CompletionRate)),
		statCard(st, "Avg score", fmt.Sprintf("%d%%", stats.AverageScore)),
		statCard(st, "Goals", fmt.Sprintf("%d/%d", stats.GoalsAchieved, stats.TotalGoals)),
	}

	lines := []string{
		st.Title.Render(fmt.Sprintf("Welcome back, %s!", name)),
		st.Muted.Render("Here is how your studying is going."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, statCards...),
		"",
		m.renderCharts(st, m.state.Projections()),
		"",
		st.Accent.Render("AI study agents"),
	}

	agents := m.state.Board.Agents()
	cards := make([]components.AgentCard, len(agents))
	for i, a := range agents {
		cards[i] = components.AgentCard{
			Name:       a.Agent.Name,
			Role:       a.Agent.Role,
			Specialty:  a.Agent.Specialty,
			Activity:   a.Activity,
			Confidence: a.RoundedConfidence(),
			Active:     a.Agent.Active,
		}
	}
	perRow := 3
	if m.width > 0 && m.width < 110 {
		perRow = 2
	}
	lines = append(lines, components.RenderAgentGrid(st, cards, perRow), "")

	lines = append(lines, st.Accent.Render("Recent insights"))
	if len(m.state.Snapshot.Insights) == 0 {
		lines = append(lines, components.EmptyInsights().RenderCompact(st))
	}
	for _, in := range m.state.Snapshot.Insights {
		lines = append(lines, fmt.Sprintf("💡 %s %s %s",
			st.Text.Bold(true).Render(in.Agent+":"),
			st.Text.Render(in.Text),
			st.Muted.Render(fmt.Sprintf("(%d%%)", in.Confidence)),
		))
	}

	lines = append(lines, "", st.Accent.Render("Upcoming sessions"))
	if len(m.state.Snapshot.UpcomingSessions) == 0 {
		lines = append(lines, components.EmptyPlan().RenderCompact(st))
	}
	for _, s := range m.state.Snapshot.UpcomingSessions {
		lines = append(lines, fmt.Sprintf("%s %s  %s %s",
			st.Muted.Render(s.Date),
			st.Muted.Render(s.Time),
			st.Text.Render(s.Subject),
			st.Muted.Render(fmt.Sprintf("%d min · %s", s.Duration, s.Type)),
		))
	}
	return lines
}

func statCard(st styles.Styles, label, value string) string {
	return st.Card.Width(14).Render(st.Title.Render(value) + "\n" + st.Muted.Render(label))
}

func (m model) plannerLines(st styles.Styles) []string {
	lines := []string{
		st.Title.Render("AI Study Planner"),
		renderIndicators(st, m.state.Planner),
		"",
	}
	switch m.state.Planner.Current() {
	case app.StepSubjects:
		lines = append(lines, m.subjectLines(st)...)
	case app.StepPreferences:
		lines = append(lines, m.preferenceLines(st)...)
	case app.StepAnalysis:
		lines = append(lines, m.analysisLines(st)...)
	case app.StepPlan:
		lines = append(lines, m.planLines(st)...)
	}
	return lines
}

func (m model) subjectLines(st styles.Styles) []string {
	lines := []string{st.Text.Render("Which subjects should the agents plan for?")}
	cards := make([]string, 0, len(m.state.Snapshot.Subjects))
	for i, subject := range m.state.Snapshot.Subjects {
		cards = append(cards, components.RenderSubjectCard(st, components.SubjectCard{
			Subject:  subject,
			Selected: m.state.SubjectSelected(subject.ID),
			Cursor:   i == m.cursor,
		}))
	}
	for start := 0; start < len(cards); start += 3 {
		end := min(start+3, len(cards))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	if len(m.state.SelectedSubjects()) == 0 {
		lines = append(lines, "", components.EmptySelection().RenderCompact(st))
	}
	return lines
}

func (m model) preferenceLines(st styles.Styles) []string {
	prefs := m.state.Prefs
	rows := []struct{ label, value string }{
		{"Study hours per day", fmt.Sprintf("%d", prefs.HoursPerDay)},
		{"Preferred study time", prefs.PreferredTime},
		{"Session length", fmt.Sprintf("%d minutes", prefs.SessionLength)},
	}
	lines := []string{st.Text.Render("Tell the agents how you like to study."), ""}
	for i, row := range rows {
		marker := "  "
		labelStyle := st.Muted
		if i == m.cursor {
			marker = st.Focus.Render("▸ ")
			labelStyle = st.Text
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s", marker, labelStyle.Render(row.label), st.Selected.Render("‹ "+row.value+" ›")))
	}
	return lines
}

func (m model) analysisLines(st styles.Styles) []string {
	sim := m.state.Analysis()
	if sim == nil {
		return []string{components.EmptyInsights().RenderCompact(st)}
	}
	lines := []string{st.Text.Render("Our agents are analysing your subjects and preferences."), ""}
	colors := st.Theme.Tokens.Chart
	for i, agent := range sim.Agents() {
		color := st.Theme.Tokens.Accent
		if len(colors) > 0 {
			color = colors[i%len(colors)]
		}
		bar := progress.New(progress.WithSolidFill(color), progress.WithWidth(progressWidth))
		lines = append(lines,
			st.Text.Bold(true).Render(agent.Spec.Name),
			bar.ViewAs(agent.Progress/100),
			components.RenderAnalysisBadge(st, agent),
		)
		if agent.InsightVisible {
			if in, ok := m.state.Insight(i); ok {
				lines = append(lines, st.Muted.Render("💡 "+in.Text))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func (m model) planLines(st styles.Styles) []string {
	plan := m.state.Plan()
	if len(plan) == 0 {
		return []string{components.EmptyPlan().Render(st)}
	}
	lines := []string{st.Success.Render("Your personalised study plan is ready."), ""}
	for _, day := range plan {
		lines = append(lines, fmt.Sprintf("%s %s",
			st.Text.Bold(true).Render(fmt.Sprintf("%-10s", day.Day)),
			st.Muted.Render(strings.Join(day.Sessions, " · ")),
		))
	}
	lines = append(lines, "", components.RenderQuickActionBar(st, []components.QuickAction{
		{Key: "a", Label: "Accept plan", Enabled: !m.state.Pending(app.EffectShowCalendar)},
		{Key: "b", Label: "Back", Enabled: true},
	}))
	return lines
}

func (m model) calendarLines(st styles.Styles) []string {
	label := "This week"
	switch offset := m.state.WeekOffset(); {
	case offset < 0:
		label = fmt.Sprintf("%d week(s) ago", -offset)
	case offset > 0:
		label = fmt.Sprintf("In %d week(s)", offset)
	}

	cells := make([]string, 0, len(m.state.Week()))
	for _, day := range m.state.Week() {
		content := []string{st.Accent.Render(fmt.Sprintf("%s %d", day.Label, day.Number))}
		if len(day.Sessions) == 0 {
			content = append(content, components.EmptyDay().RenderCompact(st))
		}
		for _, s := range day.Sessions {
			content = append(content, st.Text.Render(s))
		}
		cells = append(cells, st.Card.Width(14).Render(strings.Join(content, "\n")))
	}

	lines := []string{
		st.Title.Render("Study Calendar"),
		fmt.Sprintf("%s  %s", st.Muted.Render("[ prev"), st.Muted.Render("next ]")) + "  " + st.Text.Render(label),
		"",
	}
	if m.width > 0 && m.width < 7*16 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells[:min(4, len(cells))]...))
		if len(cells) > 4 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells[4:]...))
		}
		return lines
	}
	return append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m model) analyticsLines(st styles.Styles) []string {
	sum := m.state.Summary()
	lines := []string{st.Title.Render("Learning Analytics"), ""}
	if sum.Sessions == 0 {
		lines = append(lines, components.EmptyHistory().Render(st))
	} else {
		lines = append(lines,
			fmt.Sprintf("%s %s", st.Muted.Render("Sessions:"), st.Text.Render(fmt.Sprintf("%d (%d completed, %.0f%%)", sum.Sessions, sum.Completed, sum.CompletionRatio*100))),
			fmt.Sprintf("%s %s", st.Muted.Render("Time studied:"), st.Text.Render(fmt.Sprintf("%dh %02dm", sum.TotalMinutes/60, sum.TotalMinutes%60))),
			fmt.Sprintf("%s %s", st.Muted.Render("Score:"), st.Text.Render(fmt.Sprintf("%.1f ± %.1f", sum.MeanScore, sum.ScoreStdDev))),
			fmt.Sprintf("%s %s", st.Muted.Render("Mean subject progress:"), st.Text.Render(fmt.Sprintf("%.0f%%", sum.MeanProgress))),
		)
	}
	return append(lines, "", m.renderCharts(st, m.state.Projections()))
}

func (m model) settingsLines(st styles.Styles) []string {
	pref := m.state.Theme.Preference()
	focus, brk := m.state.Timer.Durations()
	lines := []string{
		st.Title.Render("Settings"),
		"",
		st.Accent.Render("Appearance"),
		fmt.Sprintf("%s %s %s", st.Muted.Render("Theme:"), st.Selected.Render(pref.Icon()+" "+pref.Label()), st.Muted.Render("(t to cycle)")),
		fmt.Sprintf("%s %s", st.Muted.Render("Palette:"), st.Text.Render(st.Theme.Name)),
		"",
		st.Accent.Render("Focus timer"),
		fmt.Sprintf("%s %s", st.Muted.Render("Focus:"), st.Text.Render(fmt.Sprintf("%d min", focus/60))),
		fmt.Sprintf("%s %s", st.Muted.Render("Break:"), st.Text.Render(fmt.Sprintf("%d min", brk/60))),
	}
	if user := m.state.User(); user != nil {
		lines = append(lines, "",
			st.Accent.Render("Account"),
			fmt.Sprintf("%s %s", st.Muted.Render("Name:"), st.Text.Render(user.Name)),
			fmt.Sprintf("%s %s", st.Muted.Render("Email:"), st.Text.Render(user.Email)),
		)
		if user.StudyGoal != "" {
			lines = append(lines, fmt.Sprintf("%s %s", st.Muted.Render("Goal:"), st.Text.Render(fmt.Sprintf("%s, %dh/day", user.StudyGoal, user.DailyHours))))
		}
	}
	return lines
}

func (m model) notificationLines(st styles.Styles) []string {
	active := m.state.Notifier.Active()
	lines := make([]string, 0, len(active))
	for _, n := range active {
		style := st.Info
		switch n.Kind {
		case notify.KindSuccess:
			style = st.Success
		case notify.KindWarning:
			style = st.Warning
		case notify.KindError:
			style = st.Error
		}
		lines = append(lines, style.Render("● "+n.Message))
	}
	return lines
}

func (m model) helpKeys() bindingSet {
	k := m.keys
	var short []key.Binding
	switch m.state.Pages.Current() {
	case navigator.PageLanding:
		short = []key.Binding{k.Register, k.Login, k.CycleTheme, k.Quit}
	case navigator.PageAuth:
		short = []key.Binding{k.Submit, k.NextField, k.Back, k.ToLogin, k.ToSignUp}
	default:
		switch {
		case m.state.PomodoroOpen():
			short = []key.Binding{k.TimerToggle, k.TimerReset, k.Pomodoro}
		case m.state.UserMenuOpen():
			short = []key.Binding{k.Settings, k.Logout, k.UserMenu}
		default:
			short = m.sectionKeys()
		}
	}
	return bindingSet{
		short: short,
		full: [][]key.Binding{
			short,
			{k.Dashboard, k.Planner, k.Calendar, k.Theme},
			{k.NextSection, k.Jump, k.UserMenu, k.Pomodoro, k.Help, k.ForceQuit},
		},
	}
}

func (m model) sectionKeys() []key.Binding {
	k := m.keys
	base := []key.Binding{k.NextSection, k.Pomodoro, k.UserMenu, k.CycleTheme, k.Help, k.Quit}
	switch m.state.Sections.Current() {
	case navigator.SectionPlanner:
		switch m.state.Planner.Current() {
		case app.StepSubjects:
			return append([]key.Binding{k.Up, k.Down, k.Toggle, k.NextStep}, base...)
		case app.StepPreferences:
			return append([]key.Binding{k.Up, k.Down, k.Left, k.Right, k.NextStep, k.PrevStep}, base...)
		case app.StepPlan:
			return append([]key.Binding{k.Accept, k.PrevStep}, base...)
		default:
			return append([]key.Binding{k.PrevStep}, base...)
		}
	case navigator.SectionCalendar:
		return append([]key.Binding{k.PrevWeek, k.NextWeek}, base...)
	}
	return base
}

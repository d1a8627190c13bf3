package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding

	Dashboard key.Binding
	Planner   key.Binding
	Calendar  key.Binding
	Theme     key.Binding

	NextSection key.Binding
	PrevSection key.Binding
	Jump        key.Binding
	UserMenu    key.Binding
	Logout      key.Binding
	Settings    key.Binding
	Pomodoro    key.Binding

	Login     key.Binding
	Register  key.Binding
	Submit    key.Binding
	Back      key.Binding
	NextField key.Binding
	PrevField key.Binding
	ToLogin   key.Binding
	ToSignUp  key.Binding
	Goal      key.Binding

	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	NextStep  key.Binding
	PrevStep  key.Binding
	Accept    key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding

	CycleTheme key.Binding

	TimerToggle key.Binding
	TimerReset  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Dashboard: key.NewBinding(key.WithKeys("alt+d", "ctrl+d"), key.WithHelp("alt+d", "dashboard")),
		Planner:   key.NewBinding(key.WithKeys("alt+p", "ctrl+p"), key.WithHelp("alt+p", "planner")),
		Calendar:  key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "calendar")),
		Theme:     key.NewBinding(key.WithKeys("alt+t", "ctrl+t"), key.WithHelp("alt+t", "theme")),

		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Jump:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "go to section")),
		UserMenu:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "account")),
		Logout:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
		Settings:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Pomodoro:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus timer")),

		Login:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		Register:  key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "get started")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		ToLogin:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in instead")),
		ToSignUp:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign up instead")),
		Goal:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "change goal")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "less")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		NextStep:   key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next step")),
		PrevStep:   key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "previous step")),
		Accept:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept plan")),
		PrevWeek:   key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[", "previous week")),
		NextWeek:   key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]", "next week")),
		CycleTheme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),

		TimerToggle: key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/pause")),
		TimerReset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

// bindingSet adapts a context-dependent list of bindings to help.KeyMap.
type bindingSet struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindingSet) ShortHelp() []key.Binding  { return b.short }
func (b bindingSet) FullHelp() [][]key.Binding { return b.full }

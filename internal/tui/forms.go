package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/opencode-ai/studymind/internal/app"
	"github.com/opencode-ai/studymind/internal/navigator"
)

type formField int

const (
	fieldNone formField = iota - 1
	fieldLoginEmail
	fieldLoginPassword
	fieldRegName
	fieldRegEmail
	fieldRegPassword
	fieldCount
)

func newInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	specs := []struct {
		field       formField
		placeholder string
		password    bool
	}{
		{fieldLoginEmail, "you@example.com", false},
		{fieldLoginPassword, "password", true},
		{fieldRegName, "Full name", false},
		{fieldRegEmail, "you@example.com", false},
		{fieldRegPassword, "At least 8 characters", true},
	}
	for _, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 128
		ti.Width = 32
		ti.Prompt = ""
		if spec.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[spec.field] = ti
	}
	return inputs
}

// visibleFields lists the inputs on screen, in tab order.
func (m model) visibleFields() []formField {
	if m.state.Pages.Current() != navigator.PageAuth {
		return nil
	}
	if m.state.AuthMode == app.AuthLogin {
		return []formField{fieldLoginEmail, fieldLoginPassword}
	}
	switch m.state.Registration.Current() {
	case 1:
		return []formField{fieldRegName, fieldRegEmail}
	case 2:
		return []formField{fieldRegPassword}
	}
	return nil
}

// syncFocus keeps focus on a visible field.
func (m *model) syncFocus() {
	visible := m.visibleFields()
	for _, f := range visible {
		if f == m.focus {
			return
		}
	}
	if len(visible) == 0 {
		m.setFocus(fieldNone)
		return
	}
	m.setFocus(visible[0])
}

func (m *model) setFocus(field formField) {
	for i := range m.inputs {
		if formField(i) == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.focus = field
}

func (m *model) moveFocus(delta int) {
	visible := m.visibleFields()
	if len(visible) == 0 {
		return
	}
	idx := 0
	for i, f := range visible {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(visible)) % len(visible)
	m.setFocus(visible[idx])
}

// pushForm copies the registration inputs into the shared form.
func (m *model) pushForm() {
	m.state.Form.Name = m.inputs[fieldRegName].Value()
	m.state.Form.Email = m.inputs[fieldRegEmail].Value()
	m.state.Form.Password = m.inputs[fieldRegPassword].Value()
}

func (m *model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

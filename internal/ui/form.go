package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a dialog of labelled single-line inputs. Enter moves to the next
// field and submits from the last one.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	submit func(values []string)
}

type formField struct {
	label       string
	value       string
	placeholder string
}

func newForm(title string, width int, submit func(values []string), fields ...formField) *form {
	f := &form{
		title:  title,
		submit: submit,
	}
	for _, field := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.placeholder
		ti.SetValue(field.value)
		ti.CursorEnd()
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, ti)
	}
	f.setWidth(width)
	f.inputs[0].Focus()
	return f
}

func (f *form) setWidth(width int) {
	w := width - 16
	if w < 20 {
		w = 20
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *form) values() []string {
	values := make([]string, len(f.inputs))
	for i, ti := range f.inputs {
		values[i] = strings.TrimSpace(ti.Value())
	}
	return values
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) focusCmd() tea.Cmd {
	return textinput.Blink
}

// confirmation is a yes/no question; anything but y cancels.
type confirmation struct {
	prompt string
	yes    func()
}

func (m *Model) openForm(f *form) {
	m.form = f
	m.mode = ViewForm
}

func (m *Model) closeDialog() {
	m.form = nil
	m.confirm = nil
	m.mode = ViewEvents
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch msg.Type {
	case tea.KeyEsc:
		m.closeDialog()
		return nil

	case tea.KeyTab, tea.KeyDown:
		f.move(1)
		return nil

	case tea.KeyShiftTab, tea.KeyUp:
		f.move(-1)
		return nil

	case tea.KeyEnter:
		if !f.last() {
			f.move(1)
			return nil
		}
		m.closeDialog()
		// submit may open a follow-up dialog
		f.submit(f.values())
		if m.form != nil {
			return tea.Batch(m.form.focusCmd(), m.messageCmd())
		}
		return m.messageCmd()
	}

	return f.update(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	c := m.confirm
	m.closeDialog()
	switch msg.String() {
	case "y", "Y":
		c.yes()
	default:
		m.showMessage("Cancelled")
	}
	return m.messageCmd()
}

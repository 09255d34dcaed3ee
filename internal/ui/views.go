package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ucpcal/ucpcal/internal/config"
)

func (m *Model) viewEvents() string {
	var sections []string

	title := "ucpcal"
	if m.path != "" {
		title += ": " + m.path
	}
	sections = append(sections, m.styles.Header.Render(title), "")

	lines := m.summaryLines()
	if len(lines) == 0 {
		sections = append(sections, m.styles.Help.Render(
			fmt.Sprintf("No events. Press %s to add one.", m.keyHelp(config.ActionAdd))))
	} else {
		start := min(max(m.offset, 0), len(lines))
		end := min(start+m.bodyHeight(), len(lines))
		for _, line := range lines[start:end] {
			sections = append(sections, m.styles.Text.Render(line))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.height > 0 {
		// keep the status bar on the last line
		body = lipgloss.PlaceVertical(m.height-1, lipgloss.Top, body)
	}
	return body + "\n" + m.renderStatusBar()
}

func (m *Model) viewHelp() string {
	row := func(action, desc string) string {
		return m.styles.Help.Render(fmt.Sprintf("  %-12s - %s", m.keyHelp(action), desc))
	}

	help := []string{
		m.styles.Header.Render("ucpcal Help"),
		"",
		m.styles.Text.Render("Calendar:"),
		row(config.ActionLoad, "Load a calendar file"),
		row(config.ActionSave, "Save to a calendar file"),
		"",
		m.styles.Text.Render("Events:"),
		row(config.ActionAdd, "Add event"),
		row(config.ActionEdit, "Edit event by name"),
		row(config.ActionDelete, "Delete event by name"),
		"",
		m.styles.Text.Render("Navigation:"),
		row(config.ActionScrollUp, "Scroll up"),
		row(config.ActionScrollDown, "Scroll down"),
		row(config.ActionHelp, "Show help"),
		row(config.ActionQuit, "Quit"),
		"",
		m.styles.Text.Render("In dialogs:"),
		m.styles.Help.Render("  tab/enter    - Next field, enter on the last field submits"),
		m.styles.Help.Render("  esc          - Cancel"),
		"",
		m.styles.Text.Render("Dates:"),
		m.styles.Help.Render("  2024-03-15 14:00, tomorrow 2pm, next fri 10:30-12, mar 3 noon"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	if m.config.Source != "" {
		help = append(help, "", m.styles.Help.Render("Config: "+m.config.Source))
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) viewForm() string {
	f := m.form
	var sections []string

	sections = append(sections, m.styles.Header.Render(f.title), "")

	for i, ti := range f.inputs {
		label := fmt.Sprintf("%-9s", f.labels[i]+":")
		if i == f.focus {
			label = m.styles.Input.Render(label)
		} else {
			label = m.styles.Text.Render(label)
		}
		sections = append(sections, label+" "+ti.View())
	}

	sections = append(sections, "",
		m.styles.Help.Render("Tab/Enter for next field, Enter on the last field to confirm, Esc to cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n\n" + m.renderStatusBar()
}

func (m *Model) viewConfirm() string {
	return m.styles.Header.Render(m.confirm.prompt) + "\n\n" + m.renderStatusBar()
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" Events: %d", m.list.Len())

	right := fmt.Sprintf("%s for help | %s to quit",
		m.keyHelp(config.ActionHelp), m.keyHelp(config.ActionQuit))

	if m.message != "" {
		msg := fitWidth(m.message, m.width-lipgloss.Width(left)-3)
		if m.messageErr {
			right = m.styles.Error.Render(msg)
		} else {
			right = m.styles.Message.Render(msg)
		}
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 1 {
		width = 1
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left+middle) + right
}

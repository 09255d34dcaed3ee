package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

const (
	fieldDate     = "Date"
	fieldDuration = "Duration"
	fieldName     = "Name"
	fieldLocation = "Location"
)

func (m *Model) openLoadForm() {
	m.openForm(newForm("Load calendar", m.width, func(values []string) {
		if values[0] == "" {
			m.showError("No file name given")
			return
		}
		m.Load(values[0])
	}, formField{label: "File", value: m.path, placeholder: "calendar.txt"}))
}

func (m *Model) openSaveForm() {
	m.openForm(newForm("Save calendar", m.width, func(values []string) {
		if values[0] == "" {
			m.showError("No file name given")
			return
		}
		m.Save(values[0])
	}, formField{label: "File", value: m.path, placeholder: "calendar.txt"}))
}

func (m *Model) openAddForm() {
	m.openForm(newForm("Add event", m.width, m.addEvent, eventFields(nil)...))
}

func (m *Model) addEvent(values []string) {
	e, err := m.eventFromValues(values)
	if err != nil {
		m.showError(err.Error())
		return
	}

	if !m.list.Append(e) {
		m.showError(fmt.Sprintf("An event named %q already exists", e.Name))
		return
	}
	m.clampOffset()
	m.log.Debug().Str("name", e.Name).Msg("event added")
	m.showMessage(fmt.Sprintf("Added %q", e.Name))
}

func (m *Model) openEditPrompt() {
	m.openForm(newForm("Edit event", m.width, func(values []string) {
		e := m.list.Find(values[0])
		if e == nil {
			m.showError(fmt.Sprintf("No event named %q", values[0]))
			return
		}
		m.openEditForm(e)
	}, formField{label: fieldName, placeholder: "event to edit"}))
}

func (m *Model) openEditForm(e *calendar.Event) {
	oldName := e.Name
	m.openForm(newForm("Edit "+strconv.Quote(oldName), m.width, func(values []string) {
		m.editEvent(oldName, values)
	}, eventFields(e)...))
}

// editEvent updates the event called oldName in place, keeping its position.
func (m *Model) editEvent(oldName string, values []string) {
	e := m.list.Find(oldName)
	if e == nil {
		m.showError(fmt.Sprintf("No event named %q", oldName))
		return
	}

	updated, err := m.eventFromValues(values)
	if err != nil {
		m.showError(err.Error())
		return
	}

	if updated.Name != oldName && !m.list.Rename(oldName, updated.Name) {
		m.showError(fmt.Sprintf("An event named %q already exists", updated.Name))
		return
	}
	e.Date = updated.Date
	e.Duration = updated.Duration
	e.Location = updated.Location
	m.clampOffset()

	m.log.Debug().Str("name", e.Name).Str("was", oldName).Msg("event edited")
	m.showMessage(fmt.Sprintf("Updated %q", e.Name))
}

func (m *Model) openDeletePrompt() {
	m.openForm(newForm("Delete event", m.width, func(values []string) {
		name := values[0]
		if m.list.Find(name) == nil {
			m.showError(fmt.Sprintf("No event named %q", name))
			return
		}
		if !m.config.ConfirmDelete {
			m.deleteEvent(name)
			return
		}
		m.confirm = &confirmation{
			prompt: fmt.Sprintf("Delete %q? (y/n)", name),
			yes:    func() { m.deleteEvent(name) },
		}
		m.mode = ViewConfirm
	}, formField{label: fieldName, placeholder: "event to delete"}))
}

func (m *Model) deleteEvent(name string) {
	if !m.list.Delete(name) {
		m.showError(fmt.Sprintf("No event named %q", name))
		return
	}
	m.clampOffset()
	m.log.Debug().Str("name", name).Msg("event deleted")
	m.showMessage(fmt.Sprintf("Deleted %q", name))
}

// eventFields lays out the event form, prefilled from e when editing.
func eventFields(e *calendar.Event) []formField {
	fields := []formField{
		{label: fieldDate, placeholder: "2024-03-15 14:00 or tomorrow 2pm"},
		{label: fieldDuration, placeholder: "minutes or 1h30m"},
		{label: fieldName},
		{label: fieldLocation, placeholder: "optional"},
	}
	if e != nil {
		fields[0].value = e.Date.String()
		fields[1].value = strconv.FormatUint(uint64(e.Duration), 10)
		fields[2].value = e.Name
		fields[3].value = e.Location
	}
	return fields
}

// eventFromValues builds an event from the date, duration, name and location
// fields. A name left blank is taken from text after the date, so
// "tomorrow 2pm Dentist" fills both.
func (m *Model) eventFromValues(values []string) (*calendar.Event, error) {
	m.parser.SetNow(m.now())
	parsed, err := m.parser.Parse(values[0])
	if err != nil {
		return nil, fmt.Errorf("bad date: %w", err)
	}
	if !parsed.Date.InRange() {
		return nil, fmt.Errorf("date %s is out of range", parsed.Date)
	}

	duration, err := parseDuration(values[1], parsed)
	if err != nil {
		return nil, err
	}

	name := values[2]
	if name == "" {
		name = parsed.Text
	}
	if name == "" {
		return nil, errors.New("an event needs a name")
	}

	return &calendar.Event{
		Date:     parsed.Date,
		Duration: duration,
		Name:     name,
		Location: values[3],
	}, nil
}

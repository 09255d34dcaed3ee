package calendar

import "fmt"

type Event struct {
	Date     Date
	Duration uint // minutes
	Name     string
	Location string // empty when the event has no location
}

func (e *Event) HasLocation() bool {
	return e.Location != ""
}

// debugString mirrors the single-line dump used when inspecting a list.
func (e *Event) debugString() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d|%d|%s|%s",
		e.Date.Year, e.Date.Month, e.Date.Day, e.Date.Hour, e.Date.Minute,
		e.Duration, e.Name, e.Location)
}

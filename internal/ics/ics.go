// Package ics converts between event lists and iCalendar files. Times are
// written as floating local times since calendar files carry no zone.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

const (
	productID    = "-//ucpcal//ucpcal calendar//EN"
	floatingTime = "20060102T150405"
	utcTime      = "20060102T150405Z"
	allDayDate   = "20060102"
	uidNamespace = "ucpcal"
)

// Export writes the events of l as an iCalendar document and returns how
// many were written. Events whose date is out of range are skipped.
func Export(w io.Writer, l *calendar.List, now time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	n := 0
	for e := range l.All() {
		if !e.Date.Valid || !e.Date.InRange() {
			continue
		}

		start := wallClock(e.Date)
		end := start.Add(time.Duration(e.Duration) * time.Minute)

		ev := cal.AddEvent(eventUID(e))
		ev.SetDtStampTime(now)
		ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingTime))
		ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingTime))
		ev.SetSummary(e.Name)
		if e.HasLocation() {
			ev.SetLocation(e.Location)
		}
		n++
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return n, fmt.Errorf("failed to write calendar: %w", err)
	}
	return n, nil
}

// Import appends the VEVENTs in r to l and returns how many were added.
// Events without a summary or start are skipped, as are names already in l.
func Import(r io.Reader, l *calendar.List) (int, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse calendar: %w", err)
	}

	added := 0
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve)
		if err != nil {
			continue
		}
		if l.Append(e) {
			added++
		}
	}
	return added, nil
}

func fromVEvent(ve *ical.VEvent) (*calendar.Event, error) {
	e := &calendar.Event{}

	p := ve.GetProperty(ical.ComponentPropertySummary)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return nil, errors.New("missing SUMMARY")
	}
	// names must stay on one line in the calendar file
	e.Name = oneLine(p.Value)

	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		e.Location = oneLine(p.Value)
	}

	p = ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return nil, errors.New("missing DTSTART")
	}
	start, err := parseTime(p.Value)
	if err != nil {
		return nil, err
	}
	e.Date = calendar.Date{
		Year:   start.Year(),
		Month:  int(start.Month()),
		Day:    start.Day(),
		Hour:   start.Hour(),
		Minute: start.Minute(),
		Valid:  true,
	}

	if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
		if end, err := parseTime(p.Value); err == nil && end.After(start) {
			e.Duration = uint(end.Sub(start) / time.Minute)
		}
	}
	return e, nil
}

// parseTime reads a DATE or DATE-TIME value, keeping its wall clock.
func parseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{utcTime, floatingTime, allDayDate} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time value %q", v)
}

func wallClock(d calendar.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, 0, 0, time.UTC)
}

// eventUID is stable for a given name, so re-exporting updates rather than
// duplicates events in clients that track UIDs.
func eventUID(e *calendar.Event) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(uidNamespace+"/"+e.Name))
	return id.String() + "@" + uidNamespace
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\r", "")), " ")
}

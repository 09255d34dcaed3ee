package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

func exportList() *calendar.List {
	l := calendar.NewList()
	l.Append(&calendar.Event{
		Date:     calendar.Date{Year: 2024, Month: 3, Day: 15, Hour: 9, Minute: 30, Valid: true},
		Duration: 90,
		Name:     "Standup",
		Location: "Room 4",
	})
	l.Append(&calendar.Event{
		Date:     calendar.Date{Year: 2024, Month: 13, Day: 1, Valid: true},
		Duration: 10,
		Name:     "Bad month",
	})
	l.Append(&calendar.Event{
		Date: calendar.Date{Year: 2024, Month: 12, Day: 31, Hour: 23, Minute: 30, Valid: true},
		Name: "Countdown",
	})
	return l
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	n, err := Export(&buf, exportList(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "DTSTART:20240315T093000")
	assert.Contains(t, out, "DTEND:20240315T110000")
	assert.Contains(t, out, "LOCATION:Room 4")
	assert.NotContains(t, out, "Bad month")

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestExportStableUID(t *testing.T) {
	e := &calendar.Event{Name: "Standup"}
	assert.Equal(t, eventUID(e), eventUID(&calendar.Event{Name: "Standup"}))
	assert.NotEqual(t, eventUID(e), eventUID(&calendar.Event{Name: "Retro"}))
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := Export(&buf, calendar.NewList(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "END:VCALENDAR")
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := Export(&buf, exportList(), time.Now())
	require.NoError(t, err)

	l := calendar.NewList()
	n, err := Import(&buf, l)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	e := l.Find("Standup")
	require.NotNil(t, e)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 3, Day: 15, Hour: 9, Minute: 30, Valid: true}, e.Date)
	assert.Equal(t, uint(90), e.Duration)
	assert.Equal(t, "Room 4", e.Location)

	e = l.Find("Countdown")
	require.NotNil(t, e)
	assert.Equal(t, uint(0), e.Duration)
	assert.False(t, e.HasLocation())
}

const importSample = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:1@test\r\n" +
	"DTSTART:20240401T140000Z\r\n" +
	"DTEND:20240401T143000Z\r\n" +
	"SUMMARY:Dentist\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:2@test\r\n" +
	"DTSTART;VALUE=DATE:20240402\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:3@test\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:4@test\r\n" +
	"DTSTART:20240403T080000\r\n" +
	"SUMMARY:Dentist\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport(t *testing.T) {
	l := calendar.NewList()
	n, err := Import(strings.NewReader(importSample), l)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names := []string{}
	for e := range l.All() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Dentist", "Holiday"}, names)

	dentist := l.Find("Dentist")
	assert.Equal(t, 14, dentist.Date.Hour)
	assert.Equal(t, 1, dentist.Date.Day)
	assert.Equal(t, uint(30), dentist.Duration)

	holiday := l.Find("Holiday")
	assert.Equal(t, calendar.Date{Year: 2024, Month: 4, Day: 2, Valid: true}, holiday.Date)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"20240101T090000", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), false},
		{"20240101T090000Z", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), false},
		{"20240101", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine(" a\r\nb\tc "))
}

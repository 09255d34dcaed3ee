package parser

import (
	"testing"
	"time"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

func newTestParser() *TimeParser {
	parser := NewTimeParser()
	// Friday
	parser.SetNow(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local))
	return parser
}

func TestParseExactForm(t *testing.T) {
	parser := newTestParser()

	result, err := parser.Parse("2024-03-20 09:15 Dentist")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := calendar.Date{Year: 2024, Month: 3, Day: 20, Hour: 9, Minute: 15, Valid: true}
	if result.Date != want {
		t.Errorf("Date mismatch: got %+v, want %+v", result.Date, want)
	}
	if !result.HasTime {
		t.Error("Expected time to be parsed")
	}
	if result.Text != "Dentist" {
		t.Errorf("Text mismatch: got %q, want %q", result.Text, "Dentist")
	}
}

func TestParseRelativeDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedDay  [3]int
		expectedText string
		hasTime      bool
	}{
		{
			input:        "today meeting with team",
			expectedDay:  [3]int{2024, 3, 15},
			expectedText: "meeting with team",
			hasTime:      false,
		},
		{
			input:        "tomorrow 2pm dentist appointment",
			expectedDay:  [3]int{2024, 3, 16},
			expectedText: "dentist appointment",
			hasTime:      true,
		},
		{
			input:        "next monday submit report",
			expectedDay:  [3]int{2024, 3, 18},
			expectedText: "submit report",
			hasTime:      false,
		},
		{
			input:        "in 3 days project deadline",
			expectedDay:  [3]int{2024, 3, 18},
			expectedText: "project deadline",
			hasTime:      false,
		},
		{
			input:        "2 weeks from now vacation starts",
			expectedDay:  [3]int{2024, 3, 29},
			expectedText: "vacation starts",
			hasTime:      false,
		},
		{
			input:        "in 1 month",
			expectedDay:  [3]int{2024, 4, 15},
			expectedText: "",
			hasTime:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !sameDay(result.Date, tt.expectedDay) {
				t.Errorf("Date mismatch: got %+v, want %v", result.Date, tt.expectedDay)
			}

			if result.Text != tt.expectedText {
				t.Errorf("Text mismatch: got %q, want %q", result.Text, tt.expectedText)
			}

			if result.HasTime != tt.hasTime {
				t.Errorf("HasTime mismatch: got %v, want %v", result.HasTime, tt.hasTime)
			}
		})
	}
}

func TestParseAbsoluteDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedDay  [3]int
		expectedText string
	}{
		{
			input:        "3/25/2024 birthday party",
			expectedDay:  [3]int{2024, 3, 25},
			expectedText: "birthday party",
		},
		{
			input:        "12/31/2024 new year's eve",
			expectedDay:  [3]int{2024, 12, 31},
			expectedText: "new year's eve",
		},
		{
			input:        "4/1 april fools",
			expectedDay:  [3]int{2024, 4, 1},
			expectedText: "april fools",
		},
		{
			input:        "May 15, 2024 conference",
			expectedDay:  [3]int{2024, 5, 15},
			expectedText: "conference",
		},
		{
			input:        "december 25 christmas",
			expectedDay:  [3]int{2024, 12, 25},
			expectedText: "christmas",
		},
		{
			input:        "2024-07-04 fireworks",
			expectedDay:  [3]int{2024, 7, 4},
			expectedText: "fireworks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !sameDay(result.Date, tt.expectedDay) {
				t.Errorf("Date mismatch: got %+v, want %v", result.Date, tt.expectedDay)
			}

			if result.Text != tt.expectedText {
				t.Errorf("Text mismatch: got %q, want %q", result.Text, tt.expectedText)
			}
		})
	}
}

func TestParseTimes(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedHour int
		expectedMin  int
		expectedText string
	}{
		{
			input:        "2pm meeting",
			expectedHour: 14,
			expectedMin:  0,
			expectedText: "meeting",
		},
		{
			input:        "14:30 conference call",
			expectedHour: 14,
			expectedMin:  30,
			expectedText: "conference call",
		},
		{
			input:        "at 9am standup",
			expectedHour: 9,
			expectedMin:  0,
			expectedText: "standup",
		},
		{
			input:        "12am check",
			expectedHour: 0,
			expectedMin:  0,
			expectedText: "check",
		},
		{
			input:        "noon lunch",
			expectedHour: 12,
			expectedMin:  0,
			expectedText: "lunch",
		},
		{
			input:        "midnight deadline",
			expectedHour: 0,
			expectedMin:  0,
			expectedText: "deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !result.HasTime {
				t.Fatal("Expected time to be parsed")
			}

			if result.Date.Hour != tt.expectedHour {
				t.Errorf("Hour mismatch: got %d, want %d", result.Date.Hour, tt.expectedHour)
			}

			if result.Date.Minute != tt.expectedMin {
				t.Errorf("Minute mismatch: got %d, want %d", result.Date.Minute, tt.expectedMin)
			}

			if result.Text != tt.expectedText {
				t.Errorf("Text mismatch: got %q, want %q", result.Text, tt.expectedText)
			}
		})
	}
}

func TestParseTimeRanges(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input            string
		expectedHour     int
		expectedDuration uint
		expectedText     string
	}{
		{
			input:            "2pm-4pm workshop",
			expectedHour:     14,
			expectedDuration: 120,
			expectedText:     "workshop",
		},
		{
			input:            "9:00-10:30 meeting",
			expectedHour:     9,
			expectedDuration: 90,
			expectedText:     "meeting",
		},
		{
			input:            "2-4pm lunch break",
			expectedHour:     14,
			expectedDuration: 120,
			expectedText:     "lunch break",
		},
		{
			input:            "11pm-1am party",
			expectedHour:     23,
			expectedDuration: 120,
			expectedText:     "party",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !result.HasDuration {
				t.Fatal("Expected duration to be parsed")
			}

			if result.Date.Hour != tt.expectedHour {
				t.Errorf("Hour mismatch: got %d, want %d", result.Date.Hour, tt.expectedHour)
			}

			if result.Duration != tt.expectedDuration {
				t.Errorf("Duration mismatch: got %d, want %d", result.Duration, tt.expectedDuration)
			}

			if result.Text != tt.expectedText {
				t.Errorf("Text mismatch: got %q, want %q", result.Text, tt.expectedText)
			}
		})
	}
}

func TestParseCombinations(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedDay  [3]int
		expectedHour int
		expectedText string
	}{
		{
			input:        "tomorrow at 3pm doctor appointment",
			expectedDay:  [3]int{2024, 3, 16},
			expectedHour: 15,
			expectedText: "doctor appointment",
		},
		{
			input:        "next friday 2:30pm team meeting",
			expectedDay:  [3]int{2024, 3, 22},
			expectedHour: 14,
			expectedText: "team meeting",
		},
		{
			input:        "May 20, 2024 at noon graduation",
			expectedDay:  [3]int{2024, 5, 20},
			expectedHour: 12,
			expectedText: "graduation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !sameDay(result.Date, tt.expectedDay) {
				t.Errorf("Date mismatch: got %+v, want %v", result.Date, tt.expectedDay)
			}

			if !result.HasTime {
				t.Fatal("Expected time to be parsed")
			}

			if result.Date.Hour != tt.expectedHour {
				t.Errorf("Hour mismatch: got %d, want %d", result.Date.Hour, tt.expectedHour)
			}

			if result.Text != tt.expectedText {
				t.Errorf("Text mismatch: got %q, want %q", result.Text, tt.expectedText)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	parser := newTestParser()

	for _, input := range []string{"", "   ", "gibberish"} {
		if _, err := parser.Parse(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func sameDay(d calendar.Date, ymd [3]int) bool {
	return d.Valid && d.Year == ymd[0] && d.Month == ymd[1] && d.Day == ymd[2]
}

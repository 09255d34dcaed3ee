package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

// ParsedDate is the result of reading a date field typed by the user.
type ParsedDate struct {
	Date        calendar.Date
	HasTime     bool
	Duration    uint // minutes, from a time range such as "2pm-4pm"
	HasDuration bool
	Text        string // Remaining text after the date and time
}

type TimeParser struct {
	now time.Time
}

func NewTimeParser() *TimeParser {
	return &TimeParser{now: time.Now()}
}

func (p *TimeParser) SetNow(now time.Time) {
	p.now = now
}

var (
	weekdayRe   = regexp.MustCompile(`^(next|this)\s+(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)\b`)
	inRe        = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months)\b`)
	fromNowRe   = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months)\s+from\s+(now|today)`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	usDateRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?`)
	monthNameRe = regexp.MustCompile(`^(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december)\s+(\d{1,2})(?:,?\s+(\d{4}))?`)
	rangeRe     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	timeRe      = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
)

var namedTimes = []struct {
	name string
	hour int
}{
	{"noon", 12},
	{"midnight", 0},
	{"morning", 9},
	{"afternoon", 14},
	{"evening", 18},
	{"night", 21},
}

// Parse reads a date and optional time from input. The exact file form
// "YYYY-MM-DD HH:MM" is accepted first; otherwise phrases such as
// "tomorrow 2pm" or "next friday 10:30-12:00" are understood. Without a
// time the event starts at midnight.
func (p *TimeParser) Parse(input string) (*ParsedDate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	r := strings.NewReader(input)
	if d := calendar.ScanDate(r); d.Valid {
		rest := input[len(input)-r.Len():]
		return &ParsedDate{Date: d, HasTime: true, Text: strings.TrimSpace(rest)}, nil
	}

	result := &ParsedDate{}
	remaining := input

	var day time.Time
	if date, text, ok := p.parseRelativeDate(remaining); ok {
		day = date
		remaining = text
	} else if date, text, ok := p.parseAbsoluteDate(remaining); ok {
		day = date
		remaining = text
	} else {
		day = p.today()
	}

	hour, minute := 0, 0
	if h, m, duration, text, ok := p.parseTime(remaining); ok {
		hour, minute = h, m
		result.HasTime = true
		if duration > 0 {
			result.Duration = uint(duration)
			result.HasDuration = true
		}
		remaining = text
	}

	if remaining == input {
		return nil, fmt.Errorf("could not understand %q", input)
	}

	result.Date = calendar.Date{
		Year:   day.Year(),
		Month:  int(day.Month()),
		Day:    day.Day(),
		Hour:   hour,
		Minute: minute,
		Valid:  true,
	}
	result.Text = strings.TrimSpace(remaining)
	return result, nil
}

func (p *TimeParser) parseRelativeDate(input string) (time.Time, string, bool) {
	lower := strings.ToLower(input)

	switch {
	case strings.HasPrefix(lower, "today"):
		return p.today(), strings.TrimSpace(input[5:]), true
	case strings.HasPrefix(lower, "tomorrow"):
		return p.today().AddDate(0, 0, 1), strings.TrimSpace(input[8:]), true
	case strings.HasPrefix(lower, "tmrw"):
		return p.today().AddDate(0, 0, 1), strings.TrimSpace(input[4:]), true
	case strings.HasPrefix(lower, "yesterday"):
		return p.today().AddDate(0, 0, -1), strings.TrimSpace(input[9:]), true
	}

	if matches := weekdayRe.FindStringSubmatch(lower); matches != nil {
		date := p.findNextWeekday(parseWeekday(matches[2]), matches[1] == "next")
		return date, strings.TrimSpace(input[len(matches[0]):]), true
	}

	for _, re := range []*regexp.Regexp{inRe, fromNowRe} {
		if matches := re.FindStringSubmatch(lower); matches != nil {
			n, _ := strconv.Atoi(matches[1])
			return addUnits(p.today(), n, matches[2]), strings.TrimSpace(input[len(matches[0]):]), true
		}
	}

	return time.Time{}, input, false
}

func addUnits(date time.Time, n int, unit string) time.Time {
	switch {
	case strings.HasPrefix(unit, "week"):
		return date.AddDate(0, 0, n*7)
	case strings.HasPrefix(unit, "month"):
		return date.AddDate(0, n, 0)
	default:
		return date.AddDate(0, 0, n)
	}
}

func (p *TimeParser) parseAbsoluteDate(input string) (time.Time, string, bool) {
	// YYYY-MM-DD
	if matches := isoDateRe.FindStringSubmatch(input); matches != nil {
		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])
		return p.date(year, time.Month(month), day), strings.TrimSpace(input[len(matches[0]):]), true
	}

	// MM/DD/YYYY or MM/DD (current year)
	if matches := usDateRe.FindStringSubmatch(input); matches != nil {
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		year := p.now.Year()
		if matches[3] != "" {
			year, _ = strconv.Atoi(matches[3])
		}
		return p.date(year, time.Month(month), day), strings.TrimSpace(input[len(matches[0]):]), true
	}

	// Month DD, YYYY or Month DD
	if matches := monthNameRe.FindStringSubmatch(strings.ToLower(input)); matches != nil {
		day, _ := strconv.Atoi(matches[2])
		year := p.now.Year()
		if matches[3] != "" {
			year, _ = strconv.Atoi(matches[3])
		}
		return p.date(year, parseMonth(matches[1]), day), strings.TrimSpace(input[len(matches[0]):]), true
	}

	return time.Time{}, input, false
}

// parseTime returns hour, minute and, for a range, its length in minutes.
func (p *TimeParser) parseTime(input string) (int, int, int, string, bool) {
	lower := strings.ToLower(input)

	if strings.HasPrefix(lower, "at ") {
		lower = lower[3:]
		input = input[3:]
	}

	// Time range (e.g., "2pm-4pm" or "14:00-16:00")
	if matches := rangeRe.FindStringSubmatch(lower); matches != nil {
		startHour, startMin := clock(matches[1], matches[2], matches[3])
		endHour, endMin := clock(matches[4], matches[5], matches[6])
		// "2-4pm" means 2pm to 4pm
		if matches[3] == "" && matches[6] == "pm" && startHour < 12 && startHour+12 <= endHour {
			startHour += 12
		}

		length := (endHour*60 + endMin) - (startHour*60 + startMin)
		if length < 0 {
			length += 24 * 60
		}
		return startHour, startMin, length, strings.TrimSpace(input[len(matches[0]):]), true
	}

	// Single time (e.g., "2pm", "14:00", "2:30pm")
	if matches := timeRe.FindStringSubmatch(lower); matches != nil && (matches[2] != "" || matches[3] != "") {
		hour, min := clock(matches[1], matches[2], matches[3])
		return hour, min, 0, strings.TrimSpace(input[len(matches[0]):]), true
	}

	for _, nt := range namedTimes {
		if strings.HasPrefix(lower, nt.name) {
			return nt.hour, 0, 0, strings.TrimSpace(input[len(nt.name):]), true
		}
	}

	return 0, 0, 0, input, false
}

func clock(hourStr, minStr, meridiem string) (int, int) {
	hour, _ := strconv.Atoi(hourStr)
	min := 0
	if minStr != "" {
		min, _ = strconv.Atoi(minStr)
	}

	if meridiem == "pm" && hour < 12 {
		hour += 12
	} else if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return hour, min
}

func parseWeekday(s string) time.Weekday {
	switch s[:3] {
	case "mon":
		return time.Monday
	case "tue":
		return time.Tuesday
	case "wed":
		return time.Wednesday
	case "thu":
		return time.Thursday
	case "fri":
		return time.Friday
	case "sat":
		return time.Saturday
	default:
		return time.Sunday
	}
}

func parseMonth(s string) time.Month {
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), s[:3]) {
			return m
		}
	}
	return time.January
}

func (p *TimeParser) findNextWeekday(target time.Weekday, skipThisWeek bool) time.Time {
	date := p.today()
	daysUntilTarget := int(target - date.Weekday())

	if daysUntilTarget <= 0 || skipThisWeek {
		daysUntilTarget += 7
	}

	return date.AddDate(0, 0, daysUntilTarget)
}

func (p *TimeParser) date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func (p *TimeParser) today() time.Time {
	y, m, d := p.now.Date()
	return p.date(y, m, d)
}

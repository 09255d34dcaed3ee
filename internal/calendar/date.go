package calendar

import (
	"fmt"
	"io"
	"strings"
)

// Date is a calendar date and time of day as read from a calendar file.
// Valid is only set by the scanner; field ranges are checked when rendering.
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Valid  bool
}

var monthNames = [...]string{
	"", "January", "February", "March", "April",
	"May", "June", "July", "August",
	"September", "October", "November", "December",
}

// ScanDate reads "YYYY-MM-DD HH:MM" from the head of r. Leading whitespace
// before each number is skipped. If any of the five numbers is missing the
// zero Date is returned and r is left where scanning stopped.
func ScanDate(r io.RuneScanner) Date {
	var d Date
	var ok bool

	if d.Year, ok = ScanInt(r); !ok {
		return Date{}
	}
	if !expectRune(r, '-') {
		return Date{}
	}
	if d.Month, ok = ScanInt(r); !ok {
		return Date{}
	}
	if !expectRune(r, '-') {
		return Date{}
	}
	if d.Day, ok = ScanInt(r); !ok {
		return Date{}
	}
	// The separating space is consumed by the whitespace skip of the next number.
	if d.Hour, ok = ScanInt(r); !ok {
		return Date{}
	}
	if !expectRune(r, ':') {
		return Date{}
	}
	if d.Minute, ok = ScanInt(r); !ok {
		return Date{}
	}

	d.Valid = true
	return d
}

// ParseDate scans s as a date. Trailing text after the minute is ignored.
func ParseDate(s string) Date {
	return ScanDate(strings.NewReader(s))
}

// InRange reports whether every field is within its calendar range.
func (d Date) InRange() bool {
	return d.Year >= 0 &&
		d.Month >= 1 && d.Month <= 12 &&
		d.Day >= 1 && d.Day <= 31 &&
		d.Hour >= 0 && d.Hour <= 23 &&
		d.Minute >= 0 && d.Minute <= 59
}

// Friendly renders the date for people, e.g. "1 January 2024, 1:05 pm".
// The minute is left out when it is zero.
func (d Date) Friendly() string {
	if !d.Valid || !d.InRange() {
		return "invalid date and/or time"
	}

	hour := d.Hour % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if d.Hour > 11 {
		meridiem = "pm"
	}

	if d.Minute != 0 {
		return fmt.Sprintf("%d %s %d, %d:%02d %s", d.Day, monthNames[d.Month], d.Year, hour, d.Minute, meridiem)
	}
	return fmt.Sprintf("%d %s %d, %d %s", d.Day, monthNames[d.Month], d.Year, hour, meridiem)
}

// String renders the date in the on-disk form.
func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// FriendlyDuration renders minutes as hours and minutes, e.g. "2 hours, 5 minutes".
func FriendlyDuration(minutes uint) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours != 0 && mins != 0:
		return fmt.Sprintf("%d hour%s, %d minute%s", hours, plural(hours), mins, plural(mins))
	case hours != 0:
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	default:
		return fmt.Sprintf("%d minute%s", mins, plural(mins))
	}
}

func plural(n uint) string {
	if n == 1 {
		return ""
	}
	return "s"
}

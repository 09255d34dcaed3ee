// Package codec reads and writes the line-oriented calendar file format:
//
//	YYYY-MM-DD HH:MM <duration-minutes>
//	<name>
//	[<location>]
//	<blank line, only after a location>
//
// The first line that does not start with a date ends the calendar.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

// ErrTruncated is returned when the last record has a date but ends before
// its duration or name could be read. The partial record is not kept.
var ErrTruncated = errors.New("calendar record truncated")

// Decode appends the records in r to l and returns how many records were
// read. Records whose name is already in l are read but not added.
func Decode(r io.Reader, l *calendar.List) (int, error) {
	rd := NewReader(r)
	n := 0

	for {
		date := calendar.ScanDate(rd)
		if !date.Valid {
			return n, rd.Err()
		}

		duration, ok := calendar.ScanUint(rd)
		if !ok {
			return n, truncated(rd)
		}
		rd.finishLine()

		name, err := rd.ReadLine()
		if err != nil {
			return n, truncated(rd)
		}

		location, _ := rd.ReadLine()
		if location != "" {
			rd.ReadLine()
		}

		l.Append(&calendar.Event{
			Date:     date,
			Duration: duration,
			Name:     name,
			Location: location,
		})
		n++
	}
}

func truncated(rd *Reader) error {
	if err := rd.Err(); err != nil {
		return err
	}
	return ErrTruncated
}

// Encode writes every event in l to w, in list order.
func Encode(w io.Writer, l *calendar.List) error {
	bw := bufio.NewWriter(w)
	for e := range l.All() {
		fmt.Fprintf(bw, "%s %d\n%s\n", e.Date, e.Duration, e.Name)
		if e.HasLocation() {
			fmt.Fprintf(bw, "%s\n", e.Location)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Load replaces the contents of l with the calendar in path. l is cleared
// first, so a file that cannot be opened leaves l empty.
func Load(path string, l *calendar.List) (int, error) {
	l.Clear()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer f.Close()

	n, err := Decode(f, l)
	if err != nil {
		return n, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return n, nil
}

// Save writes l to path, replacing any existing file.
func Save(path string, l *calendar.List) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}

	if err := Encode(f, l); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

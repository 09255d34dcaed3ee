package codec

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader reads a calendar stream both rune by rune, for the numeric fields,
// and line by line, for the free-text fields.
type Reader struct {
	br  *bufio.Reader
	err error // first read error other than io.EOF
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

func (r *Reader) ReadRune() (rune, int, error) {
	ch, size, err := r.br.ReadRune()
	r.note(err)
	return ch, size, err
}

func (r *Reader) UnreadRune() error {
	return r.br.UnreadRune()
}

// ReadLine returns the bytes up to, not including, the next line feed. At
// the end of the stream it returns the remaining bytes, or "" and io.EOF
// when nothing was left.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	r.note(err)
	if err != nil {
		if line == "" {
			return "", err
		}
		if !errors.Is(err, io.EOF) {
			return line, err
		}
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Err returns the first non-EOF error seen by the reader.
func (r *Reader) Err() error {
	return r.err
}

// finishLine skips spaces and tabs and then a single line feed, if present.
func (r *Reader) finishLine() {
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		switch ch {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return
		default:
			r.UnreadRune()
			return
		}
	}
}

func (r *Reader) note(err error) {
	if err != nil && r.err == nil && !errors.Is(err, io.EOF) {
		r.err = err
	}
}

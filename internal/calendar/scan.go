package calendar

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ScanInt reads an optionally signed decimal integer after skipping leading
// whitespace. On failure the first offending rune is left unread.
func ScanInt(r io.RuneScanner) (int, bool) {
	sign, digits, ok := scanNumber(r)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(sign + digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ScanUint is ScanInt restricted to non-negative values. It accepts the whole
// uint range, so anything written from a uint reads back.
func ScanUint(r io.RuneScanner) (uint, bool) {
	sign, digits, ok := scanNumber(r)
	if !ok || sign == "-" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// scanNumber skips whitespace and reads an optional sign and a run of digits.
func scanNumber(r io.RuneScanner) (sign, digits string, ok bool) {
	skipSpace(r)

	ch, _, err := r.ReadRune()
	if err != nil {
		return "", "", false
	}
	if ch == '+' || ch == '-' {
		sign = string(ch)
	} else {
		r.UnreadRune()
	}

	var sb strings.Builder
	for {
		ch, _, err = r.ReadRune()
		if err != nil {
			break
		}
		if ch < '0' || ch > '9' {
			r.UnreadRune()
			break
		}
		sb.WriteRune(ch)
	}
	if sb.Len() == 0 {
		return "", "", false
	}
	return sign, sb.String(), true
}

// SkipSpace consumes whitespace, including line feeds.
func SkipSpace(r io.RuneScanner) {
	skipSpace(r)
}

func skipSpace(r io.RuneScanner) {
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(ch) {
			r.UnreadRune()
			return
		}
	}
}

func expectRune(r io.RuneScanner, want rune) bool {
	ch, _, err := r.ReadRune()
	if err != nil {
		return false
	}
	if ch != want {
		r.UnreadRune()
		return false
	}
	return true
}

package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ucpcal/ucpcal/internal/codec"
	"github.com/ucpcal/ucpcal/internal/parser"
)

// parseDuration reads the duration field as whole minutes or a Go duration
// such as "1h30m". An empty field falls back to the length of a time range
// typed in the date field, then to zero.
func parseDuration(s string, parsed *parser.ParsedDate) (uint, error) {
	if s == "" {
		if parsed != nil && parsed.HasDuration {
			return parsed.Duration, nil
		}
		return 0, nil
	}

	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint(n), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q: use minutes or a form like 1h30m", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", s)
	}
	return uint(d / time.Minute), nil
}

// summaryLines renders the list and splits it for scrolling. Long lines are
// wrapped to width when wrapping is enabled.
func (m *Model) summaryLines() []string {
	summary := codec.BuildSummary(m.list)
	if summary == "" {
		return nil
	}
	if m.config.WrapText && m.width > 0 {
		summary = wordwrap.String(summary, m.width)
	}
	return strings.Split(strings.TrimRight(summary, "\n"), "\n")
}

// bodyHeight is the number of summary lines that fit between the header and
// the status bar.
func (m *Model) bodyHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampOffset() {
	maxOffset := len(m.summaryLines()) - m.bodyHeight()
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// keyHelp formats the keys bound to action, e.g. "j/down".
func (m *Model) keyHelp(action string) string {
	keys := m.config.KeysFor(action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

func fitWidth(s string, width int) string {
	if width <= 0 || ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return truncate.String(s, uint(width))
	}
	return truncate.StringWithTail(s, uint(width), "...")
}

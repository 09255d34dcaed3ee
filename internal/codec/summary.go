package codec

import (
	"strings"

	"github.com/ucpcal/ucpcal/internal/calendar"
)

// Upper bounds for the rendered date and duration strings.
const (
	maxFriendlyDate     = 64
	maxFriendlyDuration = 64
)

const (
	locationSep  = " @ "
	durationOpen = " ("
	blockClose   = ")\n"
	blockFooter  = "\n---\n\n"
)

// BuildSummary renders l for display, one block per event:
//
//	<name>[ @ <location>] (<duration>)
//	<date>
//	---
//
// An empty list renders as "".
func BuildSummary(l *calendar.List) string {
	var sb strings.Builder
	sb.Grow(summarySize(l))

	for e := range l.All() {
		sb.WriteString(e.Name)
		if e.HasLocation() {
			sb.WriteString(locationSep)
			sb.WriteString(e.Location)
		}
		sb.WriteString(durationOpen)
		sb.WriteString(calendar.FriendlyDuration(e.Duration))
		sb.WriteString(blockClose)
		sb.WriteString(e.Date.Friendly())
		sb.WriteString(blockFooter)
	}
	return sb.String()
}

// summarySize is an upper bound on the length of BuildSummary(l).
func summarySize(l *calendar.List) int {
	size := 0
	for e := range l.All() {
		size += len(e.Name)
		if e.HasLocation() {
			size += len(locationSep) + len(e.Location)
		}
		size += len(durationOpen) + maxFriendlyDuration + len(blockClose)
		size += maxFriendlyDate + len(blockFooter)
	}
	return size
}

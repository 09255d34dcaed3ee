package calendar

import (
	"container/list"
	"iter"
	"strings"
)

// List is an insertion-ordered collection of events keyed by name. No two
// events in a List share a name.
//
// Events returned by Find may be modified in place, except for Name, which
// must be changed through Rename so the index stays consistent.
type List struct {
	order  *list.List
	byName map[string]*list.Element
}

func NewList() *List {
	return &List{
		order:  list.New(),
		byName: make(map[string]*list.Element),
	}
}

// Append adds e at the end of the list. If an event with the same name is
// already present e is discarded and Append reports false.
func (l *List) Append(e *Event) bool {
	if _, exists := l.byName[e.Name]; exists {
		return false
	}
	l.byName[e.Name] = l.order.PushBack(e)
	return true
}

// Find returns the event called name, or nil.
func (l *List) Find(name string) *Event {
	el, ok := l.byName[name]
	if !ok {
		return nil
	}
	return el.Value.(*Event)
}

// Delete removes the event called name. It reports whether anything was removed.
func (l *List) Delete(name string) bool {
	el, ok := l.byName[name]
	if !ok {
		return false
	}
	l.order.Remove(el)
	delete(l.byName, name)
	return true
}

// Rename changes an event's name in place, keeping its position. It fails
// when oldName is missing or newName is taken by another event.
func (l *List) Rename(oldName, newName string) bool {
	el, ok := l.byName[oldName]
	if !ok {
		return false
	}
	if oldName == newName {
		return true
	}
	if _, taken := l.byName[newName]; taken {
		return false
	}
	delete(l.byName, oldName)
	el.Value.(*Event).Name = newName
	l.byName[newName] = el
	return true
}

// Clear empties the list. The list stays usable.
func (l *List) Clear() {
	l.order.Init()
	clear(l.byName)
}

func (l *List) Len() int {
	return l.order.Len()
}

// All yields the events in insertion order.
func (l *List) All() iter.Seq[*Event] {
	return func(yield func(*Event) bool) {
		for el := l.order.Front(); el != nil; el = el.Next() {
			if !yield(el.Value.(*Event)) {
				return
			}
		}
	}
}

// Events returns a snapshot of the events in insertion order.
func (l *List) Events() []*Event {
	events := make([]*Event, 0, l.order.Len())
	for e := range l.All() {
		events = append(events, e)
	}
	return events
}

// String dumps the list one event per line, for debugging.
func (l *List) String() string {
	var sb strings.Builder
	for e := range l.All() {
		sb.WriteString(e.debugString())
		sb.WriteByte('\n')
	}
	return sb.String()
}

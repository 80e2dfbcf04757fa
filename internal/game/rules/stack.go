package rules

import (
	"errors"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
)

// ResponseEntry is one pending interrupt-card invocation on the stack.
type ResponseEntry struct {
	ID       string
	CardID   string
	Player   int
	CasterID string
	Targets  []string
	Trigger  content.Trigger
	// Context is a snapshot of the trigger's context at queue time.
	Context map[string]string
}

// Clone produces an independent copy of the entry.
func (e ResponseEntry) Clone() ResponseEntry {
	cpy := e
	cpy.Targets = append([]string(nil), e.Targets...)
	cpy.Context = make(map[string]string, len(e.Context))
	for k, v := range e.Context {
		cpy.Context[k] = v
	}
	return cpy
}

// ResponseStack holds not-yet-resolved response invocations in LIFO order.
type ResponseStack struct {
	entries []ResponseEntry
}

// NewResponseStack creates an empty response stack.
func NewResponseStack() *ResponseStack {
	return &ResponseStack{entries: make([]ResponseEntry, 0, 8)}
}

// Push adds an entry to the top of the stack.
func (rs *ResponseStack) Push(entry ResponseEntry) {
	rs.entries = append(rs.entries, entry)
}

// Pop removes and returns the top entry.
func (rs *ResponseStack) Pop() (ResponseEntry, error) {
	if len(rs.entries) == 0 {
		return ResponseEntry{}, errors.New("response stack empty")
	}
	idx := len(rs.entries) - 1
	entry := rs.entries[idx]
	rs.entries = rs.entries[:idx]
	return entry, nil
}

// Peek returns the top entry without removing it.
func (rs *ResponseStack) Peek() (ResponseEntry, bool) {
	if len(rs.entries) == 0 {
		return ResponseEntry{}, false
	}
	return rs.entries[len(rs.entries)-1], true
}

// List returns a copy of all entries, topmost last.
func (rs *ResponseStack) List() []ResponseEntry {
	cpy := make([]ResponseEntry, len(rs.entries))
	for i, e := range rs.entries {
		cpy[i] = e.Clone()
	}
	return cpy
}

// Len returns the number of pending entries.
func (rs *ResponseStack) Len() int {
	return len(rs.entries)
}

// IsEmpty returns whether the stack is empty.
func (rs *ResponseStack) IsEmpty() bool {
	return len(rs.entries) == 0
}

// Clear drops every pending entry.
func (rs *ResponseStack) Clear() {
	rs.entries = rs.entries[:0]
}

// Clone produces an independent copy of the stack.
func (rs *ResponseStack) Clone() *ResponseStack {
	cpy := NewResponseStack()
	cpy.entries = rs.List()
	return cpy
}

package game

import (
	"errors"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// historyEntry pairs an executed action with full state snapshots taken
// immediately before and after it ran. Snapshot-based reversal guarantees
// undo restores the exact pre-execute state regardless of what the action
// touched.
type historyEntry struct {
	action Action
	before *state.GameState
	after  *state.GameState
}

// History is a linear undo stack with a cursor. Executing a new action
// truncates any redo tail.
type History struct {
	entries []historyEntry
	cursor  int
}

func NewHistory() *History {
	return &History{}
}

// Record appends an executed action, discarding the redo tail.
func (h *History) Record(action Action, before, after *state.GameState) {
	h.entries = h.entries[:h.cursor]
	h.entries = append(h.entries, historyEntry{action: action, before: before, after: after})
	h.cursor = len(h.entries)
}

// Undo steps the cursor back and returns the snapshot to restore.
func (h *History) Undo() (*state.GameState, Action, error) {
	if h.cursor == 0 {
		return nil, nil, ErrNothingToUndo
	}
	h.cursor--
	entry := h.entries[h.cursor]
	return entry.before.Clone(), entry.action, nil
}

// Redo steps the cursor forward and returns the snapshot to restore.
func (h *History) Redo() (*state.GameState, Action, error) {
	if h.cursor >= len(h.entries) {
		return nil, nil, ErrNothingToRedo
	}
	entry := h.entries[h.cursor]
	h.cursor++
	return entry.after.Clone(), entry.action, nil
}

// CanUndo reports whether an action is available to reverse.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a reversed action can be reapplied.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// Len is the number of actions currently applied.
func (h *History) Len() int { return h.cursor }

// Clear drops all history, for turn boundaries where undo must not cross.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}

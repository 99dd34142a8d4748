package history

import (
	"fmt"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// History is a bounded two-stack undo/redo record for one buffer.
// When the undo stack exceeds its cap the oldest entry is evicted;
// that edit becomes permanent.
type History struct {
	undo  []Command
	redo  []Command
	limit int
}

// New creates a history with the given cap. Non-positive caps fall
// back to DefaultMaxEntries.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &History{limit: limit}
}

// Push records an executed command. It first offers the command to the
// top of the undo stack for merging; otherwise it appends, evicting
// the oldest entry past the cap. Any recorded edit invalidates redo.
func (h *History) Push(cmd Command) {
	h.redo = nil
	if n := len(h.undo); n > 0 {
		if m, ok := h.undo[n-1].(merger); ok && m.MergeWith(cmd) {
			return
		}
	}
	h.undo = append(h.undo, cmd)
	if excess := len(h.undo) - h.limit; excess > 0 {
		h.undo = h.undo[excess:]
	}
}

// Undo reverses the most recent command and moves it to the redo
// stack. It reports whether anything happened; an empty stack is not
// an error.
func (h *History) Undo(b *buffer.Buffer) (bool, error) {
	n := len(h.undo)
	if n == 0 {
		return false, nil
	}
	cmd := h.undo[n-1]
	h.undo = h.undo[:n-1]
	if err := cmd.Undo(b); err != nil {
		h.undo = append(h.undo, cmd)
		return false, fmt.Errorf("undo %s: %w", cmd.Description(), err)
	}
	h.redo = append(h.redo, cmd)
	return true, nil
}

// Redo re-applies the most recently undone command and moves it back
// to the undo stack. It reports whether anything happened.
func (h *History) Redo(b *buffer.Buffer) (bool, error) {
	n := len(h.redo)
	if n == 0 {
		return false, nil
	}
	cmd := h.redo[n-1]
	h.redo = h.redo[:n-1]
	if err := cmd.Execute(b); err != nil {
		h.redo = append(h.redo, cmd)
		return false, fmt.Errorf("redo %s: %w", cmd.Description(), err)
	}
	h.undo = append(h.undo, cmd)
	return true, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int { return len(h.redo) }

// Clear drops both stacks, typically after a save-as or reload makes
// recorded offsets meaningless.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

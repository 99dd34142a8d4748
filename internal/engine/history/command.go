// Package history provides reversible edit commands and a bounded
// undo/redo stack per buffer.
//
// Every mutation of a buffer is expressed as a Command so execution
// and reversal stay symmetric. Removed text is captured lazily at
// execution time, never at construction, and committed to the command
// only after the mutation fully succeeds.
package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// Command is a reversible edit action.
type Command interface {
	// Execute performs the command against the buffer.
	Execute(b *buffer.Buffer) error

	// Undo reverses a previously executed command.
	Undo(b *buffer.Buffer) error

	// Description returns a short human-readable label.
	Description() string

	// CanUndo reports whether the command belongs in history.
	CanUndo() bool
}

// merger is the opt-in capability for collapsing adjacent commands
// into one undo step. Commands without it never merge.
type merger interface {
	// MergeWith absorbs next into the receiver. It reports whether
	// the merge happened.
	MergeWith(next Command) bool
}

// Insert splices text at a byte offset.
type Insert struct {
	Offset int
	Text   string
}

// NewInsert creates an insert command.
func NewInsert(offset int, text string) *Insert {
	return &Insert{Offset: offset, Text: text}
}

// Execute inserts the text.
func (c *Insert) Execute(b *buffer.Buffer) error {
	if err := b.Insert(c.Offset, c.Text); err != nil {
		return fmt.Errorf("insert at %d: %w", c.Offset, err)
	}
	return nil
}

// Undo removes the inserted text.
func (c *Insert) Undo(b *buffer.Buffer) error {
	if err := b.Delete(c.Offset, c.Offset+len(c.Text)); err != nil {
		return fmt.Errorf("undo insert at %d: %w", c.Offset, err)
	}
	return nil
}

// Description returns a human-readable label.
func (c *Insert) Description() string {
	if n := utf8.RuneCountInString(c.Text); n > 20 {
		return fmt.Sprintf("Insert %d characters", n)
	}
	return fmt.Sprintf("Insert %q", c.Text)
}

// CanUndo reports that inserts are undoable.
func (c *Insert) CanUndo() bool { return true }

// MergeWith absorbs an immediately following insert whose insertion
// point is exactly where this command's text ends, collapsing a typing
// burst into one undo step.
func (c *Insert) MergeWith(next Command) bool {
	n, ok := next.(*Insert)
	if !ok {
		return false
	}
	if c.Offset+len(c.Text) != n.Offset {
		return false
	}
	c.Text += n.Text
	return true
}

// Delete removes a half-open byte range. The removed text is captured
// when the command executes.
type Delete struct {
	Start int
	End   int

	removed  string
	captured bool
}

// NewDelete creates a delete command for [start, end).
func NewDelete(start, end int) *Delete {
	return &Delete{Start: start, End: end}
}

// Execute captures then removes the range.
func (c *Delete) Execute(b *buffer.Buffer) error {
	old, err := b.Slice(c.Start, c.End)
	if err != nil {
		return fmt.Errorf("delete [%d,%d): %w", c.Start, c.End, err)
	}
	if err := b.Delete(c.Start, c.End); err != nil {
		return fmt.Errorf("delete [%d,%d): %w", c.Start, c.End, err)
	}
	c.removed = old
	c.captured = true
	return nil
}

// Undo restores the removed text.
func (c *Delete) Undo(b *buffer.Buffer) error {
	if !c.captured {
		return nil
	}
	if err := b.Insert(c.Start, c.removed); err != nil {
		return fmt.Errorf("undo delete [%d,%d): %w", c.Start, c.End, err)
	}
	return nil
}

// Description returns a human-readable label.
func (c *Delete) Description() string {
	return fmt.Sprintf("Delete %d bytes", c.End-c.Start)
}

// CanUndo reports that deletes are undoable.
func (c *Delete) CanUndo() bool { return true }

// Replace substitutes a half-open byte range with new text as one
// versioned buffer operation.
type Replace struct {
	Start int
	End   int
	Text  string

	removed  string
	captured bool
}

// NewReplace creates a replace command for [start, end).
func NewReplace(start, end int, text string) *Replace {
	return &Replace{Start: start, End: end, Text: text}
}

// Execute captures the old text then performs the replacement.
func (c *Replace) Execute(b *buffer.Buffer) error {
	old, err := b.Slice(c.Start, c.End)
	if err != nil {
		return fmt.Errorf("replace [%d,%d): %w", c.Start, c.End, err)
	}
	if err := b.Replace(c.Start, c.End, c.Text); err != nil {
		return fmt.Errorf("replace [%d,%d): %w", c.Start, c.End, err)
	}
	c.removed = old
	c.captured = true
	return nil
}

// Undo swaps the replacement back out.
func (c *Replace) Undo(b *buffer.Buffer) error {
	if !c.captured {
		return nil
	}
	if err := b.Replace(c.Start, c.Start+len(c.Text), c.removed); err != nil {
		return fmt.Errorf("undo replace [%d,%d): %w", c.Start, c.End, err)
	}
	return nil
}

// Description returns a human-readable label.
func (c *Replace) Description() string {
	return fmt.Sprintf("Replace %d bytes with %d characters",
		c.End-c.Start, utf8.RuneCountInString(c.Text))
}

// CanUndo reports that replacements are undoable.
func (c *Replace) CanUndo() bool { return true }

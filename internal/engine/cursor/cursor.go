// Package cursor provides insertion points over a buffer: single
// cursors with optional selection anchors and preferred columns, and
// ordered multi-cursor sets with one primary.
//
// Every movement is buffer-aware and lands on a UTF-8 code point
// boundary; a cursor can never straddle a multi-byte character.
package cursor

import (
	"github.com/loomtext/loom/internal/engine/buffer"
)

// Selection is a normalized half-open byte range.
type Selection struct {
	Start int
	End   int
}

// IsEmpty reports whether the selection has no extent.
func (s Selection) IsEmpty() bool { return s.Start == s.End }

// Len returns the selection length in bytes.
func (s Selection) Len() int { return s.End - s.Start }

// Cursor is an insertion point: a byte offset, an optional selection
// anchor, and an optional preferred column carried across consecutive
// vertical moves.
type Cursor struct {
	offset    int
	anchor    int
	hasAnchor bool

	// prefCol is a rune column within the line. It is set on
	// horizontal movement or explicit placement and reused, not
	// recomputed, by vertical movement, so passing through a short
	// line and back restores the original column.
	prefCol    int
	hasPrefCol bool
}

// New returns a cursor at the given offset.
func New(offset int) *Cursor {
	if offset < 0 {
		offset = 0
	}
	return &Cursor{offset: offset}
}

// Offset returns the cursor's byte offset.
func (c *Cursor) Offset() int { return c.offset }

// MoveTo places the cursor at offset, clamped to the buffer and
// snapped back to a code point boundary. Explicit placement resets the
// preferred column.
func (c *Cursor) MoveTo(b *buffer.Buffer, offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > b.Len() {
		offset = b.Len()
	}
	for offset > 0 && !b.IsBoundary(offset) {
		offset--
	}
	c.offset = offset
	c.hasPrefCol = false
}

// StartSelection fixes the anchor at the current offset.
func (c *Cursor) StartSelection() {
	c.anchor = c.offset
	c.hasAnchor = true
}

// ClearSelection drops the anchor.
func (c *Cursor) ClearSelection() {
	c.hasAnchor = false
}

// HasSelection reports whether an anchor is set with extent.
func (c *Cursor) HasSelection() bool {
	return c.hasAnchor && c.anchor != c.offset
}

// Selection returns the normalized range between anchor and offset.
// The second result is false when no anchor is set.
func (c *Cursor) Selection() (Selection, bool) {
	if !c.hasAnchor {
		return Selection{}, false
	}
	if c.anchor <= c.offset {
		return Selection{Start: c.anchor, End: c.offset}, true
	}
	return Selection{Start: c.offset, End: c.anchor}, true
}

// ExtendTo moves the offset while keeping the anchor fixed, starting a
// selection at the current position if none exists.
func (c *Cursor) ExtendTo(b *buffer.Buffer, offset int) {
	if !c.hasAnchor {
		c.StartSelection()
	}
	anchor, has := c.anchor, c.hasAnchor
	c.MoveTo(b, offset)
	c.anchor, c.hasAnchor = anchor, has
}

// Clone returns an independent copy of the cursor.
func (c *Cursor) Clone() *Cursor {
	dup := *c
	return &dup
}

// clampInto keeps the cursor and anchor valid after the buffer
// changed underneath it.
func (c *Cursor) clampInto(b *buffer.Buffer) {
	if c.offset > b.Len() {
		c.offset = b.Len()
	}
	for c.offset > 0 && !b.IsBoundary(c.offset) {
		c.offset--
	}
	if c.hasAnchor {
		if c.anchor > b.Len() {
			c.anchor = b.Len()
		}
		for c.anchor > 0 && !b.IsBoundary(c.anchor) {
			c.anchor--
		}
	}
}

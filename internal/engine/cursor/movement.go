package cursor

import (
	"unicode"
	"unicode/utf8"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// MoveLeft moves n Unicode scalars left, clamped to the buffer start.
// Horizontal movement re-establishes the preferred column.
func (c *Cursor) MoveLeft(b *buffer.Buffer, n int) {
	for i := 0; i < n && c.offset > 0; i++ {
		c.offset = prevBoundary(b, c.offset)
	}
	c.setPreferredHere(b)
}

// MoveRight moves n Unicode scalars right, clamped to the buffer end.
func (c *Cursor) MoveRight(b *buffer.Buffer, n int) {
	for i := 0; i < n && c.offset < b.Len(); i++ {
		c.offset = nextBoundary(b, c.offset)
	}
	c.setPreferredHere(b)
}

// MoveUp moves n lines up, carrying the preferred column. The first
// vertical move records the current column; consecutive vertical moves
// reuse it, so a short line in between does not lose the target.
func (c *Cursor) MoveUp(b *buffer.Buffer, n int) {
	c.moveVertical(b, -n)
}

// MoveDown moves n lines down, carrying the preferred column.
func (c *Cursor) MoveDown(b *buffer.Buffer, n int) {
	c.moveVertical(b, n)
}

func (c *Cursor) moveVertical(b *buffer.Buffer, delta int) {
	p := b.OffsetToPosition(c.offset)
	if !c.hasPrefCol {
		c.prefCol = runeColumn(b, p.Line, c.offset)
		c.hasPrefCol = true
	}
	line := p.Line + delta
	if line < 0 {
		line = 0
	}
	if last := b.LineCount() - 1; line > last {
		line = last
	}
	c.offset = offsetAtRuneColumn(b, line, c.prefCol)
}

// MoveWordForward moves to the end of the next alphanumeric run. Past
// the last word the cursor lands at the end of the buffer.
func (c *Cursor) MoveWordForward(b *buffer.Buffer) {
	off := c.offset
	n := b.Len()
	for off < n {
		r, size := runeAt(b, off)
		if isWordRune(r) {
			break
		}
		off += size
	}
	for off < n {
		r, size := runeAt(b, off)
		if !isWordRune(r) {
			break
		}
		off += size
	}
	c.offset = off
	c.setPreferredHere(b)
}

// MoveWordBackward moves to the start of the previous alphanumeric
// run. Before the first word the cursor lands at the buffer start.
func (c *Cursor) MoveWordBackward(b *buffer.Buffer) {
	off := c.offset
	for off > 0 {
		prev := prevBoundary(b, off)
		r, _ := runeAt(b, prev)
		if isWordRune(r) {
			break
		}
		off = prev
	}
	for off > 0 {
		prev := prevBoundary(b, off)
		r, _ := runeAt(b, prev)
		if !isWordRune(r) {
			break
		}
		off = prev
	}
	c.offset = off
	c.setPreferredHere(b)
}

// MoveToLineStart moves to column 0 of the current line.
func (c *Cursor) MoveToLineStart(b *buffer.Buffer) {
	p := b.OffsetToPosition(c.offset)
	c.offset = b.LineStartOffset(p.Line)
	c.setPreferredHere(b)
}

// MoveToLineEnd moves past the last character of the current line,
// before its terminator.
func (c *Cursor) MoveToLineEnd(b *buffer.Buffer) {
	p := b.OffsetToPosition(c.offset)
	c.offset = lineContentEnd(b, p.Line)
	c.setPreferredHere(b)
}

// MoveToBufferStart moves to offset 0.
func (c *Cursor) MoveToBufferStart(b *buffer.Buffer) {
	c.offset = 0
	c.setPreferredHere(b)
}

// MoveToBufferEnd moves past the last character of the buffer.
func (c *Cursor) MoveToBufferEnd(b *buffer.Buffer) {
	c.offset = b.Len()
	c.setPreferredHere(b)
}

// MovePageUp moves one page up, carrying the preferred column.
func (c *Cursor) MovePageUp(b *buffer.Buffer, pageLines int) {
	if pageLines < 1 {
		pageLines = 1
	}
	c.moveVertical(b, -pageLines)
}

// MovePageDown moves one page down, carrying the preferred column.
func (c *Cursor) MovePageDown(b *buffer.Buffer, pageLines int) {
	if pageLines < 1 {
		pageLines = 1
	}
	c.moveVertical(b, pageLines)
}

// setPreferredHere records the current rune column as the preferred
// column, ending any vertical-move streak.
func (c *Cursor) setPreferredHere(b *buffer.Buffer) {
	p := b.OffsetToPosition(c.offset)
	c.prefCol = runeColumn(b, p.Line, c.offset)
	c.hasPrefCol = true
}

// Boundary and rune helpers.

func prevBoundary(b *buffer.Buffer, offset int) int {
	offset--
	for offset > 0 && !b.IsBoundary(offset) {
		offset--
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func nextBoundary(b *buffer.Buffer, offset int) int {
	offset++
	for offset < b.Len() && !b.IsBoundary(offset) {
		offset++
	}
	if offset > b.Len() {
		return b.Len()
	}
	return offset
}

// runeAt decodes the rune starting at offset.
func runeAt(b *buffer.Buffer, offset int) (rune, int) {
	end := offset + utf8.UTFMax
	if end > b.Len() {
		end = b.Len()
	}
	s, err := b.Slice(offset, end)
	if err != nil || s == "" {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// runeColumn returns the rune column of offset within its line.
func runeColumn(b *buffer.Buffer, line, offset int) int {
	start := b.LineStartOffset(line)
	s, err := b.Slice(start, offset)
	if err != nil {
		return 0
	}
	return utf8.RuneCountInString(s)
}

// offsetAtRuneColumn returns the byte offset of the given rune column
// on a line, clamped to the line's content end.
func offsetAtRuneColumn(b *buffer.Buffer, line, col int) int {
	start := b.LineStartOffset(line)
	end := lineContentEnd(b, line)
	off := start
	for i := 0; i < col && off < end; i++ {
		off = nextBoundary(b, off)
	}
	if off > end {
		return end
	}
	return off
}

// lineContentEnd returns the offset past the last character of a
// line, excluding the terminator and any carriage return before it.
func lineContentEnd(b *buffer.Buffer, line int) int {
	end := b.LineEndOffset(line)
	if end > 0 {
		if by, err := b.Slice(end-1, end); err == nil && by == "\r" {
			end--
		}
	}
	return end
}

// Package lsp translates between the engine's byte offsets and the
// line/UTF-16-character positions language servers speak.
//
// Translation is stateless and reads the buffer it is given; callers
// pair results with the buffer version they were computed against.
package lsp

import (
	"unicode/utf8"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// Position is a protocol position: 0-based line, 0-based character
// measured in UTF-16 code units. Supplementary-plane code points count
// as two characters.
type Position struct {
	Line      int
	Character int
}

// FromOffset converts a byte offset to a protocol position. Offsets
// past the end of the buffer clamp to the final position.
func FromOffset(b *buffer.Buffer, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > b.Len() {
		offset = b.Len()
	}
	for offset > 0 && !b.IsBoundary(offset) {
		offset--
	}
	p := b.OffsetToPosition(offset)
	start := b.LineStartOffset(p.Line)
	prefix, err := b.Slice(start, offset)
	if err != nil {
		return Position{Line: p.Line}
	}
	return Position{Line: p.Line, Character: utf16Len(prefix)}
}

// ToOffset converts a protocol position to a byte offset. Lines past
// the end clamp to the last line; characters past the end of a line
// clamp to the line's end before its terminator.
func ToOffset(b *buffer.Buffer, pos Position) int {
	line := pos.Line
	if line < 0 {
		line = 0
	}
	if last := b.LineCount() - 1; line > last {
		line = last
	}
	start := b.LineStartOffset(line)
	end := b.LineEndOffset(line)
	text, err := b.Slice(start, end)
	if err != nil {
		return start
	}
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	units := 0
	for i, r := range text {
		if units >= pos.Character {
			return start + i
		}
		units += utf16RuneLen(r)
	}
	return start + len(text)
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	units := 0
	for _, r := range s {
		units += utf16RuneLen(r)
	}
	return units
}

func utf16RuneLen(r rune) int {
	if r > 0xFFFF && utf8.ValidRune(r) {
		return 2
	}
	return 1
}

// Package rope implements an immutable balanced rope for text storage.
// Insert, delete, slice and line lookup are all O(log n). Operations
// return new Rope values; existing values are never modified, which
// makes snapshots free.
package rope

import (
	"io"
	"strings"
)

// Rope is an immutable sequence of UTF-8 text.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeaf("")}
}

// FromString builds a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return Rope{root: buildFromNodes(splitIntoLeaves(s))}
}

// FromReader builds a rope from the full contents of r.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// splitIntoLeaves cuts s into leaf nodes of bounded size, splitting at
// UTF-8 boundaries and preferring a cut just after a newline.
func splitIntoLeaves(s string) []*node {
	var leaves []*node
	for len(s) > 0 {
		if len(s) <= maxLeafBytes {
			leaves = append(leaves, newLeaf(s))
			break
		}
		cut := splitPoint(s, targetLeafBytes)
		leaves = append(leaves, newLeaf(s[:cut]))
		s = s[cut:]
	}
	return leaves
}

// splitPoint finds a cut position near target that does not divide a
// code point. A newline shortly before the target wins.
func splitPoint(s string, target int) int {
	lo := target - 64
	if lo < 1 {
		lo = 1
	}
	for i := target; i > lo; i-- {
		if s[i-1] == '\n' {
			return i
		}
	}
	if i := runeStart(s, target); i > 0 {
		return i
	}
	// Not valid UTF-8 near the target; cut anyway to guarantee progress.
	return target
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Bytes
}

// LineCount returns the number of lines (newlines + 1). An empty rope
// has exactly one line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.Lines + 1
}

// UTF16Len returns the total UTF-16 code unit length.
func (r Rope) UTF16Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.UTF16
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool { return r.Len() == 0 }

// String returns the full text. Use sparingly on large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in [start, end). Bounds are clamped.
func (r Rope) Slice(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at offset, or (0, false) when out of range.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.byteAt(offset), true
}

// IsBoundary reports whether offset lies on a UTF-8 code point
// boundary. Both ends of the rope are boundaries.
func (r Rope) IsBoundary(offset int) bool {
	if offset <= 0 || offset >= r.Len() {
		return true
	}
	b, _ := r.ByteAt(offset)
	return isBoundaryByte(b)
}

// Insert returns a rope with text spliced in at offset.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope with [start, end) removed. Bounds are clamped.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}
	n := r.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start == 0 && end == n {
		return New()
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace substitutes [start, end) with text as one operation.
func (r Rope) Replace(start, end int, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(FromString(text)).Concat(right)
}

// Split divides the rope at offset: [0, offset) and [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	l, rt := r.root.split(offset)
	return Rope{root: l}, Rope{root: rt}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// LineStartOffset returns the byte offset where the 0-indexed line
// begins. Lines past the last clamp to Len.
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.sum.Lines {
		return r.Len()
	}
	// Seek the byte just after the line-th newline.
	off := 0
	n := r.root
	for !n.isLeaf() {
		var next *node
		for i, c := range n.children {
			if n.childSum[i].Lines >= line {
				next = c
				break
			}
			line -= n.childSum[i].Lines
			off += n.childSum[i].Bytes
		}
		if next == nil {
			return r.Len()
		}
		n = next
	}
	idx := nthNewline(n.text, line)
	if idx < 0 {
		return r.Len()
	}
	return off + idx + 1
}

// LineEndOffset returns the byte offset of the end of the line, not
// including its newline. The last line ends at Len.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStartOffset(line+1) - 1
}

// LineText returns the text of a line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset to line/column. Offsets past
// the end clamp to the final position.
func (r Rope) OffsetToPoint(offset int) Point {
	if r.root == nil || offset <= 0 {
		return Point{}
	}
	if offset > r.Len() {
		offset = r.Len()
	}
	line := r.newlinesBefore(offset)
	return Point{Line: line, Column: offset - r.LineStartOffset(line)}
}

// PointToOffset converts line/column to a byte offset. Columns past
// the line end clamp to the line end; lines past the last clamp to Len.
func (r Rope) PointToOffset(p Point) int {
	if r.root == nil || p.Line < 0 {
		return 0
	}
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start := r.LineStartOffset(p.Line)
	end := r.LineEndOffset(p.Line)
	if p.Column <= 0 {
		return start
	}
	if start+p.Column >= end {
		return end
	}
	return start + p.Column
}

// newlinesBefore counts newlines in [0, offset).
func (r Rope) newlinesBefore(offset int) int {
	count := 0
	n := r.root
	for !n.isLeaf() {
		var next *node
		for i, c := range n.children {
			if offset < n.childSum[i].Bytes {
				next = c
				break
			}
			offset -= n.childSum[i].Bytes
			count += n.childSum[i].Lines
			if offset == 0 {
				return count
			}
		}
		if next == nil {
			return count
		}
		n = next
	}
	return count + countNewlines(n.text[:offset])
}

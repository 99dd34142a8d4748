package cursor

import (
	"errors"
	"sort"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// ErrCursorIndex indicates a secondary-cursor index out of range.
var ErrCursorIndex = errors.New("cursor index out of range")

// Op is a single cursor operation applied across a set.
type Op func(*Cursor, *buffer.Buffer)

// Set is an ordered, deduplicated collection of cursors over one
// buffer, with one primary. Order is by offset; merging drops exact
// duplicates deterministically.
type Set struct {
	cursors []*Cursor
	primary int
}

// NewSet creates a set with a single primary cursor at offset.
func NewSet(offset int) *Set {
	return &Set{cursors: []*Cursor{New(offset)}}
}

// Primary returns the primary cursor.
func (s *Set) Primary() *Cursor {
	return s.cursors[s.primary]
}

// Count returns the number of cursors.
func (s *Set) Count() int { return len(s.cursors) }

// Cursors returns the cursors in offset order. The slice is a copy;
// the cursors are shared.
func (s *Set) Cursors() []*Cursor {
	out := make([]*Cursor, len(s.cursors))
	copy(out, s.cursors)
	return out
}

// Add inserts a cursor at the given offset and re-merges the set.
func (s *Set) Add(b *buffer.Buffer, offset int) {
	c := New(0)
	c.MoveTo(b, offset)
	s.cursors = append(s.cursors, c)
	s.Merge()
}

// Remove deletes the index-th secondary cursor, counting in offset
// order and skipping the primary. Fails when the index is outside the
// secondary-cursor bounds.
func (s *Set) Remove(index int) error {
	if index < 0 || index >= len(s.cursors)-1 {
		return ErrCursorIndex
	}
	sec := 0
	for i := range s.cursors {
		if i == s.primary {
			continue
		}
		if sec == index {
			s.cursors = append(s.cursors[:i], s.cursors[i+1:]...)
			if i < s.primary {
				s.primary--
			}
			return nil
		}
		sec++
	}
	return ErrCursorIndex
}

// ClearSecondary drops every cursor except the primary.
func (s *Set) ClearSecondary() {
	p := s.Primary()
	s.cursors = []*Cursor{p}
	s.primary = 0
}

// Merge sorts cursors by offset and drops exact duplicate offsets.
// Ties are resolved deterministically: the earliest added survives,
// and the primary designation follows the primary cursor's offset.
func (s *Set) Merge() {
	if len(s.cursors) <= 1 {
		return
	}
	p := s.cursors[s.primary]
	sort.SliceStable(s.cursors, func(i, j int) bool {
		return s.cursors[i].offset < s.cursors[j].offset
	})
	merged := s.cursors[:1]
	for _, c := range s.cursors[1:] {
		last := merged[len(merged)-1]
		if c.offset == last.offset {
			if c == p {
				p = last
			}
			continue
		}
		merged = append(merged, c)
	}
	s.cursors = merged
	s.primary = 0
	for i, c := range s.cursors {
		if c == p {
			s.primary = i
			break
		}
	}
}

// Apply runs one operation on every cursor, primary included, then
// re-merges the set.
func (s *Set) Apply(b *buffer.Buffer, op Op) {
	for _, c := range s.cursors {
		op(c, b)
	}
	s.Merge()
}

// Clamp snaps every cursor back into the buffer after its content
// changed underneath the set.
func (s *Set) Clamp(b *buffer.Buffer) {
	for _, c := range s.cursors {
		c.clampInto(b)
	}
	s.Merge()
}

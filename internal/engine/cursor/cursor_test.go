package cursor

import (
	"errors"
	"testing"

	"github.com/loomtext/loom/internal/engine/buffer"
)

func TestMoveToClamps(t *testing.T) {
	b := buffer.NewFromString("hello")
	c := New(0)

	c.MoveTo(b, 99)
	if c.Offset() != 5 {
		t.Errorf("expected clamp to 5, got %d", c.Offset())
	}

	c.MoveTo(b, -3)
	if c.Offset() != 0 {
		t.Errorf("expected clamp to 0, got %d", c.Offset())
	}
}

func TestMoveToSnapsToBoundary(t *testing.T) {
	b := buffer.NewFromString("a世b") // 世 occupies bytes 1..3

	c := New(0)
	c.MoveTo(b, 2)
	if c.Offset() != 1 {
		t.Errorf("expected snap back to 1, got %d", c.Offset())
	}
}

func TestMoveRightOverMultibyte(t *testing.T) {
	b := buffer.NewFromString("a世b")
	c := New(0)

	c.MoveRight(b, 1)
	if c.Offset() != 1 {
		t.Errorf("got %d", c.Offset())
	}
	c.MoveRight(b, 1)
	if c.Offset() != 4 {
		t.Errorf("expected to skip the full code point, got %d", c.Offset())
	}
	c.MoveLeft(b, 1)
	if c.Offset() != 1 {
		t.Errorf("got %d", c.Offset())
	}
}

func TestMoveLineEndThenDownKeepsColumn(t *testing.T) {
	b := buffer.NewFromString("Line1\nLine2\nLine3")
	c := New(0)

	c.MoveDown(b, 1)
	c.MoveToLineEnd(b)
	c.MoveDown(b, 1)

	p := b.OffsetToPosition(c.Offset())
	if p.Line != 2 {
		t.Fatalf("expected line 2, got %d", p.Line)
	}
	if p.Column != 5 {
		t.Errorf("expected the line-end column 5, got %d", p.Column)
	}
}

func TestPreferredColumnSurvivesShortLine(t *testing.T) {
	b := buffer.NewFromString("long line here\nab\nanother long line")
	c := New(0)

	c.MoveRight(b, 10)
	c.MoveDown(b, 1)
	if col := b.OffsetToPosition(c.Offset()).Column; col != 2 {
		t.Fatalf("short line should clamp to 2, got %d", col)
	}

	c.MoveDown(b, 1)
	if col := b.OffsetToPosition(c.Offset()).Column; col != 10 {
		t.Errorf("preferred column should be restored to 10, got %d", col)
	}
}

func TestHorizontalMoveResetsPreferredColumn(t *testing.T) {
	b := buffer.NewFromString("abcdef\nab\nabcdef")
	c := New(0)

	c.MoveRight(b, 5)
	c.MoveDown(b, 1)
	c.MoveLeft(b, 1)
	c.MoveDown(b, 1)

	if col := b.OffsetToPosition(c.Offset()).Column; col != 1 {
		t.Errorf("expected column 1 after horizontal reset, got %d", col)
	}
}

func TestMoveWordForward(t *testing.T) {
	b := buffer.NewFromString("foo bar, baz")
	c := New(0)

	c.MoveWordForward(b)
	if c.Offset() != 3 {
		t.Errorf("expected end of foo (3), got %d", c.Offset())
	}
	c.MoveWordForward(b)
	if c.Offset() != 7 {
		t.Errorf("expected end of bar (7), got %d", c.Offset())
	}
	c.MoveWordForward(b)
	if c.Offset() != 12 {
		t.Errorf("expected end of baz (12), got %d", c.Offset())
	}
	c.MoveWordForward(b)
	if c.Offset() != 12 {
		t.Errorf("past the last word should stay at end, got %d", c.Offset())
	}
}

func TestMoveWordBackward(t *testing.T) {
	b := buffer.NewFromString("foo bar, baz")
	c := New(12)

	c.MoveWordBackward(b)
	if c.Offset() != 9 {
		t.Errorf("expected start of baz (9), got %d", c.Offset())
	}
	c.MoveWordBackward(b)
	if c.Offset() != 4 {
		t.Errorf("expected start of bar (4), got %d", c.Offset())
	}
	c.MoveWordBackward(b)
	if c.Offset() != 0 {
		t.Errorf("expected start of foo (0), got %d", c.Offset())
	}
	c.MoveWordBackward(b)
	if c.Offset() != 0 {
		t.Errorf("before the first word should stay at 0, got %d", c.Offset())
	}
}

func TestSelectionNormalized(t *testing.T) {
	b := buffer.NewFromString("hello world")
	c := New(8)

	c.StartSelection()
	c.ExtendTo(b, 3)

	sel, ok := c.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.Start != 3 || sel.End != 8 {
		t.Errorf("expected [3,8), got [%d,%d)", sel.Start, sel.End)
	}
	if sel.Len() != 5 {
		t.Errorf("expected length 5, got %d", sel.Len())
	}
}

func TestClearSelection(t *testing.T) {
	b := buffer.NewFromString("hello")
	c := New(0)

	c.StartSelection()
	c.ExtendTo(b, 3)
	c.ClearSelection()

	if c.HasSelection() {
		t.Error("selection should be cleared")
	}
	if _, ok := c.Selection(); ok {
		t.Error("Selection should report no anchor")
	}
}

func TestSetMergeDropsDuplicates(t *testing.T) {
	b := buffer.NewFromString("0123456789")
	s := NewSet(4)

	s.Add(b, 7)
	s.Add(b, 2)
	s.Add(b, 7) // duplicate
	if s.Count() != 3 {
		t.Fatalf("expected 3 cursors after dedup, got %d", s.Count())
	}

	offsets := []int{}
	for _, c := range s.Cursors() {
		offsets = append(offsets, c.Offset())
	}
	for i, want := range []int{2, 4, 7} {
		if offsets[i] != want {
			t.Errorf("cursor %d at %d, want %d", i, offsets[i], want)
		}
	}
}

func TestSetPrimarySurvivesMerge(t *testing.T) {
	b := buffer.NewFromString("0123456789")
	s := NewSet(4)

	s.Add(b, 1)
	s.Add(b, 8)
	if s.Primary().Offset() != 4 {
		t.Errorf("primary moved to %d", s.Primary().Offset())
	}

	// A duplicate landing on the primary keeps a primary at that offset.
	s.Add(b, 4)
	if s.Primary().Offset() != 4 {
		t.Errorf("primary should stay at 4, got %d", s.Primary().Offset())
	}
	if s.Count() != 3 {
		t.Errorf("expected 3 cursors, got %d", s.Count())
	}
}

func TestSetRemoveSecondary(t *testing.T) {
	b := buffer.NewFromString("0123456789")
	s := NewSet(4)
	s.Add(b, 1)
	s.Add(b, 8)

	if err := s.Remove(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if s.Count() != 2 {
		t.Errorf("expected 2 cursors, got %d", s.Count())
	}
	if s.Primary().Offset() != 4 {
		t.Errorf("primary should survive removal, got %d", s.Primary().Offset())
	}

	if err := s.Remove(5); !errors.Is(err, ErrCursorIndex) {
		t.Errorf("error = %v, want ErrCursorIndex", err)
	}
}

func TestSetApplyMovesAllCursors(t *testing.T) {
	b := buffer.NewFromString("aaa bbb ccc")
	s := NewSet(0)
	s.Add(b, 4)

	s.Apply(b, func(c *Cursor, b *buffer.Buffer) {
		c.MoveWordForward(b)
	})

	offsets := []int{}
	for _, c := range s.Cursors() {
		offsets = append(offsets, c.Offset())
	}
	for i, want := range []int{3, 7} {
		if offsets[i] != want {
			t.Errorf("cursor %d at %d, want %d", i, offsets[i], want)
		}
	}
}

func TestSetClampAfterShrink(t *testing.T) {
	b := buffer.NewFromString("0123456789")
	s := NewSet(9)
	s.Add(b, 3)

	if err := b.Delete(5, 10); err != nil {
		t.Fatal(err)
	}
	s.Clamp(b)

	for _, c := range s.Cursors() {
		if c.Offset() > b.Len() {
			t.Errorf("cursor at %d past end %d", c.Offset(), b.Len())
		}
	}
}

func TestClearSecondary(t *testing.T) {
	b := buffer.NewFromString("0123456789")
	s := NewSet(5)
	s.Add(b, 1)
	s.Add(b, 9)

	s.ClearSecondary()
	if s.Count() != 1 {
		t.Errorf("expected 1 cursor, got %d", s.Count())
	}
	if s.Primary().Offset() != 5 {
		t.Errorf("primary should remain at 5, got %d", s.Primary().Offset())
	}
}

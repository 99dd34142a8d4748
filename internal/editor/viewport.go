package editor

import (
	"github.com/mattn/go-runewidth"

	"github.com/loomtext/loom/internal/engine/buffer"
)

// Viewport is the visible window over a buffer: a top line, a left
// display column, and a size in screen cells.
type Viewport struct {
	topLine int
	leftCol int
	width   int
	height  int
	margin  int
}

// NewViewport creates a viewport of the given size. margin keeps that
// many lines of context around the cursor when scrolling.
func NewViewport(width, height, margin int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if margin < 0 {
		margin = 0
	}
	if margin > (height-1)/2 {
		margin = (height - 1) / 2
	}
	return &Viewport{width: width, height: height, margin: margin}
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible display column.
func (v *Viewport) LeftColumn() int { return v.leftCol }

// Height returns the viewport height in lines.
func (v *Viewport) Height() int { return v.height }

// Width returns the viewport width in cells.
func (v *Viewport) Width() int { return v.width }

// Resize changes the viewport size, keeping the top line in place.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	if v.margin > (height-1)/2 {
		v.margin = (height - 1) / 2
	}
}

// EnsureVisible scrolls the minimum distance needed to bring a line
// into the window. A line already visible never moves the viewport.
// It reports whether the viewport scrolled.
func (v *Viewport) EnsureVisible(line int) bool {
	if line < 0 {
		line = 0
	}
	switch {
	case line < v.topLine+v.margin:
		top := line - v.margin
		if top < 0 {
			top = 0
		}
		if top == v.topLine {
			return false
		}
		v.topLine = top
		return true
	case line >= v.topLine+v.height-v.margin:
		v.topLine = line - v.height + 1 + v.margin
		return true
	}
	return false
}

// EnsureColumnVisible scrolls horizontally so the given display column
// is in view. It reports whether the viewport scrolled.
func (v *Viewport) EnsureColumnVisible(col int) bool {
	if col < 0 {
		col = 0
	}
	switch {
	case col < v.leftCol:
		v.leftCol = col
		return true
	case col >= v.leftCol+v.width:
		v.leftCol = col - v.width + 1
		return true
	}
	return false
}

// DisplayColumn returns the screen column of a byte offset, measuring
// the line prefix in terminal cells. Wide East Asian characters take
// two cells; tabs advance to the next stop.
func DisplayColumn(b *buffer.Buffer, offset, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	p := b.OffsetToPosition(offset)
	start := b.LineStartOffset(p.Line)
	prefix, err := b.Slice(start, offset)
	if err != nil {
		return 0
	}
	col := 0
	for _, r := range prefix {
		if r == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}

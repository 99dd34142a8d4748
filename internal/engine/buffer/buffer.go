// Package buffer provides the document value of the editing core: a
// rope-backed text content plus the metadata external collaborators
// key on (identity, path, language, version, dirty state, line-ending
// mode).
//
// Buffers are not internally synchronized. The aggregate owner is the
// sole mutator; external collaborators use the version counter as an
// optimistic-concurrency token and must recompute cached offsets when
// it has advanced.
package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/loomtext/loom/internal/engine/rope"
)

// Point is a 0-indexed line/column position, column in bytes.
type Point = rope.Point

// Buffer holds one open document's text and metadata.
type Buffer struct {
	id       ID
	content  rope.Rope
	path     string
	language string
	version  uint64
	dirty    bool
	eol      LineEnding
}

// Option configures a buffer during creation.
type Option func(*Buffer)

// WithPath associates the buffer with a file path.
func WithPath(path string) Option {
	return func(b *Buffer) { b.path = path }
}

// WithLanguage tags the buffer with a language. The tag is set once at
// load and never re-detected implicitly.
func WithLanguage(lang string) Option {
	return func(b *Buffer) { b.language = lang }
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:      NextID(),
		content: rope.New(),
		eol:     LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. The content
// counts as loaded, not typed: version 0, clean.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.content = rope.FromString(s)
	b.eol = DetectLineEnding(s)
	return b
}

// Load reads a file into a new buffer. The line-ending mode is
// detected from the content; the caller supplies the language tag via
// WithLanguage.
func Load(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	all := append([]Option{WithPath(path)}, opts...)
	return NewFromString(string(data), all...), nil
}

// Metadata and query surface.

// ID returns the buffer's process-unique identity.
func (b *Buffer) ID() ID { return b.id }

// Path returns the associated file path, empty for scratch buffers.
func (b *Buffer) Path() string { return b.path }

// SetPath changes the associated file path (save-as).
func (b *Buffer) SetPath(path string) { b.path = path }

// Language returns the language tag, empty when unknown.
func (b *Buffer) Language() string { return b.language }

// Version returns the mutation counter. It increments by exactly one
// per successful mutation and never moves on failure.
func (b *Buffer) Version() uint64 { return b.version }

// IsDirty reports whether the buffer has unsaved mutations.
func (b *Buffer) IsDirty() bool { return b.dirty }

// LineEnding returns the buffer's terminator mode.
func (b *Buffer) LineEnding() LineEnding { return b.eol }

// SetLineEnding changes the terminator mode. It does not rewrite the
// content; callers converting a file replace the terminators too.
func (b *Buffer) SetLineEnding(eol LineEnding) { b.eol = eol }

// Text returns the full content.
func (b *Buffer) Text() string { return b.content.String() }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return b.content.Len() }

// LineCount returns the number of lines. An empty buffer has exactly
// one empty line, including immediately after deleting all content.
func (b *Buffer) LineCount() int { return b.content.LineCount() }

// UTF16Len returns the content length in UTF-16 code units.
func (b *Buffer) UTF16Len() int { return b.content.UTF16Len() }

// Rope returns the underlying rope. Ropes are immutable, so the value
// is a free snapshot of the current content.
func (b *Buffer) Rope() rope.Rope { return b.content }

// Mutation surface.

// Insert splices text at the given byte offset. The text must be
// valid UTF-8; the content invariant holds because every splice is
// checked here.
func (b *Buffer) Insert(offset int, text string) error {
	if offset < 0 || offset > b.content.Len() {
		return ErrInvalidPosition
	}
	if !b.content.IsBoundary(offset) {
		return ErrUTF8Boundary
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if len(text) == 0 {
		return nil
	}
	b.content = b.content.Insert(offset, text)
	b.observe(text)
	b.committed()
	return nil
}

// Delete removes the half-open byte range [start, end).
func (b *Buffer) Delete(start, end int) error {
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	b.content = b.content.Delete(start, end)
	b.committed()
	return nil
}

// Replace substitutes [start, end) with text as one versioned
// operation: one version increment, one dirty transition. Validation
// happens entirely before any mutation.
func (b *Buffer) Replace(start, end int, text string) error {
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if start == end && len(text) == 0 {
		return nil
	}
	b.content = b.content.Replace(start, end, text)
	b.observe(text)
	b.committed()
	return nil
}

// Slice returns the text in [start, end). An empty range at the end of
// the buffer always succeeds.
func (b *Buffer) Slice(start, end int) (string, error) {
	if start < 0 || end < start || end > b.content.Len() {
		return "", ErrInvalidRange
	}
	return b.content.Slice(start, end), nil
}

// Line returns the text of the 0-based line including its own
// delimiter. The second result is false past the last line.
func (b *Buffer) Line(index int) (string, bool) {
	if index < 0 || index >= b.content.LineCount() {
		return "", false
	}
	start := b.content.LineStartOffset(index)
	var end int
	if index == b.content.LineCount()-1 {
		end = b.content.Len()
	} else {
		end = b.content.LineStartOffset(index + 1)
	}
	return b.content.Slice(start, end), true
}

// LineText returns the text of a line without its delimiter, and
// without the carriage return in CRLF buffers.
func (b *Buffer) LineText(index int) string {
	text := b.content.LineText(index)
	return strings.TrimSuffix(text, "\r")
}

// OffsetToPosition converts a byte offset to line/column. Offsets past
// the end clamp rather than fail.
func (b *Buffer) OffsetToPosition(offset int) Point {
	return b.content.OffsetToPoint(offset)
}

// PositionToOffset converts line/column to a byte offset, clamping
// out-of-range input.
func (b *Buffer) PositionToOffset(p Point) int {
	return b.content.PointToOffset(p)
}

// LineStartOffset returns the byte offset where a line begins.
func (b *Buffer) LineStartOffset(line int) int {
	return b.content.LineStartOffset(line)
}

// LineEndOffset returns the byte offset of a line's end, before its
// delimiter.
func (b *Buffer) LineEndOffset(line int) int {
	return b.content.LineEndOffset(line)
}

// IsBoundary reports whether offset lies on a code point boundary.
func (b *Buffer) IsBoundary(offset int) bool {
	return b.content.IsBoundary(offset)
}

// Persistence.

// Save writes the content to the buffer's path and clears the dirty
// flag on success.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.path, []byte(b.content.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	b.dirty = false
	return nil
}

// SaveAtomic writes the content to a sibling temporary file and
// renames it over the target, so a crash mid-write never truncates the
// original. Clears the dirty flag on success.
func (b *Buffer) SaveAtomic() error {
	if b.path == "" {
		return ErrNoPath
	}
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(b.content.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	b.dirty = false
	return nil
}

// checkRange validates a half-open range and its boundaries.
func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || end < start || end > b.content.Len() {
		return ErrInvalidRange
	}
	if !b.content.IsBoundary(start) || !b.content.IsBoundary(end) {
		return ErrUTF8Boundary
	}
	return nil
}

// committed records a successful mutation.
func (b *Buffer) committed() {
	b.version++
	b.dirty = true
}

// observe upgrades the line-ending mode when inserted text carries a
// CRLF terminator.
func (b *Buffer) observe(text string) {
	if b.eol == LineEndingLF && strings.Contains(text, "\r\n") {
		b.eol = LineEndingCRLF
	}
}

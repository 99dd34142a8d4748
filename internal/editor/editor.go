// Package editor is the aggregate root of the editing core. It owns
// the open buffers and, for each, a companion of cursors, history and
// viewport that is created and destroyed together with the buffer.
package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/loomtext/loom/internal/config"
	"github.com/loomtext/loom/internal/engine/buffer"
	"github.com/loomtext/loom/internal/engine/cursor"
	"github.com/loomtext/loom/internal/engine/history"
	"github.com/loomtext/loom/internal/logger"
)

// session is the per-buffer companion state. It exists exactly as long
// as its buffer does.
type session struct {
	buf      *buffer.Buffer
	cursors  *cursor.Set
	history  *history.History
	viewport *Viewport
}

// Editor aggregates open buffers and their companion state. It is not
// internally synchronized; the embedding application is the single
// writer.
type Editor struct {
	cfg      *config.Config
	sessions map[buffer.ID]*session
	order    []buffer.ID
	active   buffer.ID
	modes    *ModeManager
}

// New creates an editor with no open buffers. A nil config uses the
// defaults.
func New(cfg *config.Config) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Editor{
		cfg:      cfg,
		sessions: make(map[buffer.ID]*session),
		modes:    NewModeManager(),
	}
}

// Modes returns the editor-wide mode state. Modes are shared across
// buffers, not per buffer.
func (e *Editor) Modes() *ModeManager { return e.modes }

// NewBuffer opens an empty scratch buffer and makes it active.
func (e *Editor) NewBuffer() *buffer.Buffer {
	b := buffer.New()
	e.attach(b)
	logger.Info("buffer created", zap.Stringer("id", b.ID()))
	return b
}

// OpenBuffer loads a file into a new buffer and makes it active. A
// path that is already open switches to the existing buffer instead of
// loading a second copy.
func (e *Editor) OpenBuffer(path string) (*buffer.Buffer, error) {
	for _, id := range e.order {
		s := e.sessions[id]
		if s.buf.Path() == path {
			e.active = id
			return s.buf, nil
		}
	}
	var opts []buffer.Option
	if lang, ok := config.LanguageForPath(path); ok {
		opts = append(opts, buffer.WithLanguage(lang))
	}
	b, err := buffer.Load(path, opts...)
	if err != nil {
		logger.Error("open failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	e.attach(b)
	logger.Info("buffer opened",
		zap.Stringer("id", b.ID()),
		zap.String("path", path),
		zap.String("language", b.Language()),
		zap.Stringer("eol", b.LineEnding()),
		zap.Int("lines", b.LineCount()))
	return b, nil
}

// attach creates the companion state for a buffer and activates it.
func (e *Editor) attach(b *buffer.Buffer) {
	e.sessions[b.ID()] = &session{
		buf:      b,
		cursors:  cursor.NewSet(0),
		history:  history.New(e.cfg.History.MaxEntries),
		viewport: NewViewport(80, 24, e.cfg.Editor.ScrollMargin),
	}
	e.order = append(e.order, b.ID())
	e.active = b.ID()
}

// CloseBuffer removes a buffer and its companion state. A dirty buffer
// blocks the close unless force is set.
func (e *Editor) CloseBuffer(id buffer.ID, force bool) error {
	s, ok := e.sessions[id]
	if !ok {
		return fmt.Errorf("close %s: %w", id, ErrBufferNotFound)
	}
	if s.buf.IsDirty() && !force {
		return fmt.Errorf("close %s: %w", id, ErrCloseBlocked)
	}
	delete(e.sessions, id)
	for i, o := range e.order {
		if o == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.active == id {
		e.active = 0
		if n := len(e.order); n > 0 {
			e.active = e.order[n-1]
		}
	}
	logger.Info("buffer closed", zap.Stringer("id", id), zap.Bool("force", force))
	return nil
}

// SwitchBuffer makes the given buffer active.
func (e *Editor) SwitchBuffer(id buffer.ID) error {
	if _, ok := e.sessions[id]; !ok {
		return fmt.Errorf("switch %s: %w", id, ErrBufferNotFound)
	}
	e.active = id
	return nil
}

// ActiveBuffer returns the active buffer, or nil when none is open.
func (e *Editor) ActiveBuffer() *buffer.Buffer {
	if s := e.activeSession(); s != nil {
		return s.buf
	}
	return nil
}

// Buffers returns the open buffers in opening order.
func (e *Editor) Buffers() []*buffer.Buffer {
	out := make([]*buffer.Buffer, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.sessions[id].buf)
	}
	return out
}

// Cursors returns the active buffer's cursor set, or nil.
func (e *Editor) Cursors() *cursor.Set {
	if s := e.activeSession(); s != nil {
		return s.cursors
	}
	return nil
}

// History returns the active buffer's history, or nil.
func (e *Editor) History() *history.History {
	if s := e.activeSession(); s != nil {
		return s.history
	}
	return nil
}

// Viewport returns the active buffer's viewport, or nil.
func (e *Editor) Viewport() *Viewport {
	if s := e.activeSession(); s != nil {
		return s.viewport
	}
	return nil
}

func (e *Editor) activeSession() *session {
	if s, ok := e.sessions[e.active]; ok {
		return s
	}
	return nil
}

// ExecuteCommand runs a command against the active buffer, records it
// in history when it is undoable, and follows the primary cursor into
// view. Command errors pass through unchanged.
func (e *Editor) ExecuteCommand(cmd history.Command) error {
	s := e.activeSession()
	if s == nil {
		return ErrNoActiveBuffer
	}
	if err := cmd.Execute(s.buf); err != nil {
		return err
	}
	if cmd.CanUndo() {
		s.history.Push(cmd)
	}
	s.cursors.Clamp(s.buf)
	e.followCursor(s)
	return nil
}

// InsertText types text at every cursor, farthest first so earlier
// insertions do not shift later targets. Each cursor advances past its
// own insertion. With a single cursor, consecutive calls chain into
// one undo step.
func (e *Editor) InsertText(text string) error {
	s := e.activeSession()
	if s == nil {
		return ErrNoActiveBuffer
	}
	if len(text) == 0 {
		return nil
	}
	cursors := s.cursors.Cursors()
	offsets := make([]int, len(cursors))
	for i, c := range cursors {
		offsets[i] = c.Offset()
	}
	for i := len(cursors) - 1; i >= 0; i-- {
		cmd := history.NewInsert(offsets[i], text)
		if err := cmd.Execute(s.buf); err != nil {
			return err
		}
		s.history.Push(cmd)
	}
	for i, c := range cursors {
		c.MoveTo(s.buf, offsets[i]+len(text)*(i+1))
	}
	s.cursors.Merge()
	e.followCursor(s)
	return nil
}

// Undo reverses the most recent edit of the active buffer. It reports
// whether anything happened.
func (e *Editor) Undo() (bool, error) {
	return e.step((*history.History).Undo)
}

// Redo re-applies the most recently undone edit of the active buffer.
func (e *Editor) Redo() (bool, error) {
	return e.step((*history.History).Redo)
}

func (e *Editor) step(f func(*history.History, *buffer.Buffer) (bool, error)) (bool, error) {
	s := e.activeSession()
	if s == nil {
		return false, nil
	}
	ok, err := f(s.history, s.buf)
	if err != nil {
		return false, err
	}
	if ok {
		s.cursors.Clamp(s.buf)
		e.followCursor(s)
	}
	return ok, nil
}

// SaveActive writes the active buffer to its path atomically.
func (e *Editor) SaveActive() error {
	s := e.activeSession()
	if s == nil {
		return ErrNoActiveBuffer
	}
	if err := s.buf.SaveAtomic(); err != nil {
		logger.Error("save failed",
			zap.Stringer("id", s.buf.ID()),
			zap.String("path", s.buf.Path()),
			zap.Error(err))
		return err
	}
	logger.Info("buffer saved",
		zap.Stringer("id", s.buf.ID()),
		zap.String("path", s.buf.Path()),
		zap.Uint64("version", s.buf.Version()))
	return nil
}

// followCursor scrolls the viewport the minimum distance needed to
// keep the primary cursor visible.
func (e *Editor) followCursor(s *session) {
	off := s.cursors.Primary().Offset()
	p := s.buf.OffsetToPosition(off)
	s.viewport.EnsureVisible(p.Line)
	s.viewport.EnsureColumnVisible(DisplayColumn(s.buf, off, e.cfg.Editor.TabWidth))
}

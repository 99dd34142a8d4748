package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/loomtext/loom/internal/engine/buffer"
	"github.com/loomtext/loom/internal/engine/history"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenBuffer(t *testing.T) {
	path := writeTemp(t, "main.go", "package main\n")
	ed := New(nil)

	b, err := ed.OpenBuffer(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if b.Language() != "go" {
		t.Errorf("expected language go, got %q", b.Language())
	}
	if ed.ActiveBuffer() != b {
		t.Error("opened buffer should become active")
	}
	if ed.Cursors() == nil || ed.History() == nil || ed.Viewport() == nil {
		t.Error("companion state should exist for the open buffer")
	}
}

func TestOpenSamePathTwice(t *testing.T) {
	path := writeTemp(t, "notes.md", "hello\n")
	ed := New(nil)

	first, err := ed.OpenBuffer(path)
	if err != nil {
		t.Fatal(err)
	}
	ed.NewBuffer()

	second, err := ed.OpenBuffer(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("reopening a path should return the existing buffer")
	}
	if ed.ActiveBuffer() != first {
		t.Error("reopening should switch to the existing buffer")
	}
}

func TestSwitchBufferUnknown(t *testing.T) {
	ed := New(nil)
	ed.NewBuffer()

	err := ed.SwitchBuffer(99999)
	if !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestCloseDirtyBufferBlocked(t *testing.T) {
	ed := New(nil)
	b := ed.NewBuffer()

	if err := ed.ExecuteCommand(history.NewInsert(0, "unsaved")); err != nil {
		t.Fatal(err)
	}

	err := ed.CloseBuffer(b.ID(), false)
	if !errors.Is(err, ErrCloseBlocked) {
		t.Fatalf("error = %v, want ErrCloseBlocked", err)
	}
	if ed.ActiveBuffer() != b {
		t.Error("blocked close must leave the buffer open")
	}

	if err := ed.CloseBuffer(b.ID(), true); err != nil {
		t.Fatalf("forced close failed: %v", err)
	}
	if ed.ActiveBuffer() != nil {
		t.Error("forced close should remove the buffer")
	}
	if ed.Cursors() != nil || ed.History() != nil || ed.Viewport() != nil {
		t.Error("companion state should be destroyed with the buffer")
	}
}

func TestCloseUnknownBuffer(t *testing.T) {
	ed := New(nil)
	if err := ed.CloseBuffer(12345, true); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestCloseActivatesMostRecent(t *testing.T) {
	ed := New(nil)
	first := ed.NewBuffer()
	second := ed.NewBuffer()

	if err := ed.CloseBuffer(second.ID(), true); err != nil {
		t.Fatal(err)
	}
	if ed.ActiveBuffer() != first {
		t.Error("closing the active buffer should fall back to the remaining one")
	}
}

func TestExecuteCommandRecordsHistory(t *testing.T) {
	ed := New(nil)
	b := ed.NewBuffer()

	if err := ed.ExecuteCommand(history.NewInsert(0, "Hello")); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "Hello" {
		t.Errorf("got %q", b.Text())
	}
	if !ed.History().CanUndo() {
		t.Error("executed command should be recorded")
	}

	ok, err := ed.Undo()
	if !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if b.Text() != "" {
		t.Errorf("got %q", b.Text())
	}

	ok, err = ed.Redo()
	if !ok || err != nil {
		t.Fatalf("Redo = %v, %v", ok, err)
	}
	if b.Text() != "Hello" {
		t.Errorf("got %q", b.Text())
	}
}

func TestExecuteCommandErrorPassesThrough(t *testing.T) {
	ed := New(nil)
	ed.NewBuffer()

	err := ed.ExecuteCommand(history.NewDelete(0, 10))
	if err == nil {
		t.Fatal("expected an error")
	}
	if ed.History().CanUndo() {
		t.Error("failed command must not be recorded")
	}
}

func TestExecuteCommandNoActiveBuffer(t *testing.T) {
	ed := New(nil)
	err := ed.ExecuteCommand(history.NewInsert(0, "x"))
	if !errors.Is(err, ErrNoActiveBuffer) {
		t.Errorf("error = %v, want ErrNoActiveBuffer", err)
	}
}

func TestInsertTextTypingBurstMerges(t *testing.T) {
	ed := New(nil)
	b := ed.NewBuffer()

	for _, ch := range []string{"H", "e", "y"} {
		if err := ed.InsertText(ch); err != nil {
			t.Fatal(err)
		}
	}
	if b.Text() != "Hey" {
		t.Errorf("got %q", b.Text())
	}
	if got := ed.History().UndoCount(); got != 1 {
		t.Errorf("typing burst should merge into 1 entry, got %d", got)
	}
	if got := ed.Cursors().Primary().Offset(); got != 3 {
		t.Errorf("cursor should follow the typed text, got %d", got)
	}

	if ok, _ := ed.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if b.Text() != "" {
		t.Errorf("undo of the burst should empty the buffer, got %q", b.Text())
	}
}

func TestInsertTextMultiCursor(t *testing.T) {
	ed := New(nil)
	b := ed.NewBuffer()
	if err := ed.InsertText("aa bb"); err != nil {
		t.Fatal(err)
	}

	ed.Cursors().Primary().MoveTo(b, 0)
	ed.Cursors().Add(b, 3)

	if err := ed.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "xaa xbb" {
		t.Errorf("got %q", b.Text())
	}

	offsets := []int{}
	for _, c := range ed.Cursors().Cursors() {
		offsets = append(offsets, c.Offset())
	}
	for i, want := range []int{1, 5} {
		if offsets[i] != want {
			t.Errorf("cursor %d at %d, want %d", i, offsets[i], want)
		}
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	ed := New(nil)
	b := ed.NewBuffer()

	text := ""
	for i := 0; i < 100; i++ {
		text += "line\n"
	}
	if err := ed.ExecuteCommand(history.NewInsert(0, text)); err != nil {
		t.Fatal(err)
	}

	ed.Cursors().Primary().MoveTo(b, b.PositionToOffset(buffer.Point{Line: 50}))
	if err := ed.InsertText("!"); err != nil {
		t.Fatal(err)
	}

	v := ed.Viewport()
	if line := 50; line < v.TopLine() || line >= v.TopLine()+v.Height() {
		t.Errorf("line 50 not visible in [%d, %d)", v.TopLine(), v.TopLine()+v.Height())
	}
}

func TestSaveActive(t *testing.T) {
	path := writeTemp(t, "save.txt", "before\n")
	ed := New(nil)
	if _, err := ed.OpenBuffer(path); err != nil {
		t.Fatal(err)
	}
	if err := ed.ExecuteCommand(history.NewReplace(0, 6, "after")); err != nil {
		t.Fatal(err)
	}

	if err := ed.SaveActive(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "after\n" {
		t.Errorf("got %q", data)
	}
}

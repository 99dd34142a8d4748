package editor

import "testing"

func TestModeManagerStartsNormal(t *testing.T) {
	m := NewModeManager()

	if m.Current() != ModeNormal {
		t.Errorf("expected Normal, got %v", m.Current())
	}
	if _, ok := m.Previous(); ok {
		t.Error("fresh manager should have no previous mode")
	}
}

func TestInsertModeRoundTrip(t *testing.T) {
	m := NewModeManager()

	m.EnterInsert()
	if m.Current() != ModeInsert {
		t.Fatalf("expected Insert, got %v", m.Current())
	}
	if prev, ok := m.Previous(); !ok || prev != ModeNormal {
		t.Errorf("previous = %v, %v; want Normal, true", prev, ok)
	}

	m.ExitInsert()
	if m.Current() != ModeNormal {
		t.Errorf("expected Normal after exit, got %v", m.Current())
	}
}

func TestVisualModeRoundTrip(t *testing.T) {
	m := NewModeManager()

	m.EnterVisual()
	if m.Current() != ModeVisual {
		t.Fatalf("expected Visual, got %v", m.Current())
	}
	m.ExitVisual()
	if m.Current() != ModeNormal {
		t.Errorf("expected Normal after exit, got %v", m.Current())
	}
}

func TestExitOnlyLeavesMatchingMode(t *testing.T) {
	m := NewModeManager()

	m.EnterCommand()
	m.ExitInsert()
	if m.Current() != ModeCommand {
		t.Errorf("ExitInsert must not leave Command mode, got %v", m.Current())
	}
	m.ExitCommand()
	if m.Current() != ModeNormal {
		t.Errorf("expected Normal, got %v", m.Current())
	}
}

func TestSwitchToSameModeKeepsPrevious(t *testing.T) {
	m := NewModeManager()

	m.EnterInsert()
	m.SwitchTo(ModeInsert)
	if prev, ok := m.Previous(); !ok || prev != ModeNormal {
		t.Errorf("redundant switch should not clobber previous, got %v, %v", prev, ok)
	}
}

func TestReturnToPrevious(t *testing.T) {
	m := NewModeManager()

	m.EnterVisual()
	m.EnterCommand()
	m.ReturnToPrevious()
	if m.Current() != ModeVisual {
		t.Fatalf("expected Visual, got %v", m.Current())
	}

	// The previous mode is consumed; a second return does nothing.
	m.ReturnToPrevious()
	if m.Current() != ModeVisual {
		t.Errorf("expected Visual to stick, got %v", m.Current())
	}
}

func TestModePredicates(t *testing.T) {
	tests := []struct {
		mode      Mode
		indicator string
		insert    bool
		selection bool
	}{
		{ModeNormal, "NORMAL", false, false},
		{ModeInsert, "INSERT", true, false},
		{ModeVisual, "VISUAL", false, true},
		{ModeCommand, "COMMAND", false, false},
	}
	for _, tt := range tests {
		if got := tt.mode.Indicator(); got != tt.indicator {
			t.Errorf("%v.Indicator() = %q, want %q", tt.mode, got, tt.indicator)
		}
		if got := tt.mode.AllowsInsert(); got != tt.insert {
			t.Errorf("%v.AllowsInsert() = %v, want %v", tt.mode, got, tt.insert)
		}
		if got := tt.mode.AllowsSelection(); got != tt.selection {
			t.Errorf("%v.AllowsSelection() = %v, want %v", tt.mode, got, tt.selection)
		}
	}
}

func TestEditorOwnsModeState(t *testing.T) {
	ed := New(nil)

	if ed.Modes().Current() != ModeNormal {
		t.Fatalf("editor should start in Normal mode, got %v", ed.Modes().Current())
	}
	ed.Modes().EnterInsert()
	ed.NewBuffer()
	if ed.Modes().Current() != ModeInsert {
		t.Error("mode state is editor-wide and must survive buffer changes")
	}
}

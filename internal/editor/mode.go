package editor

// Mode is the modal-editing state: navigation, insertion, selection,
// or ex-style command entry.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeCommand
)

// Indicator returns the status-bar label for the mode.
func (m Mode) Indicator() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string { return m.Indicator() }

// AllowsInsert reports whether the mode accepts text insertion.
func (m Mode) AllowsInsert() bool { return m == ModeInsert }

// AllowsSelection reports whether the mode drives a selection.
func (m Mode) AllowsSelection() bool { return m == ModeVisual }

// ModeManager tracks the current mode and the one it was entered
// from, so a transient mode can return where it came from.
type ModeManager struct {
	current  Mode
	previous Mode
	hasPrev  bool
}

// NewModeManager starts in Normal mode with no previous mode.
func NewModeManager() *ModeManager {
	return &ModeManager{current: ModeNormal}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode { return m.current }

// Previous returns the mode active before the last switch. The second
// result is false when there has been no switch.
func (m *ModeManager) Previous() (Mode, bool) {
	return m.previous, m.hasPrev
}

// SwitchTo changes the current mode, remembering the one it replaces.
// Switching to the current mode is a no-op.
func (m *ModeManager) SwitchTo(mode Mode) {
	if m.current == mode {
		return
	}
	m.previous = m.current
	m.hasPrev = true
	m.current = mode
}

// EnterInsert switches to Insert mode.
func (m *ModeManager) EnterInsert() { m.SwitchTo(ModeInsert) }

// ExitInsert returns to Normal mode when in Insert mode.
func (m *ModeManager) ExitInsert() {
	if m.current == ModeInsert {
		m.SwitchTo(ModeNormal)
	}
}

// EnterVisual switches to Visual mode.
func (m *ModeManager) EnterVisual() { m.SwitchTo(ModeVisual) }

// ExitVisual returns to Normal mode when in Visual mode.
func (m *ModeManager) ExitVisual() {
	if m.current == ModeVisual {
		m.SwitchTo(ModeNormal)
	}
}

// EnterCommand switches to Command mode.
func (m *ModeManager) EnterCommand() { m.SwitchTo(ModeCommand) }

// ExitCommand returns to Normal mode when in Command mode.
func (m *ModeManager) ExitCommand() {
	if m.current == ModeCommand {
		m.SwitchTo(ModeNormal)
	}
}

// ReturnToPrevious restores the mode active before the last switch,
// consuming it. Without a previous mode it does nothing.
func (m *ModeManager) ReturnToPrevious() {
	if !m.hasPrev {
		return
	}
	m.current = m.previous
	m.hasPrev = false
}

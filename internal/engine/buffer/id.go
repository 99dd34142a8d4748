package buffer

import (
	"fmt"
	"sync/atomic"
)

// ID uniquely identifies a buffer for the lifetime of the process.
// IDs are never reused; companion state (cursors, history, viewports)
// is keyed by ID rather than holding the buffer itself.
type ID uint64

var lastID atomic.Uint64

// NextID allocates a fresh buffer ID.
func NextID() ID {
	return ID(lastID.Add(1))
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return fmt.Sprintf("buf-%d", uint64(id))
}

package editor

import "errors"

var (
	// ErrBufferNotFound indicates an ID that names no open buffer.
	ErrBufferNotFound = errors.New("buffer not found")

	// ErrCloseBlocked indicates a close refused because the buffer has
	// unsaved changes and force was not set.
	ErrCloseBlocked = errors.New("buffer has unsaved changes")

	// ErrNoActiveBuffer indicates an operation that needs an active
	// buffer while none is open.
	ErrNoActiveBuffer = errors.New("no active buffer")
)

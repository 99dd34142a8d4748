package buffer

import "errors"

// Errors returned by buffer operations. Failed operations leave the
// buffer completely unchanged: content, version and dirty flag.
var (
	// ErrInvalidPosition indicates an offset outside [0, Len].
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidRange indicates an inverted or out-of-bounds range.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUTF8Boundary indicates an offset inside a multi-byte code point.
	ErrUTF8Boundary = errors.New("offset splits a UTF-8 code point")

	// ErrInvalidUTF8 indicates inserted text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

	// ErrNoPath indicates a save was requested on a buffer with no path.
	ErrNoPath = errors.New("buffer has no file path")
)

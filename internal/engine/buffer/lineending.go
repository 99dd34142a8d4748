package buffer

import "strings"

// LineEnding is the terminator style of a buffer.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the actual terminator characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// DetectLineEnding classifies text by its terminators. Any CRLF
// anywhere makes the whole buffer CRLF, even for mixed files; text
// without terminators defaults to LF.
func DetectLineEnding(s string) LineEnding {
	if strings.Contains(s, "\r\n") {
		return LineEndingCRLF
	}
	return LineEndingLF
}

package rope

import "strings"

// Point is a 0-indexed line and byte column within a rope.
type Point struct {
	Line   int
	Column int
}

// Summary aggregates the measurements kept for every subtree: byte
// length, UTF-16 code unit length, and newline count. Summaries add
// associatively, so a parent's summary is the sum of its children's.
type Summary struct {
	Bytes int
	UTF16 int
	Lines int
}

// Add combines two summaries of adjacent text.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Bytes: s.Bytes + o.Bytes,
		UTF16: s.UTF16 + o.UTF16,
		Lines: s.Lines + o.Lines,
	}
}

// computeSummary measures a chunk of text.
func computeSummary(s string) Summary {
	return Summary{
		Bytes: len(s),
		UTF16: utf16Len(s),
		Lines: countNewlines(s),
	}
}

// utf16Len returns the length of s in UTF-16 code units. Code points
// above the Basic Multilingual Plane take two units.
func utf16Len(s string) int {
	units := 0
	for _, r := range s {
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return units
}

func countNewlines(s string) int {
	return strings.Count(s, "\n")
}

// nthNewline returns the byte index of the n-th newline in s,
// 1-indexed, or -1 when s has fewer than n newlines.
func nthNewline(s string, n int) int {
	base := 0
	for n > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			return -1
		}
		if n == 1 {
			return base + i
		}
		base += i + 1
		s = s[i+1:]
		n--
	}
	return -1
}

// isBoundaryByte reports whether b starts a UTF-8 code point. UTF-8
// continuation bytes all match 10xxxxxx.
func isBoundaryByte(b byte) bool {
	return b&0xC0 != 0x80
}

// runeStart returns the largest boundary offset not after i.
func runeStart(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !isBoundaryByte(s[i]) {
		i--
	}
	return i
}

package source

import (
	"path/filepath"
	"slices"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the (possibly new) slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Fast path: no \r at all.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex records the byte offset of every \n in content.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// posAt converts a byte offset into a Pos using the newline index.
// The offset may equal the content length (end-of-file position).
func posAt(lineIdx []uint32, off uint32) Pos {
	if len(lineIdx) == 0 {
		return Pos{Offset: off, Row: 0, Col: off}
	}

	// Binary search: greatest lineIdx[i] < off. An offset sitting exactly
	// on a \n belongs to the line that newline terminates.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	row := hi + 1 // number of newlines strictly before off

	var lineStart uint32
	if row > 0 {
		lineStart = lineIdx[row-1] + 1
	}

	return Pos{Offset: off, Row: uint32(row), Col: off - lineStart}
}

func normalizePath(p string) string {
	// One canonical form for cross-platform comparisons.
	return filepath.ToSlash(filepath.Clean(p))
}

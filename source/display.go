package source

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Display-only column derivations. Pos.Col is a byte offset and stays a
// byte offset everywhere in this module; the helpers below exist solely
// for presentation (editor gutters, terminal carets) and their results
// must never be passed back into an API that takes a byte column.

// RuneCol returns the 0-indexed character column for a byte column in
// the given line content.
func RuneCol(line string, byteCol uint32) uint32 {
	if int(byteCol) > len(line) {
		byteCol = uint32(len(line))
	}
	return uint32(utf8.RuneCountInString(line[:byteCol]))
}

// DisplayCol returns the 0-indexed terminal cell column for a byte
// column in the given line content, accounting for wide runes.
func DisplayCol(line string, byteCol uint32) uint32 {
	if int(byteCol) > len(line) {
		byteCol = uint32(len(line))
	}
	return uint32(runewidth.StringWidth(line[:byteCol]))
}

package source

import (
	"testing"
)

func TestRuneCol(t *testing.T) {
	// One 3-byte character followed by ASCII.
	line := "世ok"

	if got := RuneCol(line, 0); got != 0 {
		t.Errorf("RuneCol at 0 = %d, want 0", got)
	}
	if got := RuneCol(line, 3); got != 1 {
		t.Errorf("RuneCol at byte 3 = %d, want 1", got)
	}
	if got := RuneCol(line, 4); got != 2 {
		t.Errorf("RuneCol at byte 4 = %d, want 2", got)
	}
	// Past end clamps to line length.
	if got := RuneCol(line, 100); got != 3 {
		t.Errorf("RuneCol past end = %d, want 3", got)
	}
}

func TestDisplayCol(t *testing.T) {
	// U+4E16 occupies two terminal cells.
	line := "世ok"

	if got := DisplayCol(line, 3); got != 2 {
		t.Errorf("DisplayCol at byte 3 = %d, want 2", got)
	}
	if got := DisplayCol(line, 5); got != 4 {
		t.Errorf("DisplayCol at byte 5 = %d, want 4", got)
	}
}

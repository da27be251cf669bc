package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestRegisterSequentialIDs(t *testing.T) {
	reg := NewRegistry()

	id1 := reg.Register("a.md", []byte("first"))
	id2 := reg.Register("b.md", []byte("second"))
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected sequential IDs 0, 1; got %d, %d", id1, id2)
	}

	f1, ok := reg.Lookup(id1)
	if !ok {
		t.Fatal("expected first file to be found")
	}
	if string(f1.Content) != "first" {
		t.Errorf("expected content %q, got %q", "first", f1.Content)
	}

	// Re-registering the same path yields a fresh ID; the old entry
	// stays reachable.
	id3 := reg.Register("a.md", []byte("updated"))
	if id3 != 2 {
		t.Fatalf("expected new ID 2 for re-registered path, got %d", id3)
	}
	latest, ok := reg.LookupPath("a.md")
	if !ok || latest != id3 {
		t.Errorf("expected LookupPath to return latest ID %d, got %d (ok=%v)", id3, latest, ok)
	}
	f1again, ok := reg.Lookup(id1)
	if !ok || string(f1again.Content) != "first" {
		t.Error("expected old entry to remain unchanged")
	}
}

func TestLookupUnknownID(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Lookup(42); ok {
		t.Error("expected lookup of unregistered ID to fail")
	}
}

func TestRegisterWithoutContent(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("meta-only.md", nil)

	f, ok := reg.Lookup(id)
	if !ok {
		t.Fatal("expected metadata-only file to be found")
	}
	if f.HasContent() {
		t.Error("expected HasContent to be false")
	}
	if _, ok := reg.PosAt(id, 0); ok {
		t.Error("expected PosAt to fail without retained content")
	}
}

func TestPosAtBounds(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("t.md", []byte("abc"))

	if pos, ok := reg.PosAt(id, 3); !ok || pos.Offset != 3 {
		t.Error("expected end-of-file offset to be valid")
	}
	if _, ok := reg.PosAt(id, 4); ok {
		t.Error("expected out-of-bounds offset to fail")
	}
}

func TestPosAtScenario(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("hello.md", []byte("# Hello\nWorld"))

	// 'W' is the first byte of the second line.
	pos, ok := reg.PosAt(id, 8)
	if !ok {
		t.Fatal("expected offset 8 to resolve")
	}
	if pos.Row != 1 || pos.Col != 0 {
		t.Errorf("expected row 1 col 0, got row %d col %d", pos.Row, pos.Col)
	}
}

func TestLine(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("t.md", []byte("first\nsecond\nthird"))

	cases := []struct {
		row  uint32
		want string
		ok   bool
	}{
		{0, "first", true},
		{1, "second", true},
		{2, "third", true},
		{3, "", false},
	}
	for _, tc := range cases {
		got, ok := reg.Line(id, tc.row)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Line(%d) = %q, %v; want %q, %v", tc.row, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "doc.md")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("line one\r\nline two\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	reg := NewRegistry()
	id, err := reg.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	f, _ := reg.Lookup(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if string(f.Content) != "line one\nline two\n" {
		t.Errorf("unexpected normalized content: %q", f.Content)
	}

	// Offsets refer to the normalized content.
	pos, ok := reg.PosAt(id, 9)
	if !ok || pos.Row != 1 || pos.Col != 0 {
		t.Errorf("expected row 1 col 0 at offset 9, got %+v (ok=%v)", pos, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Load(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

// Registration from several goroutines is allowed as long as the caller
// serializes the writes; reads afterwards need no synchronization.
func TestConcurrentRegistrationWithExternalLock(t *testing.T) {
	reg := NewRegistry()
	var mu sync.Mutex
	var g errgroup.Group

	const workers = 8
	const perWorker = 50
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				mu.Lock()
				reg.RegisterVirtual("virt.md", []byte("content"))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if reg.Len() != workers*perWorker {
		t.Fatalf("expected %d files, got %d", workers*perWorker, reg.Len())
	}
	for id := 0; id < reg.Len(); id++ {
		f, ok := reg.Lookup(FileID(id))
		if !ok || string(f.Content) != "content" {
			t.Fatalf("file %d not readable after concurrent registration", id)
		}
		if f.Flags&FileVirtual == 0 {
			t.Fatalf("file %d missing FileVirtual flag", id)
		}
	}
}

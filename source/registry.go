package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// Registry holds every original file seen during one build/editing
// session and hands out stable FileIDs for them. It only ever grows;
// IDs are assigned sequentially and never reused.
type Registry struct {
	files []File
	index map[string]FileID // normalized path -> latest id
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Register stores a file and returns its new FileID. Content may be nil
// for metadata-only entries; when present it is retained for row/column
// computation and context snippets. Registering the same path twice
// produces a second, independent entry.
func (reg *Registry) Register(path string, content []byte) FileID {
	return reg.add(path, content, 0)
}

// RegisterVirtual registers an in-memory file (test, stdin, generated).
func (reg *Registry) RegisterVirtual(name string, content []byte) FileID {
	return reg.add(name, content, FileVirtual)
}

// Load reads a file from disk, strips a UTF-8 BOM, normalizes CRLF, and
// registers the result. The retained (normalized) bytes are the canonical
// text that all offsets for this file refer to.
func (reg *Registry) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return reg.add(path, content, flags), nil
}

func (reg *Registry) add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(reg.files))
	if err != nil {
		panic(fmt.Errorf("registry size overflow: %w", err))
	}
	id := FileID(lenFiles)

	f := File{
		ID:    id,
		Path:  normalizePath(path),
		Flags: flags,
	}
	if content != nil {
		f.Content = content
		f.LineIdx = buildLineIndex(content)
		f.Hash = sha256.Sum256(content)
	}

	reg.files = append(reg.files, f)
	reg.index[f.Path] = id
	return id
}

// Lookup returns the file metadata for the given ID.
func (reg *Registry) Lookup(id FileID) (*File, bool) {
	if int(id) >= len(reg.files) {
		return nil, false
	}
	return &reg.files[id], true
}

// LookupPath returns the most recently registered ID for a path.
func (reg *Registry) LookupPath(path string) (FileID, bool) {
	id, ok := reg.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of registered files.
func (reg *Registry) Len() int {
	return len(reg.files)
}

// PosAt converts an absolute byte offset in the given file into a Pos.
// It reports false if the file is unknown, has no retained content, or
// the offset lies past the end of the content.
func (reg *Registry) PosAt(id FileID, offset uint32) (Pos, bool) {
	f, ok := reg.Lookup(id)
	if !ok || !f.HasContent() {
		return Pos{}, false
	}
	length, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if offset > length {
		return Pos{}, false
	}
	return posAt(f.LineIdx, offset), true
}

// Line returns the content of the given 0-indexed row without its
// trailing newline. Used by diagnostic renderers for context snippets.
func (reg *Registry) Line(id FileID, row uint32) (string, bool) {
	f, ok := reg.Lookup(id)
	if !ok || !f.HasContent() {
		return "", false
	}

	lenLines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	if row > lenLines {
		return "", false
	}

	var start uint32
	if row > 0 {
		start = f.LineIdx[row-1] + 1
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if row < lenLines {
		end = f.LineIdx[row]
	}
	if start > end {
		return "", false
	}
	return string(f.Content[start:end]), true
}

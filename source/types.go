package source

type (
	// FileID uniquely identifies a registered file within one Registry.
	FileID uint32
	// FileFlags encodes metadata about how a file entered the Registry.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and retained content for a single registered file.
// Content may be nil for metadata-only entries; such files cannot produce
// row/column positions.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// HasContent reports whether the file's text was retained at registration.
func (f *File) HasContent() bool {
	return f.Content != nil
}

package origin

import (
	"fmt"

	"srcmap/source"
)

// LinkKind discriminates how a Record maps onto its source.
type LinkKind uint8

const (
	LinkOriginal LinkKind = iota
	LinkSubstring
	LinkConcat
	LinkTransformed
)

func (k LinkKind) String() string {
	switch k {
	case LinkOriginal:
		return "original"
	case LinkSubstring:
		return "substring"
	case LinkConcat:
		return "concat"
	case LinkTransformed:
		return "transformed"
	default:
		return fmt.Sprintf("LinkKind(%d)", uint8(k))
	}
}

// Record describes one span of text and how it maps back to its source.
// Which payload fields are meaningful depends on Kind:
//
//	LinkOriginal:    File
//	LinkSubstring:   Parent, Offset
//	LinkConcat:      Pieces
//	LinkTransformed: Parent, Segments
//
// Records are immutable after construction and may be freely shared.
type Record struct {
	// Range of this record's own text. Absolute file coordinates for
	// LinkOriginal, [0, length) otherwise.
	Range source.Range
	Kind  LinkKind

	File     source.FileID
	Parent   *Record
	Offset   uint32
	Pieces   []Piece
	Segments []Segment
}

// Piece is one component of a concatenation. Offset is where the piece
// starts in the concatenated text; pieces are contiguous and ordered.
type Piece struct {
	Rec    *Record
	Offset uint32
	Length uint32
}

// Segment maps [ToStart, ToEnd) of a transformed record's text onto
// [FromStart, FromEnd) of its parent's text. Segments are sorted and
// non-overlapping in to-space; gaps between them are regions with no
// known source (insertions by the external process).
type Segment struct {
	FromStart uint32
	FromEnd   uint32
	ToStart   uint32
	ToEnd     uint32
}

// Len returns the length of the record's own text in bytes.
func (r *Record) Len() uint32 {
	return r.Range.Len()
}

func (r *Record) String() string {
	return fmt.Sprintf("%s[%s]", r.Kind, r.Range)
}

package origin

import (
	"errors"
	"fmt"

	"srcmap/source"
)

// Construction errors. These indicate a bug in the calling collaborator,
// not bad user input, so builders fail loudly instead of clamping.
var (
	ErrBounds      = errors.New("bounds out of range")
	ErrNilRecord   = errors.New("record is nil")
	ErrBadSegments = errors.New("segments not sorted or overlapping")
)

// Leaf wraps an absolute range in a registered file as an original record.
func Leaf(file source.FileID, rng source.Range) *Record {
	return &Record{
		Range: rng,
		Kind:  LinkOriginal,
		File:  file,
	}
}

// LeafAll covers an entire registered file. It reports false if the file
// is unknown or was registered without content.
func LeafAll(reg *source.Registry, file source.FileID) (*Record, bool) {
	f, ok := reg.Lookup(file)
	if !ok || !f.HasContent() {
		return nil, false
	}
	end, ok := reg.PosAt(file, uint32(len(f.Content)))
	if !ok {
		return nil, false
	}
	return Leaf(file, source.Range{End: end}), true
}

// Substring extracts [start, end) of parent as a new record. Bounds must
// satisfy 0 <= start <= end <= parent length.
func Substring(parent *Record, start, end uint32) (*Record, error) {
	if parent == nil {
		return nil, fmt.Errorf("substring: parent: %w", ErrNilRecord)
	}
	if start > end || end > parent.Len() {
		return nil, fmt.Errorf("substring [%d:%d) of length %d: %w",
			start, end, parent.Len(), ErrBounds)
	}
	return &Record{
		Range:  source.RangeFromOffsets(0, end-start),
		Kind:   LinkSubstring,
		Parent: parent,
		Offset: start,
	}, nil
}

// ConcatPiece names one input to Concat: a record and the length its
// text contributes to the joined buffer.
type ConcatPiece struct {
	Rec    *Record
	Length uint32
}

// Concat joins the given pieces in order into one record. Offsets within
// the concatenation are computed from the running sum of lengths.
func Concat(pieces []ConcatPiece) (*Record, error) {
	out := make([]Piece, len(pieces))
	var total uint32
	for i, p := range pieces {
		if p.Rec == nil {
			return nil, fmt.Errorf("concat piece %d: %w", i, ErrNilRecord)
		}
		out[i] = Piece{
			Rec:    p.Rec,
			Offset: total,
			Length: p.Length,
		}
		total += p.Length
	}
	return &Record{
		Range:  source.RangeFromOffsets(0, total),
		Kind:   LinkConcat,
		Pieces: out,
	}, nil
}

// Transformed wraps parent with a recovered piecewise mapping. Segments
// must be sorted and non-overlapping in to-space, each segment
// non-inverted on both sides, and every from-range inside the parent.
// The record's length is the largest mapped to-offset.
func Transformed(parent *Record, segments []Segment) (*Record, error) {
	if parent == nil {
		return nil, fmt.Errorf("transformed: parent: %w", ErrNilRecord)
	}
	var total uint32
	for i, seg := range segments {
		if seg.ToStart > seg.ToEnd || seg.FromStart > seg.FromEnd {
			return nil, fmt.Errorf("transformed segment %d inverted: %w", i, ErrBadSegments)
		}
		if seg.FromEnd > parent.Len() {
			return nil, fmt.Errorf("transformed segment %d [%d:%d) exceeds parent length %d: %w",
				i, seg.FromStart, seg.FromEnd, parent.Len(), ErrBounds)
		}
		if i > 0 && seg.ToStart < segments[i-1].ToEnd {
			return nil, fmt.Errorf("transformed segment %d overlaps previous: %w", i, ErrBadSegments)
		}
		if seg.ToEnd > total {
			total = seg.ToEnd
		}
	}
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return &Record{
		Range:    source.RangeFromOffsets(0, total),
		Kind:     LinkTransformed,
		Parent:   parent,
		Segments: segs,
	}, nil
}

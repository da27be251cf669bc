package origin

import (
	"sort"

	"srcmap/source"
)

// Loc is the result of resolving a local offset: an absolute position
// inside one registered original file.
type Loc struct {
	File source.FileID
	Pos  source.Pos
}

// Resolve maps a byte offset in rec's own text back to an absolute file
// position by walking the link chain down to an original leaf.
//
// With closest=false a miss (an offset in an unmapped Transformed gap,
// or a leaf whose file content was not retained) returns ok=false; this
// is an expected outcome, not an error. With closest=true a Transformed
// gap clamps to the nearest mapped segment boundary, so any offset that
// reaches a content-backed leaf produces a position.
//
// An offset exactly on a piece or segment boundary belongs to the piece
// or segment that starts there, matching the half-open range convention.
func Resolve(rec *Record, offset uint32, reg *source.Registry, closest bool) (Loc, bool) {
	if rec == nil {
		return Loc{}, false
	}
	switch rec.Kind {
	case LinkOriginal:
		pos, ok := reg.PosAt(rec.File, rec.Range.Start.Offset+offset)
		if !ok {
			return Loc{}, false
		}
		return Loc{File: rec.File, Pos: pos}, true

	case LinkSubstring:
		return Resolve(rec.Parent, offset+rec.Offset, reg, closest)

	case LinkConcat:
		i, ok := findPiece(rec.Pieces, offset)
		if !ok {
			return Loc{}, false
		}
		p := rec.Pieces[i]
		return Resolve(p.Rec, offset-p.Offset, reg, closest)

	case LinkTransformed:
		parentOff, ok := mapThroughSegments(rec.Segments, offset, closest)
		if !ok {
			return Loc{}, false
		}
		return Resolve(rec.Parent, parentOff, reg, closest)

	default:
		return Loc{}, false
	}
}

// ResolveRange resolves both ends of a half-open local range. Both ends
// must resolve for the call to succeed.
func ResolveRange(rec *Record, start, end uint32, reg *source.Registry, closest bool) (Loc, Loc, bool) {
	s, ok := Resolve(rec, start, reg, closest)
	if !ok {
		return Loc{}, Loc{}, false
	}
	e, ok := Resolve(rec, end, reg, closest)
	if !ok {
		return Loc{}, Loc{}, false
	}
	return s, e, true
}

// findPiece locates the concat piece covering the offset. Pieces are
// contiguous and ordered, so binary search on the start offsets works.
func findPiece(pieces []Piece, offset uint32) (int, bool) {
	n := len(pieces)
	if n == 0 {
		return 0, false
	}
	// First piece starting after offset; the covering candidate is the
	// one before it.
	i := sort.Search(n, func(k int) bool {
		return pieces[k].Offset > offset
	})
	if i == 0 {
		return 0, false
	}
	p := pieces[i-1]
	if offset >= p.Offset+p.Length {
		return 0, false
	}
	return i - 1, true
}

// mapThroughSegments translates a to-space offset into from-space. When
// no segment covers the offset and closest is set, the offset clamps to
// the nearest segment boundary; otherwise the miss is reported.
func mapThroughSegments(segments []Segment, offset uint32, closest bool) (uint32, bool) {
	n := len(segments)
	if n == 0 {
		return 0, false
	}
	i := sort.Search(n, func(k int) bool {
		return segments[k].ToStart > offset
	})
	if i > 0 {
		seg := segments[i-1]
		if offset < seg.ToEnd {
			return interpolate(seg, offset), true
		}
	}
	if !closest {
		return 0, false
	}
	// Clamp to whichever mapped boundary is nearer: the end of the
	// previous segment or the start of the next one.
	if i == 0 {
		return segments[0].FromStart, true
	}
	prev := segments[i-1]
	if i == n {
		return prev.FromEnd, true
	}
	next := segments[i]
	if offset-prev.ToEnd <= next.ToStart-offset {
		return prev.FromEnd, true
	}
	return next.FromStart, true
}

// interpolate maps an offset inside a segment's to-range linearly onto
// its from-range. Ranges recovered by diff have equal lengths on both
// sides, making this a plain shift; the general form also covers
// hand-built segments with unequal lengths.
func interpolate(seg Segment, offset uint32) uint32 {
	toLen := seg.ToEnd - seg.ToStart
	fromLen := seg.FromEnd - seg.FromStart
	if toLen == 0 || fromLen == toLen {
		return seg.FromStart + (offset - seg.ToStart)
	}
	rel := uint64(offset-seg.ToStart) * uint64(fromLen) / uint64(toLen)
	return seg.FromStart + uint32(rel)
}

package origin

import (
	"errors"
	"fmt"

	"srcmap/source"
)

// Pool is a provenance DAG flattened into an index-addressed sequence.
// Each distinct record is written exactly once; links between records
// become pool positions (the entry's index). Nesting the owned records
// directly would duplicate a shared subtree at every reference site,
// which grows superlinearly on real documents where siblings share
// parent chains.
type Pool struct {
	Entries []Entry
	// Roots holds the pool positions of the records Flatten was given,
	// in argument order.
	Roots []uint32
}

// Entry is one flattened record. Parent and Pieces[i].Rec reference
// other entries by pool position; in a well-formed pool every reference
// is strictly smaller than the referencing entry's own index, which
// rules out cycles and forward dangling references in one check.
type Entry struct {
	Range    source.Range
	Kind     LinkKind
	File     source.FileID
	Parent   uint32
	Offset   uint32
	Pieces   []EntryPiece
	Segments []Segment
}

// EntryPiece mirrors Piece with the record replaced by a pool position.
type EntryPiece struct {
	Rec    uint32
	Offset uint32
	Length uint32
}

// ErrMalformedPool is wrapped by every pool validation failure.
var ErrMalformedPool = errors.New("malformed pool")

// Flatten writes the given records and everything they reference into a
// pool. Positions are assigned in first-encounter order during a
// depth-first traversal, parents before the records that reference
// them; records shared between roots (or within one tree) are written
// once and referenced by position thereafter.
func Flatten(roots ...*Record) *Pool {
	p := &Pool{
		Entries: make([]Entry, 0),
		Roots:   make([]uint32, 0, len(roots)),
	}
	seen := make(map[*Record]uint32)
	for _, r := range roots {
		p.Roots = append(p.Roots, p.intern(r, seen))
	}
	return p
}

func (p *Pool) intern(rec *Record, seen map[*Record]uint32) uint32 {
	if id, ok := seen[rec]; ok {
		return id
	}

	e := Entry{
		Range: rec.Range,
		Kind:  rec.Kind,
	}
	switch rec.Kind {
	case LinkOriginal:
		e.File = rec.File
	case LinkSubstring:
		e.Parent = p.intern(rec.Parent, seen)
		e.Offset = rec.Offset
	case LinkConcat:
		e.Pieces = make([]EntryPiece, len(rec.Pieces))
		for i, piece := range rec.Pieces {
			e.Pieces[i] = EntryPiece{
				Rec:    p.intern(piece.Rec, seen),
				Offset: piece.Offset,
				Length: piece.Length,
			}
		}
	case LinkTransformed:
		e.Parent = p.intern(rec.Parent, seen)
		e.Segments = rec.Segments
	}

	// Position is assigned after the recursion so that everything this
	// entry references already sits at a smaller index.
	id := uint32(len(p.Entries))
	p.Entries = append(p.Entries, e)
	seen[rec] = id
	return id
}

// Validate checks every entry before any resolution is attempted: known
// kinds, references in range and strictly below the referencing entry,
// contiguous concat pieces, and ordered transformed segments. A pool
// read from disk or the wire must pass here before use; failures are
// rejected outright rather than discovered mid-resolution.
func (p *Pool) Validate() error {
	for i, e := range p.Entries {
		switch e.Kind {
		case LinkOriginal:
			// Nothing to check: file IDs are validated against a
			// Registry at resolution time.
		case LinkSubstring, LinkTransformed:
			if e.Parent >= uint32(i) {
				return fmt.Errorf("entry %d: parent reference %d not below entry: %w",
					i, e.Parent, ErrMalformedPool)
			}
			if e.Kind == LinkTransformed {
				if err := validateSegments(e.Segments); err != nil {
					return fmt.Errorf("entry %d: %w", i, err)
				}
			}
		case LinkConcat:
			var next uint32
			for k, piece := range e.Pieces {
				if piece.Rec >= uint32(i) {
					return fmt.Errorf("entry %d: piece %d reference %d not below entry: %w",
						i, k, piece.Rec, ErrMalformedPool)
				}
				if piece.Offset != next {
					return fmt.Errorf("entry %d: piece %d offset %d, want %d: %w",
						i, k, piece.Offset, next, ErrMalformedPool)
				}
				next += piece.Length
			}
		default:
			return fmt.Errorf("entry %d: unknown kind %d: %w", i, e.Kind, ErrMalformedPool)
		}
	}
	for _, root := range p.Roots {
		if int(root) >= len(p.Entries) {
			return fmt.Errorf("root reference %d out of range: %w", root, ErrMalformedPool)
		}
	}
	return nil
}

func validateSegments(segments []Segment) error {
	for i, seg := range segments {
		if seg.ToStart > seg.ToEnd || seg.FromStart > seg.FromEnd {
			return fmt.Errorf("segment %d inverted: %w", i, ErrMalformedPool)
		}
		if i > 0 && seg.ToStart < segments[i-1].ToEnd {
			return fmt.Errorf("segment %d overlaps previous: %w", i, ErrMalformedPool)
		}
	}
	return nil
}

// Records validates the pool and materializes every entry, index
// aligned with Entries. Entries shared through multiple references come
// back as one shared *Record, so re-flattening reproduces the pool.
func (p *Pool) Records() ([]*Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	recs := make([]*Record, len(p.Entries))
	for i, e := range p.Entries {
		rec := &Record{
			Range: e.Range,
			Kind:  e.Kind,
		}
		switch e.Kind {
		case LinkOriginal:
			rec.File = e.File
		case LinkSubstring:
			rec.Parent = recs[e.Parent]
			rec.Offset = e.Offset
		case LinkConcat:
			rec.Pieces = make([]Piece, len(e.Pieces))
			for k, piece := range e.Pieces {
				rec.Pieces[k] = Piece{
					Rec:    recs[piece.Rec],
					Offset: piece.Offset,
					Length: piece.Length,
				}
			}
		case LinkTransformed:
			rec.Parent = recs[e.Parent]
			rec.Segments = e.Segments
		}
		recs[i] = rec
	}
	return recs, nil
}

// RootRecords materializes the pool and returns the records Flatten was
// originally given, in the same order.
func (p *Pool) RootRecords() ([]*Record, error) {
	recs, err := p.Records()
	if err != nil {
		return nil, err
	}
	out := make([]*Record, len(p.Roots))
	for i, root := range p.Roots {
		out[i] = recs[root]
	}
	return out, nil
}

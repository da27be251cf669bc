package source

import (
	"fmt"
)

// Pos is an absolute position in some text: a byte offset plus the
// 0-indexed row and the byte column from the line start.
type Pos struct {
	Offset uint32
	Row    uint32
	Col    uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d@%d", p.Row, p.Col, p.Offset)
}

// Before reports whether p precedes other in offset order.
func (p Pos) Before(other Pos) bool {
	return p.Offset < other.Offset
}

// Range is a half-open span of positions: Start inclusive, End exclusive.
// The positions are in the local coordinate space of whatever owns the
// range; they are absolute file coordinates only on an original leaf.
type Range struct {
	Start Pos
	End   Pos
}

// RangeFromOffsets builds a Range carrying only offsets; rows and columns
// stay zero until resolution fills them in.
func RangeFromOffsets(start, end uint32) Range {
	return Range{
		Start: Pos{Offset: start},
		End:   Pos{Offset: end},
	}
}

func (r Range) Empty() bool {
	return r.Start.Offset == r.End.Offset
}

func (r Range) Len() uint32 {
	return r.End.Offset - r.Start.Offset
}

// Contains reports whether the byte offset falls inside the half-open range.
func (r Range) Contains(offset uint32) bool {
	return offset >= r.Start.Offset && offset < r.End.Offset
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start.Offset, r.End.Offset)
}

// Package origin tracks where a span of text came from across an
// unbounded chain of slicing, joining, and lossy transformations, and
// resolves any local offset back to an absolute position in a registered
// original file.
//
// # Data model
//
// Record is the central entity. Each record describes one span of
// "current" text and links it to its source through one of four kinds:
//
//   - LinkOriginal — a leaf; the record's range holds absolute byte
//     positions inside a source.Registry file.
//   - LinkSubstring — local offset o corresponds to o+Offset in Parent.
//   - LinkConcat — ordered contiguous pieces covering [0, total).
//   - LinkTransformed — a recovered, possibly partial piecewise mapping
//     onto Parent, produced by RecoverByDiff for text that passed
//     through an uncontrolled external process.
//
// Except on a leaf, a record's range is always local: [0, length) of the
// record's own text. Builders uphold this; Resolve depends on it.
//
// Records are immutable once built. Builders never mutate their inputs;
// a transformation always allocates a new record referencing the old
// ones, so a record may be shared by any number of derived records, and
// trees built in unrelated scopes (a project configuration and a
// document configuration, say) can be combined freely.
//
// The link graph must stay acyclic. Builders guarantee this structurally
// since they only ever reference already-built records; the pool decoder
// additionally enforces it on untrusted input (see pool.go).
//
// # Resolution
//
// Resolve walks the link chain down to a leaf, translating the offset at
// every level, then asks the Registry for row/column. A miss (an offset
// falling into an unmapped Transformed gap, or a file registered without
// content) is a normal outcome reported as ok=false, not an error;
// callers that must always display something pass closest=true.
package origin

// Package source defines the position value types and the file registry
// that every provenance record ultimately resolves into.
//
// # Coordinate convention
//
// All offsets in this package are byte offsets into the registered file
// content, and Pos.Col is the byte offset from the start of its line.
// Rows and columns are 0-indexed. This single unit is used end-to-end;
// any character-based or display-width column is a derived value (see
// DisplayCol and RuneCol) computed on demand for presentation and never
// accepted back by an API in this module.
//
// # Registry
//
// A Registry is append-only: Register assigns sequential FileIDs that
// are never reused and remain valid for the lifetime of that Registry.
// IDs are meaningless across Registry instances and must not be mixed
// between them. Concurrent registration requires external serialization
// (a single writer or a caller-held lock); once registration is done,
// reads need no synchronization.
package source

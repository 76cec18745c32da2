// Package relation defines the storage-agnostic access layer for relations
// produced by a compiled Datalog program.
//
// The package deliberately owns no storage. A Relation is a capability set
// that concrete engines (see internal/ram, internal/sqlstore,
// internal/factstore) implement; callers drive any of them through the same
// interface. Rows are exchanged as Tuples: fixed-width buffers of domain
// values with a cursor that enforces sequential, type-checked access. Scans
// are expressed as Iterator pairs bounding a begin/end range over a hidden,
// engine-specific Cursor.
//
// Error model: contract violations (cursor overrun, attribute kind mismatch,
// arity mismatch) panic at the point of violation. Lookup-style absence is
// never a panic; it is reported with nil or a false ok value.
//
// Nothing in this package locks. Concurrent mutation of a relation while
// another goroutine reads it is the concrete engine's problem to solve, or
// the caller's to avoid.
package relation

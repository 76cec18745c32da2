package relation

import "strings"

// SymbolTable is the interning service a relation uses for its symbol
// columns. Implementations map each distinct symbol to a stable id and back.
// The compiled program owns the table's lifetime; this layer assumes the
// table is safe for concurrent use.
type SymbolTable interface {
	// Lookup returns the id for symbol, interning it first if it is new.
	Lookup(symbol string) Value
	// Resolve returns the symbol for a previously interned id. Resolving an
	// id that was never handed out is a contract violation.
	Resolve(id Value) string
}

// Relation is the uniform accessor for one named relation. Concrete storage
// engines implement it; everything above them (programs, tooling, tests)
// sees only this contract.
//
// Metadata (Name, Arity, AttrType, AttrName, SymbolTable) is fixed at
// construction. AttrType returns "<kind>:<type name>" strings, e.g. "s:Node".
//
// Insert copies the tuple's values; whether duplicates are kept or rejected
// is the engine's choice. Begin/End bound one full scan in an order that is
// engine-defined but stable for the scan's lifetime. Purge removes every row
// and leaves the relation usable.
type Relation interface {
	Insert(t *Tuple)
	Contains(t *Tuple) bool
	Begin() Iterator
	End() Iterator
	Size() int
	Name() string
	Arity() int
	AttrType(col int) string
	AttrName(col int) string
	SymbolTable() SymbolTable
	Purge()
}

// Signature derives the relation's signature string: the attribute type of
// every column, comma-joined inside angle brackets. A 2-ary relation of two
// symbol columns typed Node renders as "<s:Node,s:Node>". Arity 0 renders
// as "<>". The signature is derived on every call, never stored.
func Signature(r Relation) string {
	arity := r.Arity()
	if arity == 0 {
		return "<>"
	}
	var b strings.Builder
	b.WriteByte('<')
	for i := 0; i < arity; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.AttrType(i))
	}
	b.WriteByte('>')
	return b.String()
}

// Package ram provides the default in-memory relation engine: a
// set-semantics store that keeps rows in insertion order. It is the engine
// compiled programs reach for when nothing demands durability.
package ram

import (
	"strconv"
	"strings"

	"github.com/detljh/souffle/internal/relation"
)

// cursorKind tags cursors produced by this engine. Each engine package uses
// its own tag so iterators over different engines never compare equal.
const cursorKind uint32 = 1

// Relation is an in-memory relation. Duplicate inserts are dropped; scans
// visit rows in first-insert order. Not safe for concurrent mutation.
type Relation struct {
	name   string
	attrs  []relation.Attribute
	symtab relation.SymbolTable
	rows   [][]relation.Value
	index  map[string]struct{}
}

var _ relation.Relation = (*Relation)(nil)

// New creates an empty relation with the given attributes, backed by st for
// its symbol columns.
func New(name string, st relation.SymbolTable, attrs ...relation.Attribute) *Relation {
	return &Relation{
		name:   name,
		attrs:  attrs,
		symtab: st,
		index:  make(map[string]struct{}),
	}
}

// Insert stores a copy of the tuple's values. Re-inserting an existing row
// is a no-op.
func (r *Relation) Insert(t *relation.Tuple) {
	key := encode(t.Values())
	if _, ok := r.index[key]; ok {
		return
	}
	row := make([]relation.Value, len(t.Values()))
	copy(row, t.Values())
	r.rows = append(r.rows, row)
	r.index[key] = struct{}{}
}

// Contains reports whether an exact-match row is present.
func (r *Relation) Contains(t *relation.Tuple) bool {
	_, ok := r.index[encode(t.Values())]
	return ok
}

// Begin returns an iterator at the first row in insertion order.
func (r *Relation) Begin() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r, rows: r.rows})
}

// End returns the iterator bounding the scan started by Begin.
func (r *Relation) End() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r, rows: r.rows, i: len(r.rows)})
}

// Size returns the row count.
func (r *Relation) Size() int {
	return len(r.rows)
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Arity returns the column count.
func (r *Relation) Arity() int {
	return len(r.attrs)
}

// AttrType returns the attribute type string of column col, e.g. "s:Node".
func (r *Relation) AttrType(col int) string {
	return r.attrs[col].Type()
}

// AttrName returns the attribute name of column col.
func (r *Relation) AttrName(col int) string {
	return r.attrs[col].Name
}

// SymbolTable returns the table backing the relation's symbol columns.
func (r *Relation) SymbolTable() relation.SymbolTable {
	return r.symtab
}

// Purge drops every row. Metadata is untouched and the relation stays
// usable.
func (r *Relation) Purge() {
	r.rows = nil
	r.index = make(map[string]struct{})
}

// encode builds the dedup key for a row. NUL-joined decimal is unambiguous
// because domain values never render to strings containing NUL.
func encode(vals []relation.Value) string {
	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(0)
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}

// cursor scans the rows slice captured at Begin. The slice header pins the
// scan's view, so the order stays stable for the scan's lifetime even while
// later inserts grow the relation.
type cursor struct {
	rel  *Relation
	rows [][]relation.Value
	i    int
}

func (c *cursor) Kind() uint32 {
	return cursorKind
}

func (c *cursor) Advance() {
	c.i++
}

func (c *cursor) Tuple() *relation.Tuple {
	if c.i >= len(c.rows) {
		panic("ram: dereferencing an iterator at end of " + c.rel.name)
	}
	return relation.NewTupleOf(c.rel, c.rows[c.i]...)
}

func (c *cursor) Equal(o relation.Cursor) bool {
	oc, ok := o.(*cursor)
	if !ok || c.rel != oc.rel {
		return false
	}
	if c.atEnd() && oc.atEnd() {
		return true
	}
	// Cursors over snapshots of different lengths can share an index while
	// only one of them is exhausted.
	if c.atEnd() != oc.atEnd() {
		return false
	}
	return c.i == oc.i
}

func (c *cursor) Clone() relation.Cursor {
	clone := *c
	return &clone
}

func (c *cursor) atEnd() bool {
	return c.i >= len(c.rows)
}

// Package factstore provides a relation engine backed by a Mangle fact
// store (github.com/google/mangle). Rows become numeric atoms under a
// predicate named after the relation, which lets a compiled program hand
// its fact sets straight to a Mangle evaluation without re-marshalling.
//
// All columns are stored as number constants; symbol columns store the
// symbol-table id like every other engine.
package factstore

import (
	"fmt"
	"sort"

	"github.com/google/mangle/ast"
	mfs "github.com/google/mangle/factstore"

	"github.com/detljh/souffle/internal/relation"
)

const cursorKind uint32 = 3

// Relation is a relation stored as atoms in a Mangle fact store. The fact
// store deduplicates, so inserts have set semantics. Scans snapshot and
// sort their rows: the store iterates in map order, and a scan needs an
// order that holds still for its lifetime.
type Relation struct {
	name   string
	pred   ast.PredicateSym
	attrs  []relation.Attribute
	symtab relation.SymbolTable
	store  mfs.FactStoreWithRemove
}

var _ relation.Relation = (*Relation)(nil)

// New creates a relation over its own private fact store.
func New(name string, symtab relation.SymbolTable, attrs ...relation.Attribute) *Relation {
	return NewWithStore(mfs.NewSimpleInMemoryStore(), name, symtab, attrs...)
}

// NewWithStore creates a relation over a caller-supplied store, so several
// relations of one program can share the store a Mangle evaluation reads.
func NewWithStore(store mfs.FactStoreWithRemove, name string, symtab relation.SymbolTable, attrs ...relation.Attribute) *Relation {
	return &Relation{
		name:   name,
		pred:   ast.PredicateSym{Symbol: name, Arity: len(attrs)},
		attrs:  attrs,
		symtab: symtab,
		store:  store,
	}
}

// Store exposes the underlying fact store for evaluation code.
func (r *Relation) Store() mfs.FactStore {
	return r.store
}

func (r *Relation) atom(vals []relation.Value) ast.Atom {
	args := make([]ast.BaseTerm, len(vals))
	for i, v := range vals {
		args[i] = ast.Number(int64(v))
	}
	return ast.Atom{Predicate: r.pred, Args: args}
}

// Insert adds the tuple's values as an atom. Duplicates are dropped by the
// store.
func (r *Relation) Insert(t *relation.Tuple) {
	r.store.Add(r.atom(t.Values()))
}

// Contains reports whether an exact-match atom is present.
func (r *Relation) Contains(t *relation.Tuple) bool {
	return r.store.Contains(r.atom(t.Values()))
}

// rows snapshots and sorts every row of the predicate.
func (r *Relation) rows() [][]relation.Value {
	var out [][]relation.Value
	err := r.store.GetFacts(ast.NewQuery(r.pred), func(a ast.Atom) error {
		row := make([]relation.Value, len(a.Args))
		for i, arg := range a.Args {
			c, ok := arg.(ast.Constant)
			if !ok || c.Type != ast.NumberType {
				return fmt.Errorf("predicate %s: non-numeric argument %v", r.name, arg)
			}
			row[i] = relation.Value(c.NumValue)
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("factstore %s: scan: %v", r.name, err))
	}
	sort.Slice(out, func(i, j int) bool {
		return lessRow(out[i], out[j])
	})
	return out
}

func lessRow(a, b []relation.Value) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Begin returns an iterator over a sorted snapshot of the current rows.
func (r *Relation) Begin() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r, rows: r.rows()})
}

// End returns the end iterator for the relation.
func (r *Relation) End() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r})
}

// Size returns the number of rows under the relation's predicate.
func (r *Relation) Size() int {
	n := 0
	_ = r.store.GetFacts(ast.NewQuery(r.pred), func(ast.Atom) error {
		n++
		return nil
	})
	return n
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Arity returns the column count.
func (r *Relation) Arity() int {
	return len(r.attrs)
}

// AttrType returns the attribute type string of column col.
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

// Purge removes every atom under the relation's predicate, leaving other
// predicates in a shared store untouched.
func (r *Relation) Purge() {
	var atoms []ast.Atom
	_ = r.store.GetFacts(ast.NewQuery(r.pred), func(a ast.Atom) error {
		atoms = append(atoms, a)
		return nil
	})
	for _, a := range atoms {
		r.store.Remove(a)
	}
}

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
	if c.atEnd() {
		panic("factstore: dereferencing an iterator at end of " + c.rel.name)
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

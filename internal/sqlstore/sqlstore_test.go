package sqlstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detljh/souffle/internal/relation"
	"github.com/detljh/souffle/internal/sqlstore"
	"github.com/detljh/souffle/internal/symbols"
)

func symAttr(name string) relation.Attribute {
	return relation.Attribute{Name: name, Kind: relation.KindSymbol, TypeName: "Node"}
}

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlstore.Open(filepath.Join(t.TempDir(), "facts.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func newEdge(t *testing.T, s *sqlstore.Store, st *symbols.Table) *sqlstore.Relation {
	t.Helper()
	r, err := s.Relation("edge", st, symAttr("node1"), symAttr("node2"))
	require.NoError(t, err)
	return r
}

func TestInsertContainsPurge(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r := newEdge(t, s, st)

	relation.Insert(r, "a", "b")
	relation.Insert(r, "b", "c")
	relation.Insert(r, "a", "b") // duplicate

	assert.Equal(t, 2, r.Size())
	assert.True(t, relation.Contains(r, "a", "b"))
	assert.False(t, relation.Contains(r, "a", "c"))

	r.Purge()
	assert.Equal(t, 0, r.Size())
	assert.False(t, relation.Contains(r, "a", "b"))

	// Still usable after purge.
	relation.Insert(r, "x", "y")
	assert.Equal(t, 1, r.Size())
}

func TestScanVisitsAllRowsInSortedOrder(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r := newEdge(t, s, st)

	// Ids are assigned in intern order: c=0, d=1, a=2, b=3.
	relation.Insert(r, "c", "d")
	relation.Insert(r, "a", "b")

	var got [][2]string
	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Advance() {
		tup := it.Tuple()
		got = append(got, [2]string{st.Resolve(tup.Get(0)), st.Resolve(tup.Get(1))})
	}
	// Ascending column order over the ids.
	assert.Equal(t, [][2]string{{"c", "d"}, {"a", "b"}}, got)
}

func TestScanSnapshotIsStable(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r := newEdge(t, s, st)
	relation.Insert(r, "a", "b")

	it, end := r.Begin(), r.End()
	relation.Insert(r, "b", "c")

	seen := 0
	for ; !it.Equal(end); it.Advance() {
		seen++
	}
	assert.Equal(t, 1, seen)
	assert.Equal(t, 2, r.Size())
}

func TestIteratorEquality(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r := newEdge(t, s, st)
	relation.Insert(r, "a", "b")

	assert.True(t, r.Begin().Equal(r.Begin()))
	assert.True(t, r.End().Equal(r.End()))
	assert.False(t, r.Begin().Equal(r.End()))

	it := r.Begin()
	it.Advance()
	assert.True(t, it.Equal(r.End()))
	assert.Panics(t, func() { r.End().Tuple() })
}

func TestRelationRejectsUnsafeNames(t *testing.T) {
	s := openStore(t)
	st := symbols.New()

	_, err := s.Relation(`bad"name`, st, symAttr("n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid relation name")

	_, err = s.Relation("", st, symAttr("n"))
	require.Error(t, err)
}

func TestMetadata(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r := newEdge(t, s, st)

	assert.Equal(t, "edge", r.Name())
	assert.Equal(t, 2, r.Arity())
	assert.Equal(t, "<s:Node,s:Node>", relation.Signature(r))
	assert.Equal(t, "node1", r.AttrName(0))
	assert.Same(t, st, r.SymbolTable().(*symbols.Table))
}

func TestNullaryRelation(t *testing.T) {
	s := openStore(t)
	st := symbols.New()
	r, err := s.Relation("flag", st)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Size())
	r.Insert(relation.NewTuple(r))
	r.Insert(relation.NewTuple(r))
	assert.Equal(t, 1, r.Size())
	assert.True(t, r.Contains(relation.NewTuple(r)))
}

func TestReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.db")
	st := symbols.New()

	s, err := sqlstore.Open(path)
	require.NoError(t, err)
	r, err := s.Relation("edge", st, symAttr("node1"), symAttr("node2"))
	require.NoError(t, err)
	relation.Insert(r, "a", "b")
	require.NoError(t, s.Close())

	s2, err := sqlstore.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	r2, err := s2.Relation("edge", st, symAttr("node1"), symAttr("node2"))
	require.NoError(t, err)
	// Same symbol table, same ids, so the row is still addressable.
	assert.Equal(t, 1, r2.Size())
	assert.True(t, relation.Contains(r2, "a", "b"))
}

package factstore_test

import (
	"testing"

	mfs "github.com/google/mangle/factstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detljh/souffle/internal/factstore"
	"github.com/detljh/souffle/internal/relation"
	"github.com/detljh/souffle/internal/symbols"
)

func symAttr(name string) relation.Attribute {
	return relation.Attribute{Name: name, Kind: relation.KindSymbol, TypeName: "Node"}
}

func TestInsertContainsPurge(t *testing.T) {
	st := symbols.New()
	r := factstore.New("edge", st, symAttr("node1"), symAttr("node2"))

	relation.Insert(r, "a", "b")
	relation.Insert(r, "b", "c")
	relation.Insert(r, "a", "b") // deduplicated by the store

	assert.Equal(t, 2, r.Size())
	assert.True(t, relation.Contains(r, "a", "b"))
	assert.False(t, relation.Contains(r, "a", "c"))

	r.Purge()
	assert.Equal(t, 0, r.Size())
	relation.Insert(r, "x", "y")
	assert.Equal(t, 1, r.Size())
}

func TestScanIsSortedAndComplete(t *testing.T) {
	st := symbols.New()
	r := factstore.New("edge", st, symAttr("node1"), symAttr("node2"))

	relation.Insert(r, "c", "d")
	relation.Insert(r, "a", "b")
	relation.Insert(r, "b", "c")

	var got [][2]string
	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Advance() {
		tup := it.Tuple()
		got = append(got, [2]string{st.Resolve(tup.Get(0)), st.Resolve(tup.Get(1))})
	}
	// Ids intern as c=0, d=1, a=2, b=3; rows sort by value.
	assert.Equal(t, [][2]string{{"c", "d"}, {"a", "b"}, {"b", "c"}}, got)
}

func TestIteratorBasics(t *testing.T) {
	st := symbols.New()
	r := factstore.New("edge", st, symAttr("node1"), symAttr("node2"))

	assert.True(t, r.Begin().Equal(r.End()))
	relation.Insert(r, "a", "b")
	assert.False(t, r.Begin().Equal(r.End()))

	it := r.Begin()
	clone := it.Clone()
	it.Advance()
	assert.False(t, it.Equal(clone))
	assert.True(t, it.Equal(r.End()))
	assert.Panics(t, func() { r.End().Tuple() })
}

func TestSharedStoreKeepsPredicatesApart(t *testing.T) {
	st := symbols.New()
	shared := mfs.NewSimpleInMemoryStore()
	edge := factstore.NewWithStore(shared, "edge", st, symAttr("node1"), symAttr("node2"))
	node := factstore.NewWithStore(shared, "node", st, symAttr("n"))

	relation.Insert(edge, "a", "b")
	relation.Insert(node, "a")
	relation.Insert(node, "b")

	require.Equal(t, 1, edge.Size())
	require.Equal(t, 2, node.Size())

	// Purging one relation leaves the other predicate's atoms in place.
	edge.Purge()
	assert.Equal(t, 0, edge.Size())
	assert.Equal(t, 2, node.Size())
}

func TestMetadata(t *testing.T) {
	st := symbols.New()
	r := factstore.New("edge", st, symAttr("node1"), symAttr("node2"))

	assert.Equal(t, "edge", r.Name())
	assert.Equal(t, 2, r.Arity())
	assert.Equal(t, "<s:Node,s:Node>", relation.Signature(r))
	assert.NotNil(t, r.Store())
}

package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detljh/souffle/internal/ram"
	"github.com/detljh/souffle/internal/relation"
	"github.com/detljh/souffle/internal/symbols"
)

func symAttr(name string) relation.Attribute {
	return relation.Attribute{Name: name, Kind: relation.KindSymbol, TypeName: "Node"}
}

func TestSignature(t *testing.T) {
	st := symbols.New()

	tests := []struct {
		name  string
		attrs []relation.Attribute
		want  string
	}{
		{
			name:  "nullary",
			attrs: nil,
			want:  "<>",
		},
		{
			name:  "single symbol",
			attrs: []relation.Attribute{symAttr("n")},
			want:  "<s:Node>",
		},
		{
			name:  "two symbols",
			attrs: []relation.Attribute{symAttr("node1"), symAttr("node2")},
			want:  "<s:Node,s:Node>",
		},
		{
			name: "mixed kinds",
			attrs: []relation.Attribute{
				{Name: "name", Kind: relation.KindSymbol, TypeName: "symbol"},
				{Name: "age", Kind: relation.KindSigned, TypeName: "number"},
				{Name: "id", Kind: relation.KindUnsigned, TypeName: "unsigned"},
				{Name: "score", Kind: relation.KindFloat, TypeName: "float"},
			},
			want: "<s:symbol,i:number,u:unsigned,f:float>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ram.New(tt.name, st, tt.attrs...)
			assert.Equal(t, tt.want, relation.Signature(r))
			assert.Equal(t, len(tt.attrs), r.Arity())
		})
	}
}

func TestTupleRoundTrip(t *testing.T) {
	st := symbols.New()
	r := ram.New("dog", st,
		relation.Attribute{Name: "name", Kind: relation.KindSymbol, TypeName: "symbol"},
		relation.Attribute{Name: "colour", Kind: relation.KindSymbol, TypeName: "symbol"},
		relation.Attribute{Name: "age", Kind: relation.KindSigned, TypeName: "number"},
		relation.Attribute{Name: "legs", Kind: relation.KindUnsigned, TypeName: "unsigned"},
		relation.Attribute{Name: "weight", Kind: relation.KindFloat, TypeName: "float"},
	)

	tup := relation.NewTuple(r)
	tup.WriteString("mydog").WriteString("black").WriteNumber(3).WriteUnsigned(4).WriteFloat(12.5)

	tup.Rewind()
	assert.Equal(t, "mydog", tup.ReadString())
	assert.Equal(t, "black", tup.ReadString())
	assert.Equal(t, relation.Value(3), tup.ReadNumber())
	assert.Equal(t, uint64(4), tup.ReadUnsigned())
	assert.Equal(t, 12.5, tup.ReadFloat())

	// Rewind does not clear values; a second pass reads the same row.
	tup.Rewind()
	assert.Equal(t, "mydog", tup.ReadString())
}

func TestTupleStoresSymbolIDsNotText(t *testing.T) {
	st := symbols.New()
	r := ram.New("edge", st, symAttr("node1"), symAttr("node2"))

	tup := relation.NewTuple(r)
	tup.WriteString("a").WriteString("b")

	// The stored domain values are the interned ids.
	assert.Equal(t, st.Lookup("a"), tup.Get(0))
	assert.Equal(t, st.Lookup("b"), tup.Get(1))
}

func TestTupleContractViolations(t *testing.T) {
	st := symbols.New()
	r := ram.New("edge", st,
		symAttr("node1"),
		relation.Attribute{Name: "weight", Kind: relation.KindSigned, TypeName: "number"},
	)

	t.Run("text into numeric column", func(t *testing.T) {
		tup := relation.NewTuple(r)
		tup.WriteString("a")
		assert.Panics(t, func() { tup.WriteString("b") })
	})

	t.Run("number into symbol column", func(t *testing.T) {
		tup := relation.NewTuple(r)
		assert.Panics(t, func() { tup.WriteNumber(1) })
	})

	t.Run("write past arity", func(t *testing.T) {
		tup := relation.NewTuple(r)
		tup.WriteString("a").WriteNumber(1)
		assert.Panics(t, func() { tup.WriteNumber(2) })
	})

	t.Run("read past arity", func(t *testing.T) {
		tup := relation.NewTuple(r)
		tup.WriteString("a").WriteNumber(1)
		assert.Panics(t, func() { tup.ReadString() })
	})

	t.Run("mismatched read kind", func(t *testing.T) {
		tup := relation.NewTuple(r)
		tup.WriteString("a").WriteNumber(1)
		tup.Rewind()
		assert.Panics(t, func() { tup.ReadNumber() })
	})

	t.Run("initializer arity mismatch", func(t *testing.T) {
		assert.Panics(t, func() { relation.NewTupleOf(r, 1) })
		assert.Panics(t, func() { relation.NewTupleOf(r, 1, 2, 3) })
	})

	t.Run("unsupported WriteAny type", func(t *testing.T) {
		tup := relation.NewTuple(r)
		assert.Panics(t, func() { tup.WriteAny(struct{}{}) })
	})
}

func TestTupleDirectAccessBypassesChecks(t *testing.T) {
	st := symbols.New()
	r := ram.New("edge", st, symAttr("node1"), symAttr("node2"))

	tup := relation.NewTuple(r)
	// Set ignores both the cursor and the column kind.
	tup.Set(1, 42)
	assert.Equal(t, relation.Value(42), tup.Get(1))
	// The cursor has not moved.
	tup.WriteString("a")
	assert.Equal(t, st.Lookup("a"), tup.Get(0))
}

func TestTupleClone(t *testing.T) {
	st := symbols.New()
	r := ram.New("edge", st, symAttr("node1"), symAttr("node2"))

	tup := relation.NewTuple(r)
	tup.WriteString("a")
	clone := tup.Clone()
	clone.WriteString("b")

	// The original cursor and values are untouched by the clone's write.
	assert.Equal(t, relation.Value(0), tup.Get(1))
	tup.WriteString("c")
	assert.NotEqual(t, clone.Get(1), tup.Get(1))
}

func TestInsertContainsAdapters(t *testing.T) {
	st := symbols.New()
	r := ram.New("edge", st, symAttr("node1"), symAttr("node2"))

	relation.Insert(r, "a", "b")
	relation.Insert(r, "b", "c")

	require.Equal(t, 2, r.Size())
	assert.True(t, relation.Contains(r, "a", "b"))
	assert.False(t, relation.Contains(r, "a", "c"))
	assert.Panics(t, func() { relation.Insert(r, "only-one") })
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, relation.KindSymbol, relation.KindOf("s:Node"))
	assert.Equal(t, relation.KindSigned, relation.KindOf("i:number"))
	assert.Equal(t, relation.KindUnsigned, relation.KindOf("u:unsigned"))
	assert.Equal(t, relation.KindFloat, relation.KindOf("f:float"))
	assert.Panics(t, func() { relation.KindOf("x:bogus") })
	assert.Panics(t, func() { relation.KindOf("") })
}

func TestValueReinterpretation(t *testing.T) {
	assert.Equal(t, 3.25, relation.FloatValue(3.25).Float())
	assert.Equal(t, uint64(1<<63), relation.UnsignedValue(1<<63).Unsigned())
}

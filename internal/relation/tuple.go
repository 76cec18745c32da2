package relation

import "fmt"

// Tuple is a fixed-width row buffer bound to one relation for its lifetime.
// It holds arity domain values plus a cursor in [0, arity]. The typed
// Write*/Read* methods fill and drain the buffer sequentially, checking the
// attribute kind of the column under the cursor on every call; a mismatch or
// an overrun panics. Get/Set bypass the cursor and the checks entirely and
// are meant for engines and adapters that already know the layout.
type Tuple struct {
	rel  Relation
	vals []Value
	pos  int
}

// NewTuple returns an empty tuple bound to r, cursor at column 0.
func NewTuple(r Relation) *Tuple {
	return &Tuple{rel: r, vals: make([]Value, r.Arity())}
}

// NewTupleOf returns a tuple bound to r holding the given raw domain values,
// cursor parked past the last column. The value count must equal the
// relation's arity.
func NewTupleOf(r Relation, vals ...Value) *Tuple {
	if len(vals) != r.Arity() {
		panic(fmt.Sprintf("relation %s: tuple built with %d values, arity is %d",
			r.Name(), len(vals), r.Arity()))
	}
	t := &Tuple{rel: r, vals: make([]Value, len(vals)), pos: len(vals)}
	copy(t.vals, vals)
	return t
}

// Relation returns the relation the tuple is bound to.
func (t *Tuple) Relation() Relation {
	return t.rel
}

// Size returns the number of columns, which equals the relation's arity.
func (t *Tuple) Size() int {
	return len(t.vals)
}

// Rewind resets the cursor to column 0 without clearing any values, so a
// filled tuple can be read back from the start.
func (t *Tuple) Rewind() {
	t.pos = 0
}

// Get returns the raw domain value at column i, ignoring the cursor.
func (t *Tuple) Get(i int) Value {
	return t.vals[i]
}

// Set stores a raw domain value at column i, ignoring the cursor and the
// column kind. The caller is trusted to supply a correctly typed value.
func (t *Tuple) Set(i int, v Value) {
	t.vals[i] = v
}

// Values exposes the backing slice for engines that copy rows in or out.
// Mutating it mutates the tuple.
func (t *Tuple) Values() []Value {
	return t.vals
}

// Clone returns an independent copy, including the cursor position.
func (t *Tuple) Clone() *Tuple {
	c := &Tuple{rel: t.rel, vals: make([]Value, len(t.vals)), pos: t.pos}
	copy(c.vals, t.vals)
	return c
}

// WriteString interns s in the relation's symbol table and stores the id in
// the symbol column under the cursor, then advances. Chainable.
func (t *Tuple) WriteString(s string) *Tuple {
	t.check(KindSymbol)
	t.vals[t.pos] = t.rel.SymbolTable().Lookup(s)
	t.pos++
	return t
}

// WriteNumber stores a signed or unsigned integer column value under the
// cursor, then advances. Chainable.
func (t *Tuple) WriteNumber(n Value) *Tuple {
	t.check(KindSigned, KindUnsigned)
	t.vals[t.pos] = n
	t.pos++
	return t
}

// WriteUnsigned stores u in the unsigned column under the cursor, then
// advances. Chainable.
func (t *Tuple) WriteUnsigned(u uint64) *Tuple {
	t.check(KindUnsigned)
	t.vals[t.pos] = UnsignedValue(u)
	t.pos++
	return t
}

// WriteFloat stores f in the float column under the cursor, then advances.
// Chainable.
func (t *Tuple) WriteFloat(f float64) *Tuple {
	t.check(KindFloat)
	t.vals[t.pos] = FloatValue(f)
	t.pos++
	return t
}

// ReadString resolves the symbol id under the cursor back to its text and
// advances.
func (t *Tuple) ReadString() string {
	t.check(KindSymbol)
	s := t.rel.SymbolTable().Resolve(t.vals[t.pos])
	t.pos++
	return s
}

// ReadNumber returns the integer value under the cursor and advances.
func (t *Tuple) ReadNumber() Value {
	t.check(KindSigned, KindUnsigned)
	n := t.vals[t.pos]
	t.pos++
	return n
}

// ReadUnsigned returns the unsigned value under the cursor and advances.
func (t *Tuple) ReadUnsigned() uint64 {
	t.check(KindUnsigned)
	u := t.vals[t.pos].Unsigned()
	t.pos++
	return u
}

// ReadFloat returns the float value under the cursor and advances.
func (t *Tuple) ReadFloat() float64 {
	t.check(KindFloat)
	f := t.vals[t.pos].Float()
	t.pos++
	return f
}

// WriteAny dispatches to the typed write matching v's dynamic type. Strings
// go to symbol columns; integers to number columns; uints to unsigned
// columns; floats to float columns. Any other type is a contract violation.
func (t *Tuple) WriteAny(v any) *Tuple {
	switch x := v.(type) {
	case string:
		return t.WriteString(x)
	case Value:
		return t.WriteNumber(x)
	case int:
		return t.WriteNumber(Value(x))
	case int32:
		return t.WriteNumber(Value(x))
	case int64:
		return t.WriteNumber(Value(x))
	case uint:
		return t.WriteUnsigned(uint64(x))
	case uint32:
		return t.WriteUnsigned(uint64(x))
	case uint64:
		return t.WriteUnsigned(x)
	case float32:
		return t.WriteFloat(float64(x))
	case float64:
		return t.WriteFloat(x)
	default:
		panic(fmt.Sprintf("relation %s: cannot write %T into a tuple", t.rel.Name(), v))
	}
}

func (t *Tuple) check(allowed ...Kind) {
	if t.pos >= len(t.vals) {
		panic(fmt.Sprintf("relation %s: tuple cursor past arity %d", t.rel.Name(), len(t.vals)))
	}
	k := KindOf(t.rel.AttrType(t.pos))
	for _, a := range allowed {
		if k == a {
			return
		}
	}
	panic(fmt.Sprintf("relation %s: column %d (%s) is %s, not %s",
		t.rel.Name(), t.pos, t.rel.AttrName(t.pos), k, kindList(allowed)))
}

func kindList(kinds []Kind) string {
	out := ""
	for i, k := range kinds {
		if i > 0 {
			out += " or "
		}
		out += k.String()
	}
	return out
}

// Insert builds a tuple from args via the typed writes and inserts it into
// r. It is the generic adapter for callers holding Go values rather than a
// prepared tuple.
func Insert(r Relation, args ...any) {
	r.Insert(fill(r, args))
}

// Contains builds a tuple from args via the typed writes and runs a
// membership test against r.
func Contains(r Relation, args ...any) bool {
	return r.Contains(fill(r, args))
}

func fill(r Relation, args []any) *Tuple {
	if len(args) != r.Arity() {
		panic(fmt.Sprintf("relation %s: %d arguments for arity %d", r.Name(), len(args), r.Arity()))
	}
	t := NewTuple(r)
	for _, a := range args {
		t.WriteAny(a)
	}
	return t
}

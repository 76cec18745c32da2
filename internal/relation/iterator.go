package relation

// Cursor is the engine-specific scan state hidden behind an Iterator. Each
// Relation implementation supplies its own cursor type and identifies it
// with a process-unique kind tag, so cursors from different engines never
// compare equal by accident.
//
// Cursor state machine: a cursor is either positioned at a row or at end.
// Advance moves positioned -> positioned, or positioned -> end when the scan
// is exhausted. Tuple is only valid while positioned; calling it at end is a
// contract violation and panics.
type Cursor interface {
	// Kind returns the tag identifying the concrete cursor type.
	Kind() uint32
	// Advance moves the cursor to the next row.
	Advance()
	// Tuple returns the row under the cursor. Panics at end.
	Tuple() *Tuple
	// Equal reports whether o denotes the same logical position. It is only
	// called with a cursor of the same Kind, and must treat two end cursors
	// over the same relation as equal.
	Equal(o Cursor) bool
	// Clone returns an independent copy of the cursor's state. The clone and
	// the original advance separately.
	Clone() Cursor
}

// Iterator is the handle callers iterate with. It owns exactly one Cursor;
// use Clone, not struct copy, when an independently advancing handle is
// needed (a struct copy shares the underlying cursor).
//
// The canonical loop:
//
//	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Advance() {
//		row := it.Tuple()
//		...
//	}
type Iterator struct {
	cur Cursor
}

// NewIterator wraps an engine cursor in a handle. Engines call this from
// their Begin/End implementations.
func NewIterator(cur Cursor) Iterator {
	return Iterator{cur: cur}
}

// Advance moves the handle to the next row.
func (it Iterator) Advance() {
	it.cur.Advance()
}

// Tuple returns the row under the handle. Panics when the handle is at end.
func (it Iterator) Tuple() *Tuple {
	return it.cur.Tuple()
}

// Clone returns a handle over an independent copy of the cursor.
func (it Iterator) Clone() Iterator {
	if it.cur == nil {
		return Iterator{}
	}
	return Iterator{cur: it.cur.Clone()}
}

// Equal reports whether both handles denote the same logical position.
// Equality is structural: the cursor kinds must match and the cursors must
// agree on position, with two end cursors over the same relation always
// equal. Two handles sharing one cursor are the trivial structural case.
func (it Iterator) Equal(o Iterator) bool {
	if it.cur == o.cur {
		return true
	}
	if it.cur == nil || o.cur == nil {
		return false
	}
	return it.cur.Kind() == o.cur.Kind() && it.cur.Equal(o.cur)
}

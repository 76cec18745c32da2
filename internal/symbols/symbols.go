// Package symbols provides the interning table relations use for their
// symbol columns. Each distinct symbol maps to a stable small id; ids are
// dense and assigned in first-seen order.
package symbols

import (
	"fmt"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/detljh/souffle/internal/relation"
)

// Table is a thread-safe interning symbol table. Symbols are NFC normalized
// at the intern boundary so visually identical strings share one id
// regardless of their Unicode composition.
//
// Table implements relation.SymbolTable.
type Table struct {
	mu    sync.RWMutex
	ids   map[string]relation.Value
	texts []string
}

// New returns an empty table.
func New() *Table {
	return &Table{ids: make(map[string]relation.Value)}
}

// Lookup returns the id for symbol, interning it first if it is new.
func (t *Table) Lookup(symbol string) relation.Value {
	symbol = norm.NFC.String(symbol)

	t.mu.RLock()
	id, ok := t.ids[symbol]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Another writer may have interned it between the two lock scopes.
	if id, ok := t.ids[symbol]; ok {
		return id
	}
	id = relation.Value(len(t.texts))
	t.ids[symbol] = id
	t.texts = append(t.texts, symbol)
	return id
}

// Resolve returns the symbol for id. Resolving an id the table never handed
// out is a contract violation.
func (t *Table) Resolve(id relation.Value) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.texts) {
		panic(fmt.Sprintf("symbols: id %d was never interned (table holds %d)", id, len(t.texts)))
	}
	return t.texts[id]
}

// Contains reports whether symbol is already interned, without interning it.
func (t *Table) Contains(symbol string) bool {
	symbol = norm.NFC.String(symbol)
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[symbol]
	return ok
}

// Size returns the number of interned symbols.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.texts)
}

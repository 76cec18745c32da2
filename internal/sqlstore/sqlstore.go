// Package sqlstore provides a SQLite-backed relation engine for programs
// whose fact sets should survive the process. Rows live in one table per
// relation, every column stored as the raw domain value; the shared symbol
// table still owns the text.
//
// The relation interface is storage-agnostic and allows no error returns on
// row operations, so a failing statement against the embedded database is
// treated like any other contract violation and panics. For a local SQLite
// file that only happens when the file is gone or corrupt.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/detljh/souffle/internal/relation"
)

const cursorKind uint32 = 2

// Store is an open SQLite database holding any number of relations.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path.
//
// The database is configured with WAL mode for concurrent reads, NORMAL
// synchronous mode, and a 5-second busy timeout. Idempotent; safe to call
// for an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Relation creates (if needed) the table backing the named relation and
// returns its handle. Names must be non-empty and free of double quotes.
// Arity 0 is backed by a one-column table that holds at most one marker row,
// which matches set semantics for nullary relations.
func (s *Store) Relation(name string, symtab relation.SymbolTable, attrs ...relation.Attribute) (*Relation, error) {
	// The name is spliced into quoted identifiers; a quote would produce
	// malformed SQL that only surfaces on a later row operation.
	if name == "" || strings.ContainsRune(name, '"') {
		return nil, fmt.Errorf("invalid relation name %q", name)
	}
	r := &Relation{store: s, name: name, attrs: attrs, symtab: symtab}
	if _, err := s.db.Exec(r.createSQL()); err != nil {
		return nil, fmt.Errorf("create table for %s: %w", name, err)
	}
	return r, nil
}

// Relation is one SQLite-backed relation. Duplicate inserts are dropped by
// the primary key; scans visit rows in ascending column order, which is
// stable because each scan snapshots its rows up front.
type Relation struct {
	store  *Store
	name   string
	attrs  []relation.Attribute
	symtab relation.SymbolTable
}

var _ relation.Relation = (*Relation)(nil)

func (r *Relation) table() string {
	return `"rel_` + r.name + `"`
}

func (r *Relation) columns() []string {
	if len(r.attrs) == 0 {
		return []string{"c0"}
	}
	cols := make([]string, len(r.attrs))
	for i := range r.attrs {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	return cols
}

func (r *Relation) createSQL() string {
	cols := r.columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = c + " INTEGER NOT NULL"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s, PRIMARY KEY (%s)) WITHOUT ROWID",
		r.table(), strings.Join(defs, ", "), strings.Join(cols, ", "))
}

func (r *Relation) rowArgs(t *relation.Tuple) []any {
	if len(r.attrs) == 0 {
		return []any{int64(0)}
	}
	args := make([]any, t.Size())
	for i, v := range t.Values() {
		args[i] = int64(v)
	}
	return args
}

// Insert stores the tuple's values, dropping duplicates.
func (r *Relation) Insert(t *relation.Tuple) {
	cols := r.columns()
	marks := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	q := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		r.table(), strings.Join(cols, ", "), marks)
	if _, err := r.store.db.Exec(q, r.rowArgs(t)...); err != nil {
		panic(fmt.Sprintf("sqlstore %s: insert: %v", r.name, err))
	}
}

// Contains reports whether an exact-match row is present.
func (r *Relation) Contains(t *relation.Tuple) bool {
	cols := r.columns()
	preds := make([]string, len(cols))
	for i, c := range cols {
		preds[i] = c + " = ?"
	}
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE %s", r.table(), strings.Join(preds, " AND "))
	var one int
	err := r.store.db.QueryRow(q, r.rowArgs(t)...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		panic(fmt.Sprintf("sqlstore %s: contains: %v", r.name, err))
	}
	return true
}

// snapshot reads every row in ascending column order. Scans iterate the
// snapshot so their order stays stable regardless of later writes.
func (r *Relation) snapshot() [][]relation.Value {
	cols := r.columns()
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), r.table(), strings.Join(cols, ", "))
	rows, err := r.store.db.Query(q)
	if err != nil {
		panic(fmt.Sprintf("sqlstore %s: scan: %v", r.name, err))
	}
	defer rows.Close()

	var out [][]relation.Value
	for rows.Next() {
		raw := make([]int64, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			panic(fmt.Sprintf("sqlstore %s: scan: %v", r.name, err))
		}
		row := make([]relation.Value, len(r.attrs))
		for i := range row {
			row[i] = relation.Value(raw[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		panic(fmt.Sprintf("sqlstore %s: scan: %v", r.name, err))
	}
	return out
}

// Begin returns an iterator over a snapshot of the current rows.
func (r *Relation) Begin() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r, rows: r.snapshot()})
}

// End returns the end iterator for the relation. End cursors compare equal
// to any exhausted cursor over the same relation, so the snapshot sizes do
// not need to match.
func (r *Relation) End() relation.Iterator {
	return relation.NewIterator(&cursor{rel: r})
}

// Size returns the row count.
func (r *Relation) Size() int {
	var n int
	if err := r.store.db.QueryRow("SELECT COUNT(*) FROM " + r.table()).Scan(&n); err != nil {
		panic(fmt.Sprintf("sqlstore %s: size: %v", r.name, err))
	}
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

// Purge deletes every row; the table and metadata stay.
func (r *Relation) Purge() {
	if _, err := r.store.db.Exec("DELETE FROM " + r.table()); err != nil {
		panic(fmt.Sprintf("sqlstore %s: purge: %v", r.name, err))
	}
}

// cursor iterates a sorted snapshot. atEnd covers both the dedicated end
// cursor (nil rows) and an exhausted scan cursor.
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
		panic("sqlstore: dereferencing an iterator at end of " + c.rel.name)
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

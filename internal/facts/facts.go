// Package facts moves relations across the file boundary: tab-separated
// fact files on the way in, tab-separated result files on the way out, and
// a human-readable dump rendering for diagnostics. Compiled programs build
// their LoadAll/PrintAll obligations out of this package.
//
// File naming follows the usual convention: a relation named edge loads
// from edge.facts and stores to edge.csv. Both are plain tab-separated
// text; symbol columns carry the symbol text, numeric columns the decimal
// rendering.
package facts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/detljh/souffle/internal/relation"
)

// InputExt is the extension fact files are loaded from.
const InputExt = ".facts"

// OutputExt is the extension result files are stored to.
const OutputExt = ".csv"

// Read parses tab-separated rows from rd and inserts them into r. Fields
// are converted per the relation's attribute kinds; a field that does not
// parse under its column's kind aborts the read with a wrapped error.
func Read(rd io.Reader, r relation.Relation) error {
	cr := csv.NewReader(rd)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("relation %s: %w", r.Name(), err)
		}
		line++
		t, err := parseRecord(r, record)
		if err != nil {
			return fmt.Errorf("relation %s line %d: %w", r.Name(), line, err)
		}
		r.Insert(t)
	}
}

func parseRecord(r relation.Relation, record []string) (*relation.Tuple, error) {
	arity := r.Arity()
	if arity == 0 {
		// Nullary relations store one marker per row.
		return relation.NewTuple(r), nil
	}
	if len(record) != arity {
		return nil, fmt.Errorf("%d fields for arity %d", len(record), arity)
	}
	t := relation.NewTuple(r)
	for i, field := range record {
		switch relation.KindOf(r.AttrType(i)) {
		case relation.KindSymbol:
			t.WriteString(field)
		case relation.KindSigned:
			n, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i, err)
			}
			t.WriteNumber(relation.Value(n))
		case relation.KindUnsigned:
			u, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i, err)
			}
			t.WriteUnsigned(u)
		case relation.KindFloat:
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i, err)
			}
			t.WriteFloat(f)
		}
	}
	return t, nil
}

// Write renders every row of r as a tab-separated line on w, in the
// relation's scan order.
func Write(w io.Writer, r relation.Relation) error {
	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Advance() {
		if _, err := io.WriteString(w, renderRow(it.Tuple())+"\n"); err != nil {
			return fmt.Errorf("relation %s: %w", r.Name(), err)
		}
	}
	return nil
}

// renderRow formats one tuple per its relation's attribute kinds.
func renderRow(t *relation.Tuple) string {
	r := t.Relation()
	if r.Arity() == 0 {
		return "()"
	}
	fields := make([]string, r.Arity())
	t.Rewind()
	for i := range fields {
		switch relation.KindOf(r.AttrType(i)) {
		case relation.KindSymbol:
			fields[i] = t.ReadString()
		case relation.KindSigned:
			fields[i] = strconv.FormatInt(int64(t.ReadNumber()), 10)
		case relation.KindUnsigned:
			fields[i] = strconv.FormatUint(t.ReadUnsigned(), 10)
		case relation.KindFloat:
			fields[i] = strconv.FormatFloat(t.ReadFloat(), 'g', -1, 64)
		}
	}
	return strings.Join(fields, "\t")
}

// Load reads r from its fact file in dir. The file must exist; a program
// whose input is optional should check with os.Stat first.
func Load(dir string, r relation.Relation) error {
	path := filepath.Join(dir, r.Name()+InputExt)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", r.Name(), err)
	}
	defer f.Close()
	return Read(f, r)
}

// Store writes r to its result file in dir, creating dir if needed.
func Store(dir string, r relation.Relation) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store %s: %w", r.Name(), err)
	}
	path := filepath.Join(dir, r.Name()+OutputExt)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store %s: %w", r.Name(), err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Dump writes a bordered, human-readable rendering of r to w: name and
// signature in the header, then one row per line. Diagnostics only.
func Dump(w io.Writer, r relation.Relation) error {
	header := fmt.Sprintf("---------------\n%s\n%s\n===============\n",
		r.Name(), relation.Signature(r))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if err := Write(w, r); err != nil {
		return err
	}
	_, err := io.WriteString(w, "===============\n")
	return err
}

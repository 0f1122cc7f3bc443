// Package table holds the tabular result type returned by the statistics provider.
// A Table is an ordered list of columns plus an ordered list of rows. It has no schema
// beyond the column names: the provider decides what the columns are, and this package
// only guarantees that the order in which columns and rows were added is the order in
// which they are written out as JSON.
//
// The JSON form is an array of objects, one object per row:
//
//	[{"match_id": 1, "home_team": "Arsenal"}, {"match_id": 2, "home_team": "Chelsea"}]
//
// Go maps do not keep insertion order, so encoding a []map[string]any would scramble the
// keys. Table writes each object by hand instead, walking the column list in order.
package table

import (
	"bytes"

	// go-json is a drop-in replacement for encoding/json; it's also the encoder Fiber is
	// configured with, so cell values are rendered the same way everywhere in the API.
	"github.com/goccy/go-json"
)

// Field is one named cell of a record, used when rows are built key by key.
type Field struct {
	Name  string
	Value any
}

// Table is an ordered sequence of uniformly-keyed records.
// The zero value is an empty table with no columns, ready to use.
type Table struct {
	columns []string
	index   map[string]int // column name -> position in columns
	rows    [][]any        // a row may be shorter than columns; missing cells are null
}

// New creates a table with the given columns already declared.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// AddColumn declares a column and returns its position. Declaring a column that already
// exists is a no-op that returns the existing position.
func (t *Table) AddColumn(name string) int {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	return len(t.columns) - 1
}

// Columns returns the column names in order. The slice must not be modified.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Size estimates the bytes the table keeps alive: column names, the text of string and
// raw JSON cells, plus a fixed charge per cell for the interface header and scalars.
// The provider cache uses it as an entry's cost.
func (t *Table) Size() int64 {
	const cellOverhead = 16

	var n int64
	for _, c := range t.columns {
		n += int64(len(c))
	}
	for _, row := range t.rows {
		for _, v := range row {
			n += cellOverhead
			switch v := v.(type) {
			case json.RawMessage:
				n += int64(len(v))
			case string:
				n += int64(len(v))
			case []byte:
				n += int64(len(v))
			}
		}
	}
	return n
}

// AppendRow adds a row whose values line up with the declared columns.
// Passing fewer values than columns leaves the trailing cells null; passing more panics,
// since that is always a programming error in the caller.
func (t *Table) AppendRow(values ...any) {
	if len(values) > len(t.columns) {
		panic("table: row has more values than declared columns")
	}
	row := make([]any, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// AppendRecord adds a row built from named fields. Unknown field names become new
// columns at the end of the column list; earlier rows read those cells as null.
func (t *Table) AppendRecord(fields []Field) {
	row := make([]any, len(t.columns), len(t.columns)+len(fields))
	for _, f := range fields {
		i := t.AddColumn(f.Name)
		for len(row) <= i {
			row = append(row, nil)
		}
		row[i] = f.Value
	}
	t.rows = append(t.rows, row)
}

// MarshalJSON renders the table as an array of objects with keys in column order.
// An empty table renders as [] rather than null, so clients can always iterate it.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}

	// Column names are encoded once up front; they're repeated in every row object.
	keys := make([][]byte, len(t.columns))
	for i, c := range t.columns {
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range t.rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c := range t.columns {
			if c > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[c])
			buf.WriteByte(':')

			var v any
			if c < len(row) {
				v = row[c]
			}
			if v == nil {
				buf.WriteString("null")
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package table holds the in-memory, column-major dataset the preprocessing
// stages operate on.
package table

import (
	"fmt"
	"strings"
)

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New assembles a table, checking that names are unique and lengths agree.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.Append(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Empty returns a table with rows rows and no columns.
func Empty(rows int) *Table {
	return &Table{index: make(map[string]int), rows: rows}
}

// Append adds a column at the end of the table.
func (t *Table) Append(c *Column) error {
	if c == nil {
		return fmt.Errorf("cannot append nil column")
	}
	if _, exists := t.index[c.Name()]; exists {
		return fmt.Errorf("duplicate column name %q", c.Name())
	}
	if (len(t.columns) > 0 || t.rows > 0) && c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name(), c.Len(), t.rows)
	}
	t.rows = c.Len()
	t.index[c.Name()] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.columns) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.rows, len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Columns returns the columns in order. The slice is a copy; the columns are not.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnsOfKind returns the columns whose kind is one of kinds, in table order.
func (t *Table) ColumnsOfKind(kinds ...Kind) []*Column {
	var out []*Column
	for _, c := range t.columns {
		for _, k := range kinds {
			if c.Kind() == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// RowKey renders row i so that two rows share a key exactly when every cell
// is equal.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for j, c := range t.columns {
		if j > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(c.key(i))
	}
	return b.String()
}

// Take returns a new table with rows idx, in that order.
func (t *Table) Take(idx []int) *Table {
	out := &Table{index: make(map[string]int, len(t.columns)), rows: len(idx)}
	for i, c := range t.columns {
		out.columns = append(out.columns, c.Take(idx))
		out.index[c.Name()] = i
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	return t.Take(idx)
}

// Records renders the table as a header row followed by one row per record.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, t.rows+1)
	records = append(records, t.Names())
	for i := 0; i < t.rows; i++ {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			row[j] = c.Format(i)
		}
		records = append(records, row)
	}
	return records
}

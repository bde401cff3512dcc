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
package table

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FromDataFrame converts a gota DataFrame into a Table. Int and Float series
// become numeric columns, Bool series boolean columns and everything else
// categorical. NA elements become nulls.
func FromDataFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, df.Err
	}

	t := &Table{index: make(map[string]int)}
	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Err != nil {
			return nil, fmt.Errorf("column %q: %w", name, s.Err)
		}
		nulls := s.IsNaN()

		var col *Column
		switch s.Type() {
		case series.Int, series.Float:
			col = NewNumeric(name, s.Float(), nulls)
		case series.Bool:
			records := s.Records()
			values := make([]bool, len(records))
			for i, r := range records {
				values[i] = !nulls[i] && r == "true"
			}
			col = NewBoolean(name, values, nulls)
		default:
			records := s.Records()
			for i := range records {
				if nulls[i] {
					records[i] = ""
				}
			}
			col = NewCategorical(name, records, nulls)
		}
		if err := t.Append(col); err != nil {
			return nil, err
		}
	}
	if len(t.columns) == 0 {
		t.rows = df.Nrow()
	}
	return t, nil
}

// DataFrame converts the table back into a gota DataFrame.
func (t *Table) DataFrame() dataframe.DataFrame {
	cols := make([]series.Series, 0, len(t.columns))
	for _, c := range t.columns {
		switch c.Kind() {
		case Numeric:
			values := make([]float64, c.Len())
			for i := range values {
				values[i] = c.Float(i)
			}
			cols = append(cols, series.New(values, series.Float, c.Name()))
		case Boolean:
			cols = append(cols, series.New(formatted(c), series.Bool, c.Name()))
		default:
			cols = append(cols, series.New(formatted(c), series.String, c.Name()))
		}
	}
	return dataframe.New(cols...)
}

func formatted(c *Column) []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Format(i)
	}
	return out
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	if len(t.columns) == 0 {
		return fmt.Errorf("cannot write a table without columns")
	}
	return t.DataFrame().WriteCSV(w)
}

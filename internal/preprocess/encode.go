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
package preprocess

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
	"github.com/GoogleCloudPlatform/tabprep/internal/stats"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// EncodeCategorical replaces every categorical column with boolean indicator
// columns named <column>_<value>, one per distinct value except the smallest,
// which is the reference level. Non-categorical columns come first in their
// original order, followed by the indicators of each encoded column. The
// result shares no column storage with t.
func (p *Processor) EncodeCategorical(t *table.Table) (*table.Table, error) {
	p.report.Section("Categorical encoding")

	categorical := t.ColumnsOfKind(table.Categorical)
	if len(categorical) == 0 {
		p.report.Printf("No categorical columns to encode")
		return t, nil
	}

	names := make([]string, len(categorical))
	for i, c := range categorical {
		names[i] = c.Name()
	}
	p.report.Printf("Categorical columns found: %s", report.List(names))

	out := table.Empty(t.NumRows())
	for _, c := range t.ColumnsOfKind(table.Numeric, table.Boolean) {
		if err := out.Append(c.Clone()); err != nil {
			return nil, err
		}
	}
	for _, c := range categorical {
		levels := stats.Distinct(c.NonNullStrings())
		if len(levels) <= 1 {
			p.logger.Debug("Column has a single level, no indicators", zap.String("column", c.Name()))
			continue
		}
		for _, level := range levels[1:] {
			ind := indicator(c, level, uniqueName(out, fmt.Sprintf("%s_%s", c.Name(), level)))
			if err := out.Append(ind); err != nil {
				return nil, err
			}
		}
		p.logger.Debug("Encoded column",
			zap.String("column", c.Name()),
			zap.Int("levels", len(levels)),
			zap.String("reference", levels[0]))
	}

	rows, cols := out.Shape()
	p.report.Printf("Shape after encoding: (%d, %d)", rows, cols)
	return out, nil
}

// indicator marks the rows of c equal to level; null cells are false.
func indicator(c *table.Column, level, name string) *table.Column {
	values := make([]bool, c.Len())
	for i := range values {
		values[i] = !c.IsNull(i) && c.Str(i) == level
	}
	return table.NewBoolean(name, values, nil)
}

// uniqueName appends _1, _2, ... to name until it is free in t.
func uniqueName(t *table.Table, name string) string {
	if !t.Has(name) {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !t.Has(candidate) {
			return candidate
		}
	}
}

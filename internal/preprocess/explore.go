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
	"math"
	"strconv"

	"github.com/GoogleCloudPlatform/tabprep/internal/stats"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// Profile is the read-only summary produced by Explore.
type Profile struct {
	Rows        int
	Cols        int
	Columns     []ColumnProfile
	Numeric     []NumericSummary
	Categorical []CategoricalSummary
}

// ColumnProfile describes one column's type and completeness.
type ColumnProfile struct {
	Name    string
	Kind    table.Kind
	DType   string
	NonNull int
	Nulls   int
}

// NumericSummary holds descriptive statistics of a numeric column. Std is
// the sample standard deviation; quartiles use linear interpolation.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategoricalSummary holds the count, cardinality and mode of a categorical
// column.
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Explore reports the shape, dtypes, null counts and descriptive statistics
// of t. t is not modified.
func (p *Processor) Explore(t *table.Table) *Profile {
	p.report.Section("Data exploration")

	rows, cols := t.Shape()
	prof := &Profile{Rows: rows, Cols: cols}
	for _, c := range t.Columns() {
		nulls := c.NullCount()
		prof.Columns = append(prof.Columns, ColumnProfile{
			Name:    c.Name(),
			Kind:    c.Kind(),
			DType:   c.DType(),
			NonNull: c.Len() - nulls,
			Nulls:   nulls,
		})
		switch c.Kind() {
		case table.Numeric:
			prof.Numeric = append(prof.Numeric, describeNumeric(c))
		case table.Categorical:
			prof.Categorical = append(prof.Categorical, describeCategorical(c))
		}
	}

	p.report.Printf("Shape: (%d, %d)", rows, cols)
	p.report.Printf("")
	p.report.Printf("Column types and missing values:")
	colRows := make([][]string, 0, len(prof.Columns))
	for _, cp := range prof.Columns {
		colRows = append(colRows, []string{cp.Name, cp.DType, strconv.Itoa(cp.NonNull), strconv.Itoa(cp.Nulls)})
	}
	p.report.Table([]string{"Column", "Dtype", "Non-Null", "Nulls"}, colRows)

	p.report.Printf("")
	if len(prof.Numeric) == 0 {
		p.report.Printf("No numeric columns to describe")
	} else {
		p.report.Printf("Descriptive statistics:")
		p.report.Table(numericTable(prof.Numeric))
	}
	if len(prof.Categorical) > 0 {
		p.report.Printf("")
		p.report.Printf("Categorical columns:")
		p.report.Table(categoricalTable(prof.Categorical))
	}
	return prof
}

func describeNumeric(c *table.Column) NumericSummary {
	values := c.NonNullFloats()
	lo, hi := stats.MinMax(values)
	return NumericSummary{
		Column: c.Name(),
		Count:  len(values),
		Mean:   stats.Mean(values),
		Std:    stats.Std(values, 1),
		Min:    lo,
		Q25:    stats.Quantile(values, 0.25),
		Q50:    stats.Quantile(values, 0.5),
		Q75:    stats.Quantile(values, 0.75),
		Max:    hi,
	}
}

func describeCategorical(c *table.Column) CategoricalSummary {
	values := c.NonNullStrings()
	top, freq, _ := stats.MostFrequent(values)
	return CategoricalSummary{
		Column: c.Name(),
		Count:  len(values),
		Unique: len(stats.Distinct(values)),
		Top:    top,
		Freq:   freq,
	}
}

// numericTable lays the summaries out with one row per
// statistic, one column per numeric column.
func numericTable(summaries []NumericSummary) ([]string, [][]string) {
	headers := []string{""}
	labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	rows := make([][]string, len(labels))
	for i, l := range labels {
		rows[i] = []string{l}
	}
	for _, s := range summaries {
		headers = append(headers, s.Column)
		rows[0] = append(rows[0], strconv.Itoa(s.Count))
		for i, v := range []float64{s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max} {
			rows[i+1] = append(rows[i+1], formatStat(v))
		}
	}
	return headers, rows
}

func categoricalTable(summaries []CategoricalSummary) ([]string, [][]string) {
	headers := []string{""}
	rows := [][]string{{"count"}, {"unique"}, {"top"}, {"freq"}}
	for _, s := range summaries {
		headers = append(headers, s.Column)
		top := s.Top
		if s.Count == 0 {
			top = "NaN"
		}
		rows[0] = append(rows[0], strconv.Itoa(s.Count))
		rows[1] = append(rows[1], strconv.Itoa(s.Unique))
		rows[2] = append(rows[2], top)
		rows[3] = append(rows[3], strconv.Itoa(s.Freq))
	}
	return headers, rows
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

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
	"strconv"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
	"github.com/GoogleCloudPlatform/tabprep/internal/stats"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// MissingCategory fills a categorical column that has no observed values.
const MissingCategory = "missing_value"

const mostFrequent = "most_frequent"

// HandleNulls fills every missing cell in place. Each column with nulls gets
// its own imputer fitted on that column's non-null values: categorical and
// boolean columns take their most frequent value, numeric columns follow
// strategy. An unrecognized strategy falls back to a constant zero.
func (p *Processor) HandleNulls(t *table.Table, strategy string) *table.Table {
	p.report.Section("Missing value handling")

	mode, ok := ParseImputation(strategy)
	if !ok {
		p.report.Warnf("Imputation strategy %q not recognized, numeric columns are filled with 0", strategy)
	}

	var withNulls []*table.Column
	for _, c := range t.Columns() {
		if c.NullCount() > 0 {
			withNulls = append(withNulls, c)
		}
	}
	if len(withNulls) == 0 {
		p.report.Printf("No missing values in the dataset")
		return t
	}

	names := make([]string, len(withNulls))
	for i, c := range withNulls {
		names[i] = c.Name()
	}
	p.report.Printf("Columns with missing values: %s", report.List(names))

	for _, c := range withNulls {
		nulls := c.NullCount()
		label, fill := imputeColumn(c, mode)
		p.report.Printf("Missing values in %s: IMPUTED (%s=%s)", c.Name(), label, fill)
		p.logger.Debug("Imputed column",
			zap.String("column", c.Name()),
			zap.Stringer("kind", c.Kind()),
			zap.Int("nulls", nulls),
			zap.String("strategy", label),
			zap.String("value", fill))
	}
	return t
}

// imputeColumn fills the nulls of c and returns the strategy label and the
// rendered fill value.
func imputeColumn(c *table.Column, mode Imputation) (string, string) {
	switch c.Kind() {
	case table.Categorical:
		value, _, ok := stats.MostFrequent(c.NonNullStrings())
		if !ok {
			value = MissingCategory
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.SetStr(i, value)
			}
		}
		return mostFrequent, value

	case table.Boolean:
		value := mostFrequentBool(c.NonNullBools())
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.SetBool(i, value)
			}
		}
		return mostFrequent, strconv.FormatBool(value)

	default:
		value := numericFill(c.NonNullFloats(), mode)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.SetFloat(i, value)
			}
		}
		return mode.String(), strconv.FormatFloat(value, 'g', -1, 64)
	}
}

// numericFill returns the fill value for a numeric column. A column with no
// observed values is filled with zero whatever the mode.
func numericFill(observed []float64, mode Imputation) float64 {
	if len(observed) == 0 {
		return 0
	}
	switch mode {
	case ImputeMean:
		return stats.Mean(observed)
	case ImputeMedian:
		return stats.Median(observed)
	default:
		return 0
	}
}

// mostFrequentBool breaks ties towards false, the smaller value.
func mostFrequentBool(values []bool) bool {
	trues := 0
	for _, v := range values {
		if v {
			trues++
		}
	}
	return trues > len(values)-trues
}

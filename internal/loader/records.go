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
package loader

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// boolLiterals are the only cell values a boolean column may hold.
var boolLiterals = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": false, "False": false, "FALSE": false,
}

// fromRecords types and converts a header row followed by data rows. A
// column is boolean only when every present cell is a boolean literal and
// numeric only when every present cell parses as a number; anything else,
// including a column with no present cells, is categorical.
func fromRecords(name string, records [][]string, naValues []string) (*table.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &ErrMalformedInput{Msg: fmt.Sprintf("%s has no columns", name)}
	}
	header := uniqueHeader(records[0])
	if len(records) == 1 {
		return emptyTable(header)
	}

	rows := make([][]string, len(records)-1)
	for i, r := range records[1:] {
		if len(r) != len(header) {
			return nil, &ErrMalformedInput{Msg: fmt.Sprintf("%s row %d has %d fields, header has %d", name, i+1, len(r), len(header))}
		}
		rows[i] = append([]string(nil), r...)
	}

	na := make(map[string]struct{}, len(naValues))
	for _, v := range naValues {
		na[v] = struct{}{}
	}

	types := make(map[string]series.Type, len(header))
	for j, col := range header {
		typ := columnType(rows, j, na)
		types[col] = typ
		if typ != series.Bool {
			continue
		}
		for _, row := range rows {
			if _, missing := na[row[j]]; !missing {
				row[j] = strconv.FormatBool(boolLiterals[row[j]])
			}
		}
	}

	df := dataframe.LoadRecords(append([][]string{header}, rows...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
		dataframe.NaNValues(naValues),
	)
	return toTable(name, df)
}

func columnType(rows [][]string, j int, na map[string]struct{}) series.Type {
	present, allBool, allNumeric := 0, true, true
	for _, row := range rows {
		cell := row[j]
		if _, missing := na[cell]; missing {
			continue
		}
		present++
		if _, ok := boolLiterals[cell]; !ok {
			allBool = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allNumeric = false
		}
		if !allBool && !allNumeric {
			return series.String
		}
	}
	switch {
	case present == 0:
		return series.String
	case allBool:
		return series.Bool
	case allNumeric:
		return series.Float
	}
	return series.String
}

// uniqueHeader names blank headers "Unnamed: <i>" and renames repeated
// names to <name>.1, <name>.2 and so on, skipping names already taken.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cur := counts[name]
		for cur > 0 {
			counts[name] = cur + 1
			name = fmt.Sprintf("%s.%d", name, cur)
			cur = counts[name]
		}
		out[i] = name
		counts[name] = cur + 1
	}
	return out
}

// emptyTable is the zero-row table of a source that only has a header.
func emptyTable(header []string) (*table.Table, error) {
	cols := make([]*table.Column, len(header))
	for i, name := range header {
		cols[i] = table.NewCategorical(name, []string{}, nil)
	}
	return table.New(cols...)
}

func toTable(name string, df dataframe.DataFrame) (*table.Table, error) {
	if df.Err != nil {
		return nil, &ErrMalformedInput{Msg: fmt.Sprintf("cannot parse %s", name), Err: df.Err}
	}
	t, err := table.FromDataFrame(df)
	if err != nil {
		return nil, &ErrMalformedInput{Msg: fmt.Sprintf("cannot convert %s", name), Err: err}
	}
	return t, nil
}

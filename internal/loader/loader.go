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

// Package loader reads raw tabular sources into a table.Table. CSV files and
// database tables both arrive as text records, are typed by the same column
// scan and are converted through gota.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
	"github.com/GoogleCloudPlatform/tabprep/internal/utils"
)

// DefaultNAValues are the cell values every CSV source reads as missing.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Source is anything the pipeline can load a table from.
type Source interface {
	Load(ctx context.Context) (*table.Table, error)
	// Describe names the source in reports and logs.
	Describe() string
}

// CSVSource is a delimited text file with a header row.
type CSVSource struct {
	Path string
	// Delimiter separates fields; zero means a comma.
	Delimiter rune
	// NAValues extends DefaultNAValues.
	NAValues []string
}

var _ Source = (*CSVSource)(nil)

func (s *CSVSource) Describe() string { return s.Path }

// Load reads and parses the file.
func (s *CSVSource) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ErrSourceUnavailable{Msg: s.Path, Err: err}
	}
	if err := utils.CheckReadableFile(s.Path); err != nil {
		return nil, &ErrSourceUnavailable{Msg: "cannot read file", Err: err}
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &ErrSourceUnavailable{Msg: "cannot open file", Err: err}
	}
	defer f.Close()

	delimiter := s.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	r := csv.NewReader(f)
	r.Comma = delimiter
	records, err := r.ReadAll()
	if err != nil {
		return nil, &ErrMalformedInput{Msg: fmt.Sprintf("cannot parse %s", s.Path), Err: err}
	}
	return fromRecords(s.Path, records, naValues(s.NAValues))
}

func naValues(extra []string) []string {
	out := make([]string, 0, len(DefaultNAValues)+len(extra))
	out = append(out, DefaultNAValues...)
	return append(out, extra...)
}

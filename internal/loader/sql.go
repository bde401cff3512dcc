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
	"context"
	"fmt"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// RecordFetcher reads a database table as text. *database.DB implements it.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, table string, limit int) ([]string, [][]string, error)
}

// SQLSource reads one database table. Empty cells, which is how SQL NULL
// comes back, are missing values. A table without rows loads as an empty
// table with its columns.
type SQLSource struct {
	Fetcher RecordFetcher
	Table   string
	// Limit caps the rows read; zero reads the whole table.
	Limit int
	// Dialect is only used to describe the source.
	Dialect string
}

var _ Source = (*SQLSource)(nil)

func (s *SQLSource) Describe() string {
	if s.Dialect == "" {
		return "table " + s.Table
	}
	return fmt.Sprintf("%s table %s", s.Dialect, s.Table)
}

func (s *SQLSource) Load(ctx context.Context) (*table.Table, error) {
	if s.Fetcher == nil {
		return nil, &ErrSourceUnavailable{Msg: "no database connection"}
	}
	if s.Table == "" {
		return nil, &ErrSourceUnavailable{Msg: "no table name given"}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ErrSourceUnavailable{Msg: s.Describe(), Err: err}
	}

	header, rows, err := s.Fetcher.FetchRecords(ctx, s.Table, s.Limit)
	if err != nil {
		return nil, &ErrSourceUnavailable{Msg: fmt.Sprintf("cannot read %s", s.Describe()), Err: err}
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)
	return fromRecords(s.Describe(), records, DefaultNAValues)
}

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
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// DropDuplicates removes rows equal to an earlier row across every column.
// The first occurrence is kept and the order of kept rows is preserved.
func (p *Processor) DropDuplicates(t *table.Table) *table.Table {
	p.report.Section("Duplicate removal")

	before := t.NumRows()
	keep := uniqueRows(t)
	out := t
	if len(keep) != before {
		out = t.Take(keep)
	}
	after := out.NumRows()

	p.report.Printf("Rows before: %d", before)
	p.report.Printf("Rows after: %d", after)
	p.report.Printf("Duplicates removed: %d", before-after)
	p.logger.Debug("Dropped duplicate rows", zap.Int("before", before), zap.Int("after", after))
	return out
}

// uniqueRows returns the indexes of the first occurrence of every distinct row.
func uniqueRows(t *table.Table) []int {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	return keep
}

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

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// Normalize rescales the numeric columns of t in place with one scaler fitted
// over all of them. Boolean columns, including encoder indicators, are left
// alone. An unrecognized method falls back to standard scaling.
func (p *Processor) Normalize(t *table.Table, method string) *table.Table {
	p.report.Section("Normalization")

	numeric := t.ColumnsOfKind(table.Numeric)
	if len(numeric) == 0 {
		p.report.Printf("No numeric columns to normalize")
		return t
	}

	names := make([]string, len(numeric))
	X := make([][]float64, len(numeric))
	for j, c := range numeric {
		names[j] = c.Name()
		X[j] = make([]float64, c.Len())
		for i := range X[j] {
			X[j][i] = c.Float(i)
		}
	}
	p.report.Printf("Numeric columns to normalize: %s", report.List(names))

	mode, ok := ParseScaling(method)
	if !ok {
		p.report.Warnf("Scaling method %q not recognized, using standard scaling", method)
	}

	scaled := FitTransform(NewScaler(mode), X)
	for j, c := range numeric {
		for i, v := range scaled[j] {
			c.SetFloat(i, v)
		}
	}
	p.logger.Debug("Scaled columns", zap.Stringer("method", mode), zap.Strings("columns", names))
	p.report.Printf("Normalization completed")
	return t
}

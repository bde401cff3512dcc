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
	"context"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/loader"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// Load reads src into a table and reports its shape. On failure the error is
// reported and returned with a nil table.
func (p *Processor) Load(ctx context.Context, src loader.Source) (*table.Table, error) {
	t, err := src.Load(ctx)
	if err != nil {
		p.report.Printf("Error loading dataset: %v", err)
		p.logger.Debug("Load failed", zap.String("source", src.Describe()), zap.Error(err))
		return nil, err
	}
	rows, cols := t.Shape()
	p.report.Printf("Dataset loaded: %d rows, %d columns", rows, cols)
	return t, nil
}

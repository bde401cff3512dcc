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
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/loader"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// Run loads src and threads the table through every stage in order:
// explore, impute, deduplicate, encode, normalize. It stops with a nil table
// if loading fails; no later stage runs in that case.
func (p *Processor) Run(ctx context.Context, src loader.Source, opts Options) (*table.Table, error) {
	runID := uuid.NewString()
	run := p.withLogger(p.logger.With(zap.String("run_id", runID)))
	run.logger.Info("Starting preprocessing run",
		zap.String("source", src.Describe()),
		zap.String("imputation", opts.Imputation),
		zap.String("scaling", opts.Scaling))
	started := time.Now()

	run.report.Banner("STARTING PREPROCESSING PIPELINE")

	var t *table.Table
	var err error
	run.stage("load", func() { t, err = run.Load(ctx, src) })
	if err != nil {
		return nil, err
	}

	run.stage("explore", func() { run.Explore(t) })
	run.stage("nulls", func() { t = run.HandleNulls(t, opts.Imputation) })
	run.stage("dedup", func() { t = run.DropDuplicates(t) })
	run.stage("encode", func() { t, err = run.EncodeCategorical(t) })
	if err != nil {
		return nil, fmt.Errorf("categorical encoding failed: %w", err)
	}
	run.stage("normalize", func() { t = run.Normalize(t, opts.Scaling) })

	rows, cols := t.Shape()
	run.report.Banner("PREPROCESSING PIPELINE COMPLETED")
	run.report.Printf("Final dataset: %d rows, %d columns", rows, cols)

	run.logger.Info("Preprocessing run finished",
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Duration("elapsed", time.Since(started)))
	return t, nil
}

func (p *Processor) stage(name string, fn func()) {
	start := time.Now()
	fn()
	p.logger.Debug("Stage finished", zap.String("stage", name), zap.Duration("elapsed", time.Since(start)))
}

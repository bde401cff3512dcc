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

// Package preprocess implements the cleaning stages (load, explore, impute,
// deduplicate, encode, normalize) and the pipeline that runs them in order.
//
// Every stage takes the table produced by the previous one. Stages that keep
// the shape mutate in place and return the same table; stages that reshape
// return a new one. Column classification is read from table.Kind on entry
// to each stage.
package preprocess

import (
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
)

// Processor runs preprocessing stages, narrating them to a report and
// logging diagnostics.
type Processor struct {
	report *report.Reporter
	logger *zap.Logger
}

// New returns a Processor. A nil reporter discards the narration and a nil
// logger discards diagnostics.
func New(r *report.Reporter, logger *zap.Logger) *Processor {
	if r == nil {
		r = report.Discard()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{report: r, logger: logger}
}

// withLogger returns a copy of p logging through logger.
func (p *Processor) withLogger(logger *zap.Logger) *Processor {
	return &Processor{report: p.report, logger: logger}
}

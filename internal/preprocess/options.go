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

import "strings"

// Imputation selects how missing numeric values are filled.
type Imputation int

const (
	ImputeMean Imputation = iota
	ImputeMedian
	// ImputeConstant fills with zero.
	ImputeConstant
)

func (i Imputation) String() string {
	switch i {
	case ImputeMean:
		return "mean"
	case ImputeMedian:
		return "median"
	default:
		return "constant"
	}
}

// ParseImputation maps a strategy name to an Imputation. Unknown names yield
// ImputeConstant and ok == false.
func ParseImputation(s string) (Imputation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean":
		return ImputeMean, true
	case "median":
		return ImputeMedian, true
	case "constant":
		return ImputeConstant, true
	default:
		return ImputeConstant, false
	}
}

// Scaling selects how numeric columns are rescaled.
type Scaling int

const (
	// ScaleStandard centers to zero mean and unit variance.
	ScaleStandard Scaling = iota
	// ScaleMinMax maps each column onto [0, 1].
	ScaleMinMax
)

func (s Scaling) String() string {
	if s == ScaleMinMax {
		return "minmax"
	}
	return "standard"
}

// ParseScaling maps a method name to a Scaling. Unknown names yield
// ScaleStandard and ok == false.
func ParseScaling(s string) (Scaling, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return ScaleStandard, true
	case "minmax":
		return ScaleMinMax, true
	default:
		return ScaleStandard, false
	}
}

// Options are the two mode switches of a pipeline run. Values are free-form;
// unrecognized ones fall back as described on ParseImputation and
// ParseScaling.
type Options struct {
	Imputation string
	Scaling    string
}

// DefaultOptions returns mean imputation and standard scaling.
func DefaultOptions() Options {
	return Options{Imputation: ImputeMean.String(), Scaling: ScaleStandard.String()}
}

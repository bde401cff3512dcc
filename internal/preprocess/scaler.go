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
	"math"

	"github.com/GoogleCloudPlatform/tabprep/internal/stats"
)

// Scaler is a multi-column transform fitted once and applied to all its
// columns. X is column-major: X[j] holds the values of column j. NaN marks a
// missing value; it is ignored by Fit and passed through by Transform.
type Scaler interface {
	Fit(X [][]float64)
	Transform(X [][]float64) [][]float64
}

// NewScaler returns a fresh scaler for method.
func NewScaler(method Scaling) Scaler {
	if method == ScaleMinMax {
		return &MinMaxScaler{}
	}
	return &StandardScaler{}
}

// StandardScaler centers columns on their mean and divides by the population
// standard deviation. A column with zero deviation is divided by 1.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func (s *StandardScaler) Fit(X [][]float64) {
	s.Mean = make([]float64, len(X))
	s.Std = make([]float64, len(X))
	for j, col := range X {
		observed := observedValues(col)
		s.Mean[j] = stats.Mean(observed)
		s.Std[j] = stats.Std(observed, 0)
		if s.Std[j] == 0 || math.IsNaN(s.Std[j]) {
			s.Std[j] = 1
		}
	}
}

func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	return apply(X, func(j int, v float64) float64 { return (v - s.Mean[j]) / s.Std[j] })
}

// MinMaxScaler maps each column's observed range onto [0, 1]. A column with
// zero range is only shifted, so its values become 0.
type MinMaxScaler struct {
	Min   []float64
	Range []float64
}

func (s *MinMaxScaler) Fit(X [][]float64) {
	s.Min = make([]float64, len(X))
	s.Range = make([]float64, len(X))
	for j, col := range X {
		lo, hi := stats.MinMax(observedValues(col))
		s.Min[j] = lo
		s.Range[j] = hi - lo
		if s.Range[j] == 0 || math.IsNaN(s.Range[j]) {
			s.Range[j] = 1
		}
	}
}

func (s *MinMaxScaler) Transform(X [][]float64) [][]float64 {
	return apply(X, func(j int, v float64) float64 { return (v - s.Min[j]) / s.Range[j] })
}

// FitTransform fits s on X and returns the transformed copy.
func FitTransform(s Scaler, X [][]float64) [][]float64 {
	s.Fit(X)
	return s.Transform(X)
}

func apply(X [][]float64, f func(j int, v float64) float64) [][]float64 {
	out := make([][]float64, len(X))
	for j, col := range X {
		out[j] = make([]float64, len(col))
		for i, v := range col {
			if math.IsNaN(v) {
				out[j][i] = v
				continue
			}
			out[j][i] = f(j, v)
		}
	}
	return out
}

func observedValues(col []float64) []float64 {
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

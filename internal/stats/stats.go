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

// Package stats provides the descriptive statistics used by the explorer,
// the imputers and the scalers.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, NaN for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Std returns the standard deviation with ddof delta degrees of freedom
// (0 for population, 1 for sample). NaN when len(x) <= ddof.
func Std(x []float64, ddof int) float64 {
	n := len(x)
	if n <= ddof {
		return math.NaN()
	}
	mean := Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-ddof))
}

// MinMax returns the smallest and largest values, NaN for an empty slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Median returns the median without modifying x.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Quantile returns the q-th quantile (0 <= q <= 1) using linear
// interpolation between closest ranks. x is not modified.
func Quantile(x []float64, q float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	rank := q * float64(n-1)
	lower := int(math.Floor(rank))
	upper := lower + 1
	if upper >= n {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}

// MostFrequent returns the most common value and its count. Ties resolve to
// the smallest value. ok is false for an empty slice.
func MostFrequent(x []string) (value string, count int, ok bool) {
	counts := make(map[string]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	for v, c := range counts {
		if !ok || c > count || (c == count && v < value) {
			value, count, ok = v, c, true
		}
	}
	return value, count, ok
}

// Distinct returns the distinct values of x sorted ascending.
func Distinct(x []string) []string {
	seen := make(map[string]struct{}, len(x))
	var out []string
	for _, v := range x {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

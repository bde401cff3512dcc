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
package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind classifies a column for the pipeline stages.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is a named, typed vector with a null mask. Only the storage slice
// matching Kind is populated.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	strs  []string
	bits  []bool
	nulls []bool
}

// NewNumeric builds a numeric column. NaN values are treated as nulls; nulls
// may be nil.
func NewNumeric(name string, values []float64, nulls []bool) *Column {
	c := &Column{name: name, kind: Numeric, nums: values, nulls: maskOf(len(values), nulls)}
	for i, v := range values {
		if math.IsNaN(v) {
			c.nulls[i] = true
		}
	}
	return c
}

// NewCategorical builds a categorical column; nulls may be nil.
func NewCategorical(name string, values []string, nulls []bool) *Column {
	return &Column{name: name, kind: Categorical, strs: values, nulls: maskOf(len(values), nulls)}
}

// NewBoolean builds a boolean column; nulls may be nil.
func NewBoolean(name string, values []bool, nulls []bool) *Column {
	return &Column{name: name, kind: Boolean, bits: values, nulls: maskOf(len(values), nulls)}
}

func maskOf(n int, nulls []bool) []bool {
	mask := make([]bool, n)
	copy(mask, nulls)
	return mask
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.nulls) }

func (c *Column) IsNull(i int) bool { return c.nulls[i] }

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, null := range c.nulls {
		if null {
			n++
		}
	}
	return n
}

// Float returns the numeric value at i, NaN when null.
func (c *Column) Float(i int) float64 {
	if c.nulls[i] {
		return math.NaN()
	}
	return c.nums[i]
}

func (c *Column) Str(i int) string { return c.strs[i] }

func (c *Column) Bool(i int) bool { return c.bits[i] }

// SetFloat stores v at i and clears its null flag.
func (c *Column) SetFloat(i int, v float64) {
	c.nums[i] = v
	c.nulls[i] = math.IsNaN(v)
}

// SetStr stores v at i and clears its null flag.
func (c *Column) SetStr(i int, v string) {
	c.strs[i] = v
	c.nulls[i] = false
}

// SetBool stores v at i and clears its null flag.
func (c *Column) SetBool(i int, v bool) {
	c.bits[i] = v
	c.nulls[i] = false
}

// NonNullFloats returns the non-null values of a numeric column.
func (c *Column) NonNullFloats() []float64 {
	out := make([]float64, 0, len(c.nums))
	for i, v := range c.nums {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// NonNullStrings returns the non-null values of a categorical column.
func (c *Column) NonNullStrings() []string {
	out := make([]string, 0, len(c.strs))
	for i, v := range c.strs {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// NonNullBools returns the non-null values of a boolean column.
func (c *Column) NonNullBools() []bool {
	out := make([]bool, 0, len(c.bits))
	for i, v := range c.bits {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// DType reports the dtype label of the column (float64, int64, bool or object).
func (c *Column) DType() string {
	switch c.kind {
	case Numeric:
		if c.NullCount() > 0 {
			return "float64"
		}
		for _, v := range c.nums {
			if math.IsInf(v, 0) || v != math.Trunc(v) {
				return "float64"
			}
		}
		return "int64"
	case Boolean:
		return "bool"
	default:
		return "object"
	}
}

// Format renders cell i for display; nulls render as "NaN".
func (c *Column) Format(i int) string {
	if c.nulls[i] {
		return "NaN"
	}
	switch c.kind {
	case Numeric:
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(c.bits[i])
	default:
		return c.strs[i]
	}
}

// key renders cell i for exact-equality comparison. Nulls compare equal to
// each other and -0 equals 0.
func (c *Column) key(i int) string {
	if c.nulls[i] {
		return "\x00"
	}
	switch c.kind {
	case Numeric:
		v := c.nums[i]
		if v == 0 {
			v = 0
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(c.bits[i])
	default:
		return strconv.Quote(c.strs[i])
	}
}

// Take returns a new column holding rows idx, in that order.
func (c *Column) Take(idx []int) *Column {
	out := &Column{name: c.name, kind: c.kind, nulls: make([]bool, len(idx))}
	switch c.kind {
	case Numeric:
		out.nums = make([]float64, len(idx))
	case Boolean:
		out.bits = make([]bool, len(idx))
	default:
		out.strs = make([]string, len(idx))
	}
	for j, i := range idx {
		out.nulls[j] = c.nulls[i]
		switch c.kind {
		case Numeric:
			out.nums[j] = c.nums[i]
		case Boolean:
			out.bits[j] = c.bits[i]
		default:
			out.strs[j] = c.strs[i]
		}
	}
	return out
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	idx := make([]int, c.Len())
	for i := range idx {
		idx[i] = i
	}
	return c.Take(idx)
}

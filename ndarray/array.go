// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ndarray provides a minimal dense n-dimensional array of float64
// values: enough structure to address samples, variables and batch axes of
// the input data. Vectorized arithmetic is left to gonum's floats package.
package ndarray

import (
	"fmt"

	"github.com/stockparfait/errors"

	"gonum.org/v1/gonum/mat"
)

// Array is a dense n-dimensional array stored in row-major order. A
// 0-dimensional Array holds a single scalar value.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

func sizeOf(shape []int) int {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return size
}

// New creates an Array of the given shape backed by data (not copied).
func New(data []float64, shape ...int) (*Array, error) {
	for i, d := range shape {
		if d < 0 {
			return nil, errors.Reason("shape[%d]=%d must be >= 0", i, d)
		}
	}
	if size := sizeOf(shape); size != len(data) {
		return nil, errors.Reason("len(data)=%d doesn't match shape %v of size %d",
			len(data), shape, size)
	}
	sh := make([]int, len(shape))
	copy(sh, shape)
	return &Array{shape: sh, strides: stridesOf(sh), data: data}, nil
}

// Zeros creates a new zero-filled Array. It panics on a negative dimension.
func Zeros(shape ...int) *Array {
	for i, d := range shape {
		if d < 0 {
			panic(errors.Reason("shape[%d]=%d must be >= 0", i, d))
		}
	}
	a, err := New(make([]float64, sizeOf(shape)), shape...)
	if err != nil {
		panic(errors.Annotate(err, "failed to create zeros"))
	}
	return a
}

// Scalar creates a 0-dimensional Array.
func Scalar(x float64) *Array {
	return &Array{data: []float64{x}}
}

// FromMatrix copies a gonum matrix into a new 2-dimensional Array.
func FromMatrix(m mat.Matrix) *Array {
	r, c := m.Dims()
	a := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a.data[i*c+j] = m.At(i, j)
		}
	}
	return a
}

// Matrix returns a 2-dimensional Array as a gonum matrix sharing the data.
func (a *Array) Matrix() (*mat.Dense, error) {
	if len(a.shape) != 2 {
		return nil, errors.Reason("expected 2 dimensions, got %d", len(a.shape))
	}
	if a.shape[0] == 0 || a.shape[1] == 0 {
		return nil, errors.Reason("cannot make a matrix of shape %v", a.shape)
	}
	return mat.NewDense(a.shape[0], a.shape[1], a.data), nil
}

// Shape of the Array. The caller must not modify the result.
func (a *Array) Shape() []int { return a.shape }

// NDim is the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Size is the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Data is the underlying row-major storage.
func (a *Array) Data() []float64 { return a.data }

// Value returns the value of a 0-dimensional Array. It panics otherwise.
func (a *Array) Value() float64 {
	if len(a.shape) != 0 {
		panic(errors.Reason("Value() of a %d-dimensional array", len(a.shape)))
	}
	return a.data[0]
}

func (a *Array) offset(index []int) int {
	if len(index) != len(a.shape) {
		panic(errors.Reason("index %v doesn't match shape %v", index, a.shape))
	}
	off := 0
	for i, x := range index {
		if x < 0 || x >= a.shape[i] {
			panic(errors.Reason("index %v out of range for shape %v", index, a.shape))
		}
		off += x * a.strides[i]
	}
	return off
}

// At returns the element at the index. It panics if the index is invalid.
func (a *Array) At(index ...int) float64 {
	return a.data[a.offset(index)]
}

// Set the element at the index.
func (a *Array) Set(x float64, index ...int) {
	a.data[a.offset(index)] = x
}

// Lane copies the 1-dimensional slice of elements along the axis, with all
// the other coordinates fixed by index. The value of index[axis] is ignored.
func (a *Array) Lane(axis int, index []int) []float64 {
	if axis < 0 || axis >= len(a.shape) {
		panic(errors.Reason("axis=%d out of range for %d dimensions", axis, len(a.shape)))
	}
	idx := make([]int, len(index))
	copy(idx, index)
	idx[axis] = 0
	if a.shape[axis] == 0 {
		return []float64{}
	}
	off := a.offset(idx)
	res := make([]float64, a.shape[axis])
	for i := range res {
		res[i] = a.data[off+i*a.strides[axis]]
	}
	return res
}

// Unravel converts a flat row-major offset into an index for the shape.
func Unravel(flat int, shape []int) []int {
	index := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			continue
		}
		index[i] = flat % shape[i]
		flat /= shape[i]
	}
	return index
}

// CheckAxis validates that the axis exists in an array of ndim dimensions.
func CheckAxis(axis, ndim int) error {
	if axis < 0 || axis >= ndim {
		return errors.Reason("axis=%d out of range for %d dimensions", axis, ndim)
	}
	return nil
}

// Without returns the shape with the listed axes removed.
func Without(shape []int, axes ...int) []int {
	res := []int{}
	for i, d := range shape {
		skip := false
		for _, ax := range axes {
			if i == ax {
				skip = true
				break
			}
		}
		if !skip {
			res = append(res, d)
		}
	}
	return res
}

// String implements fmt.Stringer.
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return fmt.Sprintf("%g", a.data[0])
	}
	return fmt.Sprintf("Array%v%v", a.shape, a.data)
}

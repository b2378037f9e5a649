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

package combinatorics

import (
	"github.com/stockparfait/iterator"
)

// SimplexIterator enumerates all the d-tuples of positive integers
// (i_1, ..., i_d) such that i_1 + ... + i_d = s and i_j <= maxVals[j]. The
// tuples are generated in lexicographically ascending order.
type SimplexIterator struct {
	s       int
	maxVals []int
	suffix  []int // suffix[j] = sum(maxVals[j:])
	cur     []int
	started bool
	done    bool
}

var _ iterator.Iterator[[]int] = &SimplexIterator{}

// Simplex creates a new SimplexIterator. It yields nothing when s <= 0,
// maxVals is empty, or no tuple satisfies the constraints. The maxVals slice
// is not modified and must not be modified during the iteration.
func Simplex(s int, maxVals []int) *SimplexIterator {
	d := len(maxVals)
	suffix := make([]int, d+1)
	for j := d - 1; j >= 0; j-- {
		suffix[j] = suffix[j+1] + maxVals[j]
	}
	return &SimplexIterator{
		s:       s,
		maxVals: maxVals,
		suffix:  suffix,
		cur:     make([]int, d),
	}
}

// fill assigns the lexicographically smallest feasible values to the
// positions j..d-1 which must sum up to r. It returns false if no assignment
// exists.
func (it *SimplexIterator) fill(j, r int) bool {
	d := len(it.maxVals)
	for p := j; p < d-1; p++ {
		rest := d - p - 1 // positions after p, each taking at least 1
		x := 1
		if lo := r - it.suffix[p+1]; lo > x {
			x = lo
		}
		hi := it.maxVals[p]
		if r-rest < hi {
			hi = r - rest
		}
		if x > hi {
			return false
		}
		it.cur[p] = x
		r -= x
	}
	if r < 1 || r > it.maxVals[d-1] {
		return false
	}
	it.cur[d-1] = r
	return true
}

// advance moves cur to the next tuple in lexicographic order.
func (it *SimplexIterator) advance() bool {
	d := len(it.maxVals)
	prefix := make([]int, d)
	for p := 1; p < d; p++ {
		prefix[p] = prefix[p-1] + it.cur[p-1]
	}
	for p := d - 2; p >= 0; p-- {
		r := it.s - prefix[p]
		x := it.cur[p] + 1
		if x > it.maxVals[p] || x > r-(d-p-1) {
			continue
		}
		it.cur[p] = x
		if it.fill(p+1, r-x) {
			return true
		}
	}
	return false
}

// Next implements iterator.Iterator. Every returned tuple is a newly
// allocated slice.
func (it *SimplexIterator) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		if it.s <= 0 || len(it.maxVals) == 0 || !it.fill(0, it.s) {
			it.done = true
			return nil, false
		}
	} else if !it.advance() {
		it.done = true
		return nil, false
	}
	res := make([]int, len(it.cur))
	copy(res, it.cur)
	return res, true
}

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

// MultisetIterator enumerates all the multisets of a given size over the
// values 0..d-1, each represented as a non-decreasing slice. The multisets are
// generated in lexicographic order, e.g. for d=2 and size 2: [0 0], [0 1],
// [1 1]. For k-statistics, these are all the distinct mode tuples of a given
// order over d variables.
type MultisetIterator struct {
	d       int
	cur     []int
	started bool
	done    bool
}

var _ iterator.Iterator[[]int] = &MultisetIterator{}

// Multisets creates a new MultisetIterator. It yields nothing when d <= 0 or
// size <= 0.
func Multisets(d, size int) *MultisetIterator {
	if size < 0 {
		size = 0
	}
	return &MultisetIterator{d: d, cur: make([]int, size)}
}

// Next implements iterator.Iterator.
func (it *MultisetIterator) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		if it.d <= 0 || len(it.cur) == 0 {
			it.done = true
			return nil, false
		}
	} else {
		i := len(it.cur) - 1
		for ; i >= 0 && it.cur[i] == it.d-1; i-- {
		}
		if i < 0 {
			it.done = true
			return nil, false
		}
		it.cur[i]++
		for j := i + 1; j < len(it.cur); j++ {
			it.cur[j] = it.cur[i]
		}
	}
	res := make([]int, len(it.cur))
	copy(res, it.cur)
	return res, true
}

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

// PartitionIterator enumerates all the partitions of a sequence of items into
// non-empty blocks. Items are distinguished by their position, not by value,
// so a sequence of n items always yields exactly B(n) partitions (the Bell
// number), and nothing for an empty sequence.
//
// Partitions are generated from restricted growth strings a_0..a_{n-1}, where
// a_i is the block of the i'th item, a_0 = 0 and a_i <= 1 + max(a_0..a_{i-1}).
// The first partition is the single block of all items, the last one is all
// singletons. Blocks are ordered by their first item, and the items within a
// block retain their relative order in the original sequence.
type PartitionIterator[T any] struct {
	items   []T
	rgs     []int // restricted growth string
	maxs    []int // maxs[i] = max(rgs[0..i])
	started bool
	done    bool
}

var _ iterator.Iterator[[][]int] = &PartitionIterator[int]{}

// SetPartitions creates a new PartitionIterator over the items. The items
// slice must not be modified during the iteration.
func SetPartitions[T any](items []T) *PartitionIterator[T] {
	return &PartitionIterator[T]{
		items: items,
		rgs:   make([]int, len(items)),
		maxs:  make([]int, len(items)),
	}
}

// IndexPartitions iterates over the partitions of the positions 0..n-1.
func IndexPartitions(n int) *PartitionIterator[int] {
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return SetPartitions(idx)
}

func (it *PartitionIterator[T]) advance() bool {
	n := len(it.rgs)
	for i := n - 1; i > 0; i-- {
		if it.rgs[i] > it.maxs[i-1] {
			continue // already opens a new block, cannot grow further
		}
		it.rgs[i]++
		it.maxs[i] = it.maxs[i-1]
		if it.rgs[i] > it.maxs[i] {
			it.maxs[i] = it.rgs[i]
		}
		for j := i + 1; j < n; j++ {
			it.rgs[j] = 0
			it.maxs[j] = it.maxs[i]
		}
		return true
	}
	return false
}

func (it *PartitionIterator[T]) partition() [][]T {
	n := len(it.rgs)
	blocks := make([][]T, it.maxs[n-1]+1)
	for i, b := range it.rgs {
		blocks[b] = append(blocks[b], it.items[i])
	}
	return blocks
}

// Next implements iterator.Iterator. Each partition is newly allocated.
func (it *PartitionIterator[T]) Next() ([][]T, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		if len(it.items) == 0 {
			it.done = true
			return nil, false
		}
	} else if !it.advance() {
		it.done = true
		return nil, false
	}
	return it.partition(), true
}

// BlockSizes lists the sizes of the partition blocks in the order of blocks.
func BlockSizes[T any](partition [][]T) []int {
	sizes := make([]int, len(partition))
	for i, b := range partition {
		sizes[i] = len(b)
	}
	return sizes
}

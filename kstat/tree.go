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

package kstat

import (
	"github.com/stockparfait/errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PartitionTree stores values keyed by integer partitions, i.e. multisets of
// positive integers such as the block sizes of a set partition. A key is
// sorted in ascending order, and each of its parts selects a child node
// starting from the root. Therefore, permutations of the same parts address
// the same node.
//
// The number of distinct keys for partitions of i is the partition number
// p(i), which grows much slower than the number B(i) of set partitions
// sharing these keys. For instance, p(20) = 627, while B(20) ~ 5*10^13.
//
// The zero value is an empty tree ready for use. Nodes are never removed.
// PartitionTree is not safe for concurrent modification.
type PartitionTree[V any] struct {
	// AssumeSorted skips sorting of keys when they are known to be in
	// ascending order. An unsorted key then causes a panic in Set and an absent
	// result in Get.
	AssumeSorted bool
	root         treeNode[V]
}

type treeNode[V any] struct {
	minBranch int // smallest part allowed for the children
	value     V
	hasValue  bool
	children  map[int]*treeNode[V]
}

// NewPartitionTree creates an empty tree.
func NewPartitionTree[V any](assumeSorted bool) *PartitionTree[V] {
	return &PartitionTree[V]{AssumeSorted: assumeSorted}
}

func (t *PartitionTree[V]) normalize(parts []int) []int {
	if t.AssumeSorted {
		return parts
	}
	sorted := make([]int, len(parts))
	copy(sorted, parts)
	slices.Sort(sorted)
	return sorted
}

// Get the value stored for the partition. The second result is false if the
// value was never set.
func (t *PartitionTree[V]) Get(parts []int) (V, bool) {
	var zero V
	n := &t.root
	for _, p := range t.normalize(parts) {
		if p < n.minBranch {
			return zero, false
		}
		child, ok := n.children[p]
		if !ok {
			return zero, false
		}
		n = child
	}
	if !n.hasValue {
		return zero, false
	}
	return n.value, true
}

// Set the value for the partition, overwriting any previous value. Parts must
// be >= 1; with AssumeSorted, they must also be in ascending order.
func (t *PartitionTree[V]) Set(parts []int, v V) {
	if t.root.minBranch == 0 {
		t.root.minBranch = 1
	}
	n := &t.root
	for _, p := range t.normalize(parts) {
		if p < n.minBranch {
			panic(errors.Reason("part %d < min branch %d in %v", p, n.minBranch, parts))
		}
		if n.children == nil {
			n.children = make(map[int]*treeNode[V])
		}
		child, ok := n.children[p]
		if !ok {
			child = &treeNode[V]{minBranch: p}
			n.children[p] = child
		}
		n = child
	}
	n.value = v
	n.hasValue = true
}

// Size is the total number of nodes in the tree, including the root.
func (t *PartitionTree[V]) Size() int {
	return t.root.size()
}

func (n *treeNode[V]) size() int {
	s := 1
	for _, c := range n.children {
		s += c.size()
	}
	return s
}

// Depth is the number of nodes on the longest path from the root, including
// the root itself. An empty tree has depth 1.
func (t *PartitionTree[V]) Depth() int {
	return t.root.depth()
}

func (n *treeNode[V]) depth() int {
	d := 0
	for _, c := range n.children {
		if cd := c.depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// Len is the number of stored values.
func (t *PartitionTree[V]) Len() int {
	count := 0
	t.Walk(func([]int, V) { count++ })
	return count
}

// Walk calls f for every stored value with its sorted partition, in
// lexicographic order of partitions. The partition slice is reused between
// calls and must be copied if retained.
func (t *PartitionTree[V]) Walk(f func(parts []int, v V)) {
	t.root.walk(nil, f)
}

func (n *treeNode[V]) walk(prefix []int, f func([]int, V)) {
	if n.hasValue {
		f(prefix, n.value)
	}
	keys := maps.Keys(n.children)
	slices.Sort(keys)
	for _, k := range keys {
		n.children[k].walk(append(prefix, k), f)
	}
}

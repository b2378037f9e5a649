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
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Coefficients memoizes the k-statistic coefficients computed by Coef. Since
// a coefficient depends on both the sample size and the block size shape,
// the values are stored in a separate PartitionTree for each sample size. It
// is therefore safe to reuse the same instance for data of different sizes.
//
// Coefficients is safe for concurrent use. Concurrent Get calls may compute
// the same missing coefficient more than once.
type Coefficients struct {
	mu     sync.Mutex
	trees  map[int]*PartitionTree[float64]
	hits   int
	misses int
}

// NewCoefficients creates an empty coefficient cache.
func NewCoefficients() *Coefficients {
	return &Coefficients{trees: make(map[int]*PartitionTree[float64])}
}

// Get the coefficient for the sample size n and the block sizes, computing
// and storing it when missing.
func (c *Coefficients) Get(n int, blockSizes []int) float64 {
	c.mu.Lock()
	v, ok := c.tree(n).Get(blockSizes)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	if ok {
		return v
	}
	v = Coef(n, blockSizes)
	c.Set(n, blockSizes, v)
	return v
}

// Lookup a cached coefficient without computing it.
func (c *Coefficients) Lookup(n int, blockSizes []int) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.trees[n]
	if !ok {
		return 0, false
	}
	return t.Get(blockSizes)
}

// Set a coefficient explicitly, e.g. when restoring a saved cache.
func (c *Coefficients) Set(n int, blockSizes []int, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree(n).Set(blockSizes, v)
}

func (c *Coefficients) tree(n int) *PartitionTree[float64] {
	if c.trees == nil {
		c.trees = make(map[int]*PartitionTree[float64])
	}
	t, ok := c.trees[n]
	if !ok {
		t = NewPartitionTree[float64](false)
		c.trees[n] = t
	}
	return t
}

// Tree for the sample size n, or nil if nothing was cached for it. The tree
// must not be used concurrently with Get or Set.
func (c *Coefficients) Tree(n int) *PartitionTree[float64] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trees[n]
}

func (c *Coefficients) sampleSizes() []int {
	ns := maps.Keys(c.trees)
	slices.Sort(ns)
	return ns
}

// SampleSizes with cached coefficients, in ascending order.
func (c *Coefficients) SampleSizes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleSizes()
}

// Len is the total number of cached coefficients.
func (c *Coefficients) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := 0
	for _, t := range c.trees {
		l += t.Len()
	}
	return l
}

// Hits is the number of Get calls served from the cache.
func (c *Coefficients) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Misses is the number of Get calls which computed a new coefficient.
func (c *Coefficients) Misses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

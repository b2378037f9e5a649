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

// Package kstat computes unbiased multivariate k-statistics, the estimators of
// joint cumulants, from sample data.
//
// A k-statistic for a multiset of variables (modes) is a weighted sum, over
// all the set partitions of the modes, of products of power sums. A power sum
// for a block of modes is the sum over the samples of the product of the
// block's variables. The weight of a partition depends only on the sample
// size and on the sizes of its blocks, and is memoized in Coefficients.
//
// The cost grows as the Bell number of the order of the statistic, which
// makes orders much above 10 impractical.
package kstat

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/moments/combinatorics"
	"github.com/stockparfait/moments/ndarray"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// powerSums computes and memoizes the power sums for blocks of modes over
// all the batch elements.
type powerSums struct {
	lanes map[int][][]float64 // mode -> batch element -> samples
	batch int
	cache map[string][]float64
}

func blockKey(block []int) string {
	sorted := make([]int, len(block))
	copy(sorted, block)
	slices.Sort(sorted)
	var b strings.Builder
	for i, m := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(m))
	}
	return b.String()
}

func (p *powerSums) get(block []int) []float64 {
	key := blockKey(block)
	if s, ok := p.cache[key]; ok {
		return s
	}
	s := make([]float64, p.batch)
	for b := range s {
		prod := make([]float64, len(p.lanes[block[0]][b]))
		copy(prod, p.lanes[block[0]][b])
		for _, m := range block[1:] {
			floats.Mul(prod, p.lanes[m][b])
		}
		s[b] = floats.Sum(prod)
	}
	p.cache[key] = s
	return s
}

func checkArgs(data *ndarray.Array, modes []int, sampleAxis, variableAxis int) error {
	if data == nil {
		return errors.Reason("data is nil")
	}
	if data.NDim() < 2 {
		return errors.Reason("data must have at least 2 dimensions, got %d", data.NDim())
	}
	if err := ndarray.CheckAxis(sampleAxis, data.NDim()); err != nil {
		return errors.Annotate(err, "invalid sample axis")
	}
	if err := ndarray.CheckAxis(variableAxis, data.NDim()); err != nil {
		return errors.Annotate(err, "invalid variable axis")
	}
	if sampleAxis == variableAxis {
		return errors.Reason("sample and variable axes must differ, both are %d", sampleAxis)
	}
	if len(modes) == 0 {
		return errors.Reason("modes must not be empty")
	}
	d := data.Shape()[variableAxis]
	for _, m := range modes {
		if m < 0 || m >= d {
			return errors.Reason("mode %d out of range for %d variables", m, d)
		}
	}
	return nil
}

// KStat computes the k-statistic for the multiset of modes (variable indices)
// of the data. The data must have a sample axis and a variable axis; any other
// axes are batch axes, and the k-statistic is computed independently for each
// of their elements. The result has the shape of the data with the sample and
// variable axes removed; for 2-dimensional data it is 0-dimensional, and its
// Value() is the k-statistic.
//
// Repeated modes request higher-order statistics of the same variable, e.g.
// modes {0, 0} yields the variance of the 0'th variable, and {0, 1} the
// covariance of the first two variables.
//
// The coefficients are looked up in and added to coefs, which may be shared
// across calls; when nil, a temporary cache is used. The number of samples
// must be at least len(modes), which is not checked.
func KStat(data *ndarray.Array, modes []int, sampleAxis, variableAxis int, coefs *Coefficients) (*ndarray.Array, error) {
	if err := checkArgs(data, modes, sampleAxis, variableAxis); err != nil {
		return nil, errors.Annotate(err, "invalid arguments for modes %v", modes)
	}
	if coefs == nil {
		coefs = NewCoefficients()
	}
	shape := data.Shape()
	n := shape[sampleAxis]
	batchShape := ndarray.Without(shape, sampleAxis, variableAxis)
	res := ndarray.Zeros(batchShape...)
	batch := res.Size()

	ps := &powerSums{
		lanes: make(map[int][][]float64),
		batch: batch,
		cache: make(map[string][]float64),
	}
	for _, m := range modes {
		if _, ok := ps.lanes[m]; ok {
			continue
		}
		lanes := make([][]float64, batch)
		for b := range lanes {
			lanes[b] = data.Lane(sampleAxis, fullIndex(
				ndarray.Unravel(b, batchShape), sampleAxis, variableAxis, m))
		}
		ps.lanes[m] = lanes
	}

	acc := iterator.Reduce[[][]int, []float64](combinatorics.SetPartitions(modes), res.Data(),
		func(pi [][]int, acc []float64) []float64 {
			coef := coefs.Get(n, combinatorics.BlockSizes(pi))
			prod := make([]float64, batch)
			copy(prod, ps.get(pi[0]))
			for _, block := range pi[1:] {
				floats.Mul(prod, ps.get(block))
			}
			floats.AddScaled(acc, coef, prod)
			return acc
		})
	return ndarray.New(acc, batchShape...)
}

// fullIndex inserts the sample and the variable coordinates into the batch
// index. The sample coordinate is set to 0.
func fullIndex(batchIndex []int, sampleAxis, variableAxis, variable int) []int {
	idx := make([]int, len(batchIndex)+2)
	j := 0
	for i := range idx {
		switch i {
		case sampleAxis:
		case variableAxis:
			idx[i] = variable
		default:
			idx[i] = batchIndex[j]
			j++
		}
	}
	return idx
}

// KStat2D computes the k-statistic for a matrix whose rows are the samples
// and columns are the variables.
func KStat2D(data mat.Matrix, modes []int, coefs *Coefficients) (float64, error) {
	res, err := KStat(ndarray.FromMatrix(data), modes, 0, 1, coefs)
	if err != nil {
		return 0, err
	}
	return res.Value(), nil
}

// KStats computes the k-statistics for each multiset of modes in parallel
// using up to workers goroutines (all CPUs when workers <= 0), sharing the
// coefficient cache among them. When coefs is nil, a new cache is used for
// this call only. The results are in the order of modes.
func KStats(ctx context.Context, data *ndarray.Array, modes [][]int, sampleAxis, variableAxis int, coefs *Coefficients, workers int) ([]*ndarray.Array, error) {
	if coefs == nil {
		coefs = NewCoefficients()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	type job struct {
		index int
		modes []int
	}
	type result struct {
		index int
		k     *ndarray.Array
		err   error
	}
	jobs := make([]job, len(modes))
	for i, m := range modes {
		jobs[i] = job{index: i, modes: m}
	}
	f := func(j job) result {
		k, err := KStat(data, j.modes, sampleAxis, variableAxis, coefs)
		if err == nil {
			logging.Debugf(ctx, "k%s = %s", FormatModes(j.modes), k)
		}
		return result{index: j.index, k: k, err: err}
	}
	pm := iterator.ParallelMap(ctx, workers, iterator.FromSlice(jobs), f)

	res := make([]*ndarray.Array, len(modes))
	errs := make([]error, len(modes))
	iterator.Reduce[result, []*ndarray.Array](pm, res, func(r result, acc []*ndarray.Array) []*ndarray.Array {
		errs[r.index] = r.err
		acc[r.index] = r.k
		return acc
	})
	var msgs []string
	for i, err := range errs {
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("k%s: %s", FormatModes(modes[i]), err.Error()))
		}
	}
	if len(msgs) > 0 {
		return nil, errors.Reason("failed to compute %d of %d k-statistics: %s",
			len(msgs), len(modes), strings.Join(msgs, "; "))
	}
	logging.Infof(ctx, "computed %d k-statistics; coefficient cache: %d entries, %d hits, %d misses",
		len(modes), coefs.Len(), coefs.Hits(), coefs.Misses())
	return res, nil
}

// ModesUpTo lists all the distinct mode multisets over d variables of orders
// 1 through maxOrder.
func ModesUpTo(d, maxOrder int) [][]int {
	var res [][]int
	for order := 1; order <= maxOrder; order++ {
		res = iterator.Reduce[[]int, [][]int](combinatorics.Multisets(d, order), res,
			func(m []int, acc [][]int) [][]int { return append(acc, m) })
	}
	return res
}

// FormatModes prints modes as a compact subscript, e.g. "(0,1,1)".
func FormatModes(modes []int) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = strconv.Itoa(m)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ","))
}

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
	"math"

	"github.com/stockparfait/moments/combinatorics"
)

// surjections computes b! * S(m, b), the number of surjections from an m-set
// onto a b-set, where S is the Stirling number of the second kind, by
// inclusion-exclusion: sum_{i=0}^{b-1} (-1)^i C(b, i) (b-i)^m.
func surjections(m, b int) float64 {
	res := 0.0
	for i := 0; i < b; i++ {
		term := float64(combinatorics.Binomial(b, i)) * math.Pow(float64(b-i), float64(m))
		if i%2 == 0 {
			res += term
		} else {
			res -= term
		}
	}
	return res
}

// Coef computes the coefficient of the product of power sums for a partition
// with the given block sizes in the expansion of a k-statistic over a sample
// of size n:
//
//	c = (-1)^(L+1) sum_{s=L}^{U} (s-1)!/(n)_s sum_b prod_k b_k! S(m_k, b_k) / b_k
//
// where m_k are the block sizes, L is the number of blocks, U = sum(m_k), and
// b ranges over the tuples of 1 <= b_k <= m_k summing to s.
//
// The sample size must be at least the order U of the statistic, otherwise
// the result is meaningless (possibly Inf or NaN). This is not checked.
func Coef(n int, blockSizes []int) float64 {
	lb := len(blockSizes)
	ub := 0
	for _, m := range blockSizes {
		ub += m
	}
	sumOverSizes := 0.0
	for s := lb; s <= ub; s++ {
		sumOverSimplex := 0.0
		it := combinatorics.Simplex(s, blockSizes)
		for b, ok := it.Next(); ok; b, ok = it.Next() {
			prod := 1.0
			for k, m := range blockSizes {
				prod *= surjections(m, b[k]) / float64(b[k])
			}
			sumOverSimplex += prod
		}
		sumOverSizes += combinatorics.FallingFactorialFloat(s-1, s-1) * sumOverSimplex /
			combinatorics.FallingFactorialFloat(n, s)
	}
	if lb%2 == 0 {
		return -sumOverSizes
	}
	return sumOverSizes
}

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

// FallingFactorial computes (n)_i = n(n-1)...(n-i+1). For i <= 0 it returns
// 1. No special care is taken for n < i, in which case the product includes
// zero or negative factors, exactly as the mathematical definition.
//
// The result silently overflows int64 for large arguments, e.g. (21)_21.
func FallingFactorial(n, i int) int64 {
	res := int64(1)
	for j := 0; j < i; j++ {
		res *= int64(n - j)
	}
	return res
}

// FallingFactorialFloat is FallingFactorial computed in floating point. It
// does not overflow for large n, e.g. sample sizes in the millions.
func FallingFactorialFloat(n, i int) float64 {
	res := 1.0
	for j := 0; j < i; j++ {
		res *= float64(n - j)
	}
	return res
}

// Factorial computes n!, with 0! = 1. Negative n yields 1.
func Factorial(n int) int64 {
	return FallingFactorial(n, n)
}

// Binomial computes the binomial coefficient "n choose k" for 0 <= k <= n,
// which is (n)_k / k!. The result is always an exact integer. For k < 0 or
// k > n it returns 0.
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	// Every intermediate value res*(n-i)/(i+1) = C(n, i+1) is an integer, which
	// keeps the division exact and the magnitude of intermediates small.
	res := int64(1)
	for i := 0; i < k; i++ {
		res = res * int64(n-i) / int64(i+1)
	}
	return res
}

// BellNumber computes B(n), the number of set partitions of an n-element
// set. B(0) = 1 by convention, though SetPartitions yields nothing for an
// empty input. Overflows int64 for n > 25.
func BellNumber(n int) int64 {
	if n < 0 {
		return 0
	}
	// Bell triangle: each row starts with the last element of the previous row.
	row := []int64{1}
	for i := 0; i < n; i++ {
		next := make([]int64, len(row)+1)
		next[0] = row[len(row)-1]
		for j := range row {
			next[j+1] = next[j] + row[j]
		}
		row = next
	}
	return row[0]
}

// PartitionNumber computes p(n), the number of integer partitions of n, which
// bounds the number of distinct block size shapes among the B(n) set
// partitions.
func PartitionNumber(n int) int64 {
	if n < 0 {
		return 0
	}
	p := make([]int64, n+1)
	p[0] = 1
	for part := 1; part <= n; part++ {
		for m := part; m <= n; m++ {
			p[m] += p[m-part]
		}
	}
	return p[n]
}

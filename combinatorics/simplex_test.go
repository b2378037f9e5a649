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
	"fmt"
	"testing"

	"github.com/stockparfait/iterator"

	. "github.com/smartystreets/goconvey/convey"
)

func collect[T any](it iterator.Iterator[T]) []T {
	return iterator.Reduce[T, []T](it, nil, func(x T, acc []T) []T {
		return append(acc, x)
	})
}

// countSimplex is a brute-force count of the simplex tuples.
func countSimplex(s int, maxVals []int) int {
	if len(maxVals) == 0 {
		return 0
	}
	if len(maxVals) == 1 {
		if s >= 1 && s <= maxVals[0] {
			return 1
		}
		return 0
	}
	count := 0
	for i := 1; i <= maxVals[0]; i++ {
		count += countSimplex(s-i, maxVals[1:])
	}
	return count
}

func TestSimplex(t *testing.T) {
	t.Parallel()

	Convey("Simplex works", t, func() {
		Convey("empty cases", func() {
			So(collect[[]int](Simplex(1, []int{1, 1})), ShouldBeEmpty)
			So(collect[[]int](Simplex(0, []int{1})), ShouldBeEmpty)
			So(collect[[]int](Simplex(-3, []int{5, 5})), ShouldBeEmpty)
			So(collect[[]int](Simplex(3, nil)), ShouldBeEmpty)
			So(collect[[]int](Simplex(7, []int{1, 2, 3})), ShouldBeEmpty)
		})

		Convey("one-element cases", func() {
			So(collect[[]int](Simplex(1, []int{1})), ShouldResemble, [][]int{{1}})
			So(collect[[]int](Simplex(5, []int{1, 2, 3, 4, 5})), ShouldResemble,
				[][]int{{1, 1, 1, 1, 1}})
			So(collect[[]int](Simplex(2, []int{1})), ShouldBeEmpty)
		})

		Convey("simple cases in lexicographic order", func() {
			So(collect[[]int](Simplex(4, []int{1, 2, 3})), ShouldResemble,
				[][]int{{1, 1, 2}, {1, 2, 1}})
			So(collect[[]int](Simplex(5, []int{1, 2, 3})), ShouldResemble,
				[][]int{{1, 1, 3}, {1, 2, 2}})
			So(collect[[]int](Simplex(4, []int{3, 3})), ShouldResemble,
				[][]int{{1, 3}, {2, 2}, {3, 1}})
		})

		Convey("tuples are valid and unique", func() {
			cases := [][]int{{1, 2, 3}, {4, 1, 3, 2}, {2, 2, 2}, {5}, {3, 1, 1, 4, 2}}
			for _, maxVals := range cases {
				total := 0
				for _, m := range maxVals {
					total += m
				}
				for s := 0; s <= total+1; s++ {
					tuples := collect[[]int](Simplex(s, maxVals))
					seen := make(map[string]struct{})
					for _, tp := range tuples {
						So(len(tp), ShouldEqual, len(maxVals))
						sum := 0
						for j, x := range tp {
							So(x, ShouldBeGreaterThanOrEqualTo, 1)
							So(x, ShouldBeLessThanOrEqualTo, maxVals[j])
							sum += x
						}
						So(sum, ShouldEqual, s)
						key := fmt.Sprint(tp)
						_, dup := seen[key]
						So(dup, ShouldBeFalse)
						seen[key] = struct{}{}
					}
					So(len(tuples), ShouldEqual, countSimplex(s, maxVals))
				}
			}
		})

		Convey("iterators are independent", func() {
			it1 := Simplex(4, []int{3, 3})
			it2 := Simplex(4, []int{3, 3})
			a, _ := it1.Next()
			b, _ := it2.Next()
			c, _ := it1.Next()
			So(a, ShouldResemble, []int{1, 3})
			So(b, ShouldResemble, []int{1, 3})
			So(c, ShouldResemble, []int{2, 2})
		})

		Convey("exhausted iterator stays exhausted", func() {
			it := Simplex(1, []int{1})
			_, ok := it.Next()
			So(ok, ShouldBeTrue)
			_, ok = it.Next()
			So(ok, ShouldBeFalse)
			_, ok = it.Next()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMultisets(t *testing.T) {
	t.Parallel()

	Convey("Multisets works", t, func() {
		So(collect[[]int](Multisets(2, 2)), ShouldResemble,
			[][]int{{0, 0}, {0, 1}, {1, 1}})
		So(collect[[]int](Multisets(3, 1)), ShouldResemble,
			[][]int{{0}, {1}, {2}})
		So(collect[[]int](Multisets(0, 2)), ShouldBeEmpty)
		So(collect[[]int](Multisets(3, 0)), ShouldBeEmpty)

		for d := 1; d <= 5; d++ {
			for size := 1; size <= 4; size++ {
				sets := collect[[]int](Multisets(d, size))
				So(len(sets), ShouldEqual, Binomial(d+size-1, size))
				for _, m := range sets {
					for i := 1; i < len(m); i++ {
						So(m[i-1], ShouldBeLessThanOrEqualTo, m[i])
					}
				}
			}
		}
	})
}

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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPartitionTree(t *testing.T) {
	t.Parallel()

	Convey("PartitionTree works", t, func() {
		tree := NewPartitionTree[string](false)
		tree.Set([]int{3, 1, 2}, "apple")
		tree.Set([]int{1, 1, 4}, "banana")
		tree.Set([]int{}, "strawberry")
		tree.Set([]int{2}, "pineapple")
		tree.Set([]int{1, 2, 3, 1}, "mango")
		tree.Set([]int{1, 2}, "kiwi")
		tree.Set([]int{2, 1, 3}, "overwritten")

		get := func(parts ...int) string {
			v, ok := tree.Get(parts)
			if !ok {
				return "<absent>"
			}
			return v
		}

		Convey("Get", func() {
			So(get(), ShouldEqual, "strawberry")
			So(get(2), ShouldEqual, "pineapple")
			So(get(1, 2), ShouldEqual, "kiwi")
			So(get(2, 1), ShouldEqual, "kiwi")
			So(get(1, 2, 3), ShouldEqual, "overwritten")
			So(get(3, 2, 1), ShouldEqual, "overwritten")
			So(get(1, 4, 1), ShouldEqual, "banana")
			So(get(3, 2, 1, 1), ShouldEqual, "mango")
			So(get(1), ShouldEqual, "<absent>")
			So(get(3), ShouldEqual, "<absent>")
			So(get(1, 3), ShouldEqual, "<absent>")
			So(get(1, 2, 3, 4), ShouldEqual, "<absent>")
		})

		Convey("Get does not modify the key", func() {
			key := []int{3, 1, 2}
			tree.Get(key)
			So(key, ShouldResemble, []int{3, 1, 2})
		})

		Convey("Size, Depth and Len", func() {
			So(tree.Size(), ShouldEqual, 9)
			So(tree.Depth(), ShouldEqual, 5)
			So(tree.Len(), ShouldEqual, 6)
		})

		Convey("Walk", func() {
			var keys [][]int
			var values []string
			tree.Walk(func(parts []int, v string) {
				k := make([]int, len(parts))
				copy(k, parts)
				keys = append(keys, k)
				values = append(values, v)
			})
			So(keys, ShouldResemble, [][]int{
				{}, {1, 1, 2, 3}, {1, 1, 4}, {1, 2}, {1, 2, 3}, {2}})
			So(values, ShouldResemble, []string{
				"strawberry", "mango", "banana", "kiwi", "overwritten", "pineapple"})
		})

		Convey("nodes are created lazily and never removed", func() {
			size := tree.Size()
			tree.Set([]int{1, 2}, "kiwi again")
			So(tree.Size(), ShouldEqual, size)
			tree.Set([]int{5, 5}, "new")
			So(tree.Size(), ShouldEqual, size+2)
			So(get(5, 5), ShouldEqual, "new")
			So(get(5), ShouldEqual, "<absent>")
		})

		Convey("invalid parts", func() {
			So(func() { tree.Set([]int{0, 1}, "zero") }, ShouldPanic)
		})
	})

	Convey("PartitionTree with sorted keys", t, func() {
		tree := NewPartitionTree[int](true)
		tree.Set([]int{1, 2, 2}, 122)
		v, ok := tree.Get([]int{1, 2, 2})
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 122)

		_, ok = tree.Get([]int{2, 1, 2})
		So(ok, ShouldBeFalse)
		So(func() { tree.Set([]int{3, 1}, 31) }, ShouldPanic)
	})

	Convey("Zero value PartitionTree is ready to use", t, func() {
		var tree PartitionTree[float64]
		_, ok := tree.Get([]int{1})
		So(ok, ShouldBeFalse)
		So(tree.Size(), ShouldEqual, 1)
		So(tree.Depth(), ShouldEqual, 1)
		tree.Set([]int{2, 1}, 0.5)
		v, ok := tree.Get([]int{1, 2})
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 0.5)
		So(tree.Depth(), ShouldEqual, 3)
	})
}

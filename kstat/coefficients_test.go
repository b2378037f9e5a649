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
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCoefficients(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_coefficients")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("Coefficients cache works", t, func() {
		c := NewCoefficients()

		Convey("computes and memoizes", func() {
			So(c.Get(10, []int{1, 2}), ShouldAlmostEqual, -1.0/72)
			So(c.Misses(), ShouldEqual, 1)
			So(c.Hits(), ShouldEqual, 0)
			So(c.Get(10, []int{2, 1}), ShouldAlmostEqual, -1.0/72)
			So(c.Misses(), ShouldEqual, 1)
			So(c.Hits(), ShouldEqual, 1)

			v, ok := c.Lookup(10, []int{2, 1})
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, -1.0/72)
			_, ok = c.Lookup(10, []int{3})
			So(ok, ShouldBeFalse)
		})

		Convey("separates sample sizes", func() {
			So(c.Get(10, []int{1, 1}), ShouldAlmostEqual, -1.0/90)
			So(c.Get(2, []int{1, 1}), ShouldAlmostEqual, -1.0/2)
			So(c.Misses(), ShouldEqual, 2)
			So(c.SampleSizes(), ShouldResemble, []int{2, 10})
			So(c.Len(), ShouldEqual, 2)
			So(c.Tree(10).Len(), ShouldEqual, 1)
			So(c.Tree(3), ShouldBeNil)
			_, ok := c.Lookup(3, []int{1, 1})
			So(ok, ShouldBeFalse)
		})

		Convey("explicit Set overrides", func() {
			c.Set(5, []int{1}, 42.0)
			So(c.Get(5, []int{1}), ShouldEqual, 42.0)
			So(c.Hits(), ShouldEqual, 1)
		})

		Convey("zero value is usable", func() {
			var z Coefficients
			So(z.Get(10, []int{1}), ShouldAlmostEqual, 0.1)
			So(z.Len(), ShouldEqual, 1)
		})

		Convey("Entries are ordered", func() {
			c.Get(10, []int{2, 1})
			c.Get(10, []int{1, 1, 1})
			c.Get(3, []int{3})
			So(c.Entries(), ShouldResemble, []Entry{
				{N: 3, BlockSizes: []int{3}, Value: Coef(3, []int{3})},
				{N: 10, BlockSizes: []int{1, 1, 1}, Value: Coef(10, []int{1, 1, 1})},
				{N: 10, BlockSizes: []int{1, 2}, Value: Coef(10, []int{1, 2})},
			})
		})

		Convey("Save and load", func() {
			c.Get(10, []int{2, 1})
			c.Get(10, []int{1, 1, 1, 1})
			c.Get(7, []int{4})

			for _, name := range []string{"coefs.cbor", "coefs.msgpack", "coefs"} {
				path := filepath.Join(tmpdir, name)
				So(c.Save(path), ShouldBeNil)
				c2, err := LoadCoefficients(path)
				So(err, ShouldBeNil)
				So(c2.Entries(), ShouldResemble, c.Entries())
				So(c2.Get(10, []int{1, 2}), ShouldEqual, c.Get(10, []int{2, 1}))
				So(c2.Misses(), ShouldEqual, 0)
			}
		})

		Convey("CBOR encoding is deterministic", func() {
			c.Get(10, []int{2, 1})
			c.Get(4, []int{1, 1, 1, 1})
			codec, err := NewCBOR()
			So(err, ShouldBeNil)
			b1, err := c.Encode(codec)
			So(err, ShouldBeNil)
			b2, err := c.Encode(codec)
			So(err, ShouldBeNil)
			So(b1, ShouldResemble, b2)
		})

		Convey("Decode rejects bad data", func() {
			codec := MsgPack{}
			b, err := codec.Marshal(&cacheFile{Version: cacheVersion + 1})
			So(err, ShouldBeNil)
			So(c.Decode(codec, b), ShouldNotBeNil)

			b, err = codec.Marshal(&cacheFile{
				Version: cacheVersion,
				Entries: []Entry{{N: 3, BlockSizes: []int{0, 1}, Value: 1}},
			})
			So(err, ShouldBeNil)
			So(c.Decode(codec, b), ShouldNotBeNil)

			for _, e := range []Entry{
				{N: 0, BlockSizes: []int{1}, Value: 1},
				{N: -2, BlockSizes: []int{1}, Value: 1},
				{N: 3, BlockSizes: []int{2, 2}, Value: 1},
				{N: 5, BlockSizes: []int{}, Value: 1},
			} {
				b, err = codec.Marshal(&cacheFile{
					Version: cacheVersion,
					Entries: []Entry{{N: 5, BlockSizes: []int{1, 1}, Value: 2}, e},
				})
				So(err, ShouldBeNil)
				n := c.Len()
				So(c.Decode(codec, b), ShouldNotBeNil)
				So(c.Len(), ShouldEqual, n)
			}

			So(c.Decode(codec, []byte("garbage")), ShouldNotBeNil)
		})

		Convey("Load of a missing file fails", func() {
			_, err := LoadCoefficients(filepath.Join(tmpdir, "missing.cbor"))
			So(err, ShouldNotBeNil)
		})
	})
}

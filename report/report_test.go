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

package report

import (
	"bytes"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReport(t *testing.T) {
	t.Parallel()

	Convey("Report works", t, func() {
		r := New("a", "b")
		r.Add([]int{0}, 0.9)
		r.Add([]int{0, 1}, -1.3)
		r.Add([]int{0, 0, 1}, 4.4625)

		Convey("Header", func() {
			So(r.Header(), ShouldResemble, []string{"Modes", "Variables", "K-statistic"})
			r.ShowExpected = true
			So(r.Header(), ShouldResemble,
				[]string{"Modes", "Variables", "K-statistic", "Expected"})
		})

		Convey("WriteText", func() {
			var buf bytes.Buffer
			So(r.WriteText(&buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
Modes   | Variables | K-statistic
------- | --------- | -----------
(0)     | a         |         0.9
(0,1)   | a,b       |        -1.3
(0,0,1) | a,a,b     |      4.4625
`)
		})

		Convey("WriteText with limited precision and expected values", func() {
			r := New()
			r.Precision = 3
			r.ShowExpected = true
			r.AddExpected([]int{0, 0}, 1.23456, 1.0)
			r.Add([]int{1}, 0.1)
			var buf bytes.Buffer
			So(r.WriteText(&buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
Modes | K-statistic | Expected
----- | ----------- | --------
(0,0) |        1.23 |        1
(1)   |         0.1 |
`)
		})

		Convey("WriteCSV", func() {
			r.Results[0].Value = 1.0 / 3.0
			var buf bytes.Buffer
			So(r.WriteCSV(&buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
Modes,Variables,K-statistic
(0),a,0.3333333333333333
"(0,1)","a,b",-1.3
"(0,0,1)","a,a,b",4.4625
`)
		})

		Convey("unknown variable", func() {
			r.Add([]int{2}, math.NaN())
			var buf bytes.Buffer
			So(r.WriteText(&buf), ShouldNotBeNil)
			So(r.WriteCSV(&buf), ShouldNotBeNil)
		})
	})
}

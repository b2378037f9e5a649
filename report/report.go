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

// Package report formats computed k-statistics as an aligned text table or as
// CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/moments/kstat"
)

// Result is a single computed statistic.
type Result struct {
	Modes    []int
	Value    float64
	Expected float64 // population cumulant, NaN when unknown
}

// Report is an ordered list of results for a dataset with the given variable
// names.
type Report struct {
	Names   []string // variable names; when nil, the Variables column is omitted
	Results []Result
	// Precision is the number of significant digits in text output; 0 means the
	// shortest exact representation.
	Precision int
	// ShowExpected adds the Expected column, e.g. for synthetic data.
	ShowExpected bool
}

// New creates an empty Report for variables with the given names.
func New(names ...string) *Report {
	return &Report{Names: names, Precision: 6}
}

// Add a result with an unknown expected value.
func (r *Report) Add(modes []int, value float64) {
	r.AddExpected(modes, value, math.NaN())
}

// AddExpected adds a result together with its expected value.
func (r *Report) AddExpected(modes []int, value, expected float64) {
	r.Results = append(r.Results, Result{Modes: modes, Value: value, Expected: expected})
}

// Header of the table.
func (r *Report) Header() []string {
	h := []string{"Modes"}
	if r.Names != nil {
		h = append(h, "Variables")
	}
	h = append(h, "K-statistic")
	if r.ShowExpected {
		h = append(h, "Expected")
	}
	return h
}

func (r *Report) variables(modes []int) (string, error) {
	vars := make([]string, len(modes))
	for i, m := range modes {
		if m < 0 || m >= len(r.Names) {
			return "", errors.Reason("mode %d has no variable name among %d", m, len(r.Names))
		}
		vars[i] = r.Names[m]
	}
	return strings.Join(vars, ","), nil
}

func formatFloat(x float64, precision int) string {
	if precision <= 0 {
		precision = -1
	}
	return strconv.FormatFloat(x, 'g', precision, 64)
}

// row formats a result; precision <= 0 prints values exactly.
func (r *Report) row(res Result, precision int) ([]string, error) {
	row := []string{kstat.FormatModes(res.Modes)}
	if r.Names != nil {
		v, err := r.variables(res.Modes)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	row = append(row, formatFloat(res.Value, precision))
	if r.ShowExpected {
		e := ""
		if !math.IsNaN(res.Expected) {
			e = formatFloat(res.Expected, precision)
		}
		row = append(row, e)
	}
	return row, nil
}

func (r *Report) rows(precision int) ([][]string, error) {
	rows := [][]string{r.Header()}
	for i, res := range r.Results {
		row, err := r.row(res, precision)
		if err != nil {
			return nil, errors.Annotate(err, "result %d", i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes the header and all the results with full precision.
func (r *Report) WriteCSV(w io.Writer) error {
	rows, err := r.rows(0)
	if err != nil {
		return errors.Annotate(err, "failed to format results")
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return errors.Annotate(err, "failed to write CSV")
	}
	return nil
}

// WriteText writes an aligned table with a dashed line under the header. Text
// columns are left-aligned and numbers are right-aligned.
func (r *Report) WriteText(w io.Writer) error {
	rows, err := r.rows(r.Precision)
	if err != nil {
		return errors.Annotate(err, "failed to format results")
	}
	header := rows[0]
	widths := make([]int, len(header))
	for _, row := range rows {
		for i, s := range row {
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
	}
	numeric := func(col int) bool {
		name := header[col]
		return name == "K-statistic" || name == "Expected"
	}
	line := func(row []string) string {
		cells := make([]string, len(row))
		for i, s := range row {
			if numeric(i) {
				cells[i] = fmt.Sprintf("%*s", widths[i], s)
			} else {
				cells[i] = fmt.Sprintf("%-*s", widths[i], s)
			}
		}
		return strings.TrimRight(strings.Join(cells, " | "), " ")
	}
	dashes := make([]string, len(widths))
	for i, n := range widths {
		dashes[i] = strings.Repeat("-", n)
	}
	out := []string{line(header), strings.Join(dashes, " | ")}
	for _, row := range rows[1:] {
		out = append(out, line(row))
	}
	if _, err := fmt.Fprintln(w, strings.Join(out, "\n")); err != nil {
		return errors.Annotate(err, "failed to write text")
	}
	return nil
}

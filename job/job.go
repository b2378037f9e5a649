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

// Package job runs a configured set of k-statistics over a dataset and
// produces a report.
package job

import (
	"context"
	"fmt"
	"os"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/moments/dataset"
	"github.com/stockparfait/moments/kstat"
	"github.com/stockparfait/moments/ndarray"
	"github.com/stockparfait/moments/report"
	"github.com/stockparfait/moments/stats"

	"golang.org/x/exp/slices"
)

// Data is a samples x variables array with the variable names, and the
// distribution it was sampled from, if known.
type Data struct {
	Array        *ndarray.Array
	Names        []string
	Distribution stats.Distribution
}

// Sample generates synthetic data.
func (s *Synthetic) Sample() (*Data, error) {
	d, err := stats.NewDistribution(s.Distribution, s.Mean, s.Sigma, s.Nu)
	if err != nil {
		return nil, errors.Annotate(err, "failed to create distribution")
	}
	if s.Seed != 0 {
		d.Seed(uint64(s.Seed))
	}
	names := make([]string, s.Variables)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return &Data{
		Array:        stats.RandomArray(d, s.Samples, s.Variables),
		Names:        names,
		Distribution: d,
	}, nil
}

// Load the data from a file or generate a synthetic sample.
func (c *Config) Load() (*Data, error) {
	if c.Synthetic != nil {
		return c.Synthetic.Sample()
	}
	a, names, err := dataset.Load(c.Data)
	if err != nil {
		return nil, errors.Annotate(err, "failed to load data")
	}
	return &Data{Array: a, Names: names}, nil
}

// AllModes lists the requested statistics for d variables without repetition.
// Modes are compared as multisets.
func (c *Config) AllModes(d int) [][]int {
	seen := make(map[string]bool)
	var res [][]int
	add := func(m []int) {
		key := append([]int{}, m...)
		slices.Sort(key)
		k := kstat.FormatModes(key)
		if seen[k] {
			return
		}
		seen[k] = true
		res = append(res, m)
	}
	for _, m := range c.Modes {
		add(m)
	}
	for _, m := range kstat.ModesUpTo(d, c.MaxOrder) {
		add(m)
	}
	return res
}

// Expected joint cumulant of independent identically distributed variables:
// the distribution's cumulant when all the modes are the same variable, and
// zero otherwise.
func Expected(d stats.Distribution, modes []int) float64 {
	for _, m := range modes[1:] {
		if m != modes[0] {
			return 0
		}
	}
	return d.Cumulant(len(modes))
}

func (c *Config) loadCoefficients(ctx context.Context) (*kstat.Coefficients, error) {
	if c.Coefficients == "" {
		return kstat.NewCoefficients(), nil
	}
	if _, err := os.Stat(c.Coefficients); errors.Is(err, os.ErrNotExist) {
		logging.Infof(ctx, "coefficient cache %s does not exist yet", c.Coefficients)
		return kstat.NewCoefficients(), nil
	}
	coefs, err := kstat.LoadCoefficients(c.Coefficients)
	if err != nil {
		return nil, errors.Annotate(err, "failed to load coefficient cache")
	}
	logging.Infof(ctx, "loaded %d coefficients from %s", coefs.Len(), c.Coefficients)
	return coefs, nil
}

// Run the job and return its report.
func Run(ctx context.Context, c *Config) (*report.Report, error) {
	data, err := c.Load()
	if err != nil {
		return nil, errors.Annotate(err, "failed to get data")
	}
	shape := data.Array.Shape()
	logging.Infof(ctx, "data: %d samples, %d variables", shape[0], shape[1])

	coefs, err := c.loadCoefficients(ctx)
	if err != nil {
		return nil, err
	}
	modes := c.AllModes(len(data.Names))
	ks, err := kstat.KStats(ctx, data.Array, modes, 0, 1, coefs, c.Workers)
	if err != nil {
		return nil, errors.Annotate(err, "failed to compute k-statistics")
	}
	if c.Coefficients != "" {
		if err := coefs.Save(c.Coefficients); err != nil {
			return nil, errors.Annotate(err, "failed to save coefficient cache")
		}
		logging.Infof(ctx, "saved %d coefficients to %s", coefs.Len(), c.Coefficients)
	}

	r := report.New(data.Names...)
	r.Precision = c.Precision
	r.ShowExpected = data.Distribution != nil
	for i, m := range modes {
		if data.Distribution != nil {
			r.AddExpected(m, ks[i].Value(), Expected(data.Distribution, m))
			continue
		}
		r.Add(m, ks[i].Value())
	}
	return r, nil
}

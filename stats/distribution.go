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

// Package stats generates synthetic samples from known distributions, whose
// exact cumulants can be compared with the k-statistics of the samples.
package stats

import (
	"math"
	"time"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/moments/ndarray"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution API for generating samples with known cumulants.
type Distribution interface {
	distuv.Rander
	Mean() float64
	Variance() float64
	// Cumulant of the given order >= 1. Returns NaN when it doesn't exist or is
	// not known.
	Cumulant(order int) float64
	// Set random seed. Mostly used in tests.
	Seed(uint64)
}

// Normal distribution.
type Normal struct {
	distuv.Normal
}

var _ Distribution = &Normal{}

func (d *Normal) Mean() float64 {
	return d.Mu
}

func (d *Normal) Variance() float64 {
	return d.Sigma * d.Sigma
}

// Cumulant of a normal distribution is zero for orders above 2.
func (d *Normal) Cumulant(order int) float64 {
	switch {
	case order == 1:
		return d.Mu
	case order == 2:
		return d.Variance()
	case order > 2:
		return 0
	}
	return math.NaN()
}

func (d *Normal) Seed(seed uint64) {
	d.Normal.Src = rand.NewSource(seed)
}

// NewNormalDistribution creates an instance of a normal distribution with the
// given mean and standard deviation.
func NewNormalDistribution(mean, sigma float64) *Normal {
	return &Normal{distuv.Normal{
		Mu:    mean,
		Sigma: sigma,
		Src:   rand.NewSource(uint64(time.Now().UnixNano())),
	}}
}

// StudentsT distribution, useful for samples with heavy tails and a non-zero
// 4th cumulant.
type StudentsT struct {
	distuv.StudentsT
}

var _ Distribution = &StudentsT{}

func (d *StudentsT) Mean() float64 {
	return d.Mu
}

// Variance is infinite for nu <= 2.
func (d *StudentsT) Variance() float64 {
	if d.Nu <= 2 {
		return math.Inf(1)
	}
	return d.Sigma * d.Sigma * d.Nu / (d.Nu - 2)
}

// Cumulant of orders 1 to 4. Odd orders above 1 are zero when they exist, and
// the 4th cumulant requires nu > 4.
func (d *StudentsT) Cumulant(order int) float64 {
	switch order {
	case 1:
		if d.Nu <= 1 {
			return math.NaN()
		}
		return d.Mu
	case 2:
		if d.Nu <= 2 {
			return math.NaN()
		}
		return d.Variance()
	case 3:
		if d.Nu <= 3 {
			return math.NaN()
		}
		return 0
	case 4:
		if d.Nu <= 4 {
			return math.NaN()
		}
		v := d.Variance()
		return 6.0 / (d.Nu - 4) * v * v
	}
	return math.NaN()
}

func (d *StudentsT) Seed(seed uint64) {
	d.StudentsT.Src = rand.NewSource(seed)
}

// NewStudentsTDistribution creates an instance of a Student's T distribution
// with nu degrees of freedom, shifted by mean and scaled by sigma.
func NewStudentsTDistribution(nu, mean, sigma float64) *StudentsT {
	return &StudentsT{distuv.StudentsT{
		Mu:    mean,
		Sigma: sigma,
		Nu:    nu,
		Src:   rand.NewSource(uint64(time.Now().UnixNano())),
	}}
}

// NewDistribution creates a distribution by name: "normal" or "t". The nu
// parameter is used only by the T distribution.
func NewDistribution(name string, mean, sigma, nu float64) (Distribution, error) {
	switch name {
	case "normal":
		return NewNormalDistribution(mean, sigma), nil
	case "t":
		if nu <= 0 {
			return nil, errors.Reason("nu=%f must be > 0", nu)
		}
		return NewStudentsTDistribution(nu, mean, sigma), nil
	}
	return nil, errors.Reason("unknown distribution: '%s'", name)
}

// RandomArray fills a new Array of the given shape with independent samples
// of the distribution.
func RandomArray(d Distribution, shape ...int) *ndarray.Array {
	a := ndarray.Zeros(shape...)
	data := a.Data()
	for i := range data {
		data[i] = d.Rand()
	}
	return a
}

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

package job

import (
	"github.com/stockparfait/errors"
	"github.com/stockparfait/moments/dataset"
	"github.com/stockparfait/moments/message"
)

// Synthetic data: independent identically distributed variables.
type Synthetic struct {
	Samples      int     `json:"samples" required:"true"`
	Variables    int     `json:"variables" default:"1"`
	Seed         int     `json:"seed"` // 0: seed from the clock
	Distribution string  `json:"distribution" default:"normal" choices:"normal,t"`
	Mean         float64 `json:"mean"`
	Sigma        float64 `json:"sigma" default:"1"`
	Nu           float64 `json:"nu" default:"5"` // degrees of freedom of "t"
}

var _ message.Message = &Synthetic{}

func (s *Synthetic) InitMessage(js any) error {
	if err := message.Init(s, js); err != nil {
		return errors.Annotate(err, "failed to init Synthetic")
	}
	if s.Samples < 1 {
		return errors.Reason("samples=%d must be >= 1", s.Samples)
	}
	if s.Variables < 1 {
		return errors.Reason("variables=%d must be >= 1", s.Variables)
	}
	if s.Sigma <= 0 {
		return errors.Reason("sigma=%g must be > 0", s.Sigma)
	}
	return nil
}

// Config of a k-statistics job. Exactly one of Data or Synthetic must be set.
// The statistics are the explicit Modes followed by all the mode multisets of
// orders up to MaxOrder not already listed.
type Config struct {
	Data         *dataset.Config `json:"data"`
	Synthetic    *Synthetic      `json:"synthetic"`
	Modes        [][]int         `json:"modes"`
	MaxOrder     int             `json:"max order"`
	Coefficients string          `json:"coefficients"` // cache file, optional
	Workers      int             `json:"workers"`      // 0: all CPUs
	Precision    int             `json:"precision" default:"6"`
}

var _ message.Message = &Config{}

func (c *Config) InitMessage(js any) error {
	if err := message.Init(c, js); err != nil {
		return errors.Annotate(err, "failed to init Config")
	}
	if (c.Data == nil) == (c.Synthetic == nil) {
		return errors.Reason("exactly one of data or synthetic must be specified")
	}
	if c.MaxOrder < 0 {
		return errors.Reason("max order=%d must be >= 0", c.MaxOrder)
	}
	if len(c.Modes) == 0 && c.MaxOrder == 0 {
		return errors.Reason("no statistics requested: set modes or max order")
	}
	for i, m := range c.Modes {
		if len(m) == 0 {
			return errors.Reason("modes[%d] is empty", i)
		}
		for _, v := range m {
			if v < 0 {
				return errors.Reason("modes[%d] has a negative variable %d", i, v)
			}
		}
	}
	if c.Precision < 0 {
		return errors.Reason("precision=%d must be >= 0", c.Precision)
	}
	return nil
}

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

// Package dataset loads sample data from delimited text files into a
// samples x variables ndarray.Array.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/moments/message"
	"github.com/stockparfait/moments/ndarray"
)

// Config of the data file. Each row is a sample and each column is a
// variable. Lines starting with '#' are ignored.
type Config struct {
	File      string   `json:"file" required:"true"`
	Header    bool     `json:"header"`    // the first row names the columns
	Columns   []string `json:"columns"`   // select and order columns by name; default: all
	Delimiter string   `json:"delimiter" default:"comma" choices:"comma,semicolon,tab,whitespace"`
}

var _ message.Message = &Config{}

// InitMessage implements message.Message.
func (c *Config) InitMessage(js any) error {
	if err := message.Init(c, js); err != nil {
		return errors.Annotate(err, "failed to init dataset Config")
	}
	if len(c.Columns) > 0 && !c.Header {
		return errors.Reason("columns can only be selected in a file with a header")
	}
	return nil
}

func (c *Config) comma() rune {
	switch c.Delimiter {
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	}
	return ','
}

// rows reads all the non-empty, non-comment rows as strings.
func (c *Config) rows(r io.Reader) ([][]string, error) {
	if c.Delimiter == "whitespace" {
		var res [][]string
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			res = append(res, strings.Fields(line))
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Annotate(err, "failed to scan lines")
		}
		return res, nil
	}
	cr := csv.NewReader(r)
	cr.Comma = c.comma()
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	res, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Annotate(err, "failed to read CSV")
	}
	return res, nil
}

// Read the data and the names of the variables. Without a header, the
// variables are named x0, x1, etc.
func Read(r io.Reader, c *Config) (*ndarray.Array, []string, error) {
	rows, err := c.rows(r)
	if err != nil {
		return nil, nil, errors.Annotate(err, "failed to read rows")
	}
	var header []string
	if c.Header {
		if len(rows) == 0 {
			return nil, nil, errors.Reason("missing header")
		}
		header = rows[0]
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, nil, errors.Reason("no data rows")
	}
	width := len(rows[0])
	if header == nil {
		for i := 0; i < width; i++ {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if len(header) != width {
		return nil, nil, errors.Reason("header has %d columns, data has %d",
			len(header), width)
	}
	cols := make([]int, width)
	for i := range cols {
		cols[i] = i
	}
	names := header
	if len(c.Columns) > 0 {
		cols = cols[:0]
		for _, name := range c.Columns {
			idx := -1
			for i, h := range header {
				if h == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, nil, errors.Reason("column '%s' not found in header %v", name, header)
			}
			cols = append(cols, idx)
		}
		names = c.Columns
	}
	a := ndarray.Zeros(len(rows), len(cols))
	for i, row := range rows {
		if len(row) != width {
			return nil, nil, errors.Reason("row %d has %d columns, expected %d",
				i, len(row), width)
		}
		for j, col := range cols {
			x, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return nil, nil, errors.Annotate(err, "row %d, column '%s'", i, names[j])
			}
			a.Set(x, i, j)
		}
	}
	return a, names, nil
}

// Load the data from c.File.
func Load(c *Config) (*ndarray.Array, []string, error) {
	f, err := os.Open(c.File)
	if err != nil {
		return nil, nil, errors.Annotate(err, "failed to open %s", c.File)
	}
	defer f.Close()

	a, names, err := Read(f, c)
	if err != nil {
		return nil, nil, errors.Annotate(err, "failed to read %s", c.File)
	}
	return a, names, nil
}

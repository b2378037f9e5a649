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
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/stockparfait/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// cacheVersion is the version of the saved cache format.
const cacheVersion = 1

// Entry is a single saved coefficient.
type Entry struct {
	N          int     `cbor:"n" msgpack:"n"`
	BlockSizes []int   `cbor:"sizes" msgpack:"sizes"`
	Value      float64 `cbor:"value" msgpack:"value"`
}

type cacheFile struct {
	Version int     `cbor:"version" msgpack:"version"`
	Entries []Entry `cbor:"entries" msgpack:"entries"`
}

// Entries lists all the cached coefficients ordered by the sample size and
// then lexicographically by the sorted block sizes.
func (c *Coefficients) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var res []Entry
	for _, n := range c.sampleSizes() {
		c.trees[n].Walk(func(parts []int, v float64) {
			sizes := make([]int, len(parts))
			copy(sizes, parts)
			res = append(res, Entry{N: n, BlockSizes: sizes, Value: v})
		})
	}
	return res
}

// Codec serializes the coefficient cache.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// CBOR codec with deterministic (RFC 8949 core) encoding, so that the same
// cache always produces the same bytes.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = &CBOR{}

// NewCBOR creates a CBOR codec.
func NewCBOR() (*CBOR, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, errors.Annotate(err, "failed to create CBOR encoder")
	}
	dec, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return nil, errors.Annotate(err, "failed to create CBOR decoder")
	}
	return &CBOR{enc: enc, dec: dec}, nil
}

func (c *CBOR) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }

func (c *CBOR) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }

// MsgPack codec.
type MsgPack struct{}

var _ Codec = MsgPack{}

func (MsgPack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (MsgPack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// CodecFor selects the codec by the file extension: ".msgpack" or ".mp" for
// MsgPack, and CBOR for everything else.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return MsgPack{}, nil
	}
	return NewCBOR()
}

// Encode the cache with the codec.
func (c *Coefficients) Encode(codec Codec) ([]byte, error) {
	b, err := codec.Marshal(&cacheFile{Version: cacheVersion, Entries: c.Entries()})
	if err != nil {
		return nil, errors.Annotate(err, "failed to encode coefficients")
	}
	return b, nil
}

// Decode adds the encoded coefficients to the cache, overwriting the existing
// values with the same keys. Nothing is added if any entry is invalid; the
// sample size of an entry must be at least the sum of its block sizes.
func (c *Coefficients) Decode(codec Codec, data []byte) error {
	var f cacheFile
	if err := codec.Unmarshal(data, &f); err != nil {
		return errors.Annotate(err, "failed to decode coefficients")
	}
	if f.Version != cacheVersion {
		return errors.Reason("unsupported cache version %d, expected %d",
			f.Version, cacheVersion)
	}
	for i, e := range f.Entries {
		order := 0
		for _, m := range e.BlockSizes {
			if m < 1 {
				return errors.Reason("entry %d: invalid block sizes %v", i, e.BlockSizes)
			}
			order += m
		}
		if order == 0 || e.N < order {
			return errors.Reason("entry %d: sample size %d is invalid for block sizes %v",
				i, e.N, e.BlockSizes)
		}
	}
	for _, e := range f.Entries {
		c.Set(e.N, e.BlockSizes, e.Value)
	}
	return nil
}

// Save the cache to a file; the format is determined by CodecFor.
func (c *Coefficients) Save(path string) error {
	codec, err := CodecFor(path)
	if err != nil {
		return errors.Annotate(err, "failed to select codec for %s", path)
	}
	b, err := c.Encode(codec)
	if err != nil {
		return errors.Annotate(err, "failed to encode %s", path)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Annotate(err, "failed to write %s", path)
	}
	return nil
}

// LoadCoefficients reads a cache saved by Save.
func LoadCoefficients(path string) (*Coefficients, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, errors.Annotate(err, "failed to select codec for %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read %s", path)
	}
	c := NewCoefficients()
	if err := c.Decode(codec, b); err != nil {
		return nil, errors.Annotate(err, "failed to load %s", path)
	}
	return c, nil
}

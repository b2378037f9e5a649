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

// Package combinatorics implements the integer arithmetic and the lazy
// combinatorial generators used for computing k-statistics: falling
// factorials, binomial coefficients, bounded-sum compositions ("simplex"
// tuples), set partitions and multisets.
//
// All the generators implement iterator.Iterator, are stateless with respect
// to each other, and can be consumed in an interleaved fashion.
package combinatorics

// Copyright 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package spans computes the contiguous byte ranges of a stored sequence
// covered by a feature location.  Sequence objects store one byte per base,
// so location coordinates translate directly into byte offsets.
package spans

import (
	"errors"
	"io"
	"sort"

	"github.com/googlegenomics/locget/locations"
)

// ErrInvalidBounds is returned by Read for a negative or inverted span.
var ErrInvalidBounds = errors.New("invalid span bounds")

// Span identifies a contiguous byte range of a sequence object.
type Span struct {
	Start, End int64
}

// ForLocation returns one span per part of loc, ordered by start coordinate.
func ForLocation(loc locations.Location) []Span {
	parts := loc.Parts()
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Start.Value < parts[j].Start.Value
	})

	spans := make([]Span, len(parts))
	for i, part := range parts {
		spans[i] = Span{int64(part.Start.Value), int64(part.End.Value)}
	}
	return spans
}

// Merge merges overlapping or abutting spans together as long as the merged
// span covers no more than sizeLimit bytes.  Input spans larger than
// sizeLimit are passed through unsplit.
func Merge(input []Span, sizeLimit uint64) []Span {
	if len(input) == 0 {
		return nil
	}

	sort.Slice(input, func(i, j int) bool {
		return input[i].Start < input[j].Start
	})

	merged := []Span{input[0]}
	for i := 1; i < len(input); i++ {
		output := &merged[len(merged)-1]

		var end int64
		if output.End < input[i].End {
			end = input[i].End
		} else {
			end = output.End
		}

		if input[i].Start <= output.End && uint64(end-output.Start) <= sizeLimit {
			output.End = end
		} else {
			merged = append(merged, input[i])
		}
	}
	return merged
}

// RangeReader reads length bytes of backing storage starting at start.
type RangeReader func(start, length int64) (io.ReadCloser, error)

// Read returns a reader over the bytes of s.
func Read(r RangeReader, s Span) (io.ReadCloser, error) {
	if s.Start < 0 || s.End < s.Start {
		return nil, ErrInvalidBounds
	}
	return r(s.Start, s.End-s.Start)
}

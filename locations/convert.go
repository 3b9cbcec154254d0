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

package locations

import (
	"fmt"
	"sort"
)

// ProteinToDNA maps a zero based, half open protein residue range onto the
// absolute DNA coordinates covered by loc. Residues are three nucleotides
// wide. On the reverse strand the range is measured back from the high end
// of the location. For compound locations the mapped range may cross splice
// junctions, in which case the returned start and end come from different
// parts. The returned range is half open.
func ProteinToDNA(proteinStart, proteinEnd int, loc Location) (dnaStart, dnaEnd int, err error) {
	for _, part := range loc.parts {
		if part.Start.IsUnknown() || part.End.IsUnknown() {
			return 0, 0, fmt.Errorf("cannot map protein positions within %v: unknown endpoint", loc)
		}
	}
	if proteinStart < 0 || proteinStart >= proteinEnd || proteinEnd > loc.Len()/3 {
		return 0, 0, fmt.Errorf("protein positions %d and %d must be contained within %v", proteinStart, proteinEnd, loc)
	}

	start := loc.Start().Value
	if loc.Strand() == StrandReverse {
		dnaStart = start + loc.Len() - 3*proteinEnd
		dnaEnd = start + loc.Len() - 3*proteinStart
	} else {
		dnaStart = start + 3*proteinStart
		dnaEnd = start + 3*proteinEnd
	}
	if !loc.IsCompound() {
		return dnaStart, dnaEnd, nil
	}

	// The provisional coordinates assume one contiguous range. Walk the
	// parts in ascending coordinate order, accumulating the gaps between
	// them, and push each coordinate past the gaps until it lands inside a
	// part. The end coordinate is exclusive, so membership is tested one
	// before it.
	parts := loc.Parts()
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Start.Value < parts[j].Start.Value
	})
	var gap int
	lastEnd := parts[0].Start.Value
	var startFound, endFound bool
	for _, part := range parts {
		if startFound && endFound {
			break
		}
		gap += part.Start.Value - lastEnd
		if !startFound && part.Contains(dnaStart+gap) {
			dnaStart += gap
			startFound = true
		}
		if !endFound && part.Contains(dnaEnd+gap-1) {
			dnaEnd += gap
			endFound = true
		}
		lastEnd = part.End.Value
	}
	if !startFound || !endFound {
		return 0, 0, fmt.Errorf("protein positions %d and %d could not be mapped within %v", proteinStart, proteinEnd, loc)
	}
	return dnaStart, dnaEnd, nil
}

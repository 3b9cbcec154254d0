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

import "errors"

var (
	// ErrDoesNotBridge is returned by SplitBridging when the location does
	// not wrap past the sequence origin.
	ErrDoesNotBridge = errors.New("Location does not bridge origin")

	// ErrNoValidStrand is returned by SplitBridging when the location has no
	// definite direction, as with mixed strand parts.
	ErrNoValidStrand = errors.New("Cannot separate bridged location without a valid strand")
)

// BridgesOrigin reports whether a compound location wraps past the start of
// a circular sequence. The parts are walked in biological order: on the
// forward strand coordinates must never decrease from one part to the next,
// on the reverse strand they must never increase. A simple location never
// bridges, nor does a location without a definite direction.
func BridgesOrigin(loc Location) bool {
	if !loc.IsCompound() {
		return false
	}
	strand := loc.Strand()
	if strand != StrandForward && strand != StrandReverse {
		return false
	}
	for i := 1; i < len(loc.parts); i++ {
		diff := loc.parts[i].Start.Compare(loc.parts[i-1].Start)
		if strand == StrandForward && diff < 0 {
			return true
		}
		if strand == StrandReverse && diff > 0 {
			return true
		}
	}
	return false
}

// SplitBridging separates an origin bridging location into its low
// coordinate and high coordinate segment groups, each preserving the
// biological order of its members. Reassembly into locations is left to the
// caller. A location without a definite strand fails with ErrNoValidStrand;
// a location that does not bridge the origin fails with ErrDoesNotBridge.
func SplitBridging(loc Location) (lower, upper []Segment, err error) {
	strand := loc.Strand()
	if strand != StrandForward && strand != StrandReverse {
		return nil, nil, ErrNoValidStrand
	}
	if !BridgesOrigin(loc) {
		return nil, nil, ErrDoesNotBridge
	}
	if strand == StrandForward {
		// Biological order starts at the high coordinate group and wraps
		// into the low group.
		for _, part := range loc.parts {
			if len(upper) == 0 || part.Start.Value > upper[len(upper)-1].End.Value {
				upper = append(upper, part)
			} else {
				lower = append(lower, part)
			}
		}
	} else {
		for _, part := range loc.parts {
			if len(lower) == 0 || part.Start.Value < lower[len(lower)-1].End.Value {
				lower = append(lower, part)
			} else {
				upper = append(upper, part)
			}
		}
	}
	// Overlapping parts can trip the detector yet still partition to one
	// side; a genuine bridge populates both groups.
	if len(lower) == 0 || len(upper) == 0 {
		return nil, nil, ErrDoesNotBridge
	}
	return lower, upper, nil
}

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
	"testing"
)

func TestPosition_Compare(t *testing.T) {
	testCases := []struct {
		name string
		p, q Position
		want int
	}{
		{"exact less", Exact(1), Exact(2), -1},
		{"exact greater", Exact(2), Exact(1), 1},
		{"exact equal", Exact(7), Exact(7), 0},
		{"kind ignored", Before(3), After(3), 0},
		{"fuzzy by value", Before(9), Exact(4), 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.p.Compare(tc.q), tc.want; got != want {
				t.Errorf("Compare(%v, %v): got %d, want %d", tc.p, tc.q, got, want)
			}
		})
	}
}

func TestPosition_Equal(t *testing.T) {
	testCases := []struct {
		name string
		p, q Position
		want bool
	}{
		{"same kind and value", Exact(4), Exact(4), true},
		{"same value, different kind", Exact(4), Before(4), false},
		{"same kind, different value", After(4), After(5), false},
		{"unknowns always equal", Unknown(), Position{Value: 99, Kind: KindUnknown}, true},
		{"unknown and exact", Unknown(), Exact(0), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.p.Equal(tc.q), tc.want; got != want {
				t.Errorf("Equal(%v, %v): got %v, want %v", tc.p, tc.q, got, want)
			}
		})
	}
}

func TestNewSegment(t *testing.T) {
	testCases := []struct {
		name       string
		start, end Position
		want       Segment
	}{
		{
			"ordered exact bounds",
			Exact(1), Exact(6),
			Segment{Exact(1), Exact(6), StrandForward},
		},
		{
			"misordered fuzzy bounds are swapped",
			After(6), Exact(1),
			Segment{Exact(1), After(6), StrandForward},
		},
		{
			"misordered before bound is swapped",
			Exact(9), Before(2),
			Segment{Before(2), Exact(9), StrandForward},
		},
		{
			"unknown bounds are kept in place",
			Unknown(), Exact(3),
			Segment{Unknown(), Exact(3), StrandForward},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seg, err := NewSegment(tc.start, tc.end, StrandForward)
			if err != nil {
				t.Fatalf("Failed to build segment: %v", err)
			}
			if !seg.Equal(tc.want) {
				t.Errorf("NewSegment(%v, %v): got %v, want %v", tc.start, tc.end, seg, tc.want)
			}
		})
	}
}

func TestNewSegment_MisorderedExactBounds(t *testing.T) {
	if seg, err := NewSegment(Exact(6), Exact(1), StrandForward); err == nil {
		t.Errorf("Unexpected success: got %v, wanted error", seg)
	}
}

func TestSegment_Contains(t *testing.T) {
	testCases := []struct {
		name string
		seg  Segment
		pos  int
		want bool
	}{
		{"inside", Span(3, 9, StrandForward), 5, true},
		{"at start", Span(3, 9, StrandForward), 3, true},
		{"at end", Span(3, 9, StrandForward), 9, false},
		{"below", Span(3, 9, StrandForward), 2, false},
		{"fuzzy bounds use values", Segment{Before(3), After(9), StrandForward}, 8, true},
		{"unknown bound contains nothing", Segment{Unknown(), Exact(9), StrandForward}, 5, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.seg.Contains(tc.pos), tc.want; got != want {
				t.Errorf("Contains(%d) on %v: got %v, want %v", tc.pos, tc.seg, got, want)
			}
		})
	}
}

func TestCompound_RequiresTwoParts(t *testing.T) {
	if loc, err := Compound(Join, []Segment{Span(1, 6, StrandForward)}); err == nil {
		t.Errorf("Unexpected success: got %v, wanted error", loc)
	}
}

func TestLocation_DerivedStrand(t *testing.T) {
	testCases := []struct {
		name string
		loc  Location
		want Strand
	}{
		{
			"simple forward",
			Simple(Span(1, 6, StrandForward)),
			StrandForward,
		},
		{
			"parts agree",
			buildCompound(t, StrandReverse, pair{0, 3}, pair{9, 12}),
			StrandReverse,
		},
		{
			"parts disagree",
			mixedCompound(t, Span(1, 6, StrandForward), Span(10, 16, StrandReverse)),
			StrandNone,
		},
		{
			"parts agree on no strand",
			buildCompound(t, StrandNone, pair{1, 6}, pair{10, 16}),
			StrandNone,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.loc.Strand(), tc.want; got != want {
				t.Errorf("Strand() of %v: got %v, want %v", tc.loc, got, want)
			}
		})
	}
}

func TestLocation_Bounds(t *testing.T) {
	testCases := []struct {
		name       string
		loc        Location
		start, end Position
	}{
		{
			"simple",
			Simple(Span(1, 6, StrandForward)),
			Exact(1), Exact(6),
		},
		{
			"biological order differs from coordinate order",
			buildCompound(t, StrandForward, pair{9, 12}, pair{0, 3}),
			Exact(0), Exact(12),
		},
		{
			"unknown endpoints are skipped",
			mixedCompound(t,
				Segment{Unknown(), Exact(3), StrandForward},
				Span(9, 12, StrandForward)),
			Exact(9), Exact(12),
		},
		{
			"fuzzy bounds win by value",
			mixedCompound(t,
				Segment{Before(2), Exact(5), StrandForward},
				Segment{Exact(8), After(14), StrandForward}),
			Before(2), After(14),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.loc.Start(), tc.start; !got.Equal(want) {
				t.Errorf("Start() of %v: got %v, want %v", tc.loc, got, want)
			}
			if got, want := tc.loc.End(), tc.end; !got.Equal(want) {
				t.Errorf("End() of %v: got %v, want %v", tc.loc, got, want)
			}
		})
	}
}

func TestLocation_LenAndContains(t *testing.T) {
	loc := buildCompound(t, StrandForward, pair{1, 6}, pair{10, 16})
	if got, want := loc.Len(), 11; got != want {
		t.Errorf("Len(): got %d, want %d", got, want)
	}
	positions := []struct {
		pos  int
		want bool
	}{
		{5, true},
		{7, false},
		{15, true},
		{16, false},
	}
	for _, tc := range positions {
		if got, want := loc.Contains(tc.pos), tc.want; got != want {
			t.Errorf("Contains(%d): got %v, want %v", tc.pos, got, want)
		}
	}
}

func TestCombine(t *testing.T) {
	testCases := []struct {
		name       string
		locs       []Location
		start, end int
	}{
		{
			"overlapping",
			[]Location{simpleSpan(3, 7), simpleSpan(5, 9)},
			3, 9,
		},
		{
			"disjoint",
			[]Location{simpleSpan(3, 5), simpleSpan(7, 9)},
			3, 9,
		},
		{
			"disjoint in descending order",
			[]Location{simpleSpan(7, 9), simpleSpan(3, 5)},
			3, 9,
		},
		{
			"single location",
			[]Location{simpleSpan(0, 5)},
			0, 5,
		},
		{
			"single compound location condenses",
			[]Location{buildCompound(t, StrandNone, pair{0, 3}, pair{6, 9})},
			0, 9,
		},
		{
			"many locations",
			func() []Location {
				var locs []Location
				for i := 10; i < 20; i++ {
					locs = append(locs, simpleSpan(i, i+1))
				}
				return locs
			}(),
			10, 20,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := Combine(tc.locs...)
			if err != nil {
				t.Fatalf("Failed to combine: %v", err)
			}
			if got, want := len(loc.Parts()), 1; got != want {
				t.Fatalf("Wrong part count: got %d, want %d", got, want)
			}
			if got, want := loc.Start(), Exact(tc.start); !got.Equal(want) {
				t.Errorf("Wrong start: got %v, want %v", got, want)
			}
			if got, want := loc.End(), Exact(tc.end); !got.Equal(want) {
				t.Errorf("Wrong end: got %v, want %v", got, want)
			}
			if got, want := loc.Strand(), StrandNone; got != want {
				t.Errorf("Wrong strand: got %v, want %v", got, want)
			}
		})
	}
}

func TestCombine_PreservesWinningKinds(t *testing.T) {
	loc, err := Combine(
		Simple(Segment{Before(3), Exact(7), StrandForward}),
		Simple(Segment{Exact(5), After(9), StrandReverse}),
	)
	if err != nil {
		t.Fatalf("Failed to combine: %v", err)
	}
	if got, want := loc.Start(), Before(3); !got.Equal(want) {
		t.Errorf("Wrong start: got %v, want %v", got, want)
	}
	if got, want := loc.End(), After(9); !got.Equal(want) {
		t.Errorf("Wrong end: got %v, want %v", got, want)
	}
}

func TestCombine_InvalidInputs(t *testing.T) {
	if loc, err := Combine(); err == nil {
		t.Errorf("Unexpected success combining nothing: got %v, wanted error", loc)
	}
	unknown := Simple(Segment{Exact(1), Unknown(), StrandForward})
	if loc, err := Combine(unknown, simpleSpan(3, 7)); err == nil {
		t.Errorf("Unexpected success combining unknown endpoints: got %v, wanted error", loc)
	}
}

type pair [2]int

func simpleSpan(start, end int) Location {
	return Simple(Span(start, end, StrandNone))
}

func buildCompound(t *testing.T, strand Strand, pairs ...pair) Location {
	t.Helper()
	parts := make([]Segment, len(pairs))
	for i, p := range pairs {
		parts[i] = Span(p[0], p[1], strand)
	}
	loc, err := Compound(Join, parts)
	if err != nil {
		t.Fatalf("Failed to build compound location: %v", err)
	}
	return loc
}

func mixedCompound(t *testing.T, parts ...Segment) Location {
	t.Helper()
	loc, err := Compound(Join, parts)
	if err != nil {
		t.Fatalf("Failed to build compound location: %v", err)
	}
	return loc
}

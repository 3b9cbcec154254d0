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

// Package locations models genomic feature locations and the coordinate
// arithmetic over them: fuzzy endpoint positions, strand oriented segments,
// compound locations, origin bridging on circular sequences, protein residue
// to DNA coordinate conversion, and a canonical text codec.
//
// All values in this package are immutable once constructed and safe for
// concurrent use.
package locations

import (
	"errors"
	"fmt"
)

// Kind describes how much is known about the true coordinate of a position.
type Kind int

const (
	// KindExact means the coordinate is exactly the carried value.
	KindExact Kind = iota
	// KindBefore means the true coordinate is at or before the carried value.
	KindBefore
	// KindAfter means the true coordinate is at or after the carried value.
	KindAfter
	// KindUnknown means the true coordinate is indeterminate.
	KindUnknown
)

// Position is one endpoint of a segment: a coordinate value qualified by how
// precisely that value is known.
type Position struct {
	Value int
	Kind  Kind
}

// Exact returns a position known to be exactly value.
func Exact(value int) Position { return Position{Value: value, Kind: KindExact} }

// Before returns a position known only to be at or before value.
func Before(value int) Position { return Position{Value: value, Kind: KindBefore} }

// After returns a position known only to be at or after value.
func After(value int) Position { return Position{Value: value, Kind: KindAfter} }

// Unknown returns a position whose coordinate is indeterminate.
func Unknown() Position { return Position{Kind: KindUnknown} }

// IsUnknown reports whether the position carries no usable coordinate.
func (p Position) IsUnknown() bool { return p.Kind == KindUnknown }

// Compare orders positions by their numeric value alone, returning -1, 0 or 1.
// Unknown positions carry no meaningful value and must be excluded from
// ordering by the caller (see IsUnknown).
func (p Position) Compare(q Position) int {
	switch {
	case p.Value < q.Value:
		return -1
	case p.Value > q.Value:
		return 1
	}
	return 0
}

// Equal reports whether two positions have the same kind and value. Unknown
// positions are equal to each other regardless of value.
func (p Position) Equal(q Position) bool {
	if p.Kind != q.Kind {
		return false
	}
	return p.Kind == KindUnknown || p.Value == q.Value
}

// Strand is the direction in which the coordinates of a segment are read.
type Strand int8

const (
	// StrandForward reads coordinates in ascending order.
	StrandForward Strand = 1
	// StrandReverse reads coordinates in descending order.
	StrandReverse Strand = -1
	// StrandUnknown marks a segment that is stranded but whose direction has
	// not been determined.
	StrandUnknown Strand = 0
	// StrandNone marks a segment for which strandedness does not apply. It is
	// also the derived strand of a location whose parts disagree.
	StrandNone Strand = -2
)

// String returns a human readable name for the strand.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "forward"
	case StrandReverse:
		return "reverse"
	case StrandUnknown:
		return "unknown"
	}
	return "none"
}

// Segment is one contiguous strand oriented coordinate range, half open as
// [start, end).
type Segment struct {
	Start  Position
	End    Position
	Strand Strand
}

// NewSegment returns a segment spanning start to end. Endpoints supplied in
// descending order are swapped when at least one of them is fuzzy; descending
// exact endpoints are a construction error.
func NewSegment(start, end Position, strand Strand) (Segment, error) {
	if !start.IsUnknown() && !end.IsUnknown() && start.Compare(end) > 0 {
		if start.Kind == KindExact && end.Kind == KindExact {
			return Segment{}, fmt.Errorf("segment start %v is past end %v", start, end)
		}
		start, end = end, start
	}
	return Segment{Start: start, End: end, Strand: strand}, nil
}

// Span returns a segment with exact endpoints. The caller must supply
// start <= end.
func Span(start, end int, strand Strand) Segment {
	return Segment{Start: Exact(start), End: Exact(end), Strand: strand}
}

// Len returns the number of coordinates the segment covers. Fuzzy endpoints
// resolve to their carried value; the result is meaningless if either
// endpoint is unknown.
func (s Segment) Len() int { return s.End.Value - s.Start.Value }

// Contains reports whether the segment covers pos. Segments with an unknown
// endpoint contain nothing.
func (s Segment) Contains(pos int) bool {
	if s.Start.IsUnknown() || s.End.IsUnknown() {
		return false
	}
	return s.Start.Value <= pos && pos < s.End.Value
}

// Equal reports whether two segments have equal endpoints and the same
// strand.
func (s Segment) Equal(o Segment) bool {
	return s.Start.Equal(o.Start) && s.End.Equal(o.End) && s.Strand == o.Strand
}

// Operator describes how the parts of a compound location relate to each
// other.
type Operator int

const (
	// Join means the parts concatenate into one contiguous biological
	// sequence.
	Join Operator = iota
	// Order means the parts occur in the given order but contiguity is not
	// asserted.
	Order
)

// String returns the operator keyword used in location text.
func (op Operator) String() string {
	if op == Order {
		return "order"
	}
	return "join"
}

// Location is the extent of a single feature: one or more segments in
// biological (transcription) order. The zero value is not a valid location;
// use Simple, Compound or Parse.
type Location struct {
	parts    []Segment
	operator Operator
}

// Simple returns a location covering exactly one segment.
func Simple(part Segment) Location {
	return Location{parts: []Segment{part}}
}

// Compound returns a location made of two or more segments combined by op.
// The segments must be listed in biological order, which is not necessarily
// ascending coordinate order.
func Compound(op Operator, parts []Segment) (Location, error) {
	if len(parts) < 2 {
		return Location{}, fmt.Errorf("compound location requires at least 2 parts, got %d", len(parts))
	}
	owned := make([]Segment, len(parts))
	copy(owned, parts)
	return Location{parts: owned, operator: op}, nil
}

// Parts returns a copy of the location's segments in biological order.
func (l Location) Parts() []Segment {
	parts := make([]Segment, len(l.parts))
	copy(parts, l.parts)
	return parts
}

// Operator returns how the parts of a compound location relate. For simple
// locations the value is meaningless.
func (l Location) Operator() Operator { return l.operator }

// IsCompound reports whether the location has more than one part.
func (l Location) IsCompound() bool { return len(l.parts) > 1 }

// Strand returns the strand shared by every part, or StrandNone when the
// parts disagree.
func (l Location) Strand() Strand {
	if len(l.parts) == 0 {
		return StrandNone
	}
	strand := l.parts[0].Strand
	for _, part := range l.parts[1:] {
		if part.Strand != strand {
			return StrandNone
		}
	}
	return strand
}

// Start returns the lowest start position over all parts. Parts are stored
// in biological order, so the first part does not necessarily hold the
// lowest coordinates. Unknown positions are skipped; the result is unknown
// only if every part start is unknown.
func (l Location) Start() Position {
	best := Unknown()
	for _, part := range l.parts {
		if part.Start.IsUnknown() {
			continue
		}
		if best.IsUnknown() || part.Start.Compare(best) < 0 {
			best = part.Start
		}
	}
	return best
}

// End returns the highest end position over all parts, skipping unknown
// positions as Start does.
func (l Location) End() Position {
	best := Unknown()
	for _, part := range l.parts {
		if part.End.IsUnknown() {
			continue
		}
		if best.IsUnknown() || part.End.Compare(best) > 0 {
			best = part.End
		}
	}
	return best
}

// Len returns the total number of coordinates covered by all parts.
func (l Location) Len() int {
	var total int
	for _, part := range l.parts {
		total += part.Len()
	}
	return total
}

// Contains reports whether any part of the location covers pos.
func (l Location) Contains(pos int) bool {
	for _, part := range l.parts {
		if part.Contains(pos) {
			return true
		}
	}
	return false
}

// Equal reports whether two locations have equal parts in the same order,
// combined by the same operator.
func (l Location) Equal(other Location) bool {
	if len(l.parts) != len(other.parts) {
		return false
	}
	if l.IsCompound() && l.operator != other.operator {
		return false
	}
	for i := range l.parts {
		if !l.parts[i].Equal(other.parts[i]) {
			return false
		}
	}
	return true
}

// Combine returns a single simple location spanning the lowest start to the
// highest end over every part of every input. Internal structure and strand
// are discarded, so combining is a lossy bounding operation useful only for
// condensing. Unknown endpoints cannot be ordered and make combining an
// error.
func Combine(locs ...Location) (Location, error) {
	if len(locs) == 0 {
		return Location{}, errors.New("combining requires at least one location")
	}
	var start, end Position
	first := true
	for _, loc := range locs {
		for _, part := range loc.parts {
			if part.Start.IsUnknown() || part.End.IsUnknown() {
				return Location{}, fmt.Errorf("cannot combine locations with unknown endpoints: %v", part)
			}
			if first {
				start, end = part.Start, part.End
				first = false
				continue
			}
			if part.Start.Compare(start) < 0 {
				start = part.Start
			}
			if part.End.Compare(end) > 0 {
				end = part.End
			}
		}
	}
	if first {
		return Location{}, errors.New("cannot combine locations without parts")
	}
	return Simple(Segment{Start: start, End: end, Strand: StrandNone}), nil
}

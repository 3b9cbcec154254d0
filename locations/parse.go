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
	"strconv"
	"strings"
)

// The canonical location text follows feature table notation:
//
//	location   = complement | compound | span
//	complement = "complement(" location ")"
//	compound   = ("join" | "order") "(" location ("," location)* ")"
//	span       = position ".." position mark?
//	position   = "?" | "<" integer | ">" integer | integer
//	mark       = "(?)" | "(.)"
//	integer    = "-"? digit+
//
// A bare span is forward stranded and complement marks the reverse strand.
// The notation has no native way to write the two remaining strands, so a
// span carries the strand column sigils of tabular annotation formats as a
// suffix: "(?)" for an undetermined strand and "(.)" for no strand at all.

// String renders the position in location text form.
func (p Position) String() string {
	switch p.Kind {
	case KindBefore:
		return "<" + strconv.Itoa(p.Value)
	case KindAfter:
		return ">" + strconv.Itoa(p.Value)
	case KindUnknown:
		return "?"
	}
	return strconv.Itoa(p.Value)
}

// String renders the segment in location text form.
func (s Segment) String() string {
	span := s.Start.String() + ".." + s.End.String()
	switch s.Strand {
	case StrandReverse:
		return "complement(" + span + ")"
	case StrandUnknown:
		return span + "(?)"
	case StrandNone:
		return span + "(.)"
	}
	return span
}

// String renders the location in its canonical text form. Parse reverses
// this exactly: Parse(l.String()) is Equal to l for every constructible
// location.
func (l Location) String() string {
	if len(l.parts) == 1 {
		return l.parts[0].String()
	}
	inner := make([]string, len(l.parts))
	for i, part := range l.parts {
		inner[i] = part.String()
	}
	return l.operator.String() + "(" + strings.Join(inner, ",") + ")"
}

// Parse reads a location from its text form. Beyond the canonical form
// produced by String, a complement wrapper around a compound location is
// accepted and normalized by reversing the part order and flipping each
// part's strand. Malformed text fails with a descriptive error and no
// partial result.
func Parse(text string) (Location, error) {
	p := &parser{input: text}
	loc, err := p.location()
	if err != nil {
		return Location{}, fmt.Errorf("parsing location %q: %v", text, err)
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return Location{}, fmt.Errorf("parsing location %q: trailing text at offset %d", text, p.pos)
	}
	return loc, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

// eat consumes the literal token if it appears next in the input.
func (p *parser) eat(token string) bool {
	p.skipSpaces()
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *parser) location() (Location, error) {
	switch {
	case p.eat("complement("):
		inner, err := p.location()
		if err != nil {
			return Location{}, err
		}
		if !p.eat(")") {
			return Location{}, fmt.Errorf("missing ) after complement at offset %d", p.pos)
		}
		return complemented(inner), nil
	case p.eat("join("):
		return p.compound(Join)
	case p.eat("order("):
		return p.compound(Order)
	}
	part, err := p.span()
	if err != nil {
		return Location{}, err
	}
	return Simple(part), nil
}

func (p *parser) compound(op Operator) (Location, error) {
	var parts []Segment
	for {
		loc, err := p.location()
		if err != nil {
			return Location{}, err
		}
		parts = append(parts, loc.parts...)
		if p.eat(",") {
			continue
		}
		if p.eat(")") {
			break
		}
		return Location{}, fmt.Errorf("missing , or ) in %v at offset %d", op, p.pos)
	}
	return Compound(op, parts)
}

func (p *parser) span() (Segment, error) {
	start, err := p.position()
	if err != nil {
		return Segment{}, err
	}
	if !p.eat("..") {
		return Segment{}, fmt.Errorf("missing .. after position at offset %d", p.pos)
	}
	end, err := p.position()
	if err != nil {
		return Segment{}, err
	}
	strand := StrandForward
	if p.eat("(?)") {
		strand = StrandUnknown
	} else if p.eat("(.)") {
		strand = StrandNone
	}
	return NewSegment(start, end, strand)
}

func (p *parser) position() (Position, error) {
	switch {
	case p.eat("?"):
		return Unknown(), nil
	case p.eat("<"):
		value, err := p.integer()
		if err != nil {
			return Position{}, err
		}
		return Before(value), nil
	case p.eat(">"):
		value, err := p.integer()
		if err != nil {
			return Position{}, err
		}
		return After(value), nil
	}
	value, err := p.integer()
	if err != nil {
		return Position{}, err
	}
	return Exact(value), nil
}

func (p *parser) integer() (int, error) {
	p.skipSpaces()
	first := p.pos
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
	}
	digits := p.pos
	for p.pos < len(p.input) && '0' <= p.input[p.pos] && p.input[p.pos] <= '9' {
		p.pos++
	}
	if digits == p.pos {
		return 0, fmt.Errorf("expected number at offset %d", first)
	}
	value, err := strconv.Atoi(p.input[first:p.pos])
	if err != nil {
		return 0, fmt.Errorf("invalid number at offset %d: %v", first, err)
	}
	return value, nil
}

// complemented returns the location read from the other strand: part order
// reverses and directed strands flip.
func complemented(loc Location) Location {
	parts := make([]Segment, len(loc.parts))
	for i, part := range loc.parts {
		switch part.Strand {
		case StrandForward:
			part.Strand = StrandReverse
		case StrandReverse:
			part.Strand = StrandForward
		}
		parts[len(parts)-1-i] = part
	}
	return Location{parts: parts, operator: loc.operator}
}

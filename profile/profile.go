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

// Package profile holds the value types produced by profile scanners: hits
// against a sequence in protein coordinate space and the multipliers used to
// scale rule distances.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Hit is the minimum information carried by any profile hit.
type Hit struct {
	HitID    string  `json:"hit_id"`
	QueryID  string  `json:"query_id"`
	Bitscore float64 `json:"bitscore"`
	EValue   float64 `json:"evalue"`
	Seeds    int     `json:"seeds"`
}

// HSP is a raw high scoring pair as reported by an aligner, before it is
// tied to a seed count.
type HSP struct {
	HitID      string  `json:"hit_id"`
	QueryID    string  `json:"query_id"`
	QueryStart int     `json:"query_start"`
	QueryEnd   int     `json:"query_end"`
	Bitscore   float64 `json:"bitscore"`
	EValue     float64 `json:"evalue"`
}

// HMMERHit is a hit generated by an HMMER profile. QueryStart and QueryEnd
// are zero based protein residue coordinates, half open.
type HMMERHit struct {
	Hit
	QueryStart int `json:"query_start"`
	QueryEnd   int `json:"query_end"`
}

// HMMERHitFromHSP builds a hit from a raw high scoring pair and the seed
// count of the profile that produced it.
func HMMERHitFromHSP(hsp HSP, seeds int) HMMERHit {
	return HMMERHit{
		Hit: Hit{
			HitID:    hsp.HitID,
			QueryID:  hsp.QueryID,
			Bitscore: hsp.Bitscore,
			EValue:   hsp.EValue,
			Seeds:    seeds,
		},
		QueryStart: hsp.QueryStart,
		QueryEnd:   hsp.QueryEnd,
	}
}

// DynamicHit is a hit generated by code rather than an HMM, where scoring
// information may not be relevant.
type DynamicHit struct {
	Hit
}

// NewDynamicHit returns a hit for cdsName against profileName with a neutral
// score.
func NewDynamicHit(cdsName, profileName string) DynamicHit {
	return DynamicHit{Hit{
		HitID:   cdsName,
		QueryID: profileName,
		EValue:  1,
	}}
}

// Multipliers scale the cutoff and neighbourhood distances of rules. Both
// values must be strictly positive.
type Multipliers struct {
	Cutoff        float64 `json:"cutoff"`
	Neighbourhood float64 `json:"neighbourhood"`
}

// DefaultMultipliers returns the neutral multipliers.
func DefaultMultipliers() Multipliers {
	return Multipliers{Cutoff: 1, Neighbourhood: 1}
}

// NewMultipliers returns validated multipliers.
func NewMultipliers(cutoff, neighbourhood float64) (Multipliers, error) {
	if cutoff <= 0 {
		return Multipliers{}, errors.New("cutoff multiplier must be positive")
	}
	if neighbourhood <= 0 {
		return Multipliers{}, errors.New("neighbourhood multiplier must be positive")
	}
	return Multipliers{Cutoff: cutoff, Neighbourhood: neighbourhood}, nil
}

// UnmarshalJSON applies the defaults for absent keys and validates the
// result.
func (m *Multipliers) UnmarshalJSON(data []byte) error {
	type plain Multipliers
	raw := plain(DefaultMultipliers())
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reading multipliers: %v", err)
	}
	validated, err := NewMultipliers(raw.Cutoff, raw.Neighbourhood)
	if err != nil {
		return err
	}
	*m = validated
	return nil
}

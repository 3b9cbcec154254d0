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

// Package config resolves settings for the locget command line interface
// from the YAML file named by the --settings flag.
package config

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/googlegenomics/locget/profile"
)

// Settings holds the distances used when grouping converted hits into
// regions.  Distances are in base pairs before scaling: hits closer together
// than the cutoff distance share a region, and each region is extended on
// both sides by the neighbourhood distance.
type Settings struct {
	Cutoff        int                 `json:"cutoff" yaml:"cutoff"`
	Neighbourhood int                 `json:"neighbourhood" yaml:"neighbourhood"`
	Multipliers   profile.Multipliers `json:"multipliers" yaml:"multipliers"`
}

// DefaultSettings returns settings that leave converted hits unpadded and
// ungrouped.
func DefaultSettings() Settings {
	return Settings{Multipliers: profile.DefaultMultipliers()}
}

// Load returns the settings from the file bound to the settings key in
// viper, or the defaults when no file was named.
func Load() (Settings, error) {
	settings := DefaultSettings()

	path := viper.GetString("settings")
	if path == "" {
		return settings, nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %v", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %v", err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, fmt.Errorf("validating settings: %v", err)
	}
	return settings, nil
}

func (s Settings) validate() error {
	if _, err := profile.NewMultipliers(s.Multipliers.Cutoff, s.Multipliers.Neighbourhood); err != nil {
		return err
	}
	if s.Cutoff < 0 {
		return fmt.Errorf("cutoff distance must not be negative")
	}
	if s.Neighbourhood < 0 {
		return fmt.Errorf("neighbourhood distance must not be negative")
	}
	return nil
}

// CutoffDistance returns the scaled distance under which two hits share a
// region.
func (s Settings) CutoffDistance() int {
	return int(float64(s.Cutoff) * s.Multipliers.Cutoff)
}

// NeighbourhoodDistance returns the scaled distance by which each region is
// extended.
func (s Settings) NeighbourhoodDistance() int {
	return int(float64(s.Neighbourhood) * s.Multipliers.Neighbourhood)
}

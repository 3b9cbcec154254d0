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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Set("settings", "")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got, want := settings.CutoffDistance(), 0; got != want {
		t.Errorf("Wrong cutoff distance: got %d, want %d", got, want)
	}
	if got, want := settings.NeighbourhoodDistance(), 0; got != want {
		t.Errorf("Wrong neighbourhood distance: got %d, want %d", got, want)
	}
	if got, want := settings.Multipliers.Cutoff, 1.0; got != want {
		t.Errorf("Wrong cutoff multiplier: got %v, want %v", got, want)
	}
}

func TestLoad_File(t *testing.T) {
	defer useSettingsFile(t, `
cutoff: 10
neighbourhood: 20
multipliers:
  cutoff: 1.5
  neighbourhood: 0.5
`)()

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got, want := settings.CutoffDistance(), 15; got != want {
		t.Errorf("Wrong cutoff distance: got %d, want %d", got, want)
	}
	if got, want := settings.NeighbourhoodDistance(), 10; got != want {
		t.Errorf("Wrong neighbourhood distance: got %d, want %d", got, want)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	// Omitted multipliers keep their default scale of one.
	defer useSettingsFile(t, "cutoff: 8\n")()

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got, want := settings.CutoffDistance(), 8; got != want {
		t.Errorf("Wrong cutoff distance: got %d, want %d", got, want)
	}
	if got, want := settings.NeighbourhoodDistance(), 0; got != want {
		t.Errorf("Wrong neighbourhood distance: got %d, want %d", got, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		wantError string
	}{
		{"negative cutoff distance", "cutoff: -1\n", "cutoff distance"},
		{"negative neighbourhood distance", "neighbourhood: -1\n", "neighbourhood distance"},
		{"zero cutoff multiplier", "multipliers:\n  cutoff: 0\n", "cutoff multiplier must be positive"},
		{"negative neighbourhood multiplier", "multipliers:\n  neighbourhood: -2\n", "neighbourhood multiplier must be positive"},
		{"malformed yaml", "cutoff: [\n", "parsing settings"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer useSettingsFile(t, tc.text)()

			if _, err := Load(); err == nil || !strings.Contains(err.Error(), tc.wantError) {
				t.Fatalf("Wrong error: got %v, want an error containing %q", err, tc.wantError)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	viper.Set("settings", filepath.Join("testdata", "does-not-exist.yaml"))
	defer viper.Set("settings", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "reading settings") {
		t.Fatalf("Wrong error: got %v, want an error containing %q", err, "reading settings")
	}
}

// useSettingsFile writes text to a temporary settings file and binds it in
// viper.  The returned function removes the file and unbinds it.
func useSettingsFile(t *testing.T, text string) func() {
	t.Helper()

	dir, err := ioutil.TempDir("", "settings")
	if err != nil {
		t.Fatalf("Failed to create temporary directory: %v", err)
	}

	path := filepath.Join(dir, "settings.yaml")
	if err := ioutil.WriteFile(path, []byte(text), 0644); err != nil {
		os.RemoveAll(dir)
		t.Fatalf("Failed to write settings file: %v", err)
	}

	viper.Set("settings", path)
	return func() {
		viper.Set("settings", "")
		os.RemoveAll(dir)
	}
}

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

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/googlegenomics/locget/config"
	"github.com/googlegenomics/locget/locations"
	"github.com/googlegenomics/locget/profile"
	"github.com/googlegenomics/locget/spans"
)

var (
	convertProteinStart int
	convertProteinEnd   int
	convertHitsFile     string
)

// convertCmd maps protein residue ranges onto the DNA coordinates of the
// location that encodes them.
var convertCmd = &cobra.Command{
	Use:   "convert [location]",
	Short: "Map protein residue ranges onto DNA coordinates",
	Long: `Convert maps zero based, half open protein residue ranges onto the DNA
coordinates of the location encoding the protein.  Ranges come either from
the --protein-start and --protein-end flags or, one per hit, from a JSON
file of profile hits named by --hits.

In hits mode the converted coordinates are also grouped into regions: hits
closer together than the cutoff distance share a region and each region is
extended by the neighbourhood distance, both read from the --settings file.`,
	Example: `  locget convert -s 1 -e 3 "join(0..6,9..12)"
  locget convert --hits hits.json -S settings.yaml "complement(9..12)"`,
	Run:                        runConvert,
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
}

func init() {
	convertCmd.Flags().IntVarP(&convertProteinStart, "protein-start", "s", -1, "first protein residue to map (zero based)")
	convertCmd.Flags().IntVarP(&convertProteinEnd, "protein-end", "e", -1, "protein residue at which to stop mapping (exclusive)")
	convertCmd.Flags().StringVarP(&convertHitsFile, "hits", "H", "", "JSON file holding an array of profile hits to map")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	loc, err := locations.Parse(args[0])
	if err != nil {
		log.Fatalf("Failed to parse %q: %v", args[0], err)
	}

	if convertHitsFile == "" {
		if convertProteinStart < 0 || convertProteinEnd < 0 {
			log.Fatalf("Either --hits or both --protein-start and --protein-end must be set")
		}
		dnaStart, dnaEnd, err := locations.ProteinToDNA(convertProteinStart, convertProteinEnd, loc)
		if err != nil {
			log.Fatalf("Failed to convert: %v", err)
		}
		fmt.Printf("%d\t%d\n", dnaStart, dnaEnd)
		return
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	hits, err := readHits(convertHitsFile)
	if err != nil {
		log.Fatalf("Failed to read hits: %v", err)
	}

	var mapped []spans.Span
	for _, hit := range hits {
		dnaStart, dnaEnd, err := locations.ProteinToDNA(hit.QueryStart, hit.QueryEnd, loc)
		if err != nil {
			log.Fatalf("Failed to convert hit %s: %v", hit.HitID, err)
		}
		fmt.Printf("hit\t%s\t%d\t%d\t%d\t%d\n", hit.HitID, hit.QueryStart, hit.QueryEnd, dnaStart, dnaEnd)
		mapped = append(mapped, spans.Span{Start: int64(dnaStart), End: int64(dnaEnd)})
	}

	for _, region := range regions(mapped, settings) {
		fmt.Printf("region\t%d\t%d\n", region.Start, region.End)
	}
}

func readHits(path string) ([]profile.HMMERHit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hits []profile.HMMERHit
	if err := json.NewDecoder(f).Decode(&hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// regions groups mapped hits that lie within the cutoff distance of each
// other and extends each group by the neighbourhood distance.  Region starts
// are clamped at zero; callers truncate region ends at the sequence length.
func regions(mapped []spans.Span, settings config.Settings) []spans.Span {
	merged := mergeWithin(mapped, int64(settings.CutoffDistance()))

	pad := int64(settings.NeighbourhoodDistance())
	for i := range merged {
		merged[i].Start -= pad
		if merged[i].Start < 0 {
			merged[i].Start = 0
		}
		merged[i].End += pad
	}
	return merged
}

// mergeWithin merges spans separated by no more than distance bases.
func mergeWithin(input []spans.Span, distance int64) []spans.Span {
	if len(input) == 0 {
		return nil
	}

	sort.Slice(input, func(i, j int) bool { return input[i].Start < input[j].Start })

	merged := []spans.Span{input[0]}
	for _, s := range input[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End+distance {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

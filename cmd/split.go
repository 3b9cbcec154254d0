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
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/googlegenomics/locget/locations"
)

// splitCmd separates origin bridging locations into their lower and upper
// coordinate halves.
var splitCmd = &cobra.Command{
	Use:                        "split [location] ... [location N]",
	Short:                      "Split origin bridging locations into lower and upper segments",
	Example:                    `  locget split "join(54..60,0..3)"`,
	Run:                        runSplit,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) {
	for _, text := range args {
		loc, err := locations.Parse(text)
		if err != nil {
			log.Fatalf("Failed to parse %q: %v", text, err)
		}
		lower, upper, err := locations.SplitBridging(loc)
		if err != nil {
			log.Fatalf("Failed to split %q: %v", text, err)
		}
		fmt.Printf("lower=%s\tupper=%s\n", segmentList(lower), segmentList(upper))
	}
}

// segmentList renders segments the way they appear inside a join clause.
func segmentList(segments []locations.Segment) string {
	texts := make([]string, len(segments))
	for i, segment := range segments {
		texts[i] = segment.String()
	}
	return strings.Join(texts, ",")
}

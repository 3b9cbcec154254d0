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

	"github.com/spf13/cobra"

	"github.com/googlegenomics/locget/locations"
)

// combineCmd merges locations into the smallest location covering all of
// them.
var combineCmd = &cobra.Command{
	Use:                        "combine [location] [location] ... [location N]",
	Short:                      "Combine locations into the smallest location covering all of them",
	Example:                    `  locget combine "3..7" "5..9"`,
	Run:                        runCombine,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"merge"},
}

func init() {
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) {
	locs := make([]locations.Location, 0, len(args))
	for _, text := range args {
		loc, err := locations.Parse(text)
		if err != nil {
			log.Fatalf("Failed to parse %q: %v", text, err)
		}
		locs = append(locs, loc)
	}
	combined, err := locations.Combine(locs...)
	if err != nil {
		log.Fatalf("Failed to combine: %v", err)
	}
	fmt.Println(combined)
}

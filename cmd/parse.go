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

// parseCmd canonicalizes location text and prints a coordinate summary per
// location.
var parseCmd = &cobra.Command{
	Use:   "parse [location] ... [location N]",
	Short: "Parse location text and print a coordinate summary",
	Example: `  locget parse "complement(join(9..12,0..6))"
  locget parse "1..6" "<3..>9"`,
	Run:                        runParse,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	for _, text := range args {
		loc, err := locations.Parse(text)
		if err != nil {
			log.Fatalf("Failed to parse %q: %v", text, err)
		}
		fmt.Printf("%s\tstart=%d\tend=%d\tstrand=%s\tlength=%d\tbridges_origin=%t\n",
			loc, loc.Start().Value, loc.End().Value, loc.Strand(), loc.Len(), locations.BridgesOrigin(loc))
	}
}

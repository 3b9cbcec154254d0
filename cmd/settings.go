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

	"github.com/spf13/cobra"

	"github.com/googlegenomics/locget/config"
)

// settingsCmd prints the effective settings after the --settings file has
// been applied on top of the defaults.
var settingsCmd = &cobra.Command{
	Use:                        "settings",
	Short:                      "Print the effective settings as JSON",
	Example:                    `  locget settings -S settings.yaml`,
	Run:                        runSettings,
	Args:                       cobra.NoArgs,
	SuggestionsMinimumDistance: 2,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	output, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode settings: %v", err)
	}
	fmt.Println(string(output))
}

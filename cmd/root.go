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

// Package cmd implements the locget command line interface.
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the base command, run when locget is called without arguments.
var rootCmd = &cobra.Command{
	Use:   "locget",
	Short: "Inspect, transform and combine genomic feature locations",
	Long: `locget parses feature locations written in annotation table notation,
splits locations that bridge the origin of a circular sequence, maps protein
residue ranges onto the underlying DNA coordinates and combines multiple
locations into the smallest location covering all of them.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringP("settings", "S", "", "YAML settings file with conversion distances and multipliers")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
}

// Execute runs the root command.  It is called once, from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

//  Copyright (c) 2024 The pdgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	graphType  string
	filePath   string
	configPath string
	gzipOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "pdgtool",
	Short: "Print a compilation unit's dependency graph as JSON",
	Long: `pdgtool lowers a single compilation unit, builds a dependency graph for every method it
declares, and prints the result as a pretty-printed JSON document.`,
	RunE: runDump,
}

// Execute runs the root command, returning the error cobra reports (already printed to stderr by
// cobra's own error handling) so main can translate it into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&graphType, "type", "t", "ddg", `graph type to print ("ddg")`)
	rootCmd.Flags().StringVarP(&filePath, "filePath", "f", "", "path to the compilation unit to analyze")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML configuration file overlaying the defaults")
	rootCmd.Flags().BoolVar(&gzipOutput, "gzip", false, "gzip-compress the JSON document written to standard output")
	_ = rootCmd.MarkFlagRequired("filePath")
}

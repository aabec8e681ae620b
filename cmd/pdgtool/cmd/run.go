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
	"bytes"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/pdgraph/pdgraph/config"
	"github.com/pdgraph/pdgraph/ddgjson"
	"github.com/pdgraph/pdgraph/driver"
	"github.com/pdgraph/pdgraph/jsonast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM drops a leading UTF-8 byte-order mark, since source text is decoded BOM-tolerant.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

func runDump(_ *cobra.Command, _ []string) error {
	if graphType != "ddg" {
		return fmt.Errorf(`pdgtool: unsupported -t/--type %q (only "ddg" is currently accepted)`, graphType)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("pdgtool: %w", err)
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("pdgtool: reading %q: %w", filePath, err)
	}
	source := string(stripBOM(raw))

	d, err := driver.New(jsonast.Parser{}, cfg)
	if err != nil {
		return fmt.Errorf("pdgtool: %w", err)
	}

	results, err := d.GetDDG(source)
	if err != nil {
		return fmt.Errorf("pdgtool: analyzing %q: %w", filePath, err)
	}

	graphs := make([]ddgjson.MethodGraph, len(results))
	for i, r := range results {
		graphs[i] = ddgjson.MethodGraph{Method: r.Method, Graph: r.Graph}
	}

	doc, err := ddgjson.Build(graphs, cfg.Depgraph.DefUse)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdgtool: building JSON document: %v\n%s\n", err, debug.Stack())
		return err
	}

	data, err := ddgjson.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdgtool: serializing JSON document: %v\n%s\n", err, debug.Stack())
		return err
	}

	if gzipOutput {
		w := gzip.NewWriter(os.Stdout)
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("pdgtool: writing gzip output: %w", err)
		}
		return w.Close()
	}

	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

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

// Package config bundles every user-configurable knob the analyzer exposes, and loads overrides
// for them from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/pdgraph/pdgraph/depgraph"
)

// DefaultASTCacheCapacity is the bounded FIFO AST-text cache's default capacity.
const DefaultASTCacheCapacity = 64

// Config is the top-level configuration the driver and CLI load and thread through every
// analysis. Depgraph carries both the def/use analyzer's knobs (field-aliasing, method-def
// classification table) and the three PDG dependence toggles, so one struct travels end to end.
type Config struct {
	Depgraph         depgraph.Config `yaml:"depgraph"`
	ASTCacheCapacity int             `yaml:"astCacheCapacity"`
}

// DefaultConfig returns the configuration matching the reference implementation's defaults.
func DefaultConfig() Config {
	return Config{
		Depgraph:         depgraph.DefaultConfig(),
		ASTCacheCapacity: DefaultASTCacheCapacity,
	}
}

// LoadConfig reads the YAML file at path and overlays it onto DefaultConfig(). A field the file
// omits keeps its default value, since Unmarshal decodes into the already-populated struct rather
// than a zero value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return &cfg, nil
}

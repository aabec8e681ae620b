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

package depgraph

import "github.com/pdgraph/pdgraph/defuse"

// ControlDependenceConfig tunes control-dependence construction.
type ControlDependenceConfig struct {
	// Enabled, when false, skips control-dependence edges entirely.
	Enabled bool `yaml:"enabled"`
	// FromEntryToAll additionally wires a true-labeled control edge from MethodEnter to every
	// top-level statement of the method body, mirroring the same dependence an If's condition has
	// on its then-branch: the top-level body is control-dependent on the method simply running.
	FromEntryToAll bool `yaml:"fromEntryToAll"`
	// FromEntryToParameters additionally wires a true-labeled control edge from MethodEnter to
	// every Parameter node.
	FromEntryToParameters bool `yaml:"fromEntryToParameters"`
}

// DataDependenceConfig tunes data-dependence construction.
type DataDependenceConfig struct {
	// Enabled, when false, skips data-dependence edges (and the MethodEnter-to-parameter def
	// edges) entirely.
	Enabled bool `yaml:"enabled"`
}

// Config bundles every PDG-construction knob, including the def/use analyzer configuration it is
// built from.
type Config struct {
	ControlDependence   ControlDependenceConfig `yaml:"controlDependence"`
	DataDependence      DataDependenceConfig    `yaml:"dataDependence"`
	ExecutionDependence bool                    `yaml:"executionDependence"`
	DefUse              defuse.Config           `yaml:"defUse"`
}

// DefaultConfig returns the configuration that builds a complete PDG: all three dependence kinds
// enabled, with control dependence limited to the direct parent/child relationships a condition
// actually carries (no blanket MethodEnter fan-out).
func DefaultConfig() Config {
	return Config{
		ControlDependence: ControlDependenceConfig{
			Enabled:               true,
			FromEntryToAll:        false,
			FromEntryToParameters: false,
		},
		DataDependence:      DataDependenceConfig{Enabled: true},
		ExecutionDependence: true,
		DefUse:              defuse.DefaultConfig(),
	}
}

// DDGConfig derives a data-dependence-only configuration from cfg: control dependence and
// execution dependence are disabled, leaving only the data dependence graph.
func DDGConfig(cfg Config) Config {
	cfg.ControlDependence.Enabled = false
	cfg.ExecutionDependence = false
	return cfg
}

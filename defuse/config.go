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

// Package defuse computes, for every program element, the set of variable definitions and uses
// it is responsible for, graded by the certainty lattices in package scope. Computation is
// memoized per element and resolves field aliases (e.g. this.source == source) through the
// lexical scope manager attached to each method.
package defuse

import "github.com/pdgraph/pdgraph/scope"

// MethodNameClassification is the configurable name-based table the method-invocation
// def heuristic consults to guess whether a call mutates its receiver. The default table
// reproduces the fixed lists observed in the reference implementation, including the
// questionable inclusion of the "contains" prefix under DEF (see Config.ClassifyMethodDef).
type MethodNameClassification struct {
	NoDefNames    map[string]struct{} `yaml:"noDefNames"`
	DefNames      map[string]struct{} `yaml:"defNames"`
	NoDefPrefixes []string            `yaml:"noDefPrefixes"`
	DefPrefixes   []string            `yaml:"defPrefixes"`
}

// DefaultMethodNameClassification returns the baseline receiver-mutation heuristic table.
func DefaultMethodNameClassification() MethodNameClassification {
	set := func(names ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(names))
		for _, n := range names {
			m[n] = struct{}{}
		}
		return m
	}
	return MethodNameClassification{
		NoDefNames:    set("equals", "hashCode", "toString", "isEmpty", "size", "length", "stream"),
		DefNames:      set("push", "pop", "offer", "poll"),
		NoDefPrefixes: []string{"get", "print", "debug", "trace", "info", "warn", "error"},
		// "contains" is deliberately present: callers surprised by this should override the
		// table in their own Config rather than expect this package to "fix" it silently.
		DefPrefixes: []string{"set", "add", "remove", "put", "insert", "contains"},
	}
}

// Config bundles every user-tunable knob the analyzer consults.
type Config struct {
	// TreatNonLocalAsField promotes an unresolved simple-name def/use to a this.<name> field
	// reference when no local binding can be found for it.
	TreatNonLocalAsField bool `yaml:"treatNonLocalAsField"`
	// TreatFieldExcludeUppercase, when TreatNonLocalAsField is set, suppresses the promotion for
	// names whose first character is uppercase (commonly a constant or a type reference rather
	// than a field).
	TreatFieldExcludeUppercase bool `yaml:"treatFieldExcludeUppercase"`
	// TreatMayDefAsDef, when set, treats a MAY_DEF the same as a DEF for reaching-definitions
	// purposes. Consumed by package depgraph; carried here so one Config travels end to end.
	TreatMayDefAsDef bool `yaml:"treatMayDefAsDef"`
	// TreatMayUseAsUse, when set (the default), treats a MAY_USE the same as a USE for emitting
	// data edges. Consumed by package depgraph.
	TreatMayUseAsUse bool `yaml:"treatMayUseAsUse"`

	Classification MethodNameClassification `yaml:"classification"`
}

// DefaultConfig returns the configuration matching the reference implementation's defaults.
func DefaultConfig() Config {
	return Config{
		TreatNonLocalAsField:       false,
		TreatFieldExcludeUppercase: false,
		TreatMayDefAsDef:           false,
		TreatMayUseAsUse:           true,
		Classification:             DefaultMethodNameClassification(),
	}
}

// ClassifyMethodDef classifies methodName by the method-defs heuristic: names and prefixes with
// an explicit NO_DEF entry win over DEF entries on exact-name match; prefix matches are tried
// only once no exact name matched; anything unclassified is MAY_DEF (a conservative default for
// unknown receiver mutation).
func (c Config) ClassifyMethodDef(methodName string) scope.DefCertainty {
	if _, ok := c.Classification.NoDefNames[methodName]; ok {
		return scope.NoDef
	}
	if _, ok := c.Classification.DefNames[methodName]; ok {
		return scope.Def
	}
	for _, p := range c.Classification.NoDefPrefixes {
		if hasPrefix(methodName, p) {
			return scope.NoDef
		}
	}
	for _, p := range c.Classification.DefPrefixes {
		if hasPrefix(methodName, p) {
			return scope.Def
		}
	}
	return scope.MayDef
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

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

// Package driver wires packages lower, flow, and depgraph together behind the three entry points
// a caller actually needs: CFGs, DDGs (data-dependence-only PDGs), and full PDGs for every method
// declared in a compilation unit's source text.
package driver

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/pdgraph/pdgraph/config"
	"github.com/pdgraph/pdgraph/depgraph"
	"github.com/pdgraph/pdgraph/defuse"
	"github.com/pdgraph/pdgraph/flow"
	"github.com/pdgraph/pdgraph/lower"
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/sourceast"
)

// ErrNilParser is returned by New when parser is nil.
var ErrNilParser = errors.New("driver: parser is nil")

// ErrNilRoot is returned when a Parser reports success but hands back a nil AST root.
var ErrNilRoot = errors.New("driver: parser returned a nil root with no error")

// Parser produces the external AST contract (package sourceast) from raw compilation-unit source
// text. The source-text grammar itself is out of scope for this module (see package sourceast's
// doc comment); Parser is the seam a caller plugs a real parser into.
type Parser interface {
	// Parse returns the root Class node of source, a LineTable for offset-to-line conversion, and
	// an optional TypeResolver (nil is acceptable; lower then degrades method-invocation apiName
	// resolution to its textual form).
	Parse(source string) (root sourceast.Node, lines sourceast.LineTable, resolver sourceast.TypeResolver, err error)
}

// Driver is the stateful entry point for CFG/DDG/PDG construction over compilation-unit source
// text. It is safe for concurrent use: the AST cache is independently locked, and every
// lowering/graph-build call is self-contained (package pe's id counter is the only shared state
// underneath, and it is already atomic).
type Driver struct {
	parser Parser
	config config.Config
	cache  *astCache
}

// New constructs a Driver. cfg.ASTCacheCapacity governs the bounded FIFO AST-text cache.
func New(parser Parser, cfg config.Config) (*Driver, error) {
	if parser == nil {
		return nil, ErrNilParser
	}
	return &Driver{parser: parser, config: cfg, cache: newASTCache(cfg.ASTCacheCapacity)}, nil
}

// MethodResult pairs a lowered method with one derived graph. GetCFG/GetDDG/GetPDG return these
// in method id order rather than a plain Go map, since map iteration order is unspecified and the
// driver API owes its caller a stable order (methods are declared, and so lowered and id-assigned,
// in source order).
type MethodResult[T any] struct {
	Method *pe.Method
	Graph  T
}

// GetCFG returns the control flow graph of every method declared in source, in method id order.
func (d *Driver) GetCFG(source string) ([]MethodResult[*flow.CFG], error) {
	cls, err := d.lowerClass(source)
	if err != nil {
		return nil, err
	}
	return protect(func() ([]MethodResult[*flow.CFG], error) {
		results := make([]MethodResult[*flow.CFG], 0, len(cls.Methods))
		for _, m := range cls.Methods {
			results = append(results, MethodResult[*flow.CFG]{Method: m, Graph: flow.Build(m)})
		}
		return results, nil
	})
}

// GetDDG returns the data-dependence graph (a PDG built with control- and execution-dependence
// disabled) of every method declared in source, in method id order.
func (d *Driver) GetDDG(source string) ([]MethodResult[*depgraph.PDG], error) {
	return d.getPDG(source, depgraph.DDGConfig(d.config.Depgraph))
}

// GetPDG returns the full program dependency graph (control, data, and execution dependence all
// enabled per configuration) of every method declared in source, in method id order.
func (d *Driver) GetPDG(source string) ([]MethodResult[*depgraph.PDG], error) {
	return d.getPDG(source, d.config.Depgraph)
}

func (d *Driver) getPDG(source string, cfg depgraph.Config) ([]MethodResult[*depgraph.PDG], error) {
	cls, err := d.lowerClass(source)
	if err != nil {
		return nil, err
	}
	return protect(func() ([]MethodResult[*depgraph.PDG], error) {
		results := make([]MethodResult[*depgraph.PDG], 0, len(cls.Methods))
		for _, m := range cls.Methods {
			analyzer := defuse.NewAnalyzer(cfg.DefUse, m.ScopeManager)
			results = append(results, MethodResult[*depgraph.PDG]{Method: m, Graph: depgraph.Build(m, analyzer, cfg)})
		}
		return results, nil
	})
}

// lowerClass parses and lowers source into a *pe.Class, consulting the AST-text cache first.
func (d *Driver) lowerClass(source string) (*pe.Class, error) {
	if cls, ok := d.cache.get(source); ok {
		return cls, nil
	}

	root, lines, resolver, err := d.parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing compilation unit: %w", err)
	}
	if root == nil {
		return nil, ErrNilRoot
	}

	cls, err := protect(func() (*pe.Class, error) {
		ctx := lower.NewContext(lines, resolver)
		return ctx.LowerClass(root), nil
	})
	if err != nil {
		return nil, fmt.Errorf("lowering compilation unit: %w", err)
	}

	d.cache.put(source, cls)
	return cls, nil
}

// protect runs f, converting a panic inside it into an error instead of crashing the caller. CFG
// and PDG construction do not recover from internal inconsistencies themselves (spec-level
// "Analyzer contract violations" are meant to fail fast and loud during development), but a
// driver embedded in a long-running service should not take the whole process down over one
// malformed compilation unit, so the boundary around each unit recovers and reports.
func protect[T any](f func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal panic: %v\n%s", r, debug.Stack())
		}
	}()
	return f()
}

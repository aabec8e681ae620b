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

// Package ddgjson renders a built data/program dependency graph as the stable, comparable JSON
// document external tooling consumes: one entry per method, one variable entry per distinct
// (scope, name) pair, with sorted line-number sets for its defs and uses.
package ddgjson

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/pretty"

	"github.com/pdgraph/pdgraph/defuse"
	"github.com/pdgraph/pdgraph/depgraph"
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/scope"
)

// ScopeJSON identifies the lexical block a variable is bound to: Type is "Method" for the
// method-level scope or the statement-category name (e.g. "If", "For", "Try") for a nested block
// scope, and LineNumber is that block's starting source line.
type ScopeJSON struct {
	Type       string `json:"type"`
	LineNumber int    `json:"lineNumber"`
}

// VariableJSON is one (scope, name)-deduplicated variable entry within a method's entry.
type VariableJSON struct {
	ID                 int        `json:"id"`
	Scope              *ScopeJSON `json:"scopeJson"`
	Name               string     `json:"name"`
	DefStmtLineNumbers []int      `json:"defStmtLineNumbers"`
	UseStmtLineNumbers []int      `json:"useStmtLineNumbers"`
}

// MethodEntryJSON is the value half of a Document entry.
type MethodEntryJSON struct {
	VariableJsons []*VariableJSON `json:"variableJsons"`
}

// Document is the top-level DDG JSON document: "<methodName>#<startLine>" mapped to that
// method's entry. encoding/json sorts string map keys when marshaling, so the serialized document
// is deterministic without this package doing its own key sorting.
type Document map[string]*MethodEntryJSON

// MethodGraph pairs a lowered method with a dependency graph built over it (a DDG or a full PDG;
// this package only reads def/use and scope information, so either shape is accepted).
type MethodGraph struct {
	Method *pe.Method
	Graph  *depgraph.PDG
}

// Build renders methods into a Document. duConfig must be the same defuse.Config each Graph was
// built with (depgraph.Config.DefUse), since variable identity and certainty thresholds must
// match what produced the graph being rendered.
func Build(methods []MethodGraph, duConfig defuse.Config) (Document, error) {
	doc := make(Document, len(methods))
	for _, mg := range methods {
		if mg.Method == nil || mg.Graph == nil {
			return nil, fmt.Errorf("ddgjson: nil method or graph in input")
		}
		key := fmt.Sprintf("%s#%d", mg.Method.Name, mg.Method.Span.Start)
		entry, err := buildMethodEntry(mg.Method, mg.Graph, duConfig)
		if err != nil {
			return nil, fmt.Errorf("building entry for %s: %w", key, err)
		}
		doc[key] = entry
	}
	return doc, nil
}

// Marshal renders doc as pretty-printed JSON.
func Marshal(doc Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("ddgjson: marshaling document: %w", err)
	}
	return pretty.Pretty(raw), nil
}

type blockInfo struct {
	kind string
	line int
}

// buildMethodEntry walks (PDG.Nodes \ MethodEnter \ Parameter) in node order, folding each node's
// own defs (before its own uses, per node) into per-(scope, name) variable entries, assigning ids
// in first-appearance order.
func buildMethodEntry(m *pe.Method, pdg *depgraph.PDG, duConfig defuse.Config) (*MethodEntryJSON, error) {
	analyzer := defuse.NewAnalyzer(duConfig, m.ScopeManager)
	analyzer.MethodDefs(m)
	analyzer.MethodUses(m)

	blocks := blockIndex(m)

	type accumulator struct {
		json     *VariableJSON
		defLines map[int]struct{}
		useLines map[int]struct{}
	}
	byKey := make(map[string]*accumulator)
	var order []*accumulator
	nextID := 0

	record := func(v *scope.Var, line int, isDef bool) {
		key := variableKey(v, blocks)
		acc, ok := byKey[key]
		if !ok {
			acc = &accumulator{
				json:     &VariableJSON{ID: nextID, Scope: resolveScope(v, blocks), Name: v.MainName},
				defLines: make(map[int]struct{}),
				useLines: make(map[int]struct{}),
			}
			nextID++
			byKey[key] = acc
			order = append(order, acc)
		}
		if isDef {
			acc.defLines[line] = struct{}{}
		} else {
			acc.useLines[line] = struct{}{}
		}
	}

	for _, id := range pdg.Nodes.Keys() {
		node, ok := pdg.Nodes.Get(id)
		if !ok {
			continue
		}
		if node.Kind == depgraph.NodeMethodEnter || node.Kind == depgraph.NodeParameter {
			continue
		}
		line := elementLine(node.PE)
		for _, d := range depgraph.ElementDefs(analyzer, node.PE) {
			record(d.Var, line, true)
		}
		for _, u := range depgraph.ElementUses(analyzer, node.PE) {
			record(u.Var, line, false)
		}
	}

	result := make([]*VariableJSON, len(order))
	for i, acc := range order {
		acc.json.DefStmtLineNumbers = sortedKeys(acc.defLines)
		acc.json.UseStmtLineNumbers = sortedKeys(acc.useLines)
		result[i] = acc.json
	}
	return &MethodEntryJSON{VariableJsons: result}, nil
}

// variableKey merges two variable entries iff their (scope, name) are equal. Scope equality is
// decided by the underlying Scope's block id, not by the rendered ScopeJSON text.
func variableKey(v *scope.Var, blocks map[int]blockInfo) string {
	if !v.HasScope() {
		return "null\x00" + v.MainName
	}
	if _, ok := blocks[v.ScopeID]; !ok {
		return "null\x00" + v.MainName
	}
	return strconv.Itoa(v.ScopeID) + "\x00" + v.MainName
}

func resolveScope(v *scope.Var, blocks map[int]blockInfo) *ScopeJSON {
	if !v.HasScope() {
		return nil
	}
	info, ok := blocks[v.ScopeID]
	if !ok {
		return nil
	}
	return &ScopeJSON{Type: info.kind, LineNumber: info.line}
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func elementLine(e pe.Element) int {
	switch v := e.(type) {
	case *pe.Statement:
		return v.Span.Start
	case *pe.Expression:
		return v.Span.Start
	default:
		return 0
	}
}

// blockIndex maps every scope-bearing block's PE id (the method itself, plus every block-leading
// statement nested anywhere under it) to the (type, line) pair a ScopeJSON reports.
func blockIndex(m *pe.Method) map[int]blockInfo {
	idx := map[int]blockInfo{m.ID(): {kind: "Method", line: m.Span.Start}}
	var walk func(statements []*pe.Statement)
	walk = func(statements []*pe.Statement) {
		for _, s := range statements {
			if s.IsBlockLeading() {
				idx[s.ID()] = blockInfo{kind: statementCategoryName(s.Category), line: s.Span.Start}
			}
			walk(s.Statements)
			walk(s.ElseStatements)
			walk(s.CatchStatements)
			if s.FinallyStatement != nil {
				walk([]*pe.Statement{s.FinallyStatement})
			}
		}
	}
	walk(m.Statements)
	return idx
}

func statementCategoryName(c pe.StatementCategory) string {
	switch c {
	case pe.StmtSimpleBlock:
		return "SimpleBlock"
	case pe.StmtIf:
		return "If"
	case pe.StmtFor:
		return "For"
	case pe.StmtForeach:
		return "Foreach"
	case pe.StmtWhile:
		return "While"
	case pe.StmtDo:
		return "Do"
	case pe.StmtTry:
		return "Try"
	case pe.StmtCatch:
		return "Catch"
	case pe.StmtSwitch:
		return "Switch"
	case pe.StmtSynchronized:
		return "Synchronized"
	default:
		return "Block"
	}
}

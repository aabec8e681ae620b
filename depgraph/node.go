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

// Package depgraph builds the program dependency graph of a method: its control dependencies, its
// data dependencies between defs and uses of the same variable, and, optionally, its execution
// order, layered on top of the control flow graph built by package flow.
package depgraph

import "github.com/pdgraph/pdgraph/pe"

// NodeKind distinguishes the PDG node variants.
type NodeKind int

// PDG node kinds.
const (
	// NodeMethodEnter is the single synthetic node representing the method's own entry; it wraps
	// no CFG node, and its PE is the *pe.Method itself.
	NodeMethodEnter NodeKind = iota
	// NodeParameter wraps a declared parameter; one per entry in Method.Parameters.
	NodeParameter
	NodeControl
	NodeBreak
	NodeContinue
	NodeSwitchCase
	// NodeExpression wraps a bare Expression CFG leaf: a For statement's initializer or updater.
	NodeExpression
	NodeNormalStatement
)

// EdgeKind distinguishes the PDG edge variants.
type EdgeKind int

// PDG edge kinds.
const (
	EdgeControl EdgeKind = iota
	EdgeData
	EdgeExecution
)

// Node is a PDG node. PE is the *pe.Method for NodeMethodEnter, the *pe.VariableDeclaration for
// NodeParameter, and the wrapped CFG node's PE for every other kind.
type Node struct {
	id       int
	Kind     NodeKind
	PE       pe.Element
	Forward  []*Edge
	Backward []*Edge
}

// ID returns this node's id: the wrapped PE's id, or the owning method's id for the synthetic
// MethodEnter node.
func (n *Node) ID() int { return n.id }

// Edge is a directed PDG edge. TrueDependence is meaningful only for EdgeControl; VariableName
// only for EdgeData.
type Edge struct {
	From           *Node
	To             *Node
	Kind           EdgeKind
	TrueDependence bool
	VariableName   string
}

// connect records a new edge unless an equal one (by (from.id, to.id, kind, and the
// kind-specific label)) is already present.
func connect(from, to *Node, kind EdgeKind, trueDependence bool, variableName string) *Edge {
	for _, e := range from.Forward {
		if e.To != to || e.Kind != kind {
			continue
		}
		switch kind {
		case EdgeControl:
			if e.TrueDependence == trueDependence {
				return e
			}
		case EdgeData:
			if e.VariableName == variableName {
				return e
			}
		default:
			return e
		}
	}
	e := &Edge{From: from, To: to, Kind: kind, TrueDependence: trueDependence, VariableName: variableName}
	from.Forward = append(from.Forward, e)
	to.Backward = append(to.Backward, e)
	return e
}

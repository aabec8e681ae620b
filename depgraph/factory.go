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

import (
	"sync"

	"github.com/pdgraph/pdgraph/flow"
	"github.com/pdgraph/pdgraph/pe"
)

// nodeFactory interns PDG nodes by id, mirroring package flow's own node factory: MethodEnter is
// keyed by the method's id, a Parameter by its VariableDeclaration's id, and every other node by
// the id of the CFG node it is translated from (which is in turn keyed by the PE that CFG node
// wraps).
type nodeFactory struct {
	mu   sync.Mutex
	byID map[int]*Node
}

func newNodeFactory() *nodeFactory {
	return &nodeFactory{byID: make(map[int]*Node)}
}

func (f *nodeFactory) methodEnter(m *pe.Method) *Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.byID[m.ID()]; ok {
		return n
	}
	n := &Node{id: m.ID(), Kind: NodeMethodEnter, PE: m}
	f.byID[m.ID()] = n
	return n
}

func (f *nodeFactory) parameter(p *pe.VariableDeclaration) *Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.byID[p.ID()]; ok {
		return n
	}
	n := &Node{id: p.ID(), Kind: NodeParameter, PE: p}
	f.byID[p.ID()] = n
	return n
}

// fromCFGNode translates a flow.Node into its PDG counterpart, interning by id. Build runs
// flow.Build first, which guarantees every node it hands back has a real PE (pseudo nodes are
// eliminated before the CFG is returned), so translateKind always has a concrete PE to dispatch on.
func (f *nodeFactory) fromCFGNode(n *flow.Node) *Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byID[n.ID()]; ok {
		return existing
	}
	pdgNode := &Node{id: n.ID(), Kind: translateKind(n), PE: n.PE}
	f.byID[n.ID()] = pdgNode
	return pdgNode
}

// translateKind maps a CFG node's own classification to the PDG node kind it becomes. Control,
// Break, Continue, and SwitchCase carry straight over; an ordinary CFG node wrapping a bare
// Expression (a For statement's initializer or updater, built as its own CFG leaf) becomes
// NodeExpression, and everything else becomes NodeNormalStatement.
func translateKind(n *flow.Node) NodeKind {
	switch n.Kind {
	case flow.NodeControl:
		return NodeControl
	case flow.NodeBreak:
		return NodeBreak
	case flow.NodeContinue:
		return NodeContinue
	case flow.NodeSwitchCase:
		return NodeSwitchCase
	default:
		if _, ok := n.PE.(*pe.Expression); ok {
			return NodeExpression
		}
		return NodeNormalStatement
	}
}

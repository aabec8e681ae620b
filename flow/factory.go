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

package flow

import (
	"sync"

	"github.com/pdgraph/pdgraph/pe"
)

// nodeFactory interns CFG nodes by the id of the PE they wrap, so that two builder calls asking
// for the node of the same PE within one CFG build get back the identical *Node. Pseudo nodes are
// deliberately never interned: each call to makePseudo allocates a fresh one, since a pseudo is a
// structural placeholder with no PE identity to key on.
type nodeFactory struct {
	mu     sync.Mutex
	byElem map[int]*Node
}

func newNodeFactory() *nodeFactory {
	return &nodeFactory{byElem: make(map[int]*Node)}
}

// make returns the interned node for e, creating it on first request. A nil e always yields a
// fresh Pseudo node rather than participating in interning.
func (f *nodeFactory) make(e pe.Element) *Node {
	if e == nil {
		return f.makePseudo()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.byElem[e.ID()]; ok {
		return n
	}
	n := &Node{id: e.ID(), Kind: classify(e), PE: e}
	f.byElem[e.ID()] = n
	return n
}

// makeControl is like make, but always classifies the node as NodeControl regardless of what e's
// own PE category would otherwise imply; used for the condition PE of a loop, branch, or switch.
func (f *nodeFactory) makeControl(e pe.Element) *Node {
	if e == nil {
		return f.makePseudo()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.byElem[e.ID()]; ok {
		return n
	}
	n := &Node{id: e.ID(), Kind: NodeControl, PE: e}
	f.byElem[e.ID()] = n
	return n
}

// makePseudo allocates a fresh, non-interned placeholder node with no PE.
func (f *nodeFactory) makePseudo() *Node {
	return &Node{id: pe.NextID(), Kind: NodePseudo}
}

// classify maps a Statement PE to its CFG node kind; every other PE variant is Normal. Condition
// PEs do not reach classify: makeControl builds their nodes as NodeControl directly.
func classify(e pe.Element) NodeKind {
	s, ok := e.(*pe.Statement)
	if !ok {
		return NodeNormal
	}
	switch s.Category {
	case pe.StmtBreak:
		return NodeBreak
	case pe.StmtContinue:
		return NodeContinue
	case pe.StmtCase:
		return NodeSwitchCase
	default:
		return NodeNormal
	}
}

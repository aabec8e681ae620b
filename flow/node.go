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

// Package flow builds the intraprocedural control flow graph of a method's PE body.
package flow

import "github.com/pdgraph/pdgraph/pe"

// NodeKind distinguishes the CFG node variants.
type NodeKind int

// CFG node kinds.
const (
	NodeNormal NodeKind = iota
	NodeControl
	NodeBreak
	NodeContinue
	NodeSwitchCase
	NodePseudo
)

// EdgeKind distinguishes the CFG edge variants.
type EdgeKind int

// CFG edge kinds.
const (
	EdgeNormal EdgeKind = iota
	EdgeControl
	EdgeJump
)

// Node is a CFG node: either a real node wrapping a PE (Normal/Control/Break/Continue/
// SwitchCase), or a Pseudo placeholder carrying a fresh id and no PE, used internally while the
// graph is under construction and removed by pseudo-node elimination before Build returns.
type Node struct {
	id       int
	Kind     NodeKind
	PE       pe.Element
	Forward  []*Edge
	Backward []*Edge
}

// ID returns this node's id: the wrapped PE's id for every real node, or a fresh process-wide id
// for a Pseudo node.
func (n *Node) ID() int { return n.id }

// Edge is a directed CFG edge. Label is only meaningful when Kind is EdgeControl.
type Edge struct {
	From  *Node
	To    *Node
	Kind  EdgeKind
	Label bool
}

// connect records a new edge from -> to of the given kind, unless an equal edge (by (from.id,
// to.id, kind), plus label for a Control edge) is already present, and appends it to from's forward set and to's backward set.
func connect(from, to *Node, kind EdgeKind, label bool) *Edge {
	for _, e := range from.Forward {
		if e.To == to && e.Kind == kind && (kind != EdgeControl || e.Label == label) {
			return e
		}
	}
	e := &Edge{From: from, To: to, Kind: kind, Label: label}
	from.Forward = append(from.Forward, e)
	to.Backward = append(to.Backward, e)
	return e
}

// makeEdge implements the generic edge-construction contract: a Control source defaults to a
// false-labeled edge (the caller uses makeControlEdge directly when a true label is wanted), a
// Break/Continue source produces a Jump edge, and every other source produces a Normal edge.
func makeEdge(from, to *Node) *Edge {
	switch from.Kind {
	case NodeControl:
		return connect(from, to, EdgeControl, false)
	case NodeBreak, NodeContinue:
		return connect(from, to, EdgeJump, true)
	default:
		return connect(from, to, EdgeNormal, false)
	}
}

// makeControlEdge connects from -> to as an explicitly labeled Control edge, regardless of
// from's kind; used for the true-labeled edges a control node sends into its guarded body.
func makeControlEdge(from, to *Node, label bool) *Edge {
	return connect(from, to, EdgeControl, label)
}

// detach removes every edge referencing n from its neighbors' forward/backward sets, then clears
// n's own edge sets. Used only during pseudo-node elimination.
func detach(n *Node) {
	for _, e := range n.Backward {
		e.From.Forward = removeEdgeTo(e.From.Forward, n)
	}
	for _, e := range n.Forward {
		e.To.Backward = removeEdgeFrom(e.To.Backward, n)
	}
	n.Backward = nil
	n.Forward = nil
}

func removeEdgeTo(edges []*Edge, to *Node) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.To != to {
			out = append(out, e)
		}
	}
	return out
}

func removeEdgeFrom(edges []*Edge, from *Node) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.From != from {
			out = append(out, e)
		}
	}
	return out
}

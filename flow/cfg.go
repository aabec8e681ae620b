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
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/util/sortedset"
)

func idLess(a, b int) bool { return a < b }

func newNodeSet() *sortedset.Set[int, *Node] {
	return sortedset.New[int, *Node](idLess)
}

// pendingJump records an unresolved break or continue statement's node until a builder up the
// tree absorbs or retargets it.
type pendingJump struct {
	node     *Node
	label    string
	hasLabel bool
}

// CFG is the control flow graph of one method body, or of a sub-block while it is still under
// construction. EnterNode is the single entry point; ExitNodes are the nodes where control falls
// out of this fragment into whatever follows it; Nodes is every node reachable or unreachable
// that belongs to this fragment. pendingBreaks/pendingContinues carry break/continue nodes this
// fragment could not resolve locally, for an enclosing loop or switch builder to absorb.
type CFG struct {
	core *buildCore

	EnterNode *Node
	ExitNodes *sortedset.Set[int, *Node]
	Nodes     *sortedset.Set[int, *Node]

	pendingBreaks    []pendingJump
	pendingContinues []pendingJump
}

// buildCore is shared, per-build state: the node factory (so the same PE always maps to the same
// node within this build) and the registry of every node allocated during the build, used by
// pseudo-node elimination once the whole method body has been assembled.
type buildCore struct {
	factory *nodeFactory
	all     *sortedset.Set[int, *Node]
}

func newBuildCore() *buildCore {
	return &buildCore{factory: newNodeFactory(), all: newNodeSet()}
}

func (c *buildCore) track(n *Node) {
	c.all.Add(n.ID(), n)
}

func newFragment(core *buildCore) *CFG {
	return &CFG{core: core, ExitNodes: newNodeSet(), Nodes: newNodeSet()}
}

// leafFragment wraps a single freshly tracked node as a one-node fragment whose exit is the node
// itself, unless hasExit is false (Return/Throw/Break/Continue: control does not fall through).
func leafFragment(core *buildCore, n *Node, hasExit bool) *CFG {
	core.track(n)
	frag := newFragment(core)
	frag.EnterNode = n
	frag.Nodes.Add(n.ID(), n)
	if hasExit {
		frag.ExitNodes.Add(n.ID(), n)
	}
	return frag
}

// emptyFragment returns a one-pseudo-node fragment standing in for an empty statement sequence
// (an empty method body, an empty loop body, an absent finally block). Pseudo-node elimination
// strips the placeholder before the final CFG is handed back.
func emptyFragment(core *buildCore) *CFG {
	return leafFragment(core, core.factory.makePseudo(), true)
}

// connectExits wires every exit of from into to via makeEdge.
func connectExits(from *CFG, to *Node) {
	for _, exit := range from.ExitNodes.Values() {
		makeEdge(exit, to)
	}
}

// mergeInto absorbs next's nodes and pending jumps into into, and overwrites into's ExitNodes
// with next's.
func mergeInto(into, next *CFG) {
	for _, n := range next.Nodes.Values() {
		into.Nodes.Add(n.ID(), n)
	}
	into.pendingBreaks = append(into.pendingBreaks, next.pendingBreaks...)
	into.pendingContinues = append(into.pendingContinues, next.pendingContinues...)
	into.ExitNodes = next.ExitNodes
}

// SequentialCFGs composes fragments into a single fragment by connecting each one's exits to the
// next one's enter, in order. An empty slice composes to a single empty (pseudo) fragment, so
// that a block with no statements still has a well-defined enter/exit pair before pseudo
// elimination removes it.
func SequentialCFGs(core *buildCore, fragments []*CFG) *CFG {
	if len(fragments) == 0 {
		return emptyFragment(core)
	}
	result := fragments[0]
	for _, next := range fragments[1:] {
		connectExits(result, next.EnterNode)
		merged := newFragment(core)
		merged.EnterNode = result.EnterNode
		for _, n := range result.Nodes.Values() {
			merged.Nodes.Add(n.ID(), n)
		}
		merged.pendingBreaks = append(merged.pendingBreaks, result.pendingBreaks...)
		merged.pendingContinues = append(merged.pendingContinues, result.pendingContinues...)
		mergeInto(merged, next)
		result = merged
	}
	return result
}

// connectBreaks partitions pending into the break nodes this block (identified by label/hasLabel)
// absorbs as its own exits, and the ones it does not own, which the caller must propagate outward.
// An unlabeled break is absorbed by the nearest enclosing loop or switch; a labeled break is
// absorbed only by the construct carrying the matching label.
func connectBreaks(pending []pendingJump, label string, hasLabel bool) (absorbed []*Node, leftover []pendingJump) {
	for _, p := range pending {
		if !p.hasLabel || (hasLabel && p.label == label) {
			absorbed = append(absorbed, p.node)
		} else {
			leftover = append(leftover, p)
		}
	}
	return absorbed, leftover
}

// connectContinues is connectBreaks' analogue for continue statements: each absorbed continue's
// node gets a normal edge to dest (the loop's condition, or its updater's entry), and the
// remainder is returned for propagation outward.
func connectContinues(pending []pendingJump, label string, hasLabel bool, dest *Node) (leftover []pendingJump) {
	for _, p := range pending {
		if !p.hasLabel || (hasLabel && p.label == label) {
			connect(p.node, dest, EdgeNormal, false)
		} else {
			leftover = append(leftover, p)
		}
	}
	return leftover
}

// Build compiles m's body into its CFG, then strips every pseudo node introduced along the way.
func Build(m *pe.Method) *CFG {
	core := newBuildCore()
	frag := buildBody(core, m.Statements)
	eliminatePseudos(core, frag)
	return frag
}

// eliminatePseudos splices every remaining Pseudo node out of the graph: each of its backward
// edges is reconnected directly to each of its forward edges' targets, preserving the backward
// edge's kind and label (since that is what describes how control reaches the pseudo's
// successors), and the pseudo itself is dropped from frag's enter/exit designations and from the
// build's node registry.
func eliminatePseudos(core *buildCore, frag *CFG) {
	var pseudos []*Node
	core.all.Each(func(_ int, n *Node) {
		if n.Kind == NodePseudo {
			pseudos = append(pseudos, n)
		}
	})

	for _, p := range pseudos {
		for _, back := range p.Backward {
			for _, fwd := range p.Forward {
				connect(back.From, fwd.To, back.Kind, back.Label)
			}
		}

		if frag.EnterNode == p {
			if len(p.Forward) > 0 {
				frag.EnterNode = p.Forward[0].To
			} else {
				frag.EnterNode = nil
			}
		}
		if frag.ExitNodes.Contains(p.ID()) {
			frag.ExitNodes.Remove(p.ID())
			for _, back := range p.Backward {
				frag.ExitNodes.Add(back.From.ID(), back.From)
			}
		}

		detach(p)
		frag.Nodes.Remove(p.ID())
		core.all.Remove(p.ID())
	}
}

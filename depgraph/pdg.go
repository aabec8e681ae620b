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
	"github.com/pdgraph/pdgraph/defuse"
	"github.com/pdgraph/pdgraph/flow"
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/scope"
	"github.com/pdgraph/pdgraph/util/sortedset"
)

func idLess(a, b int) bool { return a < b }

func newNodeSet() *sortedset.Set[int, *Node] {
	return sortedset.New[int, *Node](idLess)
}

// PDG is the program dependency graph of a single method: its control flow graph, overlaid with
// control dependence, data dependence, and (optionally) an explicit execution-order edge for
// every CFG forward edge.
type PDG struct {
	Method      *pe.Method
	MethodEnter *Node
	Parameters  []*Node
	Nodes       *sortedset.Set[int, *Node]
	ExitNodes   *sortedset.Set[int, *Node]
}

// Build constructs m's PDG. analyzer must be freshly created (or at least not yet have visited any
// statement of m) since Build relies on MethodDefs/MethodUses to normalize every def and use in
// the tree exactly once, before any per-CFG-node def/use accessor runs.
func Build(m *pe.Method, analyzer *defuse.Analyzer, cfg Config) *PDG {
	cfgGraph := flow.Build(m)
	factory := newNodeFactory()

	pdg := &PDG{Method: m, Nodes: newNodeSet(), ExitNodes: newNodeSet()}
	pdg.MethodEnter = factory.methodEnter(m)
	pdg.Nodes.Add(pdg.MethodEnter.ID(), pdg.MethodEnter)

	for _, p := range m.Parameters {
		n := factory.parameter(p)
		pdg.Parameters = append(pdg.Parameters, n)
		pdg.Nodes.Add(n.ID(), n)
	}

	for _, id := range cfgGraph.Nodes.Keys() {
		cfgNode, _ := cfgGraph.Nodes.Get(id)
		n := factory.fromCFGNode(cfgNode)
		pdg.Nodes.Add(n.ID(), n)
	}

	if cfg.ExecutionDependence {
		buildExecutionDependence(cfgGraph, factory, pdg)
	}

	// Defs and uses are normalized exactly once here, before any node below this point touches
	// StatementOwnDefs/StatementOwnUses/ExpressionDefs/ExpressionUses: those accessors assume
	// normalization has already happened and deliberately do not repeat it (see
	// defuse.Analyzer.StatementOwnDefs).
	paramDefs := analyzer.MethodDefs(m)
	analyzer.MethodUses(m)

	if cfg.DataDependence.Enabled {
		buildDataDependence(m, cfgGraph, factory, analyzer, cfg.DefUse, pdg, paramDefs)
	}

	if cfg.ControlDependence.Enabled {
		buildControlDependence(m, cfgGraph, factory, pdg, cfg.ControlDependence)
	}

	for _, id := range cfgGraph.ExitNodes.Keys() {
		cfgNode, _ := cfgGraph.ExitNodes.Get(id)
		n := factory.fromCFGNode(cfgNode)
		pdg.ExitNodes.Add(n.ID(), n)
	}

	return pdg
}

// buildExecutionDependence lifts every CFG forward edge into a PDG Execution edge, plus one from
// MethodEnter to the CFG's own enter node (a method with an empty body has no CFG enter node, so
// that edge is skipped).
func buildExecutionDependence(cfgGraph *flow.CFG, factory *nodeFactory, pdg *PDG) {
	if cfgGraph.EnterNode != nil {
		connect(pdg.MethodEnter, factory.fromCFGNode(cfgGraph.EnterNode), EdgeExecution, false, "")
	}
	for _, id := range cfgGraph.Nodes.Keys() {
		cfgNode, _ := cfgGraph.Nodes.Get(id)
		from := factory.fromCFGNode(cfgNode)
		for _, e := range cfgNode.Forward {
			connect(from, factory.fromCFGNode(e.To), EdgeExecution, false, "")
		}
	}
}

// buildDataDependence seeds a reaching-definitions propagation from each parameter (treated as
// defined at MethodEnter) and from every def directly contributed by each CFG node, recording a
// Data edge to every use the def reaches before a later def kills it.
func buildDataDependence(
	m *pe.Method,
	cfgGraph *flow.CFG,
	factory *nodeFactory,
	analyzer *defuse.Analyzer,
	duConfig defuse.Config,
	pdg *PDG,
	paramDefs []*scope.VarDef,
) {
	for i, p := range m.Parameters {
		if i >= len(paramDefs) {
			break
		}
		d := paramDefs[i]
		paramNode := pdg.Parameters[i]
		connect(pdg.MethodEnter, paramNode, EdgeData, false, d.MainName)
		if cfgGraph.EnterNode != nil {
			// A parameter is defined at MethodEnter, which sits outside the CFG entirely, so its
			// reach includes the CFG's own enter node itself, not just what comes after it.
			propagateReachingDef(factory, analyzer, duConfig, cfgGraph.EnterNode, true, paramNode, d.Var)
		}
	}

	for _, id := range cfgGraph.Nodes.Keys() {
		cfgNode, _ := cfgGraph.Nodes.Get(id)
		fromNode := factory.fromCFGNode(cfgNode)
		for _, d := range ownDefs(analyzer, cfgNode) {
			if !d.Certainty.AtLeast(scope.MayDef) {
				continue
			}
			// An in-body def's own node is where the def happens, not a point it reaches: any use
			// that node itself contributes refers to the value the def is about to replace, so
			// propagation starts at its successors.
			propagateReachingDef(factory, analyzer, duConfig, cfgNode, false, fromNode, d.Var)
		}
	}
}

// propagateReachingDef walks forward from start, visiting each node at most once, and emits a
// Data edge from fromNode to every node it visits that uses v at or above the configured use
// threshold, stopping down a given path once a node redefines v at or above the kill threshold (a
// genuine kill, or, with TreatMayDefAsDef, a MAY_DEF). includeStart controls whether start itself
// is the first node checked, or only its successors are.
func propagateReachingDef(
	factory *nodeFactory,
	analyzer *defuse.Analyzer,
	duConfig defuse.Config,
	start *flow.Node,
	includeStart bool,
	fromNode *Node,
	v *scope.Var,
) {
	useThreshold := scope.Use
	if duConfig.TreatMayUseAsUse {
		useThreshold = scope.MayUse
	}

	visited := make(map[int]bool)
	var dfs func(n *flow.Node)
	dfs = func(n *flow.Node) {
		if visited[n.ID()] {
			return
		}
		visited[n.ID()] = true

		for _, u := range ownUses(analyzer, n) {
			if !aliasesOverlap(v, u.Var) {
				continue
			}
			if u.Certainty.AtLeast(useThreshold) {
				connect(fromNode, factory.fromCFGNode(n), EdgeData, false, v.MainName)
			}
		}

		killed := false
		for _, d := range ownDefs(analyzer, n) {
			if !aliasesOverlap(v, d.Var) || !d.Certainty.AtLeast(scope.MayDef) {
				continue
			}
			if duConfig.TreatMayDefAsDef || d.Certainty.AtLeast(scope.Def) {
				killed = true
			}
		}
		if killed {
			return
		}

		for _, e := range n.Forward {
			dfs(e.To)
		}
	}

	if includeStart {
		dfs(start)
	} else {
		for _, e := range start.Forward {
			dfs(e.To)
		}
	}
}

func aliasesOverlap(a, b *scope.Var) bool {
	for alias := range a.Aliases {
		if b.HasAlias(alias) {
			return true
		}
	}
	return false
}

func ownDefs(analyzer *defuse.Analyzer, n *flow.Node) []*scope.VarDef {
	return ElementDefs(analyzer, n.PE)
}

func ownUses(analyzer *defuse.Analyzer, n *flow.Node) []*scope.VarUse {
	return ElementUses(analyzer, n.PE)
}

// buildControlDependence walks the statement tree (rather than the CFG) so that a control node's
// dependence edges can fan out to every direct child the owning construct names — Statements,
// ElseStatements, and a For's Initializers and Updaters — not just the single child the CFG wires
// a direct edge to.
func buildControlDependence(m *pe.Method, cfgGraph *flow.CFG, factory *nodeFactory, pdg *PDG, cdConfig ControlDependenceConfig) {
	var walk func(statements []*pe.Statement)
	walk = func(statements []*pe.Statement) {
		for _, s := range statements {
			emitOwnerControlDependence(s, cfgGraph, factory)
			walk(s.Statements)
			walk(s.ElseStatements)
			walk(s.CatchStatements)
			if s.FinallyStatement != nil {
				walk([]*pe.Statement{s.FinallyStatement})
			}
		}
	}
	walk(m.Statements)

	if cdConfig.FromEntryToAll {
		for _, s := range m.Statements {
			if target := resolveControlTarget(s, cfgGraph, factory); target != nil {
				connect(pdg.MethodEnter, target, EdgeControl, true, "")
			}
		}
	}
	if cdConfig.FromEntryToParameters {
		for _, p := range pdg.Parameters {
			connect(pdg.MethodEnter, p, EdgeControl, true, "")
		}
	}
}

// emitOwnerControlDependence emits the control-dependence edges for which s is the owning
// conditional block, provided s actually carries a Condition (Catch and Synchronized do not, in
// this lowering model, and so own no control node of their own).
func emitOwnerControlDependence(s *pe.Statement, cfgGraph *flow.CFG, factory *nodeFactory) {
	if s.Condition == nil {
		return
	}
	cfgControlNode, ok := cfgGraph.Nodes.Get(s.Condition.ID())
	if !ok {
		return
	}
	controlNode := factory.fromCFGNode(cfgControlNode)

	for _, child := range s.Statements {
		if target := resolveControlTarget(child, cfgGraph, factory); target != nil {
			connect(controlNode, target, EdgeControl, true, "")
		}
	}
	if s.Category == pe.StmtIf {
		for _, child := range s.ElseStatements {
			if target := resolveControlTarget(child, cfgGraph, factory); target != nil {
				connect(controlNode, target, EdgeControl, false, "")
			}
		}
	}
	if s.Category == pe.StmtFor {
		for _, init := range s.Initializers {
			if cfgNode, ok := cfgGraph.Nodes.Get(init.ID()); ok {
				connect(controlNode, factory.fromCFGNode(cfgNode), EdgeControl, true, "")
			}
		}
		for _, u := range s.Updaters {
			if cfgNode, ok := cfgGraph.Nodes.Get(u.ID()); ok {
				connect(controlNode, factory.fromCFGNode(cfgNode), EdgeControl, true, "")
			}
		}
	}
}

// resolveControlTarget resolves the PDG node representing the point at which control
// conditionally reaches s: its own control node if it carries a real condition; failing that, if
// s is itself block-leading (Catch, Synchronized, or an empty Try, none of which carry a
// Condition in this model), the target resolved for its first nested statement or its finally
// block, so the dependence fans out past a conditionless wrapper rather than stopping at it;
// otherwise the plain PDG node the CFG already built for s.
func resolveControlTarget(s *pe.Statement, cfgGraph *flow.CFG, factory *nodeFactory) *Node {
	if s == nil {
		return nil
	}
	if s.Condition != nil {
		if cfgNode, ok := cfgGraph.Nodes.Get(s.Condition.ID()); ok {
			return factory.fromCFGNode(cfgNode)
		}
	}
	if s.IsBlockLeading() {
		for _, child := range s.Statements {
			if target := resolveControlTarget(child, cfgGraph, factory); target != nil {
				return target
			}
		}
		if target := resolveControlTarget(s.FinallyStatement, cfgGraph, factory); target != nil {
			return target
		}
	}
	if cfgNode, ok := cfgGraph.Nodes.Get(s.ID()); ok {
		return factory.fromCFGNode(cfgNode)
	}
	return nil
}

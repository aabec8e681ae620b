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

import "github.com/pdgraph/pdgraph/pe"

// terminal reports whether a statement of this category never falls through to whatever follows
// it in its enclosing sequence: control leaves via return/throw, or via a break/continue that a
// loop or switch builder resolves separately.
func terminal(category pe.StatementCategory) bool {
	switch category {
	case pe.StmtReturn, pe.StmtThrow, pe.StmtBreak, pe.StmtContinue:
		return true
	default:
		return false
	}
}

func labelOf(s *pe.Statement) (string, bool) {
	if s.Label == nil {
		return "", false
	}
	return s.Label.Text, true
}

// buildBody composes the CFG for a flat statement sequence (a method body, or any block-leading
// statement's Statements slice).
func buildBody(core *buildCore, stmts []*pe.Statement) *CFG {
	if len(stmts) == 0 {
		return emptyFragment(core)
	}
	frags := make([]*CFG, len(stmts))
	for i, s := range stmts {
		frags[i] = buildStatement(core, s)
	}
	return SequentialCFGs(core, frags)
}

// buildStatement dispatches a single statement to its construct-specific builder, or treats it as
// an opaque leaf when it carries no nested control flow of its own.
func buildStatement(core *buildCore, s *pe.Statement) *CFG {
	switch s.Category {
	case pe.StmtIf:
		return buildIf(core, s)
	case pe.StmtFor:
		return buildFor(core, s)
	case pe.StmtWhile, pe.StmtForeach:
		return buildLoop(core, s)
	case pe.StmtDo:
		return buildDo(core, s)
	case pe.StmtSwitch:
		return buildSwitch(core, s)
	case pe.StmtTry:
		return buildTry(core, s)
	case pe.StmtCatch, pe.StmtSynchronized:
		return buildConditionalBlock(core, s)
	case pe.StmtSimpleBlock:
		return buildBody(core, s.Statements)
	case pe.StmtBreak:
		return buildBreak(core, s)
	case pe.StmtContinue:
		return buildContinue(core, s)
	default:
		return buildLeaf(core, s)
	}
}

func buildLeaf(core *buildCore, s *pe.Statement) *CFG {
	node := core.factory.make(s)
	return leafFragment(core, node, !terminal(s.Category))
}

func buildBreak(core *buildCore, s *pe.Statement) *CFG {
	frag := buildLeaf(core, s)
	label, hasLabel := labelOf(s)
	frag.pendingBreaks = []pendingJump{{node: frag.EnterNode, label: label, hasLabel: hasLabel}}
	return frag
}

func buildContinue(core *buildCore, s *pe.Statement) *CFG {
	frag := buildLeaf(core, s)
	label, hasLabel := labelOf(s)
	frag.pendingContinues = []pendingJump{{node: frag.EnterNode, label: label, hasLabel: hasLabel}}
	return frag
}

// buildConditionalBlock builds a Catch or Synchronized statement: a control node on the
// statement's condition, a true-edge into the body sequence, and the body sequence's own exits
// become this block's exits. Neither construct is a break/continue boundary, so any pending jumps
// the body could not resolve simply propagate outward unchanged.
func buildConditionalBlock(core *buildCore, s *pe.Statement) *CFG {
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)
	body := buildBody(core, s.Statements)

	makeControlEdge(cond, body.EnterNode, true)

	frag := newFragment(core)
	frag.EnterNode = cond
	frag.Nodes.Add(cond.ID(), cond)
	for _, n := range body.Nodes.Values() {
		frag.Nodes.Add(n.ID(), n)
	}
	frag.ExitNodes = body.ExitNodes
	frag.pendingBreaks = body.pendingBreaks
	frag.pendingContinues = body.pendingContinues
	return frag
}

// conditionElement returns s.Condition as a pe.Element, or nil if unset; a nil condition (Catch's
// exception parameter and Synchronized's monitor expression are not modeled as Condition) yields a
// fresh, non-interned control pseudo, which is acceptable since these statements are built once.
func conditionElement(s *pe.Statement) pe.Element {
	if s.Condition == nil {
		return nil
	}
	return s.Condition
}

// buildLoop builds a While or Foreach statement: a control node on the condition, a true-edge
// into the body, every non-absorbed body exit looping back to the condition, labeled breaks
// becoming this loop's exits, and labeled continues retargeting the condition node.
func buildLoop(core *buildCore, s *pe.Statement) *CFG {
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)
	body := buildBody(core, s.Statements)

	makeControlEdge(cond, body.EnterNode, true)
	connectExits(body, cond)

	label, hasLabel := labelOf(s)
	absorbedBreaks, leftoverBreaks := connectBreaks(body.pendingBreaks, label, hasLabel)
	leftoverContinues := connectContinues(body.pendingContinues, label, hasLabel, cond)

	frag := newFragment(core)
	frag.EnterNode = cond
	frag.Nodes.Add(cond.ID(), cond)
	for _, n := range body.Nodes.Values() {
		frag.Nodes.Add(n.ID(), n)
	}
	frag.ExitNodes.Add(cond.ID(), cond)
	for _, b := range absorbedBreaks {
		frag.ExitNodes.Add(b.ID(), b)
	}
	frag.pendingBreaks = leftoverBreaks
	frag.pendingContinues = leftoverContinues
	return frag
}

// buildDo builds a Do-While statement: body first, then the control node on the condition; the
// condition's true-edge loops back to the body's enter, and the condition is the loop's sole
// non-break exit. Continues target the body's enter, not the condition, since in a do-while the
// post-test runs after a continue re-executes the body up to the test.
func buildDo(core *buildCore, s *pe.Statement) *CFG {
	body := buildBody(core, s.Statements)
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)

	connectExits(body, cond)
	makeControlEdge(cond, body.EnterNode, true)

	label, hasLabel := labelOf(s)
	absorbedBreaks, leftoverBreaks := connectBreaks(body.pendingBreaks, label, hasLabel)
	leftoverContinues := connectContinues(body.pendingContinues, label, hasLabel, body.EnterNode)

	frag := newFragment(core)
	frag.EnterNode = body.EnterNode
	for _, n := range body.Nodes.Values() {
		frag.Nodes.Add(n.ID(), n)
	}
	frag.Nodes.Add(cond.ID(), cond)
	frag.ExitNodes.Add(cond.ID(), cond)
	for _, b := range absorbedBreaks {
		frag.ExitNodes.Add(b.ID(), b)
	}
	frag.pendingBreaks = leftoverBreaks
	frag.pendingContinues = leftoverContinues
	return frag
}

// buildFor builds a For statement: a sequential initializer CFG, then a control node on the
// condition, then the body, then a sequential updater CFG looping back to the condition. Continues
// target the condition (via the updater, so the updater still runs), and labeled breaks exit the
// loop the same as buildLoop.
func buildFor(core *buildCore, s *pe.Statement) *CFG {
	init := buildExpressionSequence(core, s.Initializers)
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)
	body := buildBody(core, s.Statements)
	updater := buildExpressionSequence(core, s.Updaters)

	connectExits(init, cond)
	makeControlEdge(cond, body.EnterNode, true)
	connectExits(body, updater.EnterNode)
	connectExits(updater, cond)

	label, hasLabel := labelOf(s)
	absorbedBreaks, leftoverBreaks := connectBreaks(body.pendingBreaks, label, hasLabel)
	leftoverContinues := connectContinues(body.pendingContinues, label, hasLabel, updater.EnterNode)

	frag := newFragment(core)
	frag.EnterNode = init.EnterNode
	for _, fragment := range []*CFG{init, body, updater} {
		for _, n := range fragment.Nodes.Values() {
			frag.Nodes.Add(n.ID(), n)
		}
	}
	frag.Nodes.Add(cond.ID(), cond)
	frag.ExitNodes.Add(cond.ID(), cond)
	for _, b := range absorbedBreaks {
		frag.ExitNodes.Add(b.ID(), b)
	}
	frag.pendingBreaks = leftoverBreaks
	frag.pendingContinues = leftoverContinues
	return frag
}

// buildExpressionSequence wraps a flat expression list (a For statement's initializers or
// updaters) as a sequential CFG of leaf nodes, the same shape buildBody gives a statement
// sequence, so For can compose it with SequentialCFGs-style exit wiring.
func buildExpressionSequence(core *buildCore, exprs []*pe.Expression) *CFG {
	if len(exprs) == 0 {
		return emptyFragment(core)
	}
	frags := make([]*CFG, len(exprs))
	for i, e := range exprs {
		node := core.factory.make(e)
		frags[i] = leafFragment(core, node, true)
	}
	return SequentialCFGs(core, frags)
}

// buildIf builds an If statement: the then-branch as a non-loop conditional block, and when an
// else-branch is present, a sequential CFG for it reached via the condition's false edge. An empty
// branch makes the condition node itself one of the block's exits, rather than a body node.
func buildIf(core *buildCore, s *pe.Statement) *CFG {
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)

	frag := newFragment(core)
	frag.EnterNode = cond
	frag.Nodes.Add(cond.ID(), cond)

	if len(s.Statements) == 0 {
		frag.ExitNodes.Add(cond.ID(), cond)
	} else {
		then := buildBody(core, s.Statements)
		makeControlEdge(cond, then.EnterNode, true)
		for _, n := range then.Nodes.Values() {
			frag.Nodes.Add(n.ID(), n)
		}
		for _, n := range then.ExitNodes.Values() {
			frag.ExitNodes.Add(n.ID(), n)
		}
		frag.pendingBreaks = append(frag.pendingBreaks, then.pendingBreaks...)
		frag.pendingContinues = append(frag.pendingContinues, then.pendingContinues...)
	}

	if len(s.ElseStatements) == 0 {
		frag.ExitNodes.Add(cond.ID(), cond)
	} else {
		els := buildBody(core, s.ElseStatements)
		makeControlEdge(cond, els.EnterNode, false)
		for _, n := range els.Nodes.Values() {
			frag.Nodes.Add(n.ID(), n)
		}
		for _, n := range els.ExitNodes.Values() {
			frag.ExitNodes.Add(n.ID(), n)
		}
		frag.pendingBreaks = append(frag.pendingBreaks, els.pendingBreaks...)
		frag.pendingContinues = append(frag.pendingContinues, els.pendingContinues...)
	}

	return frag
}

// buildSwitch builds a Switch statement: a control node on the condition with a true-edge to each
// case's enter, the anterior case's exits connecting to the next case's enter (fall-through)
// unless the anterior ends in a break or continue, and the last case's exits joining the switch's
// exits. Breaks are this construct's own boundary; continues are not, and propagate outward.
func buildSwitch(core *buildCore, s *pe.Statement) *CFG {
	cond := core.factory.makeControl(conditionElement(s))
	core.track(cond)

	frag := newFragment(core)
	frag.EnterNode = cond
	frag.Nodes.Add(cond.ID(), cond)

	var cases []*CFG
	for _, c := range s.Statements {
		caseFrag := buildStatement(core, c)
		if c.Category == pe.StmtCase {
			makeControlEdge(cond, caseFrag.EnterNode, true)
		}
		cases = append(cases, caseFrag)
	}

	var allBreaks, allContinues []pendingJump
	for i, c := range cases {
		for _, n := range c.Nodes.Values() {
			frag.Nodes.Add(n.ID(), n)
		}
		allBreaks = append(allBreaks, c.pendingBreaks...)
		allContinues = append(allContinues, c.pendingContinues...)

		anteriorIsJump := s.Statements[i].Category == pe.StmtBreak || s.Statements[i].Category == pe.StmtContinue
		if i+1 < len(cases) && !anteriorIsJump {
			connectExits(c, cases[i+1].EnterNode)
		}
		if i == len(cases)-1 {
			for _, n := range c.ExitNodes.Values() {
				frag.ExitNodes.Add(n.ID(), n)
			}
		}
	}
	if len(cases) == 0 {
		frag.ExitNodes.Add(cond.ID(), cond)
	}

	label, hasLabel := labelOf(s)
	absorbed, leftoverBreaks := connectBreaks(allBreaks, label, hasLabel)
	for _, b := range absorbed {
		frag.ExitNodes.Add(b.ID(), b)
	}
	frag.pendingBreaks = leftoverBreaks
	frag.pendingContinues = allContinues

	return frag
}

// buildTry builds a Try statement: the body, an implicit empty finally when none is present, and
// one sub-CFG per catch clause; body and catch exits all flow into finally's enter, and finally's
// own exits become the try's exits. Catch clauses are not edge-connected from the body: a more
// precise model would fan out from every potentially-throwing statement in the body to every
// matching catch, which this builder does not attempt.
func buildTry(core *buildCore, s *pe.Statement) *CFG {
	body := buildBody(core, s.Statements)

	var finallyFrag *CFG
	if s.FinallyStatement != nil {
		finallyFrag = buildStatement(core, s.FinallyStatement)
	} else {
		finallyFrag = emptyFragment(core)
	}

	frag := newFragment(core)
	frag.EnterNode = body.EnterNode
	for _, n := range body.Nodes.Values() {
		frag.Nodes.Add(n.ID(), n)
	}
	frag.pendingBreaks = append(frag.pendingBreaks, body.pendingBreaks...)
	frag.pendingContinues = append(frag.pendingContinues, body.pendingContinues...)

	connectExits(body, finallyFrag.EnterNode)

	for _, catch := range s.CatchStatements {
		catchFrag := buildStatement(core, catch)
		for _, n := range catchFrag.Nodes.Values() {
			frag.Nodes.Add(n.ID(), n)
		}
		frag.pendingBreaks = append(frag.pendingBreaks, catchFrag.pendingBreaks...)
		frag.pendingContinues = append(frag.pendingContinues, catchFrag.pendingContinues...)
		connectExits(catchFrag, finallyFrag.EnterNode)
	}

	for _, n := range finallyFrag.Nodes.Values() {
		frag.Nodes.Add(n.ID(), n)
	}
	frag.pendingBreaks = append(frag.pendingBreaks, finallyFrag.pendingBreaks...)
	frag.pendingContinues = append(frag.pendingContinues, finallyFrag.pendingContinues...)
	frag.ExitNodes = finallyFrag.ExitNodes

	return frag
}

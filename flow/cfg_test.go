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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/pe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stmt(category pe.StatementCategory, text string) *pe.Statement {
	return pe.NewStatement(category, pe.Span{}, text, nil, nil)
}

func expr(category pe.ExpressionCategory, text string) *pe.Expression {
	return pe.NewExpression(category, pe.Span{}, text, nil, nil)
}

func method(body ...*pe.Statement) *pe.Method {
	m := pe.NewMethod(pe.Span{}, "m", nil, nil)
	m.Statements = body
	return m
}

// reachableIDs walks forward edges from enter and returns the set of node ids reached, including
// enter itself.
func reachableIDs(enter *Node) map[int]bool {
	seen := map[int]bool{}
	var visit func(n *Node)
	visit = func(n *Node) {
		if seen[n.ID()] {
			return
		}
		seen[n.ID()] = true
		for _, e := range n.Forward {
			visit(e.To)
		}
	}
	if enter != nil {
		visit(enter)
	}
	return seen
}

func TestBuildStraightLineSequence(t *testing.T) {
	a := stmt(pe.StmtExpression, "a();")
	b := stmt(pe.StmtExpression, "b();")
	c := stmt(pe.StmtExpression, "c();")

	cfg := Build(method(a, b, c))

	require.Equal(t, a.ID(), cfg.EnterNode.ID())
	require.Equal(t, []int{c.ID()}, cfg.ExitNodes.Keys())
	require.ElementsMatch(t, []int{a.ID(), b.ID(), c.ID()}, cfg.Nodes.Keys())

	nodeA, _ := cfg.Nodes.Get(a.ID())
	require.Len(t, nodeA.Forward, 1)
	require.Equal(t, b.ID(), nodeA.Forward[0].To.ID())
	require.Equal(t, EdgeNormal, nodeA.Forward[0].Kind)
}

func TestBuildContainsNoPseudoNodesAfterBuild(t *testing.T) {
	cfg := Build(method())

	for _, id := range cfg.Nodes.Keys() {
		n, _ := cfg.Nodes.Get(id)
		require.NotEqual(t, NodePseudo, n.Kind)
	}
	require.Equal(t, 0, cfg.Nodes.Len())
}

func TestBuildIfThenElseBothBranchesExit(t *testing.T) {
	ifStmt := stmt(pe.StmtIf, "if (cond) {}")
	ifStmt.Condition = expr(pe.ExprSimpleName, "cond")
	then := stmt(pe.StmtExpression, "thenBranch();")
	ifStmt.Statements = []*pe.Statement{then}
	els := stmt(pe.StmtExpression, "elseBranch();")
	ifStmt.ElseStatements = []*pe.Statement{els}

	after := stmt(pe.StmtExpression, "after();")

	cfg := Build(method(ifStmt, after))

	condNode, ok := cfg.Nodes.Get(ifStmt.Condition.ID())
	require.True(t, ok)
	require.Equal(t, NodeControl, condNode.Kind)

	var trueEdge, falseEdge *Edge
	for _, e := range condNode.Forward {
		if e.Label {
			trueEdge = e
		} else {
			falseEdge = e
		}
	}
	require.NotNil(t, trueEdge)
	require.NotNil(t, falseEdge)
	require.Equal(t, then.ID(), trueEdge.To.ID())
	require.Equal(t, els.ID(), falseEdge.To.ID())

	thenNode, _ := cfg.Nodes.Get(then.ID())
	elsNode, _ := cfg.Nodes.Get(els.ID())
	require.Equal(t, after.ID(), thenNode.Forward[0].To.ID())
	require.Equal(t, after.ID(), elsNode.Forward[0].To.ID())

	require.Equal(t, []int{after.ID()}, cfg.ExitNodes.Keys())
}

func TestBuildWhileLoopBacksEdgeAndExitsOnFalse(t *testing.T) {
	loop := stmt(pe.StmtWhile, "while (cond) {}")
	loop.Condition = expr(pe.ExprSimpleName, "cond")
	body := stmt(pe.StmtExpression, "body();")
	loop.Statements = []*pe.Statement{body}

	cfg := Build(method(loop))

	condNode, ok := cfg.Nodes.Get(loop.Condition.ID())
	require.True(t, ok)
	require.Equal(t, condNode.ID(), cfg.EnterNode.ID())

	bodyNode, _ := cfg.Nodes.Get(body.ID())
	require.Len(t, bodyNode.Forward, 1)
	require.Equal(t, condNode.ID(), bodyNode.Forward[0].To.ID())

	require.Equal(t, []int{condNode.ID()}, cfg.ExitNodes.Keys())

	reached := reachableIDs(cfg.EnterNode)
	require.True(t, reached[body.ID()])
}

func TestBuildLabeledBreakExitsOuterLoop(t *testing.T) {
	inner := stmt(pe.StmtWhile, "while (innerCond) {}")
	inner.Condition = expr(pe.ExprSimpleName, "innerCond")
	brk := stmt(pe.StmtBreak, "break outer;")
	brk.Label = expr(pe.ExprSimpleName, "outer")
	inner.Statements = []*pe.Statement{brk}

	outer := stmt(pe.StmtWhile, "outer: while (outerCond) {}")
	outer.Label = expr(pe.ExprSimpleName, "outer")
	outer.Condition = expr(pe.ExprSimpleName, "outerCond")
	outer.Statements = []*pe.Statement{inner}

	after := stmt(pe.StmtExpression, "after();")

	cfg := Build(method(outer, after))

	breakNode, ok := cfg.Nodes.Get(brk.ID())
	require.True(t, ok)
	require.Equal(t, NodeBreak, breakNode.Kind)

	// The labeled break is absorbed as an exit of the outer loop (not the inner one), and since a
	// statement follows the outer loop, that exit in turn flows into it as a Jump edge.
	require.Len(t, breakNode.Forward, 1)
	require.Equal(t, after.ID(), breakNode.Forward[0].To.ID())
	require.Equal(t, EdgeJump, breakNode.Forward[0].Kind)
	require.NotContains(t, cfg.ExitNodes.Keys(), breakNode.ID())
	require.Equal(t, []int{after.ID()}, cfg.ExitNodes.Keys())

	innerCondNode, _ := cfg.Nodes.Get(inner.Condition.ID())
	require.NotContains(t, cfg.ExitNodes.Keys(), innerCondNode.ID())
}

func TestBuildSwitchFallsThroughUntilBreak(t *testing.T) {
	caseOne := stmt(pe.StmtCase, "case 1:")
	firstBody := stmt(pe.StmtExpression, "firstBody();")
	brk := stmt(pe.StmtBreak, "break;")
	caseTwo := stmt(pe.StmtCase, "case 2:")
	secondBody := stmt(pe.StmtExpression, "secondBody();")

	sw := stmt(pe.StmtSwitch, "switch (x) {}")
	sw.Condition = expr(pe.ExprSimpleName, "x")
	sw.Statements = []*pe.Statement{caseOne, firstBody, brk, caseTwo, secondBody}

	cfg := Build(method(sw))

	condNode, _ := cfg.Nodes.Get(sw.Condition.ID())
	caseOneNode, _ := cfg.Nodes.Get(caseOne.ID())
	caseTwoNode, _ := cfg.Nodes.Get(caseTwo.ID())

	var sawCaseOne, sawCaseTwo bool
	for _, e := range condNode.Forward {
		if e.To.ID() == caseOneNode.ID() {
			sawCaseOne = true
		}
		if e.To.ID() == caseTwoNode.ID() {
			sawCaseTwo = true
		}
		require.True(t, e.Label)
	}
	require.True(t, sawCaseOne)
	require.True(t, sawCaseTwo)

	firstBodyNode, _ := cfg.Nodes.Get(firstBody.ID())
	require.Equal(t, brk.ID(), firstBodyNode.Forward[0].To.ID())

	breakNode, _ := cfg.Nodes.Get(brk.ID())
	require.Empty(t, breakNode.Forward)
	require.Contains(t, cfg.ExitNodes.Keys(), breakNode.ID())

	secondBodyNode, _ := cfg.Nodes.Get(secondBody.ID())
	require.Contains(t, cfg.ExitNodes.Keys(), secondBodyNode.ID())
}

func TestBuildTryRoutesBodyAndCatchThroughFinally(t *testing.T) {
	bodyStmt := stmt(pe.StmtExpression, "risky();")
	catchStmt := stmt(pe.StmtCatch, "catch (E e) {}")
	catchBody := stmt(pe.StmtExpression, "handle();")
	catchStmt.Statements = []*pe.Statement{catchBody}
	finallyStmt := stmt(pe.StmtSimpleBlock, "finally {}")
	finallyBody := stmt(pe.StmtExpression, "cleanup();")
	finallyStmt.Statements = []*pe.Statement{finallyBody}

	tryStmt := stmt(pe.StmtTry, "try {}")
	tryStmt.Statements = []*pe.Statement{bodyStmt}
	tryStmt.CatchStatements = []*pe.Statement{catchStmt}
	tryStmt.FinallyStatement = finallyStmt

	cfg := Build(method(tryStmt))

	bodyNode, _ := cfg.Nodes.Get(bodyStmt.ID())
	catchBodyNode, _ := cfg.Nodes.Get(catchBody.ID())
	finallyBodyNode, _ := cfg.Nodes.Get(finallyBody.ID())

	require.Equal(t, finallyBodyNode.ID(), bodyNode.Forward[0].To.ID())
	require.Equal(t, finallyBodyNode.ID(), catchBodyNode.Forward[0].To.ID())
	require.Equal(t, []int{finallyBodyNode.ID()}, cfg.ExitNodes.Keys())
}

func TestBuildEmptyFinallyLeavesNoPseudoBehind(t *testing.T) {
	bodyStmt := stmt(pe.StmtExpression, "risky();")
	tryStmt := stmt(pe.StmtTry, "try {}")
	tryStmt.Statements = []*pe.Statement{bodyStmt}

	cfg := Build(method(tryStmt))

	for _, id := range cfg.Nodes.Keys() {
		n, _ := cfg.Nodes.Get(id)
		require.NotEqual(t, NodePseudo, n.Kind)
	}
	require.Equal(t, []int{bodyStmt.ID()}, cfg.ExitNodes.Keys())
}

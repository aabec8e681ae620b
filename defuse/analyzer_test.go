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

package defuse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/defuse"
	"github.com/pdgraph/pdgraph/pe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func simpleName(name string) *pe.Expression {
	return pe.NewExpression(pe.ExprSimpleName, pe.Span{Start: 1, End: 1}, name, nil, nil)
}

// buildAssignment constructs `x = y;` as an Expression statement: Assignment(x, "=", y).
func buildAssignment(method *pe.Method, owner pe.Block, line int, lhsName, rhsName string) *pe.Statement {
	lhs := simpleName(lhsName)
	rhs := simpleName(rhsName)
	assign := pe.NewExpression(pe.ExprAssignment, pe.Span{Start: line, End: line}, lhsName+"="+rhsName, nil, nil)
	assign.Expressions = []*pe.Expression{lhs, rhs}
	assign.OperatorToken = "="

	stmt := pe.NewStatement(pe.StmtExpression, pe.Span{Start: line, End: line}, assign.Text+";", nil, nil)
	stmt.Expressions = []*pe.Expression{assign}
	stmt.ScopeManager = method.ScopeManager
	pe.Attach(owner, stmt)
	return stmt
}

func TestAssignmentEmitsDefAndUse(t *testing.T) {
	t.Parallel()

	method := pe.NewMethod(pe.Span{Start: 1, End: 3}, "foo", nil, nil)
	buildAssignment(method, method, 2, "x", "y")

	a := defuse.NewAnalyzer(defuse.DefaultConfig(), method.ScopeManager)
	defs := a.MethodDefs(method)
	uses := a.MethodUses(method)

	require.Len(t, defs, 1)
	require.Equal(t, "x", defs[0].MainName)
	require.True(t, defs[0].Certainty.AtLeast(3)) // Def

	require.Len(t, uses, 1)
	require.Equal(t, "y", uses[0].MainName)
}

func TestFieldAliasResolution(t *testing.T) {
	t.Parallel()

	this := pe.NewExpression(pe.ExprThis, pe.Span{Start: 1, End: 1}, "this", nil, nil)
	fieldAccess := pe.NewExpression(pe.ExprFieldAccess, pe.Span{Start: 1, End: 1}, "this.source", nil, nil)
	fieldAccess.Qualifier = this

	cfg := defuse.DefaultConfig()
	refs := cfg.RecognizeVariable(fieldAccess)
	require.Len(t, refs, 1)
	require.Equal(t, "this.source", refs[0].MainName)
	require.ElementsMatch(t, []string{"source", "this.source"}, refs[0].Aliases)
}

func TestFieldAliasResolutionTreatNonLocalAsField(t *testing.T) {
	t.Parallel()

	this := pe.NewExpression(pe.ExprThis, pe.Span{Start: 1, End: 1}, "this", nil, nil)
	fieldAccess := pe.NewExpression(pe.ExprFieldAccess, pe.Span{Start: 1, End: 1}, "this.source", nil, nil)
	fieldAccess.Qualifier = this

	cfg := defuse.DefaultConfig()
	cfg.TreatNonLocalAsField = true
	refs := cfg.RecognizeVariable(fieldAccess)
	require.Len(t, refs, 1)
	require.Equal(t, []string{"this.source"}, refs[0].Aliases)
}

func TestMethodInvocationClassification(t *testing.T) {
	t.Parallel()

	cfg := defuse.DefaultConfig()
	require.Equal(t, "NO_DEF", cfg.ClassifyMethodDef("toString").String())
	require.Equal(t, "DEF", cfg.ClassifyMethodDef("push").String())
	require.Equal(t, "NO_DEF", cfg.ClassifyMethodDef("getValue").String())
	require.Equal(t, "DEF", cfg.ClassifyMethodDef("setValue").String())
	require.Equal(t, "DEF", cfg.ClassifyMethodDef("contains").String()) // pinned as the known heuristic quirk
	require.Equal(t, "MAY_DEF", cfg.ClassifyMethodDef("frobnicate").String())
}

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

package ddgjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/defuse"
	"github.com/pdgraph/pdgraph/depgraph"
	"github.com/pdgraph/pdgraph/pe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stmt(category pe.StatementCategory, line int, text string) *pe.Statement {
	s := pe.NewStatement(category, pe.Span{Start: line, End: line}, text, nil, nil)
	return s
}

func expr(category pe.ExpressionCategory, line int, text string) *pe.Expression {
	e := pe.NewExpression(category, pe.Span{Start: line, End: line}, text, nil, nil)
	return e
}

func assignment(line int, lhsName, rhsName string) *pe.Expression {
	lhs := expr(pe.ExprSimpleName, line, lhsName)
	rhs := expr(pe.ExprSimpleName, line, rhsName)
	a := expr(pe.ExprAssignment, line, lhsName+" = "+rhsName)
	a.Expressions = []*pe.Expression{lhs, rhs}
	return a
}

func exprStatement(line int, lhsName, rhsName string) *pe.Statement {
	s := stmt(pe.StmtExpression, line, lhsName+" = "+rhsName+";")
	s.Expressions = []*pe.Expression{assignment(line, lhsName, rhsName)}
	return s
}

func newTestMethod(name string, body ...*pe.Statement) *pe.Method {
	m := pe.NewMethod(pe.Span{Start: 1, End: len(body) + 1}, name, nil, nil)
	m.Name = name
	m.HasName = true
	for _, s := range body {
		pe.Attach(m, s)
		s.ScopeManager = m.ScopeManager
	}
	m.IndexBlocks()
	return m
}

func TestBuildMergesDefAndUseOfSameVariableAndSortsLines(t *testing.T) {
	defXLHS := expr(pe.ExprSimpleName, 2, "x")
	defXRHS := expr(pe.ExprNumber, 2, "1")
	defXAssign := expr(pe.ExprAssignment, 2, "x = 1")
	defXAssign.Expressions = []*pe.Expression{defXLHS, defXRHS}
	defX := stmt(pe.StmtExpression, 2, "x = 1;")
	defX.Expressions = []*pe.Expression{defXAssign}

	useX := exprStatement(3, "y", "x")

	m := newTestMethod("foo", defX, useX)
	analyzer := defuse.NewAnalyzer(defuse.DefaultConfig(), m.ScopeManager)
	pdg := depgraph.Build(m, analyzer, depgraph.DefaultConfig())

	doc, err := Build([]MethodGraph{{Method: m, Graph: pdg}}, defuse.DefaultConfig())
	require.NoError(t, err)

	entry, ok := doc["foo#1"]
	require.True(t, ok)

	var xEntry, yEntry *VariableJSON
	for _, v := range entry.VariableJsons {
		switch v.Name {
		case "x":
			xEntry = v
		case "y":
			yEntry = v
		}
	}
	require.NotNil(t, xEntry)
	require.NotNil(t, yEntry)

	require.Equal(t, []int{2}, xEntry.DefStmtLineNumbers)
	require.Equal(t, []int{3}, xEntry.UseStmtLineNumbers)
	require.Equal(t, []int{3}, yEntry.DefStmtLineNumbers)
	require.Empty(t, yEntry.UseStmtLineNumbers)
}

func TestMarshalProducesStableSortedKeys(t *testing.T) {
	doc := Document{
		"b#2": {VariableJsons: nil},
		"a#1": {VariableJsons: nil},
	}
	data, err := Marshal(doc)
	require.NoError(t, err)

	var roundTrip map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	require.Len(t, roundTrip, 2)

	// encoding/json sorts string map keys on marshal, so "a#1" must appear before "b#2".
	aIdx := indexOf(string(data), `"a#1"`)
	bIdx := indexOf(string(data), `"b#2"`)
	require.Greater(t, aIdx, -1)
	require.Greater(t, bIdx, -1)
	require.Less(t, aIdx, bIdx)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestBuildRejectsNilMethodOrGraph(t *testing.T) {
	_, err := Build([]MethodGraph{{Method: nil, Graph: nil}}, defuse.DefaultConfig())
	require.Error(t, err)
}

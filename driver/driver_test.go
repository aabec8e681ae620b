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

package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/config"
	"github.com/pdgraph/pdgraph/depgraph"
	"github.com/pdgraph/pdgraph/sourceast"
)

func edgeKindName(e *depgraph.Edge) string {
	switch e.Kind {
	case depgraph.EdgeControl:
		return "EdgeControl"
	case depgraph.EdgeData:
		return "EdgeData"
	case depgraph.EdgeExecution:
		return "EdgeExecution"
	default:
		return "unknown"
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeNode is a minimal in-memory sourceast.Node, built the same way package lower's own test
// harness builds one, for driving the driver end to end without a real parser.
type fakeNode struct {
	kind     sourceast.Kind
	offset   int
	endOffs  int
	text     string
	children map[sourceast.Role][]sourceast.Node
}

func node(kind sourceast.Kind, line int, text string) *fakeNode {
	return &fakeNode{kind: kind, offset: line, endOffs: line, children: map[sourceast.Role][]sourceast.Node{}, text: text}
}

func (n *fakeNode) set(role sourceast.Role, children ...sourceast.Node) *fakeNode {
	n.children[role] = children
	return n
}

func (n *fakeNode) Kind() sourceast.Kind                      { return n.kind }
func (n *fakeNode) StartOffset() int                          { return n.offset }
func (n *fakeNode) EndOffset() int                             { return n.endOffs }
func (n *fakeNode) Text() string                              { return n.text }
func (n *fakeNode) Modifiers() []string                       { return nil }
func (n *fakeNode) Children(r sourceast.Role) []sourceast.Node { return n.children[r] }

func (n *fakeNode) Child(r sourceast.Role) sourceast.Node {
	cs := n.children[r]
	if len(cs) == 0 {
		return nil
	}
	return cs[0]
}

var _ sourceast.Node = (*fakeNode)(nil)

type fakeLines struct{}

func (fakeLines) Line(offset int) int { return offset }

var _ sourceast.LineTable = fakeLines{}

// straightLineClass builds "class C { foo() { x = 1; y = x; } }".
func straightLineClass() sourceast.Node {
	lhsX := node(sourceast.KindSimpleName, 1, "x")
	rhsOne := node(sourceast.KindNumber, 1, "1")
	defAssign := node(sourceast.KindAssignment, 1, "x = 1").set(sourceast.RoleExpressions, lhsX, rhsOne)
	defStmt := node(sourceast.KindExpressionStmt, 1, "x = 1;").set(sourceast.RoleExpressions, defAssign)

	lhsY := node(sourceast.KindSimpleName, 2, "y")
	rhsX := node(sourceast.KindSimpleName, 2, "x")
	useAssign := node(sourceast.KindAssignment, 2, "y = x").set(sourceast.RoleExpressions, lhsY, rhsX)
	useStmt := node(sourceast.KindExpressionStmt, 2, "y = x;").set(sourceast.RoleExpressions, useAssign)

	method := node(sourceast.KindMethod, 1, "foo(){...}").
		set(sourceast.RoleName, node(sourceast.KindSimpleName, 1, "foo")).
		set(sourceast.RoleStatements, defStmt, useStmt)
	return node(sourceast.KindClass, 1, "class C {...}").
		set(sourceast.RoleName, node(sourceast.KindSimpleName, 1, "C")).
		set(sourceast.RoleMethods, method)
}

type fakeParser struct {
	root sourceast.Node
	err  error
	// calls counts Parse invocations, to assert the AST cache actually avoids a second parse.
	calls int
}

func (p *fakeParser) Parse(_ string) (sourceast.Node, sourceast.LineTable, sourceast.TypeResolver, error) {
	p.calls++
	if p.err != nil {
		return nil, nil, nil, p.err
	}
	return p.root, fakeLines{}, nil, nil
}

func TestNewRejectsNilParser(t *testing.T) {
	_, err := New(nil, config.DefaultConfig())
	require.ErrorIs(t, err, ErrNilParser)
}

func TestGetCFGBuildsOneGraphPerMethod(t *testing.T) {
	parser := &fakeParser{root: straightLineClass()}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	results, err := d.GetCFG("class C {...}")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "foo", results[0].Method.Name)
	require.NotNil(t, results[0].Graph.EnterNode)
}

func TestGetDDGDisablesControlAndExecutionDependence(t *testing.T) {
	parser := &fakeParser{root: straightLineClass()}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	results, err := d.GetDDG("class C {...}")
	require.NoError(t, err)
	require.Len(t, results, 1)

	pdg := results[0].Graph
	for _, id := range pdg.Nodes.Keys() {
		n, _ := pdg.Nodes.Get(id)
		for _, e := range n.Forward {
			require.NotEqual(t, "EdgeControl", edgeKindName(e), "DDG must not contain control edges")
		}
	}
}

func TestGetPDGEnablesAllThreeDependenceKinds(t *testing.T) {
	parser := &fakeParser{root: straightLineClass()}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	results, err := d.GetPDG("class C {...}")
	require.NoError(t, err)
	require.Len(t, results, 1)

	var sawData, sawExecution bool
	pdg := results[0].Graph
	for _, id := range pdg.Nodes.Keys() {
		n, _ := pdg.Nodes.Get(id)
		for _, e := range n.Forward {
			switch edgeKindName(e) {
			case "EdgeData":
				sawData = true
			case "EdgeExecution":
				sawExecution = true
			}
		}
	}
	require.True(t, sawData)
	require.True(t, sawExecution)
}

func TestLowerClassCachesBySourceText(t *testing.T) {
	parser := &fakeParser{root: straightLineClass()}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	_, err = d.GetCFG("same source")
	require.NoError(t, err)
	_, err = d.GetCFG("same source")
	require.NoError(t, err)

	require.Equal(t, 1, parser.calls)
	require.Equal(t, 1, d.cache.len())
}

func TestGetCFGPropagatesParseError(t *testing.T) {
	parser := &fakeParser{err: errors.New("boom")}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	_, err = d.GetCFG("anything")
	require.Error(t, err)
}

func TestAnalyzeAllRunsUnitsConcurrentlyAndPreservesOrder(t *testing.T) {
	parser := &fakeParser{root: straightLineClass()}
	d, err := New(parser, config.DefaultConfig())
	require.NoError(t, err)

	units := []Unit{
		{Name: "a.src", Source: "class C {...} // a"},
		{Name: "b.src", Source: "class C {...} // b"},
		{Name: "c.src", Source: "class C {...} // c"},
	}
	results, err := d.AnalyzeAll(context.Background(), units)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, u := range units {
		require.Equal(t, u.Name, results[i].Unit.Name)
		require.NoError(t, results[i].Err)
		require.Len(t, results[i].PDGs, 1)
	}
}

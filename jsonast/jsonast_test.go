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

package jsonast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/sourceast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const straightLineSource = `{
  "kind": "Class",
  "line": 1,
  "endLine": 3,
  "text": "class C {...}",
  "children": {
    "Name": [{"kind": "SimpleName", "line": 1, "endLine": 1, "text": "C"}],
    "Methods": [{
      "kind": "Method",
      "line": 1,
      "endLine": 3,
      "text": "foo(){...}",
      "children": {
        "Name": [{"kind": "SimpleName", "line": 1, "endLine": 1, "text": "foo"}],
        "Statements": [
          {
            "kind": "ExpressionStmt",
            "line": 2,
            "endLine": 2,
            "text": "x = 1;",
            "children": {
              "Expressions": [{
                "kind": "Assignment",
                "line": 2,
                "endLine": 2,
                "text": "x = 1",
                "children": {
                  "Expressions": [
                    {"kind": "SimpleName", "line": 2, "endLine": 2, "text": "x"},
                    {"kind": "Number", "line": 2, "endLine": 2, "text": "1"}
                  ]
                }
              }]
            }
          }
        ]
      }
    }]
  }
}`

func TestParseBuildsNavigableTree(t *testing.T) {
	root, lines, resolver, err := Parser{}.Parse(straightLineSource)
	require.NoError(t, err)
	require.Nil(t, resolver)
	require.Equal(t, sourceast.KindClass, root.Kind())

	methods := root.Children(sourceast.RoleMethods)
	require.Len(t, methods, 1)
	method := methods[0]
	require.Equal(t, sourceast.KindMethod, method.Kind())
	require.Equal(t, "foo", method.Child(sourceast.RoleName).Text())

	statements := method.Children(sourceast.RoleStatements)
	require.Len(t, statements, 1)
	require.Equal(t, sourceast.KindExpressionStmt, statements[0].Kind())
	require.Equal(t, 2, lines.Line(statements[0].StartOffset()))

	assign := statements[0].Children(sourceast.RoleExpressions)[0]
	require.Equal(t, sourceast.KindAssignment, assign.Kind())
	operands := assign.Children(sourceast.RoleExpressions)
	require.Len(t, operands, 2)
	require.Equal(t, "x", operands[0].Text())
	require.Equal(t, sourceast.KindNumber, operands[1].Kind())
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, _, _, err := Parser{}.Parse("{not json")
	require.Error(t, err)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, _, _, err := Parser{}.Parse(`{"kind": "NotARealKind", "line": 1, "endLine": 1}`)
	require.Error(t, err)
}

func TestParseRejectsMissingRootKind(t *testing.T) {
	_, _, _, err := Parser{}.Parse(`{"line": 1}`)
	require.Error(t, err)
}

func TestChildReturnsNilForAbsentRole(t *testing.T) {
	root, _, _, err := Parser{}.Parse(`{"kind": "Class", "line": 1, "endLine": 1}`)
	require.NoError(t, err)
	require.Nil(t, root.Child(sourceast.RoleName))
	require.Empty(t, root.Children(sourceast.RoleMethods))
}

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
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/scope"
)

// ElementDefs returns the direct (non-recursive) variable definitions the program element
// underlying a PDG node is responsible for, for callers (such as package ddgjson) that need to
// re-walk a built PDG without repeating its own internal traversal logic. MethodEnter and
// Parameter nodes wrap a *pe.Method / *pe.VariableDeclaration respectively and contribute nothing
// here; their defs are represented structurally by the Data edges Build already emitted.
func ElementDefs(analyzer *defuse.Analyzer, e pe.Element) []*scope.VarDef {
	switch v := e.(type) {
	case *pe.Statement:
		return analyzer.StatementOwnDefs(v)
	case *pe.Expression:
		return analyzer.ExpressionDefs(v)
	default:
		return nil
	}
}

// ElementUses returns the direct (non-recursive) variable uses the program element underlying a
// PDG node is responsible for. See ElementDefs.
func ElementUses(analyzer *defuse.Analyzer, e pe.Element) []*scope.VarUse {
	switch v := e.(type) {
	case *pe.Statement:
		return analyzer.StatementOwnUses(v)
	case *pe.Expression:
		return analyzer.ExpressionUses(v)
	default:
		return nil
	}
}

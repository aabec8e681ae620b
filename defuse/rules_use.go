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

package defuse

import (
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/scope"
)

func usesFromRefs(refs []VarRef, certainty scope.UseCertainty) []*scope.VarUse {
	out := make([]*scope.VarUse, 0, len(refs))
	for _, r := range refs {
		out = append(out, scope.NewVarUse(newVar(r), certainty))
	}
	return out
}

func promoteUses(uses []*scope.VarUse, to scope.UseCertainty) []*scope.VarUse {
	out := make([]*scope.VarUse, len(uses))
	for i, u := range uses {
		out[i] = scope.NewVarUse(u.Var, to)
	}
	return out
}

// expressionUses computes the use rule for e per its category.
func (a *Analyzer) expressionUses(e *pe.Expression) []*scope.VarUse {
	switch e.Category {
	case pe.ExprAssignment:
		rhs := nthExpr(e, 1)
		return promoteUses(a.ExpressionUses(rhs), scope.Use)

	case pe.ExprVariableDeclarationFragment:
		init := nthExpr(e, 1)
		return promoteUses(a.ExpressionUses(init), scope.Use)

	case pe.ExprPostfix, pe.ExprPrefix:
		x := nthExpr(e, 0)
		return promoteUses(a.ExpressionUses(x), scope.Use)

	case pe.ExprSimpleName:
		return usesFromRefs([]VarRef{{MainName: e.Text, Aliases: []string{e.Text}}}, scope.MayUse)

	case pe.ExprMethodInvocation:
		var out []*scope.VarUse
		out = append(out, a.ExpressionUses(e.Qualifier)...)
		for _, arg := range e.Expressions {
			out = append(out, a.ExpressionUses(arg)...)
		}
		return out
	}

	return a.defaultExpressionUses(e)
}

// defaultExpressionUses emits a MAY_USE for e itself when it is a variable reference; otherwise
// it propagates child uses plus the uses of every method declared by an owned anonymous class.
func (a *Analyzer) defaultExpressionUses(e *pe.Expression) []*scope.VarUse {
	if refs := a.RecognizeVariable(e); len(refs) > 0 {
		return usesFromRefs(refs, scope.MayUse)
	}

	var out []*scope.VarUse
	if e.Qualifier != nil {
		out = append(out, a.ExpressionUses(e.Qualifier)...)
	}
	for _, child := range e.Expressions {
		out = append(out, a.ExpressionUses(child)...)
	}
	if e.AnonymousClassDeclaration != nil {
		for _, m := range e.AnonymousClassDeclaration.Methods {
			out = append(out, a.MethodUses(m)...)
		}
	}
	return out
}

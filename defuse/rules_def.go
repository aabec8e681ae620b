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

func newVar(ref VarRef) *scope.Var {
	v := scope.NewVar(ref.MainName)
	for _, a := range ref.Aliases {
		v.AddAlias(a)
	}
	return v
}

func defsFromRefs(refs []VarRef, certainty scope.DefCertainty) []*scope.VarDef {
	out := make([]*scope.VarDef, 0, len(refs))
	for _, r := range refs {
		out = append(out, scope.NewVarDef(newVar(r), certainty))
	}
	return out
}

func promoteDefs(defs []*scope.VarDef, floor scope.DefCertainty) []*scope.VarDef {
	out := make([]*scope.VarDef, len(defs))
	for i, d := range defs {
		c := d.Certainty
		if c < floor {
			c = floor
		}
		out[i] = scope.NewVarDef(d.Var, c)
		out[i].RelevantStmtID = d.RelevantStmtID
	}
	return out
}

// expressionDefs computes the def rule for e per its category, recursing into a's memoized
// ExpressionDefs for child expressions.
func (a *Analyzer) expressionDefs(e *pe.Expression) []*scope.VarDef {
	switch e.Category {
	case pe.ExprAssignment:
		lhs, rhs := nthExpr(e, 0), nthExpr(e, 1)
		var out []*scope.VarDef
		if refs := a.RecognizeVariable(lhs); len(refs) > 0 {
			out = append(out, defsFromRefs(refs, scope.Def)...)
		} else if lhs != nil {
			out = append(out, a.ExpressionDefs(lhs)...)
		}
		if rhs != nil {
			out = append(out, a.ExpressionDefs(rhs)...)
		}
		return out

	case pe.ExprVariableDeclarationFragment:
		name, init := nthExpr(e, 0), nthExpr(e, 1)
		var out []*scope.VarDef
		if refs := a.RecognizeVariable(name); len(refs) > 0 {
			out = append(out, defsFromRefs(refs, scope.DeclareAndDef)...)
		} else if name != nil {
			out = append(out, a.ExpressionDefs(name)...)
		}
		if init != nil {
			out = append(out, a.ExpressionDefs(init)...)
		}
		return out

	case pe.ExprPostfix:
		x := nthExpr(e, 0)
		return defsFromRefs(a.RecognizeVariable(x), scope.Def)

	case pe.ExprPrefix:
		x := nthExpr(e, 0)
		if isIncDecOperator(e) {
			return defsFromRefs(a.RecognizeVariable(x), scope.Def)
		}
		return a.ExpressionDefs(x)

	case pe.ExprMethodInvocation:
		callDef := a.ClassifyMethodDef(methodInvocationName(e))
		q := e.Qualifier
		if refs := a.RecognizeVariable(q); len(refs) > 0 {
			return defsFromRefs(refs, callDef)
		}
		if q == nil {
			return nil
		}
		qd := a.ExpressionDefs(q)
		if callDef.AtLeast(scope.MayDef) {
			return promoteDefs(qd, scope.MayDef)
		}
		return qd
	}

	return a.defaultExpressionDefs(e)
}

// defaultExpressionDefs propagates child defs unchanged, plus the defs of every method declared
// by an anonymous class this expression owns.
func (a *Analyzer) defaultExpressionDefs(e *pe.Expression) []*scope.VarDef {
	var out []*scope.VarDef
	if e.Qualifier != nil {
		out = append(out, a.ExpressionDefs(e.Qualifier)...)
	}
	for _, child := range e.Expressions {
		out = append(out, a.ExpressionDefs(child)...)
	}
	if e.AnonymousClassDeclaration != nil {
		for _, m := range e.AnonymousClassDeclaration.Methods {
			out = append(out, a.MethodDefs(m)...)
		}
	}
	return out
}

// nthExpr returns the n-th entry of e.Expressions, or nil if absent.
func nthExpr(e *pe.Expression, n int) *pe.Expression {
	if e == nil || n >= len(e.Expressions) {
		return nil
	}
	return e.Expressions[n]
}

// isIncDecOperator reports whether a Prefix expression's recorded operator token is ++ or --.
func isIncDecOperator(e *pe.Expression) bool {
	return e.OperatorToken == "++" || e.OperatorToken == "--"
}

// methodInvocationName extracts the bare method name from a MethodInvocation's ApiName
// ("<Qualifier>.<name>()") or, failing that, its Text.
func methodInvocationName(e *pe.Expression) string {
	s := e.ApiName
	if s == "" {
		s = e.Text
	}
	dot := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			dot = i
			break
		}
		if s[i] == '(' {
			break
		}
	}
	paren := len(s)
	for i, c := range s {
		if c == '(' {
			paren = i
			break
		}
	}
	if dot >= 0 && dot < paren {
		return s[dot+1 : paren]
	}
	if paren <= len(s) {
		return s[:paren]
	}
	return s
}

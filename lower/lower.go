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

package lower

import (
	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/scope"
	"github.com/pdgraph/pdgraph/sourceast"
)

// Context carries the state a single class-lowering pass threads through every handler: the
// work stack, the line table used to turn byte offsets into PE spans, and an optional type
// resolver for method-invocation receivers.
type Context struct {
	stack    stack
	lines    sourceast.LineTable
	resolver sourceast.TypeResolver

	// currentMgr is the scope manager of the method currently being lowered. Every Statement
	// created while lowering that method shares this same manager, per the one-manager-per-method
	// model.
	currentMgr *scope.Manager
}

// NewContext creates a lowering Context. resolver may be nil, in which case MethodInvocation
// apiName resolution always degrades to the textual form.
func NewContext(lines sourceast.LineTable, resolver sourceast.TypeResolver) *Context {
	return &Context{lines: lines, resolver: resolver}
}

// LowerClass walks n (expected Kind() == sourceast.KindClass) and produces the corresponding
// Class PE, including every method it declares.
func (ctx *Context) LowerClass(n sourceast.Node) *pe.Class {
	if n == nil || n.Kind() != sourceast.KindClass {
		return nil
	}

	cls := pe.NewClass(ctx.span(n), n.Text(), n.Modifiers(), n)
	name := n.Child(sourceast.RoleName)
	if name != nil {
		cls.Name = name.Text()
		cls.HasName = true
	}

	for _, m := range n.Children(sourceast.RoleMethods) {
		if lowered := ctx.LowerMethod(m); lowered != nil {
			cls.Methods = append(cls.Methods, lowered)
		}
	}
	return cls
}

// LowerMethod walks n (expected Kind() == sourceast.KindMethod) and produces the corresponding
// Method PE, with its parameters, body, and (for a single-expression lambda) body expression.
func (ctx *Context) LowerMethod(n sourceast.Node) *pe.Method {
	if n == nil || n.Kind() != sourceast.KindMethod {
		return nil
	}

	m := pe.NewMethod(ctx.span(n), n.Text(), n.Modifiers(), n)
	ctx.currentMgr = m.ScopeManager
	if name := n.Child(sourceast.RoleName); name != nil {
		m.Name = name.Text()
		m.HasName = true
	} else {
		m.IsLambda = true
	}

	for _, p := range n.Children(sourceast.RoleParameters) {
		if vd := ctx.lowerParameter(p); vd != nil {
			m.Parameters = append(m.Parameters, vd)
		}
	}

	bodyStatements := n.Children(sourceast.RoleStatements)
	if m.IsLambda && len(bodyStatements) == 0 {
		if body := n.Child(sourceast.RoleLambdaBodyExpression); body != nil {
			m.LambdaBodyExpression = ctx.childExpr(body)
		}
	}
	ctx.lowerBody(bodyStatements, m)
	m.IndexBlocks()

	return m
}

func (ctx *Context) lowerParameter(n sourceast.Node) *pe.VariableDeclaration {
	if n == nil || n.Kind() != sourceast.KindVariableDeclaration {
		return nil
	}
	name := n.Child(sourceast.RoleName)
	typeNode := n.Child(sourceast.RoleType)

	var typ *pe.Type
	if typeNode != nil {
		typ = pe.NewType(ctx.span(typeNode), typeNode.Text(), typeNode.Modifiers(), typeNode)
	}

	nameText := ""
	if name != nil {
		nameText = name.Text()
	}
	return pe.NewVariableDeclaration(pe.VarDeclParameter, nameText, typ, ctx.span(n), n.Text(), n.Modifiers(), n)
}

// lowerBody lowers every statement node in order, attaching each successfully-lowered statement
// onto parent and sharing mgr as its ScopeManager. Unsupported or empty statements contribute
// nothing, per the silent-skip failure policy.
func (ctx *Context) lowerBody(nodes []sourceast.Node, parent pe.Block) {
	for _, n := range nodes {
		stmt := ctx.childStmt(n)
		if stmt == nil {
			continue
		}
		pe.Attach(parent, stmt)
	}
}

// span derives a PE Span from a node's byte-offset range via the line table, applying the
// If/Try end-line narrowing described for those two statement kinds.
func (ctx *Context) span(n sourceast.Node) pe.Span {
	start := ctx.lines.Line(n.StartOffset())
	end := ctx.lines.Line(n.EndOffset())

	switch n.Kind() {
	case sourceast.KindIf:
		if elseNodes := n.Children(sourceast.RoleElseStatements); len(elseNodes) > 0 {
			end = ctx.lines.Line(elseNodes[0].StartOffset()) - 1
		}
	case sourceast.KindTry:
		if catches := n.Children(sourceast.RoleCatchStatements); len(catches) > 0 {
			end = ctx.lines.Line(catches[0].StartOffset()) - 1
		} else if fin := n.Child(sourceast.RoleFinallyStatement); fin != nil {
			end = ctx.lines.Line(fin.StartOffset()) - 1
		}
	}
	return pe.Span{Start: start, End: end}
}

// childExpr lowers n as an expression and reclaims it from the work stack via the safe-pop
// contract: a nil or unsupported child contributes nothing and is silently skipped.
func (ctx *Context) childExpr(n sourceast.Node) *pe.Expression {
	if n == nil {
		return nil
	}
	before := ctx.stack.size()
	ctx.lowerExpression(n)
	popped, ok := ctx.stack.pop(before, pe.ElementExpression)
	if !ok {
		return nil
	}
	return popped.(*pe.Expression)
}

// childExprs lowers each node in ns and returns only the ones that were accepted.
func (ctx *Context) childExprs(ns []sourceast.Node) []*pe.Expression {
	var out []*pe.Expression
	for _, n := range ns {
		if e := ctx.childExpr(n); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// childStmt lowers n as a statement and reclaims it from the work stack the same way childExpr
// does for expressions.
func (ctx *Context) childStmt(n sourceast.Node) *pe.Statement {
	if n == nil {
		return nil
	}
	before := ctx.stack.size()
	ctx.lowerStatement(n)
	popped, ok := ctx.stack.pop(before, pe.ElementStatement)
	if !ok {
		return nil
	}
	return popped.(*pe.Statement)
}

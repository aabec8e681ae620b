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
	"github.com/pdgraph/pdgraph/sourceast"
)

var expressionCategories = map[sourceast.Kind]pe.ExpressionCategory{
	sourceast.KindArrayAccess:                    pe.ExprArrayAccess,
	sourceast.KindArrayCreation:                  pe.ExprArrayCreation,
	sourceast.KindArrayInitializer:                pe.ExprArrayInitializer,
	sourceast.KindAssignment:                      pe.ExprAssignment,
	sourceast.KindBoolean:                         pe.ExprBoolean,
	sourceast.KindCast:                            pe.ExprCast,
	sourceast.KindCharacter:                       pe.ExprCharacter,
	sourceast.KindClassInstanceCreation:           pe.ExprClassInstanceCreation,
	sourceast.KindConstructorInvocation:           pe.ExprConstructorInvocation,
	sourceast.KindFieldAccess:                     pe.ExprFieldAccess,
	sourceast.KindInfix:                           pe.ExprInfix,
	sourceast.KindInstanceof:                      pe.ExprInstanceof,
	sourceast.KindMethodInvocation:                pe.ExprMethodInvocation,
	sourceast.KindNull:                            pe.ExprNull,
	sourceast.KindNumber:                          pe.ExprNumber,
	sourceast.KindParenthesized:                   pe.ExprParenthesized,
	sourceast.KindPostfix:                         pe.ExprPostfix,
	sourceast.KindPrefix:                          pe.ExprPrefix,
	sourceast.KindQualifiedName:                   pe.ExprQualifiedName,
	sourceast.KindSimpleName:                      pe.ExprSimpleName,
	sourceast.KindString:                          pe.ExprString,
	sourceast.KindSuperConstructorInvocation:      pe.ExprSuperConstructorInvocation,
	sourceast.KindSuperFieldAccess:                pe.ExprSuperFieldAccess,
	sourceast.KindSuperMethodInvocation:           pe.ExprSuperMethodInvocation,
	sourceast.KindThis:                            pe.ExprThis,
	sourceast.KindTrinomial:                       pe.ExprTrinomial,
	sourceast.KindTypeLiteral:                     pe.ExprTypeLiteral,
	sourceast.KindVariableDeclarationExpression:   pe.ExprVariableDeclarationExpression,
	sourceast.KindVariableDeclarationFragment:     pe.ExprVariableDeclarationFragment,
}

// operatorCategories are the expression categories that carry an operator token.
var operatorCategories = map[pe.ExpressionCategory]bool{
	pe.ExprAssignment: true,
	pe.ExprInfix:       true,
	pe.ExprPrefix:      true,
	pe.ExprPostfix:     true,
}

// lowerExpression allocates the Expression PE for n (if its kind is supported), pushes it, and
// fills its fields. Unsupported kinds push nothing, so a caller's pop() reports the child absent.
func (ctx *Context) lowerExpression(n sourceast.Node) {
	category, ok := expressionCategories[n.Kind()]
	if !ok {
		return
	}

	expr := pe.NewExpression(category, ctx.span(n), n.Text(), n.Modifiers(), n)
	ctx.stack.push(expr)

	expr.Qualifier = ctx.childExpr(n.Child(sourceast.RoleQualifier))
	expr.Expressions = ctx.childExprs(n.Children(sourceast.RoleExpressions))

	if operatorCategories[category] {
		expr.OperatorToken = operatorToken(n)
	}

	switch category {
	case pe.ExprVariableDeclarationFragment:
		var parts []*pe.Expression
		if name := ctx.childExpr(n.Child(sourceast.RoleName)); name != nil {
			parts = append(parts, name)
		}
		if init := ctx.childExpr(n.Child(sourceast.RoleInit)); init != nil {
			parts = append(parts, init)
		}
		expr.Expressions = parts

	case pe.ExprMethodInvocation:
		expr.ApiName = ctx.resolveAPIName(n, expr)

	case pe.ExprClassInstanceCreation:
		if anon := n.Child(sourceast.RoleAnonymousClassDeclaration); anon != nil {
			expr.AnonymousClassDeclaration = ctx.LowerClass(anon)
		}
	}

	expr.Text = exprText(expr, n.Text())
}

// operatorToken reads the token text for Assignment/Infix/Prefix/Postfix nodes from their
// RoleOperator child, or the empty string if the parser did not supply one.
func operatorToken(n sourceast.Node) string {
	op := n.Child(sourceast.RoleOperator)
	if op == nil {
		return ""
	}
	return op.Text()
}

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

package pe

import "github.com/pdgraph/pdgraph/sourceast"

// ExpressionCategory enumerates the Expression variant tags.
type ExpressionCategory int

// Expression categories.
const (
	ExprArrayAccess ExpressionCategory = iota
	ExprArrayCreation
	ExprArrayInitializer
	ExprAssignment
	ExprBoolean
	ExprCast
	ExprCharacter
	ExprClassInstanceCreation
	ExprConstructorInvocation
	ExprFieldAccess
	ExprInfix
	ExprInstanceof
	ExprMethodInvocation
	ExprNull
	ExprNumber
	ExprParenthesized
	ExprPostfix
	ExprPrefix
	ExprQualifiedName
	ExprSimpleName
	ExprString
	ExprSuperConstructorInvocation
	ExprSuperFieldAccess
	ExprSuperMethodInvocation
	ExprThis
	ExprTrinomial
	ExprTypeLiteral
	ExprVariableDeclarationExpression
	ExprVariableDeclarationFragment
	// ExprMethodEnter is a synthetic expression category; it is never produced by lowering, and
	// the PDG's MethodEnter node wraps the *Method itself rather than an expression of this kind.
	ExprMethodEnter
)

// Expression is the Expression PE variant.
type Expression struct {
	Base
	Category ExpressionCategory

	Qualifier                 *Expression
	Expressions               []*Expression
	AnonymousClassDeclaration *Class
	// ApiName is set for MethodInvocation: "<QualifiedType>.<methodName>()" when a receiver
	// binding resolves to a fully qualified type, else "<qualifierText>.<methodName>()".
	ApiName string
	// OperatorToken carries the operator text for Prefix, Postfix, Infix, and Assignment
	// expressions (e.g. "++", "&&", "+="); empty for every other category.
	OperatorToken string
}

// NewExpression allocates an Expression PE.
func NewExpression(category ExpressionCategory, span Span, text string, modifiers []string, ref sourceast.Node) *Expression {
	return &Expression{Base: newBase(span, text, modifiers, ref), Category: category}
}

// ElementKind implements Element.
func (e *Expression) ElementKind() ElementKind { return ElementExpression }

var _ Element = (*Expression)(nil)

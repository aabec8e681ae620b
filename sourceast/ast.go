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

// Package sourceast specifies the external AST contract this analysis consumes.
// The source-text parser that produces values satisfying this contract is explicitly out of
// scope for this module: sourceast only pins down the shape a foreign, class-based,
// block-structured AST must have for package lower to walk it.
package sourceast

// Kind identifies the syntactic category of a Node. The vocabulary matches the PE categories
// one-for-one, since the analyzer assumes the parser yields a typed AST matching those
// categories exactly.
type Kind int

// Statement kinds.
const (
	KindUnknown Kind = iota
	KindAssert
	KindBreak
	KindCase
	KindCatch
	KindContinue
	KindDo
	KindEmpty
	KindExpressionStmt
	KindIf
	KindFor
	KindForeach
	KindReturn
	KindSimpleBlock
	KindSynchronized
	KindSwitch
	KindThrow
	KindTry
	KindTypeDeclarationStmt
	KindVariableDeclarationStmt
	KindWhile
)

// Expression kinds.
const (
	KindArrayAccess Kind = iota + 100
	KindArrayCreation
	KindArrayInitializer
	KindAssignment
	KindBoolean
	KindCast
	KindCharacter
	KindClassInstanceCreation
	KindConstructorInvocation
	KindFieldAccess
	KindInfix
	KindInstanceof
	KindMethodInvocation
	KindNull
	KindNumber
	KindParenthesized
	KindPostfix
	KindPrefix
	KindQualifiedName
	KindSimpleName
	KindString
	KindSuperConstructorInvocation
	KindSuperFieldAccess
	KindSuperMethodInvocation
	KindThis
	KindTrinomial
	KindTypeLiteral
	KindVariableDeclarationExpression
	KindVariableDeclarationFragment
	KindMethodEnter
)

// Non-statement, non-expression kinds.
const (
	KindMethod Kind = iota + 300
	KindClass
	KindVariableDeclaration
	KindType
	KindOperator
)

// Role identifies the structural slot a child Node occupies in its parent, matching the field
// names assigned to each PE variant.
type Role int

// Roles.
const (
	RoleCondition Role = iota
	RoleExpressions
	RoleInitializers
	RoleUpdaters
	RoleStatements
	RoleElseStatements
	RoleCatchStatements
	RoleFinallyStatement
	RoleLabel
	RoleQualifier
	RoleAnonymousClassDeclaration
	RoleLambdaBodyExpression
	RoleParameters
	RoleMethods
	RoleName
	RoleType
	RoleInit
	RoleOwnerBlock
	RoleOperator
)

// Node is the external AST contract. For each node the analyzer needs: its Kind, its source
// span (in bytes, so start/end lines can be derived by the caller that has the file's newline
// table), its verbatim source text (for PE text reconstruction when a child is unsupported), its
// modifier list, and child accessors keyed by Role. Child(role) returns the single child
// occupying that role, or nil. Children(role) returns the (possibly empty) repeated children in
// that role.
type Node interface {
	Kind() Kind
	StartOffset() int
	EndOffset() int
	Text() string
	Modifiers() []string
	Child(role Role) Node
	Children(role Role) []Node
}

// TypeResolver resolves the fully qualified type of a method-invocation qualifier, when static
// type information is available. It is optional: lower degrades to a textual API name when a
// resolver is absent or returns ok=false.
type TypeResolver interface {
	// ResolveQualifierType returns the fully qualified type name of qualifier's static type, and
	// true if the resolver had a binding for it.
	ResolveQualifierType(qualifier Node) (qualifiedType string, ok bool)
}

// LineTable converts a byte offset into a 1-based source line number. The external parser's
// companion (or a thin wrapper over the original source text) is expected to supply this; lower
// uses it to compute PE spans.
type LineTable interface {
	Line(offset int) int
}

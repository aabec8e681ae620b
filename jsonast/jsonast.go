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

// Package jsonast is a concrete driver.Parser: it decodes a compilation unit written as a JSON
// tree into the sourceast.Node contract, so the CLI (and anything else that only has JSON
// fixtures to feed it, rather than a real class-based-language front end) has something runnable
// to drive the analyzer with. The source-text grammar itself stays out of scope (see package
// sourceast's doc comment); this package only fixes a JSON encoding of the AST the grammar would
// have produced.
package jsonast

import (
	"encoding/json"
	"fmt"

	"github.com/pdgraph/pdgraph/driver"
	"github.com/pdgraph/pdgraph/sourceast"
)

// wireNode is the on-the-wire shape of one AST node. Line and EndLine are source line numbers
// directly (not byte offsets): this format has no independent notion of source text to take byte
// offsets into, so Line doubles as the sourceast.LineTable input and its own answer, matching the
// identity LineTable already used by this module's own test fixtures.
type wireNode struct {
	Kind      string                `json:"kind"`
	Line      int                   `json:"line"`
	EndLine   int                   `json:"endLine"`
	Text      string                `json:"text"`
	Modifiers []string              `json:"modifiers,omitempty"`
	Children  map[string][]wireNode `json:"children,omitempty"`
}

// node adapts a decoded wireNode to sourceast.Node.
type node struct {
	w *wireNode
}

var _ sourceast.Node = (*node)(nil)

func (n *node) Kind() sourceast.Kind { return kindByName[n.w.Kind] }
func (n *node) StartOffset() int     { return n.w.Line }
func (n *node) EndOffset() int       { return n.w.EndLine }
func (n *node) Text() string         { return n.w.Text }
func (n *node) Modifiers() []string  { return n.w.Modifiers }

func (n *node) Child(role sourceast.Role) sourceast.Node {
	children := n.Children(role)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func (n *node) Children(role sourceast.Role) []sourceast.Node {
	raw, ok := n.w.Children[roleNames[role]]
	if !ok {
		return nil
	}
	out := make([]sourceast.Node, len(raw))
	for i := range raw {
		out[i] = &node{w: &raw[i]}
	}
	return out
}

// lineTable is the identity LineTable this format's "offsets" already are line numbers.
type lineTable struct{}

func (lineTable) Line(offset int) int { return offset }

var _ sourceast.LineTable = lineTable{}

// Parser decodes a JSON-encoded AST tree (see wireNode) into a sourceast.Node. It never resolves
// types, so lower always degrades method-invocation apiName resolution to its textual form.
type Parser struct{}

var _ driver.Parser = Parser{}

// Parse decodes source as a single JSON-encoded wireNode tree rooted at a Class node.
func (Parser) Parse(source string) (sourceast.Node, sourceast.LineTable, sourceast.TypeResolver, error) {
	var root wireNode
	if err := json.Unmarshal([]byte(source), &root); err != nil {
		return nil, nil, nil, fmt.Errorf("jsonast: decoding source as a JSON AST tree: %w", err)
	}
	if root.Kind == "" {
		return nil, nil, nil, fmt.Errorf("jsonast: root node has no kind")
	}
	if _, ok := kindByName[root.Kind]; !ok {
		return nil, nil, nil, fmt.Errorf("jsonast: unrecognized node kind %q", root.Kind)
	}
	return &node{w: &root}, lineTable{}, nil, nil
}

var kindByName = map[string]sourceast.Kind{
	"Assert":                          sourceast.KindAssert,
	"Break":                           sourceast.KindBreak,
	"Case":                            sourceast.KindCase,
	"Catch":                           sourceast.KindCatch,
	"Continue":                        sourceast.KindContinue,
	"Do":                              sourceast.KindDo,
	"Empty":                           sourceast.KindEmpty,
	"ExpressionStmt":                  sourceast.KindExpressionStmt,
	"If":                              sourceast.KindIf,
	"For":                             sourceast.KindFor,
	"Foreach":                         sourceast.KindForeach,
	"Return":                          sourceast.KindReturn,
	"SimpleBlock":                     sourceast.KindSimpleBlock,
	"Synchronized":                    sourceast.KindSynchronized,
	"Switch":                          sourceast.KindSwitch,
	"Throw":                           sourceast.KindThrow,
	"Try":                             sourceast.KindTry,
	"TypeDeclarationStmt":             sourceast.KindTypeDeclarationStmt,
	"VariableDeclarationStmt":         sourceast.KindVariableDeclarationStmt,
	"While":                           sourceast.KindWhile,
	"ArrayAccess":                     sourceast.KindArrayAccess,
	"ArrayCreation":                   sourceast.KindArrayCreation,
	"ArrayInitializer":                sourceast.KindArrayInitializer,
	"Assignment":                      sourceast.KindAssignment,
	"Boolean":                         sourceast.KindBoolean,
	"Cast":                            sourceast.KindCast,
	"Character":                       sourceast.KindCharacter,
	"ClassInstanceCreation":           sourceast.KindClassInstanceCreation,
	"ConstructorInvocation":           sourceast.KindConstructorInvocation,
	"FieldAccess":                     sourceast.KindFieldAccess,
	"Infix":                           sourceast.KindInfix,
	"Instanceof":                      sourceast.KindInstanceof,
	"MethodInvocation":                sourceast.KindMethodInvocation,
	"Null":                            sourceast.KindNull,
	"Number":                          sourceast.KindNumber,
	"Parenthesized":                   sourceast.KindParenthesized,
	"Postfix":                         sourceast.KindPostfix,
	"Prefix":                          sourceast.KindPrefix,
	"QualifiedName":                   sourceast.KindQualifiedName,
	"SimpleName":                      sourceast.KindSimpleName,
	"String":                          sourceast.KindString,
	"SuperConstructorInvocation":      sourceast.KindSuperConstructorInvocation,
	"SuperFieldAccess":                sourceast.KindSuperFieldAccess,
	"SuperMethodInvocation":           sourceast.KindSuperMethodInvocation,
	"This":                            sourceast.KindThis,
	"Trinomial":                       sourceast.KindTrinomial,
	"TypeLiteral":                     sourceast.KindTypeLiteral,
	"VariableDeclarationExpression":   sourceast.KindVariableDeclarationExpression,
	"VariableDeclarationFragment":     sourceast.KindVariableDeclarationFragment,
	"MethodEnter":                     sourceast.KindMethodEnter,
	"Method":                          sourceast.KindMethod,
	"Class":                           sourceast.KindClass,
	"VariableDeclaration":             sourceast.KindVariableDeclaration,
	"Type":                            sourceast.KindType,
	"Operator":                        sourceast.KindOperator,
}

var roleNames = map[sourceast.Role]string{
	sourceast.RoleCondition:                  "Condition",
	sourceast.RoleExpressions:                "Expressions",
	sourceast.RoleInitializers:               "Initializers",
	sourceast.RoleUpdaters:                   "Updaters",
	sourceast.RoleStatements:                 "Statements",
	sourceast.RoleElseStatements:              "ElseStatements",
	sourceast.RoleCatchStatements:            "CatchStatements",
	sourceast.RoleFinallyStatement:           "FinallyStatement",
	sourceast.RoleLabel:                      "Label",
	sourceast.RoleQualifier:                  "Qualifier",
	sourceast.RoleAnonymousClassDeclaration:  "AnonymousClassDeclaration",
	sourceast.RoleLambdaBodyExpression:       "LambdaBodyExpression",
	sourceast.RoleParameters:                 "Parameters",
	sourceast.RoleMethods:                    "Methods",
	sourceast.RoleName:                       "Name",
	sourceast.RoleType:                       "Type",
	sourceast.RoleInit:                       "Init",
	sourceast.RoleOwnerBlock:                 "OwnerBlock",
	sourceast.RoleOperator:                   "Operator",
}

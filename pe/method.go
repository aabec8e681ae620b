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

import (
	"github.com/pdgraph/pdgraph/scope"
	"github.com/pdgraph/pdgraph/sourceast"
)

// Method is the Method PE variant.
type Method struct {
	Base
	Name                 string
	HasName              bool // false iff this is an anonymous method/lambda with no Name.
	IsLambda             bool
	Parameters           []*VariableDeclaration
	Statements           []*Statement
	LambdaBodyExpression *Expression // set iff IsLambda and the body is a single expression.

	ScopeManager *scope.Manager

	// blockByID indexes every block-leading Statement nested (directly or transitively) under
	// this method by id, so resolveOwner can answer scope.OwnerResolver queries in O(1).
	// Populated by IndexBlocks once the method body is fully attached.
	blockByID map[int]*Statement
}

// NewMethod allocates a Method PE and its scope manager.
func NewMethod(span Span, text string, modifiers []string, ref sourceast.Node) *Method {
	m := &Method{Base: newBase(span, text, modifiers, ref), blockByID: make(map[int]*Statement)}
	m.ScopeManager = scope.NewManager(m.resolveOwner)
	return m
}

// IndexBlocks rebuilds blockByID by walking the method's fully-attached statement tree. It must
// be called once lowering has finished attaching every statement, since a statement's position in
// this index does not depend on attach-time order, only on the final tree shape: a nested
// block-leading statement (an if inside a for, a catch inside a try) is only reachable through
// its parent's Statements/ElseStatements/CatchStatements/FinallyStatement, all of which are only
// final once the whole method body has been built.
func (m *Method) IndexBlocks() {
	m.blockByID = make(map[int]*Statement)
	for _, s := range m.Statements {
		m.indexStatement(s)
	}
}

func (m *Method) indexStatement(s *Statement) {
	if s == nil {
		return
	}
	if s.IsBlockLeading() {
		m.blockByID[s.ID()] = s
	}
	for _, c := range s.Statements {
		m.indexStatement(c)
	}
	for _, c := range s.ElseStatements {
		m.indexStatement(c)
	}
	for _, c := range s.CatchStatements {
		m.indexStatement(c)
	}
	m.indexStatement(s.FinallyStatement)
}

// ElementKind implements Element.
func (m *Method) ElementKind() ElementKind { return ElementMethod }

// OwnedStatements implements Block.
func (m *Method) OwnedStatements() *[]*Statement { return &m.Statements }

// resolveOwner implements scope.OwnerResolver over this method's PE tree: the owner of a
// statement's block is found by walking the Statement.OwnerBlock back-reference; the method body
// itself (keyed by the Method's own id) has no owner.
func (m *Method) resolveOwner(blockID int) (int, bool) {
	if blockID == m.ID() {
		return 0, false
	}
	stmt := m.statementByID(blockID)
	if stmt == nil || stmt.OwnerBlock == nil {
		return 0, false
	}
	return stmt.OwnerBlock.ID(), true
}

// statementByID looks up a block-leading Statement registered under this method by id.
func (m *Method) statementByID(id int) *Statement {
	return m.blockByID[id]
}

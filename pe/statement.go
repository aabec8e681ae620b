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

// StatementCategory enumerates the Statement variant tags.
type StatementCategory int

// Statement categories.
const (
	StmtAssert StatementCategory = iota
	StmtBreak
	StmtCase
	StmtCatch
	StmtContinue
	StmtDo
	StmtEmpty
	StmtExpression
	StmtIf
	StmtFor
	StmtForeach
	StmtReturn
	StmtSimpleBlock
	StmtSynchronized
	StmtSwitch
	StmtThrow
	StmtTry
	StmtTypeDeclaration
	StmtVariableDeclaration
	StmtWhile
)

// blockLeading is the set of Statement categories that may be a valid parent for attaching child
// statements; Method is block-leading too but is not a Statement (see method.go).
var blockLeading = map[StatementCategory]bool{
	StmtSimpleBlock:  true,
	StmtIf:           true,
	StmtFor:          true,
	StmtForeach:      true,
	StmtWhile:        true,
	StmtDo:           true,
	StmtTry:          true,
	StmtCatch:        true,
	StmtSwitch:       true,
	StmtSynchronized: true,
}

// Statement is the Statement PE variant.
type Statement struct {
	Base
	Category StatementCategory

	// OwnerBlock is a non-owning back-reference to the block this statement is attached under.
	// Nil until Attach binds it.
	OwnerBlock Block

	Condition        *Expression
	Expressions      []*Expression
	Initializers     []*Expression
	Updaters         []*Expression
	Statements       []*Statement
	ElseStatements   []*Statement
	CatchStatements  []*Statement
	FinallyStatement *Statement
	Label            *Expression

	// ScopeManager is the scope manager for the enclosing method. Set once, at method-level
	// lowering time, and shared by every Statement and Expression within that method.
	ScopeManager *scope.Manager
}

// NewStatement allocates a Statement PE. span, text, modifiers, and ref populate the common Base
// fields.
func NewStatement(category StatementCategory, span Span, text string, modifiers []string, ref sourceast.Node) *Statement {
	return &Statement{Base: newBase(span, text, modifiers, ref), Category: category}
}

// ElementKind implements Element.
func (s *Statement) ElementKind() ElementKind { return ElementStatement }

// IsBlockLeading reports whether statements may be validly attached under s.
func (s *Statement) IsBlockLeading() bool { return blockLeading[s.Category] }

// OwnedStatements implements Block.
func (s *Statement) OwnedStatements() *[]*Statement { return &s.Statements }

var _ Block = (*Statement)(nil)
var _ Element = (*Statement)(nil)

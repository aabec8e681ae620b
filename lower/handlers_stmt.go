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

var statementCategories = map[sourceast.Kind]pe.StatementCategory{
	sourceast.KindAssert:                   pe.StmtAssert,
	sourceast.KindBreak:                    pe.StmtBreak,
	sourceast.KindCase:                     pe.StmtCase,
	sourceast.KindCatch:                    pe.StmtCatch,
	sourceast.KindContinue:                 pe.StmtContinue,
	sourceast.KindDo:                       pe.StmtDo,
	sourceast.KindEmpty:                    pe.StmtEmpty,
	sourceast.KindExpressionStmt:           pe.StmtExpression,
	sourceast.KindIf:                       pe.StmtIf,
	sourceast.KindFor:                      pe.StmtFor,
	sourceast.KindForeach:                  pe.StmtForeach,
	sourceast.KindReturn:                   pe.StmtReturn,
	sourceast.KindSimpleBlock:              pe.StmtSimpleBlock,
	sourceast.KindSynchronized:             pe.StmtSynchronized,
	sourceast.KindSwitch:                   pe.StmtSwitch,
	sourceast.KindThrow:                    pe.StmtThrow,
	sourceast.KindTry:                      pe.StmtTry,
	sourceast.KindTypeDeclarationStmt:      pe.StmtTypeDeclaration,
	sourceast.KindVariableDeclarationStmt:  pe.StmtVariableDeclaration,
	sourceast.KindWhile:                    pe.StmtWhile,
}

// lowerStatement allocates the Statement PE for n (if its kind is supported), pushes it, and
// fills its fields by recursively lowering its children. Unsupported kinds push nothing, so a
// caller's pop() call correctly reports the child as absent.
func (ctx *Context) lowerStatement(n sourceast.Node) {
	category, ok := statementCategories[n.Kind()]
	if !ok {
		return
	}

	stmt := pe.NewStatement(category, ctx.span(n), n.Text(), n.Modifiers(), n)
	stmt.ScopeManager = ctx.currentMgr
	ctx.stack.push(stmt)

	stmt.Condition = ctx.childExpr(n.Child(sourceast.RoleCondition))
	stmt.Expressions = ctx.childExprs(n.Children(sourceast.RoleExpressions))
	stmt.Initializers = ctx.childExprs(n.Children(sourceast.RoleInitializers))
	stmt.Updaters = ctx.childExprs(n.Children(sourceast.RoleUpdaters))
	stmt.Label = ctx.childExpr(n.Child(sourceast.RoleLabel))

	switch category {
	case pe.StmtIf:
		ctx.lowerBody(n.Children(sourceast.RoleStatements), stmt)
		if elseNodes := n.Children(sourceast.RoleElseStatements); len(elseNodes) > 0 {
			ctx.lowerElseBranch(stmt, elseNodes)
		}

	case pe.StmtTry:
		ctx.lowerBody(n.Children(sourceast.RoleStatements), stmt)
		for _, c := range n.Children(sourceast.RoleCatchStatements) {
			if catch := ctx.childStmt(c); catch != nil {
				pe.AttachCatch(stmt, catch)
			}
		}
		if fin := n.Child(sourceast.RoleFinallyStatement); fin != nil {
			if finStmt := ctx.childStmt(fin); finStmt != nil {
				pe.AttachFinally(stmt, finStmt)
			}
		}

	case pe.StmtSimpleBlock, pe.StmtFor, pe.StmtForeach, pe.StmtWhile, pe.StmtDo,
		pe.StmtCatch, pe.StmtSwitch, pe.StmtSynchronized, pe.StmtCase:
		ctx.lowerBody(n.Children(sourceast.RoleStatements), stmt)
	}

	stmt.Text = stmtText(stmt, n.Text())
}

// lowerElseBranch attaches the else arm of an If statement. A single SimpleBlock else-arm is
// inlined by AttachElse; an "else if" chain arrives as a single nested If node.
func (ctx *Context) lowerElseBranch(ifStmt *pe.Statement, elseNodes []sourceast.Node) {
	for _, n := range elseNodes {
		if s := ctx.childStmt(n); s != nil {
			pe.AttachElse(ifStmt, s)
		}
	}
}

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
	"strings"

	"github.com/pdgraph/pdgraph/pe"
)

// exprText builds a canonical pretty-printed rendering of expr from its already-lowered
// children, for the compound categories whose shape is simple and stable enough to reconstruct.
// Every other category (leaf expressions, and categories no downstream code reconstructs from
// text) keeps rawText verbatim: this is not a goal to match any source formatter bit-for-bit,
// only to round-trip to a parseable approximation.
func exprText(expr *pe.Expression, rawText string) string {
	switch expr.Category {
	case pe.ExprAssignment, pe.ExprInfix:
		if len(expr.Expressions) == 2 {
			return expr.Expressions[0].Text + " " + expr.OperatorToken + " " + expr.Expressions[1].Text
		}

	case pe.ExprPrefix:
		if len(expr.Expressions) == 1 {
			return expr.OperatorToken + expr.Expressions[0].Text
		}

	case pe.ExprPostfix:
		if len(expr.Expressions) == 1 {
			return expr.Expressions[0].Text + expr.OperatorToken
		}

	case pe.ExprParenthesized:
		if len(expr.Expressions) == 1 {
			return "(" + expr.Expressions[0].Text + ")"
		}

	case pe.ExprArrayAccess:
		switch len(expr.Expressions) {
		case 2:
			return expr.Expressions[0].Text + "[" + expr.Expressions[1].Text + "]"
		case 1:
			return expr.Expressions[0].Text + "[]"
		}

	case pe.ExprVariableDeclarationFragment:
		switch len(expr.Expressions) {
		case 2:
			return expr.Expressions[0].Text + " = " + expr.Expressions[1].Text
		case 1:
			return expr.Expressions[0].Text
		}

	case pe.ExprMethodInvocation:
		if idx := strings.LastIndex(expr.ApiName, "()"); idx >= 0 {
			return expr.ApiName[:idx] + "(" + joinText(expr.Expressions) + ")"
		}
	}
	return rawText
}

// stmtText builds a canonical rendering for the statement categories whose body is a single
// expression or name; block-bodied categories (If, For, While, Try, Switch, ...) keep rawText,
// since reconstructing a multi-line construct from its parts buys nothing a test would check.
func stmtText(stmt *pe.Statement, rawText string) string {
	switch stmt.Category {
	case pe.StmtExpression:
		if len(stmt.Expressions) == 1 {
			return stmt.Expressions[0].Text + ";"
		}

	case pe.StmtReturn:
		if len(stmt.Expressions) == 1 {
			return "return " + stmt.Expressions[0].Text + ";"
		}
		return "return;"

	case pe.StmtThrow:
		if len(stmt.Expressions) == 1 {
			return "throw " + stmt.Expressions[0].Text + ";"
		}

	case pe.StmtAssert:
		if stmt.Condition != nil {
			return "assert " + stmt.Condition.Text + ";"
		}

	case pe.StmtBreak:
		if stmt.Label != nil {
			return "break " + stmt.Label.Text + ";"
		}
		return "break;"

	case pe.StmtContinue:
		if stmt.Label != nil {
			return "continue " + stmt.Label.Text + ";"
		}
		return "continue;"

	case pe.StmtVariableDeclaration:
		if len(stmt.Expressions) > 0 {
			return joinText(stmt.Expressions) + ";"
		}

	case pe.StmtEmpty:
		return ";"
	}
	return rawText
}

func joinText(exprs []*pe.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.Text
	}
	return strings.Join(parts, ", ")
}

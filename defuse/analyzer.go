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

// Analyzer computes and memoizes defs/uses for every PE reachable from a single method. One
// Analyzer is created per method analysis; it is not safe to share across methods since the
// memoization keys (PE ids) are only unique within a single lowering pass, and the scope manager
// it binds definitions into belongs to one method.
type Analyzer struct {
	Config

	mgr *scope.Manager

	exprDefs map[int][]*scope.VarDef
	exprUses map[int][]*scope.VarUse
	stmtDefs map[int][]*scope.VarDef
	stmtUses map[int][]*scope.VarUse
}

// NewAnalyzer creates an Analyzer bound to mgr, the scope manager of the method being analyzed.
func NewAnalyzer(cfg Config, mgr *scope.Manager) *Analyzer {
	return &Analyzer{
		Config:   cfg,
		mgr:      mgr,
		exprDefs: make(map[int][]*scope.VarDef),
		exprUses: make(map[int][]*scope.VarUse),
		stmtDefs: make(map[int][]*scope.VarDef),
		stmtUses: make(map[int][]*scope.VarUse),
	}
}

// ExpressionDefs returns the memoized def set for e.
func (a *Analyzer) ExpressionDefs(e *pe.Expression) []*scope.VarDef {
	if e == nil {
		return nil
	}
	if v, ok := a.exprDefs[e.ID()]; ok {
		return v
	}
	v := a.expressionDefs(e)
	a.exprDefs[e.ID()] = v
	return v
}

// ExpressionUses returns the memoized use set for e.
func (a *Analyzer) ExpressionUses(e *pe.Expression) []*scope.VarUse {
	if e == nil {
		return nil
	}
	if v, ok := a.exprUses[e.ID()]; ok {
		return v
	}
	v := a.expressionUses(e)
	a.exprUses[e.ID()] = v
	return v
}

// StatementDefs returns the memoized def set for s: the normalized defs contributed directly by
// s's own expression fields, unioned with the defs of every statement nested under s.
func (a *Analyzer) StatementDefs(s *pe.Statement) []*scope.VarDef {
	if s == nil {
		return nil
	}
	if v, ok := a.stmtDefs[s.ID()]; ok {
		return v
	}

	var direct []*scope.VarDef
	if s.Condition != nil {
		direct = append(direct, a.ExpressionDefs(s.Condition)...)
	}
	for _, e := range s.Expressions {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	for _, e := range s.Initializers {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	for _, e := range s.Updaters {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	for _, d := range direct {
		a.normalizeDef(s, d)
	}

	out := append([]*scope.VarDef(nil), direct...)
	for _, child := range s.Statements {
		out = append(out, a.StatementDefs(child)...)
	}
	for _, child := range s.ElseStatements {
		out = append(out, a.StatementDefs(child)...)
	}
	for _, child := range s.CatchStatements {
		out = append(out, a.StatementDefs(child)...)
	}
	if s.FinallyStatement != nil {
		out = append(out, a.StatementDefs(s.FinallyStatement)...)
	}

	a.stmtDefs[s.ID()] = out
	return out
}

// StatementUses returns the memoized use set for s, following the same fold shape as
// StatementDefs but without the DECLARE-binding step of normalizeDef.
func (a *Analyzer) StatementUses(s *pe.Statement) []*scope.VarUse {
	if s == nil {
		return nil
	}
	if v, ok := a.stmtUses[s.ID()]; ok {
		return v
	}

	var direct []*scope.VarUse
	if s.Condition != nil {
		direct = append(direct, a.ExpressionUses(s.Condition)...)
	}
	for _, e := range s.Expressions {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	for _, e := range s.Initializers {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	for _, e := range s.Updaters {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	for _, u := range direct {
		a.normalizeUse(s, u)
	}

	out := append([]*scope.VarUse(nil), direct...)
	for _, child := range s.Statements {
		out = append(out, a.StatementUses(child)...)
	}
	for _, child := range s.ElseStatements {
		out = append(out, a.StatementUses(child)...)
	}
	for _, child := range s.CatchStatements {
		out = append(out, a.StatementUses(child)...)
	}
	if s.FinallyStatement != nil {
		out = append(out, a.StatementUses(s.FinallyStatement)...)
	}

	a.stmtUses[s.ID()] = out
	return out
}

// StatementOwnDefs returns the defs contributed directly by s's own expression fields
// (Condition, Expressions, Initializers, Updaters), without folding in the defs of any statement
// nested under s. This is the granularity package depgraph needs: its CFG nodes are individual
// statements, not statement subtrees, so a compound statement's nested children must be attributed
// to their own CFG nodes, not double-counted at their parent's. Unlike StatementDefs this does not
// call normalizeDef — ExpressionDefs is memoized, and a def is only safe to normalize once (a
// second normalizeDef call on an already-bound VarDef re-declares it into its own scope, since
// Scope.Declare has no duplicate check), so this relies on MethodDefs having already normalized
// every def in the tree before depgraph starts visiting individual CFG nodes.
func (a *Analyzer) StatementOwnDefs(s *pe.Statement) []*scope.VarDef {
	if s == nil {
		return nil
	}
	var direct []*scope.VarDef
	if s.Condition != nil {
		direct = append(direct, a.ExpressionDefs(s.Condition)...)
	}
	for _, e := range s.Expressions {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	for _, e := range s.Initializers {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	for _, e := range s.Updaters {
		direct = append(direct, a.ExpressionDefs(e)...)
	}
	return direct
}

// StatementOwnUses is StatementOwnDefs' counterpart for uses.
func (a *Analyzer) StatementOwnUses(s *pe.Statement) []*scope.VarUse {
	if s == nil {
		return nil
	}
	var direct []*scope.VarUse
	if s.Condition != nil {
		direct = append(direct, a.ExpressionUses(s.Condition)...)
	}
	for _, e := range s.Expressions {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	for _, e := range s.Initializers {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	for _, e := range s.Updaters {
		direct = append(direct, a.ExpressionUses(e)...)
	}
	return direct
}

// normalizeDef applies the statement-level binding procedure to a def contributed by s: it
// resolves an unset scope, optionally promotes an unresolved name to a this.-qualified field
// reference, and records s as the def's relevant statement.
func (a *Analyzer) normalizeDef(s *pe.Statement, d *scope.VarDef) {
	ownerBlockID := ownerBlockID(s)
	resolvedToExisting := false

	if !d.HasScope() {
		if d.Certainty.AtLeast(scope.Declare) {
			d.BindScope(ownerBlockID)
		} else if found, ok := a.mgr.SearchVariableDef(ownerBlockID, d.MainName); ok {
			d.BindScope(found.BlockID)
			resolvedToExisting = true
		}
	}

	if !d.HasScope() && a.TreatNonLocalAsField && d.MainName != "" && !hasPrefix(d.MainName, "this.") {
		if !a.TreatFieldExcludeUppercase || isLowerFirst(d.MainName) {
			original := d.MainName
			d.MainName = "this." + original
			d.Aliases = map[string]struct{}{original: {}, d.MainName: {}}
		}
	}

	if !d.HasRelevantStmt() {
		d.RelevantStmtID = s.ID()
	}

	// A def that resolved to an already-declared enclosing Var is already present in that
	// scope's variable set; only a newly introduced binding needs inserting here, so later
	// searches from this block (or nested ones) find it.
	if !resolvedToExisting {
		a.mgr.GetScope(ownerBlockID).Declare(d.Var)
	}
}

// normalizeUse mirrors normalizeDef for uses, without the DECLARE scope-binding branch (uses
// never declare a variable) and without a relevant-statement slot (VarUse carries none).
func (a *Analyzer) normalizeUse(s *pe.Statement, u *scope.VarUse) {
	ownerBlockID := ownerBlockID(s)

	if !u.HasScope() {
		if found, ok := a.mgr.SearchVariableDef(ownerBlockID, u.MainName); ok {
			u.BindScope(found.BlockID)
		}
	}

	if !u.HasScope() && a.TreatNonLocalAsField && u.MainName != "" && !hasPrefix(u.MainName, "this.") {
		if !a.TreatFieldExcludeUppercase || isLowerFirst(u.MainName) {
			original := u.MainName
			u.MainName = "this." + original
			u.Aliases = map[string]struct{}{original: {}, u.MainName: {}}
		}
	}
}

func ownerBlockID(s *pe.Statement) int {
	if s.OwnerBlock == nil {
		return s.ID()
	}
	return s.OwnerBlock.ID()
}

func isLowerFirst(s string) bool {
	if s == "" {
		return true
	}
	c := s[0]
	return !(c >= 'A' && c <= 'Z')
}

// MethodDefs computes the method-level def set: a DECLARE def for every parameter bound into the
// method's own scope, folded with the defs of the method body, plus the lambda body expression's
// defs for a single-expression lambda.
func (a *Analyzer) MethodDefs(m *pe.Method) []*scope.VarDef {
	var out []*scope.VarDef

	methodScope := a.mgr.GetScope(m.ID())
	for _, p := range m.Parameters {
		v := scope.NewVar(p.Name)
		d := scope.NewVarDef(v, scope.Declare)
		methodScope.Declare(v)
		out = append(out, d)
	}

	for _, s := range m.Statements {
		out = append(out, a.StatementDefs(s)...)
	}
	if m.IsLambda && m.LambdaBodyExpression != nil {
		out = append(out, a.ExpressionDefs(m.LambdaBodyExpression)...)
	}

	return out
}

// MethodUses computes the method-level use set: the folded uses of the method body, plus the
// lambda body expression's uses for a single-expression lambda.
func (a *Analyzer) MethodUses(m *pe.Method) []*scope.VarUse {
	var out []*scope.VarUse
	for _, s := range m.Statements {
		out = append(out, a.StatementUses(s)...)
	}
	if m.IsLambda && m.LambdaBodyExpression != nil {
		out = append(out, a.ExpressionUses(m.LambdaBodyExpression)...)
	}
	return out
}

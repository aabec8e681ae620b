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

package scope

// Var is a logical variable: a main name plus the set of textual names under which it may be
// aliased, e.g. {source, this.source}.
type Var struct {
	MainName string
	Aliases  map[string]struct{}
	ScopeID  int // id of the owning Scope; zero value means unset.
	hasScope bool
}

// NewVar creates a Var with mainName as both its main name and sole initial alias.
func NewVar(mainName string) *Var {
	return &Var{MainName: mainName, Aliases: map[string]struct{}{mainName: {}}}
}

// HasAlias reports whether name is among v's aliases.
func (v *Var) HasAlias(name string) bool {
	_, ok := v.Aliases[name]
	return ok
}

// AddAlias records an additional alias for v.
func (v *Var) AddAlias(name string) {
	if v.Aliases == nil {
		v.Aliases = make(map[string]struct{})
	}
	v.Aliases[name] = struct{}{}
}

// HasScope reports whether v has been bound to a scope yet.
func (v *Var) HasScope() bool { return v.hasScope }

// BindScope assigns v to the scope with the given id.
func (v *Var) BindScope(scopeID int) {
	v.ScopeID = scopeID
	v.hasScope = true
}

// VarDef is a def-style reference to a Var, graded by DefCertainty.
type VarDef struct {
	*Var
	Certainty DefCertainty
	// RelevantStmtID is the id of the PE (a Statement) this def was first attributed to, or -1 if
	// unset. Kept as an opaque id (rather than a pointer into package pe) so this package stays
	// free of a pe dependency; callers resolve it back to a *pe.Statement via their own id
	// registry.
	RelevantStmtID int
}

// NewVarDef creates a VarDef with no relevant statement bound yet.
func NewVarDef(v *Var, certainty DefCertainty) *VarDef {
	return &VarDef{Var: v, Certainty: certainty, RelevantStmtID: -1}
}

// HasRelevantStmt reports whether a relevant statement has been recorded.
func (d *VarDef) HasRelevantStmt() bool { return d.RelevantStmtID >= 0 }

// VarUse is a use-style reference to a Var, graded by UseCertainty.
type VarUse struct {
	*Var
	Certainty UseCertainty
}

// NewVarUse creates a VarUse.
func NewVarUse(v *Var, certainty UseCertainty) *VarUse {
	return &VarUse{Var: v, Certainty: certainty}
}

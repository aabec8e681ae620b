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

import "github.com/pdgraph/pdgraph/pe"

// VarRef is one entry of the variable-name mapping V(e): a main name plus every textual alias
// under which the same logical variable may be referenced from this expression.
type VarRef struct {
	MainName string
	Aliases  []string
}

// RecognizeVariable computes V(e): the mapping from logical variable name to its alias set for
// the PEs that denote a variable reference. Every other expression category yields nil.
func (c Config) RecognizeVariable(e *pe.Expression) []VarRef {
	if e == nil {
		return nil
	}

	switch e.Category {
	case pe.ExprSimpleName:
		name := e.Text
		return []VarRef{{MainName: name, Aliases: []string{name}}}

	case pe.ExprArrayAccess:
		base := arrayAccessBase(e)
		if base == nil || base.Category != pe.ExprSimpleName {
			return nil
		}
		name := base.Text
		return []VarRef{{MainName: name, Aliases: []string{name}}}

	case pe.ExprFieldAccess:
		return c.recognizeFieldAccess(e.Qualifier, fieldAccessSelector(e))

	case pe.ExprQualifiedName:
		return c.recognizeFieldAccess(e.Qualifier, fieldAccessSelector(e))
	}
	return nil
}

// arrayAccessBase returns the array-reference child of an ArrayAccess expression, i.e. the first
// element of Expressions; the subscript (index) is ignored.
func arrayAccessBase(e *pe.Expression) *pe.Expression {
	if len(e.Expressions) == 0 {
		return nil
	}
	return e.Expressions[0]
}

// fieldAccessSelector returns the member name selected by a FieldAccess or QualifiedName
// expression: the trailing component of its text, e.g. "x" in "b.x".
func fieldAccessSelector(e *pe.Expression) string {
	text := e.Text
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '.' {
			return text[i+1:]
		}
	}
	return text
}

func (c Config) recognizeFieldAccess(qualifier *pe.Expression, selector string) []VarRef {
	if qualifier == nil || selector == "" {
		return nil
	}

	if qualifier.Category == pe.ExprThis {
		full := "this." + selector
		if c.TreatNonLocalAsField {
			return []VarRef{{MainName: full, Aliases: []string{full}}}
		}
		return []VarRef{{MainName: full, Aliases: []string{selector, full}}}
	}

	if qualifier.Category != pe.ExprSimpleName {
		return nil
	}
	b := qualifier.Text
	full := b + "." + selector
	return []VarRef{
		{MainName: full, Aliases: []string{full}},
		{MainName: b, Aliases: []string{b}},
	}
}

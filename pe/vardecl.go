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

// VariableDeclarationCategory enumerates the VariableDeclaration variant tags.
type VariableDeclarationCategory int

// Variable declaration categories.
const (
	VarDeclField VariableDeclarationCategory = iota
	VarDeclLocal
	VarDeclParameter
)

// VariableDeclaration is the VariableDeclaration PE variant.
type VariableDeclaration struct {
	Base
	Category VariableDeclarationCategory
	Type     *Type
	Name     string
}

// NewVariableDeclaration allocates a VariableDeclaration PE.
func NewVariableDeclaration(category VariableDeclarationCategory, name string, typ *Type, span Span, text string, modifiers []string, ref sourceast.Node) *VariableDeclaration {
	return &VariableDeclaration{Base: newBase(span, text, modifiers, ref), Category: category, Type: typ, Name: name}
}

// ElementKind implements Element.
func (v *VariableDeclaration) ElementKind() ElementKind { return ElementVariableDeclaration }

var _ Element = (*VariableDeclaration)(nil)

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

// Type is the Type PE variant: a string-form type with no further structure.
type Type struct {
	Base
}

// NewType allocates a Type PE.
func NewType(span Span, text string, modifiers []string, ref sourceast.Node) *Type {
	return &Type{Base: newBase(span, text, modifiers, ref)}
}

// ElementKind implements Element.
func (t *Type) ElementKind() ElementKind { return ElementType }

var _ Element = (*Type)(nil)

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

// Class is the Class PE variant; it is anonymous iff Name is absent.
type Class struct {
	Base
	Name    string
	HasName bool
	Methods []*Method
}

// NewClass allocates a Class PE.
func NewClass(span Span, text string, modifiers []string, ref sourceast.Node) *Class {
	return &Class{Base: newBase(span, text, modifiers, ref)}
}

// ElementKind implements Element.
func (c *Class) ElementKind() ElementKind { return ElementClass }

var _ Element = (*Class)(nil)

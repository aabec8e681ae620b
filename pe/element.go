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

// ElementKind distinguishes the PE sum-type variants.
type ElementKind int

// Element kinds.
const (
	ElementStatement ElementKind = iota
	ElementExpression
	ElementMethod
	ElementClass
	ElementVariableDeclaration
	ElementType
	ElementOperator
)

// Span is the inclusive source line range a PE corresponds to.
type Span struct {
	Start int
	End   int
}

// Element is implemented by every PE variant. Ids define total ordering, equality, and hashing
// for elements.
type Element interface {
	ID() int
	ElementKind() ElementKind
}

// Base carries the fields common to every PE variant: id, span, text, modifiers, and the
// back-reference to the foreign AST node this PE was lowered from.
type Base struct {
	id             int
	Span           Span
	Text           string
	Modifiers      []string
	OriginalAstRef sourceast.Node
}

func newBase(span Span, text string, modifiers []string, ref sourceast.Node) Base {
	return Base{id: NextID(), Span: span, Text: text, Modifiers: modifiers, OriginalAstRef: ref}
}

// ID returns this element's process-wide unique id.
func (b Base) ID() int { return b.id }

// Block is implemented by the PE variants that may own a flat sequence of statements: the
// block-leading Statement categories (SimpleBlock, If, For, Foreach, While, Do, Try, Catch,
// Switch, Synchronized) and Method. These are the only valid parents onto which statements may
// be attached.
type Block interface {
	Element
	// OwnedStatements returns the pointer to this block's flat child-statement slice, so Attach
	// can append to (or splice into) it in place.
	OwnedStatements() *[]*Statement
}

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

// Package scope implements the lexical scope tree and the Var/VarDef/VarUse certainty lattices.
// It is deliberately independent of package pe: a Manager is keyed by opaque block ids and
// consults a caller-supplied OwnerResolver to walk the owner chain, so the scope model carries no
// dependency on the PE tree it is used alongside.
package scope

// DefCertainty is the ordered certainty grade attached to a def:
// UNKNOWN < NO_DEF < MAY_DEF < DEF < DECLARE < DECLARE_AND_DEF.
type DefCertainty int

// Def certainty grades, in increasing order.
const (
	UnknownDef DefCertainty = iota
	NoDef
	MayDef
	Def
	Declare
	DeclareAndDef
)

// String renders the certainty grade for diagnostics.
func (c DefCertainty) String() string {
	switch c {
	case UnknownDef:
		return "UNKNOWN"
	case NoDef:
		return "NO_DEF"
	case MayDef:
		return "MAY_DEF"
	case Def:
		return "DEF"
	case Declare:
		return "DECLARE"
	case DeclareAndDef:
		return "DECLARE_AND_DEF"
	default:
		return "INVALID_DEF_CERTAINTY"
	}
}

// AtLeast reports whether c is at or above threshold in the def lattice.
func (c DefCertainty) AtLeast(threshold DefCertainty) bool { return c >= threshold }

// UseCertainty is the ordered certainty grade attached to a use:
// UNKNOWN < NO_USE < MAY_USE < USE.
type UseCertainty int

// Use certainty grades, in increasing order.
const (
	UnknownUse UseCertainty = iota
	NoUse
	MayUse
	Use
)

// String renders the certainty grade for diagnostics.
func (c UseCertainty) String() string {
	switch c {
	case UnknownUse:
		return "UNKNOWN"
	case NoUse:
		return "NO_USE"
	case MayUse:
		return "MAY_USE"
	case Use:
		return "USE"
	default:
		return "INVALID_USE_CERTAINTY"
	}
}

// AtLeast reports whether c is at or above threshold in the use lattice.
func (c UseCertainty) AtLeast(threshold UseCertainty) bool { return c >= threshold }

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

// OwnerResolver returns the id of the PE block that owns the block identified by blockID (its
// owner block), and false if blockID has no owner (it is the method's top-level block).
// Implemented by package pe's lowering/def-use layers, which know the PE tree shape; package
// scope only needs the chain of ids.
type OwnerResolver func(blockID int) (parentBlockID int, ok bool)

// Manager maintains the mapping from block id to Scope. getScope is idempotent and
// establishes the parent chain on first access.
type Manager struct {
	resolveOwner OwnerResolver
	scopes       map[int]*Scope
}

// NewManager creates a scope Manager that consults resolve to discover parent blocks.
func NewManager(resolve OwnerResolver) *Manager {
	return &Manager{resolveOwner: resolve, scopes: make(map[int]*Scope)}
}

// GetScope returns the Scope for blockID, creating it (and, recursively, its ancestors) on first
// access. Self-cycles reported by the resolver are treated as "no parent".
func (m *Manager) GetScope(blockID int) *Scope {
	if s, ok := m.scopes[blockID]; ok {
		return s
	}

	s := &Scope{BlockID: blockID, ParentID: -1, manager: m}
	m.scopes[blockID] = s

	if parentID, ok := m.resolveOwner(blockID); ok && parentID != blockID {
		m.GetScope(parentID) // ensure the parent chain is established.
		s.ParentID = parentID
	}
	return s
}

// SearchVariableDef walks from fromBlockID toward the root, returning the nearest enclosing
// scope that declares a Var whose alias set contains name.
func (m *Manager) SearchVariableDef(fromBlockID int, name string) (*Scope, bool) {
	s := m.GetScope(fromBlockID)
	for {
		if _, ok := s.findLocal(name); ok {
			return s, true
		}
		parent, ok := s.Parent()
		if !ok {
			return nil, false
		}
		s = parent
	}
}

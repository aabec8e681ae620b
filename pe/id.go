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

// Package pe implements the program-element model: a tagged-variant tree of
// statements and expressions with ids, source spans, text, and modifiers, sitting below the CFG
// and PDG builders.
package pe

import "sync/atomic"

// idCounter is the single process-wide monotonically increasing counter backing every PE, CFG
// node, and PDG node id). It is never decremented.
var idCounter uint64

// NextID returns a fresh, process-wide unique, monotonically increasing id.
func NextID() int {
	return int(atomic.AddUint64(&idCounter, 1))
}

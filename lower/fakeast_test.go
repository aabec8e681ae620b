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

package lower

import "github.com/pdgraph/pdgraph/sourceast"

// fakeNode is a minimal in-memory sourceast.Node for exercising the lowering handlers without a
// real parser. Offsets double as fake line numbers, so fakeLines.Line is the identity function.
type fakeNode struct {
	kind     sourceast.Kind
	offset   int
	endOffs  int
	text     string
	mods     []string
	children map[sourceast.Role][]sourceast.Node
}

func node(kind sourceast.Kind, line int, text string) *fakeNode {
	return &fakeNode{kind: kind, offset: line, endOffs: line, text: text, children: map[sourceast.Role][]sourceast.Node{}}
}

func (n *fakeNode) withSpan(start, end int) *fakeNode {
	n.offset, n.endOffs = start, end
	return n
}

func (n *fakeNode) set(role sourceast.Role, children ...sourceast.Node) *fakeNode {
	n.children[role] = children
	return n
}

func (n *fakeNode) Kind() sourceast.Kind      { return n.kind }
func (n *fakeNode) StartOffset() int          { return n.offset }
func (n *fakeNode) EndOffset() int            { return n.endOffs }
func (n *fakeNode) Text() string              { return n.text }
func (n *fakeNode) Modifiers() []string       { return n.mods }
func (n *fakeNode) Children(r sourceast.Role) []sourceast.Node { return n.children[r] }

func (n *fakeNode) Child(r sourceast.Role) sourceast.Node {
	cs := n.children[r]
	if len(cs) == 0 {
		return nil
	}
	return cs[0]
}

var _ sourceast.Node = (*fakeNode)(nil)

// fakeLines is a LineTable whose offsets already are line numbers.
type fakeLines struct{}

func (fakeLines) Line(offset int) int { return offset }

var _ sourceast.LineTable = fakeLines{}

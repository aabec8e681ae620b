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

// Attach inserts child onto parent's flat statement sequence. Block-leading PEs are the only
// valid parents; attaching onto anything else is a silent no-op so that lowering handlers which
// speculatively attempt to attach under an unsupported context do not panic or corrupt state.
//
// When child is itself a SimpleBlock, its own already-collected children are spliced in place of
// child, rather than nesting a SimpleBlock one level deeper: this keeps composite constructs
// (method bodies, loop bodies, branch arms) as flat statement sequences regardless of how many
// brace levels the source text used to express them.
func Attach(parent Block, child *Statement) {
	if parent == nil || child == nil {
		return
	}
	if s, ok := parent.(*Statement); ok && !s.IsBlockLeading() {
		return
	}

	slot := parent.OwnedStatements()

	if child.Category == StmtSimpleBlock {
		for _, grandchild := range child.Statements {
			attachOne(parent, slot, grandchild)
		}
		return
	}
	attachOne(parent, slot, child)
}

func attachOne(parent Block, slot *[]*Statement, child *Statement) {
	child.OwnerBlock = parent
	*slot = append(*slot, child)
}

// AttachElse inserts an Else-arm statement under an If statement, with the same SimpleBlock
// inlining behavior as Attach.
func AttachElse(ifStmt *Statement, child *Statement) {
	if ifStmt == nil || child == nil || ifStmt.Category != StmtIf {
		return
	}

	if child.Category == StmtSimpleBlock {
		for _, grandchild := range child.Statements {
			attachElseOne(ifStmt, grandchild)
		}
		return
	}
	attachElseOne(ifStmt, child)
}

func attachElseOne(ifStmt *Statement, child *Statement) {
	child.OwnerBlock = ifStmt
	ifStmt.ElseStatements = append(ifStmt.ElseStatements, child)
}

// AttachCatch inserts a Catch statement under a Try statement.
func AttachCatch(tryStmt *Statement, catch *Statement) {
	if tryStmt == nil || catch == nil || tryStmt.Category != StmtTry || catch.Category != StmtCatch {
		return
	}
	catch.OwnerBlock = tryStmt
	tryStmt.CatchStatements = append(tryStmt.CatchStatements, catch)
}

// AttachFinally sets the Finally arm of a Try statement.
func AttachFinally(tryStmt *Statement, finallyStmt *Statement) {
	if tryStmt == nil || finallyStmt == nil || tryStmt.Category != StmtTry {
		return
	}
	finallyStmt.OwnerBlock = tryStmt
	tryStmt.FinallyStatement = finallyStmt
}

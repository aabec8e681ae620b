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

package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/scope"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// owners models: 3 -> 2 -> 1 -> (root).
func owners(blockID int) (int, bool) {
	switch blockID {
	case 3:
		return 2, true
	case 2:
		return 1, true
	default:
		return 0, false
	}
}

func TestGetScopeEstablishesParentChain(t *testing.T) {
	t.Parallel()

	mgr := scope.NewManager(owners)
	s3 := mgr.GetScope(3)
	require.True(t, s3.HasParent())

	s2, ok := s3.Parent()
	require.True(t, ok)
	require.Equal(t, 2, s2.BlockID)

	s1, ok := s2.Parent()
	require.True(t, ok)
	require.False(t, s1.HasParent())
}

func TestSearchVariableDefWalksToEnclosingScope(t *testing.T) {
	t.Parallel()

	mgr := scope.NewManager(owners)
	root := mgr.GetScope(1)
	v := scope.NewVar("x")
	root.Declare(v)

	found, ok := mgr.SearchVariableDef(3, "x")
	require.True(t, ok)
	require.Equal(t, 1, found.BlockID)

	_, ok = mgr.SearchVariableDef(3, "y")
	require.False(t, ok)
}

func TestSearchVariableDefPrefersNearestScope(t *testing.T) {
	t.Parallel()

	mgr := scope.NewManager(owners)
	outer := mgr.GetScope(1)
	outer.Declare(scope.NewVar("x"))
	inner := mgr.GetScope(2)
	inner.Declare(scope.NewVar("x"))

	found, ok := mgr.SearchVariableDef(3, "x")
	require.True(t, ok)
	require.Equal(t, 2, found.BlockID)
}

func TestSelfCycleTreatedAsNoParent(t *testing.T) {
	t.Parallel()

	mgr := scope.NewManager(func(blockID int) (int, bool) { return blockID, true })
	s := mgr.GetScope(5)
	require.False(t, s.HasParent())
}

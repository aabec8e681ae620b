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

package sortedset_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdgraph/pdgraph/util/sortedset"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func less(a, b int) bool { return a < b }

func TestAddAndIterationOrder(t *testing.T) {
	t.Parallel()

	s := sortedset.New[int, string](less)
	s.Add(3, "c")
	s.Add(1, "a")
	s.Add(2, "b")

	require.Equal(t, []int{1, 2, 3}, s.Keys())
	require.Equal(t, []string{"a", "b", "c"}, s.Values())
	require.Equal(t, 3, s.Len())
}

func TestOverwriteDoesNotDuplicateKey(t *testing.T) {
	t.Parallel()

	s := sortedset.New[int, string](less)
	s.Add(1, "a")
	s.Add(1, "z")

	require.Equal(t, 1, s.Len())
	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "z", v)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	s := sortedset.New[int, string](less)
	s.Add(1, "a")
	s.Add(2, "b")
	s.Remove(1)

	require.False(t, s.Contains(1))
	require.Equal(t, []int{2}, s.Keys())
}

func TestEachVisitsInOrder(t *testing.T) {
	t.Parallel()

	s := sortedset.New[int, string](less)
	s.Add(5, "e")
	s.Add(1, "a")

	var seen []int
	s.Each(func(key int, _ string) { seen = append(seen, key) })
	require.Equal(t, []int{1, 5}, seen)
}

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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdgraph/pdgraph/pe"
)

func TestStackPopAcceptsSingleMatchingPush(t *testing.T) {
	var s stack
	before := s.size()
	e := pe.NewExpression(pe.ExprSimpleName, pe.Span{Start: 1, End: 1}, "x", nil, nil)
	s.push(e)

	got, ok := s.pop(before, pe.ElementExpression)
	require.True(t, ok)
	require.Same(t, e, got)
	require.Equal(t, before, s.size())
}

func TestStackPopRejectsZeroPushes(t *testing.T) {
	var s stack
	before := s.size()

	got, ok := s.pop(before, pe.ElementExpression)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestStackPopRejectsMultiplePushes(t *testing.T) {
	var s stack
	before := s.size()
	s.push(pe.NewExpression(pe.ExprSimpleName, pe.Span{Start: 1, End: 1}, "x", nil, nil))
	s.push(pe.NewExpression(pe.ExprSimpleName, pe.Span{Start: 1, End: 1}, "y", nil, nil))

	got, ok := s.pop(before, pe.ElementExpression)
	require.False(t, ok)
	require.Nil(t, got)
	require.Equal(t, before, s.size())
}

func TestStackPopRejectsKindMismatch(t *testing.T) {
	var s stack
	before := s.size()
	s.push(pe.NewStatement(pe.StmtEmpty, pe.Span{Start: 1, End: 1}, ";", nil, nil))

	got, ok := s.pop(before, pe.ElementExpression)
	require.False(t, ok)
	require.Nil(t, got)
	require.Equal(t, before, s.size())
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntervalSetAddRangeCoalescesAdjacent(t *testing.T) {
	s := NewIntervalSet()
	s.AddRange('a', 'f')
	s.AddRange('g', 'm') // adjacent, must merge into one interval
	require.Equal(t, []Interval{{Start: 'a', Stop: 'm' + 1}}, s.Intervals())
}

func TestIntervalSetAddRangeMergesOverlapping(t *testing.T) {
	s := NewIntervalSet()
	s.AddRange(10, 20)
	s.AddRange(15, 30)
	require.Equal(t, []Interval{{Start: 10, Stop: 31}}, s.Intervals())
}

func TestIntervalSetAddRangeKeepsDisjointSorted(t *testing.T) {
	s := NewIntervalSet()
	s.AddRange('A', 'Z')
	s.AddRange('0', '9')
	s.AddRange('a', 'z')
	require.Equal(t, []Interval{
		{Start: '0', Stop: '9' + 1},
		{Start: 'A', Stop: 'Z' + 1},
		{Start: 'a', Stop: 'z' + 1},
	}, s.Intervals())
}

func TestIntervalSetContains(t *testing.T) {
	s := NewIntervalSetFromRange('a', 'z')
	require.True(t, s.Contains('a'))
	require.True(t, s.Contains('m'))
	require.True(t, s.Contains('z'))
	require.False(t, s.Contains('A'))
	require.False(t, s.Contains('{'))
}

func TestIntervalSetLen(t *testing.T) {
	s := NewIntervalSet()
	s.AddRange('a', 'z')
	s.AddOne('_')
	require.Equal(t, 27, s.Len())
}

func TestIntervalSetComplement(t *testing.T) {
	s := NewIntervalSetFromRange('b', 'd')
	comp := s.Complement('a', 'e')
	require.True(t, comp.Contains('a'))
	require.False(t, comp.Contains('b'))
	require.False(t, comp.Contains('c'))
	require.False(t, comp.Contains('d'))
	require.True(t, comp.Contains('e'))
}

func TestIntervalSetComplementOfEmptyIsWholeRange(t *testing.T) {
	s := NewIntervalSet()
	comp := s.Complement(0, 9)
	require.Equal(t, 10, comp.Len())
}

func TestIntervalSetReadOnlyPanics(t *testing.T) {
	s := NewIntervalSetFromRange('a', 'z')
	s.ReadOnly = true
	require.Panics(t, func() { s.AddOne('_') })
}

func TestIntervalSetString(t *testing.T) {
	s := NewIntervalSet()
	require.Equal(t, "{}", s.String())

	s.AddOne('a')
	require.Equal(t, "97", s.String())

	s.AddRange('0', '9')
	require.Equal(t, "{48..57, 97}", s.String())
}

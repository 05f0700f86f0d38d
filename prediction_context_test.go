// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyContextIsEmpty(t *testing.T) {
	require.True(t, EmptyContext.isEmpty())
	require.Equal(t, EmptyReturnState, EmptyContext.getReturnState(0))
}

func TestSingletonParentDefaultsToEmpty(t *testing.T) {
	s := NewSingletonPredictionContext(nil, 42)
	require.False(t, s.isEmpty())
	require.Same(t, EmptyContext, s.getParent(0))
	require.Equal(t, 42, s.getReturnState(0))
}

func TestStructuralEqualityIsNotIdentity(t *testing.T) {
	a := NewSingletonPredictionContext(EmptyContext, 7)
	b := NewSingletonPredictionContext(EmptyContext, 7)
	require.NotSame(t, a, b)
	require.True(t, predictionContextEquals(a, b))
	require.Equal(t, a.hash(), b.hash())
}

func TestSharedContextCacheInternsStructurallyEqualNodes(t *testing.T) {
	cache := NewSharedContextCache()
	a := NewSingletonPredictionContext(EmptyContext, 7)
	b := NewSingletonPredictionContext(EmptyContext, 7)

	ia := GetCachedContext(a, cache, map[PredictionContext]PredictionContext{})
	ib := GetCachedContext(b, cache, map[PredictionContext]PredictionContext{})
	require.Same(t, ia, ib)
}

func TestMergeSameReturnStateSharesParent(t *testing.T) {
	parent := NewSingletonPredictionContext(EmptyContext, 5)
	a := NewSingletonPredictionContext(parent, 9)
	b := NewSingletonPredictionContext(parent, 9)

	merged := Merge(a, b, true, nil)
	require.Same(t, a, merged)
}

func TestMergeDifferentReturnStatesProducesArray(t *testing.T) {
	a := NewSingletonPredictionContext(EmptyContext, 3)
	b := NewSingletonPredictionContext(EmptyContext, 9)

	merged := Merge(a, b, true, nil)
	arr, ok := merged.(*ArrayPredictionContext)
	require.True(t, ok)
	require.Equal(t, 2, arr.length())
	require.Equal(t, 3, arr.getReturnState(0))
	require.Equal(t, 9, arr.getReturnState(1))
}

func TestMergeIsCommutative(t *testing.T) {
	a := NewSingletonPredictionContext(EmptyContext, 3)
	b := NewSingletonPredictionContext(EmptyContext, 9)

	ab := Merge(a, b, true, nil)
	ba := Merge(b, a, true, nil)
	require.True(t, predictionContextEquals(ab, ba))
}

func TestMergeIdenticalContextReturnsSameInstance(t *testing.T) {
	a := NewSingletonPredictionContext(EmptyContext, 3)
	require.Same(t, a, Merge(a, a, true, nil))
}

func TestMergeWildcardRootShortcut(t *testing.T) {
	a := NewSingletonPredictionContext(EmptyContext, 3)
	require.Same(t, EmptyContext, Merge(EmptyContext, a, true, nil))
	require.Same(t, EmptyContext, Merge(a, EmptyContext, true, nil))
}

func TestMergeCacheMemoizesAcrossArgumentOrder(t *testing.T) {
	cache := newMergeCache(16)
	a := NewSingletonPredictionContext(EmptyContext, 3)
	b := NewSingletonPredictionContext(EmptyContext, 9)

	first := Merge(a, b, true, cache)
	second := Merge(b, a, true, cache)
	require.Same(t, first, second)
}

func TestArrayMergeUnionsAndSortsByReturnState(t *testing.T) {
	p1 := NewSingletonPredictionContext(EmptyContext, 1)
	p2 := NewSingletonPredictionContext(EmptyContext, 2)
	p3 := NewSingletonPredictionContext(EmptyContext, 3)

	left := NewArrayPredictionContext([]PredictionContext{p1.parent, p3.parent}, []int{1, 3})
	right := NewArrayPredictionContext([]PredictionContext{p2.parent}, []int{2})

	merged := Merge(left, right, true, nil)
	arr, ok := merged.(*ArrayPredictionContext)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, arr.returnStates)
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import lru "github.com/hashicorp/golang-lru/v2"

// EmptyReturnState is the sentinel return-state value marking the "no
// enclosing rule" frame; in an Array context it always sorts last
// (spec.md §3).
const EmptyReturnState = 0x7FFFFFFF

// PredictionContext is a node of the graph-structured stack (GSS): the shared,
// interned call-stack graph built during closure. It is one of three
// variants: the Empty sentinel, a Singleton frame, or an Array of several
// frames merged together (spec.md §3, §4.2).
type PredictionContext interface {
	isEmpty() bool
	length() int
	getParent(i int) PredictionContext
	getReturnState(i int) int
	// structuralEquals compares contents, not pointer identity; two distinct
	// PredictionContext instances with structuralEquals deserve to be the
	// same object once interned by a SharedContextCache.
	structuralEquals(other PredictionContext) bool
	hash() int
}

// BasePredictionContext holds the precomputed hash shared by every variant;
// the hash is a pure function of structural contents so it survives
// interning (spec.md §3 invariant a).
type BasePredictionContext struct {
	cachedHash int
}

func (b *BasePredictionContext) hash() int { return b.cachedHash }

// emptyContext is the unique Empty/root GSS node.
type emptyContext struct {
	BasePredictionContext
}

// EmptyContext is the shared root PredictionContext sentinel.
var EmptyContext PredictionContext = &emptyContext{BasePredictionContext{calcEmptyHash()}}

func calcEmptyHash() int { return murmurFinish(murmurStart(), 1) }

func (*emptyContext) isEmpty() bool                  { return true }
func (*emptyContext) length() int                    { return 1 }
func (*emptyContext) getParent(int) PredictionContext { return nil }
func (*emptyContext) getReturnState(int) int         { return EmptyReturnState }
func (e *emptyContext) structuralEquals(other PredictionContext) bool {
	_, ok := other.(*emptyContext)
	return ok
}

// SingletonPredictionContext is a single call frame: a parent context plus
// the state to return to.
type SingletonPredictionContext struct {
	BasePredictionContext
	parent      PredictionContext
	returnState int
}

// NewSingletonPredictionContext builds a Singleton frame. parent==nil is
// shorthand for the Empty root.
func NewSingletonPredictionContext(parent PredictionContext, returnState int) *SingletonPredictionContext {
	h := murmurStart()
	if parent != nil {
		h = murmurUpdate(h, parent.hash())
	} else {
		h = murmurUpdate(h, calcEmptyHash())
	}
	h = murmurUpdate(h, returnState)
	h = murmurFinish(h, 2)
	return &SingletonPredictionContext{BasePredictionContext{h}, parent, returnState}
}

func (*SingletonPredictionContext) isEmpty() bool { return false }
func (*SingletonPredictionContext) length() int   { return 1 }
func (s *SingletonPredictionContext) getParent(int) PredictionContext {
	if s.parent == nil {
		return EmptyContext
	}
	return s.parent
}
func (s *SingletonPredictionContext) getReturnState(int) int { return s.returnState }
func (s *SingletonPredictionContext) structuralEquals(other PredictionContext) bool {
	o, ok := other.(*SingletonPredictionContext)
	if !ok || s.returnState != o.returnState {
		return false
	}
	return predictionContextEquals(s.getParent(0), o.getParent(0))
}

// ArrayPredictionContext merges several Singleton frames reached via
// different paths; Parents/ReturnStates are sorted so EmptyReturnState (if
// present) is always last.
type ArrayPredictionContext struct {
	BasePredictionContext
	parents      []PredictionContext
	returnStates []int
}

func NewArrayPredictionContext(parents []PredictionContext, returnStates []int) *ArrayPredictionContext {
	h := murmurStart()
	for _, p := range parents {
		if p == nil {
			h = murmurUpdate(h, calcEmptyHash())
			continue
		}
		h = murmurUpdate(h, p.hash())
	}
	for _, rs := range returnStates {
		h = murmurUpdate(h, rs)
	}
	h = murmurFinish(h, len(parents)*2)
	return &ArrayPredictionContext{BasePredictionContext{h}, parents, returnStates}
}

func (a *ArrayPredictionContext) isEmpty() bool {
	return len(a.returnStates) == 1 && a.returnStates[0] == EmptyReturnState
}
func (a *ArrayPredictionContext) length() int { return len(a.returnStates) }
func (a *ArrayPredictionContext) getParent(i int) PredictionContext {
	return a.parents[i]
}
func (a *ArrayPredictionContext) getReturnState(i int) int { return a.returnStates[i] }
func (a *ArrayPredictionContext) structuralEquals(other PredictionContext) bool {
	o, ok := other.(*ArrayPredictionContext)
	if !ok || len(a.returnStates) != len(o.returnStates) {
		return false
	}
	for i := range a.returnStates {
		if a.returnStates[i] != o.returnStates[i] {
			return false
		}
		if !predictionContextEquals(a.parents[i], o.parents[i]) {
			return false
		}
	}
	return true
}

func predictionContextEquals(a, b PredictionContext) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.structuralEquals(b)
}

// hasEmptyPath reports whether one of c's call-stack frames is the "no
// enclosing rule" frame, i.e. some path through c reaches the bottom of the
// GSS. An ArrayPredictionContext keeps EmptyReturnState sorted last when
// present (spec.md §3), so checking the final slot suffices; this is
// broader than isEmpty(), which only holds when EVERY path is empty.
func hasEmptyPath(c PredictionContext) bool {
	return c.getReturnState(c.length()-1) == EmptyReturnState
}

// mergeCache memoizes Merge results for the lifetime of one ATNConfigSet
// (spec.md §4.2 "always interned... so subsequent identical merges are
// O(1)"). The simulator builds a fresh one for the start closure and for each
// reach step, so results are not shared across steps of one match. It is
// deliberately bounded: a pathological closure over a huge rule-call depth
// must not let this grow without limit within one step.
type mergeCache struct {
	lru *lru.Cache[[2]PredictionContext, PredictionContext]
}

func newMergeCache(size int) *mergeCache {
	c, _ := lru.New[[2]PredictionContext, PredictionContext](size)
	return &mergeCache{lru: c}
}

func (m *mergeCache) get(a, b PredictionContext) (PredictionContext, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m.lru.Get([2]PredictionContext{a, b}); ok {
		return v, true
	}
	v, ok := m.lru.Get([2]PredictionContext{b, a})
	return v, ok
}

func (m *mergeCache) put(a, b, result PredictionContext) {
	if m == nil {
		return
	}
	m.lru.Add([2]PredictionContext{a, b}, result)
}

// Merge combines two contexts representing two distinct ways the simulator
// reached the same ATN state, per the rules in spec.md §4.2. rootIsWildcard
// enables the SLL wildcard shortcut used during lexing (lexer closures always
// run with rootIsWildcard=true since there is no full-context mode).
func Merge(a, b PredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if a == b || predictionContextEquals(a, b) {
		return a
	}
	if cached, ok := cache.get(a, b); ok {
		return cached
	}

	var result PredictionContext
	switch {
	case a.isEmpty() && rootIsWildcard:
		result = a
	case b.isEmpty() && rootIsWildcard:
		result = b
	default:
		as, aIsSingle := a.(*SingletonPredictionContext)
		bs, bIsSingle := b.(*SingletonPredictionContext)
		switch {
		case aIsSingle && bIsSingle:
			result = mergeSingletons(as, bs, rootIsWildcard, cache)
		default:
			result = mergeArrays(convertToArray(a), convertToArray(b), rootIsWildcard, cache)
		}
	}

	cache.put(a, b, result)
	return result
}

func convertToArray(p PredictionContext) *ArrayPredictionContext {
	if arr, ok := p.(*ArrayPredictionContext); ok {
		return arr
	}
	if p.isEmpty() {
		return NewArrayPredictionContext([]PredictionContext{nil}, []int{EmptyReturnState})
	}
	s := p.(*SingletonPredictionContext)
	return NewArrayPredictionContext([]PredictionContext{s.parent}, []int{s.returnState})
}

func mergeSingletons(a, b *SingletonPredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if a.returnState == b.returnState {
		parentMerge := Merge(a.getParent(0), b.getParent(0), rootIsWildcard, cache)
		if predictionContextEquals(parentMerge, a.getParent(0)) {
			return a
		}
		if predictionContextEquals(parentMerge, b.getParent(0)) {
			return b
		}
		return NewSingletonPredictionContext(parentMerge, a.returnState)
	}

	// Unequal return states: EMPTY (empty-path) handling when not wildcard.
	if !rootIsWildcard {
		if a.isEmpty() {
			return mergeRootWithNonEmpty(b, a, rootIsWildcard, cache)
		}
		if b.isEmpty() {
			return mergeRootWithNonEmpty(a, b, rootIsWildcard, cache)
		}
	}

	var parents []PredictionContext
	var states []int
	if a.returnState < b.returnState {
		parents = []PredictionContext{a.getParent(0), b.getParent(0)}
		states = []int{a.returnState, b.returnState}
	} else {
		parents = []PredictionContext{b.getParent(0), a.getParent(0)}
		states = []int{b.returnState, a.returnState}
	}
	return NewArrayPredictionContext(parents, states)
}

// mergeRootWithNonEmpty handles a merge where the empty context is one of
// the two singletons and rootIsWildcard is false: EMPTY must survive as a
// distinguished EmptyReturnState branch rather than being discarded.
func mergeRootWithNonEmpty(nonEmpty, empty *SingletonPredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	var parents []PredictionContext
	var states []int
	if nonEmpty.returnState < EmptyReturnState {
		parents = []PredictionContext{nonEmpty.getParent(0), nil}
		states = []int{nonEmpty.returnState, EmptyReturnState}
	} else {
		parents = []PredictionContext{nil, nonEmpty.getParent(0)}
		states = []int{EmptyReturnState, nonEmpty.returnState}
	}
	_ = empty
	return NewArrayPredictionContext(parents, states)
}

func mergeArrays(a, b *ArrayPredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	i, j := 0, 0
	var mergedParents []PredictionContext
	var mergedStates []int

	for i < len(a.returnStates) && j < len(b.returnStates) {
		pa, pb := a.parents[i], b.parents[j]
		ra, rb := a.returnStates[i], b.returnStates[j]
		switch {
		case ra == rb:
			var mergedParent PredictionContext
			if pa == nil || pb == nil {
				mergedParent = nil
			} else {
				mergedParent = Merge(pa, pb, rootIsWildcard, cache)
			}
			mergedParents = append(mergedParents, mergedParent)
			mergedStates = append(mergedStates, ra)
			i++
			j++
		case ra < rb:
			mergedParents = append(mergedParents, pa)
			mergedStates = append(mergedStates, ra)
			i++
		default:
			mergedParents = append(mergedParents, pb)
			mergedStates = append(mergedStates, rb)
			j++
		}
	}
	for ; i < len(a.returnStates); i++ {
		mergedParents = append(mergedParents, a.parents[i])
		mergedStates = append(mergedStates, a.returnStates[i])
	}
	for ; j < len(b.returnStates); j++ {
		mergedParents = append(mergedParents, b.parents[j])
		mergedStates = append(mergedStates, b.returnStates[j])
	}

	if len(mergedStates) == 1 {
		if mergedParents[0] == nil {
			return EmptyContext
		}
		return NewSingletonPredictionContext(mergedParents[0], mergedStates[0])
	}
	return NewArrayPredictionContext(mergedParents, mergedStates)
}

func murmurStart() int { return 1 }
func murmurUpdate(h, v int) int {
	const c1, c2 = 0xcc9e2d51, 0x1b873593
	k := uint32(v)
	k *= c1
	k = (k << 15) | (k >> 17)
	k *= c2
	hh := uint32(h) ^ k
	hh = (hh << 13) | (hh >> 19)
	hh = hh*5 + 0xe6546b64
	return int(hh)
}
func murmurFinish(h, numWords int) int {
	hh := uint32(h) ^ uint32(numWords*4)
	hh ^= hh >> 16
	hh *= 0x85ebca6b
	hh ^= hh >> 13
	hh *= 0xc2b2ae35
	hh ^= hh >> 16
	return int(hh)
}

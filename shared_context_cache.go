// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import "sync"

// SharedContextCache interns PredictionContext nodes so structurally equal
// GSS subgraphs become physically identical objects (spec.md §3 invariant b,
// §4.2). It is shared across every lexer instance built from one ATN and
// must retain every node for the ATN's lifetime — it is never evicted, unlike
// the bounded merge caches — so it is a plain mutex-guarded map per the
// "coarse mutex" strategy in spec.md §5.
type SharedContextCache struct {
	mu    sync.Mutex
	table map[int][]PredictionContext
}

// NewSharedContextCache returns an empty interning cache.
func NewSharedContextCache() *SharedContextCache {
	return &SharedContextCache{table: make(map[int][]PredictionContext)}
}

func (c *SharedContextCache) intern(ctx PredictionContext) PredictionContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := ctx.hash()
	for _, existing := range c.table[h] {
		if existing.structuralEquals(ctx) {
			return existing
		}
	}
	c.table[h] = append(c.table[h], ctx)
	return ctx
}

// GetCachedContext rebuilds ctx using only nodes owned by this cache,
// replacing structurally equal subgraphs with their cached representative
// (spec.md §4.2). visited memoizes per-call so shared subgraphs are only
// rebuilt once even within a single GetCachedContext invocation.
func GetCachedContext(ctx PredictionContext, cache *SharedContextCache, visited map[PredictionContext]PredictionContext) PredictionContext {
	if ctx.isEmpty() {
		return ctx
	}
	if existing, ok := visited[ctx]; ok {
		return existing
	}

	switch c := ctx.(type) {
	case *SingletonPredictionContext:
		parent := GetCachedContext(c.getParent(0), cache, visited)
		var updated PredictionContext
		if parent == c.parent {
			updated = c
		} else {
			updated = NewSingletonPredictionContext(parent, c.returnState)
		}
		interned := cache.intern(updated)
		visited[ctx] = interned
		return interned
	case *ArrayPredictionContext:
		changed := false
		parents := make([]PredictionContext, len(c.parents))
		for i, p := range c.parents {
			if p == nil {
				parents[i] = nil
				continue
			}
			np := GetCachedContext(p, cache, visited)
			parents[i] = np
			if np != p {
				changed = true
			}
		}
		var updated PredictionContext
		if !changed {
			updated = c
		} else {
			updated = NewArrayPredictionContext(parents, append([]int(nil), c.returnStates...))
		}
		interned := cache.intern(updated)
		visited[ctx] = interned
		return interned
	default:
		return ctx
	}
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import "sync"

// MinDFAEdge and DefaultMaxDFAEdge bound the sparse, array-indexed DFA edge
// table kept on every DfaState. Code units outside [MinDFAEdge, maxEdge] force
// an ATN step every time rather than being cached (spec.md §4.4, §9 "Open
// questions" — the window is an intentional, adjustable tradeoff, not a
// correctness constraint). 128 matches the teacher's own choice and covers
// all of ASCII; LexerATNSimulatorOption WithEdgeWindow can widen it, e.g. to
// 256 for Latin-1-heavy grammars, at the cost of a larger per-state array.
const (
	MinDFAEdge = 0
	DefaultMaxDFAEdge = 127
)

// DfaState is one interned node of a per-mode DFA. Its ATNConfigSet is
// frozen once interned (spec.md §3); outgoing edges form a sparse table
// indexed by code unit within [MinDFAEdge, maxEdge]. edges is append-only
// after creation: a slot, once written, is never overwritten (spec.md §5
// "an edge write never replaces a prior non-null edge").
type DfaState struct {
	StateNumber int
	Configs     *ATNConfigSet

	IsAcceptState bool
	// Prediction is the token type predicted by this state; meaningful only
	// when IsAcceptState is true.
	Prediction int
	// LexerActionExecutor is the action queue to run on accepting here.
	LexerActionExecutor *LexerActionExecutor

	mu        sync.RWMutex
	edges     []*DfaState
	maxEdge   int
}

// NewDfaState builds an unfrozen, un-numbered proposal state from configs;
// AddDfaState decides whether to keep it or fold it into an existing
// interned state.
func NewDfaState(configs *ATNConfigSet, maxEdge int) *DfaState {
	return &DfaState{Configs: configs, maxEdge: maxEdge}
}

// GetEdge returns the cached transition for code unit t, or nil if none is
// cached (either because t is outside the window or no edge was ever
// written).
func (d *DfaState) GetEdge(t int) *DfaState {
	if t < MinDFAEdge || t > d.maxEdge {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if t >= len(d.edges) {
		return nil
	}
	return d.edges[t]
}

// SetEdge caches the transition on code unit t -> to. Out-of-window t is
// silently ignored: the caller still uses to, it just isn't cached
// (spec.md §4.4 addDfaEdge).
func (d *DfaState) SetEdge(t int, to *DfaState) {
	if t < MinDFAEdge || t > d.maxEdge {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if t >= len(d.edges) {
		grown := make([]*DfaState, t+1)
		copy(grown, d.edges)
		d.edges = grown
	}
	if d.edges[t] == nil {
		d.edges[t] = to
	}
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrorDfaState is the shared sentinel meaning "known dead": once the
// simulator determines a (state, symbol) pair can never lead anywhere, it
// caches an edge to ErrorDfaState so repeated dead characters don't redo the
// ATN computation (spec.md §4.3 execATN).
var ErrorDfaState = &DfaState{StateNumber: -1}

// Dfa is the lazily materialized DFA for one lexer mode: a set of interned
// DfaStates hashed by their (context-blind) config set, plus a nullable
// start state S0. Reads and writes must be safe under concurrent lexer
// instances sharing the same Atn (spec.md §5); this implementation uses the
// "coarse mutex" strategy the spec calls out as the portable baseline.
type Dfa struct {
	mode int

	mu       sync.RWMutex
	states   map[int][]*DfaState
	numStates int
	s0       *DfaState

	maxEdge int
}

// NewDfa returns an empty per-mode DFA. maxEdge bounds the sparse edge
// window on every state it interns (DefaultMaxDFAEdge unless overridden by
// a LexerATNSimulatorOption).
func NewDfa(mode, maxEdge int) *Dfa {
	return &Dfa{mode: mode, states: make(map[int][]*DfaState), maxEdge: maxEdge}
}

// S0 returns the DFA's start state, or nil if Match has never reached this
// mode's DFA before.
func (d *Dfa) S0() *DfaState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.s0
}

// SetS0 installs the DFA's start state.
func (d *Dfa) SetS0(s *DfaState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.s0 = s
}

// AddDfaState interns proposal: builds the accept-state bookkeeping
// (spec.md §4.4 step 2), then looks the result up by DFA-state equality
// (configs compared ignoring context). If an equal state is already
// present, that existing, shared instance is returned; otherwise proposal
// is assigned a state number, frozen, inserted, and returned.
func (d *Dfa) AddDfaState(configs *ATNConfigSet) *DfaState {
	proposal := NewDfaState(configs, d.maxEdge)

	for _, c := range configs.Configs() {
		if _, ok := c.State.(*RuleStopState); ok {
			proposal.IsAcceptState = true
			proposal.LexerActionExecutor = c.LexerActionExecutor
			proposal.Prediction = c.State.GetATN().ruleToTokenType[c.State.GetRuleIndex()]
			break
		}
	}

	key := configs.dfaStateHash()

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.states[key] {
		if existing.Configs.dfaStateEquals(configs) {
			return existing
		}
	}

	proposal.StateNumber = d.numStates
	d.numStates++
	configs.SetReadOnly(true)
	d.states[key] = append(d.states[key], proposal)
	return proposal
}

// AddDfaEdge installs the edge from -> t -> to, subject to the edge window
// (spec.md §4.4 addDfaEdge): t outside [MinDFAEdge, from.maxEdge] is not
// cached, but to is still returned for the caller to use this once.
func AddDfaEdge(from *DfaState, t int, to *DfaState) *DfaState {
	if from != nil {
		from.SetEdge(t, to)
	}
	return to
}

// States returns every interned DfaState across all hash buckets, ordered by
// StateNumber. d.states is keyed by dfaStateHash, not state number, so the
// bucket order alone isn't reproducible; collecting the bucket keys and
// sorting the flattened result gives callers (diagnostics, tests) a stable
// walk of the DFA regardless of Go's map iteration order.
func (d *Dfa) States() []*DfaState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := maps.Keys(d.states)
	slices.Sort(keys)

	out := make([]*DfaState, 0, d.numStates)
	for _, key := range keys {
		out = append(out, d.states[key]...)
	}
	slices.SortFunc(out, func(a, b *DfaState) bool { return a.StateNumber < b.StateNumber })
	return out
}

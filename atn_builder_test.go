// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// testATN is a small hand-assembled ATN builder used by the scenario tests
// in lexer_atn_simulator_test.go. Real grammars are compiled by the ANTLR
// tool into the serialized binary format AtnDeserializer reads; since no
// such compiler is available to this module's tests, these helpers build
// the in-memory graph directly, the way the runtime's own internal tests
// construct fixture ATNs.
type testATN struct {
	atn   *ATN
	modes []*TokensStartState
}

func newTestATN(numRules, maxTokenType int) *testATN {
	a := NewATN(ATNTypeLexer, maxTokenType)
	a.ruleToStartState = make([]*RuleStartState, numRules)
	a.ruleToStopState = make([]*RuleStopState, numRules)
	a.ruleToTokenType = make([]int, numRules)
	return &testATN{atn: a}
}

// addMode registers a new lexer mode and returns its index.
func (b *testATN) addMode() int {
	ts := NewTokensStartState()
	b.atn.addState(ts)
	b.atn.defineDecisionState(ts)
	b.modes = append(b.modes, ts)
	b.atn.modeToStartState = append(b.atn.modeToStartState, ts)
	return len(b.modes) - 1
}

// addAlt wires target as the next alternative out of mode's start state.
func (b *testATN) addAlt(mode int, target ATNState) {
	b.modes[mode].AddTransition(NewEpsilonTransition(target, -1))
}

func (b *testATN) basic() *BasicState {
	s := NewBasicState()
	b.atn.addState(s)
	return s
}

// rule allocates a RuleStartState/RuleStopState pair for ruleIndex, wired to
// emit tokenType on match.
func (b *testATN) rule(ruleIndex, tokenType int) (*RuleStartState, *RuleStopState) {
	start := NewRuleStartState()
	stop := NewRuleStopState()
	start.SetRuleIndex(ruleIndex)
	stop.SetRuleIndex(ruleIndex)
	b.atn.addState(start)
	b.atn.addState(stop)
	start.StopState = stop
	b.atn.ruleToStartState[ruleIndex] = start
	b.atn.ruleToStopState[ruleIndex] = stop
	b.atn.ruleToTokenType[ruleIndex] = tokenType
	return start, stop
}

func eps(from ATNState, to ATNState) { from.AddTransition(NewEpsilonTransition(to, -1)) }

func rng(from ATNState, to ATNState, lo, hi int) {
	from.AddTransition(NewRangeTransition(to, lo, hi))
}

func set(from ATNState, to ATNState, iset *IntervalSet) {
	from.AddTransition(NewSetTransition(to, iset))
}

func wildcard(from ATNState, to ATNState) {
	from.AddTransition(NewWildcardTransition(to))
}

func notSet(from ATNState, to ATNState, iset *IntervalSet) {
	from.AddTransition(NewNotSetTransition(to, iset))
}

// plusRange builds "ruleStart -eps-> s1 -[lo-hi]-> s2 -eps-> {s1, ruleStop}",
// i.e. one-or-more repetitions of a single-character range.
func (b *testATN) plusRange(start ATNState, stop ATNState, lo, hi int) {
	s1 := b.basic()
	s2 := b.basic()
	eps(start, s1)
	rng(s1, s2, lo, hi)
	eps(s2, s1)
	eps(s2, stop)
}

// literal builds a fixed-string match from start to stop.
func (b *testATN) literal(start ATNState, stop ATNState, text string) {
	cur := start
	runes := []rune(text)
	for i, r := range runes {
		var next ATNState
		if i == len(runes)-1 {
			next = stop
		} else {
			next = b.basic()
		}
		rng(cur, next, int(r), int(r))
		cur = next
	}
}

// nonGreedyAnyStarThen builds "start -> (non-greedy .*) -> literal closeText -> stop".
func (b *testATN) nonGreedyAnyStarThen(start ATNState, stop ATNState, closeText string) {
	entry := NewStarLoopEntryState()
	entry.setNonGreedy(true)
	b.atn.addState(entry)
	b.atn.defineDecisionState(entry)
	body := b.basic()
	back := NewStarLoopbackState()
	b.atn.addState(back)
	loopEnd := b.basic()

	eps(start, entry)
	// Non-greedy: try exit first, then the loop body.
	eps(entry, loopEnd)
	eps(entry, body)
	wildcard(body, back)
	eps(back, entry)

	b.literal(loopEnd, stop, closeText)
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// SemanticContext is the semantic-predicate condition attached to a config
// once closure crosses a PredicateTransition. The lexer only ever needs a
// boolean "was a predicate seen" (AtnConfigSet.HasSemanticContext) rather
// than a composable predicate tree, since predicates are evaluated eagerly
// at closure time (spec.md §4.3 getEpsilonTarget / Predicate case) and never
// deferred the way parser-side SLL prediction defers them.
type SemanticContext = any

// LexerATNConfig is one configuration in the adaptive simulator's working
// set: an ATN state paired with the GSS context reached to get there, plus
// lexer-specific bookkeeping (spec.md §3).
type LexerATNConfig struct {
	State   ATNState
	Alt     int
	Context PredictionContext

	// HasSemanticContext records that closure evaluated at least one
	// predicate on the way to this config; AtnConfigSet.HasSemanticContext
	// is the OR of this across every member.
	HasSemanticContext bool

	// LexerActionExecutor is the (possibly nil) queue of actions collected
	// on the path to this config.
	LexerActionExecutor *LexerActionExecutor

	// PassedThroughNonGreedyDecision is set once closure passes through a
	// non-greedy StarLoopEntry; reach uses it to cut off further expansion
	// of this alternative once any config for the same alt has accepted
	// (spec.md §4.3 "longest-match/first-alt wins").
	PassedThroughNonGreedyDecision bool
}

// NewLexerATNConfig builds a fresh config with the given context and no
// queued actions (used for the start-closure configs seeded from a mode's
// TokensStartState transitions).
func NewLexerATNConfig(state ATNState, alt int, context PredictionContext) *LexerATNConfig {
	return &LexerATNConfig{State: state, Alt: alt, Context: context}
}

// transition returns a copy of c stepped to target via a non-context-
// changing epsilon edge, carrying forward every other field.
func (c *LexerATNConfig) transition(target ATNState) *LexerATNConfig {
	return &LexerATNConfig{
		State:                          target,
		Alt:                            c.Alt,
		Context:                        c.Context,
		HasSemanticContext:             c.HasSemanticContext,
		LexerActionExecutor:            c.LexerActionExecutor,
		PassedThroughNonGreedyDecision: c.PassedThroughNonGreedyDecision || isNonGreedyDecisionState(target),
	}
}

func isNonGreedyDecisionState(s ATNState) bool {
	d, ok := s.(DecisionState)
	return ok && !d.isGreedy()
}

// hashFullContext is the key used for membership inside an AtnConfigSet: it
// includes State, Alt, and Context, per spec.md §3's "full equality" mode.
func (c *LexerATNConfig) hashFullContext() int {
	h := murmurStart()
	h = murmurUpdate(h, c.State.GetStateNumber())
	h = murmurUpdate(h, c.Alt)
	h = murmurUpdate(h, c.Context.hash())
	return murmurFinish(h, 3)
}

func (c *LexerATNConfig) equalsFullContext(o *LexerATNConfig) bool {
	return c.State.GetStateNumber() == o.State.GetStateNumber() &&
		c.Alt == o.Alt &&
		predictionContextEquals(c.Context, o.Context)
}

// hashDfaStateKey is the key used when comparing configs across DFA states
// (spec.md §3's "DFA-state equality"): it ignores Context entirely so that
// configs differing only in call stack collapse into the same DFA state,
// which is what keeps DFA state count finite.
func (c *LexerATNConfig) hashDfaStateKey() int {
	h := murmurStart()
	h = murmurUpdate(h, c.State.GetStateNumber())
	h = murmurUpdate(h, c.Alt)
	return murmurFinish(h, 2)
}

func (c *LexerATNConfig) equalsDfaStateKey(o *LexerATNConfig) bool {
	return c.State.GetStateNumber() == o.State.GetStateNumber() && c.Alt == o.Alt
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// ATNInvalidAltNumber is used to represent an ALT number that has yet to be calculated or
// which is invalid; alternatives are numbered from 1, so no config carries it.
var ATNInvalidAltNumber int

// ATN represents the in-memory NFA deserialized from the portable ATN binary
// format (spec.md §3, §4.1): one start state per lexer mode, one stop state
// per rule, and the full state/transition graph they connect. It is built
// once per generated lexer class by AtnDeserializer and is immutable and
// read-only from then on, which is what lets it be shared across lexer
// instances under concurrent use (spec.md §5).
type ATN struct {

	// DecisionToState lists every decision point (sub-rule, (...)+, (...)*,
	// etc.) in serialization order; a decision's index into this slice is its
	// "decision number", used by nothing in the lexer simulator itself but
	// assigned during deserialization regardless (spec.md §4.1 step 9).
	DecisionToState []DecisionState

	grammarType ATNType

	// lexerActions is the decoded table of parameterized action singletons;
	// ActionTransition.ActionIndex indexes into this slice.
	lexerActions []LexerAction

	// maxTokenType is the maximum value for any symbol recognized by a
	// transition in the ATN.
	maxTokenType int

	modeNameToStartState map[string]*TokensStartState
	modeToStartState     []*TokensStartState

	// ruleToStartState maps from rule index to starting state.
	ruleToStartState []*RuleStartState

	// ruleToStopState maps from rule index to stop state.
	ruleToStopState []*RuleStopState

	// ruleToTokenType maps the rule index to the resulting token type.
	ruleToTokenType []int

	// states is every state in the graph, ordered by state number.
	states []ATNState
}

// NewATN returns an empty ATN of the given grammarType, ready for
// AtnDeserializer to populate.
func NewATN(grammarType ATNType, maxTokenType int) *ATN {
	return &ATN{
		grammarType:          grammarType,
		maxTokenType:         maxTokenType,
		modeNameToStartState: make(map[string]*TokensStartState),
	}
}

func (a *ATN) addState(state ATNState) {
	if state != nil {
		state.SetATN(a)
		state.SetStateNumber(len(a.states))
	}

	a.states = append(a.states, state)
}

func (a *ATN) removeState(state ATNState) {
	a.states[state.GetStateNumber()] = nil // Just free the memory; don't shift states in the slice
}

func (a *ATN) defineDecisionState(s DecisionState) int {
	a.DecisionToState = append(a.DecisionToState, s)
	s.setDecision(len(a.DecisionToState) - 1)

	return s.getDecision()
}

func (a *ATN) getDecisionState(decision int) DecisionState {
	if len(a.DecisionToState) == 0 {
		return nil
	}

	return a.DecisionToState[decision]
}

// GetState returns the state with the given number, or nil if out of range.
func (a *ATN) GetState(stateNumber int) ATNState {
	if stateNumber < 0 || stateNumber >= len(a.states) {
		return nil
	}
	return a.states[stateNumber]
}

// NumStates reports how many states the graph holds.
func (a *ATN) NumStates() int { return len(a.states) }

// GetRuleToStartState returns rule index's unique entry state.
func (a *ATN) GetRuleToStartState(index int) *RuleStartState {
	return a.ruleToStartState[index]
}

// GetRuleToStopState returns rule index's unique exit state.
func (a *ATN) GetRuleToStopState(index int) *RuleStopState {
	return a.ruleToStopState[index]
}

// GetMaxTokenType returns the largest token type value the grammar declares.
func (a *ATN) GetMaxTokenType() int {
	return a.maxTokenType
}

// GrammarType reports whether this ATN was generated from a lexer or parser
// grammar; the simulator in this package only ever walks ATNTypeLexer ATNs.
func (a *ATN) GrammarType() ATNType { return a.grammarType }

// ModeToStartState returns the TokensStartState that begins lexer mode m.
func (a *ATN) ModeToStartState(m int) *TokensStartState {
	if m < 0 || m >= len(a.modeToStartState) {
		return nil
	}
	return a.modeToStartState[m]
}

// NumModes reports how many lexer modes the grammar declares.
func (a *ATN) NumModes() int { return len(a.modeToStartState) }

// LexerAction returns the decoded action singleton at index i in the ATN's
// action table (spec.md §4.1 step 10).
func (a *ATN) LexerAction(i int) LexerAction {
	if i < 0 || i >= len(a.lexerActions) {
		return nil
	}
	return a.lexerActions[i]
}

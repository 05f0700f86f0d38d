// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import "sync"

// simState is a scratch record of the most recent accept point seen during
// one Match call (spec.md §3 "SimState").
type simState struct {
	inputIndex int
	line       int
	column     int
	dfaState   *DfaState
}

func (s simState) valid() bool { return s.dfaState != nil }

// LexerATNSimulatorOption configures a LexerATNSimulator at construction
// time. See spec.md §9 "Open questions" on the DFA edge window.
type LexerATNSimulatorOption func(*LexerATNSimulator)

// WithEdgeWindow widens or narrows the sparse per-state DFA edge table from
// its default of [0, DefaultMaxDFAEdge]. Characters outside the window
// always force an ATN computation; widening it trades per-state memory for
// fewer ATN falls-back on grammars with heavy non-ASCII vocabularies.
func WithEdgeWindow(maxEdge int) LexerATNSimulatorOption {
	return func(s *LexerATNSimulator) { s.maxEdge = maxEdge }
}

// WithMergeCacheSize bounds each PredictionContext merge cache (spec.md
// §4.2). A fresh cache is built for the start closure and for every reach
// step, so merge results are not reused across steps of one Match; the bound
// only guards against a single pathological step blowing up memory.
func WithMergeCacheSize(n int) LexerATNSimulatorOption {
	return func(s *LexerATNSimulator) { s.mergeCacheSize = n }
}

// LexerATNSimulator is the adaptive LL(*) lexer engine: it walks (and lazily
// grows) a per-mode DFA over the ATN decoded by AtnDeserializer, falling back
// to on-the-fly NFA closure/reach computation whenever the DFA doesn't yet
// have an answer (spec.md §1, §4.3). One instance is created per lexer
// instance; the Atn and SharedContextCache it's built from are shared across
// every simulator built from the same grammar (spec.md §5). The per-mode Dfas
// it grows are held in this simulator's own map and are not shared with other
// simulators.
type LexerATNSimulator struct {
	atn                *ATN
	sharedContextCache *SharedContextCache

	maxEdge        int
	mergeCacheSize int

	dfasMu sync.Mutex
	dfas   map[int]*Dfa

	// Per-match scratch state (spec.md §5 "per-instance state").
	mode       int
	line       int
	column     int
	startIndex int
	prevAccept simState
}

// NewLexerATNSimulator builds a simulator over atn, interning
// PredictionContexts through sharedContextCache. atn and sharedContextCache
// are expected to be shared across every simulator instance lexing with the
// same grammar.
func NewLexerATNSimulator(atn *ATN, sharedContextCache *SharedContextCache, opts ...LexerATNSimulatorOption) *LexerATNSimulator {
	s := &LexerATNSimulator{
		atn:                atn,
		sharedContextCache: sharedContextCache,
		maxEdge:            DefaultMaxDFAEdge,
		mergeCacheSize:     512,
		dfas:               make(map[int]*Dfa),
		line:               1,
		column:             0,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Line and Column report the simulator's current position, updated by
// Consume as Match walks the input (spec.md §4.3 consume).
func (sim *LexerATNSimulator) Line() int   { return sim.line }
func (sim *LexerATNSimulator) Column() int { return sim.column }

func (sim *LexerATNSimulator) dfaFor(mode int) *Dfa {
	sim.dfasMu.Lock()
	defer sim.dfasMu.Unlock()
	d, ok := sim.dfas[mode]
	if !ok {
		d = NewDfa(mode, sim.maxEdge)
		sim.dfas[mode] = d
	}
	return d
}

// Match tokenizes the next token starting at input's current position while
// in lexer mode, driving host's mutable Type/Channel/Mode/ModeStack fields
// and firing queued actions and predicates through host. It returns the
// predicted token type, or TokenEOF at end of input with nothing matched, or
// a *LexerNoViableAltError if no accept state was ever reached (spec.md §4.3
// "match").
func (sim *LexerATNSimulator) Match(input CharStream, mode int, host Host) (int, error) {
	sim.mode = mode
	marker := input.Mark()
	defer input.Release(marker)

	sim.startIndex = input.Index()
	sim.prevAccept = simState{}

	dfa := sim.dfaFor(mode)
	s0 := dfa.S0()
	if s0 == nil {
		return sim.matchATN(input, dfa, host)
	}
	return sim.execATN(input, dfa, s0, host)
}

// matchATN computes the start closure for the mode's TokensStartState and
// hands off to execATN (spec.md §4.3 "matchATN").
func (sim *LexerATNSimulator) matchATN(input CharStream, dfa *Dfa, host Host) (int, error) {
	start := sim.atn.ModeToStartState(sim.mode)
	if start == nil {
		return 0, &UnsupportedATNError{Reason: "no start state for mode"}
	}

	cache := newMergeCache(sim.mergeCacheSize)
	configs := NewATNConfigSet(cache)
	for i, t := range start.GetTransitions() {
		cfg := NewLexerATNConfig(t.Target(), i+1, EmptyContext)
		sim.closure(input, host, cfg, configs, false, false, false)
	}

	next := sim.internConfigs(dfa, configs)
	if !configs.HasSemanticContext {
		dfa.SetS0(next)
	}
	return sim.execATN(input, dfa, next, host)
}

// internConfigs caches every config's context through sharedContextCache
// (spec.md §4.2, "the chief source of the 1.5x memory reduction observed in
// practice") before interning the set as a DfaState.
func (sim *LexerATNSimulator) internConfigs(dfa *Dfa, configs *ATNConfigSet) *DfaState {
	visited := make(map[PredictionContext]PredictionContext)
	for _, c := range configs.Configs() {
		c.Context = GetCachedContext(c.Context, sim.sharedContextCache, visited)
	}
	return dfa.AddDfaState(configs)
}

// execATN walks the DFA from s, computing new states via the ATN whenever an
// edge isn't yet cached, and captures the most recent accept point so
// failOrAccept can rewind to it (spec.md §4.3 "execATN main loop").
func (sim *LexerATNSimulator) execATN(input CharStream, dfa *Dfa, s *DfaState, host Host) (int, error) {
	if s.IsAcceptState {
		sim.captureAccept(input, s)
	}

	t := input.La(1)
	for {
		target := s.GetEdge(t)
		if target == nil {
			target = sim.computeTargetState(input, dfa, s, t, host)
		}
		if target == ErrorDfaState {
			break
		}

		if t != EOF {
			sim.consume(input)
		}

		if target.IsAcceptState {
			sim.captureAccept(input, target)
			if t == EOF {
				break
			}
		}

		t = input.La(1)
		s = target
	}

	return sim.failOrAccept(t, s.Configs, host, input)
}

func (sim *LexerATNSimulator) captureAccept(input CharStream, s *DfaState) {
	sim.prevAccept = simState{
		inputIndex: input.Index(),
		line:       sim.line,
		column:     sim.column,
		dfaState:   s,
	}
}

// computeTargetState produces (and, unless predicates forbid it, caches) the
// DFA edge s --t--> target, per spec.md §4.3 "computeTargetState".
func (sim *LexerATNSimulator) computeTargetState(input CharStream, dfa *Dfa, s *DfaState, t int, host Host) *DfaState {
	reach := NewATNConfigSet(newMergeCache(sim.mergeCacheSize))
	sim.getReachableConfigSet(input, host, s.Configs, reach, t)

	if reach.Len() == 0 {
		if !reach.HasSemanticContext {
			AddDfaEdge(s, t, ErrorDfaState)
		}
		return ErrorDfaState
	}

	target := sim.internConfigs(dfa, reach)
	if !reach.HasSemanticContext {
		AddDfaEdge(s, t, target)
	}
	return target
}

// getReachableConfigSet computes one step of "reach": for every config in
// closureConfigs, for every transition matching t, closure the stepped
// config into reach (spec.md §4.3 "reach"). skipAlt implements the
// longest-match/first-alt-wins rule: once any config for an alt reaches an
// accept state, remaining configs for that alt which passed through a
// non-greedy decision are dropped.
func (sim *LexerATNSimulator) getReachableConfigSet(input CharStream, host Host, closureConfigs *ATNConfigSet, reach *ATNConfigSet, t int) {
	skipAlt := ATNInvalidAltNumber
	for _, c := range closureConfigs.Configs() {
		currentAltReachedAcceptState := c.Alt == skipAlt
		if currentAltReachedAcceptState && c.PassedThroughNonGreedyDecision {
			continue
		}

		for _, trans := range c.State.GetTransitions() {
			target := getReachableTarget(trans, t)
			if target == nil {
				continue
			}

			executor := c.LexerActionExecutor
			if executor != nil {
				executor = executor.FixOffsetBeforeMatch(input.Index() - sim.startIndex)
			}

			cfg := &LexerATNConfig{
				State:                          target,
				Alt:                            c.Alt,
				Context:                        c.Context,
				HasSemanticContext:             c.HasSemanticContext,
				LexerActionExecutor:            executor,
				PassedThroughNonGreedyDecision: c.PassedThroughNonGreedyDecision,
			}
			if sim.closure(input, host, cfg, reach, currentAltReachedAcceptState, true, false) {
				skipAlt = c.Alt
				break
			}
		}
	}
}

func getReachableTarget(trans Transition, t int) ATNState {
	if trans.Matches(t, 0, 0x10FFFF) {
		return trans.Target()
	}
	return nil
}

// closure performs epsilon-closure from config, adding non-epsilon-only
// states to configs and recursing through epsilon transitions, with explicit
// GSS manipulation at rule boundaries (spec.md §4.3 "closure"). It returns
// whether config or any state reached through it is an accept state, so
// callers can maintain skipAlt.
func (sim *LexerATNSimulator) closure(input CharStream, host Host, config *LexerATNConfig, configs *ATNConfigSet, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon bool) bool {
	if _, ok := config.State.(*RuleStopState); ok {
		if config.Context != nil && !config.Context.isEmpty() {
			for i := 0; i < config.Context.length(); i++ {
				if config.Context.getReturnState(i) == EmptyReturnState {
					emptyCfg := &LexerATNConfig{
						State:                          config.State,
						Alt:                            config.Alt,
						Context:                        EmptyContext,
						HasSemanticContext:             config.HasSemanticContext,
						LexerActionExecutor:            config.LexerActionExecutor,
						PassedThroughNonGreedyDecision: config.PassedThroughNonGreedyDecision,
					}
					configs.Add(emptyCfg)
					currentAltReachedAcceptState = true
					continue
				}

				returnState := sim.atn.GetState(config.Context.getReturnState(i))
				newContext := config.Context.getParent(i)
				next := &LexerATNConfig{
					State:                          returnState,
					Alt:                            config.Alt,
					Context:                        newContext,
					HasSemanticContext:             config.HasSemanticContext,
					LexerActionExecutor:            config.LexerActionExecutor,
					PassedThroughNonGreedyDecision: config.PassedThroughNonGreedyDecision,
				}
				currentAltReachedAcceptState = sim.closure(input, host, next, configs, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon)
			}
			return currentAltReachedAcceptState
		}

		// Empty stack: this rule was entered from outside any other rule
		// tracked by this GSS, so reaching its stop state is an accept.
		configs.Add(config)
		return true
	}

	if !config.State.EpsilonOnlyTransitions() {
		if !currentAltReachedAcceptState || !config.PassedThroughNonGreedyDecision {
			configs.Add(config)
		}
	}

	for _, t := range config.State.GetTransitions() {
		next := sim.getEpsilonTarget(input, host, config, t, configs, speculative, treatEOFAsEpsilon)
		if next != nil {
			currentAltReachedAcceptState = sim.closure(input, host, next, configs, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon)
		}
	}
	return currentAltReachedAcceptState
}

// getEpsilonTarget dispatches on the transition's kind, per spec.md §4.3
// "getEpsilonTarget".
func (sim *LexerATNSimulator) getEpsilonTarget(input CharStream, host Host, config *LexerATNConfig, t Transition, configs *ATNConfigSet, speculative, treatEOFAsEpsilon bool) *LexerATNConfig {
	switch tt := t.(type) {
	case *RuleTransition:
		newContext := NewSingletonPredictionContext(config.Context, tt.FollowState.GetStateNumber())
		return &LexerATNConfig{
			State:                          t.Target(),
			Alt:                            config.Alt,
			Context:                        newContext,
			HasSemanticContext:             config.HasSemanticContext,
			LexerActionExecutor:            config.LexerActionExecutor,
			PassedThroughNonGreedyDecision: config.PassedThroughNonGreedyDecision || isNonGreedyDecisionState(t.Target()),
		}

	case *PrecedencePredicateTransition:
		illegalPredicateInLexer()
		return nil

	case *PredicateTransition:
		configs.HasSemanticContext = true
		if sim.evaluatePredicate(input, host, tt.RuleIndex, tt.PredIndex, speculative) {
			next := config.transition(t.Target())
			next.HasSemanticContext = true
			return next
		}
		return nil

	case *ActionTransition:
		if config.Context == nil || hasEmptyPath(config.Context) {
			executor := config.LexerActionExecutor.Append(sim.atn.LexerAction(tt.ActionIndex))
			return &LexerATNConfig{
				State:                          t.Target(),
				Alt:                            config.Alt,
				Context:                        config.Context,
				HasSemanticContext:             config.HasSemanticContext,
				LexerActionExecutor:            executor,
				PassedThroughNonGreedyDecision: config.PassedThroughNonGreedyDecision,
			}
		}
		return config.transition(t.Target())

	case *EpsilonTransition:
		return config.transition(t.Target())

	default:
		if treatEOFAsEpsilon && t.Matches(EOF, 0, 0x10FFFF) {
			return config.transition(t.Target())
		}
		return nil
	}
}

// evaluatePredicate calls host.Sempred, optionally simulating the consume of
// the current symbol first so a context-dependent predicate observes the
// post-match position, then restoring everything (spec.md §4.3
// "evaluatePredicate").
func (sim *LexerATNSimulator) evaluatePredicate(input CharStream, host Host, ruleIndex, predIndex int, speculative bool) bool {
	if !speculative {
		return host.Sempred(nil, ruleIndex, predIndex)
	}

	savedLine := sim.line
	savedColumn := sim.column
	index := input.Index()
	marker := input.Mark()
	defer func() {
		sim.line = savedLine
		sim.column = savedColumn
		input.Seek(index)
		input.Release(marker)
	}()

	sim.consume(input)
	return host.Sempred(nil, ruleIndex, predIndex)
}

// failOrAccept implements spec.md §4.3 "failOrAccept": rewind to the last
// captured accept point and run its actions, or report EOF-with-nothing-
// matched, or raise LexerNoViableAltError.
func (sim *LexerATNSimulator) failOrAccept(t int, reachConfigs *ATNConfigSet, host Host, input CharStream) (int, error) {
	if sim.prevAccept.valid() {
		sim.accept(input, host, sim.prevAccept.dfaState.LexerActionExecutor, sim.startIndex, sim.prevAccept.inputIndex, sim.prevAccept.line, sim.prevAccept.column)
		return sim.prevAccept.dfaState.Prediction, nil
	}

	if t == EOF && input.Index() == sim.startIndex {
		return TokenEOF, nil
	}

	return 0, &LexerNoViableAltError{StartIndex: sim.startIndex, DeadEndConfigs: reachConfigs}
}

// accept rewinds input to the captured accept position and runs its queued
// actions (spec.md §4.3 "accept").
func (sim *LexerATNSimulator) accept(input CharStream, host Host, executor *LexerActionExecutor, startIndex, index, line, column int) {
	input.Seek(index)
	sim.line = line
	sim.column = column
	if executor != nil {
		executor.Execute(host, input, startIndex)
	}
}

// consume advances input by one code point, tracking line/column
// (spec.md §4.3 "consume"): a newline resets column and bumps line.
func (sim *LexerATNSimulator) consume(input CharStream) {
	c := input.La(1)
	if c == '\n' {
		sim.line++
		sim.column = 0
	} else {
		sim.column++
	}
	input.Consume()
}

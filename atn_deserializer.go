// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"fmt"

	"github.com/google/uuid"
)

// SerializedATNVersion is the only payload version this deserializer
// understands (spec.md §4.1 step 1).
const SerializedATNVersion = 3

// baseSerializedUUID identifies the minimal feature set every payload must
// declare support for. addedUnicodeSMPUUID additionally enables 32-bit set
// interval endpoints, needed once a grammar's vocabulary exceeds the Basic
// Multilingual Plane (spec.md §4.1, §6).
var (
	baseSerializedUUID     = uuid.MustParse("33761b2d-78bb-4a43-8b6b-d745c4ed88a9")
	addedUnicodeSMPUUID    = uuid.MustParse("59627784-3be5-417a-b9eb-8131a7286089")
)

var supportedUUIDs = []uuid.UUID{baseSerializedUUID, addedUnicodeSMPUUID}

// State/transition/action wire tags. These are this runtime's own encoding
// (the Ruby original_source retrieval came back empty, so there is no
// existing byte layout to match); they are assigned in the order spec.md
// enumerates each tagged variant so the mapping is easy to audit against the
// spec text, except that wireStateBlockEnd directly follows wireStateRuleStop
// rather than coming last as ATNStateBlockEnd does in ATNStateKind.
const (
	wireStateBasic = iota + 1
	wireStateRuleStart
	wireStateBlockStart
	wireStatePlusBlockStart
	wireStateStarBlockStart
	wireStateTokenStart
	wireStateRuleStop
	wireStateBlockEnd
	wireStateStarLoopBack
	wireStateStarLoopEntry
	wireStatePlusLoopBack
	wireStateLoopEnd
)

const (
	wireTransitionEpsilon = iota + 1
	wireTransitionRange
	wireTransitionRule
	wireTransitionPredicate
	wireTransitionAtom
	wireTransitionAction
	wireTransitionSet
	wireTransitionNotSet
	wireTransitionWildcard
	wireTransitionPrecedence
)

const (
	wireLexerActionChannel = iota
	wireLexerActionCustom
	wireLexerActionMode
	wireLexerActionMore
	wireLexerActionPopMode
	wireLexerActionPushMode
	wireLexerActionSkip
	wireLexerActionType
)

// atnReader walks a serialized []uint16 payload, applying the +2/-2 element
// transform described in spec.md §4.1/§6 to every element after the version
// word as it is read.
type atnReader struct {
	raw []uint16
	pos int
}

func (r *atnReader) rawVersion() int {
	v := int(r.raw[0])
	r.pos = 1
	return v
}

func decodeElement(raw uint16) int {
	switch raw {
	case 0:
		return 65534
	case 1:
		return 65535
	default:
		return int(raw) - 2
	}
}

func (r *atnReader) next() int {
	v := decodeElement(r.raw[r.pos])
	r.pos++
	return v
}

func (r *atnReader) next32() int {
	lo := r.next()
	hi := r.next()
	return lo | (hi << 16)
}

func (r *atnReader) nextUUID() uuid.UUID {
	var b [16]byte
	for i := 0; i < 8; i++ {
		w := r.next()
		b[i*2] = byte(w)
		b[i*2+1] = byte(w >> 8)
	}
	id, _ := uuid.FromBytes(b[:])
	return id
}

// AtnDeserializer turns a serialized ATN payload into a live Atn graph,
// following the fixed order in spec.md §4.1.
type AtnDeserializer struct {
	verify bool
}

// NewAtnDeserializer returns a deserializer that also runs structural
// verification (spec.md §4.1 step 12) after building the graph.
func NewAtnDeserializer() *AtnDeserializer { return &AtnDeserializer{verify: true} }

// NewAtnDeserializerNoVerify skips the optional structural verification pass,
// trading safety for speed once a payload is known-good.
func NewAtnDeserializerNoVerify() *AtnDeserializer { return &AtnDeserializer{verify: false} }

// Deserialize parses data (already split into 16-bit code units by the
// caller) into a complete ATN.
func (d *AtnDeserializer) Deserialize(data []uint16) (result *ATN, err error) {
	defer func() {
		if p := recover(); p != nil {
			if ue, ok := p.(*UnsupportedATNError); ok {
				result, err = nil, ue
				return
			}
			panic(p)
		}
	}()
	if len(data) == 0 {
		return nil, &UnsupportedATNError{Reason: "empty payload"}
	}
	r := &atnReader{raw: data}

	version := r.rawVersion()
	if version != SerializedATNVersion {
		return nil, &UnsupportedATNError{Reason: fmt.Sprintf("version %d not supported (want %d)", version, SerializedATNVersion)}
	}

	id := r.nextUUID()
	supportsSMP := false
	matched := false
	for _, u := range supportedUUIDs {
		if u == id {
			matched = true
			if u == addedUnicodeSMPUUID {
				supportsSMP = true
			}
			break
		}
	}
	if !matched {
		return nil, &UnsupportedATNError{Reason: fmt.Sprintf("unknown feature UUID %s", id)}
	}

	grammarType := ATNType(r.next())
	maxTokenType := r.next()
	atn := NewATN(grammarType, maxTokenType)

	states, loopBackFixups, endStateFixups := d.readStates(r, atn)
	d.readNonGreedyAndPrecedenceLists(r, states)

	ruleCount := r.next()
	ruleToTokenType := make([]int, ruleCount)
	atn.ruleToStartState = make([]*RuleStartState, ruleCount)
	for i := 0; i < ruleCount; i++ {
		s := r.next()
		atn.ruleToStartState[i] = states[s].(*RuleStartState)
		if grammarType == ATNTypeLexer {
			tt := r.next()
			if tt == 0xFFFF {
				tt = TokenEOF
			}
			ruleToTokenType[i] = tt
		}
	}
	atn.ruleToTokenType = ruleToTokenType
	atn.ruleToStopState = make([]*RuleStopState, ruleCount)
	for _, st := range states {
		if rs, ok := st.(*RuleStopState); ok {
			atn.ruleToStopState[rs.GetRuleIndex()] = rs
		}
	}
	for i, rs := range atn.ruleToStartState {
		rs.StopState = atn.ruleToStopState[i]
	}

	modeCount := r.next()
	atn.modeToStartState = make([]*TokensStartState, modeCount)
	for i := 0; i < modeCount; i++ {
		s := r.next()
		atn.modeToStartState[i] = states[s].(*TokensStartState)
	}

	sets, err := d.readSets(r, false)
	if err != nil {
		return nil, err
	}
	if supportsSMP {
		smpSets, err := d.readSets(r, true)
		if err != nil {
			return nil, err
		}
		sets = append(sets, smpSets...)
	}

	if err := d.readEdges(r, atn, states, sets); err != nil {
		return nil, err
	}
	fixupPlusLoopBackStates(states)

	decisionCount := r.next()
	for i := 0; i < decisionCount; i++ {
		s := r.next()
		ds := states[s].(DecisionState)
		atn.defineDecisionState(ds)
	}

	if grammarType == ATNTypeLexer {
		actionCount := r.next()
		atn.lexerActions = make([]LexerAction, actionCount)
		for i := 0; i < actionCount; i++ {
			la, err := d.readLexerAction(r)
			if err != nil {
				return nil, err
			}
			atn.lexerActions[i] = la
		}
	}

	for _, fix := range loopBackFixups {
		fix()
	}
	for _, fix := range endStateFixups {
		fix()
	}

	markPrecedenceDecisions(atn)

	if d.verify {
		if err := verifyATN(atn); err != nil {
			return nil, err
		}
	}

	return atn, nil
}

// readStates consumes the state table (spec.md §4.1 step 3) and returns the
// decoded states plus deferred fixup closures for the two-pass fields
// (loopBackState, endState) that reference states not yet allocated when
// first encountered.
func (d *AtnDeserializer) readStates(r *atnReader, atn *ATN) (states []ATNState, loopBackFixups, endStateFixups []func()) {
	count := r.next()
	states = make([]ATNState, count)

	for i := 0; i < count; i++ {
		tag := r.next()
		if tag == 0 {
			// Reserved "invalid state" placeholder; keep the slot nil.
			ruleIdx := r.next()
			_ = ruleIdx
			atn.addState(nil)
			continue
		}

		ruleIndex := r.next()
		if ruleIndex == 0xFFFF {
			ruleIndex = -1
		}

		var s ATNState
		switch tag {
		case wireStateBasic:
			s = NewBasicState()
		case wireStateRuleStart:
			s = NewRuleStartState()
		case wireStateBlockStart:
			bs := NewBlockStartState()
			endIdx := r.next()
			idx := i
			endStateFixups = append(endStateFixups, func() {
				bs.EndState = states[endIdx].(*BlockEndState)
				bs.EndState.StartState = states[idx]
			})
			s = bs
		case wireStatePlusBlockStart:
			bs := NewPlusBlockStartState()
			endIdx := r.next()
			idx := i
			endStateFixups = append(endStateFixups, func() {
				bs.EndState = states[endIdx].(*BlockEndState)
				bs.EndState.StartState = states[idx]
			})
			s = bs
		case wireStateStarBlockStart:
			bs := NewStarBlockStartState()
			endIdx := r.next()
			idx := i
			endStateFixups = append(endStateFixups, func() {
				bs.EndState = states[endIdx].(*BlockEndState)
				bs.EndState.StartState = states[idx]
			})
			s = bs
		case wireStateTokenStart:
			s = NewTokensStartState()
		case wireStateRuleStop:
			s = NewRuleStopState()
		case wireStateBlockEnd:
			s = NewBlockEndState()
		case wireStateStarLoopBack:
			s = NewStarLoopbackState()
		case wireStateStarLoopEntry:
			se := NewStarLoopEntryState()
			loopBackIdx := r.next()
			loopBackFixups = append(loopBackFixups, func() {
				se.LoopBackState = states[loopBackIdx].(*StarLoopbackState)
			})
			s = se
		case wireStatePlusLoopBack:
			s = NewPlusLoopbackState()
		case wireStateLoopEnd:
			le := NewLoopEndState()
			loopBackIdx := r.next()
			loopBackFixups = append(loopBackFixups, func() {
				le.LoopBackState = states[loopBackIdx]
			})
			s = le
		default:
			panic(&UnsupportedATNError{Reason: fmt.Sprintf("unknown state tag %d", tag)})
		}

		s.SetRuleIndex(ruleIndex)
		atn.addState(s)
		states[i] = s
	}
	return states, loopBackFixups, endStateFixups
}

// fixupPlusLoopBackStates derives PlusBlockStartState.LoopBackState from the
// graph shape: a PlusLoopbackState always has an epsilon edge back into the
// PlusBlockStartState it closes (spec.md §4.1 verification invariants
// require this link to be non-null).
func fixupPlusLoopBackStates(states []ATNState) {
	for _, s := range states {
		plb, ok := s.(*PlusLoopbackState)
		if !ok {
			continue
		}
		for _, t := range plb.GetTransitions() {
			if bs, ok := t.Target().(*PlusBlockStartState); ok {
				bs.LoopBackState = plb
			}
		}
	}
}

func (d *AtnDeserializer) readNonGreedyAndPrecedenceLists(r *atnReader, states []ATNState) {
	nonGreedyCount := r.next()
	for i := 0; i < nonGreedyCount; i++ {
		s := r.next()
		if ds, ok := states[s].(DecisionState); ok {
			ds.setNonGreedy(true)
		}
	}

	precedenceCount := r.next()
	for i := 0; i < precedenceCount; i++ {
		s := r.next()
		if rs, ok := states[s].(*RuleStartState); ok {
			rs.IsLeftRecursiveRule = true
		}
	}
}

// readSets decodes one block of interval sets (spec.md §4.1 step 7). When
// smp is true, each endpoint is a 32-bit value (low | high<<16) instead of a
// 16-bit one, supporting code points beyond the Basic Multilingual Plane.
func (d *AtnDeserializer) readSets(r *atnReader, smp bool) ([]*IntervalSet, error) {
	count := r.next()
	sets := make([]*IntervalSet, count)
	for i := 0; i < count; i++ {
		iset := NewIntervalSet()
		n := r.next()
		containsEOF := r.next()
		if containsEOF != 0 {
			iset.AddOne(TokenEOF)
		}
		for j := 0; j < n; j++ {
			var lo, hi int
			if smp {
				lo = r.next32()
				hi = r.next32()
			} else {
				lo = r.next()
				hi = r.next()
			}
			iset.AddRange(lo, hi)
		}
		sets[i] = iset
	}
	return sets, nil
}

// readEdges consumes the edge table (spec.md §4.1 step 8) and, for every
// RuleTransition, synthesizes the epsilon return edge from the callee's
// RuleStopState back to the caller's follow state.
func (d *AtnDeserializer) readEdges(r *atnReader, atn *ATN, states []ATNState, sets []*IntervalSet) error {
	edgeCount := r.next()
	for i := 0; i < edgeCount; i++ {
		src := r.next()
		trg := r.next()
		ttype := r.next()
		arg1 := r.next()
		arg2 := r.next()
		arg3 := r.next()

		srcState := states[src]
		if srcState == nil {
			continue
		}
		target := states[trg]

		t, err := edgeFactory(atn, ttype, target, arg1, arg2, arg3, sets, states)
		if err != nil {
			return err
		}
		srcState.AddTransition(t)

		if rt, ok := t.(*RuleTransition); ok {
			calleeRuleIndex := target.GetRuleIndex()
			stop := atn.ruleToStopState[calleeRuleIndex]
			outermost := -1
			callee := atn.ruleToStartState[calleeRuleIndex]
			if callee.IsLeftRecursiveRule && rt.Precedence == 0 {
				outermost = calleeRuleIndex
			}
			stop.AddTransition(NewEpsilonTransition(rt.FollowState, outermost))
		}
	}
	return nil
}

func edgeFactory(atn *ATN, ttype int, target ATNState, arg1, arg2, arg3 int, sets []*IntervalSet, states []ATNState) (Transition, error) {
	switch ttype {
	case wireTransitionEpsilon:
		return NewEpsilonTransition(target, -1), nil
	case wireTransitionRange:
		if arg3 != 0 {
			return NewRangeTransition(target, TokenEOF, TokenEOF), nil
		}
		return NewRangeTransition(target, arg1, arg2), nil
	case wireTransitionRule:
		// target is the callee's RuleStartState; arg1=ruleIndex,
		// arg2=precedence, arg3=follow-state index (where control resumes
		// after the call returns).
		return NewRuleTransition(target, arg1, arg2, states[arg3]), nil
	case wireTransitionPredicate:
		return NewPredicateTransition(target, arg1, arg2, arg3 != 0), nil
	case wireTransitionAtom:
		if arg3 != 0 {
			return NewAtomTransition(target, TokenEOF), nil
		}
		return NewAtomTransition(target, arg1), nil
	case wireTransitionAction:
		return NewActionTransition(target, arg1, arg2, arg3 != 0), nil
	case wireTransitionSet:
		return NewSetTransition(target, sets[arg1]), nil
	case wireTransitionNotSet:
		return NewNotSetTransition(target, sets[arg1]), nil
	case wireTransitionWildcard:
		return NewWildcardTransition(target), nil
	case wireTransitionPrecedence:
		return NewPrecedencePredicateTransition(target, arg1), nil
	default:
		return nil, &UnsupportedATNError{Reason: fmt.Sprintf("unknown transition tag %d", ttype)}
	}
}

func (d *AtnDeserializer) readLexerAction(r *atnReader) (LexerAction, error) {
	tag := r.next()
	data1 := r.next()
	data2 := r.next()

	switch tag {
	case wireLexerActionChannel:
		return NewLexerChannelAction(data1), nil
	case wireLexerActionCustom:
		return NewLexerCustomAction(data1, data2), nil
	case wireLexerActionMode:
		return NewLexerModeAction(data1), nil
	case wireLexerActionMore:
		return NewLexerMoreAction(), nil
	case wireLexerActionPopMode:
		return NewLexerPopModeAction(), nil
	case wireLexerActionPushMode:
		return NewLexerPushModeAction(data1), nil
	case wireLexerActionSkip:
		return NewLexerSkipAction(), nil
	case wireLexerActionType:
		t := data1
		if t == 0xFFFF {
			t = -1
		}
		return NewLexerTypeAction(t), nil
	default:
		return nil, &UnsupportedATNError{Reason: fmt.Sprintf("unknown lexer action tag %d", tag)}
	}
}

// markPrecedenceDecisions implements spec.md §4.1 step 11: every
// StarLoopEntry in a left-recursive rule whose last transition leads to a
// LoopEnd whose sole outgoing target is a RuleStop is flagged as the
// decision that governs whether the left-recursive loop continues.
func markPrecedenceDecisions(atn *ATN) {
	for _, s := range atn.DecisionToState {
		sle, ok := s.(*StarLoopEntryState)
		if !ok {
			continue
		}
		if !atn.ruleToStartState[sle.GetRuleIndex()].IsLeftRecursiveRule {
			continue
		}
		transitions := sle.GetTransitions()
		if len(transitions) == 0 {
			continue
		}
		last := transitions[len(transitions)-1].Target()
		loopEnd, ok := last.(*LoopEndState)
		if !ok {
			continue
		}
		if len(loopEnd.GetTransitions()) != 1 {
			continue
		}
		if _, ok := loopEnd.GetTransitions()[0].Target().(*RuleStopState); ok {
			sle.IsPrecedenceDecision = true
		}
	}
}

// verifyATN checks the structural invariants spec.md §4.1 lists, returning
// InconsistentATNError for the first violation found.
func verifyATN(atn *ATN) error {
	for _, s := range atn.states {
		if s == nil {
			continue
		}
		switch st := s.(type) {
		case *PlusBlockStartState:
			if st.LoopBackState == nil {
				return &InconsistentATNError{Reason: fmt.Sprintf("PlusBlockStartState %d missing loopBackState", st.GetStateNumber())}
			}
		case *StarLoopEntryState:
			if st.LoopBackState == nil {
				return &InconsistentATNError{Reason: fmt.Sprintf("StarLoopEntryState %d missing loopBackState", st.GetStateNumber())}
			}
			ts := st.GetTransitions()
			if len(ts) != 2 {
				return &InconsistentATNError{Reason: fmt.Sprintf("StarLoopEntryState %d must have exactly two transitions", st.GetStateNumber())}
			}
			_, firstStar := ts[0].Target().(*StarBlockStartState)
			_, secondLoopEnd := ts[1].Target().(*LoopEndState)
			_, firstLoopEnd := ts[0].Target().(*LoopEndState)
			_, secondStar := ts[1].Target().(*StarBlockStartState)
			greedyOK := firstStar && secondLoopEnd && !st.nonGreedy
			nonGreedyOK := firstLoopEnd && secondStar && st.nonGreedy
			if !greedyOK && !nonGreedyOK {
				return &InconsistentATNError{Reason: fmt.Sprintf("StarLoopEntryState %d transitions/greediness mismatch", st.GetStateNumber())}
			}
		case *BlockEndState:
			if st.StartState == nil {
				return &InconsistentATNError{Reason: fmt.Sprintf("BlockEndState %d missing startState", st.GetStateNumber())}
			}
		case *RuleStartState:
			if st.StopState == nil {
				return &InconsistentATNError{Reason: fmt.Sprintf("RuleStartState %d missing stopState", st.GetStateNumber())}
			}
		case *LoopEndState:
			if st.LoopBackState == nil {
				return &InconsistentATNError{Reason: fmt.Sprintf("LoopEndState %d missing loopBackState", st.GetStateNumber())}
			}
		}

		if _, isStop := s.(*RuleStopState); isStop {
			continue
		}
		if _, isDecision := s.(DecisionState); isDecision {
			continue
		}
		if s.EpsilonOnlyTransitions() {
			continue
		}
		if len(s.GetTransitions()) > 1 {
			return &InconsistentATNError{Reason: fmt.Sprintf("state %d has more than one outgoing non-epsilon transition", s.GetStateNumber())}
		}
	}
	return nil
}

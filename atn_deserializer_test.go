// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// wireBuilder assembles a serialized ATN payload word-by-word, applying the
// same +2/wraparound element transform AtnDeserializer expects (spec.md §4.1,
// §6). There being no compiled fixture available (the Ruby original_source
// retrieval came back empty), this constructs one by hand to exercise
// Deserialize end to end.
type wireBuilder struct {
	words []uint16
}

func (w *wireBuilder) raw(v int) { w.words = append(w.words, uint16(v)) }

func (w *wireBuilder) put(v int) {
	switch v {
	case 65534:
		w.words = append(w.words, 0)
	case 65535:
		w.words = append(w.words, 1)
	default:
		w.words = append(w.words, uint16(v+2))
	}
}

func (w *wireBuilder) putUUID(id uuid.UUID) {
	for i := 0; i < 8; i++ {
		lo := int(id[i*2])
		hi := int(id[i*2+1])
		w.put(lo | hi<<8)
	}
}

// buildIDWsPayload encodes a two-rule lexer grammar equivalent to:
//
//	ID: [a-zA-Z]+ ;
//	WS: [ \t]+ -> skip ;
//
// with every section in the exact order Deserialize reads it.
func buildIDWsPayload(t *testing.T) []uint16 {
	t.Helper()
	w := &wireBuilder{}

	w.raw(SerializedATNVersion)
	w.putUUID(baseSerializedUUID)
	w.put(int(ATNTypeLexer))
	w.put(5) // maxTokenType

	// --- states ---
	// 0 TokensStartState, ruleIndex -1
	// 1 RuleStartState (ID, rule 0)      2 RuleStopState (ID)
	// 3 PlusBlockStartState (ID, end=5)  4 Basic (ID body)
	// 5 BlockEndState (ID)               6 PlusLoopbackState (ID)
	// 7 LoopEndState (ID, loopBack=6)
	// 8 RuleStartState (WS, rule 1)      9 RuleStopState (WS)
	// 10 PlusBlockStartState (WS,end=12) 11 Basic (WS body)
	// 12 BlockEndState (WS)              13 PlusLoopbackState (WS)
	// 14 LoopEndState (WS, loopBack=13)
	w.put(15) // state count

	putState := func(tag, ruleIndex int, extra ...int) {
		w.put(tag)
		if ruleIndex < 0 {
			w.put(0xFFFF)
		} else {
			w.put(ruleIndex)
		}
		for _, e := range extra {
			w.put(e)
		}
	}

	putState(wireStateTokenStart, -1)       // 0
	putState(wireStateRuleStart, 0)         // 1
	putState(wireStateRuleStop, 0)          // 2
	putState(wireStatePlusBlockStart, 0, 5) // 3, endIdx=5
	putState(wireStateBasic, 0)             // 4
	putState(wireStateBlockEnd, 0)          // 5
	putState(wireStatePlusLoopBack, 0)      // 6
	putState(wireStateLoopEnd, 0, 6)        // 7, loopBackIdx=6
	putState(wireStateRuleStart, 1)         // 8
	putState(wireStateRuleStop, 1)          // 9
	putState(wireStatePlusBlockStart, 1, 12) // 10, endIdx=12
	putState(wireStateBasic, 1)             // 11
	putState(wireStateBlockEnd, 1)          // 12
	putState(wireStatePlusLoopBack, 1)      // 13
	putState(wireStateLoopEnd, 1, 13)       // 14, loopBackIdx=13

	// --- non-greedy / precedence decision lists (both empty) ---
	w.put(0)
	w.put(0)

	// --- rules ---
	w.put(2)
	w.put(1) // rule 0 start state index
	w.put(4) // rule 0 token type (ID)
	w.put(8) // rule 1 start state index
	w.put(5) // rule 1 token type (WS)

	// --- modes ---
	w.put(1)
	w.put(0) // TokensStartState index

	// --- sets (16-bit) ---
	w.put(2) // two sets
	// set 0: ID charset, {65..90, 97..122}
	w.put(2) // interval count
	w.put(0) // containsEOF
	w.put(65)
	w.put(90)
	w.put(97)
	w.put(122)
	// set 1: WS charset, {9..9, 32..32}
	w.put(2)
	w.put(0)
	w.put(9)
	w.put(9)
	w.put(32)
	w.put(32)

	// --- edges ---
	type edge struct{ src, trg, ttype, a1, a2, a3 int }
	edges := []edge{
		{0, 1, wireTransitionEpsilon, 0, 0, 0},
		{0, 8, wireTransitionEpsilon, 0, 0, 0},

		{1, 3, wireTransitionEpsilon, 0, 0, 0},
		{3, 4, wireTransitionEpsilon, 0, 0, 0},
		{4, 5, wireTransitionSet, 0, 0, 0},
		{5, 6, wireTransitionEpsilon, 0, 0, 0},
		{6, 3, wireTransitionEpsilon, 0, 0, 0},
		{6, 7, wireTransitionEpsilon, 0, 0, 0},
		{7, 2, wireTransitionEpsilon, 0, 0, 0},

		{8, 10, wireTransitionAction, 1, 0, 0},
		{10, 11, wireTransitionEpsilon, 0, 0, 0},
		{11, 12, wireTransitionSet, 1, 0, 0},
		{12, 13, wireTransitionEpsilon, 0, 0, 0},
		{13, 10, wireTransitionEpsilon, 0, 0, 0},
		{13, 14, wireTransitionEpsilon, 0, 0, 0},
		{14, 9, wireTransitionEpsilon, 0, 0, 0},
	}
	w.put(len(edges))
	for _, e := range edges {
		w.put(e.src)
		w.put(e.trg)
		w.put(e.ttype)
		w.put(e.a1)
		w.put(e.a2)
		w.put(e.a3)
	}

	// --- decisions ---
	decisions := []int{0, 3, 6, 10, 13}
	w.put(len(decisions))
	for _, d := range decisions {
		w.put(d)
	}

	// --- lexer actions ---
	w.put(1)
	w.put(wireLexerActionSkip)
	w.put(0)
	w.put(0)

	return w.words
}

func TestDeserializeBuildsConsistentGraph(t *testing.T) {
	data := buildIDWsPayload(t)

	atn, err := NewAtnDeserializer().Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, ATNTypeLexer, atn.GrammarType())
	require.Equal(t, 5, atn.GetMaxTokenType())
	require.Equal(t, 15, atn.NumStates())
	require.Equal(t, 1, atn.NumModes())

	idStart := atn.GetRuleToStartState(0)
	require.NotNil(t, idStart.StopState)
	require.Same(t, atn.GetRuleToStopState(0), idStart.StopState)

	wsStart := atn.GetRuleToStartState(1)
	require.NotNil(t, wsStart.StopState)

	plusStartID, ok := atn.GetState(3).(*PlusBlockStartState)
	require.True(t, ok)
	require.NotNil(t, plusStartID.LoopBackState)
	require.Same(t, atn.GetState(6), plusStartID.LoopBackState)
	require.Same(t, atn.GetState(5), plusStartID.EndState)
	require.Same(t, plusStartID, plusStartID.EndState.StartState)

	loopEndID, ok := atn.GetState(7).(*LoopEndState)
	require.True(t, ok)
	require.Same(t, atn.GetState(6), loopEndID.LoopBackState)

	require.Equal(t, 1, len(atn.lexerActions))
	skip, ok := atn.LexerAction(0).(*LexerSkipAction)
	require.True(t, ok)
	_ = skip
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	w := &wireBuilder{}
	w.raw(SerializedATNVersion + 1)
	_, err := NewAtnDeserializer().Deserialize(w.words)
	require.Error(t, err)
	require.IsType(t, &UnsupportedATNError{}, err)
}

func TestDeserializeRejectsUnknownUUID(t *testing.T) {
	w := &wireBuilder{}
	w.raw(SerializedATNVersion)
	w.putUUID(uuid.New())
	_, err := NewAtnDeserializer().Deserialize(w.words)
	require.Error(t, err)
	require.IsType(t, &UnsupportedATNError{}, err)
}

func TestDeserializeAndSimulatorAgree(t *testing.T) {
	data := buildIDWsPayload(t)
	atn, err := NewAtnDeserializer().Deserialize(data)
	require.NoError(t, err)

	sim := NewLexerATNSimulator(atn, NewSharedContextCache())
	input := NewRuneStream("ab cd")
	host := NewBaseHost()

	tt, err := sim.Match(input, DefaultMode, host)
	require.NoError(t, err)
	require.Equal(t, 4, tt) // ID
	require.Equal(t, 2, input.Index())

	host = NewBaseHost()
	tt, err = sim.Match(input, DefaultMode, host)
	require.NoError(t, err)
	require.Equal(t, 5, tt) // WS
	require.True(t, host.ConsumeSkip())
	require.Equal(t, 3, input.Index())
}

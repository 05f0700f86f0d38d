// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLexerActionExecutorEmptyIsNil(t *testing.T) {
	require.Nil(t, NewLexerActionExecutor(nil))
	require.Nil(t, NewLexerActionExecutor([]LexerAction{}))
}

func TestLexerActionExecutorAppendOnNil(t *testing.T) {
	var e *LexerActionExecutor
	appended := e.Append(NewLexerSkipAction())
	require.NotNil(t, appended)
	require.Equal(t, 1, len(appended.Actions()))
}

func TestLexerActionExecutorAppendPreservesOrder(t *testing.T) {
	e := NewLexerActionExecutor([]LexerAction{NewLexerTypeAction(5)})
	e2 := e.Append(NewLexerChannelAction(1))
	require.Equal(t, 1, len(e.Actions())) // original untouched
	require.Equal(t, 2, len(e2.Actions()))
	require.True(t, e2.Actions()[0].Equals(NewLexerTypeAction(5)))
	require.True(t, e2.Actions()[1].Equals(NewLexerChannelAction(1)))
}

func TestLexerActionExecutorEqualsByContent(t *testing.T) {
	a := NewLexerActionExecutor([]LexerAction{NewLexerTypeAction(5), NewLexerSkipAction()})
	b := NewLexerActionExecutor([]LexerAction{NewLexerTypeAction(5), NewLexerSkipAction()})
	require.NotSame(t, a, b)
	require.True(t, a.Equals(b))

	c := NewLexerActionExecutor([]LexerAction{NewLexerTypeAction(6), NewLexerSkipAction()})
	require.False(t, a.Equals(c))
}

func TestLexerActionExecutorEqualsNilSymmetry(t *testing.T) {
	var a, b *LexerActionExecutor
	require.True(t, a.Equals(b))

	c := NewLexerActionExecutor([]LexerAction{NewLexerSkipAction()})
	require.False(t, a.Equals(c))
	require.False(t, c.Equals(a))
}

func TestFixOffsetBeforeMatchIsIdentityWithoutPositionDependentActions(t *testing.T) {
	e := NewLexerActionExecutor([]LexerAction{NewLexerSkipAction(), NewLexerTypeAction(5)})
	fixed := e.FixOffsetBeforeMatch(3)
	require.Same(t, e, fixed)
}

func TestFixOffsetBeforeMatchWrapsCustomActionsOnce(t *testing.T) {
	e := NewLexerActionExecutor([]LexerAction{NewLexerCustomAction(0, 1)})
	fixed := e.FixOffsetBeforeMatch(4)
	require.NotSame(t, e, fixed)
	require.Equal(t, 1, len(fixed.Actions()))

	indexed, ok := fixed.Actions()[0].(*LexerIndexedCustomAction)
	require.True(t, ok)
	require.Equal(t, 4, indexed.Offset)

	refixed := fixed.FixOffsetBeforeMatch(4)
	require.Same(t, fixed, refixed)
}

func TestFixOffsetBeforeMatchOnNilIsNil(t *testing.T) {
	var e *LexerActionExecutor
	require.Nil(t, e.FixOffsetBeforeMatch(1))
}

// recordingHost tracks which custom-action callbacks fired; it does not record
// the input position (pos is always -1), so the test checks Execute's
// seek/restore bookkeeping through input.Index() after the call.
type recordingHost struct {
	*BaseHost
	actionCalls []struct{ ruleIndex, actionIndex, pos int }
}

func newRecordingHost() *recordingHost {
	return &recordingHost{BaseHost: NewBaseHost()}
}

func (h *recordingHost) Action(ruleIndex, actionIndex int) {
	h.actionCalls = append(h.actionCalls, struct{ ruleIndex, actionIndex, pos int }{ruleIndex, actionIndex, -1})
}

func TestExecuteRestoresInputPosition(t *testing.T) {
	input := NewRuneStream("abcdef")
	input.Seek(4)

	executor := NewLexerActionExecutor([]LexerAction{
		NewLexerIndexedCustomAction(0, NewLexerCustomAction(0, 0)),
		NewLexerTypeAction(9),
	})
	host := newRecordingHost()
	executor.Execute(host, input, 1)

	require.Equal(t, 1, len(host.actionCalls))
	require.Equal(t, 4, input.Index()) // restored to position at call time
	require.Equal(t, 9, host.GetType())
}

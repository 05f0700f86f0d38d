// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// LexerActionExecutor is an immutable ordered list of LexerActions queued by
// one run through closure, together with a precomputed hash so executors can
// be compared and deduplicated cheaply when stored on DfaStates (spec.md §3).
type LexerActionExecutor struct {
	actions    []LexerAction
	cachedHash int
}

// NewLexerActionExecutor returns an executor over actions, or nil if actions
// is empty (mirrors the teacher's convention of representing "no actions
// queued" as a nil *LexerActionExecutor rather than an empty one, so the
// common case allocates nothing).
func NewLexerActionExecutor(actions []LexerAction) *LexerActionExecutor {
	if len(actions) == 0 {
		return nil
	}
	h := murmurStart()
	for _, a := range actions {
		h = murmurUpdate(h, lexerActionHash(a))
	}
	h = murmurFinish(h, len(actions))
	return &LexerActionExecutor{actions: actions, cachedHash: h}
}

func lexerActionHash(a LexerAction) int {
	h := murmurStart()
	h = murmurUpdate(h, int(a.Kind()))
	switch v := a.(type) {
	case *LexerChannelAction:
		h = murmurUpdate(h, v.Channel)
	case *LexerCustomAction:
		h = murmurUpdate(h, v.RuleIndex)
		h = murmurUpdate(h, v.ActionIndex)
	case *LexerModeAction:
		h = murmurUpdate(h, v.Mode)
	case *LexerPushModeAction:
		h = murmurUpdate(h, v.Mode)
	case *LexerTypeAction:
		h = murmurUpdate(h, v.Type)
	case *LexerIndexedCustomAction:
		h = murmurUpdate(h, v.Offset)
		h = murmurUpdate(h, lexerActionHash(v.Action))
	}
	return murmurFinish(h, 2)
}

// Append builds a new executor containing executor's actions (if any)
// followed by action. A nil executor is treated as empty, so
// Append(nil, x) == NewLexerActionExecutor([]LexerAction{x}).
func (e *LexerActionExecutor) Append(action LexerAction) *LexerActionExecutor {
	var existing []LexerAction
	if e != nil {
		existing = e.actions
	}
	next := make([]LexerAction, len(existing)+1)
	copy(next, existing)
	next[len(existing)] = action
	return NewLexerActionExecutor(next)
}

// Actions exposes the ordered action list; nil receiver yields nil.
func (e *LexerActionExecutor) Actions() []LexerAction {
	if e == nil {
		return nil
	}
	return e.actions
}

// Equals reports element-wise action equality; two nil executors are equal.
func (e *LexerActionExecutor) Equals(other *LexerActionExecutor) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	if e.cachedHash != other.cachedHash || len(e.actions) != len(other.actions) {
		return false
	}
	for i := range e.actions {
		if !e.actions[i].Equals(other.actions[i]) {
			return false
		}
	}
	return true
}

func (e *LexerActionExecutor) hash() int {
	if e == nil {
		return murmurFinish(murmurStart(), 0)
	}
	return e.cachedHash
}

// FixOffsetBeforeMatch wraps every position-dependent action that is not
// already an IndexedCustom with its input offset relative to the token
// start, so that the resulting executor is safe to cache on a DFA accept
// state regardless of where in the input that state is later reached
// (spec.md §4.3). If no action needs wrapping, the same executor is
// returned (identity), which keeps two occurrences of the same trailing
// action at the same relative offset comparing equal.
func (e *LexerActionExecutor) FixOffsetBeforeMatch(offset int) *LexerActionExecutor {
	if e == nil {
		return nil
	}
	var updated []LexerAction
	for i, a := range e.actions {
		if a.IsPositionDependent() {
			if _, already := a.(*LexerIndexedCustomAction); !already {
				if updated == nil {
					updated = make([]LexerAction, len(e.actions))
					copy(updated, e.actions)
				}
				updated[i] = NewLexerIndexedCustomAction(offset, a)
			}
		}
	}
	if updated == nil {
		return e
	}
	return NewLexerActionExecutor(updated)
}

// Execute runs every queued action in list order against host, seeking input
// as needed for position-dependent actions, and always restores input to its
// original position (stopIndex, i.e. input.Index() at call time) once done
// (spec.md §4.3 "accept"/"action execution").
func (e *LexerActionExecutor) Execute(host Host, input CharStream, startIndex int) {
	if e == nil {
		return
	}
	requiresSeek := false
	stopIndex := input.Index()
	defer func() {
		if requiresSeek {
			input.Seek(stopIndex)
		}
	}()

	for _, a := range e.actions {
		toExecute := a
		if idx, ok := a.(*LexerIndexedCustomAction); ok {
			input.Seek(startIndex + idx.Offset)
			requiresSeek = input.Index() != stopIndex
			idx.Action.Execute(host, input, startIndex)
			continue
		}
		if toExecute.IsPositionDependent() {
			input.Seek(stopIndex)
			requiresSeek = false
		}
		toExecute.Execute(host, input, startIndex)
	}
}

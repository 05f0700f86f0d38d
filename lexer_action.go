// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// LexerActionKind tags the variant of a LexerAction (spec.md §3).
type LexerActionKind int

const (
	LexerActionChannel LexerActionKind = iota
	LexerActionCustom
	LexerActionMode
	LexerActionMore
	LexerActionPopMode
	LexerActionPushMode
	LexerActionSkip
	LexerActionType
	LexerActionIndexedCustom
)

// LexerAction is a single queued side effect a lexer rule triggers on
// accept — a channel/mode/type assignment, a mode push/pop, skip/more, or a
// callback into the generated lexer's custom action table. Execute applies
// the action to host against input, assuming the input is already positioned
// appropriately (the executor is responsible for seeking beforehand for
// position-dependent actions; see LexerActionExecutor).
type LexerAction interface {
	Kind() LexerActionKind
	// IsPositionDependent is true for Custom actions (and anything wrapping
	// one): their effect depends on where in the matched text they run, so
	// their execution offset must be frozen before the action can be cached
	// inside a DFA state (spec.md §4.3 fixOffsetBeforeMatch).
	IsPositionDependent() bool
	Execute(host Host, input CharStream, startIndex int)
	Equals(other LexerAction) bool
}

// LexerChannelAction sets the channel of the token about to be emitted.
type LexerChannelAction struct{ Channel int }

func NewLexerChannelAction(channel int) *LexerChannelAction { return &LexerChannelAction{channel} }
func (*LexerChannelAction) Kind() LexerActionKind           { return LexerActionChannel }
func (*LexerChannelAction) IsPositionDependent() bool       { return false }
func (a *LexerChannelAction) Execute(host Host, _ CharStream, _ int) { host.SetChannel(a.Channel) }
func (a *LexerChannelAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerChannelAction)
	return ok && o.Channel == a.Channel
}

// LexerCustomAction calls back into the generated lexer's Action(ruleIndex,
// actionIndex) method. It is always position-dependent.
type LexerCustomAction struct {
	RuleIndex, ActionIndex int
}

func NewLexerCustomAction(ruleIndex, actionIndex int) *LexerCustomAction {
	return &LexerCustomAction{ruleIndex, actionIndex}
}
func (*LexerCustomAction) Kind() LexerActionKind     { return LexerActionCustom }
func (*LexerCustomAction) IsPositionDependent() bool { return true }
func (a *LexerCustomAction) Execute(host Host, _ CharStream, _ int) {
	host.Action(a.RuleIndex, a.ActionIndex)
}
func (a *LexerCustomAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerCustomAction)
	return ok && o.RuleIndex == a.RuleIndex && o.ActionIndex == a.ActionIndex
}

// LexerModeAction replaces the current lexer mode outright.
type LexerModeAction struct{ Mode int }

func NewLexerModeAction(mode int) *LexerModeAction { return &LexerModeAction{mode} }
func (*LexerModeAction) Kind() LexerActionKind     { return LexerActionMode }
func (*LexerModeAction) IsPositionDependent() bool { return false }
func (a *LexerModeAction) Execute(host Host, _ CharStream, _ int) { host.SetMode(a.Mode) }
func (a *LexerModeAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerModeAction)
	return ok && o.Mode == a.Mode
}

// LexerMoreAction marks the current match as "more": don't emit a token yet,
// continue accumulating text for the next match.
type LexerMoreAction struct{}

func NewLexerMoreAction() *LexerMoreAction        { return &LexerMoreAction{} }
func (*LexerMoreAction) Kind() LexerActionKind     { return LexerActionMore }
func (*LexerMoreAction) IsPositionDependent() bool { return false }
func (*LexerMoreAction) Execute(host Host, _ CharStream, _ int) { host.More() }
func (*LexerMoreAction) Equals(other LexerAction) bool {
	_, ok := other.(*LexerMoreAction)
	return ok
}

// LexerPopModeAction pops the mode stack.
type LexerPopModeAction struct{}

func NewLexerPopModeAction() *LexerPopModeAction   { return &LexerPopModeAction{} }
func (*LexerPopModeAction) Kind() LexerActionKind   { return LexerActionPopMode }
func (*LexerPopModeAction) IsPositionDependent() bool { return false }
func (*LexerPopModeAction) Execute(host Host, _ CharStream, _ int) { host.PopMode() }
func (*LexerPopModeAction) Equals(other LexerAction) bool {
	_, ok := other.(*LexerPopModeAction)
	return ok
}

// LexerPushModeAction pushes the current mode and switches to Mode.
type LexerPushModeAction struct{ Mode int }

func NewLexerPushModeAction(mode int) *LexerPushModeAction { return &LexerPushModeAction{mode} }
func (*LexerPushModeAction) Kind() LexerActionKind         { return LexerActionPushMode }
func (*LexerPushModeAction) IsPositionDependent() bool     { return false }
func (a *LexerPushModeAction) Execute(host Host, _ CharStream, _ int) { host.PushMode(a.Mode) }
func (a *LexerPushModeAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerPushModeAction)
	return ok && o.Mode == a.Mode
}

// LexerSkipAction discards the matched text instead of emitting a token.
type LexerSkipAction struct{}

func NewLexerSkipAction() *LexerSkipAction          { return &LexerSkipAction{} }
func (*LexerSkipAction) Kind() LexerActionKind       { return LexerActionSkip }
func (*LexerSkipAction) IsPositionDependent() bool   { return false }
func (*LexerSkipAction) Execute(host Host, _ CharStream, _ int) { host.Skip() }
func (*LexerSkipAction) Equals(other LexerAction) bool {
	_, ok := other.(*LexerSkipAction)
	return ok
}

// LexerTypeAction overrides the token type about to be emitted.
type LexerTypeAction struct{ Type int }

func NewLexerTypeAction(t int) *LexerTypeAction    { return &LexerTypeAction{t} }
func (*LexerTypeAction) Kind() LexerActionKind     { return LexerActionType }
func (*LexerTypeAction) IsPositionDependent() bool { return false }
func (a *LexerTypeAction) Execute(host Host, _ CharStream, _ int) { host.SetType(a.Type) }
func (a *LexerTypeAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerTypeAction)
	return ok && o.Type == a.Type
}

// LexerIndexedCustomAction wraps a position-dependent action with the input
// offset (relative to the token's start index) at which it must run,
// computed once by LexerActionExecutor.fixOffsetBeforeMatch and then frozen
// forever — this is what lets executors with identical fixed action lists
// compare equal across different input positions of the same token length
// (spec.md §4.3).
type LexerIndexedCustomAction struct {
	Offset int
	Action LexerAction
}

func NewLexerIndexedCustomAction(offset int, action LexerAction) *LexerIndexedCustomAction {
	return &LexerIndexedCustomAction{offset, action}
}
func (*LexerIndexedCustomAction) Kind() LexerActionKind { return LexerActionIndexedCustom }
func (*LexerIndexedCustomAction) IsPositionDependent() bool { return true }
func (a *LexerIndexedCustomAction) Execute(host Host, input CharStream, startIndex int) {
	input.Seek(startIndex + a.Offset)
	a.Action.Execute(host, input, startIndex)
}
func (a *LexerIndexedCustomAction) Equals(other LexerAction) bool {
	o, ok := other.(*LexerIndexedCustomAction)
	return ok && o.Offset == a.Offset && a.Action.Equals(o.Action)
}

// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// Host is the small capability interface the simulator drives instead of
// depending on a concrete generated-lexer type (spec.md §6, §9 "Mutable host
// callbacks"). A generated lexer implements this directly; BaseHost is a
// ready-made implementation suitable for embedding.
type Host interface {
	// Sempred evaluates the ruleIndex/predIndex semantic predicate declared
	// in the grammar. localCtx is opaque to this package; it exists so a
	// generated lexer can thread whatever context its predicate body needs.
	Sempred(localCtx any, ruleIndex, predIndex int) bool
	// Action fires the ruleIndex/actionIndex custom action declared in the
	// grammar.
	Action(ruleIndex, actionIndex int)

	SetType(t int)
	GetType() int
	SetChannel(c int)
	GetChannel() int
	SetMode(m int)
	GetMode() int
	PushMode(m int)
	PopMode() int
	Skip()
	More()
}

// BaseHost is a ready-to-embed Host implementation holding the mutable
// fields the simulator reads and writes. Generated lexers that have no
// custom actions or predicates can use it directly; ones that do embed it
// and override Sempred/Action.
type BaseHost struct {
	Type      int
	Channel   int
	Mode      int
	ModeStack []int

	skipRequested bool
	moreRequested bool
}

// NewBaseHost returns a BaseHost in DefaultMode on TokenDefaultChannel.
func NewBaseHost() *BaseHost {
	return &BaseHost{Mode: DefaultMode, Channel: TokenDefaultChannel}
}

func (h *BaseHost) Sempred(_ any, _, _ int) bool { return true }
func (h *BaseHost) Action(_, _ int)              {}

func (h *BaseHost) SetType(t int)    { h.Type = t }
func (h *BaseHost) GetType() int     { return h.Type }
func (h *BaseHost) SetChannel(c int) { h.Channel = c }
func (h *BaseHost) GetChannel() int  { return h.Channel }
func (h *BaseHost) SetMode(m int)    { h.Mode = m }
func (h *BaseHost) GetMode() int     { return h.Mode }

func (h *BaseHost) PushMode(m int) {
	h.ModeStack = append(h.ModeStack, h.Mode)
	h.Mode = m
}

func (h *BaseHost) PopMode() int {
	if len(h.ModeStack) == 0 {
		return h.Mode
	}
	n := len(h.ModeStack) - 1
	h.Mode = h.ModeStack[n]
	h.ModeStack = h.ModeStack[:n]
	return h.Mode
}

func (h *BaseHost) Skip() { h.skipRequested = true }
func (h *BaseHost) More() { h.moreRequested = true }

// ConsumeSkip reports and clears a pending Skip request.
func (h *BaseHost) ConsumeSkip() bool {
	v := h.skipRequested
	h.skipRequested = false
	return v
}

// ConsumeMore reports and clears a pending More request.
func (h *BaseHost) ConsumeMore() bool {
	v := h.moreRequested
	h.moreRequested = false
	return v
}

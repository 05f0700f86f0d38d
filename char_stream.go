// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// EOF is the code point La returns once the stream is exhausted.
const EOF = -1

// CharStream is the bidirectional code-point stream contract the simulator
// consumes (spec.md §6). La must not advance the stream. Mark/Release pair
// like brackets; Seek to an earlier index must be O(1) and must not affect
// future La results.
type CharStream interface {
	// Index returns the zero-based index of the next code point to consume.
	Index() int
	// Size returns the total number of code points in the stream, if known.
	Size() int
	// La returns the code point k positions ahead (La(1) is the next code
	// point to be consumed), or EOF if that position is past the end.
	La(k int) int
	// Consume advances the stream by one code point.
	Consume()
	// Mark returns an opaque marker the stream may use to decide how long it
	// must keep buffered data; markers nest like brackets with Release.
	Mark() int
	// Release ends the buffering obligation started by the matching Mark.
	Release(marker int)
	// Seek moves the read position to index; seeking backward must be O(1).
	Seek(index int)
	// GetText returns the code points in [start, stop] inclusive as a string.
	GetText(start, stop int) string
}

// RuneStream is a CharStream over an in-memory []rune, the concrete stream
// type generated lexers hand to LexerATNSimulator.Match when reading an
// already-decoded Unicode source (spec.md §1 "a sequence of Unicode code
// points"). It is a supplemented (not teacher-derived) convenience: the
// spec's core only describes the CharStream contract and leaves concrete
// stream construction to the host.
type RuneStream struct {
	data  []rune
	pos   int
	marks int
}

// NewRuneStream returns a RuneStream over the runes of s.
func NewRuneStream(s string) *RuneStream {
	return &RuneStream{data: []rune(s)}
}

func (r *RuneStream) Index() int { return r.pos }
func (r *RuneStream) Size() int  { return len(r.data) }

func (r *RuneStream) La(k int) int {
	if k == 0 {
		return 0
	}
	idx := r.pos + k - 1
	if idx < 0 || idx >= len(r.data) {
		return EOF
	}
	return int(r.data[idx])
}

func (r *RuneStream) Consume() {
	if r.pos >= len(r.data) {
		panic("lexatn: cannot consume past EOF")
	}
	r.pos++
}

func (r *RuneStream) Mark() int {
	r.marks++
	return -r.marks
}

func (r *RuneStream) Release(marker int) {}

func (r *RuneStream) Seek(index int) { r.pos = index }

func (r *RuneStream) GetText(start, stop int) string {
	if stop < start {
		return ""
	}
	if stop >= len(r.data) {
		stop = len(r.data) - 1
	}
	if start < 0 {
		start = 0
	}
	if start > stop {
		return ""
	}
	return string(r.data[start : stop+1])
}

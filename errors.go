// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import "fmt"

// UnsupportedATNError is returned by AtnDeserializer when the payload's
// version or feature UUID is not one this runtime understands, or when a
// state/transition/action tag in the payload has no known decoding
// (spec.md §7).
type UnsupportedATNError struct {
	Reason string
}

func (e *UnsupportedATNError) Error() string {
	return fmt.Sprintf("lexatn: unsupported ATN: %s", e.Reason)
}

// InconsistentATNError is returned when post-deserialization structural
// verification (spec.md §4.1) finds a violated invariant. It always
// indicates a bug in the code generator that produced the payload, not a
// problem with the input being lexed.
type InconsistentATNError struct {
	Reason string
}

func (e *InconsistentATNError) Error() string {
	return fmt.Sprintf("lexatn: inconsistent ATN: %s", e.Reason)
}

// LexerNoViableAltError is raised by Match when no accept state was captured
// before the DFA/ATN walk reached a dead end. DeadEndConfigs is the config set
// of the last DFA state reached, from which the offending symbol has no
// transition, retained for host diagnostics (spec.md §6, §7).
type LexerNoViableAltError struct {
	StartIndex     int
	DeadEndConfigs *ATNConfigSet
}

func (e *LexerNoViableAltError) Error() string {
	return fmt.Sprintf("lexatn: no viable alternative at input index %d", e.StartIndex)
}

// illegalPredicateInLexer panics: a PrecedencePredicateTransition is a
// parser-only construct and lexer ATNs never legitimately contain one
// (spec.md §7). Encountering one during closure means the serialized ATN
// was built for a parser, not a lexer, which is a caller bug.
func illegalPredicateInLexer() {
	panic("lexatn: PrecedencePredicateTransition encountered in lexer closure (IllegalPredicateInLexer)")
}

// readOnlyMutation panics: an AtnConfigSet frozen by SetReadOnly was mutated.
// This can only happen from a bug in this package, since AtnConfigSets are
// frozen exactly when interned into a DfaState and never mutated afterward
// by correct code.
func readOnlyMutation() {
	panic("lexatn: attempt to mutate a read-only AtnConfigSet (ReadOnlyMutation)")
}

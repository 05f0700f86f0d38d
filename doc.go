// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

// Package lexatn is the adaptive LL(*) lexer runtime for an ANTLR-style
// parser generator: given a serialized ATN produced ahead of time by the
// generator, it turns a stream of Unicode code points into a stream of
// token types, growing a per-mode DFA on the fly as it goes.
//
// A generated lexer supplies three things: the serialized ATN bytes (fed to
// AtnDeserializer), a Host implementation answering Sempred/Action calls and
// exposing Type/Channel/Mode, and a CharStream over its input. Everything
// else — DFA construction and caching, prediction-context interning,
// closure/reach, predicate and action handling, longest-match arbitration —
// lives here.
package lexatn

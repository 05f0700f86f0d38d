// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// ATNType distinguishes the two grammar kinds a serialized ATN can describe.
// This runtime only ever walks the Lexer variant, but the constant is part of
// the wire format (spec.md §4.1 step 2) and is decoded regardless.
type ATNType int

const (
	ATNTypeLexer ATNType = iota
	ATNTypeParser
)

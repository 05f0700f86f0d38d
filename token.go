// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

// Reserved token type values. Generated lexers never emit TokenInvalidType;
// it exists so zero-valued Token fields are recognizably unset.
const (
	TokenInvalidType = 0
	TokenEpsilon     = -2
	TokenMinUserTokenType = 2
	TokenEOF         = -1
)

// Reserved channel values. Generated lexers may declare additional channels
// starting at TokenMinUserChannelValue.
const (
	TokenDefaultChannel = 0
	TokenHiddenChannel  = 1
	TokenMinUserChannelValue = 2
)

// DefaultMode is the mode every LexerATNSimulator starts in.
const DefaultMode = 0

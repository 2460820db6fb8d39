// token.go - token identifiers and the primitive table
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tokenizer

import (
	"strconv"
	"strings"
)

// Token identifies a single syntactic unit.  Values below EOF are
// literal characters, values from EOF to Def are the built-in
// primitives, and all larger values are compound tokens which are
// allocated while the input is read.
type Token uint16

// The primitive tokens.
const (
	EOF        Token = 256 + iota // end of input
	Escape                        // the escape character '\'
	BeginGroup                    // '{'
	EndGroup                      // '}'
	Arg1                          // argument references '\1' to '\9'
	Arg2
	Arg3
	Arg4
	Arg5
	Arg6
	Arg7
	Arg8
	Arg9
	Def // the macro definition directive '\def'

	firstCompound
)

// MaxCompound is the largest number of compound tokens which can be
// represented.
const MaxCompound = 1<<16 - 1 - int(firstCompound)

var primitives = []struct {
	tok      Token
	spelling []Token
}{
	{EOF, []Token{'E', 'O', 'F'}},
	{Escape, []Token{'\\'}},
	{BeginGroup, []Token{'{'}},
	{EndGroup, []Token{'}'}},
	{Arg1, []Token{'\\', '1'}},
	{Arg2, []Token{'\\', '2'}},
	{Arg3, []Token{'\\', '3'}},
	{Arg4, []Token{'\\', '4'}},
	{Arg5, []Token{'\\', '5'}},
	{Arg6, []Token{'\\', '6'}},
	{Arg7, []Token{'\\', '7'}},
	{Arg8, []Token{'\\', '8'}},
	{Arg9, []Token{'\\', '9'}},
	{Def, []Token{Escape, 'd', 'e', 'f'}},
}

// IsLiteral returns true if tok stands for a single character.
func (tok Token) IsLiteral() bool {
	return tok < EOF
}

// IsCompound returns true if tok was allocated dynamically.
func (tok Token) IsCompound() bool {
	return tok >= firstCompound
}

// ArgIndex returns the zero-based index of an argument reference
// token, or -1 if tok is not an argument reference.
func (tok Token) ArgIndex() int {
	if tok < Arg1 || tok > Arg9 {
		return -1
	}
	return int(tok - Arg1)
}

// ArgRef returns the token referring to the i-th macro argument,
// where i is zero-based.
func ArgRef(i int) Token {
	if i < 0 || i > 8 {
		panic("invalid argument index " + strconv.Itoa(i))
	}
	return Arg1 + Token(i)
}

func (tok Token) String() string {
	switch {
	case tok.IsLiteral():
		return strconv.QuoteRune(rune(tok))
	case tok == EOF:
		return "EOF"
	case tok == Escape:
		return "\\"
	case tok == BeginGroup:
		return "{"
	case tok == EndGroup:
		return "}"
	case tok.ArgIndex() >= 0:
		return "\\" + strconv.Itoa(tok.ArgIndex()+1)
	case tok == Def:
		return "\\def"
	}
	return "#" + strconv.Itoa(int(tok))
}

// FormatTokens renders a token sequence as text, the way it would
// appear in the input.  Spellings of control sequences start with the
// Escape token and are rendered with a leading backslash.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.IsLiteral() {
			b.WriteByte(byte(tok))
		} else {
			b.WriteString(tok.String())
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

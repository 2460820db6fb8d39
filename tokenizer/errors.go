// errors.go - error classes reported by the tokenizer
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

import "errors"

// Errors returned by the tokenizer.  The tokenizer wraps these into a
// *scanner.ParseError which carries the input position; use
// errors.Is() to test for a specific class.
var (
	ErrUnterminatedGroup          = errors.New("unterminated group")
	ErrUndefinedArgumentReference = errors.New("undefined argument reference")
	ErrMalformedDefine            = errors.New("malformed \\def")
	ErrMissingArgument            = errors.New("missing macro argument")
	ErrUndefinedMacro             = errors.New("undefined control sequence")
	ErrArenaExhausted             = errors.New("token arena exhausted")
	ErrBufferExhausted            = errors.New("token buffer exhausted")
	ErrMacroTableExhausted        = errors.New("macro table exhausted")
	ErrIdentifierTooLong          = errors.New("control sequence name too long")
	ErrGroupTooLong               = errors.New("group too long")
	ErrExpansionLimit             = errors.New("too many macro expansions")
)

// buffer.go - the lookahead window of pending tokens
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

import "slices"

// buffer holds the tokens which have been scanned but not yet
// consumed.  Tokens before pos have been consumed and are discarded
// by compact().
type buffer struct {
	toks []Token
	pos  int
	max  int
}

func (b *buffer) empty() bool {
	return b.pos == len(b.toks)
}

// pending returns the number of unconsumed tokens.
func (b *buffer) pending() int {
	return len(b.toks) - b.pos
}

func (b *buffer) peek() Token {
	return b.toks[b.pos]
}

func (b *buffer) advance() {
	b.pos++
}

func (b *buffer) push(tok Token) error {
	if b.pending() >= b.max {
		return ErrBufferExhausted
	}
	b.toks = append(b.toks, tok)
	return nil
}

// compact discards the consumed tokens once more than threshold of
// them have accumulated.
func (b *buffer) compact(threshold int) {
	if b.pos <= threshold {
		return
	}
	n := copy(b.toks, b.toks[b.pos:])
	b.toks = b.toks[:n]
	b.pos = 0
}

// splice replaces the tokens in b.toks[start:b.pos] by repl and moves
// the read position back to start, so that the replacement is read
// next.
func (b *buffer) splice(start int, repl []Token) error {
	if len(b.toks)-b.pos+len(repl) > b.max {
		return ErrBufferExhausted
	}
	b.toks = slices.Replace(b.toks, start, b.pos, repl...)
	b.pos = start
	return nil
}

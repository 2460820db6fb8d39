// arena.go - append-only storage for token spellings
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
	"encoding/binary"
)

type entryKind uint8

const (
	kindLiteral entryKind = iota
	kindPrimitive
	kindName  // a control sequence name, spelled with a leading Escape
	kindGroup // the contents of a {...} group or a macro body
)

type entry struct {
	pos, len int
	kind     entryKind
}

// arena stores the spelling of every token.  Entries are never
// modified once written.  Compound tokens with identical kind and
// spelling share one identifier, which is allocated in first-seen
// order.
type arena struct {
	pool    []Token
	entries []entry
	index   map[string]Token

	maxPool     int
	maxCompound int
}

func newArena(lim *Limits) *arena {
	a := &arena{
		pool:        make([]Token, 0, primitiveSize),
		entries:     make([]entry, 0, int(firstCompound)+64),
		index:       make(map[string]Token),
		maxPool:     lim.ArenaSize,
		maxCompound: lim.MaxCompound,
	}
	for i := 0; i < 256; i++ {
		a.entries = append(a.entries, entry{pos: len(a.pool), len: 1})
		a.pool = append(a.pool, Token(i))
	}
	for _, p := range primitives {
		a.entries = append(a.entries, entry{
			pos:  len(a.pool),
			len:  len(p.spelling),
			kind: kindPrimitive,
		})
		a.pool = append(a.pool, p.spelling...)
	}

	// "\def" is found by the same lookup as the user-defined names.
	a.index[indexKey(kindName, primitives[Def-EOF].spelling)] = Def
	return a
}

// Spelling returns the token sequence stored for tok.  The returned
// slice must not be modified.
func (a *arena) Spelling(tok Token) []Token {
	e := a.entries[tok]
	return a.pool[e.pos : e.pos+e.len : e.pos+e.len]
}

func (a *arena) isName(tok Token) bool {
	return int(tok) < len(a.entries) && a.entries[tok].kind == kindName
}

func (a *arena) isGroup(tok Token) bool {
	return int(tok) < len(a.entries) && a.entries[tok].kind == kindGroup
}

// Len returns the number of tokens allocated so far, including the
// literals and primitives.
func (a *arena) Len() int {
	return len(a.entries)
}

// Lookup returns the token previously interned for the given spelling.
func (a *arena) Lookup(kind entryKind, seq []Token) (Token, bool) {
	tok, ok := a.index[indexKey(kind, seq)]
	return tok, ok
}

// Intern returns the token for the given spelling, allocating a new
// compound token if the spelling has not been seen before.  The
// contents of seq are copied.
func (a *arena) Intern(kind entryKind, seq []Token) (Token, error) {
	key := indexKey(kind, seq)
	if tok, ok := a.index[key]; ok {
		return tok, nil
	}

	if len(a.entries)-int(firstCompound) >= a.maxCompound {
		return 0, ErrArenaExhausted
	}
	if len(a.pool)+len(seq) > a.maxPool {
		return 0, ErrArenaExhausted
	}

	tok := Token(len(a.entries))
	a.entries = append(a.entries, entry{
		pos:  len(a.pool),
		len:  len(seq),
		kind: kind,
	})
	a.pool = append(a.pool, seq...)
	a.index[key] = tok
	return tok, nil
}

func indexKey(kind entryKind, seq []Token) string {
	buf := make([]byte, 1+2*len(seq))
	buf[0] = byte(kind)
	for i, tok := range seq {
		binary.LittleEndian.PutUint16(buf[1+2*i:], uint16(tok))
	}
	return string(buf)
}

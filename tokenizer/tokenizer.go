// tokenizer.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
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
	"github.com/aslrousta/mex/scanner"
)

// A Tokenizer splits its input into tokens and expands user-defined
// macros in the process.  A Tokenizer holds all state of one run and
// must not be used concurrently.
type Tokenizer struct {
	scanner.Scanner

	limits Limits
	arena  *arena
	macros *macroTable
	buf    buffer

	atStart    bool
	sawEOF     bool
	expansions int
}

// NewTokenizer creates and initialises a new Tokenizer.  If lim is
// nil, DefaultLimits() is used.  The limits are not validated, use
// lim.Validate() for this.
func NewTokenizer(lim *Limits) *Tokenizer {
	if lim == nil {
		def := DefaultLimits()
		lim = &def
	}
	p := &Tokenizer{
		limits:  *lim,
		arena:   newArena(lim),
		macros:  newMacroTable(lim.MaxMacros),
		atStart: true,
	}
	p.buf.max = lim.BufferSize
	return p
}

type state int

const (
	stateReady state = iota
	stateDefine
	stateExpand
)

// NextToken returns the next token of the fully expanded input.  Macro
// definitions and macro calls are processed internally and never
// returned.  At the end of input, EOF is returned; further calls keep
// returning EOF.
func (p *Tokenizer) NextToken() (Token, error) {
	st := stateReady
	var m *macro
	for {
		switch st {
		case stateReady:
			tok, err := p.peekToken()
			if err != nil {
				return 0, err
			}
			p.buf.compact(p.limits.CompactThreshold)

			switch {
			case tok == Def:
				p.buf.advance()
				st = stateDefine
			case tok == EOF:
				return EOF, nil
			case tok.IsCompound():
				var ok bool
				m, ok = p.macros.get(tok)
				if !ok {
					return 0, p.Errorf(ErrUndefinedMacro, "%s", p.describe(tok))
				}
				st = stateExpand
			case tok.ArgIndex() >= 0:
				return 0, p.Errorf(ErrUndefinedArgumentReference,
					"%s outside of a macro body", tok)
			default:
				p.buf.advance()
				return tok, nil
			}

		case stateDefine:
			err := p.define()
			if err != nil {
				return 0, err
			}
			st = stateReady

		case stateExpand:
			err := p.expand(m)
			if err != nil {
				return 0, err
			}
			st = stateReady
		}
	}
}

// peekToken returns the token at the current buffer position without
// consuming it, scanning more input if needed.
func (p *Tokenizer) peekToken() (Token, error) {
	if p.buf.empty() {
		err := p.scan()
		if err != nil {
			return 0, err
		}
	}
	return p.buf.peek(), nil
}

func (p *Tokenizer) emit(tok Token) error {
	err := p.buf.push(tok)
	if err != nil {
		return p.Errorf(err, "%d pending tokens", p.buf.pending())
	}
	return nil
}

// scan reads input until at least one token has been appended to the
// buffer.
func (p *Tokenizer) scan() error {
	for {
		if p.sawEOF || !p.Next() {
			p.sawEOF = true
			return p.emit(EOF)
		}
		buf, err := p.Peek()
		if err != nil {
			return err
		}

		c := buf[0]
		switch {
		case isSpace(c):
			nlSeen, more, err := p.skipWhiteSpace()
			if err != nil {
				return err
			}
			if !more {
				p.sawEOF = true
				return p.emit(EOF)
			}
			if p.atStart {
				continue
			}
			if nlSeen > 1 {
				return p.emit('\n')
			}
			return p.emit(' ')

		case c == '#':
			more, err := p.skipComment()
			if err != nil {
				return err
			}
			if !more {
				p.sawEOF = true
				return p.emit(EOF)
			}
			continue

		case c == '{':
			p.Skip(1)
			err = p.emit(BeginGroup)
		case c == '}':
			p.Skip(1)
			err = p.emit(EndGroup)
		case c == '\\':
			err = p.scanEscape()
		default:
			p.Skip(1)
			err = p.emit(Token(c))
		}
		if err != nil {
			return err
		}
		p.atStart = false
		return nil
	}
}

// scanEscape handles the input after an escape character.
func (p *Tokenizer) scanEscape() error {
	p.Skip(1)
	if !p.Next() {
		p.sawEOF = true
		return p.emit(EOF)
	}
	buf, err := p.Peek()
	if err != nil {
		return err
	}

	c := buf[0]
	switch {
	case c >= '1' && c <= '9':
		p.Skip(1)
		return p.emit(ArgRef(int(c - '1')))
	case !isLetter(c):
		p.Skip(1)
		return p.emit(Token(c))
	}
	return p.scanName()
}

// scanName reads a control sequence name.  The escape character has
// been consumed and the next input byte is a letter.
func (p *Tokenizer) scanName() error {
	name := []Token{Escape}
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return err
		}

		pos := 0
		for pos < len(buf) && isLetter(buf[pos]) {
			pos++
		}
		if len(name)+pos > p.limits.MaxTokenLength {
			return p.Errorf(ErrIdentifierTooLong, "more than %d characters",
				p.limits.MaxTokenLength-1)
		}
		for _, c := range buf[:pos] {
			name = append(name, Token(c))
		}
		p.Skip(pos)

		if pos < len(buf) {
			break
		}
	}

	tok, err := p.arena.Intern(kindName, name)
	if err != nil {
		return p.Errorf(err, "interning %s", FormatTokens(name))
	}
	return p.emit(tok)
}

// skipWhiteSpace skips a run of white space and counts the newlines
// in it.  The return value more is false if the end of input was
// reached.
func (p *Tokenizer) skipWhiteSpace() (nlSeen int, more bool, err error) {
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return 0, false, err
		}

		pos := 0
		for pos < len(buf) && isSpace(buf[pos]) {
			if buf[pos] == '\n' {
				nlSeen++
			}
			pos++
		}
		p.Skip(pos)
		if pos < len(buf) {
			return nlSeen, true, nil
		}
	}
	return nlSeen, false, nil
}

// skipComment skips everything up to and including the next newline.
func (p *Tokenizer) skipComment() (more bool, err error) {
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return false, err
		}

		pos := 0
		for pos < len(buf) && buf[pos] != '\n' {
			pos++
		}
		if pos < len(buf) {
			p.Skip(pos + 1)
			return true, nil
		}
		p.Skip(pos)
	}
	return false, nil
}

// describe renders tok for use in error messages.
func (p *Tokenizer) describe(tok Token) string {
	if tok.IsCompound() {
		s := FormatTokens(p.arena.Spelling(tok))
		if p.arena.isGroup(tok) {
			s = "{" + s + "}"
		}
		return s
	}
	return tok.String()
}

// Lookup returns the definition of the macro with the given name.
// The name is given as it appears in the input, e.g. "\foo".  The
// body is returned with argument references in place.
func (p *Tokenizer) Lookup(name string) (arity int, body []Token, ok bool) {
	if len(name) < 2 || name[0] != '\\' {
		return 0, nil, false
	}
	spelling := make([]Token, len(name))
	spelling[0] = Escape
	for i := 1; i < len(name); i++ {
		spelling[i] = Token(name[i])
	}
	tok, ok := p.arena.Lookup(kindName, spelling)
	if !ok {
		return 0, nil, false
	}
	m, ok := p.macros.get(tok)
	if !ok {
		return 0, nil, false
	}
	return m.Arity, append([]Token(nil), p.arena.Spelling(m.Body)...), true
}

// Spelling returns the token sequence stored for tok.  For a control
// sequence this is the Escape token followed by the letters of the
// name, for a group it is the group contents.
func (p *Tokenizer) Spelling(tok Token) []Token {
	if int(tok) >= p.arena.Len() {
		return nil
	}
	return append([]Token(nil), p.arena.Spelling(tok)...)
}

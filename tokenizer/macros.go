// macros.go - the macro table and the \def directive
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

type macro struct {
	Name  Token
	Arity int
	Body  Token
}

// macroTable maps control sequence names to their definitions.  Each
// name occurs at most once; redefinition updates the entry in place.
type macroTable struct {
	macros []macro
	slot   map[Token]int
	max    int
}

func newMacroTable(size int) *macroTable {
	return &macroTable{
		slot: make(map[Token]int),
		max:  size,
	}
}

func (mt *macroTable) get(name Token) (*macro, bool) {
	i, ok := mt.slot[name]
	if !ok {
		return nil, false
	}
	return &mt.macros[i], true
}

func (mt *macroTable) define(name Token, arity int, body Token) error {
	if i, ok := mt.slot[name]; ok {
		mt.macros[i].Arity = arity
		mt.macros[i].Body = body
		return nil
	}
	if len(mt.macros) >= mt.max {
		return ErrMacroTableExhausted
	}
	mt.slot[name] = len(mt.macros)
	mt.macros = append(mt.macros, macro{Name: name, Arity: arity, Body: body})
	return nil
}

// define handles a \def directive.  The Def token itself has already
// been consumed.  The directive has the form
//
//	\def <name> [<digit>] ( {...} | <token> )
func (p *Tokenizer) define() error {
	name, err := p.peekToken()
	if err != nil {
		return err
	}
	if !p.arena.isName(name) {
		return p.Errorf(ErrMalformedDefine,
			"expected a control sequence name, found %s", p.describe(name))
	}
	p.buf.advance()

	arity := 0
	tok, err := p.peekToken()
	if err != nil {
		return err
	}
	if tok.IsLiteral() && isDigit(byte(tok)) {
		arity = int(tok - '0')
		p.buf.advance()
		tok, err = p.peekToken()
		if err != nil {
			return err
		}
	}

	var body Token
	switch tok {
	case BeginGroup:
		p.buf.advance()
		body, err = p.readGroup()
		if err != nil {
			return err
		}
	case EOF:
		return p.Errorf(ErrMalformedDefine,
			"missing body for %s", p.describe(name))
	default:
		// a single token body stays in the input
		body = tok
	}

	err = p.macros.define(name, arity, body)
	if err != nil {
		return p.Errorf(err, "defining %s", p.describe(name))
	}
	return nil
}

// readGroup reads the tokens up to the matching EndGroup and interns
// them as a group.  The opening BeginGroup has already been consumed;
// the closing EndGroup is consumed but not included in the group.
func (p *Tokenizer) readGroup() (Token, error) {
	var group []Token
	depth := 1
	for {
		tok, err := p.peekToken()
		if err != nil {
			return 0, err
		}
		switch tok {
		case EOF:
			return 0, p.Errorf(ErrUnterminatedGroup, "missing '}'")
		case BeginGroup:
			depth++
		case EndGroup:
			depth--
		}
		p.buf.advance()
		if depth == 0 {
			break
		}
		if len(group) >= p.limits.MaxTokenLength {
			return 0, p.Errorf(ErrGroupTooLong,
				"more than %d tokens", p.limits.MaxTokenLength)
		}
		group = append(group, tok)
	}

	res, err := p.arena.Intern(kindGroup, group)
	if err != nil {
		return 0, p.Errorf(err, "")
	}
	return res, nil
}

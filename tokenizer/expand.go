// expand.go - macro expansion
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

// expand replaces the macro call at the current buffer position by
// the macro body, with argument references substituted.  The result
// is left in the buffer, so that it is scanned again by the caller.
func (p *Tokenizer) expand(m *macro) error {
	if p.limits.MaxExpansions > 0 && p.expansions >= p.limits.MaxExpansions {
		return p.Errorf(ErrExpansionLimit, "%d expansions of macros, last %s",
			p.expansions, p.describe(m.Name))
	}
	p.expansions++

	start := p.buf.pos
	p.buf.advance()

	var args [9][]Token
	for i := 0; i < m.Arity; i++ {
		tok, err := p.peekToken()
		if err != nil {
			return err
		}
		switch tok {
		case BeginGroup:
			p.buf.advance()
			group, err := p.readGroup()
			if err != nil {
				return err
			}
			args[i] = p.arena.Spelling(group)
		case EOF:
			return p.Errorf(ErrMissingArgument, "%s expects %d arguments, got %d",
				p.describe(m.Name), m.Arity, i)
		default:
			p.buf.advance()
			args[i] = p.arena.Spelling(tok)
		}
	}

	body := p.arena.Spelling(m.Body)
	out := make([]Token, 0, len(body))
	for _, tok := range body {
		idx := tok.ArgIndex()
		if idx < 0 {
			out = append(out, tok)
			continue
		}
		if idx >= m.Arity {
			return p.Errorf(ErrUndefinedArgumentReference,
				"%s used in %s, which takes %d arguments",
				tok, p.describe(m.Name), m.Arity)
		}
		out = append(out, args[idx]...)
	}

	err := p.buf.splice(start, out)
	if err != nil {
		return p.Errorf(err, "expanding %s", p.describe(m.Name))
	}
	return nil
}

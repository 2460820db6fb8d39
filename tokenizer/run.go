// run.go - the entry point for expanding a document
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
	"bytes"
	"io"
)

// Run reads a document from in, expands all macros and writes the
// result to out.  The output is only written once the whole input has
// been processed successfully; if an error occurs, nothing is written
// to out.  If lim is nil, DefaultLimits() is used.
func Run(in io.Reader, out io.Writer, lim *Limits) error {
	return RunWithPreamble(in, out, lim, nil)
}

// RunWithPreamble is like Run, but first processes the given
// preamble.  This is normally used to supply macro definitions.  The
// preamble is read as a separate document: any output it produces
// precedes the output of the input document, and white space at the
// start of the input document is discarded as usual.
func RunWithPreamble(in io.Reader, out io.Writer, lim *Limits, preamble []byte) error {
	if lim != nil {
		err := lim.Validate()
		if err != nil {
			return err
		}
	}

	p := NewTokenizer(lim)
	defer p.Close()

	res := &bytes.Buffer{}
	if len(preamble) > 0 {
		p.Prepend(preamble, "preamble")
		err := p.drain(res)
		if err != nil {
			return err
		}
		p.resume()
	}
	p.AddInput(in, "input")
	err := p.drain(res)
	if err != nil {
		return err
	}

	_, err = res.WriteTo(out)
	return err
}

// drain appends the literal output tokens up to the end of input to
// res.
func (p *Tokenizer) drain(res *bytes.Buffer) error {
	for {
		tok, err := p.NextToken()
		if err != nil {
			return err
		}
		if tok == EOF {
			return nil
		}
		if tok.IsLiteral() {
			res.WriteByte(byte(tok))
		}
	}
}

// resume prepares the tokenizer for a new input after the end of the
// previous one has been reached.  Macro definitions and interned
// tokens are kept.
func (p *Tokenizer) resume() {
	p.buf.toks = p.buf.toks[:0]
	p.buf.pos = 0
	p.sawEOF = false
	p.atStart = true
}

// scanner.go -
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

package scanner

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PeekWindowSize gives the minimum size of the lookahead buffer.
// Unless the end of input is reached, at least this many bytes
// are visible in the buffer returned by the .Peek() method.
const PeekWindowSize = 128

const peekBufferSize = 1024

// Scanner implements methods to walk through a stack of input
// readers and buffers.  The most recently added source is read first.
type Scanner struct {
	sources []*source
	peekBuf []byte
	ready   bool
}

// Close discards all buffers used by the scanner.  The readers
// passed to .AddInput() are owned by the caller and are not closed.
func (scan *Scanner) Close() {
	scan.sources = nil
	scan.peekBuf = nil
	scan.ready = false
}

// Prepend adds the given buffer to the list of input sources.  The
// buffer contents are read next, followed by all previous inputs.
// The argument `name` is used to identify the buffer in error
// messages and should be a short, human-readable string.
func (scan *Scanner) Prepend(data []byte, name string) {
	src := &source{
		Name:   name,
		Buffer: data,
	}
	scan.sources = append(scan.sources, src)
}

// AddInput adds the given reader to the list of input sources.  The
// reader contents are read next, followed by all remaining,
// previously registered inputs.
func (scan *Scanner) AddInput(r io.Reader, name string) {
	src := &source{
		Name: name,
		In:   r,
	}
	scan.sources = append(scan.sources, src)
}

// Next checks whether more input is available.  This method must be
// called before every call to the .Peek() method.
func (scan *Scanner) Next() bool {
	var peekBuf []byte
	for idx := len(scan.sources) - 1; idx >= 0; idx-- {
		if len(peekBuf) >= PeekWindowSize {
			break
		}

		src := scan.sources[idx]
		for len(peekBuf)+len(src.Buffer) < PeekWindowSize &&
			src.In != nil &&
			src.err == nil {
			buf := make([]byte, peekBufferSize)
			n, err := src.In.Read(buf)
			src.Buffer = append(src.Buffer, buf[:n]...)
			if err != nil {
				if err != io.EOF {
					src.err = err
				}
				src.In = nil
			}
		}
		peekBuf = append(peekBuf, src.Buffer...)
		if src.err != nil {
			break
		}
	}
	scan.peekBuf = peekBuf

	n := len(scan.sources)
	for n > 0 &&
		len(scan.sources[n-1].Buffer) == 0 &&
		scan.sources[n-1].In == nil &&
		scan.sources[n-1].err == nil {
		n--
	}
	scan.sources = scan.sources[:n]
	scan.ready = true

	return len(peekBuf) > 0 || len(scan.sources) > 0
}

// Peek returns a buffer showing the first input bytes after the
// current input position.  Unless the end of file is reached, this
// buffer is at least PeekWindowSize bytes long.  The current input
// position is not changed by calls to .Peek().
//
// The contents of the returned buffer are only valid until the next
// call to the .Skip() method.  The .Next() method must be called to
// populate the look-ahead buffer before every call to .Peek().
func (scan *Scanner) Peek() ([]byte, error) {
	if !scan.ready {
		panic("scanner not ready, missing call to .Next()")
	}
	if len(scan.peekBuf) > 0 {
		return scan.peekBuf, nil
	}
	idx := len(scan.sources) - 1
	err := scan.MakeError(scan.sources[idx].err.Error())
	err.Err = scan.sources[idx].err
	return nil, err
}

// Skip advances the current position in the scanner inputs by n
// bytes.
func (scan *Scanner) Skip(n int) {
	if n < 0 {
		panic("invalid skip amount")
	}
	scan.ready = false
	idx := len(scan.sources) - 1
	for n > 0 {
		src := scan.sources[idx]
		k := len(src.Buffer)
		if k > n {
			k = n
		}
		src.Skip(k)
		n -= k
		scan.peekBuf = scan.peekBuf[k:]
		idx--
	}
}

type source struct {
	Name   string
	In     io.Reader
	Buffer []byte
	Line   int
	err    error
}

func (src *source) Skip(n int) {
	for _, c := range src.Buffer[:n] {
		if c == '\n' {
			src.Line++
		}
	}
	src.Buffer = src.Buffer[n:]
}

// MakeError returns an error object which includes the given message
// together with human-readable information about the current input
// position.
func (scan *Scanner) MakeError(message string) *ParseError {
	err := &ParseError{
		Message: message,
	}
	for idx := len(scan.sources) - 1; idx >= 0; idx-- {
		src := scan.sources[idx]
		var context string
		if len(src.Buffer) > 20 {
			context = string(src.Buffer[:17]) + "..."
		} else {
			context = string(src.Buffer)
		}
		err.stack = append(err.stack, stackFrame{
			Name:    src.Name,
			Line:    src.Line + 1,
			Context: context,
		})
	}
	return err
}

// Errorf wraps err into a ParseError located at the current input
// position.  The formatted detail is appended to the message.
func (scan *Scanner) Errorf(err error, format string, args ...interface{}) *ParseError {
	msg := err.Error()
	if format != "" {
		msg += ": " + fmt.Sprintf(format, args...)
	}
	e := scan.MakeError(msg)
	e.Err = err
	return e
}

type stackFrame struct {
	Name    string
	Line    int
	Context string
}

// ParseError describes a failure together with the input position
// where it was detected.
type ParseError struct {
	Message string

	// Err, if set, is the underlying error class.  It can be
	// tested for using errors.Is().
	Err error

	stack []stackFrame
}

func (err *ParseError) Error() string {
	res := []string{err.Message}
	for i, frame := range err.stack {
		if i > 0 {
			res = append(res, ", preceded by")
		}
		res = append(res, "\n    ",
			frame.Name, ", line ", strconv.Itoa(frame.Line))
		if frame.Context != "" {
			res = append(res, fmt.Sprintf(", before %q", frame.Context))
		}
	}
	return strings.Join(res, "")
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// Line returns the line number of the innermost input source at the
// time the error was detected, or 0 if no input was left.
func (err *ParseError) Line() int {
	if len(err.stack) == 0 {
		return 0
	}
	return err.stack[0].Line
}

// run_test.go -
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
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/aslrousta/mex/scanner"
)

func expandString(in string, lim *Limits) (string, error) {
	out := &bytes.Buffer{}
	err := Run(strings.NewReader(in), out, lim)
	return out.String(), err
}

func TestRun(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"abc", "abc"},
		{"", ""},
		{"\\def\\foo{bar}\\foo", "bar"},
		{"\\def\\greet1{hello, \\1!}\\greet{world}", "hello, world!"},
		{"a   b", "a b"},
		{"a\n\nb", "a\nb"},
		{"x#comment\ny", "xy"},

		// white space
		{"  \n\n \t leading", "leading"},
		{"a \t\n b", "a b"},
		{"a \n \n\n b", "a\nb"},
		{"trailing  \n\n", "trailing"},
		{"  # comment at start\n  a", "a"},
		{"a # c\n b", "a  b"},
		{"a#unterminated comment", "a"},

		// escapes and grouping
		{"\\{\\}\\\\\\#", "{}\\#"},
		{"{a}b{{c}}", "abc"},
		{"50\\% off", "50% off"},

		// definitions
		{"\\def\\a{x}\\a\\def\\a{y}\\a", "xy"},
		{"\\def\\a!\\a\\a", "!!!"},
		{"\\def\\a0{zero}\\a", "zero"},
		{"\\def\\sw2{\\2\\1}\\sw{a}{b}", "ba"},
		{"\\def\\sw2{\\2\\1}\\sw xy", "x y"},
		{"\\def\\twice1{\\1\\1}\\twice{ab}", "abab"},
		{"\\def\\a{{x}y}\\a", "xy"},
		{"\\def\\id1{\\1}\\id{a{b}c}", "abc"},
		{"\\def\\b{B}\\def\\a1{[\\1]}\\a\\b", "[b]"},
		{"\\def\\b{B}\\def\\a1{(\\1)}\\a{x\\b y}", "(xB y)"},
		{"\\def\\a{\\b}\\def\\b{c}\\a", "c"},
		{"\\def\\mk1{\\def\\x{\\1}}\\mk{made}\\x", "made"},
		{"\\def\\p{\\q}\\def\\q{done}\\p\\p", "donedone"},
		{"\\def\\n3{\\3\\2\\1}\\n{1}{2}{3}", "321"},
		{"\\def\\all9{\\9\\8\\7\\6\\5\\4\\3\\2\\1}\\all123456789", "987654321"},

		// arguments and single token bodies are substituted by spelling
		{"\\def\\id1{[\\1]}\\id\\foo", "[foo]"},
		{"\\def\\id1{[\\1]}\\id}", "[}]"},
		{"\\def\\id1{[\\1]}\\id\\def", "[def]"},
		{"\\def\\id1{[\\1]}\\id\\1", "[\\1]"},
		{"\\def\\x{X}\\def\\id1{\\1}\\id\\x", "x"},
		{"\\def\\a=\\a", "=="},
		{"\\def\\a}x\\a", "x}"},
		{"\\def\\b{B}\\def\\a\\b\\a", "Bb"},
		{"\\def\\a{x}\\def\\b\\a\\b", "xa"},
	}
	for i, testCase := range testCases {
		out, err := expandString(testCase.in, nil)
		if err != nil {
			t.Errorf("test %d: %q failed: %s", i, testCase.in, err)
			continue
		}
		if out != testCase.out {
			t.Errorf("test %d: wrong output for %q, expected %q, got %q",
				i, testCase.in, testCase.out, out)
		}
	}
}

func TestRunErrors(t *testing.T) {
	small := DefaultLimits()
	small.MaxTokenLength = 8
	small.MaxMacros = 2
	small.MaxCompound = 6
	small.MaxExpansions = 100
	tiny := DefaultLimits()
	tiny.MaxCompound = 3

	testCases := []struct {
		in  string
		lim *Limits
		err error
	}{
		{"\\def\\a{x", nil, ErrUnterminatedGroup},
		{"\\def\\a1{\\1}\\a{x", nil, ErrUnterminatedGroup},
		{"\\def\\a{\\2}\\a", nil, ErrUndefinedArgumentReference},
		{"\\def\\a1{\\1\\2}\\a{x}", nil, ErrUndefinedArgumentReference},
		{"text \\1", nil, ErrUndefinedArgumentReference},
		{"\\def x", nil, ErrMalformedDefine},
		{"\\def{x}", nil, ErrMalformedDefine},
		{"\\def\\def{x}", nil, ErrMalformedDefine},
		{"\\def\\a", nil, ErrMalformedDefine},
		{"\\def\\a2", nil, ErrMalformedDefine},
		{"\\def\\a1{\\1}\\a", nil, ErrMissingArgument},
		{"hello \\world", nil, ErrUndefinedMacro},
		{"\\def\\a{\\a\\a}\\a", nil, ErrBufferExhausted},
		{"\\def\\a{\\a}\\a", &small, ErrExpansionLimit},
		{"\\abcdefghijk", &small, ErrIdentifierTooLong},
		{"\\def\\a{123456789}", &small, ErrGroupTooLong},
		{"\\def\\a{1}\\def\\b{2}\\def\\c{3}", &small, ErrMacroTableExhausted},
		{"\\def\\a{1}\\def\\b{2}", &tiny, ErrArenaExhausted},
	}
	for i, testCase := range testCases {
		out, err := expandString(testCase.in, testCase.lim)
		if !errors.Is(err, testCase.err) {
			t.Errorf("test %d: %q: expected %q, got %v",
				i, testCase.in, testCase.err, err)
			continue
		}
		if _, ok := err.(*scanner.ParseError); !ok {
			t.Errorf("test %d: error %q carries no position", i, err)
		}
		if out != "" {
			t.Errorf("test %d: partial output %q written", i, out)
		}
	}
}

func TestRunErrorPosition(t *testing.T) {
	_, err := expandString("line 1\nline 2\n\\undefined more", nil)
	e2, ok := err.(*scanner.ParseError)
	if !ok {
		t.Fatalf("wrong error %v", err)
	}
	if e2.Line() != 3 {
		t.Errorf("wrong line %d in %q", e2.Line(), err)
	}
	if !strings.Contains(err.Error(), "\\undefined") {
		t.Errorf("error %q does not name the control sequence", err)
	}
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	out := &bytes.Buffer{}
	err := Run(iotest.ErrReader(boom), out, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestRunInvalidLimits(t *testing.T) {
	lim := DefaultLimits()
	lim.BufferSize = 0
	_, err := expandString("abc", &lim)
	if err == nil {
		t.Error("invalid limits accepted")
	}
}

func TestRunWithPreamble(t *testing.T) {
	testCases := []struct{ preamble, in, out string }{
		{"# setup\n\\def\\name{world}#\n\\def\\greet{hello}\n",
			"\n  \\greet{} \\name", "hello world"},
		{"\\def\\x{X}intro \\x\n\n", "  body", "intro Xbody"},
		{"", "\\def\\x{X}\\x", "X"},
	}
	for i, testCase := range testCases {
		out := &bytes.Buffer{}
		err := RunWithPreamble(strings.NewReader(testCase.in), out, nil,
			[]byte(testCase.preamble))
		if err != nil {
			t.Errorf("test %d: %s", i, err)
			continue
		}
		if out.String() != testCase.out {
			t.Errorf("test %d: expected %q, got %q", i, testCase.out, out.String())
		}
	}
}

func TestLongDocument(t *testing.T) {
	in := &strings.Builder{}
	want := &strings.Builder{}
	in.WriteString("\\def\\w1{<\\1>}")
	for i := 0; i < 5000; i++ {
		in.WriteString("\\w{ab} ")
		want.WriteString("<ab> ")
	}
	out, err := expandString(in.String(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != strings.TrimSuffix(want.String(), " ") {
		t.Errorf("wrong output, %d bytes", len(out))
	}
}

// main_test.go -
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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aslrousta/mex/config"
	"github.com/aslrousta/mex/tokenizer"
)

func TestBatchOutputName(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"doc.mex", "doc"},
		{"dir/notes.md.mex", "notes.md"},
		{"readme.txt", "readme.txt.out"},
		{".mex", ".mex.out"},
	}
	for _, testCase := range testCases {
		if got := batchOutputName(testCase.in); got != testCase.out {
			t.Errorf("%q: expected %q, got %q", testCase.in, testCase.out, got)
		}
	}
}

func TestExpanderCache(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.Preamble = "\\def\\who{world}#\n"
	e, err := newExpander(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	for i := 0; i < 2; i++ {
		out := &bytes.Buffer{}
		err = e.Process(strings.NewReader("hello \\who"), out)
		if err != nil {
			t.Fatal(err)
		}
		if out.String() != "hello world" {
			t.Errorf("run %d: wrong output %q", i, out.String())
		}
	}
	files, _ := filepath.Glob(filepath.Join(cfg.CacheDir, "*.out"))
	if len(files) != 1 {
		t.Errorf("expected one cache entry, found %d", len(files))
	}

	out := &bytes.Buffer{}
	err = e.Process(strings.NewReader("hello \\nobody"), out)
	if !errors.Is(err, tokenizer.ErrUndefinedMacro) {
		t.Errorf("expected ErrUndefinedMacro, got %v", err)
	}
	if out.Len() > 0 {
		t.Errorf("partial output %q written", out.String())
	}
}

func TestExpandFile(t *testing.T) {
	dir := t.TempDir()
	e, err := newExpander(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	in := filepath.Join(dir, "in.mex")
	out := filepath.Join(dir, "out.txt")
	err = os.WriteFile(in, []byte("\\def\\x1{<\\1>}\\x{a}\\x b\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = e.expandFile(in, out)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<a>< >b" {
		t.Errorf("wrong output %q", data)
	}

	bad := filepath.Join(dir, "bad.mex")
	os.WriteFile(bad, []byte("\\def\\x{"), 0644)
	badOut := filepath.Join(dir, "bad.txt")
	err = e.expandFile(bad, badOut)
	if !errors.Is(err, tokenizer.ErrUnterminatedGroup) {
		t.Errorf("expected ErrUnterminatedGroup, got %v", err)
	}
	if _, err := os.Stat(badOut); !os.IsNotExist(err) {
		t.Error("output file created for failed expansion")
	}

	err = e.expandFile(filepath.Join(dir, "missing.mex"), out)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	e, err := newExpander(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var inputs []string
	for _, name := range []string{"a.mex", "b.mex", "c.txt"} {
		path := filepath.Join(dir, name)
		err := os.WriteFile(path, []byte("\\def\\n{"+name+"}\\n"), 0644)
		if err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, path)
	}

	outDir := filepath.Join(dir, "out")
	err = runBatch(e, inputs, outDir, 2)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{
		"a":         "a.mex",
		"b":         "b.mex",
		"c.txt.out": "c.txt",
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Error(err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s: expected %q, got %q", name, want, data)
		}
	}

	err = runBatch(e, append(inputs, filepath.Join(dir, "missing.mex")), outDir, 2)
	if err == nil {
		t.Error("missing input not reported")
	}
}

func TestRunBatchDuplicateOutput(t *testing.T) {
	dir := t.TempDir()
	e, err := newExpander(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var inputs []string
	for _, name := range []string{"a.mex", filepath.Join("sub", "a.mex")} {
		path := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(path, []byte(name), 0644)
		if err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, path)
	}

	outDir := filepath.Join(dir, "out")
	err = runBatch(e, inputs, outDir, 2)
	if err == nil {
		t.Fatal("clashing output names not reported")
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("output directory created despite error: %v", err)
	}
}

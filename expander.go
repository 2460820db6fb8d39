// expander.go - run the tokenizer on files, with optional caching
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
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aslrousta/mex/batch"
	"github.com/aslrousta/mex/cache"
	"github.com/aslrousta/mex/config"
	"github.com/aslrousta/mex/tokenizer"
)

// cachePruneLimit is the number of bytes of cached documents kept
// between runs.
const cachePruneLimit = 64 << 20

type expander struct {
	cfg         *config.Config
	cache       *cache.Cache
	fingerprint string
}

func newExpander(cfg *config.Config) (*expander, error) {
	e := &expander{
		cfg: cfg,
		fingerprint: fmt.Sprintf("%+v\x00%s\x00",
			cfg.Limits, cfg.Preamble),
	}
	if cfg.CacheDir != "" {
		c, err := cache.NewCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		e.cache = c
	}
	return e, nil
}

func (e *expander) Close() error {
	if e.cache == nil {
		return nil
	}
	err := e.cache.Close(cachePruneLimit)
	e.cache = nil
	return err
}

// Process expands the document read from in and writes the result to
// out.  Nothing is written to out if the expansion fails.
func (e *expander) Process(in io.Reader, out io.Writer) error {
	preamble := []byte(e.cfg.Preamble)
	if e.cache == nil {
		return tokenizer.RunWithPreamble(in, out, &e.cfg.Limits, preamble)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	key := e.fingerprint + string(data)
	if e.cache.Has(key) {
		res, err := e.cache.Get(key)
		if err == nil {
			_, err = out.Write(res)
			return err
		}
		log.Println("cache:", err)
	}

	res := &bytes.Buffer{}
	err = tokenizer.RunWithPreamble(bytes.NewReader(data), res, &e.cfg.Limits, preamble)
	if err != nil {
		return err
	}
	err = e.cache.Put(key, res.Bytes())
	if err != nil {
		log.Println("cache:", err)
	}
	_, err = out.Write(res.Bytes())
	return err
}

// expandFile expands the file inputName into outputName.  An empty
// name stands for standard input or standard output, respectively.
// The output file is only created if the expansion succeeds.
func (e *expander) expandFile(inputName, outputName string) error {
	in := io.Reader(os.Stdin)
	name := "<stdin>"
	if inputName != "" {
		fd, err := os.Open(inputName)
		if err != nil {
			return fmt.Errorf("input failed: %w", err)
		}
		defer fd.Close()
		in = fd
		name = inputName
	}

	res := &bytes.Buffer{}
	err := e.Process(in, res)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if outputName == "" {
		_, err = res.WriteTo(os.Stdout)
		return err
	}
	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("output failed: %w", err)
	}
	_, err = res.WriteTo(out)
	e2 := out.Close()
	if err == nil {
		err = e2
	}
	return err
}

// runBatch expands every input file into a file of the same name
// inside outDir, using up to 'workers' parallel jobs.
func runBatch(e *expander, inputs []string, outDir string, workers int) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files given")
	}
	outputs := make([]string, len(inputs))
	seen := make(map[string]string)
	for i, inputName := range inputs {
		outputName := filepath.Join(outDir, batchOutputName(inputName))
		if prev, ok := seen[outputName]; ok {
			return fmt.Errorf("%s and %s both expand into %s",
				prev, inputName, outputName)
		}
		seen[outputName] = inputName
		outputs[i] = outputName
	}

	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return err
	}

	q := batch.NewQueue(workers, e.Process)
	results := make([]<-chan error, len(inputs))
	for i, inputName := range inputs {
		log.Println("writing", outputs[i])
		results[i] = q.Submit(inputName, outputs[i])
	}
	q.Finish()

	failed := 0
	for i, c := range results {
		err := <-c
		if err != nil {
			log.Printf("%s: %s", inputs[i], err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
	}
	return nil
}

// batchOutputName maps "doc.mex" to "doc" and any other file name
// "name" to "name.out".
func batchOutputName(inputName string) string {
	base := filepath.Base(inputName)
	name := strings.TrimSuffix(base, ".mex")
	if name == base || name == "" {
		return base + ".out"
	}
	return name
}

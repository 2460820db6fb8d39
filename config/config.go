// config.go - settings read from TOML or YAML files
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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/aslrousta/mex/tokenizer"
)

// Config holds the settings of the mex command.
type Config struct {
	// Limits bounds the resources used while expanding a document.
	Limits tokenizer.Limits `toml:"limits" yaml:"limits"`

	// Preamble is expanded before every input document, normally
	// to provide macro definitions.
	Preamble string `toml:"preamble" yaml:"preamble"`

	// CacheDir, if set, enables the cache of expanded documents.
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`

	// Jobs is the number of documents expanded in parallel in
	// batch mode.
	Jobs int `toml:"jobs" yaml:"jobs"`
}

// Default returns the settings used when no configuration file is
// given.
func Default() *Config {
	return &Config{
		Limits: tokenizer.DefaultLimits(),
		Jobs:   4,
	}
}

// Load reads the configuration file at path.  The file format is
// chosen by the file name extension: ".toml" for TOML, ".yaml" or
// ".yml" for YAML.  Settings missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = "toml"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, &ParseError{
			Path:    path,
			Message: "unknown config file format " + filepath.Ext(path),
		}
	}
	return Parse(path, data, format)
}

// Parse decodes configuration data in the given format, "toml" or
// "yaml".  The argument source is used in error messages.
func Parse(source string, data []byte, format string) (*Config, error) {
	c := Default()

	var err error
	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(c)
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(c)
		if err == io.EOF {
			// empty document
			err = nil
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	err = c.Validate()
	if err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	err := c.Limits.Validate()
	if err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs=%d must be positive", c.Jobs)
	}
	return nil
}

// ParseError represents an error while reading a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("config error in %s at line %d, column %d: %s",
			e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

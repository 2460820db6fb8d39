// limits.go - resource bounds of one tokenizer run
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

import "fmt"

// Limits gives the upper bounds on the resources used by a Tokenizer.
// Exceeding any of these bounds makes the tokenizer fail with an
// error; the bounds are never silently ignored.
type Limits struct {
	// ArenaSize is the total number of tokens which can be stored
	// in the spellings of all tokens, including the primitives.
	ArenaSize int `toml:"arena_size" yaml:"arena_size"`

	// MaxCompound is the number of compound tokens (control sequence
	// names, groups and macro bodies) which can be allocated.
	MaxCompound int `toml:"max_compound" yaml:"max_compound"`

	// BufferSize is the number of pending tokens the lookahead
	// buffer can hold.
	BufferSize int `toml:"buffer_size" yaml:"buffer_size"`

	// CompactThreshold gives the number of consumed tokens after
	// which the lookahead buffer is compacted.
	CompactThreshold int `toml:"compact_threshold" yaml:"compact_threshold"`

	// MaxTokenLength bounds the length of control sequence names
	// (including the escape) and of groups.
	MaxTokenLength int `toml:"max_token_length" yaml:"max_token_length"`

	// MaxMacros is the number of macros which can be defined.
	MaxMacros int `toml:"max_macros" yaml:"max_macros"`

	// MaxExpansions limits the number of macro expansions in one
	// run.  Zero means no limit.
	MaxExpansions int `toml:"max_expansions" yaml:"max_expansions"`
}

// DefaultLimits returns the bounds used when no limits are given.
func DefaultLimits() Limits {
	return Limits{
		ArenaSize:        1000000,
		MaxCompound:      MaxCompound,
		BufferSize:       1500,
		CompactThreshold: 500,
		MaxTokenLength:   500,
		MaxMacros:        MaxCompound,
	}
}

// Validate checks that all bounds are usable.
func (lim *Limits) Validate() error {
	check := []struct {
		name     string
		val, min int
		max      int
	}{
		{"arena_size", lim.ArenaSize, primitiveSize + 1, 1<<31 - 1},
		{"max_compound", lim.MaxCompound, 1, MaxCompound},
		{"buffer_size", lim.BufferSize, 2, 1<<31 - 1},
		{"compact_threshold", lim.CompactThreshold, 1, 1<<31 - 1},
		{"max_token_length", lim.MaxTokenLength, 2, 1<<31 - 1},
		{"max_macros", lim.MaxMacros, 1, MaxCompound},
		{"max_expansions", lim.MaxExpansions, 0, 1<<31 - 1},
	}
	for _, c := range check {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("limit %s=%d out of range [%d, %d]",
				c.name, c.val, c.min, c.max)
		}
	}
	return nil
}

// primitiveSize is the number of arena slots used by the literal and
// primitive tokens.
var primitiveSize = func() int {
	n := 256
	for _, p := range primitives {
		n += len(p.spelling)
	}
	return n
}()

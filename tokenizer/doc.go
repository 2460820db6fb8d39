// Package tokenizer implements the macro expansion engine of mex.
//
// The input is split into tokens: literal characters, the primitives
// for grouping, argument references and \def, and compound tokens for
// control sequence names and groups.  Compound tokens are interned, so
// that equal names or equal group contents always give the same
// token.  Macros are expanded in place inside a bounded lookahead
// buffer, and the result is scanned again until only literal
// characters remain.
package tokenizer

// Package thompson compiles small regular expressions into Thompson NFAs and
// tests whole strings for membership by breadth-first simulation.
//
// The grammar is deliberately small:
//
//	expression := sequence ('|' sequence)*
//	sequence   := piece piece*
//	piece      := atom ('*' | '?')?
//	atom       := id | '(' expression ')' | '[' range+ ']'
//	range      := id ('-' id)?
//
// Any character that is not one of ( ) | * ? + [ ] - $ is an id and matches
// itself, so '.' is an ordinary literal. Whitespace in the pattern is ignored.
// A pattern always describes the whole input: there is no partial matching.
//
// Basic usage:
//
//	re, err := thompson.Compile(`(a|b)*c`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.MatchString("ababc")) // true
//
// Simulation keeps one set of live states per input rune, so matching is
// O(m*n) in pattern and input length regardless of the pattern's shape.
package thompson

import (
	"github.com/coregx/thompson/nfa"
)

// Config tunes the compiler. See nfa.CompilerConfig.
type Config = nfa.CompilerConfig

// Regex is a compiled pattern.
//
// A Regex is immutable and safe for concurrent use by multiple goroutines.
type Regex struct {
	nfa     *nfa.NFA
	pattern string
}

// Compile parses pattern and returns a Regex that matches exactly the strings
// in its language.
//
// Errors are *nfa.CompileError values; use errors.Is with nfa.ErrSyntax,
// nfa.ErrUnsupported or nfa.ErrTooComplex to classify them.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var ident = thompson.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.ExpandPlus = true
//	re, err := thompson.CompileWithConfig("[0-9]+", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	n, err := nfa.NewCompiler(config).Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{nfa: n, pattern: pattern}, nil
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return nfa.DefaultCompilerConfig()
}

// MatchString reports whether the whole of s is in the pattern's language.
func (r *Regex) MatchString(s string) bool {
	return r.nfa.Match(s)
}

// Match reports whether the whole of b, read as UTF-8, is in the pattern's
// language. Input that is not valid UTF-8 never matches.
func (r *Regex) Match(b []byte) bool {
	return r.nfa.Match(string(b))
}

// String returns the source text used to compile the Regex.
func (r *Regex) String() string {
	return r.pattern
}

// NFA returns the underlying automaton. It must not be modified.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

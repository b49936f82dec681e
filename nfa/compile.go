package nfa

import (
	"fmt"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits group nesting to prevent stack overflow
	// Default: 100
	MaxRecursionDepth int

	// ExpandPlus builds a+ as a followed by a*. When false, '+' is rejected
	// with ErrUnsupported.
	// Default: false
	ExpandPlus bool
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 100,
		ExpandPlus:        false,
	}
}

// Compiler parses patterns and assembles their automata bottom-up.
//
// Grammar ($ is the end of the pattern, id any non-special character):
//
//	Pattern    ::= Expression '$'
//	Expression ::= Sequence ('|' Sequence)*
//	Sequence   ::= Piece Piece*
//	Piece      ::= Atom ('*' | '?' | '+')?
//	Atom       ::= '(' Expression ')' | Terminal
//	Terminal   ::= id | '[' CharRange+ ']'
//	CharRange  ::= id ('-' id)?
//
// Whitespace between tokens is ignored. A Compiler is not safe for concurrent
// use.
type Compiler struct {
	config CompilerConfig
	lex    *lexer
	depth  int // current group nesting
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth <= 0 {
		config.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// Compile compiles a pattern into an NFA. On failure it returns a
// *CompileError and no automaton.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	c.lex = newLexer(pattern)
	c.depth = 0

	nfa, err := c.parsePattern()
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}
	return nfa, nil
}

// parsePattern parses Expression '$' over the whole pattern text.
func (c *Compiler) parsePattern() (*NFA, error) {
	if c.lex.invalid >= 0 {
		return nil, &SyntaxError{
			Offset:  c.lex.invalid,
			Token:   fmt.Sprintf("\\x%02x", c.lex.badByte),
			Message: fmt.Sprintf("invalid UTF-8 byte %#02x", c.lex.badByte),
			Kind:    ErrSyntax,
		}
	}
	c.lex.next()
	nfa, err := c.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := c.expectEnd(); err != nil {
		return nil, err
	}
	return nfa, nil
}

// expectEnd accepts the end of the pattern, or an explicit '$' that is the
// last token.
func (c *Compiler) expectEnd() error {
	if c.lex.tok.kind != tokenEnd {
		return c.errorf("expected end of pattern, found %s", c.lex.tok)
	}
	if c.lex.tok.eof {
		return nil
	}
	c.lex.next()
	if !c.lex.tok.eof {
		return c.errorf("unexpected %s after end of pattern", c.lex.tok)
	}
	return nil
}

// parseExpression parses Sequence ('|' Sequence)*.
func (c *Compiler) parseExpression() (*NFA, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return nil, &SyntaxError{
			Offset:  c.lex.tok.offset,
			Token:   c.lex.tok.String(),
			Message: fmt.Sprintf("nesting deeper than %d", c.config.MaxRecursionDepth),
			Kind:    ErrTooComplex,
		}
	}

	nfa, err := c.parseSequence()
	if err != nil {
		return nil, err
	}
	var choices []*NFA
	for c.lex.tok.kind == tokenAlt {
		c.lex.next()
		choice, err := c.parseSequence()
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	if err := nfa.Union(choices...); err != nil {
		return nil, err
	}
	return nfa, nil
}

// parseSequence parses Piece Piece*.
func (c *Compiler) parseSequence() (*NFA, error) {
	nfa, err := c.parsePiece()
	if err != nil {
		return nil, err
	}
	for c.lex.tok.startsAtom() {
		next, err := c.parsePiece()
		if err != nil {
			return nil, err
		}
		if err := nfa.Concat(next); err != nil {
			return nil, err
		}
	}
	return nfa, nil
}

// parsePiece parses Atom ('*' | '?' | '+')?.
func (c *Compiler) parsePiece() (*NFA, error) {
	if !c.lex.tok.startsAtom() {
		return nil, c.errorf("expected id, ( or [, found %s", c.lex.tok)
	}
	nfa, err := c.parseAtom()
	if err != nil {
		return nil, err
	}

	switch c.lex.tok.kind {
	case tokenStar:
		c.lex.next()
		err = nfa.KleeneStar()
	case tokenQuest:
		c.lex.next()
		err = nfa.Optional()
	case tokenPlus:
		if !c.config.ExpandPlus {
			return nil, &SyntaxError{
				Offset:  c.lex.tok.offset,
				Token:   c.lex.tok.String(),
				Message: "+ operator not implemented",
				Kind:    ErrUnsupported,
			}
		}
		c.lex.next()
		err = expandPlus(nfa)
	}
	if err != nil {
		return nil, err
	}
	return nfa, nil
}

// expandPlus rewrites a into a followed by a copy of a under a star.
func expandPlus(nfa *NFA) error {
	rest := nfa.Clone()
	if err := rest.KleeneStar(); err != nil {
		return err
	}
	return nfa.Concat(rest)
}

// parseAtom parses '(' Expression ')' | Terminal.
func (c *Compiler) parseAtom() (*NFA, error) {
	if c.lex.tok.kind != tokenLParen {
		return c.parseTerminal()
	}
	c.lex.next()
	nfa, err := c.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := c.expect(tokenRParen, ")"); err != nil {
		return nil, err
	}
	return nfa, nil
}

// parseTerminal parses id | '[' CharRange+ ']' into a two-node automaton.
func (c *Compiler) parseTerminal() (*NFA, error) {
	var chars CharSet
	switch c.lex.tok.kind {
	case tokenLiteral:
		chars = NewCharSet(c.lex.tok.r)
		c.lex.next()
	case tokenLBracket:
		c.lex.next()
		if c.lex.tok.kind == tokenRBracket {
			return nil, c.errorf("expected id, found %s", c.lex.tok)
		}
		for c.lex.tok.kind != tokenRBracket {
			set, err := c.parseRange()
			if err != nil {
				return nil, err
			}
			chars = chars.Union(set)
		}
		c.lex.next()
	default:
		return nil, c.errorf("unknown token %s", c.lex.tok)
	}
	return terminal(chars)
}

// parseRange parses id ('-' id)?.
func (c *Compiler) parseRange() (CharSet, error) {
	if c.lex.tok.kind != tokenLiteral {
		return nil, c.errorf("expected id or ], found %s", c.lex.tok)
	}
	lo := c.lex.tok.r
	c.lex.next()
	if c.lex.tok.kind != tokenDash {
		return NewCharSet(lo), nil
	}
	c.lex.next()
	if c.lex.tok.kind != tokenLiteral {
		return nil, c.errorf("expected id after -, found %s", c.lex.tok)
	}
	hi := c.lex.tok.r
	set, err := RangeSet(lo, hi)
	if err != nil {
		return nil, c.errorf("%v", err)
	}
	c.lex.next()
	return set, nil
}

// terminal builds the automaton 0 -chars-> 1 accepting at 1.
func terminal(chars CharSet) (*NFA, error) {
	nfa, err := New(2, 0, 1)
	if err != nil {
		return nil, err
	}
	if err := nfa.AddEdge(0, 1, chars); err != nil {
		return nil, err
	}
	return nfa, nil
}

func (c *Compiler) expect(kind tokenKind, want string) error {
	if c.lex.tok.kind != kind {
		return c.errorf("expected %s, found %s", want, c.lex.tok)
	}
	c.lex.next()
	return nil
}

// errorf reports a syntax error at the current token.
func (c *Compiler) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Offset:  c.lex.tok.offset,
		Token:   c.lex.tok.String(),
		Message: fmt.Sprintf(format, args...),
		Kind:    ErrSyntax,
	}
}

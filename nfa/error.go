// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// built from a small regular-expression grammar.
//
// Automata are assembled bottom-up by structural composition: a terminal
// automaton of two nodes and one edge is grown in place by Concat, Union,
// Optional and KleeneStar, which splice other automata into the receiver by
// shifting their node indices. Matching is a breadth-first simulation that
// tracks the epsilon-closed set of active nodes while input is consumed.
package nfa

import (
	"errors"
	"fmt"
	"strconv"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an out-of-range node index reached an automaton operation
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrSyntax indicates a malformed pattern
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupported indicates a recognized but unimplemented pattern feature
	ErrUnsupported = errors.New("unsupported feature")

	// ErrTooComplex indicates the pattern nests deeper than the configured limit
	ErrTooComplex = errors.New("pattern too complex")

	// ErrConsumed indicates use of an automaton already spliced into another one
	ErrConsumed = errors.New("automaton already consumed")

	// ErrSelfSplice indicates an automaton was passed as an operand of its own combinator
	ErrSelfSplice = errors.New("automaton spliced into itself")
)

// CompileError wraps compilation errors with the source pattern
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// SyntaxError locates a fault in the pattern text.
// Offset counts runes from the start of the pattern; Token is the token found
// there ("$" at the end of the pattern).
type SyntaxError struct {
	Offset  int
	Token   string
	Message string

	// Kind is the sentinel this error matches with errors.Is:
	// ErrSyntax, ErrUnsupported or ErrTooComplex.
	Kind error
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return e.Message + " at " + strconv.Itoa(e.Offset)
}

// Unwrap returns the error class sentinel
func (e *SyntaxError) Unwrap() error {
	if e.Kind == nil {
		return ErrSyntax
	}
	return e.Kind
}

// IndexError reports an operation given a node index outside the automaton.
// It signals a broken construction invariant rather than bad user input.
type IndexError struct {
	Op    string
	State StateID
	Size  int
}

// Error implements the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("NFA %s: state %d out of range [0, %d)", e.Op, e.State, e.Size)
}

// Unwrap returns ErrInvalidState
func (e *IndexError) Unwrap() error {
	return ErrInvalidState
}

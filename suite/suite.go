// Package suite runs YAML corpora of match cases against the NFA compiler.
//
// A suite file looks like:
//
//	name: numbers
//	cases:
//	  - pattern: "[0-9][0-9]*"
//	    accept: ["0", "42"]
//	    reject: ["", "4a"]
//	  - pattern: "(a"
//	    error: syntax
//
// Each case either lists inputs the pattern must accept and reject, or names
// the class of compile error the pattern must produce.
package suite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/coregx/thompson/nfa"
)

// ErrorClass names the kind of compile error a case expects.
type ErrorClass string

// Error classes accepted in the "error" field of a case.
const (
	ErrorNone        ErrorClass = ""
	ErrorSyntax      ErrorClass = "syntax"
	ErrorUnsupported ErrorClass = "unsupported"
	ErrorTooComplex  ErrorClass = "too-complex"
)

// ErrInvalidSuite indicates a suite file that decodes but is not well formed.
var ErrInvalidSuite = errors.New("invalid suite")

// Suite is a named list of cases.
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Case is one pattern with its expectations.
type Case struct {
	Pattern string     `yaml:"pattern"`
	Accept  []string   `yaml:"accept,omitempty"`
	Reject  []string   `yaml:"reject,omitempty"`
	Error   ErrorClass `yaml:"error,omitempty"`
}

// Load decodes and validates a suite. Unknown fields are rejected.
func Load(r io.Reader) (*Suite, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSuite)
		}
		return nil, fmt.Errorf("decoding suite: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads the suite stored at path.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks that every case states exactly one kind of expectation.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidSuite)
	}
	for i, c := range s.Cases {
		switch c.Error {
		case ErrorNone:
			if len(c.Accept) == 0 && len(c.Reject) == 0 {
				return fmt.Errorf("%w: case %d (%q) has no expectations", ErrInvalidSuite, i, c.Pattern)
			}
		case ErrorSyntax, ErrorUnsupported, ErrorTooComplex:
			if len(c.Accept) != 0 || len(c.Reject) != 0 {
				return fmt.Errorf("%w: case %d (%q) expects an error and inputs", ErrInvalidSuite, i, c.Pattern)
			}
		default:
			return fmt.Errorf("%w: case %d (%q) has unknown error class %q", ErrInvalidSuite, i, c.Pattern, c.Error)
		}
	}
	return nil
}

// Failure is one unmet expectation.
type Failure struct {
	Case    int
	Pattern string
	Input   string
	Want    string
	Got     string
}

func (f Failure) String() string {
	if f.Input == "" && (strings.HasPrefix(f.Want, "error") || f.Want == "compiled") {
		return fmt.Sprintf("case %d %q: want %s, got %s", f.Case, f.Pattern, f.Want, f.Got)
	}
	return fmt.Sprintf("case %d %q on %q: want %s, got %s", f.Case, f.Pattern, f.Input, f.Want, f.Got)
}

// Report summarizes a suite run.
type Report struct {
	Suite    string
	Cases    int
	Checks   int
	Failures []Failure
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

func (r Report) String() string {
	var b strings.Builder
	status := "ok"
	if !r.OK() {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "%s\t%s\t%d cases, %d checks, %d failures", status, r.Suite, r.Cases, r.Checks, len(r.Failures))
	for _, f := range r.Failures {
		b.WriteString("\n\t")
		b.WriteString(f.String())
	}
	return b.String()
}

// Run compiles every case with config and checks its expectations.
func (s *Suite) Run(config nfa.CompilerConfig) Report {
	compiler := nfa.NewCompiler(config)
	report := Report{Suite: s.Name, Cases: len(s.Cases)}

	for i, c := range s.Cases {
		automaton, err := compiler.Compile(c.Pattern)

		if c.Error != ErrorNone {
			report.Checks++
			if got := Classify(err); got != c.Error {
				report.Failures = append(report.Failures, Failure{
					Case:    i,
					Pattern: c.Pattern,
					Want:    "error " + string(c.Error),
					Got:     describe(err),
				})
			}
			continue
		}

		if err != nil {
			report.Checks++
			report.Failures = append(report.Failures, Failure{
				Case:    i,
				Pattern: c.Pattern,
				Want:    "compiled",
				Got:     describe(err),
			})
			continue
		}

		for _, input := range c.Accept {
			report.Checks++
			if !automaton.Match(input) {
				report.Failures = append(report.Failures, Failure{i, c.Pattern, input, "match", "no match"})
			}
		}
		for _, input := range c.Reject {
			report.Checks++
			if automaton.Match(input) {
				report.Failures = append(report.Failures, Failure{i, c.Pattern, input, "no match", "match"})
			}
		}
	}
	return report
}

// Classify maps a compile error onto its ErrorClass.
// A nil error maps to ErrorNone; errors outside the taxonomy map to "internal".
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, nfa.ErrUnsupported):
		return ErrorUnsupported
	case errors.Is(err, nfa.ErrTooComplex):
		return ErrorTooComplex
	case errors.Is(err, nfa.ErrSyntax):
		return ErrorSyntax
	}
	return "internal"
}

func describe(err error) string {
	if err == nil {
		return "compiled"
	}
	return "error " + string(Classify(err)) + " (" + err.Error() + ")"
}

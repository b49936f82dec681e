// Command thompson compiles a pattern and tests input lines against it.
//
// Usage:
//
//	thompson -e PATTERN [-plus] [-v] [-dump]   < lines
//	thompson -suite cases.yaml [-suite more.yaml] [-plus]
//
// In pattern mode every line of standard input is stripped of surrounding
// whitespace and answered with true or false. In suite mode each YAML corpus
// is run and summarized; any failing check makes the command exit 1.
// Usage and compile errors exit 2.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/internal/term"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/suite"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	prompt      = "> "
	programName = "thompson"
)

// arrayFlags collects every occurrence of a repeatable flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	pattern string
	suites  arrayFlags
	plus    bool
	verbose bool
	dump    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitUsage
	}

	config := thompson.DefaultConfig()
	config.ExpandPlus = opts.plus

	if len(opts.suites) > 0 {
		return runSuites(opts.suites, config, stdout, stderr)
	}
	return runPattern(opts, config, stdin, stdout, stderr)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pattern, "e", "", "pattern to match stdin lines against")
	fs.Var(&opts.suites, "suite", "YAML suite to run (repeatable)")
	fs.BoolVar(&opts.plus, "plus", false, "accept x+ as shorthand for xx*")
	fs.BoolVar(&opts.verbose, "v", false, "trace every simulation step on stderr")
	fs.BoolVar(&opts.dump, "dump", false, "print the compiled automaton before matching")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s -e PATTERN [-plus] [-v] [-dump]\n", programName)
		fmt.Fprintf(stderr, "       %s -suite FILE [-suite FILE]... [-plus]\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case fs.NArg() > 0:
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	case opts.pattern != "" && len(opts.suites) > 0:
		return nil, errors.New("-e and -suite are mutually exclusive")
	case opts.pattern == "" && len(opts.suites) == 0:
		fs.Usage()
		return nil, errors.New("one of -e or -suite is required")
	case len(opts.suites) > 0 && (opts.verbose || opts.dump):
		return nil, errors.New("-v and -dump apply only to -e")
	}
	return &opts, nil
}

func runPattern(opts *options, config thompson.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	re, err := thompson.CompileWithConfig(opts.pattern, config)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitUsage
	}
	if opts.dump {
		fmt.Fprintln(stdout, re.NFA())
	}

	var matcherOpts []nfa.MatcherOption
	if opts.verbose {
		matcherOpts = append(matcherOpts, nfa.WithTrace(traceLogger(stderr)))
	}
	m := nfa.NewMatcher(re.NFA(), matcherOpts...)

	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = term.IsInteractive(f)
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	for {
		if interactive {
			fmt.Fprint(stderr, prompt)
		}
		if !scanner.Scan() {
			break
		}
		fmt.Fprintln(stdout, m.MatchString(strings.TrimSpace(scanner.Text())))
	}
	if interactive {
		fmt.Fprintln(stderr)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "%s: reading input: %v\n", programName, err)
		return exitUsage
	}
	return exitOK
}

// traceLogger renders simulation steps as debug records without timestamps.
func traceLogger(w io.Writer) func(nfa.TraceStep) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	return func(s nfa.TraceStep) {
		logger.Debug("step",
			slog.Int("offset", s.Offset),
			slog.String("rune", string(s.Rune)),
			slog.Any("from", s.From),
			slog.Any("to", s.To),
		)
	}
}

func runSuites(paths []string, config thompson.Config, stdout, stderr io.Writer) int {
	code := exitOK
	for _, path := range paths {
		s, err := suite.LoadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", programName, err)
			return exitUsage
		}
		report := s.Run(config)
		fmt.Fprintln(stdout, report)
		if !report.OK() {
			code = exitFailed
		}
	}
	return code
}

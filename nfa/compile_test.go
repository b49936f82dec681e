package nfa

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := Compile(pattern)
	assert.NilError(t, err, "pattern %q", pattern)
	return n
}

func TestCompile_Match(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"", "aa", "b"}},
		{"abc", []string{"abc"}, []string{"", "ab", "abcd", "xabc"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a?", []string{"", "a"}, []string{"aa", "b"}},
		{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
		{"[a-c]", []string{"a", "b", "c"}, []string{"d", "", "ab"}},
		{"(a|b)*c", []string{"c", "ababc", "bbbc"}, []string{"", "ababd", "abab", "cc"}},
		{"[0-9][0-9]*", []string{"0", "42", "1234567890"}, []string{"", "4a", "a4"}},
		{"[a-zA-Z][a-zA-Z0-9]*", []string{"x", "Var1", "z9z9"}, []string{"", "1x", "a_b"}},
		{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba", "ba"}},
		{"(a*)*", []string{"", "a", "aaa"}, []string{"b"}},
		{"a(b|c)?d", []string{"ad", "abd", "acd"}, []string{"abcd", "a", "d"}},
		{"((a))", []string{"a"}, []string{"", "aa"}},
		{"a|b|c|d", []string{"a", "b", "c", "d"}, []string{"", "e", "ab"}},
		{"[abc-e]", []string{"a", "b", "c", "d", "e"}, []string{"f", ""}},
		{"[aa-ba]", []string{"a", "b"}, []string{"c"}},
		{"x.y", []string{"x.y"}, []string{"xay", "xy"}},
		{"[а-я]", []string{"б", "я"}, []string{"a", "ё"}},
		{"a b\tc", []string{"abc"}, []string{"a b\tc", "a bc"}},
		{"ab$", []string{"ab"}, []string{"ab$", "a"}},
		{"(([0-9][0-9]*(.[0-9]*)?) | ([0-9]*.[0-9][0-9]*))", []string{"1", "1.", "1.5", ".5", "10.25"}, []string{".", "", "1.2.3", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			for _, s := range tt.accept {
				assert.Assert(t, n.Match(s), "%q should match %q", tt.pattern, s)
			}
			for _, s := range tt.reject {
				assert.Assert(t, !n.Match(s), "%q should not match %q", tt.pattern, s)
			}
		})
	}
}

func TestCompile_Literals(t *testing.T) {
	for _, s := range []string{"a", "hello", "x.y", "0123", "ünïcödé", "a=b;c"} {
		t.Run(s, func(t *testing.T) {
			n := mustCompile(t, s)
			assert.Assert(t, n.Match(s))
			assert.Assert(t, !n.Match(s+"x"))
			assert.Assert(t, !n.Match("x"+s))
			assert.Assert(t, !n.Match(""))
		})
	}
}

// Union must be commutative in matching outcome.
func TestCompile_UnionCommutes(t *testing.T) {
	pairs := [][2]string{
		{"a", "b*"},
		{"(ab)*", "[a-c]"},
		{"a?b", "ab?"},
		{"x(y|z)", "xy*"},
	}
	inputs := allStrings("abcxyz", 3)

	for _, p := range pairs {
		ab := mustCompile(t, p[0]+"|"+p[1])
		ba := mustCompile(t, p[1]+"|"+p[0])
		for _, s := range inputs {
			if ab.Match(s) != ba.Match(s) {
				t.Errorf("%s|%s and %s|%s disagree on %q", p[0], p[1], p[1], p[0], s)
			}
		}
	}
}

// Compiling the same text twice gives behaviorally equal automata.
func TestCompile_Idempotent(t *testing.T) {
	for _, pattern := range []string{"(a|b)*c", "[0-9][0-9]*", "a?b*(c|d)"} {
		first := mustCompile(t, pattern)
		second := mustCompile(t, pattern)
		for _, s := range allStrings("abcd01", 3) {
			assert.Equal(t, first.Match(s), second.Match(s), "pattern %q input %q", pattern, s)
		}
	}
}

// Repeated matches on one automaton are independent of each other.
func TestCompile_Reusable(t *testing.T) {
	n := mustCompile(t, "(a|b)*c")
	for i := 0; i < 3; i++ {
		assert.Assert(t, !n.Match("ababd"))
		assert.Assert(t, n.Match("ababc"))
		assert.Assert(t, !n.Match(""))
	}
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		pattern string
		offset  int
		token   string
		msg     string
	}{
		{"(a", 2, "$", "expected ), found $ at 2"},
		{"", 0, "$", "expected id, ( or [, found $ at 0"},
		{"a|", 2, "$", "expected id, ( or [, found $ at 2"},
		{"|a", 0, "|", "expected id, ( or [, found | at 0"},
		{"()", 1, ")", "expected id, ( or [, found ) at 1"},
		{"a)", 1, ")", "expected end of pattern, found ) at 1"},
		{"*a", 0, "*", "expected id, ( or [, found * at 0"},
		{"a**", 2, "*", "expected end of pattern, found * at 2"},
		{"a-b", 1, "-", "expected end of pattern, found - at 1"},
		{"]", 0, "]", "expected id, ( or [, found ] at 0"},
		{"[]", 1, "]", "expected id, found ] at 1"},
		{"[ab", 3, "$", "expected id or ], found $ at 3"},
		{"[a-]", 3, "]", "expected id after -, found ] at 3"},
		{"[(]", 1, "(", "expected id or ], found ( at 1"},
		{"[c-a]", 3, "a", "reversed range 'c'-'a' at 3"},
		{"a$b", 2, "b", "unexpected b after end of pattern at 2"},
		{"a$$", 2, "$", "unexpected $ after end of pattern at 2"},
		{"(a$)", 2, "$", "expected ), found $ at 2"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			assert.Assert(t, n == nil)
			assert.Assert(t, errors.Is(err, ErrSyntax), "got %v", err)
			assert.Assert(t, !errors.Is(err, ErrUnsupported))

			var compileErr *CompileError
			assert.Assert(t, errors.As(err, &compileErr))
			assert.Equal(t, compileErr.Pattern, tt.pattern)

			var syntaxErr *SyntaxError
			assert.Assert(t, errors.As(err, &syntaxErr))
			assert.Equal(t, syntaxErr.Offset, tt.offset)
			assert.Equal(t, syntaxErr.Token, tt.token)
			assert.Equal(t, syntaxErr.Error(), tt.msg)
		})
	}
}

// Offsets count runes, not bytes.
func TestCompile_ErrorOffsetInRunes(t *testing.T) {
	_, err := Compile("ää)")
	var syntaxErr *SyntaxError
	assert.Assert(t, errors.As(err, &syntaxErr))
	assert.Equal(t, syntaxErr.Offset, 2)
}

func TestCompile_InvalidUTF8(t *testing.T) {
	tests := []struct {
		pattern string
		offset  int
		token   string
		msg     string
	}{
		{"\xff", 0, `\xff`, "invalid UTF-8 byte 0xff at 0"},
		{"a\xffb", 1, `\xff`, "invalid UTF-8 byte 0xff at 1"},
		{"ä(\xc3", 2, `\xc3`, "invalid UTF-8 byte 0xc3 at 2"},
		{"[a-\x80]", 3, `\x80`, "invalid UTF-8 byte 0x80 at 3"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			assert.Assert(t, n == nil)
			assert.Assert(t, errors.Is(err, ErrSyntax), "got %v", err)

			var syntaxErr *SyntaxError
			assert.Assert(t, errors.As(err, &syntaxErr))
			assert.Equal(t, syntaxErr.Offset, tt.offset)
			assert.Equal(t, syntaxErr.Token, tt.token)
			assert.Equal(t, syntaxErr.Error(), tt.msg)
		})
	}

	// A literal U+FFFD is a valid pattern and only matches itself.
	n := mustCompile(t, "\uFFFD")
	assert.Assert(t, n.Match("\uFFFD"))
	assert.Assert(t, !n.Match("\xff"))
}

func TestCompile_Plus(t *testing.T) {
	for _, pattern := range []string{"a+", "(ab)+c", "[0-9]+"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(pattern)
			assert.Assert(t, errors.Is(err, ErrUnsupported), "got %v", err)

			var syntaxErr *SyntaxError
			assert.Assert(t, errors.As(err, &syntaxErr))
			assert.Equal(t, syntaxErr.Token, "+")
			assert.ErrorContains(t, err, "+ operator not implemented")
		})
	}
}

func TestCompile_ExpandPlus(t *testing.T) {
	c := NewCompiler(CompilerConfig{ExpandPlus: true})

	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a+", []string{"a", "aa", "aaaa"}, []string{"", "b", "ab"}},
		{"(ab)+c", []string{"abc", "ababc"}, []string{"c", "abac"}},
		{"[0-9]+", []string{"7", "2024"}, []string{"", "2a"}},
		{"(a|b)+", []string{"a", "ba", "abba"}, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := c.Compile(tt.pattern)
			assert.NilError(t, err)
			for _, s := range tt.accept {
				assert.Assert(t, n.Match(s), s)
			}
			for _, s := range tt.reject {
				assert.Assert(t, !n.Match(s), s)
			}
		})
	}
}

func TestCompile_RecursionLimit(t *testing.T) {
	c := NewCompiler(CompilerConfig{MaxRecursionDepth: 3})

	_, err := c.Compile("((a))")
	assert.NilError(t, err)

	_, err = c.Compile("(((a)))")
	assert.Assert(t, errors.Is(err, ErrTooComplex), "got %v", err)
	assert.Assert(t, !errors.Is(err, ErrSyntax))

	deep := strings.Repeat("(", 200) + "a" + strings.Repeat(")", 200)
	_, err = Compile(deep)
	assert.Assert(t, errors.Is(err, ErrTooComplex))
}

func TestNewCompiler_Defaults(t *testing.T) {
	c := NewCompiler(CompilerConfig{})
	assert.Equal(t, c.config.MaxRecursionDepth, DefaultCompilerConfig().MaxRecursionDepth)
	assert.Equal(t, c.config.ExpandPlus, false)
}

// The compiler can be reused after a failed compilation.
func TestCompiler_ReuseAfterError(t *testing.T) {
	c := NewDefaultCompiler()
	_, err := c.Compile("((a")
	assert.Assert(t, err != nil)

	n, err := c.Compile("(a)")
	assert.NilError(t, err)
	assert.Assert(t, n.Match("a"))
}

// allStrings returns every string over alphabet of length at most maxLen.
func allStrings(alphabet string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, prefix := range frontier {
			for _, r := range alphabet {
				next = append(next, prefix+string(r))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func ExampleCompile() {
	n, err := Compile("(a|b)*c")
	if err != nil {
		panic(err)
	}
	fmt.Println(n.Match("ababc"), n.Match("ababd"))
	// Output: true false
}

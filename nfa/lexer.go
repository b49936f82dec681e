package nfa

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenLParen
	tokenRParen
	tokenAlt
	tokenStar
	tokenPlus
	tokenQuest
	tokenLBracket
	tokenRBracket
	tokenDash
	tokenEnd
)

var specials = map[rune]tokenKind{
	'(': tokenLParen,
	')': tokenRParen,
	'|': tokenAlt,
	'*': tokenStar,
	'+': tokenPlus,
	'?': tokenQuest,
	'[': tokenLBracket,
	']': tokenRBracket,
	'-': tokenDash,
	'$': tokenEnd,
}

// token is one lexeme. offset is a rune index into the pattern; the implicit
// end token sits at the pattern length and has eof set.
type token struct {
	kind   tokenKind
	r      rune
	offset int
	eof    bool
}

func (t token) String() string {
	if t.eof {
		return "$"
	}
	return string(t.r)
}

// startsAtom reports whether t can begin an Atom: id, '(' or '['.
func (t token) startsAtom() bool {
	switch t.kind {
	case tokenLiteral, tokenLParen, tokenLBracket:
		return true
	}
	return false
}

// lexer is a single-token lookahead scanner that skips whitespace.
type lexer struct {
	src []rune
	pos int
	tok token

	// invalid is the rune offset of the first byte that is not valid UTF-8,
	// or -1. badByte is that byte.
	invalid int
	badByte byte
}

func newLexer(pattern string) *lexer {
	l := &lexer{src: make([]rune, 0, len(pattern)), invalid: -1}
	for i := 0; i < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		if r == utf8.RuneError && size == 1 && l.invalid < 0 {
			l.invalid = len(l.src)
			l.badByte = pattern[i]
		}
		l.src = append(l.src, r)
		i += size
	}
	return l
}

// next advances tok to the following token.
func (l *lexer) next() {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		l.tok = token{kind: tokenEnd, r: '$', offset: len(l.src), eof: true}
		return
	}
	r := l.src[l.pos]
	kind, special := specials[r]
	if !special {
		kind = tokenLiteral
	}
	l.tok = token{kind: kind, r: r, offset: l.pos}
	l.pos++
}

package nfa

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// CharSet is a sorted, duplicate-free set of code points labelling an edge.
// The empty set is the epsilon label.
type CharSet []rune

// Epsilon is the label of an edge that consumes no input.
var Epsilon CharSet

// NewCharSet returns the set of the given runes.
func NewCharSet(runes ...rune) CharSet {
	if len(runes) == 0 {
		return nil
	}
	set := slices.Clone(runes)
	slices.Sort(set)
	return slices.Compact(set)
}

// RangeSet returns every code point in [lo, hi].
// Reversed bounds and bounds outside [0, unicode.MaxRune] are rejected.
func RangeSet(lo, hi rune) (CharSet, error) {
	if lo < 0 || hi > unicode.MaxRune {
		return nil, fmt.Errorf("range %U-%U outside [0, %U]", lo, hi, unicode.MaxRune)
	}
	if lo > hi {
		return nil, fmt.Errorf("reversed range %q-%q", lo, hi)
	}
	set := make(CharSet, 0, int(hi)-int(lo)+1)
	for r := lo; r <= hi; r++ {
		set = append(set, r)
	}
	return set, nil
}

// IsEpsilon reports whether the set is the epsilon label.
func (s CharSet) IsEpsilon() bool {
	return len(s) == 0
}

// Len returns the number of code points.
func (s CharSet) Len() int {
	return len(s)
}

// Contains reports whether r is in the set.
func (s CharSet) Contains(r rune) bool {
	_, found := slices.BinarySearch(s, r)
	return found
}

// Union returns the set of code points in either s or other.
func (s CharSet) Union(other CharSet) CharSet {
	switch {
	case len(other) == 0:
		return s
	case len(s) == 0:
		return other
	}
	out := make(CharSet, 0, len(s)+len(other))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			out = append(out, s[i])
			i++
		case s[i] > other[j]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	return append(out, other[j:]...)
}

// Equal reports whether both sets hold the same code points.
func (s CharSet) Equal(other CharSet) bool {
	return slices.Equal(s, other)
}

// String renders the set, collapsing runs of three or more consecutive code
// points into ranges: "ε", "a", "[ab]", "[_a-z]".
func (s CharSet) String() string {
	switch len(s) {
	case 0:
		return "ε"
	case 1:
		return string(s[0])
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < len(s); {
		j := i
		for j+1 < len(s) && s[j+1] == s[j]+1 {
			j++
		}
		b.WriteRune(s[i])
		switch {
		case j-i >= 2:
			b.WriteByte('-')
			b.WriteRune(s[j])
		case j > i:
			b.WriteRune(s[j])
		}
		i = j + 1
	}
	b.WriteByte(']')
	return b.String()
}

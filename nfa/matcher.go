package nfa

import (
	"unicode/utf8"

	"github.com/coregx/thompson/internal/sparse"
)

// EpsilonClosure returns the smallest superset of seed closed under epsilon
// edges, in ascending order. Epsilon cycles are walked once. Out-of-range
// seed entries are ignored.
func (n *NFA) EpsilonClosure(seed []StateID) []StateID {
	set := sparse.NewSparseSet(n.capacity())
	stack := make([]StateID, 0, len(seed))
	for _, id := range seed {
		if set.Insert(uint32(id)) {
			stack = append(stack, id)
		}
	}
	n.closeOver(set, stack)
	return sortedStates(set)
}

// Step returns the epsilon-closed set of nodes reachable from current by one
// edge whose label contains r, in ascending order. The automaton is not
// modified.
func (n *NFA) Step(current []StateID, r rune) []StateID {
	set := sparse.NewSparseSet(n.capacity())
	n.closeOver(set, n.advance(set, current, r, nil))
	return sortedStates(set)
}

// Match reports whether the automaton accepts the whole of input.
// Each call uses its own transient state, so Match is safe for concurrent use
// on an automaton that is no longer being built.
func (n *NFA) Match(input string) bool {
	return NewMatcher(n).MatchString(input)
}

// advance inserts into next the targets of every edge leaving current whose
// label contains r, and returns stack extended with the newly added targets.
func (n *NFA) advance(next *sparse.SparseSet, current []StateID, r rune, stack []StateID) []StateID {
	for _, id := range current {
		if !n.valid(id) {
			continue
		}
		for _, e := range n.nodes[id] {
			if e.Label.Contains(r) && next.Insert(uint32(e.To)) {
				stack = append(stack, e.To)
			}
		}
	}
	return stack
}

// closeOver extends set with every node reachable by epsilon edges from the
// nodes on stack. Nodes on stack must already be members of set.
// It returns the emptied stack for reuse.
func (n *NFA) closeOver(set *sparse.SparseSet, stack []StateID) []StateID {
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.valid(id) {
			continue
		}
		for _, e := range n.nodes[id] {
			if e.IsEpsilon() && set.Insert(uint32(e.To)) {
				stack = append(stack, e.To)
			}
		}
	}
	return stack
}

func (n *NFA) capacity() uint32 {
	//nolint:gosec // G115: node count is bounded by maxStates
	return uint32(len(n.nodes))
}

func sortedStates(set *sparse.SparseSet) []StateID {
	values := set.Sorted()
	out := make([]StateID, len(values))
	for i, v := range values {
		out[i] = StateID(v)
	}
	return out
}

// TraceStep describes one simulation step for a trace hook.
type TraceStep struct {
	// Offset is the rune index of Rune in the input.
	Offset int
	Rune   rune
	From   []StateID
	To     []StateID
}

// MatcherOption configures a Matcher
type MatcherOption func(*Matcher)

// WithTrace installs a hook called after every step with the active sets
// before and after the step.
func WithTrace(fn func(TraceStep)) MatcherOption {
	return func(m *Matcher) {
		m.trace = fn
	}
}

// Matcher holds the transient state of one simulation run over an NFA: the
// epsilon-closed set of active nodes. The automaton itself is only read.
//
// Thread safety: a Matcher must not be shared between goroutines. Create one
// per goroutine; any number of Matchers may run over the same NFA.
type Matcher struct {
	nfa   *NFA
	sets  *sparse.SparseSets // Set1 holds the active nodes, Set2 is scratch
	stack []StateID
	pos   int
	trace func(TraceStep)
}

// NewMatcher creates a Matcher positioned at the initial state of n.
func NewMatcher(n *NFA, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		nfa:  n,
		sets: sparse.NewSparseSets(n.capacity()),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset returns to the epsilon-closure of the start node.
func (m *Matcher) Reset() {
	if capacity := m.nfa.capacity(); int(capacity) != m.sets.Set1.Capacity() {
		m.sets.Resize(capacity)
	} else {
		m.sets.Clear()
	}
	m.pos = 0
	m.stack = m.stack[:0]
	if m.nfa.consumed {
		return
	}
	cur := m.sets.Set1
	if cur.Insert(uint32(m.nfa.start)) {
		m.stack = append(m.stack, m.nfa.start)
	}
	m.stack = m.nfa.closeOver(cur, m.stack)
}

// Feed consumes r and reports whether any node is still active.
// Once it returns false no further input can lead to a match.
func (m *Matcher) Feed(r rune) bool {
	cur, next := m.sets.Set1, m.sets.Set2
	next.Clear()
	m.stack = m.nfa.advance(next, stateIDs(cur.Values()), r, m.stack[:0])
	m.stack = m.nfa.closeOver(next, m.stack)

	if m.trace != nil {
		m.trace(TraceStep{
			Offset: m.pos,
			Rune:   r,
			From:   sortedStates(cur),
			To:     sortedStates(next),
		})
	}

	m.sets.Swap()
	m.pos++
	return !next.IsEmpty()
}

// Current returns the active nodes in ascending order.
func (m *Matcher) Current() []StateID {
	return sortedStates(m.sets.Set1)
}

// Accepting reports whether an accepting node is active.
func (m *Matcher) Accepting() bool {
	for _, v := range m.sets.Set1.Values() {
		if m.nfa.IsAccepting(StateID(v)) {
			return true
		}
	}
	return false
}

// MatchString resets the matcher and reports whether it accepts all of s.
// It stops early once no node is active. Input that is not valid UTF-8 is
// never accepted.
func (m *Matcher) MatchString(s string) bool {
	m.Reset()
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !m.Feed(r) {
			return false
		}
		i += size
	}
	return m.Accepting()
}

func stateIDs(values []uint32) []StateID {
	out := make([]StateID, len(values))
	for i, v := range values {
		out[i] = StateID(v)
	}
	return out
}

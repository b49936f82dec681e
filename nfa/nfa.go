package nfa

import (
	"fmt"
	"slices"
	"strings"
)

// StateID identifies a node by its index in the automaton.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// maxStates bounds the node count. It keeps every index below InvalidState
// and fits in int on 32-bit platforms.
const maxStates = 1<<31 - 1

// Edge is a labelled transition to another node.
// An epsilon label (empty CharSet) consumes no input.
type Edge struct {
	Label CharSet
	To    StateID
}

// IsEpsilon reports whether the edge consumes no input.
func (e Edge) IsEpsilon() bool {
	return e.Label.IsEpsilon()
}

// String returns a human-readable representation of the edge
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %d", e.Label, e.To)
}

// NFA is a Thompson automaton: an arena of nodes addressed by StateID, each
// holding its outgoing edges, plus a start node and a set of accepting nodes.
//
// Construction mutates the automaton in place and is not safe for concurrent
// use. Once construction is done the structure is read-only and Match may be
// called from multiple goroutines.
type NFA struct {
	nodes     [][]Edge
	start     StateID
	accepting []StateID // ascending, no duplicates

	// consumed is set once the automaton has been spliced into another one.
	consumed bool
}

// New allocates an automaton of nodeCount nodes with no edges.
// It fails if start or any accepting index is out of range.
func New(nodeCount int, start StateID, accepting ...StateID) (*NFA, error) {
	if nodeCount < 0 || nodeCount > maxStates {
		return nil, fmt.Errorf("%w: node count %d", ErrInvalidState, nodeCount)
	}
	n := &NFA{
		nodes: make([][]Edge, nodeCount),
		start: start,
	}
	if err := n.checkState("new", start); err != nil {
		return nil, err
	}
	for _, id := range accepting {
		if err := n.checkState("new", id); err != nil {
			return nil, err
		}
	}
	n.accepting = NewStateSet(accepting...)
	return n, nil
}

// NewStateSet returns ids in ascending order without duplicates.
func NewStateSet(ids ...StateID) []StateID {
	set := slices.Clone(ids)
	slices.Sort(set)
	return slices.Compact(set)
}

// AddEdge adds an edge labelled with label from one node to another, unless
// an identical edge is already present. A nil label adds an epsilon edge.
func (n *NFA) AddEdge(from, to StateID, label CharSet) error {
	if n.consumed {
		return ErrConsumed
	}
	if err := n.checkState("add edge", from); err != nil {
		return err
	}
	if err := n.checkState("add edge", to); err != nil {
		return err
	}
	n.link(from, to, NewCharSet(label...))
	return nil
}

// AddEpsilon adds an epsilon edge from one node to another.
func (n *NFA) AddEpsilon(from, to StateID) error {
	return n.AddEdge(from, to, Epsilon)
}

// link appends an edge without validation. label must be normalized.
func (n *NFA) link(from, to StateID, label CharSet) {
	for _, e := range n.nodes[from] {
		if e.To == to && e.Label.Equal(label) {
			return
		}
	}
	n.nodes[from] = append(n.nodes[from], Edge{Label: label, To: to})
}

func (n *NFA) checkState(op string, id StateID) error {
	if !n.valid(id) {
		return &IndexError{Op: op, State: id, Size: len(n.nodes)}
	}
	return nil
}

func (n *NFA) valid(id StateID) bool {
	return uint64(id) < uint64(len(n.nodes))
}

// Start returns the start node
func (n *NFA) Start() StateID {
	return n.start
}

// Accepting returns the accepting nodes in ascending order
func (n *NFA) Accepting() []StateID {
	return slices.Clone(n.accepting)
}

// IsAccepting returns true if id is an accepting node
func (n *NFA) IsAccepting(id StateID) bool {
	_, found := slices.BinarySearch(n.accepting, id)
	return found
}

// States returns the total number of nodes
func (n *NFA) States() int {
	return len(n.nodes)
}

// Edges returns the outgoing edges of id, or nil if id is out of range.
func (n *NFA) Edges(id StateID) []Edge {
	if !n.valid(id) {
		return nil
	}
	return slices.Clone(n.nodes[id])
}

// Consumed reports whether the automaton was handed to Concat or Union and
// can no longer be used.
func (n *NFA) Consumed() bool {
	return n.consumed
}

// Initial returns the epsilon-closure of the start node: the active set before
// any input is consumed.
func (n *NFA) Initial() []StateID {
	if n.consumed {
		return nil
	}
	return n.EpsilonClosure([]StateID{n.start})
}

// Clone returns a deep copy. Labels are shared; they are never mutated.
func (n *NFA) Clone() *NFA {
	c := &NFA{
		nodes:     make([][]Edge, len(n.nodes)),
		start:     n.start,
		accepting: slices.Clone(n.accepting),
		consumed:  n.consumed,
	}
	for i, edges := range n.nodes {
		c.nodes[i] = slices.Clone(edges)
	}
	return c
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	if n.consumed {
		return "NFA{consumed}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{states: %d, start: %d, accepting: %v}", len(n.nodes), n.start, n.accepting)
	for i, edges := range n.nodes {
		if len(edges) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n  %d:", i)
		for _, e := range edges {
			b.WriteString(" ")
			b.WriteString(e.String())
		}
	}
	return b.String()
}

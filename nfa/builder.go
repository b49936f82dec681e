package nfa

import "fmt"

// errNilOperand is returned when a combinator is given a nil automaton.
var errNilOperand = fmt.Errorf("%w: nil automaton operand", ErrInvalidState)

// Concat appends other so that the receiver matches its language followed by
// other's. Every accepting node gains an epsilon edge to other's start, and
// other's accepting nodes become the receiver's. The start node is unchanged.
//
// Concat takes ownership of other: after the call other is consumed and any
// further use of it fails with ErrConsumed.
func (n *NFA) Concat(other *NFA) error {
	if err := n.checkOperands(other); err != nil {
		return err
	}
	if err := n.reserve(other.States()); err != nil {
		return err
	}

	start, accepting := other.start, other.accepting
	offset := n.splice(other)

	for _, a := range n.accepting {
		n.link(a, start+offset, Epsilon)
	}
	n.accepting = shift(accepting, offset)
	return nil
}

// Union makes the receiver match its own language or that of any of others.
// A new start node fans out by epsilon to every operand's start, and every
// operand's accepting node joins a new single accepting node. An empty list
// leaves the receiver unchanged.
//
// Union takes ownership of every element of others.
func (n *NFA) Union(others ...*NFA) error {
	if len(others) == 0 {
		return n.usable()
	}
	if err := n.checkOperands(others...); err != nil {
		return err
	}
	grow := 2
	for _, o := range others {
		grow += o.States()
	}
	if err := n.reserve(grow); err != nil {
		return err
	}

	starts := make([]StateID, 0, len(others)+1)
	finals := make([]StateID, 0, len(others)+1)
	starts = append(starts, n.start)
	finals = append(finals, n.accepting...)
	for _, o := range others {
		start, accepting := o.start, o.accepting
		offset := n.splice(o)
		starts = append(starts, start+offset)
		finals = append(finals, shift(accepting, offset)...)
	}

	first := n.addState()
	last := n.addState()
	for _, s := range starts {
		n.link(first, s, Epsilon)
	}
	for _, f := range finals {
		n.link(f, last, Epsilon)
	}
	n.start = first
	n.accepting = []StateID{last}
	return nil
}

// Optional lets the receiver also match the empty string by adding an
// epsilon edge from the start node to every accepting node.
func (n *NFA) Optional() error {
	if err := n.usable(); err != nil {
		return err
	}
	for _, a := range n.accepting {
		n.link(n.start, a, Epsilon)
	}
	return nil
}

// KleeneStar makes the receiver match zero or more repetitions of its
// language. Two nodes are added: a new start that may enter the old automaton
// or skip straight to the new finish, and the new finish, reached from every
// old accepting node. Old accepting nodes also loop back to the old start.
func (n *NFA) KleeneStar() error {
	if err := n.usable(); err != nil {
		return err
	}
	if err := n.reserve(2); err != nil {
		return err
	}

	first := n.addState()
	last := n.addState()
	n.link(first, n.start, Epsilon)
	n.link(first, last, Epsilon)
	for _, a := range n.accepting {
		n.link(a, last, Epsilon)
		n.link(a, n.start, Epsilon)
	}
	n.start = first
	n.accepting = []StateID{last}
	return nil
}

func (n *NFA) usable() error {
	if n.consumed {
		return ErrConsumed
	}
	return nil
}

// checkOperands validates the receiver and the automata about to be spliced
// into it.
func (n *NFA) checkOperands(others ...*NFA) error {
	if err := n.usable(); err != nil {
		return err
	}
	seen := make(map[*NFA]struct{}, len(others))
	for _, o := range others {
		switch {
		case o == nil:
			return errNilOperand
		case o == n:
			return ErrSelfSplice
		case o.consumed:
			return ErrConsumed
		}
		if _, dup := seen[o]; dup {
			return fmt.Errorf("%w: operand listed twice", ErrSelfSplice)
		}
		seen[o] = struct{}{}
	}
	return nil
}

// reserve fails if adding extra nodes would overflow the StateID space.
func (n *NFA) reserve(extra int) error {
	if extra > maxStates-len(n.nodes) {
		return fmt.Errorf("%w: automaton would exceed %d states", ErrTooComplex, maxStates)
	}
	return nil
}

func (n *NFA) addState() StateID {
	id := StateID(len(n.nodes))
	n.nodes = append(n.nodes, nil)
	return id
}

// splice moves other's nodes into the receiver, renumbering edge targets by
// the receiver's node count, consumes other and returns the offset applied.
func (n *NFA) splice(other *NFA) StateID {
	offset := StateID(len(n.nodes))
	for _, edges := range other.nodes {
		moved := make([]Edge, len(edges))
		for i, e := range edges {
			moved[i] = Edge{Label: e.Label, To: e.To + offset}
		}
		n.nodes = append(n.nodes, moved)
	}
	other.release()
	return offset
}

func (n *NFA) release() {
	n.nodes = nil
	n.start = InvalidState
	n.accepting = nil
	n.consumed = true
}

func shift(ids []StateID, offset StateID) []StateID {
	out := make([]StateID, len(ids))
	for i, id := range ids {
		out[i] = id + offset
	}
	return out
}

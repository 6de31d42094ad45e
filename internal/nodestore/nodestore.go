// Package nodestore is the arena of computation nodes described in
// spec.md §4.1. One Store is created per Engine.Compute cycle and
// discarded (never reused) at the start of the next cycle.
package nodestore

import "github.com/takrawm/famengine/internal/fam"

// ID is an opaque, dense-ascending node identifier, private to one
// Store instance.
type ID int

// Kind tags the variant held by a Node.
type Kind int

const (
	Leaf Kind = iota
	BinaryOp
)

// Node is a Leaf (a stored value) or an Op (two already-admitted
// children plus an operator). A Leaf carries no children; an Op
// references exactly two NodeIds (spec.md §3 invariant 4).
type Node struct {
	Kind  Kind
	Value float64

	Left  ID
	Right ID
	Op    fam.Op

	Label string
}

// Store is the per-cycle arena. Not safe for concurrent use, matching
// the engine's single-threaded evaluation model (spec.md §5).
type Store struct {
	nodes []Node
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// AddLeaf admits a Leaf node and returns its id.
func (s *Store) AddLeaf(value float64, label string) ID {
	id := ID(len(s.nodes))
	s.nodes = append(s.nodes, Node{Kind: Leaf, Value: value, Label: label})
	return id
}

// AddOp admits an Op node referencing two already-admitted children.
func (s *Store) AddOp(left, right ID, op fam.Op, label string) ID {
	id := ID(len(s.nodes))
	s.nodes = append(s.nodes, Node{Kind: BinaryOp, Left: left, Right: right, Op: op, Label: label})
	return id
}

// Get returns the node stored at id. Panics if id is out of range,
// which would indicate a builder bug (dangling reference), not a user
// error.
func (s *Store) Get(id ID) Node {
	return s.nodes[id]
}

// Len returns the number of nodes admitted so far.
func (s *Store) Len() int {
	return len(s.nodes)
}

// IterAll returns every admitted node id, in creation (ascending) order.
func (s *Store) IterAll() []ID {
	ids := make([]ID, len(s.nodes))
	for i := range s.nodes {
		ids[i] = ID(i)
	}
	return ids
}

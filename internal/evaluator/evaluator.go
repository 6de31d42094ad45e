// Package evaluator implements the topological (Kahn) evaluation of a
// reachable Node Store subgraph, per spec.md §4.6.
package evaluator

import (
	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/nodestore"
)

// Evaluate computes the value of every node reachable from roots and
// returns a map from node id to its numeric value.
//
// Algorithm (spec.md §4.6):
//  1. DFS from roots to collect the reachable set N.
//  2. Build in-degree and a parents_of adjacency (inverted children).
//  3. Seed a Kahn queue with indegree-0 ids (all Leaves), in ascending
//     NodeId order so ties are broken deterministically (spec.md §5).
//  4. Pop, append to order, decrement each parent's in-degree, enqueue
//     newly-zero ids.
//  5. If |order| != |N|, fail Cycle (defensive; should not occur after
//     the builder's own cycle check).
//  6. Evaluate in order.
func Evaluate(store *nodestore.Store, roots []nodestore.ID) (map[nodestore.ID]float64, error) {
	reachable := reachableSet(store, roots)

	indegree := make(map[nodestore.ID]int, len(reachable))
	parentsOf := make(map[nodestore.ID][]nodestore.ID)
	for id := range reachable {
		indegree[id] = 0
	}
	for id := range reachable {
		n := store.Get(id)
		if n.Kind != nodestore.BinaryOp {
			continue
		}
		indegree[id] += 2
		parentsOf[n.Left] = append(parentsOf[n.Left], id)
		parentsOf[n.Right] = append(parentsOf[n.Right], id)
	}

	queue := make([]nodestore.ID, 0, len(reachable))
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sortIDs(queue)

	order := make([]nodestore.ID, 0, len(reachable))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)

		newlyZero := make([]nodestore.ID, 0)
		for _, d := range parentsOf[u] {
			indegree[d]--
			if indegree[d] == 0 {
				newlyZero = append(newlyZero, d)
			}
		}
		sortIDs(newlyZero)
		queue = append(queue, newlyZero...)
		sortIDs(queue)
	}

	if len(order) != len(reachable) {
		path := make([]fam.CycleKey, 0)
		return nil, &fam.CycleError{Path: path}
	}

	values := make(map[nodestore.ID]float64, len(order))
	for _, id := range order {
		n := store.Get(id)
		switch n.Kind {
		case nodestore.Leaf:
			values[id] = n.Value
		case nodestore.BinaryOp:
			left := values[n.Left]
			right := values[n.Right]
			v, err := apply(n.Op, left, right, n.Label)
			if err != nil {
				return nil, err
			}
			values[id] = v
		}
	}

	return values, nil
}

func apply(op fam.Op, left, right float64, label string) (float64, error) {
	switch op {
	case fam.Add:
		return left + right, nil
	case fam.Sub:
		return left - right, nil
	case fam.Mul:
		return left * right, nil
	case fam.Div:
		if right == 0.0 {
			return 0, &fam.DivisionByZeroError{Label: label}
		}
		return left / right, nil
	default:
		return 0, &fam.DivisionByZeroError{Label: label}
	}
}

func reachableSet(store *nodestore.Store, roots []nodestore.ID) map[nodestore.ID]struct{} {
	seen := make(map[nodestore.ID]struct{})
	stack := append([]nodestore.ID(nil), roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		n := store.Get(id)
		if n.Kind == nodestore.BinaryOp {
			stack = append(stack, n.Left, n.Right)
		}
	}
	return seen
}

func sortIDs(ids []nodestore.ID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

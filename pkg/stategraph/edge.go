package stategraph

// Predicate evaluates state to decide whether an edge may be taken.
//
// Predicates should be pure functions of the state. The engine evaluates
// them in edge insertion order and takes the first edge whose predicate
// returns true.
type Predicate func(state State) bool

// Edge is a directed, optionally guarded transition between two nodes.
//
// A nil When is an unconditional edge (always eligible). Edges are immutable
// values; build them directly or through the Workflow AddEdge helpers.
type Edge struct {
	// From is the source node ID.
	From string

	// To is the target node ID.
	To string

	// When guards the edge. Nil means always true.
	When Predicate
}

// eligible reports whether the edge may be taken for the given state.
func (e Edge) eligible(state State) bool {
	return e.When == nil || e.When(state)
}

// And combines predicates; the result is true when all are.
// A nil predicate counts as always true.
func And(preds ...Predicate) Predicate {
	return func(state State) bool {
		for _, p := range preds {
			if p != nil && !p(state) {
				return false
			}
		}
		return true
	}
}

// Or combines predicates; the result is true when any is.
// A nil predicate counts as always true.
func Or(preds ...Predicate) Predicate {
	return func(state State) bool {
		for _, p := range preds {
			if p == nil || p(state) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate. A nil predicate counts as always true, so
// Not(nil) is never eligible.
func Not(p Predicate) Predicate {
	return func(state State) bool {
		return p != nil && !p(state)
	}
}

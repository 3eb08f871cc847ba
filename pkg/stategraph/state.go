package stategraph

// State is the mutable key-value data threaded through a workflow run.
//
// The engine never shares a State between runs or between nodes: every run
// works on a private clone of the caller's initial state, and every node
// invocation receives its own clone. A node should treat its input as
// disposable and return the state it wants the engine to adopt.
//
// Values are compared by value only; State carries no reference back to the
// workflow that produced it.
type State map[string]any

// Clone returns a top-level copy of the state.
// Values are copied by assignment; State is a flat container and nested
// mutable values are not deep-copied.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a clone of the state with extra applied on top.
// Keys in extra overwrite existing keys. The receiver is not modified.
func (s State) Merge(extra map[string]any) State {
	out := s.Clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Get returns the value for key and whether it exists.
func (s State) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Set stores a value under key.
func (s State) Set(key string, value any) {
	s[key] = value
}

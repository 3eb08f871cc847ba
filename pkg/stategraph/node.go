package stategraph

// Node is an opaque unit of work in a workflow graph.
//
// Execute receives the per-invocation context and a private copy of the
// current state, and returns the state the engine should adopt. It may
// return a *Interrupt (obtained from Context.Interrupt) to suspend the run,
// or any other error to fail it.
//
// A node must be safely re-invocable from scratch at its own ID after a
// suspension; the engine never re-runs earlier nodes on resume.
type Node interface {
	Execute(ctx *Context, state State) (State, error)
}

// NodeFunc adapts a function to the Node interface.
//
// Example:
//
//	wf.AddNode("greet", stategraph.NodeFunc(func(ctx *stategraph.Context, s stategraph.State) (stategraph.State, error) {
//	    s.Set("greeting", "hello")
//	    return s, nil
//	}))
type NodeFunc func(ctx *Context, state State) (State, error)

// Execute implements Node.
func (f NodeFunc) Execute(ctx *Context, state State) (State, error) {
	return f(ctx, state)
}

/*
Package stategraph executes workflows modeled as directed graphs over a
shared key-value state.

# Overview

A Workflow is a set of named nodes connected by directed, optionally
guarded edges. A run starts at the start node with a caller-supplied
State, hands each node a private copy of the current state, adopts the
state the node returns, and follows the first eligible outgoing edge to
the next node. The run ends at the designated end node or at a node with
no outgoing edges.

The graph must be acyclic; Validate (run implicitly before every Run and
Resume) rejects cycles before any node executes. A step ceiling of ten
times the node count backstops the loop regardless.

# Basic Usage

	wf := stategraph.New(stategraph.WithID("order-42"))

	wf.AddNode("reserve", stategraph.NodeFunc(func(ctx *stategraph.Context, s stategraph.State) (stategraph.State, error) {
	    s.Set("reserved", true)
	    return s, nil
	}))
	wf.AddNode("commit", commitNode)
	wf.AddEdge("reserve", "commit")
	wf.SetStartNodeID("reserve")
	wf.SetEndNodeID("commit")

	final, err := wf.Run(context.Background(), stategraph.State{"sku": "A-100"})

# Conditional Edges

Edges carry predicates over the state; the engine takes the first edge
(in insertion order) whose predicate is true. Predicates are plain
functions, or condition expressions compiled by package cond:

	wf.AddConditionalEdge("review", "publish", func(s stategraph.State) bool {
	    ok, _ := s.Get("approved")
	    return ok == true
	})
	wf.AddEdgeWhen("review", "revise", "approved != true")

A node whose eligible edges all evaluate false fails the run with
ErrNoConditionMet. A node with no outgoing edges fails with ErrDeadEnd
when an end node is configured elsewhere, and otherwise ends the run.

# Suspension and Resumption

A node pauses the run by calling Context.Interrupt and returning the
resulting error. The engine persists a snapshot (entering state merged
with the extra data) to the configured suspend store and re-raises the
interrupt to the caller:

	store, _ := suspend.NewSQLiteStore("./runs.db")
	wf := stategraph.New(stategraph.WithID("order-42"), stategraph.WithStore(store))

	_, err := wf.Run(ctx, initial)
	if errors.Is(err, stategraph.ErrInterrupted) {
	    // persisted; resume later, even in a new process
	}

	final, err := wf.Resume(ctx, "approved") // feedback for the waiting node

Inside the suspended node, the same Interrupt call returns the feedback
on resumption:

	fb, err := ctx.Interrupt(map[string]any{"question": "approve order?"})
	if err != nil {
	    return s, err // suspending
	}
	s.Set("decision", fb) // resumed

One record exists per workflow ID; a second interrupt replaces the
first, and a completed run deletes it.

# Events

Workflow.Notifier delivers engine events (run.start, node.complete,
edge.taken, ...) synchronously to registered listeners:

	sub := wf.Notifier().AddListener(event.ListenerFunc(func(evt event.Event) error {
	    fmt.Println(evt.Name, evt.Payload)
	    return nil
	}), event.Wildcard)
	defer sub.Unsubscribe()

A listener that fails or panics is logged and skipped; it never affects
the run or other listeners.
*/
package stategraph

package stategraph

import (
	"context"
	"log/slog"

	"github.com/stategraph/stategraph/pkg/stategraph/suspend"
)

// Context is the per-invocation handle passed to a node.
//
// The engine creates one Context per node invocation with a private state
// snapshot; the only instance that outlives a single invocation is the
// resuming context used for the first node of a resumed run. Context embeds
// the caller's context.Context for deadline and value propagation.
type Context struct {
	context.Context

	workflowID string
	nodeID     string
	state      State
	store      suspend.Store
	logger     *slog.Logger

	// Resume metadata: set only on the first context of a resumed run and
	// cleared by the first Interrupt call.
	resuming bool
	feedback any
}

// WorkflowID returns the identifier of the workflow being run.
func (c *Context) WorkflowID() string {
	return c.workflowID
}

// NodeID returns the identifier of the node this context targets.
func (c *Context) NodeID() string {
	return c.nodeID
}

// State returns the entering-state snapshot for this invocation.
// It is the same private copy handed to the node's Execute call.
func (c *Context) State() State {
	return c.state
}

// Store returns the suspend store, or nil if none is configured.
func (c *Context) Store() suspend.Store {
	return c.store
}

// Logger returns the logger, enriched with workflow and node context.
// Never returns nil.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// IsResuming reports whether this context carries unconsumed resume
// feedback for its node.
func (c *Context) IsResuming() bool {
	return c.resuming
}

// Interrupt suspends the run, or delivers resume feedback.
//
// On a resumed run's first node, the first call returns the feedback passed
// to Resume and clears the resume flag: the node continues synchronously
// instead of suspending again. Feedback is consumed exactly once.
//
// Otherwise Interrupt returns a *Interrupt error carrying the entering
// state merged with extra. The node must return it unchanged:
//
//	fb, err := ctx.Interrupt(map[string]any{"question": "approve?"})
//	if err != nil {
//	    return state, err
//	}
//	// resumed: fb holds the answer
func (c *Context) Interrupt(extra map[string]any) (any, error) {
	if c.resuming {
		fb := c.feedback
		c.resuming = false
		c.feedback = nil
		return fb, nil
	}

	return nil, &Interrupt{
		NodeID:   c.nodeID,
		Snapshot: c.state.Merge(extra),
		Extra:    extra,
	}
}

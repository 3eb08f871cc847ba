package stategraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/stategraph/stategraph/pkg/stategraph/observability"
	"github.com/stategraph/stategraph/pkg/stategraph/suspend"
	"go.opentelemetry.io/otel/trace"
)

// Run executes the workflow from the start node with the given initial
// state and returns the final state.
//
// The graph is validated first; a structural problem (missing start node,
// cycle) fails before any node executes. The run then walks the graph one
// node at a time on the calling goroutine:
//
//   - a node returning a new state continues the walk
//   - a node returning a *Interrupt suspends the run: the record is
//     persisted and the interrupt is returned (match with
//     errors.Is(err, ErrInterrupted)); call Resume later to continue
//   - any other node error is wrapped with node and workflow context and
//     returned
//
// Run works on a private copy of initial; the caller's map is never
// mutated, and two sequential runs cannot leak state into each other.
func (w *Workflow) Run(ctx context.Context, initial State) (State, error) {
	if err := w.Validate(); err != nil {
		w.notify(EventRunError, map[string]any{"error": err.Error()})
		return nil, err
	}
	return w.launch(ctx, initial.Clone(), w.StartNodeID(), nil, false)
}

// launch drives one run (fresh or resumed) with run-level observability.
func (w *Workflow) launch(ctx context.Context, state State, startNode string, first *Context, resumed bool) (result State, runErr error) {
	if ctx == nil {
		ctx = context.Background()
	}

	log := w.settings.logger
	observability.LogRunStart(log, w.id, resumed)
	startTime := time.Now()

	execCtx := ctx
	var runSpan trace.Span
	if w.settings.tracingEnabled {
		execCtx, runSpan = w.settings.spans.StartRunSpan(ctx, w.id)
		defer func() {
			w.settings.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	w.notify(EventRunStart, map[string]any{
		"start_node_id": startNode,
		"resumed":       resumed,
	})

	var steps int
	result, steps, runErr = w.loop(execCtx, state, startNode, first)

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	// Only a genuine *Interrupt counts as a suspension; a node error that
	// merely wraps ErrInterrupted is reported as a failure.
	var intr *Interrupt

	switch {
	case runErr == nil:
		// Completion makes any persisted record stale. Best-effort removal;
		// a failure here must not fail an otherwise successful run.
		if w.store != nil {
			if err := w.store.Delete(w.id); err != nil {
				observability.LogInterruptStoreError(log, w.id, "delete", err)
			}
		}
		w.settings.metrics.RecordRun(ctx, observability.OutcomeSuccess, duration)
		observability.LogRunComplete(log, w.id, durationMs, steps)
		w.notify(EventRunComplete, map[string]any{"steps": steps})

	case errors.As(runErr, &intr):
		w.settings.metrics.RecordRun(ctx, observability.OutcomeInterrupted, duration)
		observability.LogRunInterrupted(log, w.id, intr.NodeID)
		w.notify(EventRunInterrupted, map[string]any{"node_id": intr.NodeID})

	default:
		w.settings.metrics.RecordRun(ctx, observability.OutcomeError, duration)
		observability.LogRunError(log, w.id, runErr, durationMs, lastNodeOf(runErr))
		w.notify(EventRunError, map[string]any{"error": runErr.Error()})
	}

	return result, runErr
}

// loop is the execution state machine: (current node ID, state) advanced
// one node per iteration until a terminal condition or error.
// first, when non-nil, is the prepared context for the initial step of a
// resumed run; every other step gets a fresh context with a private state
// copy.
func (w *Workflow) loop(ctx context.Context, state State, current string, first *Context) (State, int, error) {
	log := w.settings.logger

	limit := w.settings.stepLimit
	if limit <= 0 {
		limit = stepCeilingFactor * w.nodes.Len()
	}

	steps := 0
	for {
		// Liveness guard. Validated acyclic graphs should never trip this;
		// kept so a future relaxation of acyclicity stays bounded.
		if steps >= limit {
			return state, steps, &MaxStepsError{Limit: limit, NodeID: current}
		}

		// Cooperative cancellation between steps only; a node invocation
		// always runs to completion once started.
		select {
		case <-ctx.Done():
			return state, steps, &NodeError{WorkflowID: w.id, NodeID: current, Err: ctx.Err()}
		default:
		}

		node, ok := w.nodes.Get(current)
		if !ok {
			// Unreachable after validation barring concurrent graph mutation.
			err := fmt.Errorf("%w: runtime node %q", ErrNodeNotFound, current)
			w.notify(EventNodeError, map[string]any{"node_id": current, "error": err.Error()})
			return state, steps, err
		}

		observability.LogNodeStart(log, current)
		w.notify(EventNodeStart, map[string]any{"node_id": current})

		nodeTracingCtx := ctx
		var nodeSpan trace.Span
		if w.settings.tracingEnabled {
			nodeTracingCtx, nodeSpan = w.settings.spans.StartNodeSpan(ctx, current)
		}

		nodeCtx := first
		first = nil
		if nodeCtx == nil {
			nodeCtx = w.newNodeContext(nodeTracingCtx, current, state.Clone())
		} else {
			nodeCtx.Context = nodeTracingCtx
		}

		nodeStart := time.Now()
		out, nodeErr := w.invoke(nodeCtx, node)
		nodeDuration := time.Since(nodeStart)
		steps++

		// Interrupts are control flow, not failures; keep them out of the
		// error-side telemetry.
		var intr *Interrupt
		interrupted := errors.As(nodeErr, &intr)
		failErr := nodeErr
		if interrupted {
			failErr = nil
		}
		w.settings.metrics.RecordNodeExecution(nodeTracingCtx, current, nodeDuration, failErr)
		if w.settings.tracingEnabled {
			w.settings.spans.EndSpanWithError(nodeSpan, failErr)
		}

		if nodeErr != nil {
			if interrupted {
				w.notify(EventNodeInterrupt, map[string]any{
					"node_id": intr.NodeID,
					"extra":   intr.Extra,
				})
				if pErr := w.persistInterrupt(nodeTracingCtx, intr); pErr != nil {
					return state, steps, pErr
				}
				return state, steps, intr
			}

			observability.LogNodeError(log, current, nodeErr)
			w.notify(EventNodeError, map[string]any{"node_id": current, "error": nodeErr.Error()})
			return state, steps, &NodeError{WorkflowID: w.id, NodeID: current, Err: nodeErr}
		}

		if out == nil {
			out = State{}
		}
		state = out
		observability.LogNodeComplete(log, current, float64(nodeDuration.Milliseconds()))
		w.notify(EventNodeComplete, map[string]any{"node_id": current})

		// The end node, once run, terminates the walk.
		if w.endNodeID != "" && current == w.endNodeID {
			return state, steps, nil
		}

		next, eligible, err := w.resolveNext(state, current)
		if err != nil {
			return state, steps, err
		}
		if next == "" {
			return state, steps, nil
		}

		if len(eligible) > 1 {
			log.Warn("multiple edge conditions eligible, taking first added",
				slog.String("workflow_id", w.id),
				slog.String("from", current),
				slog.String("chosen", next),
				slog.Any("eligible", eligible),
			)
			w.notify(EventEdgeAmbiguous, map[string]any{
				"from":     current,
				"chosen":   next,
				"eligible": eligible,
			})
		}
		w.notify(EventEdgeTaken, map[string]any{"from": current, "to": next})

		current = next
	}
}

// resolveNext picks the next node from current's outgoing edges.
// Predicates are evaluated in edge-insertion order on the current state;
// the first eligible edge wins. Returns ("", nil, nil) for a normal stop.
func (w *Workflow) resolveNext(state State, current string) (string, []string, error) {
	edges := w.outgoing(current)
	if len(edges) == 0 {
		if w.endNodeID == "" {
			return "", nil, nil
		}
		w.notify(EventDeadEnd, map[string]any{"node_id": current})
		return "", nil, fmt.Errorf("%w: node %q has no outgoing edges and is not the end node", ErrDeadEnd, current)
	}

	var eligible []string
	for _, e := range edges {
		if e.eligible(state) {
			eligible = append(eligible, e.To)
		}
	}
	if len(eligible) == 0 {
		w.notify(EventNoConditionMet, map[string]any{"node_id": current})
		return "", nil, fmt.Errorf("%w: node %q", ErrNoConditionMet, current)
	}
	return eligible[0], eligible, nil
}

// invoke executes a node with panic recovery.
func (w *Workflow) invoke(ctx *Context, node Node) (result State, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ctx.state
			err = &PanicError{
				NodeID: ctx.nodeID,
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	return node.Execute(ctx, ctx.state)
}

// persistInterrupt makes a suspension durable. A save failure is fatal
// because an unsaved suspension cannot be resumed; with no store
// configured the interrupt is logged and still propagates, at the cost of
// resumability.
func (w *Workflow) persistInterrupt(ctx context.Context, intr *Interrupt) error {
	log := w.settings.logger

	if w.store == nil {
		log.Warn("no suspend store configured, interrupt will not be resumable",
			slog.String("workflow_id", w.id),
			slog.String("node_id", intr.NodeID),
		)
		return nil
	}

	rec := suspend.New(w.id, intr.NodeID, intr.Snapshot, intr.Extra)
	data, err := rec.Marshal()
	if err != nil {
		return &PersistenceError{WorkflowID: w.id, Op: "encode", Err: err}
	}
	if err := w.store.Save(w.id, data); err != nil {
		return &PersistenceError{WorkflowID: w.id, Op: "save", Err: err}
	}

	observability.LogInterruptSaved(log, w.id, intr.NodeID, len(data))
	w.settings.metrics.RecordInterrupt(ctx, intr.NodeID, int64(len(data)))
	return nil
}

// newNodeContext builds the per-invocation context with a private state copy.
func (w *Workflow) newNodeContext(ctx context.Context, nodeID string, state State) *Context {
	return &Context{
		Context:    ctx,
		workflowID: w.id,
		nodeID:     nodeID,
		state:      state,
		store:      w.store,
		logger:     observability.EnrichLogger(w.settings.logger, w.id, nodeID),
	}
}

// lastNodeOf extracts the failing node ID from typed run errors.
func lastNodeOf(err error) string {
	var nodeErr *NodeError
	if errors.As(err, &nodeErr) {
		return nodeErr.NodeID
	}
	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		return panicErr.NodeID
	}
	var maxErr *MaxStepsError
	if errors.As(err, &maxErr) {
		return maxErr.NodeID
	}
	return ""
}

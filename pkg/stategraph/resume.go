package stategraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/stategraph/stategraph/pkg/stategraph/observability"
	"github.com/stategraph/stategraph/pkg/stategraph/suspend"
)

// Resume continues a previously interrupted run from its persisted record.
//
// The workflow must be rebuilt with the same ID and the same store the
// suspended run used; the record supplies the node to re-enter and the
// state snapshot taken at suspension. feedback is handed to that node
// through its first Context.Interrupt call, which returns it instead of
// suspending again. From the second node onward the run proceeds exactly
// like a fresh one, including the ability to interrupt again.
//
// With nothing persisted under the workflow ID, Resume fails with
// ErrNoInterrupt. A record naming a node no longer in the graph fails with
// ErrNodeNotFound.
func (w *Workflow) Resume(ctx context.Context, feedback any) (State, error) {
	if err := w.Validate(); err != nil {
		w.notify(EventRunError, map[string]any{"error": err.Error()})
		return nil, err
	}

	if w.store == nil {
		return w.failResume(fmt.Errorf("%w: %s (no suspend store configured)", ErrNoInterrupt, w.id))
	}

	data, err := w.store.Load(w.id)
	if err != nil {
		if errors.Is(err, suspend.ErrNotFound) {
			return w.failResume(fmt.Errorf("%w: %s", ErrNoInterrupt, w.id))
		}
		return w.failResume(&PersistenceError{WorkflowID: w.id, Op: "load", Err: err})
	}

	rec, err := suspend.Unmarshal(data)
	if err != nil {
		return w.failResume(&PersistenceError{WorkflowID: w.id, Op: "decode", Err: err})
	}
	if rec.Version != suspend.Version {
		return w.failResume(&PersistenceError{
			WorkflowID: w.id,
			Op:         "decode",
			Err:        fmt.Errorf("record version %d, want %d", rec.Version, suspend.Version),
		})
	}
	if !w.nodes.Has(rec.NodeID) {
		return w.failResume(fmt.Errorf("%w: persisted node %q", ErrNodeNotFound, rec.NodeID))
	}

	state := State(rec.State).Clone()

	// Prepared context for the re-entered node only: carries the feedback
	// and the resume flag that its first Interrupt call consumes.
	first := &Context{
		workflowID: w.id,
		nodeID:     rec.NodeID,
		state:      state.Clone(),
		store:      w.store,
		logger:     observability.EnrichLogger(w.settings.logger, w.id, rec.NodeID),
		resuming:   true,
		feedback:   feedback,
	}

	return w.launch(ctx, state, rec.NodeID, first, true)
}

// failResume reports a pre-launch resume failure the same way launch
// reports a failed run: listeners see a run error event either way.
func (w *Workflow) failResume(err error) (State, error) {
	w.notify(EventRunError, map[string]any{"error": err.Error()})
	return nil, err
}

package stategraph

import "github.com/stategraph/stategraph/pkg/stategraph/event"

// Event names fired by the engine. Subscribe through Workflow.Notifier with
// one of these names, or "*" for everything.
const (
	EventRunStart       = "run.start"
	EventRunComplete    = "run.complete"
	EventRunError       = "run.error"
	EventRunInterrupted = "run.interrupted"

	EventNodeStart     = "node.start"
	EventNodeComplete  = "node.complete"
	EventNodeError     = "node.error"
	EventNodeInterrupt = "node.interrupt"

	EventEdgeTaken     = "edge.taken"
	EventEdgeAmbiguous = "edge.ambiguous"

	EventDeadEnd        = "run.dead_end"
	EventNoConditionMet = "run.no_condition_met"
)

// notify builds an event enriched with the workflow ID and delivers it
// synchronously to all matching listeners.
func (w *Workflow) notify(name string, payload map[string]any) {
	w.notifier.Notify(event.New(name, w.id, payload))
}

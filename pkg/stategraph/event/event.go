// Package event provides the synchronous notification mechanism for
// workflow runs.
//
// The Notifier fans each event out to every registered listener on the
// publishing goroutine. Listeners register with a name filter and receive a
// Subscription token for removal; a misbehaving listener (error or panic) is
// reported and skipped without affecting delivery to the rest.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one structural occurrence during a workflow run.
// Events are immutable once created.
type Event struct {
	// ID uniquely identifies this event.
	ID string `json:"id"`

	// Name is the event name (e.g. "node.start", "edge.taken").
	Name string `json:"name"`

	// WorkflowID identifies the workflow that produced the event.
	WorkflowID string `json:"workflow_id"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Payload carries event-specific data. The workflow ID is always
	// present under the "workflow_id" key.
	Payload map[string]any `json:"payload,omitempty"`
}

// New creates an event for a workflow, enriching the payload with the
// workflow ID. The payload map is copied; the caller's map is not retained.
func New(name, workflowID string, payload map[string]any) Event {
	enriched := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		enriched[k] = v
	}
	enriched["workflow_id"] = workflowID

	return Event{
		ID:         uuid.New().String(),
		Name:       name,
		WorkflowID: workflowID,
		Timestamp:  time.Now().UTC(),
		Payload:    enriched,
	}
}

package suspend

import (
	"encoding/json"
	"time"
)

// Version is the current record format version.
// Increment when making breaking changes to the record structure.
const Version = 1

// Record is the persisted snapshot of a suspended workflow run.
// It contains everything needed to reconstruct the execution point.
type Record struct {
	// Metadata
	Version    int       `json:"version"`
	WorkflowID string    `json:"workflow_id"`
	NodeID     string    `json:"node_id"`
	CreatedAt  time.Time `json:"created_at"`

	// State is the entering state merged with the extra data supplied at
	// suspension time.
	State map[string]any `json:"state"`

	// Extra is the caller-supplied extra data alone.
	Extra map[string]any `json:"extra,omitempty"`
}

// New creates a record for a suspension at the given node.
func New(workflowID, nodeID string, state, extra map[string]any) *Record {
	return &Record{
		Version:    Version,
		WorkflowID: workflowID,
		NodeID:     nodeID,
		CreatedAt:  time.Now().UTC(),
		State:      state,
		Extra:      extra,
	}
}

// Marshal serializes the record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

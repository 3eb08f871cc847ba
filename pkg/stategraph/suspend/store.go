// Package suspend provides durable storage for suspended workflow runs.
//
// Each workflow ID has at most one live record: Save replaces any prior
// record for the ID, Load returns the most recent one, and Delete is
// idempotent. Serializing concurrent access to a single workflow ID is the
// store implementation's responsibility.
package suspend

import "errors"

// Store persists one suspension record per workflow ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the record data for a workflow, replacing any prior
	// record for the same ID.
	Save(workflowID string, data []byte) error

	// Load retrieves the record for a workflow.
	// Returns ErrNotFound if no record exists.
	Load(workflowID string) ([]byte, error)

	// Delete removes the record for a workflow.
	// Returns nil if no record exists.
	Delete(workflowID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no record exists for the workflow ID.
	ErrNotFound = errors.New("suspend record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("suspend store closed")
)

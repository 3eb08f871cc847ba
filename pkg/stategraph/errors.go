package stategraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph building and validation.
var (
	// ErrDuplicateNode indicates AddNode was called with an existing ID.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrInvalidNode indicates AddNode was called with an empty ID or a
	// nil node.
	ErrInvalidNode = errors.New("invalid node registration")

	// ErrNodeNotFound indicates an edge, start ID, or runtime lookup
	// references a node that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrStartNotSet indicates Run was called before SetStartNodeID.
	ErrStartNotSet = errors.New("start node not set")

	// ErrCycle indicates the edge set contains a directed cycle.
	ErrCycle = errors.New("graph contains a cycle")
)

// Sentinel errors for execution.
var (
	// ErrDeadEnd indicates a node with no outgoing edges was reached while
	// an end node is configured and was not the node in question.
	ErrDeadEnd = errors.New("dead end")

	// ErrNoConditionMet indicates no outgoing edge predicate evaluated true.
	ErrNoConditionMet = errors.New("no edge condition met")

	// ErrMaxSteps indicates the execution loop exceeded its step ceiling.
	ErrMaxSteps = errors.New("exceeded maximum steps")

	// ErrInterrupted marks a suspension. It is a control signal, not a
	// failure: match it with errors.Is to branch on "expected pause".
	ErrInterrupted = errors.New("workflow interrupted")

	// ErrNoInterrupt indicates Resume was called with nothing persisted.
	ErrNoInterrupt = errors.New("no interrupt record for workflow")
)

// IsStructural reports whether err is one of the fatal structural error
// kinds: bad graph shape, unresolved nodes, dead ends, unmet conditions,
// or the runaway-loop guard. Structural errors are never retried.
func IsStructural(err error) bool {
	return errors.Is(err, ErrDuplicateNode) ||
		errors.Is(err, ErrInvalidNode) ||
		errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrStartNotSet) ||
		errors.Is(err, ErrCycle) ||
		errors.Is(err, ErrDeadEnd) ||
		errors.Is(err, ErrNoConditionMet) ||
		errors.Is(err, ErrMaxSteps)
}

// Interrupt is the suspension signal raised by Context.Interrupt.
//
// It travels through the node's error return so the engine can observe it,
// persist the record, and re-raise it to the Run caller. Callers distinguish
// it from genuine failures with errors.Is(err, ErrInterrupted) or errors.As.
type Interrupt struct {
	// NodeID is the node that suspended.
	NodeID string
	// Snapshot is the entering state merged with the extra data.
	Snapshot State
	// Extra is the caller-supplied extra data alone.
	Extra map[string]any
}

// Error implements the error interface.
func (i *Interrupt) Error() string {
	return fmt.Sprintf("workflow interrupted at node %s", i.NodeID)
}

// Unwrap returns ErrInterrupted for errors.Is support.
func (i *Interrupt) Unwrap() error {
	return ErrInterrupted
}

// NodeError wraps a node failure with workflow and node context.
type NodeError struct {
	// WorkflowID identifies the workflow whose run failed.
	WorkflowID string
	// NodeID is the node that failed.
	NodeID string
	// Err is the underlying error from the node.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("workflow %s: node %s: %v", e.WorkflowID, e.NodeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError reports a panic recovered from a node's Execute call.
// The run fails; the panic never crosses the Run boundary.
type PanicError struct {
	// NodeID is the node that panicked.
	NodeID string
	// Value is the recovered panic value.
	Value any
	// Stack is the goroutine stack captured at recovery.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}

// PersistenceError wraps a failure from the suspend store.
//
// A save failure during suspension is fatal: an unsaved suspension cannot be
// resumed, so the engine returns a PersistenceError instead of the
// interrupt. Delete failures after completion are logged, never escalated.
type PersistenceError struct {
	// WorkflowID is the persistence key.
	WorkflowID string
	// Op is the operation that failed ("save", "load", "delete", "decode").
	Op string
	// Err is the underlying store error.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MaxStepsError reports the runaway-loop guard tripping.
type MaxStepsError struct {
	// Limit is the step ceiling that was exceeded.
	Limit int
	// NodeID is the node that would have executed next.
	NodeID string
}

// Error implements the error interface.
func (e *MaxStepsError) Error() string {
	return fmt.Sprintf("exceeded maximum steps (%d) at node %s", e.Limit, e.NodeID)
}

// Unwrap returns ErrMaxSteps for errors.Is support.
func (e *MaxStepsError) Unwrap() error {
	return ErrMaxSteps
}

package stategraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStructural(t *testing.T) {
	structural := []error{
		ErrDuplicateNode,
		ErrInvalidNode,
		ErrNodeNotFound,
		ErrStartNotSet,
		ErrCycle,
		ErrDeadEnd,
		ErrNoConditionMet,
		ErrMaxSteps,
		&MaxStepsError{Limit: 5, NodeID: "a"},
	}
	for _, err := range structural {
		assert.True(t, IsStructural(err), "expected structural: %v", err)
	}

	notStructural := []error{
		nil,
		ErrInterrupted,
		&Interrupt{NodeID: "a"},
		errors.New("arbitrary"),
		&NodeError{WorkflowID: "w", NodeID: "a", Err: errors.New("x")},
	}
	for _, err := range notStructural {
		assert.False(t, IsStructural(err), "expected non-structural: %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	intr := &Interrupt{NodeID: "approve"}
	assert.Contains(t, intr.Error(), "approve")
	assert.ErrorIs(t, intr, ErrInterrupted)

	nodeErr := &NodeError{WorkflowID: "w1", NodeID: "a", Err: errors.New("boom")}
	assert.Contains(t, nodeErr.Error(), "w1")
	assert.Contains(t, nodeErr.Error(), "boom")

	maxErr := &MaxStepsError{Limit: 30, NodeID: "b"}
	assert.Contains(t, maxErr.Error(), "30")
	assert.ErrorIs(t, maxErr, ErrMaxSteps)

	persistErr := &PersistenceError{WorkflowID: "w1", Op: "save", Err: errors.New("disk")}
	assert.Contains(t, persistErr.Error(), "save")
	assert.NotErrorIs(t, persistErr, ErrInterrupted)

	panicErr := &PanicError{NodeID: "c", Value: 42}
	assert.Contains(t, panicErr.Error(), "42")
}

package suspend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PopulatesRecord(t *testing.T) {
	rec := New("w1", "approve", map[string]any{"k": "v"}, map[string]any{"question": "ok?"})

	assert.Equal(t, Version, rec.Version)
	assert.Equal(t, "w1", rec.WorkflowID)
	assert.Equal(t, "approve", rec.NodeID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, "v", rec.State["k"])
	assert.Equal(t, "ok?", rec.Extra["question"])
}

func TestRecord_RoundTrip(t *testing.T) {
	rec := New("w1", "approve", map[string]any{
		"count":  float64(3),
		"status": "pending",
		"nested": map[string]any{"deep": true},
	}, nil)

	data, err := rec.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Version, got.Version)
	assert.Equal(t, rec.WorkflowID, got.WorkflowID)
	assert.Equal(t, rec.NodeID, got.NodeID)
	assert.Equal(t, rec.State, got.State)
	assert.Nil(t, got.Extra)
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("{broken"))
	assert.Error(t, err)
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_DoesNothingSafely(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordNodeExecution(ctx, "a", 100*time.Millisecond, nil)
		m.RecordNodeExecution(ctx, "a", 0, errors.New("x"))
		m.RecordNodeExecution(nil, "", 0, nil)
		m.RecordRun(ctx, OutcomeSuccess, time.Second)
		m.RecordRun(nil, OutcomeInterrupted, 0)
		m.RecordInterrupt(ctx, "a", 1024)
		m.RecordInterrupt(nil, "", -1)
	})
}

func TestNoopSpanManager_ReturnsContextUnchanged(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	runCtx, runSpan := sm.StartRunSpan(ctx, "w1")
	assert.Equal(t, ctx, runCtx)
	assert.NotNil(t, runSpan)
	assert.False(t, runSpan.IsRecording())

	nodeCtx, nodeSpan := sm.StartNodeSpan(ctx, "a")
	assert.Equal(t, ctx, nodeCtx)
	assert.False(t, nodeSpan.IsRecording())

	assert.NotPanics(t, func() {
		sm.EndSpanWithError(runSpan, errors.New("x"))
		sm.EndSpanWithError(nil, nil)
		sm.AddSpanEvent(ctx, "evt", attribute.String("k", "v"))
		sm.AddSpanEvent(nil, "")
	})
}

package stategraph

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stategraph/stategraph/pkg/stategraph/event"
)

// quietLogger discards log output so expected failures stay out of test logs.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestWorkflow creates a workflow with a quiet logger and a fixed ID.
func newTestWorkflow(t *testing.T, opts ...Option) *Workflow {
	t.Helper()
	base := []Option{WithID("wf-test"), WithLogger(quietLogger())}
	return New(append(base, opts...)...)
}

// Helper node functions

// trackingNode records its execution order and stamps the state.
func trackingNode(name string, tracker *[]string) NodeFunc {
	return func(ctx *Context, s State) (State, error) {
		*tracker = append(*tracker, name)
		s.Set("last", name)
		return s, nil
	}
}

// settingNode sets one key and passes the state on.
func settingNode(key string, value any) NodeFunc {
	return func(ctx *Context, s State) (State, error) {
		s.Set(key, value)
		return s, nil
	}
}

// failingNode returns the given error.
func failingNode(err error) NodeFunc {
	return func(ctx *Context, s State) (State, error) {
		return s, err
	}
}

// panicNode panics with the given value.
func panicNode(value any) NodeFunc {
	return func(ctx *Context, s State) (State, error) {
		panic(value)
	}
}

// buildChain adds tracking nodes wired in a linear chain and sets the first
// as start and the last as end.
func buildChain(t *testing.T, wf *Workflow, tracker *[]string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, wf.AddNode(name, trackingNode(name, tracker)))
	}
	for i := 0; i < len(names)-1; i++ {
		require.NoError(t, wf.AddEdge(names[i], names[i+1]))
	}
	require.NoError(t, wf.SetStartNodeID(names[0]))
	wf.SetEndNodeID(names[len(names)-1])
}

// eventCollector is a listener that records events in delivery order.
type eventCollector struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *eventCollector) OnEvent(evt event.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

// names returns the recorded event names in order.
func (c *eventCollector) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, evt := range c.events {
		out[i] = evt.Name
	}
	return out
}

// indexOf returns the position of the first event with the given name, or -1.
func (c *eventCollector) indexOf(name string) int {
	for i, n := range c.names() {
		if n == name {
			return i
		}
	}
	return -1
}

// collect registers a wildcard collector on the workflow.
func collect(t *testing.T, wf *Workflow) *eventCollector {
	t.Helper()
	c := &eventCollector{}
	sub := wf.Notifier().AddListener(c, event.Wildcard)
	t.Cleanup(sub.Unsubscribe)
	return c
}

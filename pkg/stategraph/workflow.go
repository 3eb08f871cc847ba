package stategraph

import (
	"fmt"
	"sync"

	"github.com/stategraph/stategraph/pkg/stategraph/cond"
	"github.com/stategraph/stategraph/pkg/stategraph/event"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
	"github.com/stategraph/stategraph/pkg/stategraph/suspend"
)

// Workflow is a configured graph of nodes and edges plus the run/resume
// engine that drives state through it.
//
// Build the graph with AddNode, AddEdge, SetStartNodeID, and SetEndNodeID,
// then call Run. The node table and edge list must be fully built before
// the first Run and must not be mutated concurrently with an in-flight run;
// this is a documented precondition, not internally enforced.
//
// Example:
//
//	wf := stategraph.New(stategraph.WithID("order-42"), stategraph.WithStore(store))
//	wf.AddNode("reserve", reserveNode)
//	wf.AddNode("approve", approveNode)
//	wf.AddNode("commit", commitNode)
//	wf.AddEdge("reserve", "approve")
//	wf.AddEdge("approve", "commit")
//	wf.SetStartNodeID("reserve")
//	wf.SetEndNodeID("commit")
//
//	final, err := wf.Run(ctx, stategraph.State{"sku": "A-100"})
type Workflow struct {
	mu sync.Mutex

	id          string
	nodes       *registry.Registry[string, Node]
	edges       []Edge
	startNodeID string
	endNodeID   string

	settings settings
	notifier *event.Notifier
	store    suspend.Store
}

// AddNode adds a node to the workflow under the given ID.
// Fails with ErrDuplicateNode if the ID is already taken and with
// ErrInvalidNode for an empty ID or a nil node.
func (w *Workflow) AddNode(id string, node Node) error {
	if id == "" {
		return fmt.Errorf("%w: empty node ID", ErrInvalidNode)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node %q", ErrInvalidNode, id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.nodes.Has(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	w.nodes.Register(id, node)
	return nil
}

// AddEdge adds an unconditional edge between two existing nodes.
// Edge order matters: when several edges from one node are eligible, the
// engine takes the one added first.
func (w *Workflow) AddEdge(from, to string) error {
	return w.AddEdges(Edge{From: from, To: to})
}

// AddConditionalEdge adds an edge guarded by a predicate over the state.
func (w *Workflow) AddConditionalEdge(from, to string, when Predicate) error {
	return w.AddEdges(Edge{From: from, To: to, When: when})
}

// AddEdgeWhen adds an edge guarded by a condition expression, e.g.
// "decision == 'approve'" or "retries < 3 and status != 'failed'".
// See package cond for the expression syntax. The expression is compiled
// here, so a malformed one fails at build time rather than mid-run.
func (w *Workflow) AddEdgeWhen(from, to, expr string) error {
	fn, err := cond.Compile(expr)
	if err != nil {
		return fmt.Errorf("edge %s -> %s: %w", from, to, err)
	}
	return w.AddConditionalEdge(from, to, func(s State) bool {
		return fn(s)
	})
}

// AddEdges adds pre-built edges in order.
// Fails with ErrNodeNotFound if any endpoint is not in the node table;
// edges before the failing one are kept.
func (w *Workflow) AddEdges(edges ...Edge) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range edges {
		if !w.nodes.Has(e.From) {
			return fmt.Errorf("%w: edge source %q", ErrNodeNotFound, e.From)
		}
		if !w.nodes.Has(e.To) {
			return fmt.Errorf("%w: edge target %q", ErrNodeNotFound, e.To)
		}
		w.edges = append(w.edges, e)
	}
	return nil
}

// SetStartNodeID designates the node every run begins at.
// Fails with ErrNodeNotFound if the ID is not in the node table.
func (w *Workflow) SetStartNodeID(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.nodes.Has(id) {
		return fmt.Errorf("%w: start node %q", ErrNodeNotFound, id)
	}
	w.startNodeID = id
	return nil
}

// SetEndNodeID designates the terminal node. The ID is not checked here;
// Validate warns (non-fatally) if it never resolves. An absent end node is
// legal: a run then stops at the first node with no outgoing edges.
func (w *Workflow) SetEndNodeID(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.endNodeID = id
}

// ID returns the workflow instance identifier, which is also the
// persistence key for suspension records.
func (w *Workflow) ID() string {
	return w.id
}

// NodeIDs returns all node identifiers. The order is not guaranteed.
func (w *Workflow) NodeIDs() []string {
	return w.nodes.Keys()
}

// HasNode checks if a node exists in the workflow.
func (w *Workflow) HasNode(id string) bool {
	return w.nodes.Has(id)
}

// Node returns the node registered under id and whether it exists.
func (w *Workflow) Node(id string) (Node, bool) {
	return w.nodes.Get(id)
}

// Edges returns a copy of the edge list in insertion order.
func (w *Workflow) Edges() []Edge {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Edge, len(w.edges))
	copy(out, w.edges)
	return out
}

// StartNodeID returns the configured start node ID.
func (w *Workflow) StartNodeID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.startNodeID
}

// EndNodeID returns the configured end node ID, or "" if none.
func (w *Workflow) EndNodeID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.endNodeID
}

// Store returns the suspend store, or nil if none is configured.
func (w *Workflow) Store() suspend.Store {
	return w.store
}

// Notifier returns the event notifier. Register listeners on it to observe
// run, node, and edge events; it is safe to do so from any goroutine, even
// while a run is in flight.
func (w *Workflow) Notifier() *event.Notifier {
	return w.notifier
}

// outgoing returns the edges leaving a node, in insertion order.
func (w *Workflow) outgoing(from string) []Edge {
	var out []Edge
	for _, e := range w.edges {
		if e.From == from {
			out = append(out, e)
		}
	}
	return out
}

package stategraph

import (
	"fmt"
	"log/slog"
)

// Validate checks the workflow structure. It runs implicitly at the top of
// every Run and Resume; calling it directly is useful to surface graph
// mistakes at build time.
//
// Checks (in order):
//  1. Start node ID must be set and resolve to a node (fatal).
//  2. A set end node ID that does not resolve is logged as a warning only;
//     such a run can still finish at a node with no outgoing edges.
//  3. The edge set must be acyclic: a depth-first search from every node
//     must find no back-edge (fatal). Cost O(V+E).
//
// Edge endpoints are already verified at AddEdge time, so dangling edges
// cannot exist here.
func (w *Workflow) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.startNodeID == "" {
		return fmt.Errorf("%w: workflow %s", ErrStartNotSet, w.id)
	}
	if !w.nodes.Has(w.startNodeID) {
		return fmt.Errorf("%w: start node %q", ErrNodeNotFound, w.startNodeID)
	}

	if w.endNodeID != "" && !w.nodes.Has(w.endNodeID) {
		w.settings.logger.Warn("end node does not resolve",
			slog.String("workflow_id", w.id),
			slog.String("end_node_id", w.endNodeID),
		)
	}

	if from, to, ok := w.findCycle(); ok {
		return fmt.Errorf("%w: back-edge %s -> %s", ErrCycle, from, to)
	}

	return nil
}

// dfsColor marks node progress during cycle detection.
type dfsColor uint8

const (
	colorWhite dfsColor = iota // unvisited
	colorGray                  // on the current DFS stack
	colorBlack                 // fully explored
)

// findCycle runs an iterative depth-first search from every node and
// returns the first back-edge found.
func (w *Workflow) findCycle() (from, to string, found bool) {
	adjacency := make(map[string][]string)
	for _, e := range w.edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	colors := make(map[string]dfsColor, w.nodes.Len())

	var visit func(id string) (string, string, bool)
	visit = func(id string) (string, string, bool) {
		colors[id] = colorGray
		for _, next := range adjacency[id] {
			switch colors[next] {
			case colorGray:
				return id, next, true
			case colorWhite:
				if f, t, ok := visit(next); ok {
					return f, t, ok
				}
			}
		}
		colors[id] = colorBlack
		return "", "", false
	}

	for _, id := range w.nodes.Keys() {
		if colors[id] == colorWhite {
			if f, t, ok := visit(id); ok {
				return f, t, true
			}
		}
	}
	return "", "", false
}

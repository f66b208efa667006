// Package graph holds the canonical task node set pushed by the server.
//
// The store is written only by the sync ingester and read by every derived
// view. All access happens on the engine loop; the store is not safe for
// concurrent use and carries no locks by design — serial event processing is
// the synchronization mechanism.
package graph

import (
	"maps"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// Store is the canonical mapping of task id to node, plus the graph-edge
// metadata and project goal carried by the same snapshot.
type Store struct {
	nodes       map[string]*model.TaskNode
	edges       []model.GraphEdge
	projectGoal string
	loaded      bool
	stale       bool
}

// NewStore creates an empty store. Loaded stays false until the first
// non-empty snapshot is observed.
func NewStore() *Store {
	return &Store{nodes: map[string]*model.TaskNode{}}
}

// ReplaceAll swaps in a full snapshot as a single state transition. Nothing
// from the previous snapshot survives; stale nodes are never merged.
func (s *Store) ReplaceAll(nodes map[string]*model.TaskNode, edges []model.GraphEdge, projectGoal string) {
	if nodes == nil {
		nodes = map[string]*model.TaskNode{}
	}
	s.nodes = nodes
	s.edges = edges
	s.projectGoal = projectGoal
	s.stale = false
	if len(nodes) > 0 {
		s.loaded = true
	}
}

// Nodes returns a shallow copy of the node map. Callers must treat the
// contained nodes as immutable.
func (s *Store) Nodes() map[string]*model.TaskNode {
	return maps.Clone(s.nodes)
}

// Node looks up a single node by id.
func (s *Store) Node(id string) (*model.TaskNode, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of nodes in the current snapshot.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Edges returns the annotated graph edges of the current snapshot.
func (s *Store) Edges() []model.GraphEdge {
	return s.edges
}

// ProjectGoal returns the overall project goal, if the server sent one.
func (s *Store) ProjectGoal() string {
	return s.projectGoal
}

// Loaded reports whether a non-empty snapshot has ever been observed. The
// UI uses this as the inverse of its initial "loading" flag.
func (s *Store) Loaded() bool {
	return s.loaded
}

// MarkStale flags the snapshot as possibly out of date, typically after a
// transport reconnect. The flag clears on the next ReplaceAll.
func (s *Store) MarkStale() {
	s.stale = true
}

// Stale reports whether the snapshot may be out of date.
func (s *Store) Stale() bool {
	return s.stale
}

// Stats aggregates node counts by status for the current snapshot.
type Stats struct {
	Total    int
	ByStatus map[model.Status]int
}

// Stats recomputes aggregate counts from the node set.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.nodes), ByStatus: map[model.Status]int{}}
	for _, n := range s.nodes {
		st.ByStatus[n.Status]++
	}
	return st
}

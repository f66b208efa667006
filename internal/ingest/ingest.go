// Package ingest is the single entry point for server-pushed events. It
// applies graph snapshots to the store atomically and routes HITL events to
// the coordinator. It performs no payload validation beyond task id
// uniqueness; malformed snapshots are tolerated as "no data yet".
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/taskhelm/internal/events"
	"github.com/alfredjeanlab/taskhelm/internal/graph"
	"github.com/alfredjeanlab/taskhelm/internal/hitl"
	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// Ingester routes inbound events to the store and the HITL coordinator.
type Ingester struct {
	store  *graph.Store
	coord  *hitl.Coordinator
	logger *slog.Logger
}

// New creates an ingester writing to store and forwarding HITL events to
// coord.
func New(store *graph.Store, coord *hitl.Coordinator, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{store: store, coord: coord, logger: logger}
}

// HandleRaw decodes one transport message and applies it. It reports whether
// session state changed: a snapshot was applied, or a checkpoint request was
// adopted. Unknown topics are logged and skipped; decode failures are
// returned but never fatal to the caller's loop.
func (i *Ingester) HandleRaw(msg events.Message) (bool, error) {
	switch msg.Topic {
	case events.TopicGraphSnapshot:
		var snap events.GraphSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			return false, fmt.Errorf("decoding graph snapshot: %w", err)
		}
		return i.ApplySnapshot(&snap), nil

	case events.TopicHITLRequest:
		var req model.HITLRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return false, fmt.Errorf("decoding hitl request: %w", err)
		}
		return i.ApplyHITLEvent(&req), nil

	default:
		i.logger.Debug("ignoring event on unknown topic", "topic", msg.Topic)
		return false, nil
	}
}

// ApplySnapshot replaces the node set and edge metadata as a single state
// transition and reports whether the store changed. A snapshot with a missing
// or empty node map is treated as "no data yet" and leaves the store
// untouched. Duplicate task ids within one snapshot resolve
// last-in-iteration-order wins; this is a defined collision policy, not an
// error.
func (i *Ingester) ApplySnapshot(snap *events.GraphSnapshot) bool {
	if snap == nil || len(snap.AllNodes) == 0 {
		i.logger.Debug("snapshot carried no nodes, keeping current state")
		return false
	}

	nodes := make(map[string]*model.TaskNode, len(snap.AllNodes))
	for key, n := range snap.AllNodes {
		if n == nil {
			continue
		}
		if n.TaskID == "" {
			n.TaskID = key
		}
		nodes[n.TaskID] = n
	}

	var edges []model.GraphEdge
	for _, g := range snap.Graphs {
		if g == nil {
			continue
		}
		edges = append(edges, g.Edges...)
	}

	i.store.ReplaceAll(nodes, edges, snap.OverallProjectGoal)
	i.logger.Debug("applied snapshot", "nodes", len(nodes), "edges", len(edges))
	return true
}

// ApplyHITLEvent forwards a checkpoint request to the coordinator and
// reports whether it was adopted. Stale requests are logged, not surfaced.
func (i *Ingester) ApplyHITLEvent(req *model.HITLRequest) bool {
	adopted := i.coord.ReceiveRequest(req)
	if !adopted {
		i.logger.Info("checkpoint request not adopted",
			"request_id", req.RequestID, "checkpoint", req.CheckpointName)
	}
	return adopted
}

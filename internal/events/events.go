// Package events defines the inbound event channel from the orchestration
// server: topics, payload shapes, and the NATS-backed subscriber. The channel
// collaborator guarantees delivery in the order the server emitted events;
// reconnect and backoff live here, not in the engine.
package events

import (
	"context"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// Event topic constants.
const (
	TopicGraphSnapshot = "taskhelm.graph.snapshot"
	TopicHITLRequest   = "taskhelm.hitl.request"

	// TopicAll matches every taskhelm subject.
	TopicAll = "taskhelm.>"
)

// GraphSnapshot is the payload of a graph_snapshot event: a full replacement
// view of the task graph.
type GraphSnapshot struct {
	AllNodes           map[string]*model.TaskNode `json:"all_nodes"`
	Graphs             map[string]*GraphPayload   `json:"graphs,omitempty"`
	OverallProjectGoal string                     `json:"overall_project_goal,omitempty"`
}

// GraphPayload carries the annotated edges of one graph in a snapshot.
type GraphPayload struct {
	Edges []model.GraphEdge `json:"edges"`
}

// Message is one raw event as delivered by the transport.
type Message struct {
	Topic string
	Data  []byte
}

// Subscriber receives events from the transport channel.
type Subscriber interface {
	// Subscribe delivers raw events on the returned channel. Call the
	// returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}

// Publisher is the interface for emitting events onto the channel; the
// client uses it only in tests and tooling, the server is the real emitter.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

package model

// EdgeType annotates what a graph edge represents. Edge annotations are
// supplied by the server; the client never infers them.
type EdgeType string

const (
	EdgeData      EdgeType = "data"      // data dependency between nodes
	EdgeExecution EdgeType = "execution" // temporal execution order
)

// GraphEdge represents a directed relationship between two task nodes.
type GraphEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type,omitempty"`
}

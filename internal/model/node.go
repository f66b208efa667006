package model

import (
	"encoding/json"
	"time"
)

// NodeType distinguishes planning nodes from execution nodes.
type NodeType string

const (
	NodePlan    NodeType = "PLAN"
	NodeExecute NodeType = "EXECUTE"
)

// String returns the string representation of the node type.
func (n NodeType) String() string {
	return string(n)
}

// IsValid checks whether the node type is a known value.
func (n NodeType) IsValid() bool {
	switch n {
	case NodePlan, NodeExecute:
		return true
	}
	return false
}

// Status represents the current state of a task node.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusReady       Status = "READY"
	StatusRunning     Status = "RUNNING"
	StatusPlanDone    Status = "PLAN_DONE"
	StatusAggregating Status = "AGGREGATING"
	StatusDone        Status = "DONE"
	StatusFailed      Status = "FAILED"
	StatusNeedsReplan Status = "NEEDS_REPLAN"
	StatusCancelled   Status = "CANCELLED"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReady, StatusRunning, StatusPlanDone,
		StatusAggregating, StatusDone, StatusFailed, StatusNeedsReplan,
		StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status is a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// TaskNode is one unit of work in the hierarchical execution graph.
// Nodes are created and fully replaced by snapshot application; the
// client never mutates a node in place.
type TaskNode struct {
	TaskID            string          `json:"task_id"`
	Goal              string          `json:"goal"`
	TaskType          string          `json:"task_type,omitempty"`
	NodeType          NodeType        `json:"node_type"`
	Layer             int             `json:"layer"`
	ParentNodeID      string          `json:"parent_node_id,omitempty"`
	Status            Status          `json:"status"`
	AgentName         string          `json:"agent_name,omitempty"`
	OutputSummary     string          `json:"output_summary,omitempty"`
	FullResult        json.RawMessage `json:"full_result,omitempty"`
	Error             string          `json:"error,omitempty"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	PlannedSubTaskIDs []string        `json:"planned_sub_task_ids,omitempty"`
}

package model

import "encoding/json"

// ReviewKind tags what a checkpoint's review payload contains.
type ReviewKind string

const (
	ReviewPlan    ReviewKind = "plan"    // a proposed sub-task plan
	ReviewTask    ReviewKind = "task"    // metadata for a single task node
	ReviewGeneric ReviewKind = "generic" // free-form payload
)

// ProposedTask is one entry of a server-proposed plan under review.
type ProposedTask struct {
	Goal      string `json:"goal"`
	TaskType  string `json:"task_type,omitempty"`
	AgentName string `json:"agent_name,omitempty"`
}

// ReviewPayload is the decoded form of a checkpoint's data_for_review.
// The payload shape is decided once at ingestion; Raw always carries the
// original bytes.
type ReviewPayload struct {
	Kind ReviewKind
	Plan []ProposedTask // set when Kind == ReviewPlan
	Task *TaskNode      // set when Kind == ReviewTask
	Raw  json.RawMessage
}

// ClassifyReview decodes data_for_review into a tagged payload. Malformed or
// unrecognized payloads classify as generic; classification never fails.
func ClassifyReview(raw json.RawMessage) ReviewPayload {
	p := ReviewPayload{Kind: ReviewGeneric, Raw: raw}
	if len(raw) == 0 {
		return p
	}

	var probe struct {
		ProposedPlan []ProposedTask `json:"proposed_plan"`
		Task         *TaskNode      `json:"task"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return p
	}
	switch {
	case len(probe.ProposedPlan) > 0:
		p.Kind = ReviewPlan
		p.Plan = probe.ProposedPlan
	case probe.Task != nil && probe.Task.TaskID != "":
		p.Kind = ReviewTask
		p.Task = probe.Task
	}
	return p
}

package model

import (
	"encoding/json"
	"time"
)

// ReviewPhase is an explicit checkpoint-phase tag. Servers that carry it make
// post-modification correlation exact; older servers leave it empty and the
// client falls back to matching on the checkpoint name.
type ReviewPhase string

const (
	PhaseUnspecified  ReviewPhase = ""
	PhaseInitialPlan  ReviewPhase = "initial_plan"
	PhaseModifiedPlan ReviewPhase = "modified_plan"
)

// HITLRequest is a server-issued checkpoint awaiting human input.
// A request is never mutated; a later request with a different RequestID
// supersedes it.
type HITLRequest struct {
	RequestID      string          `json:"request_id"`
	CheckpointName string          `json:"checkpoint_name"`
	ReviewPhase    ReviewPhase     `json:"review_phase,omitempty"`
	ContextMessage string          `json:"context_message,omitempty"`
	DataForReview  json.RawMessage `json:"data_for_review,omitempty"`
	NodeID         string          `json:"node_id,omitempty"`
	CurrentAttempt int             `json:"current_attempt"`
	Timestamp      time.Time       `json:"timestamp,omitzero"` // display only
}

// HITLAction is the operator's decision on a checkpoint.
type HITLAction string

const (
	ActionApprove HITLAction = "approve"
	ActionModify  HITLAction = "modify"
	ActionAbort   HITLAction = "abort"
)

// String returns the string representation of the action.
func (a HITLAction) String() string {
	return string(a)
}

// IsValid checks whether the action is a known value.
func (a HITLAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionModify, ActionAbort:
		return true
	}
	return false
}

// HITLResponse is the operator's answer to a checkpoint, sent back to the
// server over the outbound boundary.
type HITLResponse struct {
	RequestID                string     `json:"request_id"`
	Action                   HITLAction `json:"action"`
	ModificationInstructions string     `json:"modification_instructions,omitempty"`
}

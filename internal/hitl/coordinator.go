// Package hitl implements the checkpoint request/response correlation state
// machine for the human-in-the-loop protocol.
//
// The coordinator owns the current pending checkpoint request and the
// "awaiting replan" sub-state that follows a modify response. It is driven
// entirely from the engine loop; it is not safe for concurrent use.
package hitl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// State is the coordinator's position in the checkpoint lifecycle.
type State string

const (
	// StateIdle: no pending request.
	StateIdle State = "idle"
	// StateAwaitingUserChoice: a request is pending and the operator has not
	// yet chosen an action.
	StateAwaitingUserChoice State = "awaiting_user_choice"
	// StateSubmittingResponse: a response has been dispatched and the
	// transport has not yet acknowledged it.
	StateSubmittingResponse State = "submitting_response"
	// StateAwaitingModifiedPlan: a modify response was acknowledged and the
	// coordinator is waiting for the replanned checkpoint.
	StateAwaitingModifiedPlan State = "awaiting_modified_plan"
)

// Sentinel errors returned by coordinator operations.
var (
	ErrNoPendingRequest     = errors.New("no pending checkpoint request")
	ErrInvalidAction        = errors.New("invalid checkpoint action")
	ErrInstructionsRequired = errors.New("modify requires modification instructions")
	ErrCloseBlocked         = errors.New("checkpoint cannot be dismissed while a response is in flight")
)

// Dispatcher delivers a checkpoint response to the server. The coordinator
// never retries a failed dispatch; it rolls back and lets the operator retry.
type Dispatcher interface {
	SendHITLResponse(ctx context.Context, resp *model.HITLResponse) error
}

// Coordinator is the HITL correlation state machine.
type Coordinator struct {
	dispatcher Dispatcher
	logger     *slog.Logger

	state           State
	current         *model.HITLRequest
	review          model.ReviewPayload
	lastProcessedID string

	chosenAction model.HITLAction
	instructions string
}

// New creates an idle coordinator dispatching through d.
func New(d Dispatcher, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{dispatcher: d, logger: logger, state: StateIdle}
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Current returns the pending request, or nil when idle.
func (c *Coordinator) Current() *model.HITLRequest {
	return c.current
}

// Review returns the decoded review payload for the current request.
func (c *Coordinator) Review() model.ReviewPayload {
	return c.review
}

// ChosenAction returns the action picked while awaiting user choice, if any.
func (c *Coordinator) ChosenAction() model.HITLAction {
	return c.chosenAction
}

// Instructions returns the modification instructions retained across a
// modify round-trip.
func (c *Coordinator) Instructions() string {
	return c.instructions
}

// LastProcessedID returns the request id of the last fully-processed
// checkpoint, used for stale-event correlation.
func (c *Coordinator) LastProcessedID() string {
	return c.lastProcessedID
}

// ReceiveRequest feeds a server-issued checkpoint into the state machine and
// reports whether it was adopted.
//
// From Idle or AwaitingUserChoice a fresh request always pre-empts an old
// unanswered one; only one checkpoint can be outstanding at a time. While
// awaiting a modified plan, only a request with a new request id and a
// post-modification checkpoint qualifies; anything else is stale and is
// ignored so the pending modification cannot be pre-empted by an unrelated
// or duplicate event. Requests arriving mid-submission are ignored as well.
func (c *Coordinator) ReceiveRequest(req *model.HITLRequest) bool {
	if req == nil || req.RequestID == "" {
		return false
	}

	switch c.state {
	case StateIdle, StateAwaitingUserChoice:
		c.adopt(req)
		return true

	case StateAwaitingModifiedPlan:
		if req.RequestID == c.lastProcessedID || !IsPostModification(req) {
			c.logger.Debug("ignoring stale checkpoint while awaiting modified plan",
				"request_id", req.RequestID,
				"checkpoint", req.CheckpointName,
				"last_processed_id", c.lastProcessedID)
			return false
		}
		c.adopt(req)
		return true

	default: // StateSubmittingResponse
		c.logger.Debug("ignoring checkpoint arriving mid-submission",
			"request_id", req.RequestID, "checkpoint", req.CheckpointName)
		return false
	}
}

func (c *Coordinator) adopt(req *model.HITLRequest) {
	c.current = req
	c.review = model.ClassifyReview(req.DataForReview)
	c.chosenAction = ""
	c.instructions = ""
	c.state = StateAwaitingUserChoice
}

// SubmitResponse dispatches the operator's decision for the pending request.
// Valid only while awaiting user choice; modify requires non-empty
// instructions. On dispatch failure the coordinator reverts to awaiting user
// choice with the same request and returns the error; it never auto-retries.
func (c *Coordinator) SubmitResponse(ctx context.Context, action model.HITLAction, instructions string) error {
	if c.state != StateAwaitingUserChoice || c.current == nil {
		return fmt.Errorf("%w: state is %s", ErrNoPendingRequest, c.state)
	}
	if !action.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if action == model.ActionModify && instructions == "" {
		return ErrInstructionsRequired
	}

	c.chosenAction = action
	c.instructions = instructions
	c.state = StateSubmittingResponse

	resp := &model.HITLResponse{
		RequestID:                c.current.RequestID,
		Action:                   action,
		ModificationInstructions: instructions,
	}
	if err := c.dispatcher.SendHITLResponse(ctx, resp); err != nil {
		c.state = StateAwaitingUserChoice
		return fmt.Errorf("dispatching checkpoint response: %w", err)
	}

	c.lastProcessedID = c.current.RequestID
	if action == model.ActionModify {
		// Retain the request for correlation with the replanned checkpoint.
		c.state = StateAwaitingModifiedPlan
		return nil
	}

	c.current = nil
	c.review = model.ReviewPayload{}
	c.chosenAction = ""
	c.instructions = ""
	c.state = StateIdle
	return nil
}

// Close dismisses the checkpoint UI. Permitted only while idle or awaiting
// user choice; a submission or in-flight modification is never abandoned by
// dismissal and the caller receives a refusal instead.
func (c *Coordinator) Close() error {
	switch c.state {
	case StateIdle:
		return nil
	case StateAwaitingUserChoice:
		c.current = nil
		c.review = model.ReviewPayload{}
		c.chosenAction = ""
		c.instructions = ""
		c.state = StateIdle
		return nil
	default:
		return fmt.Errorf("%w: state is %s", ErrCloseBlocked, c.state)
	}
}

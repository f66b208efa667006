// Package client provides a transport-agnostic interface for the outbound
// boundary calls the sync engine may invoke on the orchestration server, and
// an HTTP/JSON implementation of it.
package client

import (
	"context"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// ControlClient is the outbound boundary to the orchestration server. All
// methods are thin pass-throughs; none of them is part of the client-side
// state machine.
type ControlClient interface {
	// SendHITLResponse delivers the operator's decision for a checkpoint.
	// It satisfies hitl.Dispatcher.
	SendHITLResponse(ctx context.Context, resp *model.HITLResponse) error

	// Project control
	SwitchProject(ctx context.Context, projectID string) error
	RerunProject(ctx context.Context, projectID string) error

	// Server-side persistence nudges
	ForceSave(ctx context.Context) error
	ForceRestore(ctx context.Context) error

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

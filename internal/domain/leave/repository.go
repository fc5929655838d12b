package leave

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, lr LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	// List returns all requests, newest first, optionally filtered by status.
	List(ctx context.Context, status *Status) ([]LeaveRequest, error)
	// Decide transitions a Pending request to Approved or Rejected with a
	// conditional update. Returns ErrLeaveAlreadyProcessed when the request
	// exists but is no longer Pending, ErrLeaveRequestNotFound otherwise.
	Decide(ctx context.Context, id string, status Status, note *string) (LeaveRequest, error)
}

package leave

import "context"

// Service defines the leave workflow interface
type Service interface {
	// Apply files a new request with status Pending and notifies admins.
	Apply(ctx context.Context, req ApplyRequest) (LeaveResponse, error)

	// MyRequests lists the authenticated user's requests, newest first.
	MyRequests(ctx context.Context) ([]LeaveResponse, error)

	// List returns all requests, optionally filtered by status (admin only).
	List(ctx context.Context, status *Status) ([]LeaveResponse, error)

	// Approve and Reject transition a Pending request exactly once; a
	// second decision fails with ErrLeaveAlreadyProcessed.
	Approve(ctx context.Context, id string, req DecideRequest) (LeaveResponse, error)
	Reject(ctx context.Context, id string, req DecideRequest) (LeaveResponse, error)
}

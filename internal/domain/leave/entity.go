package leave

import "time"

// Status is the lifecycle state of a leave request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type LeaveRequest struct {
	ID        string
	UserID    string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    Status
	AdminNote *string
	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields populated by list queries
	UserName  *string
	UserEmail *string
}

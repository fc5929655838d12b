package leave

import (
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// ApplyRequest represents an employee's leave application
type ApplyRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	var start, end time.Time
	var startErr, endErr error

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if start, startErr = time.Parse("2006-01-02", r.StartDate); startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if end, endErr = time.Parse("2006-01-02", r.EndDate); endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startErr == nil && endErr == nil && !start.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecideRequest carries the optional admin note on approval/rejection
type DecideRequest struct {
	Note *string `json:"note,omitempty"`
}

// LeaveResponse represents a leave request in API responses
type LeaveResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
	AdminNote *string `json:"admin_note,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func NewLeaveResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        lr.ID,
		UserID:    lr.UserID,
		LeaveType: lr.LeaveType,
		StartDate: lr.StartDate.Format("2006-01-02"),
		EndDate:   lr.EndDate.Format("2006-01-02"),
		Reason:    lr.Reason,
		Status:    string(lr.Status),
		AdminNote: lr.AdminNote,
		CreatedAt: lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.UserName != nil {
		resp.UserName = *lr.UserName
	}
	return resp
}

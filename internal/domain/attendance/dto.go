package attendance

import (
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// MarkRequest represents a request to mark today's attendance
type MarkRequest struct {
	Status      string   `json:"status"`
	CheckInTime *string  `json:"check_in_time,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	// Required when status is Remote Work
	Customer     *string `json:"customer,omitempty"`
	WorkLocation *string `json:"work_location,omitempty"`
	AssignedBy   *string `json:"assigned_by,omitempty"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	status := Status(r.Status)

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else {
		valid := false
		for _, s := range MarkableStatuses() {
			if s == status {
				valid = true
				break
			}
		}
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "invalid attendance status",
			})
		}
	}

	if status == StatusRemoteWork {
		if r.Customer == nil || validator.IsEmpty(*r.Customer) {
			errs = append(errs, validator.ValidationError{
				Field:   "customer",
				Message: "customer is required for remote work",
			})
		}
		if r.WorkLocation == nil || validator.IsEmpty(*r.WorkLocation) {
			errs = append(errs, validator.ValidationError{
				Field:   "work_location",
				Message: "work_location is required for remote work",
			})
		}
		if r.AssignedBy == nil || validator.IsEmpty(*r.AssignedBy) {
			errs = append(errs, validator.ValidationError{
				Field:   "assigned_by",
				Message: "assigned_by is required for remote work",
			})
		}
	} else if status.RequiresGeolocation() {
		if r.Latitude == nil || r.Longitude == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "location",
				Message: "latitude and longitude are required for this status",
			})
		} else if !validator.IsValidCoordinate(*r.Latitude, *r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "location",
				Message: "latitude or longitude out of range",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckoutRequest mutates the checkout time on an existing record
type CheckoutRequest struct {
	CheckOutTime string `json:"check_out_time"`
}

func (r *CheckoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListFilter selects either a single day (merged view) or a month
// (persisted records only). Both unset means today.
type ListFilter struct {
	Date   *string // YYYY-MM-DD
	Month  *string // YYYY-MM
	UserID *string
	Page   int
	Limit  int
}

// RecordResponse represents one row of an attendance listing. Synthetic
// placeholder rows carry an empty ID and status "Not Marked Yet".
type RecordResponse struct {
	ID            string   `json:"id,omitempty"`
	UserID        string   `json:"user_id"`
	UserName      string   `json:"user_name,omitempty"`
	Date          string   `json:"date"`
	Status        string   `json:"status"`
	CheckInTime   *string  `json:"check_in_time,omitempty"`
	CheckOutTime  *string  `json:"check_out_time,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	OutsideOffice bool     `json:"outside_office,omitempty"`
	Customer      *string  `json:"customer,omitempty"`
	WorkLocation  *string  `json:"work_location,omitempty"`
	AssignedBy    *string  `json:"assigned_by,omitempty"`
}

// NewRecordResponse maps a persisted record to its API shape.
func NewRecordResponse(a Attendance) RecordResponse {
	resp := RecordResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Date:          a.Date.Format("2006-01-02"),
		Status:        string(a.Status),
		CheckInTime:   a.CheckInTime,
		CheckOutTime:  a.CheckOutTime,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		OutsideOffice: a.OutsideOffice,
		Customer:      a.Customer,
		WorkLocation:  a.WorkLocation,
		AssignedBy:    a.AssignedBy,
	}
	if a.UserName != nil {
		resp.UserName = *a.UserName
	}
	return resp
}

// NewUnmarkedResponse builds the synthetic placeholder row for an account
// with no record on the day. Never persisted.
func NewUnmarkedResponse(userID, userName string, date time.Time) RecordResponse {
	return RecordResponse{
		UserID:   userID,
		UserName: userName,
		Date:     date.Format("2006-01-02"),
		Status:   string(StatusNotMarkedYet),
	}
}

// ListResponse is a paginated attendance listing
type ListResponse struct {
	Records    []RecordResponse `json:"records"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// MySummaryResponse aggregates one user's entire attendance history.
type MySummaryResponse struct {
	PresentCount int `json:"present_count"`
	AbsentCount  int `json:"absent_count"`
	HalfDayCount int `json:"half_day_count"`
	RemoteCount  int `json:"remote_count"`
	LeaveCount   int `json:"leave_count"`
	TotalDays    int `json:"total_days"`
}

// SummaryResponse aggregates one day's attendance.
// AbsentCount includes both explicitly marked Absent records and
// employee accounts with no record at all for the date.
type SummaryResponse struct {
	Date           string `json:"date"`
	PresentCount   int    `json:"present_count"`
	AbsentCount    int    `json:"absent_count"`
	HalfDayCount   int    `json:"half_day_count"`
	RemoteCount    int    `json:"remote_count"`
	LeaveCount     int    `json:"leave_count"`
	TotalEmployees int    `json:"total_employees"`
}

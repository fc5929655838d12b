package attendance

import (
	"time"
)

// Status is the marked state of one day's attendance.
type Status string

const (
	StatusPresent    Status = "Present"
	StatusAbsent     Status = "Absent"
	StatusHalfDay    Status = "Half Day"
	StatusRemoteWork Status = "Remote Work"
	StatusLeave      Status = "Leave"

	// StatusNotMarkedYet is a view-layer placeholder for accounts with no
	// persisted record on the requested day. It is never written to the ledger.
	StatusNotMarkedYet Status = "Not Marked Yet"
)

// MarkableStatuses returns the statuses an employee may submit.
func MarkableStatuses() []Status {
	return []Status{
		StatusPresent,
		StatusAbsent,
		StatusHalfDay,
		StatusRemoteWork,
		StatusLeave,
	}
}

// RequiresGeolocation reports whether marking with this status needs lat/lng.
func (s Status) RequiresGeolocation() bool {
	return s == StatusPresent || s == StatusHalfDay || s == StatusAbsent
}

type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time // normalized to local midnight
	Status       Status
	CheckInTime  *string
	CheckOutTime *string
	Latitude     *float64
	Longitude    *float64
	// OutsideOffice flags a check-in whose geolocation fell outside the
	// configured office radius. The record is saved regardless.
	OutsideOffice bool

	// Remote-work metadata, required iff Status == StatusRemoteWork.
	Customer     *string
	WorkLocation *string
	AssignedBy   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields populated by list queries
	UserName  *string
	UserEmail *string
}

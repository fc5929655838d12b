package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyMarked      = errors.New("attendance already marked for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotRecordOwner     = errors.New("not allowed to modify this attendance record")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrInvalidDateFilter  = errors.New("date filter must be in YYYY-MM-DD format")
	ErrInvalidMonthFilter = errors.New("month filter must be in YYYY-MM format")
)

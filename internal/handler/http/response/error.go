package response

import (
	"errors"
	"net/http"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/document"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/holiday"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / user domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrTokenExpired):
		Unauthorized(w, "Token has expired")
	case errors.Is(err, user.ErrAccountNotApproved):
		Forbidden(w, "Account pending admin approval")
	case errors.Is(err, user.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrOAuthEmailUnknown):
		Forbidden(w, "No account registered for this Google email")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, "OAuth state mismatch", nil)
	case errors.Is(err, auth.ErrOAuthExchange):
		BadRequest(w, "Failed to complete Google sign-in", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		BadRequest(w, "Attendance already marked for today", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, "Not allowed to modify this attendance record")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, attendance.ErrInvalidDateFilter):
		BadRequest(w, "Date filter must be in YYYY-MM-DD format", nil)
	case errors.Is(err, attendance.ErrInvalidMonthFilter):
		BadRequest(w, "Month filter must be in YYYY-MM format", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date cannot be before start date", nil)

	// Broadcast domain errors
	case errors.Is(err, broadcast.ErrBroadcastNotFound):
		NotFound(w, "Broadcast not found")
	case errors.Is(err, broadcast.ErrInvalidAudience):
		BadRequest(w, "Invalid broadcast audience", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Notification domain errors
	case errors.Is(err, notification.ErrSettingNotFound):
		NotFound(w, "Notification settings not found")

	// Document domain errors
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrNotDocumentOwner):
		Forbidden(w, "Not allowed to access this document")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

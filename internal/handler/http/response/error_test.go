package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		// A duplicate mark is a client mistake, not a conflict.
		{attendance.ErrAlreadyMarked, http.StatusBadRequest},
		{attendance.ErrAttendanceNotFound, http.StatusNotFound},
		{attendance.ErrNotRecordOwner, http.StatusForbidden},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{user.ErrAccountNotApproved, http.StatusForbidden},
		{user.ErrUserEmailExists, http.StatusConflict},
		{leave.ErrLeaveAlreadyProcessed, http.StatusConflict},
		{validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", attendance.ErrAlreadyMarked), http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)
			if rec.Code != c.want {
				t.Errorf("HandleError(%v) wrote status %d, want %d", c.err, rec.Code, c.want)
			}
		})
	}
}

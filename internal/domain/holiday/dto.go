package holiday

import (
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// CreateRequest represents a new holiday entry
type CreateRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description *string `json:"description,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HolidayResponse represents a holiday in API responses
type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
	}
}

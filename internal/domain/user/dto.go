package user

import (
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	IsApproved      bool    `json:"is_approved"`
	IsVerified      bool    `json:"is_verified"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Department      *string `json:"department,omitempty"`
	Position        *string `json:"position,omitempty"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// NewUserResponse maps a User entity to its API shape.
func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		IsApproved: u.IsApproved,
		IsVerified: u.IsVerified,
		Phone:      u.Phone,
		Department: u.Department,
		Position:   u.Position,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}

// UpdateProfileRequest represents a self-service profile update
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *r.DateOfBirth); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

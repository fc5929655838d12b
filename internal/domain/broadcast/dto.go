package broadcast

import (
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// CreateRequest represents a new broadcast posting
type CreateRequest struct {
	Message   string  `json:"message"`
	Audience  string  `json:"audience"`
	Pinned    bool    `json:"pinned"`
	ExpiresAt *string `json:"expires_at,omitempty"` // RFC3339
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if validator.IsEmpty(r.Audience) {
		errs = append(errs, validator.ValidationError{
			Field:   "audience",
			Message: "audience is required",
		})
	} else {
		valid := []string{string(AudienceAll), string(AudienceAdmin), string(AudienceEmployee)}
		if !validator.IsInSlice(r.Audience, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "audience",
				Message: "audience must be one of all, admin, employee",
			})
		}
	}

	if r.ExpiresAt != nil {
		if _, err := time.Parse(time.RFC3339, *r.ExpiresAt); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BroadcastResponse represents a broadcast in API responses
type BroadcastResponse struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	Audience  string  `json:"audience"`
	Pinned    bool    `json:"pinned"`
	ExpiresAt *string `json:"expires_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func NewBroadcastResponse(b Broadcast) BroadcastResponse {
	resp := BroadcastResponse{
		ID:        b.ID,
		Message:   b.Message,
		Audience:  string(b.Audience),
		Pinned:    b.Pinned,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if b.ExpiresAt != nil {
		exp := b.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &exp
	}
	return resp
}

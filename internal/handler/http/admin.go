package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/response"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ApproveUser(w http.ResponseWriter, r *http.Request)
	RejectUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type approvalRequest struct {
	Email  string `json:"email"`
	Notify *bool  `json:"notify,omitempty"`
}

func (r *approvalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type adminHandlerImpl struct {
	adminService user.AdminService
}

func NewAdminHandler(adminService user.AdminService) AdminHandler {
	return &adminHandlerImpl{
		adminService: adminService,
	}
}

// ListUsers implements AdminHandler.
func (h *adminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements AdminHandler.
func (h *adminHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveUser implements AdminHandler.
func (h *adminHandlerImpl) ApproveUser(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.adminService.Approve(r.Context(), req.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account approved", result)
}

// RejectUser implements AdminHandler. Rejection deletes the account;
// notify defaults to true.
func (h *adminHandlerImpl) RejectUser(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	if err := h.adminService.Reject(r.Context(), req.Email, notify); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account rejected", nil)
}

// DeleteUser implements AdminHandler.
func (h *adminHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.adminService.Delete(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account deleted", nil)
}

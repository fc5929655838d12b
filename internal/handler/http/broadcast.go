package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/response"
)

type BroadcastHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type broadcastHandlerImpl struct {
	broadcastService broadcast.Service
}

func NewBroadcastHandler(broadcastService broadcast.Service) BroadcastHandler {
	return &broadcastHandlerImpl{
		broadcastService: broadcastService,
	}
}

// Create implements BroadcastHandler.
func (h *broadcastHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req broadcast.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create broadcast decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.broadcastService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Broadcast posted", result)
}

// List implements BroadcastHandler.
func (h *broadcastHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.broadcastService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements BroadcastHandler.
func (h *broadcastHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Broadcast ID is required", nil)
		return
	}

	if err := h.broadcastService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Broadcast deleted", nil)
}

package http

import (
	"net/http"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditor audit.Recorder
}

func NewAuditHandler(auditor audit.Recorder) AuditHandler {
	return &auditHandlerImpl{auditor: auditor}
}

// List implements AuditHandler. Admin-only view of recent admin actions.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 50)
	offset := getIntQueryParam(r, "offset", 0)

	result, err := h.auditor.List(r.Context(), limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

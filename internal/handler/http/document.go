package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/document"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/response"
	documentService "github.com/seekers-automation/mes-hr-backend-go/internal/service/document"
)

type DocumentHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.Service
}

func NewDocumentHandler(docService document.Service) DocumentHandler {
	return &documentHandlerImpl{
		documentService: docService,
	}
}

// Upload implements DocumentHandler.
func (h *documentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(documentService.MaxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.documentService.Upload(
		r.Context(),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded", result)
}

// List implements DocumentHandler.
func (h *documentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort_by")
	order := r.URL.Query().Get("order")

	result, err := h.documentService.List(r.Context(), sortBy, order)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Download implements DocumentHandler.
func (h *documentHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Document ID is required", nil)
		return
	}

	reader, doc, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Failed to stream document", "document_id", id, "error", err)
	}
}

// Delete implements DocumentHandler.
func (h *documentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Document ID is required", nil)
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted", nil)
}

package document

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/document"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/storage"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// MaxUploadBytes caps a single document upload at 10 MiB.
const MaxUploadBytes = 10 << 20

type DocumentServiceImpl struct {
	documentRepo document.Repository
	storage      storage.FileStorage
}

func NewDocumentService(documentRepo document.Repository, fileStorage storage.FileStorage) document.Service {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		storage:      fileStorage,
	}
}

// Upload implements document.Service.
func (s *DocumentServiceImpl) Upload(ctx context.Context, file io.Reader, filename, contentType string, size int64) (document.DocumentResponse, error) {
	if validator.IsEmpty(filename) {
		return document.DocumentResponse{}, validator.ValidationErrors{{
			Field:   "file",
			Message: "filename is required",
		}}
	}
	if size <= 0 || size > MaxUploadBytes {
		return document.DocumentResponse{}, validator.ValidationErrors{{
			Field:   "file",
			Message: fmt.Sprintf("file size must be between 1 byte and %d bytes", MaxUploadBytes),
		}}
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	path := fmt.Sprintf("documents/%s/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
	storedPath, err := s.storage.Upload(ctx, io.LimitReader(file, MaxUploadBytes), path, contentType)
	if err != nil {
		return document.DocumentResponse{}, fmt.Errorf("failed to store document: %w", err)
	}

	created, err := s.documentRepo.Create(ctx, document.Document{
		UserID:      userID,
		Name:        filepath.Base(filename),
		Path:        storedPath,
		ContentType: contentType,
		SizeBytes:   size,
	})
	if err != nil {
		_ = s.storage.Delete(ctx, storedPath)
		return document.DocumentResponse{}, err
	}

	return s.toResponse(ctx, created), nil
}

// List implements document.Service. Returns only the caller's documents.
func (s *DocumentServiceImpl) List(ctx context.Context, sortBy, order string) ([]document.DocumentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByUser(ctx, userID, sortBy, order)
	if err != nil {
		return nil, err
	}

	responses := make([]document.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, s.toResponse(ctx, d))
	}

	return responses, nil
}

// Download implements document.Service. Only the owner may read the file.
func (s *DocumentServiceImpl) Download(ctx context.Context, id string) (io.ReadCloser, document.Document, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, document.Document{}, err
	}

	d, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, document.Document{}, err
	}

	if d.UserID != userID {
		return nil, document.Document{}, document.ErrNotDocumentOwner
	}

	reader, err := s.storage.Download(ctx, d.Path)
	if err != nil {
		return nil, document.Document{}, fmt.Errorf("failed to open document: %w", err)
	}

	return reader, d, nil
}

// Delete implements document.Service. Only the owner may delete.
func (s *DocumentServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	d, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if d.UserID != userID {
		return document.ErrNotDocumentOwner
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The row is gone; a stale file on disk is harmless.
	_ = s.storage.Delete(ctx, d.Path)

	return nil
}

func (s *DocumentServiceImpl) toResponse(ctx context.Context, d document.Document) document.DocumentResponse {
	url, err := s.storage.GetURL(ctx, d.Path, 0)
	if err != nil {
		url = ""
	}
	return document.NewDocumentResponse(d, url)
}

func currentUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}

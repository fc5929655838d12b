package document

import (
	"context"
	"io"
)

// Service defines the per-user document store interface
type Service interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string, size int64) (DocumentResponse, error)
	List(ctx context.Context, sortBy, order string) ([]DocumentResponse, error)
	Download(ctx context.Context, id string) (io.ReadCloser, Document, error)
	Delete(ctx context.Context, id string) error
}

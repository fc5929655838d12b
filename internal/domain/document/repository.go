package document

import "context"

type Repository interface {
	Create(ctx context.Context, d Document) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	// ListByUser sorts by name or upload date; order is "asc" or "desc".
	ListByUser(ctx context.Context, userID, sortBy, order string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}

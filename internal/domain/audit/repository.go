package audit

import "context"

type Repository interface {
	Create(ctx context.Context, entry Log) error
	// List returns entries newest first.
	List(ctx context.Context, limit, offset int) ([]Log, error)
}

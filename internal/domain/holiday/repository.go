package holiday

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// List returns holidays ordered by date ascending, optionally limited
	// to one calendar year.
	List(ctx context.Context, year *int) ([]Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	Delete(ctx context.Context, id string) error
}

package broadcast

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b Broadcast) (Broadcast, error)
	// ListActive returns unexpired broadcasts visible to the audience,
	// pinned first, then newest first.
	ListActive(ctx context.Context, now time.Time, audience Audience) ([]Broadcast, error)
	GetByID(ctx context.Context, id string) (Broadcast, error)
	Delete(ctx context.Context, id string) error
}

package broadcast

import "context"

// Service defines the broadcast workflow interface
type Service interface {
	// Create posts a broadcast and fans an email out to the audience.
	Create(ctx context.Context, req CreateRequest) (BroadcastResponse, error)

	// List returns active broadcasts visible to the caller's role.
	List(ctx context.Context) ([]BroadcastResponse, error)

	Delete(ctx context.Context, id string) error
}

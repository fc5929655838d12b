package holiday

import "context"

// Service defines the holiday calendar interface
type Service interface {
	Create(ctx context.Context, req CreateRequest) (HolidayResponse, error)
	List(ctx context.Context, year *int) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

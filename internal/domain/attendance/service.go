package attendance

import "context"

// Service defines the attendance workflow interface
type Service interface {
	// Mark records today's attendance for the authenticated user.
	Mark(ctx context.Context, req MarkRequest) (RecordResponse, error)

	// Checkout mutates the checkout time on an owned record.
	Checkout(ctx context.Context, recordID string, req CheckoutRequest) (RecordResponse, error)

	// MyRecords lists the authenticated user's records, newest first.
	MyRecords(ctx context.Context) ([]RecordResponse, error)

	// MySummary counts the authenticated user's records per status.
	MySummary(ctx context.Context) (MySummaryResponse, error)

	// List produces the admin view: a merged single-day view with
	// synthetic unmarked rows, or persisted records only for a month.
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// Summary aggregates one day's counts.
	Summary(ctx context.Context, dateStr *string) (SummaryResponse, error)

	// Delete removes a record (admin only).
	Delete(ctx context.Context, id string) error
}

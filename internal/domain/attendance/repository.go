package attendance

import (
	"context"
	"time"
)

// Repository defines data access for the attendance ledger.
type Repository interface {
	// Create inserts a record conditionally on (user_id, date) being free.
	// Returns ErrAlreadyMarked when a record for that day already exists;
	// the uniqueness is enforced by the store, not by a read-then-write.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update persists checkout-time mutations
	Update(ctx context.Context, att Attendance) error

	Delete(ctx context.Context, id string) error

	// ListByUser returns a user's records, date descending.
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByDate returns all persisted records for a single day with the
	// owner's name and email joined in.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByMonth returns persisted records within a calendar month,
	// date descending, optionally filtered to one user.
	ListByMonth(ctx context.Context, year int, month time.Month, userID *string) ([]Attendance, error)

	// ListMarkedUserIDs returns the IDs of users with a record on the day.
	ListMarkedUserIDs(ctx context.Context, date time.Time) ([]string, error)
}

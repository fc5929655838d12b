package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByVerificationToken(ctx context.Context, token string) (User, error)
	GetByResetToken(ctx context.Context, token string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListPendingApproval(ctx context.Context) ([]User, error)
	// ListWithBirthday matches on month and day only; the birth year is ignored.
	ListWithBirthday(ctx context.Context, month time.Month, day int) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id string) error
}

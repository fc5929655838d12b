package user

import (
	"context"
	"io"
)

// AdminService covers the account approval workflow and directory views
type AdminService interface {
	ListAll(ctx context.Context) ([]UserResponse, error)
	ListPending(ctx context.Context) ([]UserResponse, error)

	// Approve flips isApproved by email and notifies the account.
	Approve(ctx context.Context, email string) (UserResponse, error)

	// Reject deletes the account by email; when notify is set the
	// rejection email uses the pre-deletion snapshot.
	Reject(ctx context.Context, email string, notify bool) error

	// Delete removes an account by id without any notification.
	Delete(ctx context.Context, id string) error
}

// ProfileService covers self-service profile reads and updates
type ProfileService interface {
	Get(ctx context.Context) (UserResponse, error)
	Update(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
	UploadPhoto(ctx context.Context, file io.Reader, filename, contentType string) (UserResponse, error)
}

package auth

import (
	"context"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

// Service defines the authentication service interface
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Me(ctx context.Context) (user.UserResponse, error)

	// Google OAuth2 login. Callback only signs in accounts that already
	// exist; unknown emails are refused.
	GoogleRedirectURL(userAgent string) (string, string)
	GoogleCallback(ctx context.Context, state, expectedState, code string) (LoginResponse, error)
}

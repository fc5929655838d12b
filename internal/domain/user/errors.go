package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountNotApproved     = errors.New("account pending admin approval")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrInvalidToken           = errors.New("invalid or unknown token")
	ErrTokenExpired           = errors.New("token has expired")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrOAuthEmailUnknown      = errors.New("no account registered for this google email")
)

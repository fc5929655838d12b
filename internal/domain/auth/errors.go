package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or missing access token")
	ErrInvalidOAuthState = errors.New("oauth state mismatch")
	ErrOAuthExchange     = errors.New("failed to exchange oauth code")
)

package broadcast

import "errors"

var (
	ErrBroadcastNotFound = errors.New("broadcast not found")
	ErrInvalidAudience   = errors.New("invalid broadcast audience")
)

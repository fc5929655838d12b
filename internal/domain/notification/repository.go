package notification

import "context"

type SettingRepository interface {
	// Get returns ErrSettingNotFound when the user never saved preferences.
	Get(ctx context.Context, userID string) (Setting, error)
	Upsert(ctx context.Context, s Setting) (Setting, error)
}

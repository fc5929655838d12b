package notification

import "time"

// Setting holds a user's outbound-notification preferences.
type Setting struct {
	UserID     string
	EmailNotif bool
	PushNotif  bool
	UpdatedAt  time.Time
}

// DefaultSetting is applied when a user has never saved preferences:
// email on, push off.
func DefaultSetting(userID string) Setting {
	return Setting{
		UserID:     userID,
		EmailNotif: true,
		PushNotif:  false,
	}
}

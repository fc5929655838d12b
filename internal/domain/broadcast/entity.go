package broadcast

import "time"

// Audience selects which roles receive a broadcast.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceAdmin    Audience = "admin"
	AudienceEmployee Audience = "employee"
)

type Broadcast struct {
	ID        string
	Message   string
	Audience  Audience
	Pinned    bool
	ExpiresAt *time.Time
	CreatedBy string
	CreatedAt time.Time
}

// Expired reports whether the broadcast should be hidden from listings.
func (b *Broadcast) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}

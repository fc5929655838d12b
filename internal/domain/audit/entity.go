package audit

import "time"

type Log struct {
	ID         string
	ActorID    *string
	ActorEmail *string
	Action     string
	Entity     string
	EntityID   *string
	Detail     *string
	CreatedAt  time.Time
}

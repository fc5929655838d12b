package audit

import "time"

// LogResponse represents an audit entry in API responses
type LogResponse struct {
	ID         string  `json:"id"`
	ActorID    *string `json:"actor_id,omitempty"`
	ActorEmail *string `json:"actor_email,omitempty"`
	Action     string  `json:"action"`
	Entity     string  `json:"entity"`
	EntityID   *string `json:"entity_id,omitempty"`
	Detail     *string `json:"detail,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func NewLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:         l.ID,
		ActorID:    l.ActorID,
		ActorEmail: l.ActorEmail,
		Action:     l.Action,
		Entity:     l.Entity,
		EntityID:   l.EntityID,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

package broadcast

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

type BroadcastServiceImpl struct {
	broadcastRepo broadcast.Repository
	userRepo      user.Repository
	dispatcher    notification.Dispatcher
	auditor       audit.Recorder
	now           func() time.Time
}

func NewBroadcastService(
	broadcastRepo broadcast.Repository,
	userRepo user.Repository,
	dispatcher notification.Dispatcher,
	auditor audit.Recorder,
	now func() time.Time,
) broadcast.Service {
	if now == nil {
		now = time.Now
	}
	return &BroadcastServiceImpl{
		broadcastRepo: broadcastRepo,
		userRepo:      userRepo,
		dispatcher:    dispatcher,
		auditor:       auditor,
		now:           now,
	}
}

// Create implements broadcast.Service. The posting is fanned out to
// every account in the audience, each gated by their own preference.
func (s *BroadcastServiceImpl) Create(ctx context.Context, req broadcast.CreateRequest) (broadcast.BroadcastResponse, error) {
	if err := req.Validate(); err != nil {
		return broadcast.BroadcastResponse{}, err
	}

	actorID, err := currentUserID(ctx)
	if err != nil {
		return broadcast.BroadcastResponse{}, err
	}

	b := broadcast.Broadcast{
		Message:   req.Message,
		Audience:  broadcast.Audience(req.Audience),
		Pinned:    req.Pinned,
		CreatedBy: actorID,
	}
	if req.ExpiresAt != nil {
		exp, _ := time.Parse(time.RFC3339, *req.ExpiresAt)
		b.ExpiresAt = &exp
	}

	created, err := s.broadcastRepo.Create(ctx, b)
	if err != nil {
		return broadcast.BroadcastResponse{}, err
	}

	if recipients, err := s.audienceUsers(ctx, created.Audience); err == nil {
		s.dispatcher.BroadcastPosted(ctx, recipients, created)
	}

	s.auditor.Record(ctx, audit.Log{
		ActorID:  &actorID,
		Action:   "broadcast.create",
		Entity:   "broadcast",
		EntityID: &created.ID,
		Detail:   &created.Message,
	})

	return broadcast.NewBroadcastResponse(created), nil
}

// List implements broadcast.Service. Visibility follows the caller's
// role: everyone sees audience "all", plus their own role's postings.
func (s *BroadcastServiceImpl) List(ctx context.Context) ([]broadcast.BroadcastResponse, error) {
	role, err := currentUserRole(ctx)
	if err != nil {
		return nil, err
	}

	audience := broadcast.AudienceEmployee
	if role == string(user.RoleAdmin) {
		audience = broadcast.AudienceAdmin
	}

	broadcasts, err := s.broadcastRepo.ListActive(ctx, s.now(), audience)
	if err != nil {
		return nil, err
	}

	responses := make([]broadcast.BroadcastResponse, 0, len(broadcasts))
	for _, b := range broadcasts {
		responses = append(responses, broadcast.NewBroadcastResponse(b))
	}

	return responses, nil
}

// Delete implements broadcast.Service.
func (s *BroadcastServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.broadcastRepo.Delete(ctx, id); err != nil {
		return err
	}

	actorID, _ := currentUserID(ctx)
	s.auditor.Record(ctx, audit.Log{
		ActorID:  &actorID,
		Action:   "broadcast.delete",
		Entity:   "broadcast",
		EntityID: &id,
	})

	return nil
}

func (s *BroadcastServiceImpl) audienceUsers(ctx context.Context, audience broadcast.Audience) ([]user.User, error) {
	switch audience {
	case broadcast.AudienceAdmin:
		return s.userRepo.ListByRole(ctx, user.RoleAdmin)
	case broadcast.AudienceEmployee:
		return s.userRepo.ListByRole(ctx, user.RoleEmployee)
	default:
		return s.userRepo.List(ctx)
	}
}

func currentUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}

func currentUserRole(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", auth.ErrInvalidToken
	}

	return role, nil
}

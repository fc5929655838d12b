package admin

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

type AdminServiceImpl struct {
	userRepo   user.Repository
	dispatcher notification.Dispatcher
	auditor    audit.Recorder
}

func NewAdminService(
	userRepo user.Repository,
	dispatcher notification.Dispatcher,
	auditor audit.Recorder,
) user.AdminService {
	return &AdminServiceImpl{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		auditor:    auditor,
	}
}

// ListAll implements user.AdminService.
func (s *AdminServiceImpl) ListAll(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return responses, nil
}

// ListPending implements user.AdminService.
func (s *AdminServiceImpl) ListPending(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.ListPendingApproval(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return responses, nil
}

// Approve implements user.AdminService. Approving also marks the email
// verified so the account can log in immediately.
func (s *AdminServiceImpl) Approve(ctx context.Context, email string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, err
	}

	if u.IsApproved {
		return user.NewUserResponse(u), nil
	}

	u.IsApproved = true
	u.IsVerified = true
	u.VerificationToken = nil

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	s.dispatcher.AccountApproved(ctx, updated)
	s.record(ctx, "account.approve", updated.ID, updated.Email)

	return user.NewUserResponse(updated), nil
}

// Reject implements user.AdminService. The account row is removed; the
// snapshot taken beforehand is what the rejection email is built from.
func (s *AdminServiceImpl) Reject(ctx context.Context, email string, notify bool) error {
	snapshot, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, snapshot.ID); err != nil {
		return err
	}

	if notify {
		s.dispatcher.AccountRejected(ctx, snapshot)
	}
	s.record(ctx, "account.reject", snapshot.ID, snapshot.Email)

	return nil
}

// Delete implements user.AdminService.
func (s *AdminServiceImpl) Delete(ctx context.Context, id string) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, u.ID); err != nil {
		return err
	}

	s.record(ctx, "account.delete", u.ID, u.Email)

	return nil
}

func (s *AdminServiceImpl) record(ctx context.Context, action, entityID, detail string) {
	actorID, actorEmail := currentActor(ctx)
	s.auditor.Record(ctx, audit.Log{
		ActorID:    actorID,
		ActorEmail: actorEmail,
		Action:     action,
		Entity:     "user",
		EntityID:   &entityID,
		Detail:     &detail,
	})
}

func currentActor(ctx context.Context) (id *string, email *string) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, nil
	}

	if v, ok := claims["user_id"].(string); ok && v != "" {
		id = &v
	}
	if v, ok := claims["email"].(string); ok && v != "" {
		email = &v
	}

	return id, email
}

package leave

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRepo  leave.Repository
	userRepo   user.Repository
	dispatcher notification.Dispatcher
	auditor    audit.Recorder
}

func NewLeaveService(
	leaveRepo leave.Repository,
	userRepo user.Repository,
	dispatcher notification.Dispatcher,
	auditor audit.Recorder,
) leave.Service {
	return &LeaveServiceImpl{
		leaveRepo:  leaveRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		auditor:    auditor,
	}
}

// Apply implements leave.Service. Every admin account is notified,
// each gated by their own preference.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	admins, err := s.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err == nil {
		s.dispatcher.LeaveApplied(ctx, admins, requester, created)
	}

	return leave.NewLeaveResponse(created), nil
}

// MyRequests implements leave.Service.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context) ([]leave.LeaveResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.NewLeaveResponse(lr))
	}

	return responses, nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	requests, err := s.leaveRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.NewLeaveResponse(lr))
	}

	return responses, nil
}

// Approve implements leave.Service.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string, req leave.DecideRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved, req.Note)
}

// Reject implements leave.Service.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, req leave.DecideRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusRejected, req.Note)
}

// decide performs the one-way Pending transition. Re-deciding an already
// processed request fails closed at the repository.
func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.Status, note *string) (leave.LeaveResponse, error) {
	decided, err := s.leaveRepo.Decide(ctx, id, status, note)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if requester, err := s.userRepo.GetByID(ctx, decided.UserID); err == nil {
		s.dispatcher.LeaveDecided(ctx, requester, decided)
	}

	action := "leave.approve"
	if status == leave.StatusRejected {
		action = "leave.reject"
	}
	actorID, actorEmail := actorClaims(ctx)
	s.auditor.Record(ctx, audit.Log{
		ActorID:    actorID,
		ActorEmail: actorEmail,
		Action:     action,
		Entity:     "leave_request",
		EntityID:   &decided.ID,
		Detail:     &decided.UserID,
	})

	return leave.NewLeaveResponse(decided), nil
}

func actorClaims(ctx context.Context) (id *string, email *string) {
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

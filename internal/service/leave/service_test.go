package leave

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

func authedCtx(t *testing.T, userID, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByVerificationToken(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	var all []user.User
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var matched []user.User
	for _, u := range f.users {
		if u.Role == role {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (f *fakeUserRepo) ListPendingApproval(_ context.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListWithBirthday(_ context.Context, _ time.Month, _ int) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	seq      int
}

func (f *fakeLeaveRepo) Create(_ context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.seq++
	lr.ID = fmt.Sprintf("leave-%d", f.seq)
	lr.Status = leave.StatusPending
	lr.CreatedAt = time.Now()
	f.requests[lr.ID] = lr
	return lr, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	var matched []leave.LeaveRequest
	for _, lr := range f.requests {
		if lr.UserID == userID {
			matched = append(matched, lr)
		}
	}
	return matched, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, status *leave.Status) ([]leave.LeaveRequest, error) {
	var matched []leave.LeaveRequest
	for _, lr := range f.requests {
		if status != nil && lr.Status != *status {
			continue
		}
		matched = append(matched, lr)
	}
	return matched, nil
}

// Decide mirrors the conditional update: only a Pending row transitions.
func (f *fakeLeaveRepo) Decide(_ context.Context, id string, status leave.Status, note *string) (leave.LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if lr.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}
	now := time.Now()
	lr.Status = status
	lr.AdminNote = note
	lr.DecidedAt = &now
	f.requests[id] = lr
	return lr, nil
}

type dispatcherStub struct {
	notification.Dispatcher
	appliedAdmins []string
	decided       []leave.LeaveRequest
}

func (d *dispatcherStub) LeaveApplied(_ context.Context, admins []user.User, _ user.User, _ leave.LeaveRequest) {
	for _, a := range admins {
		d.appliedAdmins = append(d.appliedAdmins, a.ID)
	}
}

func (d *dispatcherStub) LeaveDecided(_ context.Context, _ user.User, lr leave.LeaveRequest) {
	d.decided = append(d.decided, lr)
}

type auditStub struct {
	actions []string
}

func (a *auditStub) Record(_ context.Context, entry audit.Log) {
	a.actions = append(a.actions, entry.Action)
}

func (a *auditStub) List(_ context.Context, _, _ int) ([]audit.LogResponse, error) {
	return nil, nil
}

func newTestService() (leave.Service, *fakeLeaveRepo, *dispatcherStub, *auditStub) {
	leaveRepo := &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"emp-1": {ID: "emp-1", Name: "Asha", Email: "asha@example.com", Role: user.RoleEmployee},
		"adm-1": {ID: "adm-1", Name: "Dev", Email: "dev@example.com", Role: user.RoleAdmin},
		"adm-2": {ID: "adm-2", Name: "Esha", Email: "esha@example.com", Role: user.RoleAdmin},
	}}
	dispatcher := &dispatcherStub{}
	auditor := &auditStub{}
	return NewLeaveService(leaveRepo, userRepo, dispatcher, auditor), leaveRepo, dispatcher, auditor
}

func TestApply_CreatesPendingAndNotifiesAdmins(t *testing.T) {
	svc, leaveRepo, dispatcher, _ := newTestService()

	resp, err := svc.Apply(authedCtx(t, "emp-1", "employee"), leave.ApplyRequest{
		LeaveType: "Casual",
		StartDate: "2026-04-01",
		EndDate:   "2026-04-03",
		Reason:    "Family function",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Len(t, leaveRepo.requests, 1)
	assert.Equal(t, []string{"adm-1", "adm-2"}, dispatcher.appliedAdmins)
}

func TestApply_EndBeforeStartRejected(t *testing.T) {
	svc, leaveRepo, _, _ := newTestService()

	_, err := svc.Apply(authedCtx(t, "emp-1", "employee"), leave.ApplyRequest{
		LeaveType: "Casual",
		StartDate: "2026-04-05",
		EndDate:   "2026-04-01",
		Reason:    "Trip",
	})
	require.Error(t, err)
	assert.Empty(t, leaveRepo.requests)
}

func TestDecide_SecondDecisionFailsClosed(t *testing.T) {
	svc, _, dispatcher, auditor := newTestService()

	resp, err := svc.Apply(authedCtx(t, "emp-1", "employee"), leave.ApplyRequest{
		LeaveType: "Sick",
		StartDate: "2026-04-01",
		EndDate:   "2026-04-02",
		Reason:    "Fever",
	})
	require.NoError(t, err)

	adminCtx := authedCtx(t, "adm-1", "admin")

	approved, err := svc.Approve(adminCtx, resp.ID, leave.DecideRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)

	_, err = svc.Reject(adminCtx, resp.ID, leave.DecideRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	// Only the first decision reached the requester or the trail.
	assert.Len(t, dispatcher.decided, 1)
	assert.Equal(t, leave.StatusApproved, dispatcher.decided[0].Status)
	assert.Equal(t, []string{"leave.approve"}, auditor.actions)
}

func TestDecide_UnknownRequest(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Approve(authedCtx(t, "adm-1", "admin"), "missing", leave.DecideRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

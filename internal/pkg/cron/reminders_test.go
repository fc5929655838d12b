package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

type fakeRunStore struct {
	claims map[string]bool
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{claims: make(map[string]bool)}
}

func (f *fakeRunStore) TryClaim(_ context.Context, jobName, day string) (bool, error) {
	key := jobName + "/" + day
	if f.claims[key] {
		return false, nil
	}
	f.claims[key] = true
	return true, nil
}

type fakeUserRepo struct {
	employees  []user.User
	celebrants []user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
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

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) { return f.employees, nil }

func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	if role != user.RoleEmployee {
		return nil, nil
	}
	return f.employees, nil
}

func (f *fakeUserRepo) ListPendingApproval(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) ListWithBirthday(_ context.Context, _ time.Month, _ int) ([]user.User, error) {
	return f.celebrants, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	markedIDs []string
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, _ int, _ time.Month, _ *string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListMarkedUserIDs(_ context.Context, _ time.Time) ([]string, error) {
	return f.markedIDs, nil
}

type dispatcherStub struct {
	notification.Dispatcher
	reminded  []string
	birthdays []string
}

func (d *dispatcherStub) AbsentReminder(_ context.Context, recipient user.User, _ time.Time) {
	d.reminded = append(d.reminded, recipient.ID)
}

func (d *dispatcherStub) BirthdayGreeting(_ context.Context, recipient user.User) {
	d.birthdays = append(d.birthdays, recipient.ID)
}

func newTestJobs(now time.Time) (*ReminderJobs, *fakeRunStore, *fakeUserRepo, *fakeAttendanceRepo, *dispatcherStub) {
	runs := newFakeRunStore()
	userRepo := &fakeUserRepo{
		employees: []user.User{
			{ID: "emp-1", Name: "Asha", Role: user.RoleEmployee},
			{ID: "emp-2", Name: "Bilal", Role: user.RoleEmployee},
		},
	}
	attRepo := &fakeAttendanceRepo{}
	dispatcher := &dispatcherStub{}
	jobs := NewReminderJobs(userRepo, attRepo, dispatcher, runs, time.UTC, func() time.Time { return now })
	return jobs, runs, userRepo, attRepo, dispatcher
}

func TestAbsentReminders_SkipsOutsideReminderHour(t *testing.T) {
	jobs, runs, _, _, dispatcher := newTestJobs(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.SendAbsentReminders(context.Background()))

	assert.Empty(t, dispatcher.reminded)
	assert.Empty(t, runs.claims, "no run marker outside the send window")
}

func TestAbsentReminders_OnlyUnmarkedEmployees(t *testing.T) {
	jobs, _, _, attRepo, dispatcher := newTestJobs(time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC))
	attRepo.markedIDs = []string{"emp-1"}

	require.NoError(t, jobs.SendAbsentReminders(context.Background()))

	assert.Equal(t, []string{"emp-2"}, dispatcher.reminded)
}

func TestAbsentReminders_RunsOncePerDay(t *testing.T) {
	jobs, _, _, _, dispatcher := newTestJobs(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.SendAbsentReminders(context.Background()))
	require.NoError(t, jobs.SendAbsentReminders(context.Background()))

	assert.Len(t, dispatcher.reminded, 2, "second invocation in the hour must not re-send")
}

func TestBirthdayGreetings(t *testing.T) {
	jobs, _, userRepo, _, dispatcher := newTestJobs(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC))
	userRepo.celebrants = []user.User{{ID: "emp-2", Name: "Bilal"}}

	require.NoError(t, jobs.SendBirthdayGreetings(context.Background()))
	assert.Equal(t, []string{"emp-2"}, dispatcher.birthdays)

	// Same day again: claimed, nothing more goes out.
	require.NoError(t, jobs.SendBirthdayGreetings(context.Background()))
	assert.Len(t, dispatcher.birthdays, 1)
}

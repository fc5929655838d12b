package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

var testOffice = Office{Latitude: 18.5204, Longitude: 73.8567, RadiusKM: 1}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
}

func authedCtx(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	m := make(map[string]user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
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

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
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
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
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

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	seq     int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.UserID == att.UserID && existing.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
	}
	f.seq++
	att.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string) ([]attendance.Attendance, error) {
	var matched []attendance.Attendance
	for _, att := range f.records {
		if att.UserID == userID {
			matched = append(matched, att)
		}
	}
	return matched, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	var matched []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Equal(date) {
			matched = append(matched, att)
		}
	}
	return matched, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, year int, month time.Month, userID *string) ([]attendance.Attendance, error) {
	var matched []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Year() != year || att.Date.Month() != month {
			continue
		}
		if userID != nil && att.UserID != *userID {
			continue
		}
		matched = append(matched, att)
	}
	return matched, nil
}

func (f *fakeAttendanceRepo) ListMarkedUserIDs(_ context.Context, date time.Time) ([]string, error) {
	var ids []string
	for _, att := range f.records {
		if att.Date.Equal(date) {
			ids = append(ids, att.UserID)
		}
	}
	return ids, nil
}

type dispatcherStub struct {
	notification.Dispatcher
	marked []attendance.Attendance
	alerts []float64
}

func (d *dispatcherStub) AttendanceMarked(_ context.Context, _ user.User, record attendance.Attendance) {
	d.marked = append(d.marked, record)
}

func (d *dispatcherStub) OutsideOffice(_ context.Context, _ user.User, _ attendance.Attendance, distanceKM float64) {
	d.alerts = append(d.alerts, distanceKM)
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

func newTestService() (attendance.Service, *fakeAttendanceRepo, *fakeUserRepo, *dispatcherStub, *auditStub) {
	attRepo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo(
		user.User{ID: "emp-1", Name: "Asha", Email: "asha@example.com", Role: user.RoleEmployee},
		user.User{ID: "emp-2", Name: "Bilal", Email: "bilal@example.com", Role: user.RoleEmployee},
		user.User{ID: "emp-3", Name: "Chitra", Email: "chitra@example.com", Role: user.RoleEmployee},
		user.User{ID: "adm-1", Name: "Dev", Email: "dev@example.com", Role: user.RoleAdmin},
	)
	dispatcher := &dispatcherStub{}
	auditor := &auditStub{}
	svc := NewAttendanceService(attRepo, userRepo, dispatcher, auditor, testOffice, time.UTC, fixedNow)
	return svc, attRepo, userRepo, dispatcher, auditor
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestMark_Present(t *testing.T) {
	svc, attRepo, _, dispatcher, auditor := newTestService()
	ctx := authedCtx(t, "emp-1")

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		Status:      string(attendance.StatusPresent),
		CheckInTime: strPtr("09:05"),
		Latitude:    floatPtr(testOffice.Latitude),
		Longitude:   floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.UserID)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.False(t, resp.OutsideOffice)
	assert.Len(t, attRepo.records, 1)
	assert.Len(t, dispatcher.marked, 1)
	assert.Empty(t, dispatcher.alerts)
	assert.Equal(t, []string{"attendance.mark"}, auditor.actions)
}

func TestMark_SecondMarkSameDayRejected(t *testing.T) {
	svc, attRepo, _, _, auditor := newTestService()
	ctx := authedCtx(t, "emp-1")

	req := attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	}

	_, err := svc.Mark(ctx, req)
	require.NoError(t, err)

	_, err = svc.Mark(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
	assert.Len(t, attRepo.records, 1)
	assert.Len(t, auditor.actions, 1, "only the successful mark leaves a trail entry")
}

func TestMark_RemoteWorkRequiresAssignmentFields(t *testing.T) {
	svc, attRepo, _, _, _ := newTestService()
	ctx := authedCtx(t, "emp-1")

	_, err := svc.Mark(ctx, attendance.MarkRequest{
		Status:   string(attendance.StatusRemoteWork),
		Customer: strPtr("Acme Corp"),
		// work_location and assigned_by missing
	})
	require.Error(t, err)
	assert.Empty(t, attRepo.records, "invalid request must not persist anything")
}

func TestMark_RemoteWorkSkipsGeofence(t *testing.T) {
	svc, _, _, dispatcher, _ := newTestService()
	ctx := authedCtx(t, "emp-1")

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		Status:       string(attendance.StatusRemoteWork),
		Customer:     strPtr("Acme Corp"),
		WorkLocation: strPtr("Client site"),
		AssignedBy:   strPtr("Dev"),
	})
	require.NoError(t, err)
	assert.False(t, resp.OutsideOffice)
	assert.Empty(t, dispatcher.alerts)
}

func TestMark_OutsideOfficeStillSaved(t *testing.T) {
	svc, attRepo, _, dispatcher, _ := newTestService()
	ctx := authedCtx(t, "emp-1")

	// Roughly 9.7 km from the office coordinates.
	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(18.6000),
		Longitude: floatPtr(73.9000),
	})
	require.NoError(t, err)

	assert.True(t, resp.OutsideOffice)
	assert.Len(t, attRepo.records, 1, "record outside the radius is saved anyway")
	require.Len(t, dispatcher.alerts, 1)
	assert.Greater(t, dispatcher.alerts[0], testOffice.RadiusKM)
}

func TestCheckout_OwnerOnly(t *testing.T) {
	svc, attRepo, _, _, _ := newTestService()

	_, err := svc.Mark(authedCtx(t, "emp-1"), attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	var recordID string
	for id := range attRepo.records {
		recordID = id
	}

	_, err = svc.Checkout(authedCtx(t, "emp-2"), recordID, attendance.CheckoutRequest{CheckOutTime: "18:00"})
	assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)
	assert.Nil(t, attRepo.records[recordID].CheckOutTime, "foreign checkout must not mutate the record")

	resp, err := svc.Checkout(authedCtx(t, "emp-1"), recordID, attendance.CheckoutRequest{CheckOutTime: "18:00"})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "18:00", *resp.CheckOutTime)
}

func TestList_DayViewMergesUnmarked(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Mark(authedCtx(t, "emp-2"), attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	result, err := svc.List(authedCtx(t, "adm-1"), attendance.ListFilter{})
	require.NoError(t, err)

	// Three employees, one marked: three rows in name order.
	require.Len(t, result.Records, 3)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, string(attendance.StatusNotMarkedYet), result.Records[0].Status) // Asha
	assert.Equal(t, string(attendance.StatusPresent), result.Records[1].Status)      // Bilal
	assert.Equal(t, string(attendance.StatusNotMarkedYet), result.Records[2].Status) // Chitra
	assert.Empty(t, result.Records[0].ID, "placeholder rows are never persisted")
}

func TestList_MonthViewPersistedOnly(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Mark(authedCtx(t, "emp-1"), attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	month := "2026-03"
	result, err := svc.List(authedCtx(t, "adm-1"), attendance.ListFilter{Month: &month})
	require.NoError(t, err)

	require.Len(t, result.Records, 1, "month view carries no placeholder rows")
	assert.Equal(t, string(attendance.StatusPresent), result.Records[0].Status)
}

func TestList_InvalidFilters(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := authedCtx(t, "adm-1")

	badMonth := "03-2026"
	_, err := svc.List(ctx, attendance.ListFilter{Month: &badMonth})
	assert.ErrorIs(t, err, attendance.ErrInvalidMonthFilter)

	badDate := "10/03/2026"
	_, err = svc.List(ctx, attendance.ListFilter{Date: &badDate})
	assert.ErrorIs(t, err, attendance.ErrInvalidDateFilter)
}

func TestSummary_UnmarkedCountAsAbsent(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Mark(authedCtx(t, "emp-1"), attendance.MarkRequest{
		Status:    string(attendance.StatusPresent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	_, err = svc.Mark(authedCtx(t, "emp-2"), attendance.MarkRequest{
		Status:    string(attendance.StatusAbsent),
		Latitude:  floatPtr(testOffice.Latitude),
		Longitude: floatPtr(testOffice.Longitude),
	})
	require.NoError(t, err)

	summary, err := svc.Summary(authedCtx(t, "adm-1"), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PresentCount)
	// One explicit Absent plus one employee with no record.
	assert.Equal(t, 2, summary.AbsentCount)
	assert.Equal(t, 3, summary.TotalEmployees)
}

func TestMySummary_CountsPerStatus(t *testing.T) {
	svc, attRepo, _, _, _ := newTestService()

	days := map[int]attendance.Status{
		2: attendance.StatusPresent,
		3: attendance.StatusPresent,
		4: attendance.StatusHalfDay,
		5: attendance.StatusRemoteWork,
	}
	for day, status := range days {
		_, err := attRepo.Create(context.Background(), attendance.Attendance{
			UserID: "emp-1",
			Date:   time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			Status: status,
		})
		require.NoError(t, err)
	}

	summary, err := svc.MySummary(authedCtx(t, "emp-1"))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PresentCount)
	assert.Equal(t, 1, summary.HalfDayCount)
	assert.Equal(t, 1, summary.RemoteCount)
	assert.Equal(t, 0, summary.AbsentCount)
	assert.Equal(t, 4, summary.TotalDays)
}

package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/sse"
)

type fakeSettingRepo struct {
	mu       sync.Mutex
	settings map[string]notification.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[string]notification.Setting)}
}

func (f *fakeSettingRepo) Get(_ context.Context, userID string) (notification.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.settings[userID]
	if !ok {
		return notification.Setting{}, notification.ErrSettingNotFound
	}
	return st, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, s notification.Setting) (notification.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.UpdatedAt = time.Now()
	f.settings[s.UserID] = s
	return s, nil
}

func (f *fakeSettingRepo) set(userID string, emailOn, pushOn bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[userID] = notification.Setting{UserID: userID, EmailNotif: emailOn, PushNotif: pushOn}
}

// fakeEmail records which templates went out. Deliveries happen on
// worker goroutines, so access is mutex-guarded.
type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) record(event string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, event)
	return nil
}

func (f *fakeEmail) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeEmail) SendVerification(_, _, _ string) error { return f.record("verification") }

func (f *fakeEmail) SendPasswordReset(_, _, _, _ string) error { return f.record("password_reset") }

func (f *fakeEmail) SendPasswordChanged(_, _ string) error { return f.record("password_changed") }

func (f *fakeEmail) SendAccountApproved(_, _ string) error { return f.record("account_approved") }

func (f *fakeEmail) SendAccountRejected(_, _ string) error { return f.record("account_rejected") }

func (f *fakeEmail) SendAttendanceMarked(_, _, _, _ string, _, _, _, _ *string) error {
	return f.record("attendance_marked")
}

func (f *fakeEmail) SendOutsideOfficeAlert(_, _, _, _, _ string, _, _, _ float64) error {
	return f.record("outside_office_alert")
}

func (f *fakeEmail) SendLeaveApplied(_, _, _, _, _, _, _ string) error {
	return f.record("leave_applied")
}

func (f *fakeEmail) SendLeaveDecision(_, _, _, _, _, _ string, _ *string) error {
	return f.record("leave_decision")
}

func (f *fakeEmail) SendAbsentReminder(_, _, _ string) error { return f.record("absent_reminder") }

func (f *fakeEmail) SendBirthdayGreeting(_, _ string) error { return f.record("birthday") }

func (f *fakeEmail) SendBroadcast(_, _, _ string) error { return f.record("broadcast") }

func newTestDispatcher(alertEmail string) (notification.Dispatcher, *fakeSettingRepo, *fakeEmail, *sse.Hub) {
	settings := newFakeSettingRepo()
	mail := &fakeEmail{}
	hub := sse.NewHub()
	d := NewDispatcher(settings, mail, hub, alertEmail, Config{WorkerCount: 1, QueueSize: 16})
	return d, settings, mail, hub
}

func TestDispatch_DefaultSettingEmailOnPushOff(t *testing.T) {
	d, _, mail, hub := newTestDispatcher("")

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	d.AccountApproved(context.Background(), user.User{ID: "emp-1", Name: "Asha", Email: "asha@example.com"})
	d.Stop()

	assert.Equal(t, []string{"account_approved"}, mail.events())
	assert.Empty(t, ch, "push is off by default")
}

func TestDispatch_BothPreferencesOffSkipsDelivery(t *testing.T) {
	d, settings, mail, _ := newTestDispatcher("")
	settings.set("emp-1", false, false)

	d.AttendanceMarked(context.Background(), user.User{ID: "emp-1", Email: "asha@example.com"}, attendance.Attendance{
		Status: attendance.StatusPresent,
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	d.Stop()

	assert.Empty(t, mail.events())
}

func TestDispatch_PushOnlyPublishesWithoutEmail(t *testing.T) {
	d, settings, mail, hub := newTestDispatcher("")
	settings.set("emp-1", false, true)

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	d.BirthdayGreeting(context.Background(), user.User{ID: "emp-1", Name: "Asha", Email: "asha@example.com"})
	d.Stop()

	assert.Empty(t, mail.events())
	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, "birthday", ev.Event)
	assert.Equal(t, "emp-1", ev.UserID)
}

func TestDispatch_TransactionalIgnoresPreferences(t *testing.T) {
	d, settings, mail, _ := newTestDispatcher("")
	settings.set("emp-1", false, false)

	u := user.User{ID: "emp-1", Name: "Asha", Email: "asha@example.com"}
	d.VerifyEmail(context.Background(), u, "http://localhost:3000/verify-email?token=x")
	d.PasswordReset(context.Background(), u, "http://localhost:3000/reset?token=y", time.Now().Add(time.Hour))
	d.PasswordChanged(context.Background(), u)
	d.Stop()

	assert.ElementsMatch(t, []string{"verification", "password_reset", "password_changed"}, mail.events())
}

func TestDispatch_OutsideOfficeNeedsAlertMailbox(t *testing.T) {
	record := attendance.Attendance{
		Status: attendance.StatusPresent,
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	u := user.User{ID: "emp-1", Name: "Asha", Email: "asha@example.com"}

	silent, _, silentMail, _ := newTestDispatcher("")
	silent.OutsideOffice(context.Background(), u, record, 4.2)
	silent.Stop()
	assert.Empty(t, silentMail.events(), "no alert mailbox configured")

	d, settings, mail, _ := newTestDispatcher("ops@example.com")
	settings.set("emp-1", false, false)
	d.OutsideOffice(context.Background(), u, record, 4.2)
	d.Stop()
	assert.Equal(t, []string{"outside_office_alert"}, mail.events(), "alerts bypass user preferences")
}

func TestUpdateSettings_MergesPartialRequest(t *testing.T) {
	d, _, _, _ := newTestDispatcher("")
	defer d.Stop()

	pushOn := true
	updated, err := d.UpdateSettings(context.Background(), "emp-1", notification.UpdateSettingRequest{PushNotif: &pushOn})
	require.NoError(t, err)

	// Email keeps the default; only push changed.
	assert.True(t, updated.EmailNotif)
	assert.True(t, updated.PushNotif)

	got, err := d.GetSettings(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

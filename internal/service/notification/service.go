package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/email"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/sse"
)

// Config holds dispatcher configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

// delivery is one queued outbound notification. send performs the email
// delivery; push carries the optional SSE payload.
type delivery struct {
	event  string
	userID string
	send   func() error
	push   bool
	data   interface{}
}

type service struct {
	settings notification.SettingRepository
	email    email.EmailService
	hub      *sse.Hub

	alertEmail string

	queue    chan delivery
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates the notification dispatcher with background
// delivery workers. alertEmail is the operational mailbox for
// outside-office alerts; empty disables them.
func NewDispatcher(settings notification.SettingRepository, emailSvc email.EmailService, hub *sse.Hub, alertEmail string, cfg Config) notification.Dispatcher {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		settings:   settings,
		email:      emailSvc,
		hub:        hub,
		alertEmail: alertEmail,
		queue:      make(chan delivery, cfg.QueueSize),
		stopCh:     make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification dispatcher started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case d := <-s.queue:
			s.process(id, d)
		case <-s.stopCh:
			// Drain what is already queued, then exit.
			for {
				select {
				case d := <-s.queue:
					s.process(id, d)
				default:
					return
				}
			}
		}
	}
}

// process delivers one notification. Failures are logged and swallowed;
// delivery is best-effort by contract.
func (s *service) process(workerID int, d delivery) {
	if d.send != nil {
		if err := d.send(); err != nil {
			slog.Error("Notification delivery failed",
				"worker", workerID, "event", d.event, "user_id", d.userID, "error", err)
		}
	}

	if d.push && d.userID != "" {
		s.hub.Publish(d.userID, sse.Event{
			UserID: d.userID,
			Event:  d.event,
			Data:   d.data,
		})
	}
}

// enqueue adds a delivery without ever blocking the caller. A full queue
// drops the notification with a log line.
func (s *service) enqueue(d delivery) {
	select {
	case s.queue <- d:
	default:
		slog.Warn("Notification queue full, dropping", "event", d.event, "user_id", d.userID)
	}
}

// settingFor resolves a user's preferences, applying defaults when the
// user never saved any.
func (s *service) settingFor(ctx context.Context, userID string) notification.Setting {
	st, err := s.settings.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, notification.ErrSettingNotFound) {
			slog.Error("Failed to load notification setting", "user_id", userID, "error", err)
		}
		return notification.DefaultSetting(userID)
	}
	return st
}

// enqueueGated queues a delivery honoring the recipient's preferences.
func (s *service) enqueueGated(ctx context.Context, recipient user.User, event string, send func() error, data interface{}) {
	st := s.settingFor(ctx, recipient.ID)
	if !st.EmailNotif && !st.PushNotif {
		return
	}

	d := delivery{
		event:  event,
		userID: recipient.ID,
		push:   st.PushNotif,
		data:   data,
	}
	if st.EmailNotif {
		d.send = send
	}
	s.enqueue(d)
}

// VerifyEmail implements notification.Dispatcher.
func (s *service) VerifyEmail(ctx context.Context, recipient user.User, link string) {
	to, name := recipient.Email, recipient.Name
	s.enqueue(delivery{
		event:  "verify_email",
		userID: recipient.ID,
		send:   func() error { return s.email.SendVerification(to, name, link) },
	})
}

// PasswordReset implements notification.Dispatcher.
func (s *service) PasswordReset(ctx context.Context, recipient user.User, link string, expiresAt time.Time) {
	to, name := recipient.Email, recipient.Name
	expires := expiresAt.Format(time.RFC1123)
	s.enqueue(delivery{
		event:  "password_reset",
		userID: recipient.ID,
		send:   func() error { return s.email.SendPasswordReset(to, name, link, expires) },
	})
}

// PasswordChanged implements notification.Dispatcher.
func (s *service) PasswordChanged(ctx context.Context, recipient user.User) {
	to, name := recipient.Email, recipient.Name
	s.enqueue(delivery{
		event:  "password_changed",
		userID: recipient.ID,
		send:   func() error { return s.email.SendPasswordChanged(to, name) },
	})
}

// AccountApproved implements notification.Dispatcher.
func (s *service) AccountApproved(ctx context.Context, recipient user.User) {
	to, name := recipient.Email, recipient.Name
	s.enqueueGated(ctx, recipient, "account_approved",
		func() error { return s.email.SendAccountApproved(to, name) },
		map[string]string{"status": "approved"})
}

// AccountRejected implements notification.Dispatcher. The snapshot is the
// pre-deletion account; its stored preference still gates the send.
func (s *service) AccountRejected(ctx context.Context, snapshot user.User) {
	to, name := snapshot.Email, snapshot.Name
	s.enqueueGated(ctx, snapshot, "account_rejected",
		func() error { return s.email.SendAccountRejected(to, name) },
		map[string]string{"status": "rejected"})
}

// AttendanceMarked implements notification.Dispatcher.
func (s *service) AttendanceMarked(ctx context.Context, recipient user.User, record attendance.Attendance) {
	to, name := recipient.Email, recipient.Name
	status := string(record.Status)
	date := record.Date.Format("2006-01-02")
	checkIn, customer, workLocation, assignedBy := record.CheckInTime, record.Customer, record.WorkLocation, record.AssignedBy

	s.enqueueGated(ctx, recipient, "attendance_marked",
		func() error {
			return s.email.SendAttendanceMarked(to, name, status, date, checkIn, customer, workLocation, assignedBy)
		},
		map[string]string{"status": status, "date": date})
}

// OutsideOffice implements notification.Dispatcher. Goes to the
// operational mailbox and bypasses user preferences.
func (s *service) OutsideOffice(ctx context.Context, recipient user.User, record attendance.Attendance, distanceKM float64) {
	if s.alertEmail == "" {
		return
	}

	var lat, lng float64
	if record.Latitude != nil {
		lat = *record.Latitude
	}
	if record.Longitude != nil {
		lng = *record.Longitude
	}

	to := s.alertEmail
	name, mail := recipient.Name, recipient.Email
	status := string(record.Status)
	date := record.Date.Format("2006-01-02")

	s.enqueue(delivery{
		event: "outside_office_alert",
		send: func() error {
			return s.email.SendOutsideOfficeAlert(to, name, mail, status, date, lat, lng, distanceKM)
		},
	})
}

// LeaveApplied implements notification.Dispatcher. Each admin's own
// preference gates their copy.
func (s *service) LeaveApplied(ctx context.Context, admins []user.User, requester user.User, lr leave.LeaveRequest) {
	start := lr.StartDate.Format("2006-01-02")
	end := lr.EndDate.Format("2006-01-02")

	for _, admin := range admins {
		to, adminName := admin.Email, admin.Name
		requesterName := requester.Name
		leaveType, reason := lr.LeaveType, lr.Reason

		s.enqueueGated(ctx, admin, "leave_applied",
			func() error {
				return s.email.SendLeaveApplied(to, adminName, requesterName, leaveType, start, end, reason)
			},
			map[string]string{"leave_id": lr.ID, "requester": requesterName})
	}
}

// LeaveDecided implements notification.Dispatcher.
func (s *service) LeaveDecided(ctx context.Context, recipient user.User, lr leave.LeaveRequest) {
	to, name := recipient.Email, recipient.Name
	leaveType := lr.LeaveType
	start := lr.StartDate.Format("2006-01-02")
	end := lr.EndDate.Format("2006-01-02")
	status := string(lr.Status)
	note := lr.AdminNote

	s.enqueueGated(ctx, recipient, "leave_decided",
		func() error {
			return s.email.SendLeaveDecision(to, name, leaveType, start, end, status, note)
		},
		map[string]string{"leave_id": lr.ID, "status": status})
}

// AbsentReminder implements notification.Dispatcher.
func (s *service) AbsentReminder(ctx context.Context, recipient user.User, day time.Time) {
	to, name := recipient.Email, recipient.Name
	date := day.Format("2006-01-02")

	s.enqueueGated(ctx, recipient, "absent_reminder",
		func() error { return s.email.SendAbsentReminder(to, name, date) },
		map[string]string{"date": date})
}

// BirthdayGreeting implements notification.Dispatcher.
func (s *service) BirthdayGreeting(ctx context.Context, recipient user.User) {
	to, name := recipient.Email, recipient.Name

	s.enqueueGated(ctx, recipient, "birthday",
		func() error { return s.email.SendBirthdayGreeting(to, name) },
		nil)
}

// BroadcastPosted implements notification.Dispatcher.
func (s *service) BroadcastPosted(ctx context.Context, recipients []user.User, b broadcast.Broadcast) {
	for _, recipient := range recipients {
		to, name := recipient.Email, recipient.Name
		message := b.Message

		s.enqueueGated(ctx, recipient, "broadcast",
			func() error { return s.email.SendBroadcast(to, name, message) },
			map[string]string{"broadcast_id": b.ID})
	}
}

// GetSettings implements notification.Dispatcher.
func (s *service) GetSettings(ctx context.Context, userID string) (notification.SettingResponse, error) {
	return notification.NewSettingResponse(s.settingFor(ctx, userID)), nil
}

// UpdateSettings implements notification.Dispatcher.
func (s *service) UpdateSettings(ctx context.Context, userID string, req notification.UpdateSettingRequest) (notification.SettingResponse, error) {
	current := s.settingFor(ctx, userID)

	if req.EmailNotif != nil {
		current.EmailNotif = *req.EmailNotif
	}
	if req.PushNotif != nil {
		current.PushNotif = *req.PushNotif
	}
	current.UserID = userID

	saved, err := s.settings.Upsert(ctx, current)
	if err != nil {
		return notification.SettingResponse{}, fmt.Errorf("failed to save notification settings: %w", err)
	}

	return notification.NewSettingResponse(saved), nil
}

// Subscribe implements notification.Dispatcher.
func (s *service) Subscribe(userID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(userID)
}

// Stop implements notification.Dispatcher.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification dispatcher stopped")
	})
}

package notification

import (
	"context"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/sse"
)

// Dispatcher queues outbound notifications for background delivery.
// Every method is fire-and-forget: delivery failures are logged by the
// workers and never surface to the caller.
//
// Preference-gated methods consult the recipient's Setting before
// enqueueing; transactional mail (verification, password flows) and
// operational alerts bypass the gate.
type Dispatcher interface {
	// Transactional (ungated)
	VerifyEmail(ctx context.Context, recipient user.User, link string)
	PasswordReset(ctx context.Context, recipient user.User, link string, expiresAt time.Time)
	PasswordChanged(ctx context.Context, recipient user.User)

	// Preference-gated
	AccountApproved(ctx context.Context, recipient user.User)
	AccountRejected(ctx context.Context, snapshot user.User)
	AttendanceMarked(ctx context.Context, recipient user.User, record attendance.Attendance)
	LeaveApplied(ctx context.Context, admins []user.User, requester user.User, lr leave.LeaveRequest)
	LeaveDecided(ctx context.Context, recipient user.User, lr leave.LeaveRequest)
	AbsentReminder(ctx context.Context, recipient user.User, day time.Time)
	BirthdayGreeting(ctx context.Context, recipient user.User)
	BroadcastPosted(ctx context.Context, recipients []user.User, b broadcast.Broadcast)

	// Operational alert to the configured HR mailbox (ungated)
	OutsideOffice(ctx context.Context, recipient user.User, record attendance.Attendance, distanceKM float64)

	// Preferences
	GetSettings(ctx context.Context, userID string) (SettingResponse, error)
	UpdateSettings(ctx context.Context, userID string, req UpdateSettingRequest) (SettingResponse, error)

	// SSE push stream, active only when the user's PushNotif is on
	Subscribe(userID string) (<-chan sse.Event, func())

	// Stop drains the queue and stops the workers
	Stop()
}

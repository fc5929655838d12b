package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
)

// RunStore persists per-job, per-day completion markers so a daily job
// fires at most once per calendar day across process restarts.
type RunStore interface {
	// TryClaim returns true when this process won the claim for (jobName, day).
	TryClaim(ctx context.Context, jobName string, day string) (bool, error)
}

const reminderHour = 9 // local time

type ReminderJobs struct {
	userRepo       user.Repository
	attendanceRepo attendance.Repository
	dispatcher     notification.Dispatcher
	runs           RunStore
	loc            *time.Location
	now            func() time.Time
}

func NewReminderJobs(
	userRepo user.Repository,
	attendanceRepo attendance.Repository,
	dispatcher notification.Dispatcher,
	runs RunStore,
	loc *time.Location,
	now func() time.Time,
) *ReminderJobs {
	if now == nil {
		now = time.Now
	}
	return &ReminderJobs{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		dispatcher:     dispatcher,
		runs:           runs,
		loc:            loc,
		now:            now,
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("absent_reminder", 1*time.Hour, j.SendAbsentReminders)
	scheduler.AddJob("birthday_greetings", 1*time.Hour, j.SendBirthdayGreetings)
}

// SendAbsentReminders mails every employee account with no attendance
// record for today. Runs once per day in the 09:00 local hour.
func (j *ReminderJobs) SendAbsentReminders(ctx context.Context) error {
	nowLocal := j.now().In(j.loc)
	if nowLocal.Hour() != reminderHour {
		return nil
	}

	day := nowLocal.Format("2006-01-02")
	claimed, err := j.runs.TryClaim(ctx, "absent_reminder", day)
	if err != nil {
		return fmt.Errorf("failed to claim job run: %w", err)
	}
	if !claimed {
		return nil
	}

	slog.Info("Cron: Starting absent reminder job", "date", day)

	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.loc)

	employees, err := j.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	markedIDs, err := j.attendanceRepo.ListMarkedUserIDs(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list marked users: %w", err)
	}

	marked := make(map[string]struct{}, len(markedIDs))
	for _, id := range markedIDs {
		marked[id] = struct{}{}
	}

	reminded := 0
	for _, emp := range employees {
		if _, ok := marked[emp.ID]; ok {
			continue
		}
		j.dispatcher.AbsentReminder(ctx, emp, today)
		reminded++
	}

	slog.Info("Cron: Absent reminders queued", "count", reminded)
	return nil
}

// SendBirthdayGreetings mails every account whose date of birth matches
// today's month and day. Runs once per day in the 09:00 local hour.
func (j *ReminderJobs) SendBirthdayGreetings(ctx context.Context) error {
	nowLocal := j.now().In(j.loc)
	if nowLocal.Hour() != reminderHour {
		return nil
	}

	day := nowLocal.Format("2006-01-02")
	claimed, err := j.runs.TryClaim(ctx, "birthday_greetings", day)
	if err != nil {
		return fmt.Errorf("failed to claim job run: %w", err)
	}
	if !claimed {
		return nil
	}

	slog.Info("Cron: Starting birthday greetings job", "date", day)

	celebrants, err := j.userRepo.ListWithBirthday(ctx, nowLocal.Month(), nowLocal.Day())
	if err != nil {
		return fmt.Errorf("failed to list birthdays: %w", err)
	}

	for _, u := range celebrants {
		j.dispatcher.BirthdayGreeting(ctx, u)
	}

	slog.Info("Cron: Birthday greetings queued", "count", len(celebrants))
	return nil
}

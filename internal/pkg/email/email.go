package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendVerification(to, name, verifyLink string) error
	SendPasswordReset(to, name, resetLink, expiresAt string) error
	SendPasswordChanged(to, name string) error
	SendAccountApproved(to, name string) error
	SendAccountRejected(to, name string) error
	SendAttendanceMarked(to, name, status, date string, checkInTime, customer, workLocation, assignedBy *string) error
	SendOutsideOfficeAlert(to, employeeName, employeeEmail, status, date string, lat, lng, distanceKM float64) error
	SendLeaveApplied(to, adminName, requesterName, leaveType, startDate, endDate, reason string) error
	SendLeaveDecision(to, name, leaveType, startDate, endDate, status string, note *string) error
	SendAbsentReminder(to, name, date string) error
	SendBirthdayGreeting(to, name string) error
	SendBroadcast(to, name, message string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

func (s *emailServiceImpl) render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}

func (s *emailServiceImpl) SendVerification(to, name, verifyLink string) error {
	body, err := s.render("verification.html", map[string]string{
		"Name":       name,
		"VerifyLink": verifyLink,
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Verify your email address", body)
}

func (s *emailServiceImpl) SendPasswordReset(to, name, resetLink, expiresAt string) error {
	body, err := s.render("password_reset.html", map[string]string{
		"Name":      name,
		"ResetLink": resetLink,
		"ExpiresAt": expiresAt,
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Reset your password", body)
}

func (s *emailServiceImpl) SendPasswordChanged(to, name string) error {
	body, err := s.render("password_changed.html", map[string]string{"Name": name})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Your password was changed", body)
}

func (s *emailServiceImpl) SendAccountApproved(to, name string) error {
	body, err := s.render("account_approved.html", map[string]string{"Name": name})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Your account has been approved", body)
}

func (s *emailServiceImpl) SendAccountRejected(to, name string) error {
	body, err := s.render("account_rejected.html", map[string]string{"Name": name})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Update on your account registration", body)
}

type attendanceMarkedData struct {
	Name         string
	Status       string
	Date         string
	CheckInTime  string
	Customer     string
	WorkLocation string
	AssignedBy   string
	IsRemote     bool
}

func (s *emailServiceImpl) SendAttendanceMarked(to, name, status, date string, checkInTime, customer, workLocation, assignedBy *string) error {
	data := attendanceMarkedData{
		Name:     name,
		Status:   status,
		Date:     date,
		IsRemote: customer != nil || workLocation != nil || assignedBy != nil,
	}
	if checkInTime != nil {
		data.CheckInTime = *checkInTime
	}
	if customer != nil {
		data.Customer = *customer
	}
	if workLocation != nil {
		data.WorkLocation = *workLocation
	}
	if assignedBy != nil {
		data.AssignedBy = *assignedBy
	}

	body, err := s.render("attendance_marked.html", data)
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("Attendance marked: %s", status), body)
}

func (s *emailServiceImpl) SendOutsideOfficeAlert(to, employeeName, employeeEmail, status, date string, lat, lng, distanceKM float64) error {
	body, err := s.render("outside_office_alert.html", map[string]string{
		"EmployeeName":  employeeName,
		"EmployeeEmail": employeeEmail,
		"Status":        status,
		"Date":          date,
		"Latitude":      fmt.Sprintf("%.6f", lat),
		"Longitude":     fmt.Sprintf("%.6f", lng),
		"DistanceKM":    fmt.Sprintf("%.2f", distanceKM),
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("Outside-office attendance: %s", employeeName), body)
}

func (s *emailServiceImpl) SendLeaveApplied(to, adminName, requesterName, leaveType, startDate, endDate, reason string) error {
	body, err := s.render("leave_applied.html", map[string]string{
		"AdminName":     adminName,
		"RequesterName": requesterName,
		"LeaveType":     leaveType,
		"StartDate":     startDate,
		"EndDate":       endDate,
		"Reason":        reason,
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("New leave request from %s", requesterName), body)
}

func (s *emailServiceImpl) SendLeaveDecision(to, name, leaveType, startDate, endDate, status string, note *string) error {
	data := map[string]string{
		"Name":      name,
		"LeaveType": leaveType,
		"StartDate": startDate,
		"EndDate":   endDate,
		"Status":    status,
	}
	if note != nil {
		data["Note"] = *note
	}

	body, err := s.render("leave_decision.html", data)
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", status), body)
}

func (s *emailServiceImpl) SendAbsentReminder(to, name, date string) error {
	body, err := s.render("absent_reminder.html", map[string]string{
		"Name": name,
		"Date": date,
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Reminder: attendance not marked today", body)
}

func (s *emailServiceImpl) SendBirthdayGreeting(to, name string) error {
	body, err := s.render("birthday.html", map[string]string{"Name": name})
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("Happy birthday, %s!", name), body)
}

func (s *emailServiceImpl) SendBroadcast(to, name, message string) error {
	body, err := s.render("broadcast.html", map[string]string{
		"Name":    name,
		"Message": message,
	})
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Company announcement", body)
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

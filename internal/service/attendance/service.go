package attendance

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/utils"
)

// Office describes the geofence against which check-ins are measured.
type Office struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	dispatcher     notification.Dispatcher
	auditor        audit.Recorder
	office         Office
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	dispatcher notification.Dispatcher,
	auditor audit.Recorder,
	office Office,
	loc *time.Location,
	now func() time.Time,
) attendance.Service {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
		auditor:        auditor,
		office:         office,
		loc:            loc,
		now:            now,
	}
}

// today returns the current day normalized to local midnight.
func (s *AttendanceServiceImpl) today() time.Time {
	nowLocal := s.now().In(s.loc)
	return time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)
}

// Mark implements attendance.Service. The duplicate-day guard lives in
// the repository's conditional insert. A check-in outside the office
// radius is saved anyway; only the alert differs.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	userData, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record := attendance.Attendance{
		UserID:       userID,
		Date:         s.today(),
		Status:       attendance.Status(req.Status),
		CheckInTime:  req.CheckInTime,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Customer:     req.Customer,
		WorkLocation: req.WorkLocation,
		AssignedBy:   req.AssignedBy,
	}

	var distanceKM float64
	if req.Latitude != nil && req.Longitude != nil {
		distanceMeters := utils.CalculateHaversineDistance(
			*req.Latitude, *req.Longitude,
			s.office.Latitude, s.office.Longitude,
		)
		distanceKM = distanceMeters / 1000
		record.OutsideOffice = distanceKM > s.office.RadiusKM
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.dispatcher.AttendanceMarked(ctx, userData, created)
	if created.OutsideOffice {
		s.dispatcher.OutsideOffice(ctx, userData, created, distanceKM)
	}

	statusDetail := string(created.Status)
	s.auditor.Record(ctx, audit.Log{
		ActorID:    &userData.ID,
		ActorEmail: &userData.Email,
		Action:     "attendance.mark",
		Entity:     "attendance",
		EntityID:   &created.ID,
		Detail:     &statusDetail,
	})

	return attendance.NewRecordResponse(created), nil
}

// Checkout implements attendance.Service. Ownership is an exact user-id
// match; admins get no override here.
func (s *AttendanceServiceImpl) Checkout(ctx context.Context, recordID string, req attendance.CheckoutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if record.UserID != userID {
		return attendance.RecordResponse{}, attendance.ErrNotRecordOwner
	}

	record.CheckOutTime = &req.CheckOutTime
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.NewRecordResponse(record), nil
}

// MyRecords implements attendance.Service.
func (s *AttendanceServiceImpl) MyRecords(ctx context.Context) ([]attendance.RecordResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.NewRecordResponse(record))
	}

	return responses, nil
}

// MySummary implements attendance.Service.
func (s *AttendanceServiceImpl) MySummary(ctx context.Context) (attendance.MySummaryResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return attendance.MySummaryResponse{}, err
	}

	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return attendance.MySummaryResponse{}, err
	}

	var summary attendance.MySummaryResponse
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentCount++
		case attendance.StatusAbsent:
			summary.AbsentCount++
		case attendance.StatusHalfDay:
			summary.HalfDayCount++
		case attendance.StatusRemoteWork:
			summary.RemoteCount++
		case attendance.StatusLeave:
			summary.LeaveCount++
		}
	}
	summary.TotalDays = len(records)

	return summary, nil
}

// List implements attendance.Service. The two filter modes have
// asymmetric shapes: the single-day view merges in a synthetic
// "Not Marked Yet" row per unmarked employee and sorts by name, while
// the month view returns persisted records only, date descending.
// Pagination runs over the merged in-memory list.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var rows []attendance.RecordResponse
	var err error

	if filter.Month != nil {
		rows, err = s.monthRows(ctx, *filter.Month, filter.UserID)
	} else {
		rows, err = s.mergedDayRows(ctx, filter.Date, filter.UserID)
	}
	if err != nil {
		return attendance.ListResponse{}, err
	}

	total := len(rows)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return attendance.ListResponse{
		Records:    rows[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (s *AttendanceServiceImpl) monthRows(ctx context.Context, monthStr string, userID *string) ([]attendance.RecordResponse, error) {
	month, err := time.ParseInLocation("2006-01", monthStr, s.loc)
	if err != nil {
		return nil, attendance.ErrInvalidMonthFilter
	}

	records, err := s.attendanceRepo.ListByMonth(ctx, month.Year(), month.Month(), userID)
	if err != nil {
		return nil, err
	}

	rows := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		rows = append(rows, attendance.NewRecordResponse(record))
	}

	return rows, nil
}

func (s *AttendanceServiceImpl) mergedDayRows(ctx context.Context, dateStr *string, userID *string) ([]attendance.RecordResponse, error) {
	day := s.today()
	if dateStr != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *dateStr, s.loc)
		if err != nil {
			return nil, attendance.ErrInvalidDateFilter
		}
		day = parsed
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	recorded := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		recorded[record.UserID] = record
	}

	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, err
	}

	// Employees are already sorted by name; build the merged view in
	// that order so recorded and unmarked rows interleave naturally.
	var rows []attendance.RecordResponse
	for _, emp := range employees {
		if userID != nil && emp.ID != *userID {
			continue
		}
		if record, ok := recorded[emp.ID]; ok {
			rows = append(rows, attendance.NewRecordResponse(record))
		} else {
			rows = append(rows, attendance.NewUnmarkedResponse(emp.ID, emp.Name, day))
		}
	}

	return rows, nil
}

// Summary implements attendance.Service. AbsentCount is composite:
// explicit Absent records plus employees with no record on the day.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, dateStr *string) (attendance.SummaryResponse, error) {
	day := s.today()
	if dateStr != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *dateStr, s.loc)
		if err != nil {
			return attendance.SummaryResponse{}, attendance.ErrInvalidDateFilter
		}
		day = parsed
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	summary := attendance.SummaryResponse{
		Date:           day.Format("2006-01-02"),
		TotalEmployees: len(employees),
	}

	marked := make(map[string]struct{}, len(records))
	for _, record := range records {
		marked[record.UserID] = struct{}{}
		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentCount++
		case attendance.StatusAbsent:
			summary.AbsentCount++
		case attendance.StatusHalfDay:
			summary.HalfDayCount++
		case attendance.StatusRemoteWork:
			summary.RemoteCount++
		case attendance.StatusLeave:
			summary.LeaveCount++
		}
	}

	for _, emp := range employees {
		if _, ok := marked[emp.ID]; !ok {
			summary.AbsentCount++
		}
	}

	return summary, nil
}

// Delete implements attendance.Service.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
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

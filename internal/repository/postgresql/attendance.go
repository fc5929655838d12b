package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

const attendanceColumns = `a.id, a.user_id, a.date, a.status, a.check_in_time, a.check_out_time,
	   a.latitude, a.longitude, a.outside_office, a.customer, a.work_location, a.assigned_by,
	   a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.Status, &att.CheckInTime, &att.CheckOutTime,
		&att.Latitude, &att.Longitude, &att.OutsideOffice, &att.Customer, &att.WorkLocation, &att.AssignedBy,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository. The insert is conditional on the
// (user_id, date) unique index: a conflicting row makes the insert a no-op,
// which surfaces as ErrAlreadyMarked. This closes the read-then-write race
// on double submission.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, user_id, date, status, check_in_time, check_out_time,
			latitude, longitude, outside_office, customer, work_location, assigned_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.Date,
		att.Status,
		att.CheckInTime,
		att.CheckOutTime,
		att.Latitude,
		att.Longitude,
		att.OutsideOffice,
		att.Customer,
		att.WorkLocation,
		att.AssignedBy,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			status = $2,
			check_in_time = $3,
			check_out_time = $4,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, att.Status, att.CheckInTime, att.CheckOutTime)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.Repository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *attendanceRepository) queryAttendances(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListByUser implements attendance.Repository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	return r.queryAttendances(ctx,
		`SELECT `+attendanceColumns+` FROM attendances a WHERE a.user_id = $1 ORDER BY a.date DESC`,
		userID)
}

// ListByDate implements attendance.Repository. Joins owner name/email.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.email
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.Status, &att.CheckInTime, &att.CheckOutTime,
			&att.Latitude, &att.Longitude, &att.OutsideOffice, &att.Customer, &att.WorkLocation, &att.AssignedBy,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListByMonth implements attendance.Repository.
func (r *attendanceRepository) ListByMonth(ctx context.Context, year int, month time.Month, userID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.email
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE EXTRACT(YEAR FROM a.date) = $1
		  AND EXTRACT(MONTH FROM a.date) = $2
	`
	args := []interface{}{year, int(month)}

	if userID != nil {
		query += ` AND a.user_id = $3`
		args = append(args, *userID)
	}
	query += ` ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by month: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.Status, &att.CheckInTime, &att.CheckOutTime,
			&att.Latitude, &att.Longitude, &att.OutsideOffice, &att.Customer, &att.WorkLocation, &att.AssignedBy,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListMarkedUserIDs implements attendance.Repository.
func (r *attendanceRepository) ListMarkedUserIDs(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT user_id FROM attendances WHERE date = $1`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query marked user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

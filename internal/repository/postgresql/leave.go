package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/leave"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

const leaveColumns = `l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.reason,
	   l.status, l.admin_note, l.decided_at, l.created_at, l.updated_at`

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if lr.ID == "" {
		lr.ID = uuid.New().String()
	}
	lr.Status = leave.StatusPending

	query := `
		INSERT INTO leave_requests (
			id, user_id, leave_type, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.ID, lr.UserID, lr.LeaveType, lr.StartDate, lr.EndDate, lr.Reason, lr.Status,
	).Scan(&lr.CreatedAt, &lr.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests l WHERE l.id = $1`

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Reason,
		&lr.Status, &lr.AdminNote, &lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRepository) queryLeaves(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Reason,
			&lr.Status, &lr.AdminNote, &lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.UserName, &lr.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// ListByUser implements leave.Repository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return r.queryLeaves(ctx,
		`SELECT `+leaveColumns+`, u.name, u.email
		 FROM leave_requests l
		 JOIN users u ON u.id = l.user_id
		 WHERE l.user_id = $1
		 ORDER BY l.created_at DESC`, userID)
}

// List implements leave.Repository.
func (r *leaveRepository) List(ctx context.Context, status *leave.Status) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveColumns + `, u.name, u.email
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
	`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE l.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY l.created_at DESC`

	return r.queryLeaves(ctx, query, args...)
}

// Decide implements leave.Repository. The update is conditional on the
// request still being Pending, so a second decision fails closed instead
// of silently flipping a terminal state.
func (r *leaveRepository) Decide(ctx context.Context, id string, status leave.Status, note *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $2,
			admin_note = $3,
			decided_at = now(),
			updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING ` + leaveColumnsBare + `
	`

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query, id, status, note, leave.StatusPending).Scan(
		&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Reason,
		&lr.Status, &lr.AdminNote, &lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err == nil {
		return lr, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	// No row updated: distinguish missing from already processed.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return leave.LeaveRequest{}, getErr
	}
	return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
}

const leaveColumnsBare = `id, user_id, leave_type, start_date, end_date, reason,
	   status, admin_note, decided_at, created_at, updated_at`

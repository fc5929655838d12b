package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

// Create implements audit.Repository.
func (r *auditRepository) Create(ctx context.Context, entry audit.Log) error {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, actor_email, action, entity, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		entry.ID, entry.ActorID, entry.ActorEmail, entry.Action, entry.Entity, entry.EntityID, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// List implements audit.Repository.
func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]audit.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, actor_id, actor_email, action, entity, entity_id, detail, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []audit.Log
	for rows.Next() {
		var l audit.Log
		err := rows.Scan(&l.ID, &l.ActorID, &l.ActorEmail, &l.Action, &l.Entity, &l.EntityID, &l.Detail, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

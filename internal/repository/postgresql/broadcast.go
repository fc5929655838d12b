package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/broadcast"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

type broadcastRepository struct {
	db *database.DB
}

func NewBroadcastRepository(db *database.DB) broadcast.Repository {
	return &broadcastRepository{db: db}
}

// Create implements broadcast.Repository.
func (r *broadcastRepository) Create(ctx context.Context, b broadcast.Broadcast) (broadcast.Broadcast, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `
		INSERT INTO broadcasts (id, message, audience, pinned, expires_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.Message, b.Audience, b.Pinned, b.ExpiresAt, b.CreatedBy,
	).Scan(&b.CreatedAt)

	if err != nil {
		return broadcast.Broadcast{}, fmt.Errorf("failed to create broadcast: %w", err)
	}

	return b, nil
}

// ListActive implements broadcast.Repository.
func (r *broadcastRepository) ListActive(ctx context.Context, now time.Time, audience broadcast.Audience) ([]broadcast.Broadcast, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, message, audience, pinned, expires_at, created_by, created_at
		FROM broadcasts
		WHERE (expires_at IS NULL OR expires_at > $1)
		  AND (audience = 'all' OR audience = $2)
		ORDER BY pinned DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, now, audience)
	if err != nil {
		return nil, fmt.Errorf("failed to query broadcasts: %w", err)
	}
	defer rows.Close()

	var broadcasts []broadcast.Broadcast
	for rows.Next() {
		var b broadcast.Broadcast
		err := rows.Scan(&b.ID, &b.Message, &b.Audience, &b.Pinned, &b.ExpiresAt, &b.CreatedBy, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan broadcast: %w", err)
		}
		broadcasts = append(broadcasts, b)
	}

	return broadcasts, rows.Err()
}

// GetByID implements broadcast.Repository.
func (r *broadcastRepository) GetByID(ctx context.Context, id string) (broadcast.Broadcast, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, message, audience, pinned, expires_at, created_by, created_at
		FROM broadcasts WHERE id = $1
	`

	var b broadcast.Broadcast
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Message, &b.Audience, &b.Pinned, &b.ExpiresAt, &b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return broadcast.Broadcast{}, broadcast.ErrBroadcastNotFound
		}
		return broadcast.Broadcast{}, fmt.Errorf("failed to get broadcast: %w", err)
	}

	return b, nil
}

// Delete implements broadcast.Repository.
func (r *broadcastRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM broadcasts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete broadcast: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return broadcast.ErrBroadcastNotFound
	}

	return nil
}

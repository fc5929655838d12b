package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

type notificationSettingRepository struct {
	db *database.DB
}

func NewNotificationSettingRepository(db *database.DB) notification.SettingRepository {
	return &notificationSettingRepository{db: db}
}

// Get implements notification.SettingRepository.
func (r *notificationSettingRepository) Get(ctx context.Context, userID string) (notification.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, email_notif, push_notif, updated_at
		FROM notification_settings WHERE user_id = $1
	`

	var s notification.Setting
	err := q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.EmailNotif, &s.PushNotif, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Setting{}, notification.ErrSettingNotFound
		}
		return notification.Setting{}, fmt.Errorf("failed to get notification setting: %w", err)
	}

	return s, nil
}

// Upsert implements notification.SettingRepository.
func (r *notificationSettingRepository) Upsert(ctx context.Context, s notification.Setting) (notification.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notification_settings (user_id, email_notif, push_notif)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notif = EXCLUDED.email_notif,
			push_notif = EXCLUDED.push_notif,
			updated_at = now()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, s.UserID, s.EmailNotif, s.PushNotif).Scan(&s.UpdatedAt)
	if err != nil {
		return notification.Setting{}, fmt.Errorf("failed to upsert notification setting: %w", err)
	}

	return s, nil
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/cron"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

type jobRunStore struct {
	db *database.DB
}

func NewJobRunStore(db *database.DB) cron.RunStore {
	return &jobRunStore{db: db}
}

// TryClaim implements cron.RunStore with a conditional insert on the
// (job_name, run_day) primary key. Exactly one process per day wins the
// claim, so daily jobs survive restarts without double-sending.
func (s *jobRunStore) TryClaim(ctx context.Context, jobName string, day string) (bool, error) {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO job_runs (job_name, run_day)
		VALUES ($1, $2)
		ON CONFLICT (job_name, run_day) DO NOTHING
	`, jobName, day)
	if err != nil {
		return false, fmt.Errorf("failed to claim job run: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

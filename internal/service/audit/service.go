package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
)

const recordTimeout = 5 * time.Second

type AuditServiceImpl struct {
	repo audit.Repository
}

func NewAuditService(repo audit.Repository) audit.Recorder {
	return &AuditServiceImpl{repo: repo}
}

// Record implements audit.Recorder. The write is detached from the
// request context so a client disconnect cannot lose the entry.
func (s *AuditServiceImpl) Record(ctx context.Context, entry audit.Log) {
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.repo.Create(detached, entry); err != nil {
		slog.Error("failed to record audit entry",
			"action", entry.Action,
			"entity", entry.Entity,
			"error", err,
		)
	}
}

// List implements audit.Recorder.
func (s *AuditServiceImpl) List(ctx context.Context, limit, offset int) ([]audit.LogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]audit.LogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, audit.NewLogResponse(entry))
	}

	return responses, nil
}

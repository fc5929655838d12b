package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/document"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

type documentRepository struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.Repository {
	return &documentRepository{db: db}
}

// Create implements document.Repository.
func (r *documentRepository) Create(ctx context.Context, d document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	query := `
		INSERT INTO documents (id, user_id, name, path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uploaded_at
	`

	err := q.QueryRow(ctx, query,
		d.ID, d.UserID, d.Name, d.Path, d.ContentType, d.SizeBytes,
	).Scan(&d.UploadedAt)

	if err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return d, nil
}

// GetByID implements document.Repository.
func (r *documentRepository) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, path, content_type, size_bytes, uploaded_at
		FROM documents WHERE id = $1
	`

	var d document.Document
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Path, &d.ContentType, &d.SizeBytes, &d.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	return d, nil
}

// ListByUser implements document.Repository.
func (r *documentRepository) ListByUser(ctx context.Context, userID, sortBy, order string) ([]document.Document, error) {
	q := GetQuerier(ctx, r.db)

	// Sort inputs are whitelisted; they are spliced, not parameterized.
	column := "uploaded_at"
	if sortBy == "name" {
		column = "name"
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, path, content_type, size_bytes, uploaded_at
		FROM documents
		WHERE user_id = $1
		ORDER BY %s %s
	`, column, direction)

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var d document.Document
		err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Path, &d.ContentType, &d.SizeBytes, &d.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// Delete implements document.Repository.
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}

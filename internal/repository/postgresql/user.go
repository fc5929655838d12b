package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
)

const userColumns = `id, name, email, password_hash, role, is_approved, is_verified,
	   verification_token, reset_token, reset_token_expiry, date_of_birth,
	   phone, department, position, profile_photo_path, oauth_provider,
	   created_at, updated_at`

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsApproved, &u.IsVerified,
		&u.VerificationToken, &u.ResetToken, &u.ResetTokenExpiry, &u.DateOfBirth,
		&u.Phone, &u.Department, &u.Position, &u.ProfilePhotoPath, &u.OAuthProvider,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.Repository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		newUser.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, is_approved, is_verified,
			verification_token, date_of_birth, phone, department, position, oauth_provider
		) VALUES (
			$1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.ID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.IsApproved,
		newUser.IsVerified,
		newUser.VerificationToken,
		newUser.DateOfBirth,
		newUser.Phone,
		newUser.Department,
		newUser.Position,
		newUser.OAuthProvider,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	newUser.Email = strings.ToLower(newUser.Email)
	return newUser, nil
}

// GetByID implements user.Repository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.Repository. The lookup is case-insensitive.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByVerificationToken implements user.Repository.
func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`

	u, err := scanUser(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("failed to get user by verification token: %w", err)
	}

	return u, nil
}

// GetByResetToken implements user.Repository.
func (r *userRepository) GetByResetToken(ctx context.Context, token string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`

	u, err := scanUser(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return u, nil
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// List implements user.Repository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC`)
}

// ListByRole implements user.Repository.
func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY name ASC`, role)
}

// ListPendingApproval implements user.Repository.
func (r *userRepository) ListPendingApproval(ctx context.Context) ([]user.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_approved = false ORDER BY created_at ASC`)
}

// ListWithBirthday implements user.Repository. Matches month and day only.
func (r *userRepository) ListWithBirthday(ctx context.Context, month time.Month, day int) ([]user.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE date_of_birth IS NOT NULL
		   AND EXTRACT(MONTH FROM date_of_birth) = $1
		   AND EXTRACT(DAY FROM date_of_birth) = $2
		 ORDER BY name ASC`, int(month), day)
}

// Update implements user.Repository.
func (r *userRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			name = $2,
			password_hash = $3,
			role = $4,
			is_approved = $5,
			is_verified = $6,
			verification_token = $7,
			reset_token = $8,
			reset_token_expiry = $9,
			date_of_birth = $10,
			phone = $11,
			department = $12,
			position = $13,
			profile_photo_path = $14,
			oauth_provider = $15,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.Name, u.PasswordHash, u.Role, u.IsApproved, u.IsVerified,
		u.VerificationToken, u.ResetToken, u.ResetTokenExpiry, u.DateOfBirth,
		u.Phone, u.Department, u.Position, u.ProfilePhotoPath, u.OAuthProvider,
	).Scan(&u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// Delete implements user.Repository.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

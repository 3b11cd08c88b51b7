package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/mernshopper/shopper-backend/internal/database"
	"github.com/mernshopper/shopper-backend/internal/models"
)

// UserStore is the credential store contract. Lookups return (nil, nil) when
// no user matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	// UpdatePasswordHashByEmail replaces the user's password hash and returns
	// the updated user, or (nil, nil) when no user has that email.
	UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) (*models.User, error)
}

type postgresUserStore struct{}

// NewUserStore returns the PostgreSQL-backed credential store.
func NewUserStore() UserStore {
	return &postgresUserStore{}
}

const userColumns = `id, username, email, password_hash, roles, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, pq.Array(&u.Roles), &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *postgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := database.PostgresDB.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *postgresUserStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	row := database.PostgresDB.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1 AND email = $2
	`, username, email)
	return scanUser(row)
}

// UsernameTaken checks for an existing username, case-insensitively.
func (s *postgresUserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var existing string
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT username FROM users WHERE LOWER(username) = $1
	`, strings.ToLower(username)).Scan(&existing)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *postgresUserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	var existing string
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT email FROM users WHERE email = $1
	`, email).Scan(&existing)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *postgresUserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Username, user.Email, user.PasswordHash, pq.Array(user.Roles), user.CreatedAt, user.UpdatedAt)
	return err
}

func (s *postgresUserStore) UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) (*models.User, error) {
	row := database.PostgresDB.QueryRowContext(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING `+userColumns+`
	`, passwordHash, email)
	return scanUser(row)
}

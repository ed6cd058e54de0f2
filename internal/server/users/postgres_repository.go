package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medassist/symptomchecker/internal/common"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations; it covers both the email and the api_key constraints.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (email, password_hash, api_key)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.APIKey).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT id, email, password_hash, api_key, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	query :=
		`SELECT id, email, password_hash, api_key, created_at, updated_at FROM users
		 WHERE api_key = $1
		 `

	return r.getOne(ctx, query, apiKey)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.APIKey, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marlondridley/FarME/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// UserRepository is the users collection. The role field on each document
// drives access-control routing; it is read per request (pull-based), never
// subscribed to.
type UserRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new user with its opaque bearer token.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, token string) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("users: encode: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, email, token, doc) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, token, doc)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserExists
		}
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}

// GetByID fetches one user document.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, doc FROM users WHERE id = $1`, id)
}

// GetByToken resolves a bearer token to its user. This is the per-request
// role lookup backing the auth middleware.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, doc FROM users WHERE token = $1`, token)
}

func (r *UserRepository) get(ctx context.Context, query, arg string) (*domain.User, error) {
	var (
		id  string
		doc []byte
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&id, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: query: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("users: decode %s: %w", id, err)
	}
	user.ID = id
	return &user, nil
}

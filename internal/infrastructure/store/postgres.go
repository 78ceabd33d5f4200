// Package store persists farms, users and orders as JSONB documents in
// Postgres. Farm writes are merge-on-write: a save carries only the fields
// the caller changed, and the stored document keeps everything else.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx connection pool and exposes the collection repositories.
type Store struct {
	pool *pgxpool.Pool
}

// New opens a connection pool, waits for the database to come up, and runs
// schema setup.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = pool.Ping(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, fmt.Errorf("store: ping cancelled: %w", ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping failed after retries: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	log.Printf("[store] connected")
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Farms returns the farms collection.
func (s *Store) Farms() *FarmRepository { return &FarmRepository{pool: s.pool} }

// Users returns the users collection.
func (s *Store) Users() *UserRepository { return &UserRepository{pool: s.pool} }

// Orders returns the orders collection.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{pool: s.pool} }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS farms (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			email      TEXT NOT NULL UNIQUE,
			token      TEXT NOT NULL UNIQUE,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS orders (
			id         TEXT PRIMARY KEY,
			farm_id    TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS orders_farm_idx ON orders (farm_id);
	`)
	return err
}

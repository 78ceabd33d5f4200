package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marlondridley/FarME/internal/domain"
)

// FarmRepository is the farms collection. Each farm is one JSONB document
// keyed by its owning farmer's id; only that farmer ever writes it.
type FarmRepository struct {
	pool *pgxpool.Pool
}

// GetByID fetches one farm document.
func (r *FarmRepository) GetByID(ctx context.Context, id string) (*domain.Farm, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM farms WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("farms: get %s: %w", id, err)
	}

	return decodeFarm(id, doc)
}

// List returns every farm document.
func (r *FarmRepository) List(ctx context.Context) ([]domain.Farm, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, doc FROM farms ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("farms: list: %w", err)
	}
	defer rows.Close()

	var farms []domain.Farm
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("farms: scan: %w", err)
		}
		farm, err := decodeFarm(id, doc)
		if err != nil {
			return nil, err
		}
		farms = append(farms, *farm)
	}
	return farms, rows.Err()
}

// Save merges the given fields into the stored document. The read and the
// write happen under one transaction with the row locked, so a save never
// clobbers fields it did not carry.
func (r *FarmRepository) Save(ctx context.Context, id string, fields map[string]interface{}) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("farms: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM farms WHERE id = $1 FOR UPDATE`, id).Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("farms: load for merge: %w", err)
	}

	current := map[string]interface{}{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &current); err != nil {
			return fmt.Errorf("farms: decode existing doc: %w", err)
		}
	}

	merged := deepMerge(current, fields)
	merged["id"] = id

	doc, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("farms: encode doc: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO farms (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		id, doc)
	if err != nil {
		return fmt.Errorf("farms: upsert: %w", err)
	}

	return tx.Commit(ctx)
}

func decodeFarm(id string, doc []byte) (*domain.Farm, error) {
	var farm domain.Farm
	if err := json.Unmarshal(doc, &farm); err != nil {
		return nil, fmt.Errorf("farms: decode %s: %w", id, err)
	}
	farm.ID = id
	return &farm, nil
}

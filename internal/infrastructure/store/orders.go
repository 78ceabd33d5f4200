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

// OrderRepository is the orders collection.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("orders: encode: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO orders (id, farm_id, user_id, doc) VALUES ($1, $2, $3, $4)`,
		order.ID, order.FarmID, order.UserID, doc)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	return nil
}

// GetByID fetches one order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM orders WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: get %s: %w", id, err)
	}

	var order domain.Order
	if err := json.Unmarshal(doc, &order); err != nil {
		return nil, fmt.Errorf("orders: decode %s: %w", id, err)
	}
	order.ID = id
	return &order, nil
}

// ListByFarm returns every order placed against one farm, newest first.
func (r *OrderRepository) ListByFarm(ctx context.Context, farmID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doc FROM orders WHERE farm_id = $1 ORDER BY created_at DESC`, farmID)
	if err != nil {
		return nil, fmt.Errorf("orders: list for %s: %w", farmID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("orders: scan: %w", err)
		}
		var order domain.Order
		if err := json.Unmarshal(doc, &order); err != nil {
			return nil, fmt.Errorf("orders: decode %s: %w", id, err)
		}
		order.ID = id
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"time"
)

// SelectedOrderRepository is the process-wide single-slot pointer naming the
// order the cart screen currently edits. It is a fixed-identity row rather
// than a collection: exactly one selection exists at a time, and order id 0
// means no active order.
type SelectedOrderRepository struct {
	db *sql.DB
}

// NewSelectedOrderRepository creates a new SelectedOrderRepository.
func NewSelectedOrderRepository(db *sql.DB) *SelectedOrderRepository {
	return &SelectedOrderRepository{db: db}
}

// Select unconditionally overwrites the pointer. Last write wins.
func (r *SelectedOrderRepository) Select(ctx context.Context, orderID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE selected_order SET order_id = ? WHERE id = 1`, orderID)
	return err
}

// Current returns the selected order id, 0 when nothing is selected.
func (r *SelectedOrderRepository) Current(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT order_id FROM selected_order WHERE id = 1`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

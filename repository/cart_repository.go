package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"posOrderManagement/models"
)

// CartLineRepository stores per-order product lines. A line with quantity 0
// is never kept: decreasing to zero deletes the row.
type CartLineRepository struct {
	db *sql.DB
}

// NewCartLineRepository creates a new CartLineRepository.
func NewCartLineRepository(db *sql.DB) *CartLineRepository {
	return &CartLineRepository{db: db}
}

// Get returns all lines of the order ordered by product id.
func (r *CartLineRepository) Get(ctx context.Context, orderID int64) ([]models.CartProductItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, product_name, product_price, quantity FROM cart_lines WHERE order_id = ? ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.CartProductItem
	for rows.Next() {
		var line models.CartProductItem
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.ProductPrice, &line.Quantity); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// SetQuantity writes a line at an absolute quantity; zero or negative removes it.
func (r *CartLineRepository) SetQuantity(ctx context.Context, orderID int64, item models.CartProductItem) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if item.Quantity <= 0 {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM cart_lines WHERE order_id = ? AND product_id = ?`, orderID, item.ProductID)
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_lines (order_id, product_id, product_name, product_price, quantity)
         VALUES (?,?,?,?,?)
         ON CONFLICT(order_id, product_id) DO UPDATE SET quantity = excluded.quantity`,
		orderID, item.ProductID, item.ProductName, item.ProductPrice, item.Quantity)
	return err
}

// Increase adds one to the product's line, creating it at quantity 1 when
// absent. Name and price are captured from the catalog record on creation.
func (r *CartLineRepository) Increase(ctx context.Context, orderID int64, p *models.Product) error {
	if p == nil {
		return errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_lines (order_id, product_id, product_name, product_price, quantity)
         VALUES (?,?,?,?,1)
         ON CONFLICT(order_id, product_id) DO UPDATE SET quantity = quantity + 1`,
		orderID, p.ID, p.Name, p.Price)
	return err
}

// Decrease subtracts one from the product's line and deletes the line when it
// reaches zero. Decreasing a nonexistent line is a no-op.
func (r *CartLineRepository) Decrease(ctx context.Context, orderID, productID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE cart_lines SET quantity = quantity - 1 WHERE order_id = ? AND product_id = ? AND quantity > 0`,
		orderID, productID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE order_id = ? AND product_id = ? AND quantity <= 0`,
		orderID, productID); err != nil {
		return err
	}
	return tx.Commit()
}

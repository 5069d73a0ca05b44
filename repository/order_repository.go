package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"posOrderManagement/models"
)

// OrderRepository is the core repository for CartOrder aggregates and their
// add-on/charge selection links.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, order_type, status, charges_included, customer_phone, customer_address, delivery_partner_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.CartOrder, error) {
	var o models.CartOrder
	var orderType, status string
	err := row.Scan(&o.ID, &orderType, &status, &o.ChargesIncluded, &o.CustomerPhone,
		&o.CustomerAddress, &o.DeliveryPartnerID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.OrderType = models.OrderType(orderType)
	o.Status = models.OrderStatus(status)
	return &o, nil
}

// Upsert inserts or updates an order together with its full add-on and charge
// id sets as one transaction. ID 0 means create; created orders start in
// status processing. On any failure nothing is persisted.
func (r *OrderRepository) Upsert(ctx context.Context, o *models.CartOrder, addOnIDs, chargeIDs []int64) (*models.CartOrder, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	id := o.ID
	if id == 0 {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO orders (order_type, status, charges_included, customer_phone, customer_address, delivery_partner_id)
             VALUES (?,?,?,?,?,?)`,
			string(o.OrderType), string(models.OrderStatusProcessing), o.ChargesIncluded,
			o.CustomerPhone, o.CustomerAddress, o.DeliveryPartnerID)
		if err != nil {
			return nil, err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET order_type = ?, charges_included = ?, customer_phone = ?, customer_address = ?,
             delivery_partner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			string(o.OrderType), o.ChargesIncluded, o.CustomerPhone, o.CustomerAddress,
			o.DeliveryPartnerID, id)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
	}

	// Replace the full selection sets. Duplicate input ids collapse via the
	// link-table primary keys.
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_add_ons WHERE order_id = ?`, id); err != nil {
		return nil, err
	}
	for _, addOnID := range addOnIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO order_add_ons (order_id, add_on_id) VALUES (?,?)`, id, addOnID); err != nil {
			return nil, err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_charges WHERE order_id = ?`, id); err != nil {
		return nil, err
	}
	for _, chargesID := range chargeIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO order_charges (order_id, charges_id) VALUES (?,?)`, id, chargesID); err != nil {
			return nil, err
		}
	}

	saved, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByID fetches an order by its ID. Returns (nil, nil) when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.CartOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// List returns orders ordered by creation time descending, optionally
// filtered by status (empty status means all).
func (r *OrderRepository) List(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.CartOrder, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			string(status), limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CartOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateStatusIf flips the order's status from 'from' to 'to' and reports
// whether the flip happened. The conditional WHERE makes the transition
// atomic: a concurrent or repeated call observes zero affected rows.
func (r *OrderRepository) UpdateStatusIf(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetDeliveryPartner stores the partner id on the order (0 clears it).
func (r *OrderRepository) SetDeliveryPartner(ctx context.Context, id, partnerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET delivery_partner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, partnerID, id)
	return err
}

// ToggleAddOn selects the add-on if unselected and deselects it otherwise.
// Returns whether the add-on is selected after the call.
func (r *OrderRepository) ToggleAddOn(ctx context.Context, orderID, addOnID int64) (bool, error) {
	return r.toggleLink(ctx, `order_add_ons`, `add_on_id`, orderID, addOnID)
}

// ToggleCharge is symmetric to ToggleAddOn for charges.
func (r *OrderRepository) ToggleCharge(ctx context.Context, orderID, chargesID int64) (bool, error) {
	return r.toggleLink(ctx, `order_charges`, `charges_id`, orderID, chargesID)
}

func (r *OrderRepository) toggleLink(ctx context.Context, table, column string, orderID, linkID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE order_id = ? AND `+column+` = ?`, orderID, linkID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	selected := false
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (order_id, `+column+`) VALUES (?,?)`, orderID, linkID); err != nil {
			return false, err
		}
		selected = true
	}
	return selected, tx.Commit()
}

// OrderSnapshot is one consistent read of an order, its lines and its
// selection sets, taken inside a single transaction.
type OrderSnapshot struct {
	Order     models.CartOrder
	Lines     []models.CartProductItem
	AddOnIDs  []int64
	ChargeIDs []int64
}

// Snapshot reads the order, its cart lines and both selection sets in one
// transaction so a reader never observes two interleaved partial updates.
// Returns (nil, nil) when the order does not exist.
func (r *OrderRepository) Snapshot(ctx context.Context, id int64) (*OrderSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap := &OrderSnapshot{Order: *o}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, product_name, product_price, quantity FROM cart_lines WHERE order_id = ? ORDER BY product_id`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var line models.CartProductItem
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.ProductPrice, &line.Quantity); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Lines = append(snap.Lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	snap.AddOnIDs, err = scanIDs(tx.QueryContext(ctx,
		`SELECT add_on_id FROM order_add_ons WHERE order_id = ? ORDER BY add_on_id`, id))
	if err != nil {
		return nil, err
	}
	snap.ChargeIDs, err = scanIDs(tx.QueryContext(ctx,
		`SELECT charges_id FROM order_charges WHERE order_id = ? ORDER BY charges_id`, id))
	if err != nil {
		return nil, err
	}

	return snap, tx.Commit()
}

func scanIDs(rows *sql.Rows, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Delete removes the order; cart lines and selection links cascade via
// foreign keys. The selected-order pointer is cleared in the same transaction
// when it targets the deleted order, so no dangling pointer window exists.
// Returns whether a row was deleted.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE selected_order SET order_id = 0 WHERE id = 1 AND order_id = ?`, id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"posOrderManagement/models"
)

// ProductRepository stores sellable menu items.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p == nil {
		return nil, errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO products (name, price) VALUES (?,?)`, p.Name, p.Price)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Product{ID: id, Name: p.Name, Price: p.Price}, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, `SELECT id, name, price FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	if p == nil {
		return errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE products SET name = ?, price = ? WHERE id = ?`, p.Name, p.Price, p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// AddOnRepository stores optional selectable extras.
type AddOnRepository struct {
	db *sql.DB
}

func NewAddOnRepository(db *sql.DB) *AddOnRepository {
	return &AddOnRepository{db: db}
}

func (r *AddOnRepository) Create(ctx context.Context, a *models.AddOnItem) (*models.AddOnItem, error) {
	if a == nil {
		return nil, errors.New("add-on is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO add_on_items (name, price, is_applicable) VALUES (?,?,?)`, a.Name, a.Price, a.IsApplicable)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.AddOnItem{ID: id, Name: a.Name, Price: a.Price, IsApplicable: a.IsApplicable}, nil
}

func (r *AddOnRepository) GetByID(ctx context.Context, id int64) (*models.AddOnItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a models.AddOnItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, is_applicable FROM add_on_items WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Price, &a.IsApplicable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns the full add-on catalog; pricing ignores inapplicable entries
// itself, so no filtering happens here.
func (r *AddOnRepository) List(ctx context.Context) ([]models.AddOnItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, is_applicable FROM add_on_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.AddOnItem
	for rows.Next() {
		var a models.AddOnItem
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.IsApplicable); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListApplicable returns only items that may be offered for selection.
func (r *AddOnRepository) ListApplicable(ctx context.Context) ([]models.AddOnItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, is_applicable FROM add_on_items WHERE is_applicable = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.AddOnItem
	for rows.Next() {
		var a models.AddOnItem
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.IsApplicable); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddOnRepository) Update(ctx context.Context, a *models.AddOnItem) error {
	if a == nil {
		return errors.New("add-on is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx,
		`UPDATE add_on_items SET name = ?, price = ?, is_applicable = ? WHERE id = ?`,
		a.Name, a.Price, a.IsApplicable, a.ID)
	return err
}

func (r *AddOnRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM add_on_items WHERE id = ?`, id)
	return err
}

// ChargesRepository stores selectable extra fees.
type ChargesRepository struct {
	db *sql.DB
}

func NewChargesRepository(db *sql.DB) *ChargesRepository {
	return &ChargesRepository{db: db}
}

func (r *ChargesRepository) Create(ctx context.Context, c *models.Charges) (*models.Charges, error) {
	if c == nil {
		return nil, errors.New("charges is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO charges (name, price, is_applicable) VALUES (?,?,?)`, c.Name, c.Price, c.IsApplicable)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Charges{ID: id, Name: c.Name, Price: c.Price, IsApplicable: c.IsApplicable}, nil
}

func (r *ChargesRepository) GetByID(ctx context.Context, id int64) (*models.Charges, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Charges
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, is_applicable FROM charges WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Price, &c.IsApplicable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChargesRepository) List(ctx context.Context) ([]models.Charges, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, is_applicable FROM charges ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Charges
	for rows.Next() {
		var c models.Charges
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.IsApplicable); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListApplicable returns only charges that may be offered for selection.
func (r *ChargesRepository) ListApplicable(ctx context.Context) ([]models.Charges, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, is_applicable FROM charges WHERE is_applicable = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Charges
	for rows.Next() {
		var c models.Charges
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.IsApplicable); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChargesRepository) Update(ctx context.Context, c *models.Charges) error {
	if c == nil {
		return errors.New("charges is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx,
		`UPDATE charges SET name = ?, price = ?, is_applicable = ? WHERE id = ?`,
		c.Name, c.Price, c.IsApplicable, c.ID)
	return err
}

func (r *ChargesRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM charges WHERE id = ?`, id)
	return err
}

// PartnerRepository stores delivery partners.
type PartnerRepository struct {
	db *sql.DB
}

func NewPartnerRepository(db *sql.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, name string) (*models.DeliveryPartner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO delivery_partners (name) VALUES (?)`, name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.DeliveryPartner{ID: id, Name: name}, nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, id int64) (*models.DeliveryPartner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.DeliveryPartner
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM delivery_partners WHERE id = ?`, id).
		Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartnerRepository) List(ctx context.Context) ([]models.DeliveryPartner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM delivery_partners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.DeliveryPartner
	for rows.Next() {
		var p models.DeliveryPartner
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PartnerRepository) Update(ctx context.Context, p *models.DeliveryPartner) error {
	if p == nil {
		return errors.New("partner is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE delivery_partners SET name = ? WHERE id = ?`, p.Name, p.ID)
	return err
}

func (r *PartnerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM delivery_partners WHERE id = ?`, id)
	return err
}

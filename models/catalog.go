package models

import "github.com/shopspring/decimal"

// Product is a sellable menu item.
type Product struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

// AddOnItem is an optional selectable extra with its own price.
// Items marked not applicable must not be offered for selection and
// contribute nothing to pricing even if still referenced by an order.
type AddOnItem struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Price        decimal.Decimal `db:"price" json:"price"`
	IsApplicable bool            `db:"is_applicable" json:"is_applicable"`
}

// Charges is a selectable extra fee, e.g. packing or delivery.
// Applicability follows the same rule as AddOnItem.
type Charges struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Price        decimal.Decimal `db:"price" json:"price"`
	IsApplicable bool            `db:"is_applicable" json:"is_applicable"`
}

// DeliveryPartner is an employee eligible to deliver dine-out orders.
type DeliveryPartner struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

package repository

import (
	"context"

	"posOrderManagement/models"
)

// OrderStore defines operations on CartOrder aggregates. Upsert persists the
// order together with its full add-on and charge id sets as one transaction.
type OrderStore interface {
	Upsert(ctx context.Context, o *models.CartOrder, addOnIDs, chargeIDs []int64) (*models.CartOrder, error)
	GetByID(ctx context.Context, id int64) (*models.CartOrder, error)
	List(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.CartOrder, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error)
	SetDeliveryPartner(ctx context.Context, id, partnerID int64) error
	ToggleAddOn(ctx context.Context, orderID, addOnID int64) (bool, error)
	ToggleCharge(ctx context.Context, orderID, chargesID int64) (bool, error)
	Snapshot(ctx context.Context, id int64) (*OrderSnapshot, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CartLineStore defines operations on per-order product lines.
type CartLineStore interface {
	Get(ctx context.Context, orderID int64) ([]models.CartProductItem, error)
	SetQuantity(ctx context.Context, orderID int64, item models.CartProductItem) error
	Increase(ctx context.Context, orderID int64, p *models.Product) error
	Decrease(ctx context.Context, orderID, productID int64) error
}

// ProductCatalog supplies current product records.
type ProductCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
}

// AddOnCatalog supplies current add-on item records.
type AddOnCatalog interface {
	List(ctx context.Context) ([]models.AddOnItem, error)
}

// ChargesCatalog supplies current charge records.
type ChargesCatalog interface {
	List(ctx context.Context) ([]models.Charges, error)
}

// DeliveryPartnerDirectory lists employees eligible to deliver.
type DeliveryPartnerDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.DeliveryPartner, error)
	List(ctx context.Context) ([]models.DeliveryPartner, error)
}

// SelectedOrderStore is the single-slot pointer naming the order the cart UI
// is currently editing.
type SelectedOrderStore interface {
	Select(ctx context.Context, orderID int64) error
	Current(ctx context.Context) (int64, error)
}

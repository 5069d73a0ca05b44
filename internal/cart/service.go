// Package cart combines an order's product lines, selected add-ons, selected
// charges and delivery partner into one derived CartItem view, recomputed on
// every read. Mutations for the same order are serialized; different orders
// proceed independently.
package cart

import (
	"context"

	"go.uber.org/zap"

	"posOrderManagement/internal/apperr"
	"posOrderManagement/internal/keylock"
	"posOrderManagement/internal/pricing"
	"posOrderManagement/models"
	"posOrderManagement/repository"
)

// Service is the cart aggregator.
type Service struct {
	orders   repository.OrderStore
	lines    repository.CartLineStore
	products repository.ProductCatalog
	addOns   repository.AddOnCatalog
	charges  repository.ChargesCatalog
	locks    *keylock.KeyLock
	log      *zap.Logger
}

// NewService wires the aggregator. The KeyLock must be shared with the order
// lifecycle service so placement and deletion serialize with cart mutations.
func NewService(
	orders repository.OrderStore,
	lines repository.CartLineStore,
	products repository.ProductCatalog,
	addOns repository.AddOnCatalog,
	charges repository.ChargesCatalog,
	locks *keylock.KeyLock,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		orders:   orders,
		lines:    lines,
		products: products,
		addOns:   addOns,
		charges:  charges,
		locks:    locks,
		log:      log,
	}
}

// GetCartItem returns the derived cart view for a processing order. The
// order, its lines and its selections are read in one store snapshot, so the
// returned price is always computed from exactly the data returned with it.
func (s *Service) GetCartItem(ctx context.Context, orderID int64) (*models.CartItem, error) {
	snap, err := s.orders.Snapshot(ctx, orderID)
	if err != nil {
		return nil, apperr.Store("snapshot order", err)
	}
	if snap == nil || snap.Order.Status != models.OrderStatusProcessing {
		return nil, apperr.NotFoundf("processing order %d", orderID)
	}
	return s.buildCartItem(ctx, snap)
}

// IncreaseQuantity adds one to the product's line, creating it at quantity 1
// when absent, and returns the recomputed cart.
func (s *Service) IncreaseQuantity(ctx context.Context, orderID, productID int64) (*models.CartItem, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	if err := s.requireProcessing(ctx, orderID); err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, apperr.Store("get product", err)
	}
	if p == nil {
		return nil, apperr.NotFoundf("product %d", productID)
	}
	if err := s.lines.Increase(ctx, orderID, p); err != nil {
		return nil, apperr.Store("increase quantity", err)
	}
	return s.GetCartItem(ctx, orderID)
}

// DecreaseQuantity subtracts one from the product's line; the line disappears
// at zero. Decreasing a nonexistent line is a no-op success.
func (s *Service) DecreaseQuantity(ctx context.Context, orderID, productID int64) (*models.CartItem, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	if err := s.requireProcessing(ctx, orderID); err != nil {
		return nil, err
	}
	if err := s.lines.Decrease(ctx, orderID, productID); err != nil {
		return nil, apperr.Store("decrease quantity", err)
	}
	return s.GetCartItem(ctx, orderID)
}

// ToggleAddOnItem selects the add-on if unselected and deselects it
// otherwise. Ids absent from the catalog are accepted; they are simply inert
// in pricing.
func (s *Service) ToggleAddOnItem(ctx context.Context, orderID, itemID int64) (*models.CartItem, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	if err := s.requireProcessing(ctx, orderID); err != nil {
		return nil, err
	}
	if _, err := s.orders.ToggleAddOn(ctx, orderID, itemID); err != nil {
		return nil, apperr.Store("toggle add-on", err)
	}
	return s.GetCartItem(ctx, orderID)
}

// ToggleCharge is symmetric to ToggleAddOnItem for charges.
func (s *Service) ToggleCharge(ctx context.Context, orderID, chargesID int64) (*models.CartItem, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	if err := s.requireProcessing(ctx, orderID); err != nil {
		return nil, err
	}
	if _, err := s.orders.ToggleCharge(ctx, orderID, chargesID); err != nil {
		return nil, apperr.Store("toggle charge", err)
	}
	return s.GetCartItem(ctx, orderID)
}

// UpdateDeliveryPartner sets the partner on the order. Selecting the already
// selected partner clears it, matching the select-to-deselect pattern used
// throughout the UI.
func (s *Service) UpdateDeliveryPartner(ctx context.Context, orderID, partnerID int64) (*models.CartItem, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Store("get order", err)
	}
	if o == nil {
		return nil, apperr.NotFoundf("order %d", orderID)
	}
	if o.Status != models.OrderStatusProcessing {
		return nil, apperr.InvalidStatef("order %d is %s", orderID, o.Status)
	}
	next := partnerID
	if o.DeliveryPartnerID == partnerID {
		next = 0
	}
	if err := s.orders.SetDeliveryPartner(ctx, orderID, next); err != nil {
		return nil, apperr.Store("set delivery partner", err)
	}
	return s.GetCartItem(ctx, orderID)
}

func (s *Service) requireProcessing(ctx context.Context, orderID int64) error {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return apperr.Store("get order", err)
	}
	if o == nil {
		return apperr.NotFoundf("order %d", orderID)
	}
	if o.Status != models.OrderStatusProcessing {
		return apperr.InvalidStatef("order %d is %s", orderID, o.Status)
	}
	return nil
}

func (s *Service) buildCartItem(ctx context.Context, snap *repository.OrderSnapshot) (*models.CartItem, error) {
	addOnCatalog, err := s.addOns.List(ctx)
	if err != nil {
		return nil, apperr.Store("list add-ons", err)
	}
	chargesCatalog, err := s.charges.List(ctx)
	if err != nil {
		return nil, apperr.Store("list charges", err)
	}

	price := pricing.Compute(
		snap.Order.OrderType,
		snap.Lines,
		snap.AddOnIDs,
		snap.ChargeIDs,
		snap.Order.ChargesIncluded,
		addOnCatalog,
		chargesCatalog,
	)

	return &models.CartItem{
		OrderID:           snap.Order.ID,
		OrderType:         snap.Order.OrderType,
		CartProducts:      snap.Lines,
		AddOnItemIDs:      snap.AddOnIDs,
		ChargeIDs:         snap.ChargeIDs,
		DeliveryPartnerID: snap.Order.DeliveryPartnerID,
		CustomerPhone:     snap.Order.CustomerPhone,
		CustomerAddress:   snap.Order.CustomerAddress,
		OrderPrice:        price,
	}, nil
}

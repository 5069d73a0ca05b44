// Package order owns the CartOrder lifecycle: creation and update of an
// order together with its selection sets, the processing -> placed
// transition, deletion, and the selected-order pointer shared across screens.
package order

import (
	"context"

	"go.uber.org/zap"

	"posOrderManagement/internal/apperr"
	"posOrderManagement/internal/events"
	"posOrderManagement/internal/keylock"
	"posOrderManagement/internal/metrics"
	"posOrderManagement/models"
	"posOrderManagement/repository"
)

// Service is the order lifecycle controller and assembly façade.
type Service struct {
	orders   repository.OrderStore
	partners repository.DeliveryPartnerDirectory
	selected repository.SelectedOrderStore
	locks    *keylock.KeyLock
	bus      events.Sink
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewService wires the controller. The KeyLock must be the same instance the
// cart aggregator uses so lifecycle transitions serialize with cart edits.
// bus and m may be nil.
func NewService(
	orders repository.OrderStore,
	partners repository.DeliveryPartnerDirectory,
	selected repository.SelectedOrderStore,
	locks *keylock.KeyLock,
	bus events.Sink,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		orders:   orders,
		partners: partners,
		selected: selected,
		locks:    locks,
		bus:      bus,
		metrics:  m,
		log:      log,
	}
}

// UpsertInput is the assembly request: the order fields together with the
// full add-on and charge id sets, applied as one unit. OrderID 0 creates a
// new order.
type UpsertInput struct {
	OrderID           int64            `json:"order_id"`
	OrderType         models.OrderType `json:"order_type"`
	ChargesIncluded   *bool            `json:"charges_included,omitempty"`
	CustomerPhone     string           `json:"customer_phone"`
	CustomerAddress   string           `json:"customer_address"`
	DeliveryPartnerID int64            `json:"delivery_partner_id"`
	AddOnIDs          []int64          `json:"add_on_ids"`
	ChargeIDs         []int64          `json:"charge_ids"`
}

// CreateOrUpdateOrder upserts an order plus its selection sets atomically.
// Dine-in orders carry no customer, address or partner; dine-out orders
// require customer phone and address. When the charges-included flag is not
// sent it defaults by order type: included for dine-out, excluded for
// dine-in.
func (s *Service) CreateOrUpdateOrder(ctx context.Context, in UpsertInput) (*models.CartOrder, error) {
	if !in.OrderType.Valid() {
		return nil, apperr.Validationf("unknown order type %q", in.OrderType)
	}
	if in.OrderType == models.OrderTypeDineOut {
		if in.CustomerPhone == "" {
			return nil, apperr.Validationf("dine-out order requires a customer phone")
		}
		if in.CustomerAddress == "" {
			return nil, apperr.Validationf("dine-out order requires a customer address")
		}
		if in.DeliveryPartnerID != 0 {
			p, err := s.partners.GetByID(ctx, in.DeliveryPartnerID)
			if err != nil {
				return nil, apperr.Store("get delivery partner", err)
			}
			if p == nil {
				return nil, apperr.NotFoundf("delivery partner %d", in.DeliveryPartnerID)
			}
		}
	} else {
		// Partner and customer fields are meaningless to dine-in orders.
		in.CustomerPhone = ""
		in.CustomerAddress = ""
		in.DeliveryPartnerID = 0
	}

	chargesIncluded := in.OrderType == models.OrderTypeDineOut
	if in.ChargesIncluded != nil {
		chargesIncluded = *in.ChargesIncluded
	}

	if in.OrderID != 0 {
		s.locks.Lock(in.OrderID)
		defer s.locks.Unlock(in.OrderID)

		existing, err := s.orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return nil, apperr.Store("get order", err)
		}
		if existing == nil {
			return nil, apperr.NotFoundf("order %d", in.OrderID)
		}
		if existing.Status != models.OrderStatusProcessing {
			return nil, apperr.InvalidStatef("order %d is %s", in.OrderID, existing.Status)
		}
	}

	saved, err := s.orders.Upsert(ctx, &models.CartOrder{
		ID:                in.OrderID,
		OrderType:         in.OrderType,
		ChargesIncluded:   chargesIncluded,
		CustomerPhone:     in.CustomerPhone,
		CustomerAddress:   in.CustomerAddress,
		DeliveryPartnerID: in.DeliveryPartnerID,
	}, in.AddOnIDs, in.ChargeIDs)
	if err != nil {
		return nil, apperr.Store("upsert order", err)
	}
	if saved == nil {
		return nil, apperr.NotFoundf("order %d", in.OrderID)
	}
	s.log.Info("order saved",
		zap.Int64("order_id", saved.ID),
		zap.String("order_type", string(saved.OrderType)))
	return saved, nil
}

// GetOrder fetches an order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*models.CartOrder, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("get order", err)
	}
	if o == nil {
		return nil, apperr.NotFoundf("order %d", id)
	}
	return o, nil
}

// ListOrders returns orders, optionally filtered by status.
func (s *Service) ListOrders(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.CartOrder, error) {
	out, err := s.orders.List(ctx, status, limit, offset)
	if err != nil {
		return nil, apperr.Store("list orders", err)
	}
	return out, nil
}

// PlaceOrder transitions a processing order to placed. A second call fails
// with invalid state so callers can detect double submission. The status flip
// is a conditional store update: if the call is cancelled or the store fails,
// the order stays processing.
func (s *Service) PlaceOrder(ctx context.Context, id int64) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return apperr.Store("get order", err)
	}
	if o == nil {
		return apperr.NotFoundf("order %d", id)
	}
	if o.Status != models.OrderStatusProcessing {
		return apperr.InvalidStatef("order %d is already %s", id, o.Status)
	}
	flipped, err := s.orders.UpdateStatusIf(ctx, id, models.OrderStatusProcessing, models.OrderStatusPlaced)
	if err != nil {
		return apperr.Store("place order", err)
	}
	if !flipped {
		return apperr.InvalidStatef("order %d is no longer processing", id)
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewEvent(events.TypeOrderPlaced, id))
	}
	s.log.Info("order placed", zap.Int64("order_id", id))
	return nil
}

// DeleteOrder removes the order in any state. Cart lines and selection links
// cascade, and the selected-order pointer is cleared together with the
// deletion when it targets this order.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return apperr.Store("delete order", err)
	}
	if !deleted {
		return apperr.NotFoundf("order %d", id)
	}

	if s.metrics != nil {
		s.metrics.OrdersDeleted.Inc()
	}
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewEvent(events.TypeOrderDeleted, id))
	}
	s.log.Info("order deleted", zap.Int64("order_id", id))
	return nil
}

// SelectOrder unconditionally points the cart screen at the given order.
func (s *Service) SelectOrder(ctx context.Context, id int64) error {
	if err := s.selected.Select(ctx, id); err != nil {
		return apperr.Store("select order", err)
	}
	return nil
}

// CurrentSelectedOrder returns the active order id, 0 when none.
func (s *Service) CurrentSelectedOrder(ctx context.Context) (int64, error) {
	id, err := s.selected.Current(ctx)
	if err != nil {
		return 0, apperr.Store("current selected order", err)
	}
	return id, nil
}

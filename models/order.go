package models

import "github.com/shopspring/decimal"

// OrderType distinguishes in-house orders from delivery/takeaway orders.
type OrderType string

const (
	OrderTypeDineIn  OrderType = "dine_in"
	OrderTypeDineOut OrderType = "dine_out"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeDineOut
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPlaced     OrderStatus = "placed"
)

// CartOrder represents one customer order, in progress or placed.
// Customer phone/address and the delivery partner are only meaningful for
// dine-out orders.
type CartOrder struct {
	ID                int64       `db:"id" json:"id"`
	OrderType         OrderType   `db:"order_type" json:"order_type"`
	Status            OrderStatus `db:"status" json:"status"`
	ChargesIncluded   bool        `db:"charges_included" json:"charges_included"`
	CustomerPhone     string      `db:"customer_phone" json:"customer_phone,omitempty"`
	CustomerAddress   string      `db:"customer_address" json:"customer_address,omitempty"`
	DeliveryPartnerID int64       `db:"delivery_partner_id" json:"delivery_partner_id,omitempty"`
	CreatedAt         string      `db:"created_at" json:"created_at"`
	UpdatedAt         string      `db:"updated_at" json:"updated_at"`
}

// CartProductItem is one line item: a product at a quantity in one order.
// Name and price are captured at the time the line is created so a later
// catalog edit does not silently reprice an open cart.
type CartProductItem struct {
	ProductID    int64           `db:"product_id" json:"product_id"`
	ProductName  string          `db:"product_name" json:"product_name"`
	ProductPrice decimal.Decimal `db:"product_price" json:"product_price"`
	Quantity     int             `db:"quantity" json:"quantity"`
}

// OrderPrice is the derived price breakdown of a cart.
// TotalPrice = BasePrice - DiscountPrice, never negative.
type OrderPrice struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// ZeroOrderPrice returns the price of an empty cart.
func ZeroOrderPrice() OrderPrice {
	return OrderPrice{
		BasePrice:     decimal.Zero,
		DiscountPrice: decimal.Zero,
		TotalPrice:    decimal.Zero,
	}
}

// CartItem is the fully derived view of one order's cart. It is never
// mutated directly, only recomputed from the order, its lines, its
// selections, and the current catalog snapshot.
type CartItem struct {
	OrderID           int64             `json:"order_id"`
	OrderType         OrderType         `json:"order_type"`
	CartProducts      []CartProductItem `json:"cart_products"`
	AddOnItemIDs      []int64           `json:"add_on_item_ids"`
	ChargeIDs         []int64           `json:"charge_ids"`
	DeliveryPartnerID int64             `json:"delivery_partner_id,omitempty"`
	CustomerPhone     string            `json:"customer_phone,omitempty"`
	CustomerAddress   string            `json:"customer_address,omitempty"`
	OrderPrice        OrderPrice        `json:"order_price"`
}

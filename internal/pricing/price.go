// Package pricing derives an OrderPrice from a cart snapshot. All functions
// are pure: given the same cart state and catalog snapshot the output is
// identical on every call, and unknown or inapplicable selections are treated
// as already removed rather than reported as errors.
package pricing

import (
	"github.com/shopspring/decimal"

	"posOrderManagement/models"
)

// Compute derives the price breakdown for one order.
//
// Base price is the sum of productPrice*quantity over lines with a positive
// quantity, plus every selected applicable add-on, plus every selected
// applicable charge when charges are included for the order. Charges are
// included when the order carries the charges-included flag or the order is
// dine-out. Selections are sets: an id listed twice counts once.
func Compute(
	orderType models.OrderType,
	cartProducts []models.CartProductItem,
	selectedAddOnIDs []int64,
	selectedChargeIDs []int64,
	chargesIncluded bool,
	addOnCatalog []models.AddOnItem,
	chargesCatalog []models.Charges,
) models.OrderPrice {
	base := decimal.Zero

	for _, line := range cartProducts {
		if line.Quantity <= 0 {
			continue
		}
		base = base.Add(line.ProductPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	addOnPrices := make(map[int64]decimal.Decimal, len(addOnCatalog))
	for _, a := range addOnCatalog {
		if a.IsApplicable {
			addOnPrices[a.ID] = a.Price
		}
	}
	for _, id := range dedupe(selectedAddOnIDs) {
		if p, ok := addOnPrices[id]; ok {
			base = base.Add(p)
		}
	}

	if chargesIncluded || orderType == models.OrderTypeDineOut {
		chargePrices := make(map[int64]decimal.Decimal, len(chargesCatalog))
		for _, c := range chargesCatalog {
			if c.IsApplicable {
				chargePrices[c.ID] = c.Price
			}
		}
		for _, id := range dedupe(selectedChargeIDs) {
			if p, ok := chargePrices[id]; ok {
				base = base.Add(p)
			}
		}
	}

	// Discounts are a first-class output so a promotions layer can be added
	// without changing the type; the base engine applies none.
	discount := decimal.Zero

	total := base.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.OrderPrice{
		BasePrice:     base,
		DiscountPrice: discount,
		TotalPrice:    total,
	}
}

// dedupe returns ids with duplicates removed, preserving first-seen order so
// the accumulation order never depends on map iteration.
func dedupe(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

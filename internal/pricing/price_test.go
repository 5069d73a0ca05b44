package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"posOrderManagement/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(id int64, price string, qty int) models.CartProductItem {
	return models.CartProductItem{ProductID: id, ProductPrice: dec(price), Quantity: qty}
}

var (
	addOns = []models.AddOnItem{
		{ID: 1, Name: "Extra Sauce", Price: dec("20"), IsApplicable: true},
		{ID: 2, Name: "Off Menu", Price: dec("50"), IsApplicable: false},
	}
	charges = []models.Charges{
		{ID: 1, Name: "Delivery", Price: dec("30"), IsApplicable: true},
		{ID: 2, Name: "Legacy Packing", Price: dec("10"), IsApplicable: false},
	}
)

func TestCompute_EmptyCart(t *testing.T) {
	p := Compute(models.OrderTypeDineIn, nil, nil, nil, false, addOns, charges)
	if !p.BasePrice.IsZero() || !p.DiscountPrice.IsZero() || !p.TotalPrice.IsZero() {
		t.Fatalf("empty cart should price to zero, got %+v", p)
	}
}

func TestCompute_BaseIsSumOfLines(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 2), line(2, "150", 1)}
	p := Compute(models.OrderTypeDineIn, lines, nil, nil, false, addOns, charges)
	if !p.BasePrice.Equal(dec("350")) {
		t.Fatalf("base price = %s, want 350", p.BasePrice)
	}
	if !p.TotalPrice.Equal(p.BasePrice.Sub(p.DiscountPrice)) {
		t.Fatalf("total %s != base %s - discount %s", p.TotalPrice, p.BasePrice, p.DiscountPrice)
	}
}

func TestCompute_ZeroQuantityLineIgnored(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 0), line(2, "150", 1)}
	p := Compute(models.OrderTypeDineIn, lines, nil, nil, false, addOns, charges)
	if !p.BasePrice.Equal(dec("150")) {
		t.Fatalf("base price = %s, want 150", p.BasePrice)
	}
}

func TestCompute_AddOnContribution(t *testing.T) {
	// Scenario: product at 100 x2 plus applicable "Extra Sauce" at 20.
	lines := []models.CartProductItem{line(1, "100", 2)}
	p := Compute(models.OrderTypeDineIn, lines, []int64{1}, nil, false, addOns, charges)
	if !p.BasePrice.Equal(dec("220")) {
		t.Fatalf("base price = %s, want 220", p.BasePrice)
	}
	if !p.TotalPrice.Equal(dec("220")) {
		t.Fatalf("total price = %s, want 220", p.TotalPrice)
	}
}

func TestCompute_InapplicableAndUnknownAddOnsIgnored(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 1)}
	// id 2 is inapplicable, id 999 is absent from the catalog.
	p := Compute(models.OrderTypeDineIn, lines, []int64{2, 999}, nil, false, addOns, charges)
	if !p.BasePrice.Equal(dec("100")) {
		t.Fatalf("base price = %s, want 100", p.BasePrice)
	}
}

func TestCompute_DuplicateSelectionCountedOnce(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 1)}
	p := Compute(models.OrderTypeDineIn, lines, []int64{1, 1, 1}, nil, false, addOns, charges)
	if !p.BasePrice.Equal(dec("120")) {
		t.Fatalf("base price = %s, want 120", p.BasePrice)
	}
}

func TestCompute_ChargesRequireInclusionForDineIn(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 1)}

	excluded := Compute(models.OrderTypeDineIn, lines, nil, []int64{1}, false, addOns, charges)
	if !excluded.BasePrice.Equal(dec("100")) {
		t.Fatalf("charges excluded: base = %s, want 100", excluded.BasePrice)
	}

	included := Compute(models.OrderTypeDineIn, lines, nil, []int64{1}, true, addOns, charges)
	if !included.BasePrice.Equal(dec("130")) {
		t.Fatalf("charges included: base = %s, want 130", included.BasePrice)
	}
}

func TestCompute_DineOutAlwaysIncludesCharges(t *testing.T) {
	// Scenario: dine-out, product at 150 x1, "Delivery" charge at 30.
	lines := []models.CartProductItem{line(2, "150", 1)}
	p := Compute(models.OrderTypeDineOut, lines, nil, []int64{1}, false, addOns, charges)
	if !p.TotalPrice.Equal(dec("180")) {
		t.Fatalf("total price = %s, want 180", p.TotalPrice)
	}
}

func TestCompute_InapplicableChargeIgnored(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 1)}
	p := Compute(models.OrderTypeDineOut, lines, nil, []int64{2}, true, addOns, charges)
	if !p.BasePrice.Equal(dec("100")) {
		t.Fatalf("base price = %s, want 100", p.BasePrice)
	}
}

func TestCompute_AdditivityUnderLineChanges(t *testing.T) {
	// Adding a line and removing it again nets back to the original base.
	orig := []models.CartProductItem{line(1, "100", 2), line(3, "20", 1)}
	before := Compute(models.OrderTypeDineIn, orig, nil, nil, false, addOns, charges)

	withExtra := append(append([]models.CartProductItem{}, orig...), line(2, "150", 3))
	during := Compute(models.OrderTypeDineIn, withExtra, nil, nil, false, addOns, charges)
	if !during.BasePrice.Equal(before.BasePrice.Add(dec("450"))) {
		t.Fatalf("base with extra line = %s, want %s", during.BasePrice, before.BasePrice.Add(dec("450")))
	}

	after := Compute(models.OrderTypeDineIn, orig, nil, nil, false, addOns, charges)
	if !after.BasePrice.Equal(before.BasePrice) {
		t.Fatalf("base after removal = %s, want %s", after.BasePrice, before.BasePrice)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	lines := []models.CartProductItem{line(1, "100", 2), line(2, "150", 1)}
	sel := []int64{1, 2, 999}
	first := Compute(models.OrderTypeDineOut, lines, sel, sel, true, addOns, charges)
	for i := 0; i < 50; i++ {
		again := Compute(models.OrderTypeDineOut, lines, sel, sel, true, addOns, charges)
		if !again.TotalPrice.Equal(first.TotalPrice) || !again.BasePrice.Equal(first.BasePrice) {
			t.Fatalf("run %d: price changed from %+v to %+v", i, first, again)
		}
	}
}

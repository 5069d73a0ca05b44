package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"posOrderManagement/internal/testutil"
	"posOrderManagement/models"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustUpsert(t *testing.T, ctx context.Context, repo *OrderRepository, o *models.CartOrder, addOns, charges []int64) *models.CartOrder {
	t.Helper()
	saved, err := repo.Upsert(ctx, o, addOns, charges)
	if err != nil {
		t.Fatalf("upsert order: %v", err)
	}
	if saved == nil {
		t.Fatalf("upsert returned nil order")
	}
	return saved
}

func TestUpsert_CreateThenUpdateReplacesSelectionSets(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_upsert")
	repo := NewOrderRepository(d)
	ctx := testCtx(t)

	created := mustUpsert(t, ctx, repo, &models.CartOrder{OrderType: models.OrderTypeDineIn}, []int64{1, 2, 2}, []int64{7})
	if created.ID == 0 {
		t.Fatalf("created order should have an id")
	}
	if created.Status != models.OrderStatusProcessing {
		t.Fatalf("created order status = %s, want processing", created.Status)
	}

	snap, err := repo.Snapshot(ctx, created.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	// Duplicate add-on id in input collapses: selection is a set.
	if len(snap.AddOnIDs) != 2 || snap.AddOnIDs[0] != 1 || snap.AddOnIDs[1] != 2 {
		t.Fatalf("add-on ids = %v, want [1 2]", snap.AddOnIDs)
	}
	if len(snap.ChargeIDs) != 1 || snap.ChargeIDs[0] != 7 {
		t.Fatalf("charge ids = %v, want [7]", snap.ChargeIDs)
	}

	// Update replaces both sets wholesale.
	created.OrderType = models.OrderTypeDineOut
	created.CustomerPhone = "555-0101"
	created.CustomerAddress = "12 Main St"
	mustUpsert(t, ctx, repo, created, []int64{3}, nil)

	snap, err = repo.Snapshot(ctx, created.ID)
	if err != nil {
		t.Fatalf("snapshot after update: %v", err)
	}
	if snap.Order.OrderType != models.OrderTypeDineOut || snap.Order.CustomerPhone != "555-0101" {
		t.Fatalf("updated order mismatch: %+v", snap.Order)
	}
	if len(snap.AddOnIDs) != 1 || snap.AddOnIDs[0] != 3 {
		t.Fatalf("add-on ids after update = %v, want [3]", snap.AddOnIDs)
	}
	if len(snap.ChargeIDs) != 0 {
		t.Fatalf("charge ids after update = %v, want empty", snap.ChargeIDs)
	}
}

func TestUpsert_UnknownIDReturnsNil(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_upsert_unknown")
	repo := NewOrderRepository(d)
	ctx := testCtx(t)

	saved, err := repo.Upsert(ctx, &models.CartOrder{ID: 424242, OrderType: models.OrderTypeDineIn}, nil, nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if saved != nil {
		t.Fatalf("expected nil for unknown order id, got %+v", saved)
	}
}

func TestUpdateStatusIf_FlipsExactlyOnce(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_status")
	repo := NewOrderRepository(d)
	ctx := testCtx(t)

	o := mustUpsert(t, ctx, repo, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)

	flipped, err := repo.UpdateStatusIf(ctx, o.ID, models.OrderStatusProcessing, models.OrderStatusPlaced)
	if err != nil {
		t.Fatalf("first flip: %v", err)
	}
	if !flipped {
		t.Fatalf("first flip should succeed")
	}

	flipped, err = repo.UpdateStatusIf(ctx, o.ID, models.OrderStatusProcessing, models.OrderStatusPlaced)
	if err != nil {
		t.Fatalf("second flip: %v", err)
	}
	if flipped {
		t.Fatalf("second flip should observe zero affected rows")
	}
}

func TestToggleAddOn_SelectsThenDeselects(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_toggle")
	repo := NewOrderRepository(d)
	ctx := testCtx(t)

	o := mustUpsert(t, ctx, repo, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)

	selected, err := repo.ToggleAddOn(ctx, o.ID, 9)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !selected {
		t.Fatalf("first toggle should select")
	}
	selected, err = repo.ToggleAddOn(ctx, o.ID, 9)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if selected {
		t.Fatalf("second toggle should deselect")
	}
	snap, err := repo.Snapshot(ctx, o.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.AddOnIDs) != 0 {
		t.Fatalf("add-on set should be back to empty, got %v", snap.AddOnIDs)
	}
}

func TestDelete_CascadesAndClearsSelectedPointer(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_delete")
	orders := NewOrderRepository(d)
	lines := NewCartLineRepository(d)
	selected := NewSelectedOrderRepository(d)
	ctx := testCtx(t)

	o := mustUpsert(t, ctx, orders, &models.CartOrder{OrderType: models.OrderTypeDineIn}, []int64{1}, []int64{2})
	if err := lines.Increase(ctx, o.ID, &models.Product{ID: 1, Name: "Tea", Price: decimal.NewFromInt(40)}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := selected.Select(ctx, o.ID); err != nil {
		t.Fatalf("select: %v", err)
	}

	deleted, err := orders.Delete(ctx, o.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatalf("delete should report an existing row")
	}

	got, err := orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("order should be gone, got %+v", got)
	}
	remaining, err := lines.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get lines: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("cart lines should cascade, got %v", remaining)
	}
	cur, err := selected.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != 0 {
		t.Fatalf("selected pointer should be cleared, got %d", cur)
	}
}

func TestDelete_OtherSelectionUntouched(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_delete_other")
	orders := NewOrderRepository(d)
	selected := NewSelectedOrderRepository(d)
	ctx := testCtx(t)

	a := mustUpsert(t, ctx, orders, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)
	b := mustUpsert(t, ctx, orders, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)
	if err := selected.Select(ctx, a.ID); err != nil {
		t.Fatalf("select: %v", err)
	}

	if _, err := orders.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cur, err := selected.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != a.ID {
		t.Fatalf("pointer should still target %d, got %d", a.ID, cur)
	}
}

func TestList_FiltersByStatus(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "order_list")
	orders := NewOrderRepository(d)
	ctx := testCtx(t)

	a := mustUpsert(t, ctx, orders, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)
	mustUpsert(t, ctx, orders, &models.CartOrder{OrderType: models.OrderTypeDineIn}, nil, nil)
	if _, err := orders.UpdateStatusIf(ctx, a.ID, models.OrderStatusProcessing, models.OrderStatusPlaced); err != nil {
		t.Fatalf("place: %v", err)
	}

	placed, err := orders.List(ctx, models.OrderStatusPlaced, 10, 0)
	if err != nil {
		t.Fatalf("list placed: %v", err)
	}
	if len(placed) != 1 || placed[0].ID != a.ID {
		t.Fatalf("placed list = %+v, want only order %d", placed, a.ID)
	}
	all, err := orders.List(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all list length = %d, want 2", len(all))
	}
}

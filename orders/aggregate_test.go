package orders

import (
	"testing"
	"time"

	"braseiro/models"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func tableOrder(id, table string, createdAt time.Time, status models.OrderStatus, items ...models.OrderItem) models.Order {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return models.Order{
		OrderID:     id,
		Type:        models.OrderTable,
		TableNumber: table,
		Items:       items,
		Status:      status,
		Total:       total,
		CreatedAt:   createdAt,
	}
}

func item(productID string, price, qty float64) models.OrderItem {
	return models.OrderItem{ProductID: productID, Name: productID, Price: price, Quantity: qty}
}

func TestGroupKey(t *testing.T) {
	o := tableOrder("abc123def", "5", t0, models.StatusPreparing)
	if got := GroupKey(o); got != "TABLE:5" {
		t.Fatalf("expected TABLE:5, got %s", got)
	}

	counter := models.Order{OrderID: "xyz", Type: models.OrderCounter}
	if got := GroupKey(counter); got != "xyz" {
		t.Fatalf("expected own id, got %s", got)
	}
}

func TestGroupOrdersMergesTable(t *testing.T) {
	a := tableOrder("aaa", "3", t0, models.StatusPreparing,
		item("burger", 20, 2), item("soda", 5, 1))
	a.Notes = "no onions"
	b := tableOrder("bbb", "3", t0.Add(5*time.Minute), models.StatusReady,
		item("burger", 20, 1), item("fries", 10, 1))
	b.ChangeFor = 50

	groups := GroupOrders([]models.Order{b, a})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]

	if g.Key != "TABLE:3" {
		t.Fatalf("unexpected key %s", g.Key)
	}
	if len(g.Items) != 3 {
		t.Fatalf("expected 3 merged lines, got %+v", g.Items)
	}
	for _, it := range g.Items {
		if it.ProductID == "burger" && it.Quantity != 3 {
			t.Fatalf("expected burger quantity 3, got %v", it.Quantity)
		}
	}
	if want := a.Total + b.Total; g.Total != want {
		t.Fatalf("expected total %v, got %v", want, g.Total)
	}
	if !g.CreatedAt.Equal(t0) {
		t.Fatalf("expected earliest createdAt, got %v", g.CreatedAt)
	}
	if len(g.Notes) != 1 || g.Notes[0] != "no onions" {
		t.Fatalf("unexpected notes %v", g.Notes)
	}
	if g.ChangeFor != 50 {
		t.Fatalf("expected changeFor 50, got %v", g.ChangeFor)
	}
	if len(g.OriginalOrderIDs) != 2 {
		t.Fatalf("expected both order ids retained, got %v", g.OriginalOrderIDs)
	}
}

func TestGroupOrdersStatusDominance(t *testing.T) {
	a := tableOrder("aaa", "1", t0, models.StatusReady, item("x", 1, 1))
	b := tableOrder("bbb", "1", t0.Add(time.Minute), models.StatusPreparing, item("x", 1, 1))

	groups := GroupOrders([]models.Order{a, b})
	if groups[0].Status != models.StatusPreparing {
		t.Fatalf("expected PREPARING to dominate, got %s", groups[0].Status)
	}

	b.Status = models.StatusReady
	groups = GroupOrders([]models.Order{a, b})
	if groups[0].Status != models.StatusReady {
		t.Fatalf("expected READY when all members ready, got %s", groups[0].Status)
	}
}

func TestGroupOrdersSkipsInactive(t *testing.T) {
	delivered := tableOrder("aaa", "2", t0, models.StatusDelivered, item("x", 1, 1))
	cancelled := tableOrder("bbb", "2", t0, models.StatusCancelled, item("x", 1, 1))
	open := tableOrder("ccc", "2", t0.Add(time.Minute), models.StatusPreparing, item("x", 1, 1))

	groups := GroupOrders([]models.Order{delivered, cancelled, open})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].OriginalOrderIDs) != 1 || groups[0].OriginalOrderIDs[0] != "ccc" {
		t.Fatalf("expected only the open order, got %v", groups[0].OriginalOrderIDs)
	}
}

func TestGroupOrdersDeterministicAcrossInput(t *testing.T) {
	a := tableOrder("aaa", "4", t0, models.StatusPreparing, item("x", 2, 1))
	a.Notes = "first"
	b := tableOrder("bbb", "4", t0.Add(time.Minute), models.StatusPreparing, item("y", 3, 1))
	b.Notes = "second"

	g1 := GroupOrders([]models.Order{a, b})[0]
	g2 := GroupOrders([]models.Order{b, a})[0]

	if len(g1.Notes) != 2 || g1.Notes[0] != g2.Notes[0] || g1.Notes[1] != g2.Notes[1] {
		t.Fatalf("note order depends on input order: %v vs %v", g1.Notes, g2.Notes)
	}
	if g1.Items[0].ProductID != g2.Items[0].ProductID {
		t.Fatalf("item order depends on input order")
	}
}

func TestGroupOrdersNewestFirst(t *testing.T) {
	old := tableOrder("aaa", "1", t0, models.StatusPreparing, item("x", 1, 1))
	recent := models.Order{
		OrderID: "bbb", Type: models.OrderCounter, CustomerName: "Ana",
		Items: []models.OrderItem{item("y", 1, 1)}, Status: models.StatusPreparing,
		Total: 1, CreatedAt: t0.Add(time.Hour),
	}

	groups := GroupOrders([]models.Order{old, recent})
	if groups[0].Key != "bbb" || groups[1].Key != "TABLE:1" {
		t.Fatalf("expected newest group first, got %s then %s", groups[0].Key, groups[1].Key)
	}

	SortForBoard(groups)
	if groups[0].Key != "TABLE:1" {
		t.Fatalf("expected oldest group first on board, got %s", groups[0].Key)
	}
}

func TestOccupiedTables(t *testing.T) {
	orders := []models.Order{
		tableOrder("aaa", "1", t0, models.StatusPreparing, item("x", 1, 1)),
		tableOrder("bbb", "2", t0, models.StatusDelivered, item("x", 1, 1)),
	}
	occ := OccupiedTables(orders)
	if !occ["1"] || occ["2"] {
		t.Fatalf("unexpected occupancy %v", occ)
	}
}

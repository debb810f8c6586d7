package cart

import (
	"math"
	"sync"
	"testing"

	"braseiro/models"
)

func activeProduct(id string, price float64) models.Product {
	return models.Product{ProductID: id, Name: "Product " + id, Price: price, IsActive: true}
}

func TestAddItemMergesByProduct(t *testing.T) {
	var c Cart

	p := activeProduct("p1", 10)
	c.AddItem(p, 1)
	c.AddItem(p, 2)
	c.AddItem(activeProduct("p2", 5), 1)

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[0].Quantity != 3 {
		t.Fatalf("expected p1 quantity 3, got %+v", items[0])
	}
	if got := c.Total(); got != 35 {
		t.Fatalf("expected total 35, got %v", got)
	}
}

func TestAddItemInactiveIsNoOp(t *testing.T) {
	var c Cart

	p := activeProduct("p1", 10)
	p.IsActive = false
	c.AddItem(p, 1)

	if !c.Empty() {
		t.Fatalf("expected cart to stay empty, got %+v", c.Items())
	}
}

func TestAddItemDefaultsUnitQuantity(t *testing.T) {
	var c Cart

	c.AddItem(activeProduct("p1", 10), 0)
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", items)
	}
}

func TestAddItemByWeight(t *testing.T) {
	var c Cart

	p := activeProduct("picanha", 89.90)
	p.IsByWeight = true

	// missing weight is a no-op, not a default of one kilogram
	c.AddItem(p, 0)
	if !c.Empty() {
		t.Fatalf("expected no-op without weight, got %+v", c.Items())
	}

	c.AddItem(p, 0.35)
	c.AddItem(p, 0.25)
	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 0.6 {
		t.Fatalf("expected 0.6 kg, got %v", items[0].Quantity)
	}
	want := 89.90 * 0.6
	if math.Abs(c.Total()-want) > 1e-9 {
		t.Fatalf("expected total %v, got %v", want, c.Total())
	}
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	var c Cart

	p := activeProduct("p1", 10)
	c.AddItem(p, 1)
	p.Price = 99

	if got := c.Total(); got != 10 {
		t.Fatalf("expected snapshot price 10, got %v", got)
	}
}

func TestRemoveItemDropsWholeLine(t *testing.T) {
	var c Cart

	c.AddItem(activeProduct("p1", 10), 3)
	c.AddItem(activeProduct("p2", 5), 1)
	c.RemoveItem("p1")

	items := c.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 left, got %+v", items)
	}

	// removing an unknown product changes nothing
	c.RemoveItem("p9")
	if len(c.Items()) != 1 {
		t.Fatalf("expected unknown removal to be a no-op")
	}
}

func TestConcurrentAccess(t *testing.T) {
	var c Cart
	p := activeProduct("p1", 10)

	const workers = 8
	const addsPerWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerWorker; j++ {
				c.AddItem(p, 1)
				c.Total()
				c.Items()
			}
		}()
	}
	wg.Wait()

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if want := float64(workers * addsPerWorker); items[0].Quantity != want {
		t.Fatalf("lost merges under concurrency: expected quantity %v, got %v", want, items[0].Quantity)
	}
}

func TestClear(t *testing.T) {
	var c Cart

	c.AddItem(activeProduct("p1", 10), 1)
	c.Clear()
	if !c.Empty() || c.Total() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

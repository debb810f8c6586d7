package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"braseiro/models"
)

func useLocalMode(t *testing.T) {
	t.Helper()
	prev := mode
	mode = ModeLocal
	t.Cleanup(func() {
		mode = prev
		localMu.Lock()
		localSinks = map[string][]chan models.ChangeEvent{}
		localMu.Unlock()
	})
}

func TestLocalEmitReachesListener(t *testing.T) {
	useLocalMode(t)

	ch := Listen(TableOrders)

	order := models.Order{OrderID: "abc123def", Status: models.StatusPreparing}
	Emit(context.Background(), TableOrders, models.EventInsert, order, nil)

	select {
	case ev := <-ch:
		if ev.Table != TableOrders || ev.EventType != models.EventInsert {
			t.Fatalf("unexpected event %+v", ev)
		}
		var got models.Order
		if err := json.Unmarshal(ev.New, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.OrderID != "abc123def" {
			t.Fatalf("expected order id round-trip, got %+v", got)
		}
		if ev.Old != nil {
			t.Fatalf("expected nil old doc on insert, got %s", ev.Old)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for local event")
	}
}

func TestLocalEmitIsScopedToTable(t *testing.T) {
	useLocalMode(t)

	ordersCh := Listen(TableOrders)
	Emit(context.Background(), TableSettings, models.EventUpdate, models.DefaultSettings(), nil)

	select {
	case ev := <-ordersCh:
		t.Fatalf("orders listener should not see settings events, got %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmitCarriesOldAndNew(t *testing.T) {
	useLocalMode(t)

	ch := Listen(TableOrders)

	oldOrder := models.Order{OrderID: "x", Status: models.StatusPreparing}
	newOrder := models.Order{OrderID: "x", Status: models.StatusReady}
	Emit(context.Background(), TableOrders, models.EventUpdate, newOrder, oldOrder)

	select {
	case ev := <-ch:
		var before, after models.Order
		if err := json.Unmarshal(ev.Old, &before); err != nil {
			t.Fatalf("unmarshal old: %v", err)
		}
		if err := json.Unmarshal(ev.New, &after); err != nil {
			t.Fatalf("unmarshal new: %v", err)
		}
		if before.Status != models.StatusPreparing || after.Status != models.StatusReady {
			t.Fatalf("expected status transition preserved, got %s to %s", before.Status, after.Status)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for update event")
	}
}

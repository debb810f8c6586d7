package board

import (
	"encoding/json"
	"testing"
	"time"

	"braseiro/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: RoomKitchen,
	}
	hub.register <- client

	msg := outboundPayload{Action: "chime", OrderID: "abc123def"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: RoomKitchen, Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	kitchen := &Client{Send: make(chan []byte, 10), Room: RoomKitchen}
	admin := &Client{Send: make(chan []byte, 10), Room: RoomAdmin}
	hub.register <- kitchen
	hub.register <- admin

	hub.Broadcast(RoomAdmin, []byte(`{"action":"groups"}`))

	select {
	case <-admin.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for admin message")
	}

	select {
	case got := <-kitchen.Send:
		t.Fatalf("kitchen should not receive admin broadcast, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubStopUnblocksClientGoroutines(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	finished := make(chan struct{})
	go func() {
		client := &Client{Send: make(chan []byte, 1), Room: RoomTV}
		hub.add(client)
		hub.remove(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("register/unregister blocked after hub stop")
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestReadyTransition(t *testing.T) {
	preparing := models.Order{OrderID: "ord1", Status: models.StatusPreparing}
	ready := models.Order{OrderID: "ord1", Status: models.StatusReady}
	delivered := models.Order{OrderID: "ord1", Status: models.StatusDelivered}

	ev := models.ChangeEvent{
		Table:     "orders",
		EventType: models.EventUpdate,
		Old:       mustJSON(t, preparing),
		New:       mustJSON(t, ready),
	}
	id, ok := readyTransition(ev)
	if !ok || id != "ord1" {
		t.Fatalf("expected chime for ord1, got %q %v", id, ok)
	}

	// already ready, no second chime
	ev.Old = mustJSON(t, ready)
	if _, ok := readyTransition(ev); ok {
		t.Fatal("expected no chime when old status is already READY")
	}

	// leaving READY is not a chime
	ev.Old = mustJSON(t, ready)
	ev.New = mustJSON(t, delivered)
	if _, ok := readyTransition(ev); ok {
		t.Fatal("expected no chime on READY to DELIVERED")
	}

	// inserts never chime, even when born READY
	ev = models.ChangeEvent{
		Table:     "orders",
		EventType: models.EventInsert,
		New:       mustJSON(t, ready),
	}
	if _, ok := readyTransition(ev); ok {
		t.Fatal("expected no chime on insert")
	}
}

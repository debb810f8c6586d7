package board

import (
	"context"
	"encoding/json"
	"log"

	"braseiro/models"
	"braseiro/mq"
	"braseiro/orders"
)

type outboundPayload struct {
	Action  string `json:"action"`
	OrderID string `json:"orderId,omitempty"`
	Content any    `json:"content,omitempty"`
}

// StartOrderWorker is the single consumer of the orders change stream. On
// every event it re-derives the grouped board from a fresh store read and
// pushes it to all display rooms; the grouped view is never patched in
// place. The ready chime is detected here, on the underlying per-order
// stream, so rapid transitions collapsed by the aggregation still chime
// once each.
func StartOrderWorker(hub *Hub) {
	ch := mq.Listen(mq.TableOrders)
	log.Println("[OrderWorker] Listening for order change events...")

	go func() {
		for ev := range ch {
			if chimeID, ok := readyTransition(ev); ok {
				data, _ := json.Marshal(outboundPayload{Action: "chime", OrderID: chimeID})
				hub.Broadcast(RoomKitchen, data)
				hub.Broadcast(RoomTV, data)
			}
			refreshBoards(hub)
		}
	}()
}

// StartSettingsWorker rebroadcasts settings changes so every open session
// picks up branding and permission flips without a reload.
func StartSettingsWorker(hub *Hub) {
	ch := mq.Listen(mq.TableSettings)

	go func() {
		for ev := range ch {
			data, _ := json.Marshal(outboundPayload{Action: "settings", Content: json.RawMessage(ev.New)})
			for _, room := range []string{RoomKitchen, RoomTV, RoomAdmin} {
				hub.Broadcast(room, data)
			}
		}
	}()
}

// readyTransition reports the order id when an update moved an order into
// READY from some other state.
func readyTransition(ev models.ChangeEvent) (string, bool) {
	if ev.EventType != models.EventUpdate || ev.New == nil || ev.Old == nil {
		return "", false
	}
	var oldOrder, newOrder models.Order
	if err := json.Unmarshal(ev.Old, &oldOrder); err != nil {
		return "", false
	}
	if err := json.Unmarshal(ev.New, &newOrder); err != nil {
		return "", false
	}
	if newOrder.Status == models.StatusReady && oldOrder.Status != models.StatusReady {
		return newOrder.OrderID, true
	}
	return "", false
}

func refreshBoards(hub *Hub) {
	all, err := orders.FetchAll(context.Background())
	if err != nil {
		log.Printf("[OrderWorker] board refresh failed: %v", err)
		return
	}

	view, err := json.Marshal(outboundPayload{Action: "board", Content: orders.BoardView(all)})
	if err != nil {
		log.Printf("[OrderWorker] board marshal failed: %v", err)
		return
	}
	hub.Broadcast(RoomKitchen, view)
	hub.Broadcast(RoomTV, view)

	groups, err := json.Marshal(outboundPayload{Action: "groups", Content: orders.GroupOrders(all)})
	if err != nil {
		return
	}
	hub.Broadcast(RoomAdmin, groups)
}

package mq

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"braseiro/models"
	"braseiro/rdx"
)

// Watched tables. Channel name on the wire is "changes:"+table.
const (
	TableOrders     = "orders"
	TableProducts   = "products"
	TableCategories = "categories"
	TableSettings   = "settings"
)

const (
	// ModeRedis publishes change events through Redis so every instance's
	// dispatcher reacts to the store's echo. ModeLocal hands events to
	// in-process listeners directly, for deployments without Redis. The
	// mode is fixed at boot; the two paths are never mixed.
	ModeRedis = "redis"
	ModeLocal = "local"
)

var mode = ModeRedis

var (
	localMu    sync.Mutex
	localSinks = map[string][]chan models.ChangeEvent{}
)

func init() {
	if m := os.Getenv("STREAM_MODE"); m == ModeLocal {
		mode = ModeLocal
	}
}

// Mode reports the active stream mode.
func Mode() string {
	return mode
}

func channelName(table string) string {
	return "changes:" + table
}

// Emit publishes a change event for a watched table. Callers invoke it only
// after the store write succeeded; a failed emit is logged, never returned,
// because the write itself already committed.
func Emit(ctx context.Context, table, eventType string, newDoc, oldDoc any) {
	ev := models.ChangeEvent{Table: table, EventType: eventType}

	if newDoc != nil {
		raw, err := json.Marshal(newDoc)
		if err != nil {
			log.Printf("[Emit] marshal new doc failed: %v", err)
			return
		}
		ev.New = raw
	}
	if oldDoc != nil {
		raw, err := json.Marshal(oldDoc)
		if err != nil {
			log.Printf("[Emit] marshal old doc failed: %v", err)
			return
		}
		ev.Old = raw
	}

	if mode == ModeLocal {
		dispatchLocal(ev)
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] marshal event failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channelName(table), data).Err(); err != nil {
		log.Printf("[Emit] publish to %s failed: %v", channelName(table), err)
	}
}

func dispatchLocal(ev models.ChangeEvent) {
	localMu.Lock()
	defer localMu.Unlock()
	for _, sink := range localSinks[ev.Table] {
		select {
		case sink <- ev:
		default:
			log.Printf("[Emit] local sink for %s full, event dropped", ev.Table)
		}
	}
}

// Listen returns the inbound change-event channel for one table. Each watched
// table gets exactly one dispatcher consuming this stream; views are always
// re-derived from a fresh store read, never patched incrementally.
func Listen(table string) <-chan models.ChangeEvent {
	ch := make(chan models.ChangeEvent, 64)

	if mode == ModeLocal {
		localMu.Lock()
		localSinks[table] = append(localSinks[table], ch)
		localMu.Unlock()
		return ch
	}

	sub := rdx.Conn.Subscribe(context.Background(), channelName(table))
	go func() {
		for msg := range sub.Channel() {
			var ev models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[Listen] bad payload on %s: %v", channelName(table), err)
				continue
			}
			ch <- ev
		}
		close(ch)
	}()
	return ch
}

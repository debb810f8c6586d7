package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"braseiro/db"
	"braseiro/models"
	"braseiro/mq"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrItemNotFound      = errors.New("item not found in order")
	ErrOrderNotEditable  = errors.New("order is no longer editable")
)

var allowedTransitions = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusPreparing: {
		models.StatusReady:     true,
		models.StatusCancelled: true,
	},
	models.StatusReady: {
		models.StatusDelivered: true,
		models.StatusCancelled: true,
	},
	models.StatusDelivered: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to models.OrderStatus) bool {
	return allowedTransitions[from][to]
}

// BatchError reports a partially failed group advance. The record store has
// no multi-record transaction, so each id is updated independently; callers
// see exactly which ids stuck and which did not and own the retry.
type BatchError struct {
	Succeeded []string
	Failed    []string
	Reasons   map[string]string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("status update failed for %s (succeeded: %s)",
		strings.Join(e.Failed, ", "), strings.Join(e.Succeeded, ", "))
}

// AdvanceOrders applies newStatus to every given order id, best effort. An
// order already at newStatus counts as succeeded without a write. Until the
// caller reconciles a partial failure the group will re-derive in a mixed
// state; the aggregator tolerates that.
func AdvanceOrders(ctx context.Context, ids []string, newStatus models.OrderStatus) error {
	batch := &BatchError{Reasons: make(map[string]string)}

	for _, id := range ids {
		if err := advanceOne(ctx, id, newStatus); err != nil {
			batch.Failed = append(batch.Failed, id)
			batch.Reasons[id] = err.Error()
			continue
		}
		batch.Succeeded = append(batch.Succeeded, id)
	}

	if len(batch.Failed) > 0 {
		return batch
	}
	return nil
}

func advanceOne(ctx context.Context, id string, newStatus models.OrderStatus) error {
	var current models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": id}).Decode(&current)
	if err != nil {
		return ErrOrderNotFound
	}

	if current.Status == newStatus {
		return nil
	}
	if !CanTransition(current.Status, newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, newStatus)
	}

	updated := current
	updated.Status = newStatus
	_, err = db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": id},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return err
	}

	mq.Emit(ctx, mq.TableOrders, models.EventUpdate, updated, current)
	return nil
}

// CloseTable marks every active order on one table as DELIVERED, same
// mechanics as a group advance over the table's order ids. Orders still
// PREPARING cannot jump straight to DELIVERED, so they fail the advance and
// come back in the BatchError while the rest close; the table finishes
// closing once the kitchen has marked everything READY.
func CloseTable(ctx context.Context, tableNumber string) ([]string, error) {
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{
		"tableNumber": tableNumber,
		"status":      bson.M{"$in": []models.OrderStatus{models.StatusPreparing, models.StatusReady}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var open []models.Order
	if err := cursor.All(ctx, &open); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(open))
	for _, o := range open {
		ids = append(ids, o.OrderID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, AdvanceOrders(ctx, ids, models.StatusDelivered)
}

// removeLine drops one product line and recomputes the total by subtracting
// the removed line, keeping the total/items invariant without recomputing
// the other snapshots. Emptying the order forces CANCELLED; an order never
// persists with zero items and a non-terminal status.
func removeLine(o models.Order, productID string) (models.Order, error) {
	if o.Status.IsTerminal() {
		return o, ErrOrderNotEditable
	}

	idx := -1
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return o, ErrItemNotFound
	}

	removed := o.Items[idx]
	items := make([]models.OrderItem, 0, len(o.Items)-1)
	items = append(items, o.Items[:idx]...)
	items = append(items, o.Items[idx+1:]...)

	o.Items = items
	o.Total -= removed.LineTotal()
	if len(o.Items) == 0 {
		o.Total = 0
		o.Status = models.StatusCancelled
	}
	return o, nil
}

// RemoveOrderItem persists an item-level removal on one underlying order.
func RemoveOrderItem(ctx context.Context, orderID, productID string) (models.Order, error) {
	var current models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&current)
	if err != nil {
		return models.Order{}, ErrOrderNotFound
	}

	updated, err := removeLine(current, productID)
	if err != nil {
		return models.Order{}, err
	}

	_, err = db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{
			"items":  updated.Items,
			"total":  updated.Total,
			"status": updated.Status,
		}},
	)
	if err != nil {
		return models.Order{}, err
	}

	mq.Emit(ctx, mq.TableOrders, models.EventUpdate, updated, current)
	return updated, nil
}

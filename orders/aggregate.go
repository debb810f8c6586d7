package orders

import (
	"sort"
	"time"

	"braseiro/models"
)

// Group is the merged operational view of one table tab or one standalone
// order. OriginalOrderIDs keeps every contributing order id so group-level
// actions can be propagated to each underlying record.
type Group struct {
	Key              string             `json:"key"`
	Type             models.OrderType   `json:"type"`
	TableNumber      string             `json:"tableNumber,omitempty"`
	Items            []models.OrderItem `json:"items"`
	Total            float64            `json:"total"`
	Status           models.OrderStatus `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
	Notes            []string           `json:"notes,omitempty"`
	ChangeFor        float64            `json:"changeFor,omitempty"`
	OriginalOrderIDs []string           `json:"originalOrderIds"`
}

// GroupKey merges table orders into one tab per table; every other order
// stands alone under its own id.
func GroupKey(o models.Order) string {
	if o.Type == models.OrderTable && o.TableNumber != "" {
		return "TABLE:" + o.TableNumber
	}
	return o.OrderID
}

// GroupOrders derives the grouped view from the full order collection. It is
// a pure function of the snapshot: callers re-run it on every change event
// instead of patching a previous result, so two sessions fed the same
// snapshot always render the same groups no matter the event arrival order.
//
// Merge rules per group:
//   - item lines with the same productId have their quantities summed
//   - total is the sum of member totals, not recomputed from merged lines
//   - createdAt is the earliest member timestamp
//   - non-empty notes stay individually visible, in member order
//   - changeFor sums across cash sub-orders
//   - status is PREPARING while any member is still PREPARING, else READY
//
// Groups come back newest-first; board displays re-sort with SortForBoard.
func GroupOrders(all []models.Order) []Group {
	active := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status.IsActive() {
			active = append(active, o)
		}
	}

	// Members are processed oldest-first so merged lines and note order do
	// not depend on arrival order.
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].OrderID < active[j].OrderID
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	byKey := make(map[string]*Group)
	var keys []string

	for _, o := range active {
		key := GroupKey(o)
		g, ok := byKey[key]
		if !ok {
			g = &Group{
				Key:         key,
				Type:        o.Type,
				TableNumber: o.TableNumber,
				Status:      models.StatusReady,
				CreatedAt:   o.CreatedAt,
			}
			byKey[key] = g
			keys = append(keys, key)
		}

		for _, item := range o.Items {
			merged := false
			for i := range g.Items {
				if g.Items[i].ProductID == item.ProductID {
					g.Items[i].Quantity += item.Quantity
					merged = true
					break
				}
			}
			if !merged {
				g.Items = append(g.Items, item)
			}
		}

		g.Total += o.Total
		g.ChangeFor += o.ChangeFor
		if o.CreatedAt.Before(g.CreatedAt) {
			g.CreatedAt = o.CreatedAt
		}
		if o.Notes != "" {
			g.Notes = append(g.Notes, o.Notes)
		}
		if o.Status == models.StatusPreparing {
			g.Status = models.StatusPreparing
		}
		g.OriginalOrderIDs = append(g.OriginalOrderIDs, o.OrderID)
	}

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, *byKey[key])
	}

	// Newest group first for list displays.
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups
}

// SortForBoard orders groups oldest-first, the reading order for the TV.
func SortForBoard(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
}

// OccupiedTables returns the table numbers holding at least one active order.
func OccupiedTables(all []models.Order) map[string]bool {
	occupied := make(map[string]bool)
	for _, o := range all {
		if o.Status.IsActive() && o.TableNumber != "" {
			occupied[o.TableNumber] = true
		}
	}
	return occupied
}

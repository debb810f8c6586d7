package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"braseiro/cart"
	"braseiro/db"
	"braseiro/middleware"
	"braseiro/models"
	"braseiro/mq"
	"braseiro/settings"
	"braseiro/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchAll reads the full order collection, newest first.
func FetchAll(ctx context.Context) ([]models.Order, error) {
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []models.Order
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}
	return all, nil
}

type checkoutPayload struct {
	Session string `json:"session,omitempty"`
	Submission
}

// CreateOrder materializes a checkout into a persisted order. The items come
// either from a cart session (table devices, digital menu) or inline by
// productId (staff manual orders); inline lines are re-snapshotted from the
// product collection so client-sent prices are never trusted. The cart is
// cleared only after the insert succeeded, so a failed submission can be
// retried without re-entering items.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload checkoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("CreateOrder decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	cfg, err := settings.Load(ctx)
	if err != nil {
		http.Error(w, "Could not load settings", http.StatusInternalServerError)
		return
	}
	if !channelActive(cfg, payload.Type) {
		http.Error(w, "This order channel is currently disabled", http.StatusConflict)
		return
	}

	var sessionCart *cart.Cart
	if payload.Session != "" {
		c, ok := cart.Store.Get(payload.Session)
		if !ok {
			http.Error(w, "Unknown cart session", http.StatusNotFound)
			return
		}
		sessionCart = c
		payload.Items = c.Items()
	} else if err := snapshotItems(ctx, payload.Items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := BuildOrder(payload.Submission)
	if err != nil {
		var verr *ValidationError
		if errors.Is(err, ErrEmptyOrder) || errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// Store errors reach the caller unmodified; there is no automatic
	// retry, the user resubmits.
	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if sessionCart != nil {
		sessionCart.Clear()
	}

	mq.Emit(ctx, mq.TableOrders, models.EventInsert, order, nil)
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

func channelActive(cfg models.StoreSettings, t models.OrderType) bool {
	switch t {
	case models.OrderTable:
		return cfg.IsTableOrderActive
	case models.OrderCounter:
		return cfg.IsCounterPickupActive
	case models.OrderDelivery:
		return cfg.IsDeliveryActive
	}
	return false
}

// snapshotItems replaces inline line data with fresh product snapshots,
// keeping only the requested quantity. Inactive products reject the order.
func snapshotItems(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": items[i].ProductID}).Decode(&product)
		if err != nil {
			return errors.New("unknown product: " + items[i].ProductID)
		}
		if !product.IsActive {
			return errors.New("product is not available: " + product.Name)
		}
		if items[i].Quantity <= 0 {
			if product.IsByWeight {
				return errors.New("weight in kilograms is required for: " + product.Name)
			}
			items[i].Quantity = 1
		}
		items[i].Name = product.Name
		items[i].Price = product.Price
		items[i].IsByWeight = product.IsByWeight
	}
	return nil
}

// ListOrders returns the raw order collection for the admin list, including
// terminal orders for the historical record.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := FetchAll(ctx)
	if err != nil {
		log.Println("ListOrders fetch error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	if all == nil {
		all = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, all)
}

// ListGroups returns the aggregated active view for the kitchen and admin
// dashboards, newest group first.
func ListGroups(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := FetchAll(ctx)
	if err != nil {
		log.Println("ListGroups fetch error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, GroupOrders(all))
}

// Board returns the TV split: preparing and ready groups, oldest first.
func Board(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := FetchAll(ctx)
	if err != nil {
		log.Println("Board fetch error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BoardView(all))
}

// BoardView splits the grouped view into the two TV columns.
func BoardView(all []models.Order) utils.M {
	groups := GroupOrders(all)
	SortForBoard(groups)

	preparing := make([]Group, 0, len(groups))
	ready := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.Status == models.StatusPreparing {
			preparing = append(preparing, g)
		} else {
			ready = append(ready, g)
		}
	}
	return utils.M{"preparing": preparing, "ready": ready}
}

// Tables reports which tables currently hold an open tab, for the waitstaff
// panel.
func Tables(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := FetchAll(ctx)
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	occupied := OccupiedTables(all)
	tables := make([]string, 0, len(occupied))
	for t := range occupied {
		tables = append(tables, t)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"occupied": tables})
}

type statusPayload struct {
	IDs    []string           `json:"ids,omitempty"`
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus advances a single order through the state machine.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if !allowedForCaller(ctx, r, payload.Status) {
		http.Error(w, "Not permitted for waitstaff", http.StatusForbidden)
		return
	}

	if err := AdvanceOrders(ctx, []string{ps.ByName("id")}, payload.Status); err != nil {
		respondBatchError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateGroupStatus advances every underlying order of a group. Issued as
// independent store requests; a partial failure lists the ids either side.
func UpdateGroupStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(payload.IDs) == 0 {
		http.Error(w, "ids are required", http.StatusBadRequest)
		return
	}

	if !allowedForCaller(ctx, r, payload.Status) {
		http.Error(w, "Not permitted for waitstaff", http.StatusForbidden)
		return
	}

	if err := AdvanceOrders(ctx, payload.IDs, payload.Status); err != nil {
		respondBatchError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CloseTableHandler delivers every active order on a table at once.
func CloseTableHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if !allowedForCaller(ctx, r, models.StatusDelivered) {
		http.Error(w, "Not permitted for waitstaff", http.StatusForbidden)
		return
	}

	ids, err := CloseTable(ctx, ps.ByName("number"))
	if err != nil {
		respondBatchError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"closed": ids})
}

// RemoveItemHandler removes one line from one underlying order,
// permission-gated for waitstaff.
func RemoveItemHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if !middleware.HasRole(r, "admin") {
		cfg, err := settings.Load(ctx)
		if err != nil || !cfg.CanWaitstaffCancelItems {
			http.Error(w, "Not permitted for waitstaff", http.StatusForbidden)
			return
		}
	}

	updated, err := RemoveOrderItem(ctx, ps.ByName("id"), ps.ByName("productId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrItemNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrOrderNotEditable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// allowedForCaller evaluates the waitstaff permission flags. Admins pass;
// waitstaff may always move food along to READY, but finishing (DELIVERED)
// and cancelling are gated by the store settings.
func allowedForCaller(ctx context.Context, r *http.Request, newStatus models.OrderStatus) bool {
	if middleware.HasRole(r, "admin") {
		return true
	}
	cfg, err := settings.Load(ctx)
	if err != nil {
		return false
	}
	switch newStatus {
	case models.StatusDelivered:
		return cfg.CanWaitstaffFinishOrder
	case models.StatusCancelled:
		return cfg.CanWaitstaffCancelItems
	}
	return true
}

func respondBatchError(w http.ResponseWriter, err error) {
	var batch *BatchError
	if errors.As(err, &batch) {
		utils.RespondWithJSON(w, http.StatusMultiStatus, utils.M{
			"error":     "some orders could not be updated",
			"succeeded": batch.Succeeded,
			"failed":    batch.Failed,
			"reasons":   batch.Reasons,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

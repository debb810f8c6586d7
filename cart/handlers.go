package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// NewSession issues a cart session token for a table device or browser.
func NewSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := Store.New()
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"session": token})
}

// GetCart returns the current lines and running total for a session.
func GetCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, ok := Store.Get(ps.ByName("session"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown cart session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items": c.Items(),
		"total": c.Total(),
	})
}

// AddItem snapshots a product into the session cart. The product is read
// fresh from the store so an inactive product can never enter a new cart.
func AddItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	c, ok := Store.Get(ps.ByName("session"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown cart session")
		return
	}

	var payload struct {
		ProductID string  `json:"productId"`
		Quantity  float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": payload.ProductID}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if !product.IsActive {
		utils.RespondWithError(w, http.StatusConflict, "Product is not available")
		return
	}
	if product.IsByWeight && payload.Quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Weight in kilograms is required for this product")
		return
	}

	c.AddItem(product, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items": c.Items(),
		"total": c.Total(),
	})
}

// RemoveItem drops a whole line from the session cart.
func RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, ok := Store.Get(ps.ByName("session"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown cart session")
		return
	}
	c.RemoveItem(ps.ByName("productId"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items": c.Items(),
		"total": c.Total(),
	})
}

// ClearCart empties the session cart without discarding the session.
func ClearCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, ok := Store.Get(ps.ByName("session"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown cart session")
		return
	}
	c.Clear()
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/mq"
	"braseiro/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists the full catalog, active or not; the public menu
// endpoint filters, the admin screen does not.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		http.Error(w, "Error reading product data", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": ps.ByName("id")}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct adds a menu entry. Ids are store-generated; the admin form
// never picks them.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Println("CreateProduct decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price <= 0 || product.Category == "" {
		http.Error(w, "name, price and category are required", http.StatusBadRequest)
		return
	}
	if product.FeaturedDay != nil && (*product.FeaturedDay < 0 || *product.FeaturedDay > 6) {
		http.Error(w, "featuredDay must be between 0 and 6", http.StatusBadRequest)
		return
	}

	product.ProductID = uuid.NewString()
	product.CreatedAt = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	mq.Emit(ctx, mq.TableProducts, models.EventInsert, product, nil)
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct edits a product in place. Order snapshots are unaffected.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var current models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&current); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	var incoming models.Product
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if incoming.FeaturedDay != nil && (*incoming.FeaturedDay < 0 || *incoming.FeaturedDay > 6) {
		http.Error(w, "featuredDay must be between 0 and 6", http.StatusBadRequest)
		return
	}

	incoming.ProductID = id
	incoming.CreatedAt = current.CreatedAt
	if incoming.ImageURL == "" {
		incoming.ImageURL = current.ImageURL
	}

	_, err := db.ProductsCollection.ReplaceOne(ctx, bson.M{"productId": id}, incoming)
	if err != nil {
		log.Println("UpdateProduct ReplaceOne error:", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	mq.Emit(ctx, mq.TableProducts, models.EventUpdate, incoming, current)
	utils.RespondWithJSON(w, http.StatusOK, incoming)
}

// DeleteProduct is a hard delete; placed orders keep their snapshots.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var current models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&current); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if _, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productId": id}); err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	mq.Emit(ctx, mq.TableProducts, models.EventDelete, nil, current)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

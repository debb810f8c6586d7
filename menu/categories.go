package menu

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

// GetCategories lists the flat category name set.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoriesCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetCategories Find error:", err)
		http.Error(w, "Could not retrieve categories", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		http.Error(w, "Error reading category data", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a new category name.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if category.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	count, err := db.CategoriesCollection.CountDocuments(ctx, bson.M{"name": category.Name})
	if err == nil && count > 0 {
		http.Error(w, "Category already exists", http.StatusConflict)
		return
	}

	category.CategoryID = uuid.NewString()
	if _, err := db.CategoriesCollection.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	mq.Emit(ctx, mq.TableCategories, models.EventInsert, category, nil)
	utils.RespondWithJSON(w, http.StatusCreated, category)
}

// DeleteCategory removes a category name; products keep whatever category
// string they carry.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var current models.Category
	if err := db.CategoriesCollection.FindOne(ctx, bson.M{"categoryId": id}).Decode(&current); err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	if _, err := db.CategoriesCollection.DeleteOne(ctx, bson.M{"categoryId": id}); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	mq.Emit(ctx, mq.TableCategories, models.EventDelete, nil, current)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package menu

import (
	"context"
	"log"
	"net/http"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMenu serves the digital menu: active products grouped by category plus
// the featured product of the current weekday, if any.
func GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductsCollection.Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetMenu Find error:", err)
		http.Error(w, "Could not retrieve menu", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		http.Error(w, "Error reading menu data", http.StatusInternalServerError)
		return
	}

	byCategory := make(map[string][]models.Product)
	for _, p := range products {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	today := int(time.Now().Weekday())
	var featured *models.Product
	for i := range products {
		if products[i].FeaturedDay != nil && *products[i].FeaturedDay == today {
			featured = &products[i]
			break
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"categories": byCategory,
		"featured":   featured,
	})
}

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/mq"
	"braseiro/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The store settings singleton lives in one document: {id:"store", data:{...}}.
const singletonID = "store"

type settingsDoc struct {
	ID   string               `bson:"id"`
	Data models.StoreSettings `bson:"data"`
}

// Load reads the singleton, seeding defaults on first access.
func Load(ctx context.Context) (models.StoreSettings, error) {
	var doc settingsDoc
	err := db.SettingsCollection.FindOne(ctx, bson.M{"id": singletonID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		defaults := models.DefaultSettings()
		_, _ = db.SettingsCollection.InsertOne(ctx, settingsDoc{ID: singletonID, Data: defaults})
		return defaults, nil
	}
	if err != nil {
		return models.StoreSettings{}, err
	}
	return doc.Data, nil
}

// GetSettings serves the singleton to every client; branding and channel
// toggles are needed before any login happens.
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	s, err := Load(ctx)
	if err != nil {
		log.Println("GetSettings load error:", err)
		http.Error(w, "Could not load settings", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// UpdateSettings replaces the singleton and broadcasts the change to every
// connected session through the change stream.
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	previous, err := Load(ctx)
	if err != nil {
		http.Error(w, "Could not load settings", http.StatusInternalServerError)
		return
	}

	incoming, err := applyUpdate(previous, r.Body)
	if err != nil {
		log.Println("UpdateSettings payload error:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = db.SettingsCollection.UpdateOne(ctx,
		bson.M{"id": singletonID},
		bson.M{"$set": bson.M{"data": incoming}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Println("UpdateSettings UpdateOne error:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, mq.TableSettings, models.EventUpdate, incoming, previous)
	utils.RespondWithJSON(w, http.StatusOK, incoming)
}

// applyUpdate decodes a settings payload over the current values, so a field
// the client omits keeps its stored state instead of zeroing out.
func applyUpdate(current models.StoreSettings, body io.Reader) (models.StoreSettings, error) {
	incoming := current
	if err := json.NewDecoder(body).Decode(&incoming); err != nil {
		return models.StoreSettings{}, errors.New("invalid JSON payload")
	}
	if incoming.ThermalPrinterWidth != "80mm" && incoming.ThermalPrinterWidth != "58mm" {
		return models.StoreSettings{}, errors.New("thermalPrinterWidth must be 80mm or 58mm")
	}
	return incoming, nil
}

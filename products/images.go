package products

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/mq"
	"braseiro/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Directory to store product photos
const productPicDir = "./static/productpic"

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// UploadImage stores a product photo, writes a 400px thumbnail next to the
// original, and points the product's imageUrl at the thumbnail.
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var current models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&current); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Could not parse upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	if err := ensureDir(productPicDir); err != nil {
		http.Error(w, "Could not prepare upload directory", http.StatusInternalServerError)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		log.Println("UploadImage decode error:", err)
		http.Error(w, "Unreadable image", http.StatusBadRequest)
		return
	}

	originalPath := filepath.Join(productPicDir, fmt.Sprintf("%s.jpg", id))
	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadImage save error:", err)
		http.Error(w, "Could not store image", http.StatusInternalServerError)
		return
	}

	thumb := imaging.Resize(img, 400, 0, imaging.Lanczos)
	thumbPath := filepath.Join(productPicDir, fmt.Sprintf("%s_thumb.jpg", id))
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadImage thumbnail error:", err)
		http.Error(w, "Could not store thumbnail", http.StatusInternalServerError)
		return
	}

	imageURL := "/static/productpic/" + fmt.Sprintf("%s_thumb.jpg", id)
	_, err = db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": id},
		bson.M{"$set": bson.M{"imageUrl": imageURL}},
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	updated := current
	updated.ImageURL = imageURL
	mq.Emit(ctx, mq.TableProducts, models.EventUpdate, updated, current)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": imageURL})
}

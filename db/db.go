package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	OrdersCollection     *mongo.Collection
	ProductsCollection   *mongo.Collection
	CategoriesCollection *mongo.Collection
	SettingsCollection   *mongo.Collection
	StaffCollection      *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("braseiro")
	OrdersCollection = database.Collection("orders")
	ProductsCollection = database.Collection("products")
	CategoriesCollection = database.Collection("categories")
	SettingsCollection = database.Collection("settings")
	StaffCollection = database.Collection("staff")

	ensureIndexes()
}

// ensureIndexes creates the unique order id index. Collisions on the short
// client-style token are rejected by the store and surfaced to the caller.
func ensureIndexes() {
	_, err := OrdersCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("orders index creation failed: %v", err)
	}

	_, err = ProductsCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("products index creation failed: %v", err)
	}
}

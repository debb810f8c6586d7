package models

import "time"

// Product is a menu entry. Price is per unit, or per kilogram when
// IsByWeight is set.
type Product struct {
	ProductID   string    `json:"id" bson:"productId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	FeaturedDay *int      `json:"featuredDay,omitempty" bson:"featuredDay,omitempty"` // 0=Sunday .. 6=Saturday
	IsByWeight  bool      `json:"isByWeight,omitempty" bson:"isByWeight,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Category is a flat name set, not a foreign key.
type Category struct {
	CategoryID string `json:"id" bson:"categoryId"`
	Name       string `json:"name" bson:"name"`
}

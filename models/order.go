package models

import "time"

type OrderStatus string

const (
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether the order still shows up on operational views.
func (s OrderStatus) IsActive() bool {
	return s == StatusPreparing || s == StatusReady
}

type OrderType string

const (
	OrderTable    OrderType = "TABLE"
	OrderCounter  OrderType = "COUNTER"
	OrderDelivery OrderType = "DELIVERY"
)

type PaymentMethod string

const (
	PayPix  PaymentMethod = "PIX"
	PayCard PaymentMethod = "CARD"
	PayCash PaymentMethod = "CASH"
)

// OrderItem is a snapshot of the product at the moment it entered the cart.
// Later price edits on the product never touch placed orders.
type OrderItem struct {
	ProductID  string  `json:"productId" bson:"productId"`
	Name       string  `json:"name" bson:"name"`
	Price      float64 `json:"price" bson:"price"`
	Quantity   float64 `json:"quantity" bson:"quantity"` // fractional kg when IsByWeight
	IsByWeight bool    `json:"isByWeight,omitempty" bson:"isByWeight,omitempty"`
}

// LineTotal is price times quantity with no intermediate rounding.
func (i OrderItem) LineTotal() float64 {
	return i.Price * i.Quantity
}

// Order is one checkout event. Optional fields carry omitempty on both tag
// sets so absent values are omitted from the stored document by contract.
type Order struct {
	OrderID         string        `json:"id" bson:"orderId"`
	Type            OrderType     `json:"type" bson:"type"`
	TableNumber     string        `json:"tableNumber,omitempty" bson:"tableNumber,omitempty"`
	CustomerName    string        `json:"customerName,omitempty" bson:"customerName,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty" bson:"deliveryAddress,omitempty"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Status          OrderStatus   `json:"status" bson:"status"`
	Total           float64       `json:"total" bson:"total"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty"`
	ChangeFor       float64       `json:"changeFor,omitempty" bson:"changeFor,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
}

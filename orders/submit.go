package orders

import (
	"errors"
	"fmt"
	"time"

	"braseiro/models"
	"braseiro/utils"
)

const orderIDLength = 9

var ErrEmptyOrder = errors.New("order must contain at least one item")

// ValidationError reports a missing required field for the chosen order
// type. Submission is rejected before any store call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Submission carries the checkout input before normalization.
type Submission struct {
	Type            models.OrderType     `json:"type"`
	TableNumber     string               `json:"tableNumber"`
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	DeliveryAddress string               `json:"deliveryAddress"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	Notes           string               `json:"notes"`
	ChangeFor       float64              `json:"changeFor"`
	Items           []models.OrderItem   `json:"items"`
}

// BuildOrder validates a submission and materializes the order record:
// client-style short id, createdAt now, status always PREPARING, payment
// defaulting to PIX, total computed from the item snapshots. changeFor only
// survives for cash payments.
func BuildOrder(sub Submission) (models.Order, error) {
	if len(sub.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	switch sub.Type {
	case models.OrderTable:
		if sub.TableNumber == "" {
			return models.Order{}, &ValidationError{Field: "tableNumber"}
		}
	case models.OrderCounter:
		// pickup call-out needs a name
		if sub.CustomerName == "" {
			return models.Order{}, &ValidationError{Field: "customerName"}
		}
	case models.OrderDelivery:
		if sub.CustomerName == "" {
			return models.Order{}, &ValidationError{Field: "customerName"}
		}
		if sub.CustomerPhone == "" {
			return models.Order{}, &ValidationError{Field: "customerPhone"}
		}
		if sub.DeliveryAddress == "" {
			return models.Order{}, &ValidationError{Field: "deliveryAddress"}
		}
	default:
		return models.Order{}, fmt.Errorf("unknown order type %q", sub.Type)
	}

	payment := sub.PaymentMethod
	if payment == "" {
		payment = models.PayPix
	}
	changeFor := 0.0
	if payment == models.PayCash {
		changeFor = sub.ChangeFor
	}

	var total float64
	for _, item := range sub.Items {
		total += item.LineTotal()
	}

	order := models.Order{
		OrderID:       utils.GenerateRandomString(orderIDLength),
		Type:          sub.Type,
		Items:         sub.Items,
		Status:        models.StatusPreparing,
		Total:         total,
		PaymentMethod: payment,
		Notes:         sub.Notes,
		ChangeFor:     changeFor,
		CreatedAt:     time.Now(),
	}
	if sub.Type == models.OrderTable {
		order.TableNumber = sub.TableNumber
	}
	if sub.Type != models.OrderTable {
		order.CustomerName = sub.CustomerName
	}
	if sub.Type == models.OrderDelivery {
		order.CustomerPhone = sub.CustomerPhone
		order.DeliveryAddress = sub.DeliveryAddress
	}
	return order, nil
}

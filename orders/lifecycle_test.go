package orders

import (
	"errors"
	"strings"
	"testing"

	"braseiro/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPreparing, models.StatusReady, true},
		{models.StatusPreparing, models.StatusCancelled, true},
		{models.StatusReady, models.StatusDelivered, true},
		{models.StatusReady, models.StatusCancelled, true},
		{models.StatusPreparing, models.StatusDelivered, false},
		{models.StatusReady, models.StatusPreparing, false},
		{models.StatusDelivered, models.StatusReady, false},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPreparing, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func twoLineOrder() models.Order {
	return models.Order{
		OrderID: "ord123abc",
		Status:  models.StatusPreparing,
		Items: []models.OrderItem{
			{ProductID: "burger", Name: "Burger", Price: 20, Quantity: 2},
			{ProductID: "soda", Name: "Soda", Price: 5, Quantity: 1},
		},
		Total: 45,
	}
}

func TestRemoveLine(t *testing.T) {
	updated, err := removeLine(twoLineOrder(), "burger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].ProductID != "soda" {
		t.Fatalf("expected only soda left, got %+v", updated.Items)
	}
	if updated.Total != 5 {
		t.Fatalf("expected total 5, got %v", updated.Total)
	}
	if updated.Status != models.StatusPreparing {
		t.Fatalf("status should not change while items remain, got %s", updated.Status)
	}
}

func TestRemoveLineEmptiesOrder(t *testing.T) {
	o := twoLineOrder()
	o.Items = o.Items[:1]
	o.Total = 40

	updated, err := removeLine(o, "burger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Items) != 0 {
		t.Fatalf("expected no items, got %+v", updated.Items)
	}
	if updated.Total != 0 {
		t.Fatalf("expected total 0, got %v", updated.Total)
	}
	if updated.Status != models.StatusCancelled {
		t.Fatalf("expected forced CANCELLED, got %s", updated.Status)
	}
}

func TestRemoveLineErrors(t *testing.T) {
	if _, err := removeLine(twoLineOrder(), "nope"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	done := twoLineOrder()
	done.Status = models.StatusDelivered
	if _, err := removeLine(done, "burger"); !errors.Is(err, ErrOrderNotEditable) {
		t.Fatalf("expected ErrOrderNotEditable, got %v", err)
	}
}

func TestBatchErrorMessage(t *testing.T) {
	err := &BatchError{
		Succeeded: []string{"aaa"},
		Failed:    []string{"bbb", "ccc"},
		Reasons:   map[string]string{"bbb": "not found", "ccc": "invalid transition"},
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
	for _, id := range []string{"aaa", "bbb", "ccc"} {
		if !strings.Contains(msg, id) {
			t.Fatalf("expected %s in %q", id, msg)
		}
	}
}

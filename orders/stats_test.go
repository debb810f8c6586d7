package orders

import (
	"testing"
	"time"

	"braseiro/models"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC) // a Wednesday

	today := tableOrder("aaa", "1", now.Add(-time.Hour), models.StatusDelivered,
		item("burger", 20, 2))
	yesterday := tableOrder("bbb", "2", now.Add(-25*time.Hour), models.StatusDelivered,
		item("burger", 20, 1), item("soda", 5, 3))
	cancelled := tableOrder("ccc", "3", now.Add(-time.Hour), models.StatusCancelled,
		item("burger", 20, 5))

	stats := computeStats([]models.Order{today, yesterday, cancelled}, now)

	if got := stats["totalSales"].(float64); got != 75 {
		t.Fatalf("expected totalSales 75 excluding cancelled, got %v", got)
	}
	if got := stats["ordersToday"].(int); got != 1 {
		t.Fatalf("expected 1 order today, got %v", got)
	}

	weekday := stats["weekdaySales"].([]float64)
	if weekday[int(time.Wednesday)] != 40 {
		t.Fatalf("expected 40 on Wednesday, got %v", weekday[int(time.Wednesday)])
	}
	if weekday[int(time.Tuesday)] != 35 {
		t.Fatalf("expected 35 on Tuesday, got %v", weekday[int(time.Tuesday)])
	}

	top := stats["topProducts"].([]productCount)
	if len(top) != 2 || top[0].ProductID != "burger" || top[0].Quantity != 3 {
		t.Fatalf("unexpected top products %+v", top)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil, time.Now())
	if stats["totalSales"].(float64) != 0 || stats["ordersToday"].(int) != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if len(stats["topProducts"].([]productCount)) != 0 {
		t.Fatalf("expected no top products")
	}
}

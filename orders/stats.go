package orders

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"braseiro/models"
	"braseiro/utils"

	"github.com/julienschmidt/httprouter"
)

type productCount struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
}

// Stats feeds the admin dashboard: sales total, today's order count, sales
// per weekday, top products. Cancelled orders never count towards revenue.
func Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := FetchAll(ctx)
	if err != nil {
		log.Println("Stats fetch error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, computeStats(all, time.Now()))
}

func computeStats(all []models.Order, now time.Time) utils.M {
	var totalSales float64
	ordersToday := 0
	weekdaySales := make([]float64, 7)
	counts := make(map[string]*productCount)

	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	for _, o := range all {
		if o.Status == models.StatusCancelled {
			continue
		}
		totalSales += o.Total
		weekdaySales[int(o.CreatedAt.Weekday())] += o.Total
		if !o.CreatedAt.Before(todayStart) {
			ordersToday++
		}
		for _, item := range o.Items {
			pc, ok := counts[item.ProductID]
			if !ok {
				pc = &productCount{ProductID: item.ProductID, Name: item.Name}
				counts[item.ProductID] = pc
			}
			pc.Quantity += item.Quantity
		}
	}

	top := make([]productCount, 0, len(counts))
	for _, pc := range counts {
		top = append(top, *pc)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity == top[j].Quantity {
			return top[i].ProductID < top[j].ProductID
		}
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > 5 {
		top = top[:5]
	}

	return utils.M{
		"totalSales":   totalSales,
		"ordersToday":  ordersToday,
		"weekdaySales": weekdaySales,
		"topProducts":  top,
	}
}

package receipts

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"braseiro/db"
	"braseiro/models"
	"braseiro/settings"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
)

// Thermal roll widths in millimeters, keyed by the settings enum.
var paperWidths = map[string]float64{
	"80mm": 80,
	"58mm": 58,
}

// OrderTicket renders one order as a PDF sized for the configured thermal
// roll, for the kitchen and counter printers.
func OrderTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("id")}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	cfg, err := settings.Load(ctx)
	if err != nil {
		http.Error(w, "Could not load settings", http.StatusInternalServerError)
		return
	}
	width, ok := paperWidths[cfg.ThermalPrinterWidth]
	if !ok {
		width = paperWidths["80mm"]
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: width, Ht: 200},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()
	usable := width - 8

	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(usable, 6, strings.ToUpper(cfg.StoreName), "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(usable, 4, order.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Courier", "B", 10)
	label := string(order.Type)
	if order.TableNumber != "" {
		label = fmt.Sprintf("TABLE %s", order.TableNumber)
	}
	pdf.CellFormat(usable, 6, label, "", 1, "C", false, 0, "")
	pdf.CellFormat(usable, 4, "#"+strings.ToUpper(shortID(order.OrderID)), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Courier", "", 8)
	for _, item := range order.Items {
		qty := fmt.Sprintf("%gx", item.Quantity)
		if item.IsByWeight {
			qty = fmt.Sprintf("%.3fkg", item.Quantity)
		}
		pdf.CellFormat(usable*0.7, 4, fmt.Sprintf("%s %s", qty, item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(usable*0.3, 4, fmt.Sprintf("%.2f", item.LineTotal()), "", 1, "R", false, 0, "")
	}
	if order.Notes != "" {
		pdf.Ln(1)
		pdf.MultiCell(usable, 4, "Obs: "+order.Notes, "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(usable*0.5, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(usable*0.5, 6, fmt.Sprintf("%.2f", order.Total), "", 1, "R", false, 0, "")

	if order.PaymentMethod != "" {
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(usable, 4, string(order.PaymentMethod), "", 1, "L", false, 0, "")
		if order.PaymentMethod == models.PayCash && order.ChangeFor > 0 {
			pdf.CellFormat(usable, 4, fmt.Sprintf("Change for %.2f", order.ChangeFor), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=order-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// shortID mirrors the display convention: last six characters of the id.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

package receipts

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// TableQR serves a PNG QR code that opens the public menu pre-bound to the
// given table number, for printing on table tents.
func TableQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	table := ps.ByName("number")
	if _, err := strconv.Atoi(table); err != nil {
		http.Error(w, "Invalid table number", http.StatusBadRequest)
		return
	}

	base := os.Getenv("PUBLIC_URL")
	if base == "" {
		base = "http://localhost:4000"
	}
	payload := fmt.Sprintf("%s/menu?table=%s", base, table)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

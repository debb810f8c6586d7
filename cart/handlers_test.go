package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestGetCartUnknownSessionRespondsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart/nope", nil)
	w := httptest.NewRecorder()

	GetCart(w, req, httprouter.Params{{Key: "session", Value: "nope"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error body, got Content-Type %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field in body, got %v", body)
	}
}

package settings

import (
	"strings"
	"testing"

	"braseiro/models"
)

func TestApplyUpdateKeepsOmittedFields(t *testing.T) {
	current := models.DefaultSettings()
	current.StoreName = "Casa do Norte"
	current.CanWaitstaffFinishOrder = true

	body := strings.NewReader(`{"isDeliveryActive":false,"thermalPrinterWidth":"58mm"}`)
	updated, err := applyUpdate(current, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.IsDeliveryActive {
		t.Fatal("expected delivery toggle to flip off")
	}
	if updated.ThermalPrinterWidth != "58mm" {
		t.Fatalf("expected 58mm, got %s", updated.ThermalPrinterWidth)
	}
	if !updated.IsTableOrderActive || !updated.IsCounterPickupActive {
		t.Fatal("omitted channel toggles should keep their stored values")
	}
	if updated.StoreName != "Casa do Norte" {
		t.Fatalf("omitted storeName should be preserved, got %q", updated.StoreName)
	}
	if !updated.CanWaitstaffFinishOrder {
		t.Fatal("omitted permission flag should be preserved")
	}
}

func TestApplyUpdateRejectsBadPayload(t *testing.T) {
	current := models.DefaultSettings()

	if _, err := applyUpdate(current, strings.NewReader(`{"thermalPrinterWidth":"A4"}`)); err == nil {
		t.Fatal("expected error for unsupported printer width")
	}
	if _, err := applyUpdate(current, strings.NewReader(`{not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

package models

// StoreSettings is a process-wide singleton stored as {id:"store", data:{...}}.
type StoreSettings struct {
	IsDeliveryActive        bool   `json:"isDeliveryActive" bson:"isDeliveryActive"`
	IsTableOrderActive      bool   `json:"isTableOrderActive" bson:"isTableOrderActive"`
	IsCounterPickupActive   bool   `json:"isCounterPickupActive" bson:"isCounterPickupActive"`
	StoreName               string `json:"storeName" bson:"storeName"`
	LogoURL                 string `json:"logoUrl" bson:"logoUrl"`
	PrimaryColor            string `json:"primaryColor" bson:"primaryColor"`
	SecondaryColor          string `json:"secondaryColor" bson:"secondaryColor"`
	CanWaitstaffFinishOrder bool   `json:"canWaitstaffFinishOrder" bson:"canWaitstaffFinishOrder"`
	CanWaitstaffCancelItems bool   `json:"canWaitstaffCancelItems" bson:"canWaitstaffCancelItems"`
	ThermalPrinterWidth     string `json:"thermalPrinterWidth" bson:"thermalPrinterWidth"` // "80mm" or "58mm"
}

// DefaultSettings seeds the singleton on first read.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		IsDeliveryActive:      true,
		IsTableOrderActive:    true,
		IsCounterPickupActive: true,
		StoreName:             "Braseiro",
		PrimaryColor:          "#3d251e",
		SecondaryColor:        "#f68c3e",
		ThermalPrinterWidth:   "80mm",
	}
}

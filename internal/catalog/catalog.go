// Package catalog holds the static reference data the kiosk consumes:
// car brands and models, connector types with billing rates, the known
// vehicle directory, and the initial slot layout. All lookups are pure.
package catalog

import (
	"strings"

	"evkiosk/internal/models"
)

// Connector identifiers.
const (
	ConnectorACType1   = "ac_type_1"
	ConnectorCCSCombo2 = "ccs_combo_2"
)

// DefaultConnector is the universal recommendation when no brand-specific
// rule applies.
const DefaultConnector = ConnectorCCSCombo2

// Connectors lists the plug standards this kiosk offers.
var Connectors = []models.ConnectorTypeInfo{
	{ID: ConnectorACType1, Name: "connector.ac_type_1.name", Description: "connector.ac_type_1.description"},
	{ID: ConnectorCCSCombo2, Name: "connector.ccs_combo_2.name", Description: "connector.ccs_combo_2.description"},
}

// connectorRates maps connector type to cost per kWh in KRW.
var connectorRates = map[string]int64{
	ConnectorACType1:   200,
	ConnectorCCSCombo2: 300,
}

const fallbackRatePerKwh = 300

// RatePerKwh returns the billing rate for a connector type. Unknown
// connector types bill at the fallback rate.
func RatePerKwh(connectorType string) int64 {
	if rate, ok := connectorRates[connectorType]; ok {
		return rate
	}
	return fallbackRatePerKwh
}

// Brands is the brand/model catalog shown during manual identification.
var Brands = []models.CarBrand{
	{ID: "hyundai", Name: "carBrand.hyundai", Models: []models.CarModel{
		{ID: "ioniq5", Name: "carModel.hyundai.ioniq5"},
		{ID: "kona_ev", Name: "carModel.hyundai.kona_ev"},
		{ID: "ioniq6", Name: "carModel.hyundai.ioniq6"},
		{ID: "nexo", Name: "carModel.hyundai.nexo"},
		{ID: "casper_ev", Name: "carModel.hyundai.casper_ev"},
		{ID: "porter_ev", Name: "carModel.hyundai.porter_ev"},
	}},
	{ID: "kia", Name: "carBrand.kia", Models: []models.CarModel{
		{ID: "ev6", Name: "carModel.kia.ev6"},
		{ID: "niro_ev", Name: "carModel.kia.niro_ev"},
		{ID: "ev9", Name: "carModel.kia.ev9"},
		{ID: "ev4", Name: "carModel.kia.ev4"},
		{ID: "ray_ev", Name: "carModel.kia.ray_ev"},
		{ID: "ev5", Name: "carModel.kia.ev5"},
	}},
	{ID: "kgm", Name: "carBrand.kgm", Models: []models.CarModel{
		{ID: "torres_evx", Name: "carModel.kgm.torres_evx"},
		{ID: "korando_emotion", Name: "carModel.kgm.korando_emotion"},
	}},
	{ID: "tesla", Name: "carBrand.tesla", Models: []models.CarModel{
		{ID: "model_3", Name: "carModel.tesla.model_3"},
		{ID: "model_y", Name: "carModel.tesla.model_y"},
		{ID: "model_s", Name: "carModel.tesla.model_s"},
		{ID: "model_x", Name: "carModel.tesla.model_x"},
		{ID: "cybertruck", Name: "carModel.tesla.cybertruck"},
		{ID: "roadster", Name: "carModel.tesla.roadster"},
	}},
}

// BrandByID finds a catalog brand.
func BrandByID(id string) (models.CarBrand, bool) {
	for _, b := range Brands {
		if b.ID == id {
			return b, true
		}
	}
	return models.CarBrand{}, false
}

// RecommendedConnectorForBrand returns the brand-specific connector
// default. All catalog brands currently charge over CCS2; unknown brands
// fall through to the universal default.
func RecommendedConnectorForBrand(brandID string) string {
	switch brandID {
	case "hyundai", "kia", "tesla", "kgm":
		return ConnectorCCSCombo2
	default:
		return DefaultConnector
	}
}

// KnownVehicle is a plate directory entry.
type KnownVehicle struct {
	LicensePlate string
	BrandID      string
	ModelID      string
}

var knownVehicles = []KnownVehicle{
	{LicensePlate: "12가3456", BrandID: "hyundai", ModelID: "ioniq5"},
	{LicensePlate: "34나7890", BrandID: "kia", ModelID: "ev6"},
}

// FindVehicleByPlate looks up a normalized plate in the known directory.
func FindVehicleByPlate(plate string) (KnownVehicle, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(plate))
	for _, v := range knownVehicles {
		if v.LicensePlate == normalized {
			return v, true
		}
	}
	return KnownVehicle{}, false
}

// InitialSlots returns a fresh copy of the kiosk's slot layout. A2 starts
// occupied by a demo vehicle so the wait-time display has content.
func InitialSlots() []models.ChargingSlot {
	return []models.ChargingSlot{
		{ID: "A1", Status: models.SlotAvailable},
		{
			ID:     "A2",
			Status: models.SlotOccupied,
			Vehicle: &models.VehicleInfo{
				LicensePlate: "기존-EV",
				Model:        "Nissan Leaf",
			},
			User:                    "기존-EV",
			CurrentChargeKW:         60,
			EstimatedCompletionTime: "10분",
		},
		{ID: "B1", Status: models.SlotAvailable},
		{ID: "B2", Status: models.SlotMaintenance},
	}
}

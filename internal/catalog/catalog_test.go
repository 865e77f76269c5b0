package catalog

import (
	"testing"

	"evkiosk/internal/models"
)

func TestRatePerKwh(t *testing.T) {
	if got := RatePerKwh(ConnectorACType1); got != 200 {
		t.Fatalf("expected 200 for AC, got %d", got)
	}
	if got := RatePerKwh(ConnectorCCSCombo2); got != 300 {
		t.Fatalf("expected 300 for CCS2, got %d", got)
	}
	if got := RatePerKwh("chademo"); got != 300 {
		t.Fatalf("expected fallback rate for unknown connector, got %d", got)
	}
}

func TestFindVehicleByPlateNormalizes(t *testing.T) {
	vehicle, ok := FindVehicleByPlate("  12가3456  ")
	if !ok {
		t.Fatal("expected known plate to match with surrounding whitespace")
	}
	if vehicle.BrandID != "hyundai" || vehicle.ModelID != "ioniq5" {
		t.Fatalf("unexpected directory entry: %+v", vehicle)
	}

	if _, ok := FindVehicleByPlate("00없0000"); ok {
		t.Fatal("expected unknown plate to miss")
	}
}

func TestInitialSlotsReturnsFreshCopies(t *testing.T) {
	first := InitialSlots()
	first[0].Status = models.SlotOccupied

	second := InitialSlots()
	if second[0].Status != models.SlotAvailable {
		t.Fatal("expected each call to return an independent layout")
	}

	var occupied, maintenance int
	for _, slot := range second {
		switch slot.Status {
		case models.SlotOccupied:
			occupied++
		case models.SlotMaintenance:
			maintenance++
		}
	}
	if occupied != 1 || maintenance != 1 {
		t.Fatalf("expected one occupied and one maintenance slot, got %d/%d", occupied, maintenance)
	}
}

func TestBrandByID(t *testing.T) {
	brand, ok := BrandByID("tesla")
	if !ok || len(brand.Models) == 0 {
		t.Fatalf("expected tesla with models, got %+v", brand)
	}
	if _, ok := BrandByID("rivian"); ok {
		t.Fatal("expected unknown brand to miss")
	}
}

package kiosk

import (
	"testing"

	"evkiosk/internal/models"
)

func TestGuardChargingInProgressNeedsPrerequisites(t *testing.T) {
	data := newTestSession()
	result := Guard(StateChargingInProgress, data, passthroughTranslate)
	if result.State != StateInitialWelcome || !result.Reset {
		t.Fatalf("expected reset for charging without prerequisites, got %+v", result)
	}
	if result.Notice == nil || result.Notice.TitleKey != "toast.error.noSlotInfo.title" {
		t.Fatalf("expected no-slot-info notice, got %+v", result.Notice)
	}
}

func TestGuardPromptConnectRoutesBackThroughSlotSelection(t *testing.T) {
	data := newTestSession()
	data.VehicleInfo = &models.VehicleInfo{LicensePlate: "12가3456"}

	result := Guard(StateInitialPromptConnect, data, passthroughTranslate)
	if result.State != StateSelectConnectorType {
		t.Fatalf("expected reroute to connector selection, got %s", result.State)
	}
	if result.Reset {
		t.Fatal("slot reroute must not reset the session")
	}
}

func TestGuardPromptConnectQueuesWhenNoSlotFree(t *testing.T) {
	data := newTestSession()
	data.VehicleInfo = &models.VehicleInfo{LicensePlate: "12가3456"}
	for i := range data.CurrentSlots {
		if data.CurrentSlots[i].Status == models.SlotAvailable {
			data.CurrentSlots[i].Status = models.SlotMaintenance
		}
	}

	result := Guard(StateInitialPromptConnect, data, passthroughTranslate)
	if result.State != StateQueue {
		t.Fatalf("expected queue when nothing is free, got %s", result.State)
	}
}

func TestGuardPaymentScreenNeedsBill(t *testing.T) {
	data := newTestSession()
	result := Guard(StateChargingCompletePayment, data, passthroughTranslate)
	if result.State != StateInitialWelcome || !result.Reset {
		t.Fatalf("expected reset without final bill, got %+v", result)
	}
}

func TestGuardNormalizesStaleFields(t *testing.T) {
	data := newTestSession()
	data.ChargingErrorMessage = "stale"
	data.FinalBill = &models.BillDetails{TotalCost: 100}

	result := Guard(StateInitialWelcome, data, passthroughTranslate)
	if result.State != StateInitialWelcome {
		t.Fatalf("expected state kept, got %s", result.State)
	}
	if data.ChargingErrorMessage != "" {
		t.Fatal("expected stale error message cleared outside error state")
	}
	if data.FinalBill != nil {
		t.Fatal("expected stale bill cleared outside payment states")
	}
}

func TestGuardKeepsBillOnPaymentAndThankYou(t *testing.T) {
	data := newTestSession()
	data.FinalBill = &models.BillDetails{TotalCost: 250}

	Guard(StateThankYou, data, passthroughTranslate)
	if data.FinalBill == nil {
		t.Fatal("expected bill kept on thank-you screen")
	}
}

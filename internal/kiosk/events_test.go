package kiosk

import (
	"testing"

	"evkiosk/internal/models"
)

func TestDecodeEventPayloadVariants(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"manual_plate_submitted","plate":"12가3456"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	plate, ok := ev.(EvManualPlateSubmitted)
	if !ok {
		t.Fatalf("expected EvManualPlateSubmitted, got %T", ev)
	}
	if plate.Plate != "12가3456" {
		t.Fatalf("expected plate payload, got %q", plate.Plate)
	}

	ev, err = DecodeEvent([]byte(`{"type":"payment_processed","receiptChoice":"none"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	payment, ok := ev.(EvPaymentProcessed)
	if !ok {
		t.Fatalf("expected EvPaymentProcessed, got %T", ev)
	}
	if payment.ReceiptChoice != models.ReceiptNone {
		t.Fatalf("expected receipt choice none, got %q", payment.ReceiptChoice)
	}
}

func TestDecodeEventBareVariants(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"consent_agree"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := ev.(EvConsentAgree); !ok {
		t.Fatalf("expected EvConsentAgree, got %T", ev)
	}
}

func TestDecodeEventRejectsUnknownType(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"type":"reboot_kiosk"}`)); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestDecodeEventRejectsEngineInternalType(t *testing.T) {
	// Completion is produced by the charging engine, never by the wire.
	if _, err := DecodeEvent([]byte(`{"type":"charging_stopped_or_completed"}`)); err == nil {
		t.Fatal("expected completion event to be unreachable from the wire")
	}
}

func TestDecodeEventRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"type":`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

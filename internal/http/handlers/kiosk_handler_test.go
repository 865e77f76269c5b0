package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"evkiosk/internal/auth"
	"evkiosk/internal/http/middleware"
	"evkiosk/internal/kiosk"
	"evkiosk/internal/storage"
)

func newHandlerController(t *testing.T) *kiosk.Controller {
	t.Helper()
	persister := kiosk.NewPersister(storage.NewMemoryScope(), storage.NewMemoryScope(), zap.NewNop())
	c := kiosk.NewController(context.Background(), kiosk.ControllerConfig{
		KioskID:            "kiosk-test",
		Persister:          persister,
		Logger:             zap.NewNop(),
		ChargeTickInterval: time.Millisecond,
	})
	t.Cleanup(c.Close)
	return c
}

func TestKioskHandlerStateReturnsSnapshot(t *testing.T) {
	handler := NewKioskHandler(newHandlerController(t), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.State(rec, httptest.NewRequest(http.MethodGet, "/kiosk/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot kiosk.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snapshot.State != kiosk.StateInitialWelcome {
		t.Fatalf("expected welcome state, got %s", snapshot.State)
	}
}

func TestKioskHandlerEventDispatches(t *testing.T) {
	handler := NewKioskHandler(newHandlerController(t), zap.NewNop())

	body := strings.NewReader(`{"type":"manual_plate_requested"}`)
	rec := httptest.NewRecorder()
	handler.Event(rec, httptest.NewRequest(http.MethodPost, "/kiosk/events", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var snapshot kiosk.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snapshot.State != kiosk.StateManualPlateInput {
		t.Fatalf("expected manual plate input, got %s", snapshot.State)
	}
}

func TestKioskHandlerEventRejectsUnknownType(t *testing.T) {
	handler := NewKioskHandler(newHandlerController(t), zap.NewNop())

	body := strings.NewReader(`{"type":"open_pod_bay_doors"}`)
	rec := httptest.NewRecorder()
	handler.Event(rec, httptest.NewRequest(http.MethodPost, "/kiosk/events", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown event, got %d", rec.Code)
	}
}

func TestOperatorLoginAndProtectedEndpoint(t *testing.T) {
	controller := newHandlerController(t)

	hash, err := auth.HashPin("2580")
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	pins, err := auth.NewBcryptPinVerifier(hash)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	operator := NewOperatorHandler(controller, pins, tokens, nil, "kiosk-test", zap.NewNop())

	rec := httptest.NewRecorder()
	operator.Login(rec, httptest.NewRequest(http.MethodPost, "/operator/login", strings.NewReader(`{"pin":"0000"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	operator.Login(rec, httptest.NewRequest(http.MethodPost, "/operator/login", strings.NewReader(`{"pin":"2580"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for correct pin, got %d", rec.Code)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&loginResp); err != nil || loginResp.Token == "" {
		t.Fatalf("expected a token, got %q err %v", loginResp.Token, err)
	}

	protected := middleware.OperatorAuth(tokens)(http.HandlerFunc(operator.Reset))

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operator/reset", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/operator/reset", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOperatorSlotMaintenanceErrors(t *testing.T) {
	controller := newHandlerController(t)
	operator := NewOperatorHandler(controller, nil, nil, nil, "kiosk-test", zap.NewNop())

	rec := httptest.NewRecorder()
	operator.SlotMaintenance(rec, httptest.NewRequest(http.MethodPost, "/operator/slots/maintenance", strings.NewReader(`{"slotId":"Z9","enabled":true}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slot, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	operator.SlotMaintenance(rec, httptest.NewRequest(http.MethodPost, "/operator/slots/maintenance", strings.NewReader(`{"slotId":"A2","enabled":true}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for occupied slot, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	operator.SlotMaintenance(rec, httptest.NewRequest(http.MethodPost, "/operator/slots/maintenance", strings.NewReader(`{"slotId":"B1","enabled":true}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOperatorReceiptsUnavailableWithoutDatabase(t *testing.T) {
	operator := NewOperatorHandler(newHandlerController(t), nil, nil, nil, "kiosk-test", zap.NewNop())

	rec := httptest.NewRecorder()
	operator.Receipts(rec, httptest.NewRequest(http.MethodGet, "/operator/receipts", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without receipt storage, got %d", rec.Code)
	}
}

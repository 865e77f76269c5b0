package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"evkiosk/internal/auth"
	"evkiosk/internal/kiosk"
	"evkiosk/internal/models"
)

const defaultReceiptLimit = 20

// ReceiptLister reads back stored receipts for the operator view.
type ReceiptLister interface {
	RecentByKiosk(ctx context.Context, kioskID string, limit int) ([]models.Receipt, error)
}

// OperatorHandler covers the maintenance surface: PIN login, forced
// session reset, slot servicing, and receipt history.
type OperatorHandler struct {
	controller *kiosk.Controller
	pins       auth.PinVerifier
	tokens     *auth.TokenService
	receipts   ReceiptLister
	kioskID    string
	logger     *zap.Logger
}

func NewOperatorHandler(
	controller *kiosk.Controller,
	pins auth.PinVerifier,
	tokens *auth.TokenService,
	receipts ReceiptLister,
	kioskID string,
	logger *zap.Logger,
) *OperatorHandler {
	return &OperatorHandler{
		controller: controller,
		pins:       pins,
		tokens:     tokens,
		receipts:   receipts,
		kioskID:    kioskID,
		logger:     logger,
	}
}

// Login exchanges the operator PIN for a bearer token.
func (h *OperatorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pin string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.pins.Verify(req.Pin); err != nil {
		h.logger.Warn("operator login rejected", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "invalid pin")
		return
	}

	token, err := h.tokens.GenerateToken(h.kioskID)
	if err != nil {
		h.logger.Error("failed to generate operator token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Reset forces the kiosk back to a fresh session.
func (h *OperatorHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("operator reset requested")
	snapshot := h.controller.Dispatch(r.Context(), kiosk.EvNewSession{})
	writeJSON(w, http.StatusOK, snapshot)
}

// SlotMaintenance takes a slot in or out of service.
func (h *OperatorHandler) SlotMaintenance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SlotID  string `json:"slotId"`
		Enabled bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SlotID == "" {
		writeError(w, http.StatusBadRequest, "slotId is required")
		return
	}

	snapshot, err := h.controller.SetSlotMaintenance(r.Context(), req.SlotID, req.Enabled)
	if err != nil {
		switch {
		case errors.Is(err, kiosk.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, "slot not found")
		case errors.Is(err, kiosk.ErrSlotOccupied):
			writeError(w, http.StatusConflict, "slot is occupied")
		default:
			h.logger.Error("failed to update slot", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update slot")
		}
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Receipts lists recent receipts for this kiosk.
func (h *OperatorHandler) Receipts(w http.ResponseWriter, r *http.Request) {
	if h.receipts == nil {
		writeError(w, http.StatusServiceUnavailable, "receipt storage is not configured")
		return
	}

	limit := defaultReceiptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	receipts, err := h.receipts.RecentByKiosk(r.Context(), h.kioskID, limit)
	if err != nil {
		h.logger.Error("failed to list receipts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list receipts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"receipts": receipts})
}

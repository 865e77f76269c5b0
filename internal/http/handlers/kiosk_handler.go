package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"evkiosk/internal/kiosk"
)

const maxEventBody = 16 << 10

// KioskHandler exposes the session controller over HTTP. The presentation
// layer posts UI events here and reads back snapshots.
type KioskHandler struct {
	controller *kiosk.Controller
	logger     *zap.Logger
}

func NewKioskHandler(controller *kiosk.Controller, logger *zap.Logger) *KioskHandler {
	return &KioskHandler{controller: controller, logger: logger}
}

// State returns the current snapshot.
func (h *KioskHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Event decodes a single UI event and dispatches it.
func (h *KioskHandler) Event(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	ev, err := kiosk.DecodeEvent(body)
	if err != nil {
		h.logger.Warn("rejected kiosk event", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot := h.controller.Dispatch(r.Context(), ev)
	writeJSON(w, http.StatusOK, snapshot)
}

// Visibility reports whether the kiosk display is in front of a user.
func (h *KioskHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.controller.SetVisible(req.Visible))
}

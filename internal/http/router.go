package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	KioskState      http.HandlerFunc
	KioskEvents     http.HandlerFunc
	KioskVisibility http.HandlerFunc
	KioskWS         http.HandlerFunc
	OperatorLogin   http.HandlerFunc
	OperatorReset   http.HandlerFunc
	SlotMaintenance http.HandlerFunc
	Receipts        http.HandlerFunc
	Health          http.HandlerFunc

	// OperatorAuth guards the maintenance endpoints.
	OperatorAuth func(http.Handler) http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.KioskState != nil {
		mux.Handle("/kiosk/state", method(http.MethodGet, routes.KioskState))
	}
	if routes.KioskEvents != nil {
		mux.Handle("/kiosk/events", method(http.MethodPost, routes.KioskEvents))
	}
	if routes.KioskVisibility != nil {
		mux.Handle("/kiosk/visibility", method(http.MethodPost, routes.KioskVisibility))
	}
	if routes.KioskWS != nil {
		mux.Handle("/kiosk/ws", method(http.MethodGet, routes.KioskWS))
	}
	if routes.OperatorLogin != nil {
		mux.Handle("/operator/login", method(http.MethodPost, routes.OperatorLogin))
	}

	protect := routes.OperatorAuth
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	if routes.OperatorReset != nil {
		mux.Handle("/operator/reset", protect(method(http.MethodPost, routes.OperatorReset)))
	}
	if routes.SlotMaintenance != nil {
		mux.Handle("/operator/slots/maintenance", protect(method(http.MethodPost, routes.SlotMaintenance)))
	}
	if routes.Receipts != nil {
		mux.Handle("/operator/receipts", protect(method(http.MethodGet, routes.Receipts)))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}

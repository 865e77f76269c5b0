package kiosk

import (
	"encoding/json"
	"fmt"

	"evkiosk/internal/models"
)

// Event is one member of the closed set of things that can happen to the
// kiosk. Each variant carries its own payload shape; transition handlers
// match on the concrete type.
type Event interface {
	Kind() string
}

// EvProceedFromCamera leaves the camera gate without a scan.
type EvProceedFromCamera struct{}

// EvCameraScanComplete reports a (simulated) plate scan.
type EvCameraScanComplete struct{}

// EvProceedStandard starts the guided flow from the welcome screen.
type EvProceedStandard struct{}

// EvProceedQuick starts the quick flow from the welcome screen.
type EvProceedQuick struct{}

// EvConsentAgree accepts the data consent terms.
type EvConsentAgree struct{}

// EvConsentDisagree declines the data consent terms.
type EvConsentDisagree struct{}

// EvManualPlateRequested switches to manual plate entry.
type EvManualPlateRequested struct{}

// EvManualPlateSubmitted carries a manually typed license plate.
type EvManualPlateSubmitted struct {
	Plate string `json:"plate"`
}

// EvBrandSelected picks a car brand from the catalog.
type EvBrandSelected struct {
	BrandID string `json:"brandId"`
}

// EvModelSelected carries the (possibly partial) chosen model details.
type EvModelSelected struct {
	Vehicle models.VehicleInfo `json:"vehicle"`
}

// EvSelectModelManually jumps back into brand selection.
type EvSelectModelManually struct{}

// EvVehicleConfirmed accepts the displayed vehicle details.
type EvVehicleConfirmed struct {
	Vehicle models.VehicleInfo `json:"vehicle"`
}

// EvPaymentAuthSuccess reports a successful pre-payment authorization.
type EvPaymentAuthSuccess struct{}

// EvConnectorSelected picks a connector type.
type EvConnectorSelected struct {
	ConnectorID string `json:"connectorId"`
}

// EvChargerConnected reports that the cable was plugged in.
type EvChargerConnected struct{}

// EvConnectionDetected reports that the charger handshake finished.
type EvConnectionDetected struct{}

// EvStartChargingConfirmed confirms the start of charging.
type EvStartChargingConfirmed struct{}

// EvStopChargingRequested asks for a manual stop of the active session.
type EvStopChargingRequested struct{}

// EvChargingStoppedOrCompleted finalizes charging with the session bill.
type EvChargingStoppedOrCompleted struct {
	Bill models.BillDetails `json:"bill"`
}

// EvSimulateChargingError injects a charging fault by message key.
type EvSimulateChargingError struct {
	MessageKey string `json:"messageKey"`
}

// EvChargingErrorRetry retries after a charging fault.
type EvChargingErrorRetry struct{}

// EvPaymentProcessed finishes payment with a receipt choice.
type EvPaymentProcessed struct {
	ReceiptChoice models.ReceiptChoice `json:"receiptChoice"`
}

// EvSlotVacated dismisses the vacate-slot reminder.
type EvSlotVacated struct{}

// EvLanguageSwitched toggles the display language.
type EvLanguageSwitched struct{}

// EvNewSession resets the kiosk for the next customer.
type EvNewSession struct{}

func (EvProceedFromCamera) Kind() string          { return "proceed_from_camera" }
func (EvCameraScanComplete) Kind() string         { return "camera_scan_complete" }
func (EvProceedStandard) Kind() string            { return "proceed_standard" }
func (EvProceedQuick) Kind() string               { return "proceed_quick" }
func (EvConsentAgree) Kind() string               { return "consent_agree" }
func (EvConsentDisagree) Kind() string            { return "consent_disagree" }
func (EvManualPlateRequested) Kind() string       { return "manual_plate_requested" }
func (EvManualPlateSubmitted) Kind() string       { return "manual_plate_submitted" }
func (EvBrandSelected) Kind() string              { return "brand_selected" }
func (EvModelSelected) Kind() string              { return "model_selected" }
func (EvSelectModelManually) Kind() string        { return "select_model_manually" }
func (EvVehicleConfirmed) Kind() string           { return "vehicle_confirmed" }
func (EvPaymentAuthSuccess) Kind() string         { return "payment_auth_success" }
func (EvConnectorSelected) Kind() string          { return "connector_selected" }
func (EvChargerConnected) Kind() string           { return "charger_connected" }
func (EvConnectionDetected) Kind() string         { return "connection_detected" }
func (EvStartChargingConfirmed) Kind() string     { return "start_charging_confirmed" }
func (EvStopChargingRequested) Kind() string      { return "stop_charging_requested" }
func (EvChargingStoppedOrCompleted) Kind() string { return "charging_stopped_or_completed" }
func (EvSimulateChargingError) Kind() string      { return "simulate_charging_error" }
func (EvChargingErrorRetry) Kind() string         { return "charging_error_retry" }
func (EvPaymentProcessed) Kind() string           { return "payment_processed" }
func (EvSlotVacated) Kind() string                { return "slot_vacated" }
func (EvLanguageSwitched) Kind() string           { return "language_switched" }
func (EvNewSession) Kind() string                 { return "new_session" }

// DecodeEvent turns a wire payload {"type": ..., ...fields} into a typed
// event. Unknown types are an error; the set is closed on purpose.
func DecodeEvent(data []byte) (Event, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("kiosk: decode event: %w", err)
	}

	switch probe.Type {
	case "proceed_from_camera":
		return EvProceedFromCamera{}, nil
	case "camera_scan_complete":
		return EvCameraScanComplete{}, nil
	case "proceed_standard":
		return EvProceedStandard{}, nil
	case "proceed_quick":
		return EvProceedQuick{}, nil
	case "consent_agree":
		return EvConsentAgree{}, nil
	case "consent_disagree":
		return EvConsentDisagree{}, nil
	case "manual_plate_requested":
		return EvManualPlateRequested{}, nil
	case "manual_plate_submitted":
		var ev EvManualPlateSubmitted
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "brand_selected":
		var ev EvBrandSelected
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "model_selected":
		var ev EvModelSelected
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "select_model_manually":
		return EvSelectModelManually{}, nil
	case "vehicle_confirmed":
		var ev EvVehicleConfirmed
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "payment_auth_success":
		return EvPaymentAuthSuccess{}, nil
	case "connector_selected":
		var ev EvConnectorSelected
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "charger_connected":
		return EvChargerConnected{}, nil
	case "connection_detected":
		return EvConnectionDetected{}, nil
	case "start_charging_confirmed":
		return EvStartChargingConfirmed{}, nil
	case "stop_charging_requested":
		return EvStopChargingRequested{}, nil
	case "simulate_charging_error":
		var ev EvSimulateChargingError
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "charging_error_retry":
		return EvChargingErrorRetry{}, nil
	case "payment_processed":
		var ev EvPaymentProcessed
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("kiosk: decode %s payload: %w", probe.Type, err)
		}
		return ev, nil
	case "slot_vacated":
		return EvSlotVacated{}, nil
	case "language_switched":
		return EvLanguageSwitched{}, nil
	case "new_session":
		return EvNewSession{}, nil
	default:
		return nil, fmt.Errorf("kiosk: unknown event type %q", probe.Type)
	}
}

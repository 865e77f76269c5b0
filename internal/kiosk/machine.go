package kiosk

import (
	"fmt"
	"math/rand"

	"evkiosk/internal/catalog"
	"evkiosk/internal/models"
)

// Translation keys the machine writes into session data.
const (
	unknownModelKey     = "selectCarModel.unknownModel"
	manualPlateKey      = "selectCarModel.manualEntryLicensePlate"
	portLocationGeneric = "selectCarModel.portLocationGeneric"
	calculatingKey      = "waitTimeDisplay.calculating"
)

// scannedModelKey is the placeholder model attached to synthetic scans.
const scannedModelKey = "carModel.tesla.model_y"

// plateSuffix generates the numeric part of synthetic plates. Overridden
// in tests.
var plateSuffix = func() int {
	return rand.Intn(9000) + 1000
}

// Notice is a non-blocking user-visible message produced by a transition.
type Notice struct {
	TitleKey       string
	DescriptionKey string
	Severity       string
}

// Outcome is the result of applying one event to the machine.
type Outcome struct {
	State     State
	Reset     bool
	Notice    *Notice
	Log       string
	Unhandled bool
}

// Transition applies ev to (current, data) and returns the next state.
// Session data is mutated in place; the caller owns the working copy.
// No (state, event) pair is an error: pairs outside the table leave the
// state untouched and are flagged Unhandled for diagnostics.
func Transition(current State, data *SessionData, ev Event, translate TranslateFunc) Outcome {
	switch e := ev.(type) {
	case EvLanguageSwitched:
		if data.Language == models.LanguageKorean {
			data.Language = models.LanguageEnglish
		} else {
			data.Language = models.LanguageKorean
		}
		return Outcome{State: current, Log: "language_switched"}

	case EvNewSession:
		return resetOutcome(data, translate, "session_reset", nil)

	case EvProceedFromCamera:
		if current == StatePreProcessingCamera || current == StateScanning {
			return Outcome{State: StateInitialWelcome, Log: "camera_skipped"}
		}

	case EvCameraScanComplete:
		if current == StatePreProcessingCamera || current == StateScanning || current == StateInitialWelcome {
			data.VehicleInfo = syntheticVehicle("AI")
			return Outcome{State: StateDataConsent, Log: "camera_scan_complete"}
		}

	case EvProceedStandard:
		if current == StateInitialWelcome {
			data.CurrentMode = models.ModeStandard
			data.VehicleInfo = syntheticVehicle("AI-STD")
			return Outcome{State: StateDataConsent, Log: "standard_mode_scan_simulated"}
		}

	case EvProceedQuick:
		if current == StateInitialWelcome {
			data.CurrentMode = models.ModeQuick
			data.VehicleInfo = syntheticVehicle("AI-QCK")
			return Outcome{State: StateDataConsent, Log: "quick_start_scan_simulated"}
		}

	case EvConsentAgree:
		if current == StateDataConsent {
			data.ConsentSkipped = false
			return Outcome{State: StateVehicleConfirmation, Log: "consent_agreed"}
		}

	case EvConsentDisagree:
		if current == StateDataConsent {
			return resetOutcome(data, translate, "consent_disagreed", &Notice{
				TitleKey:       "dataConsent.toast.disagreeWarning.title",
				DescriptionKey: "dataConsent.toast.disagreeWarning.description",
				Severity:       "destructive",
			})
		}

	case EvManualPlateRequested:
		switch current {
		case StateInitialWelcome, StateDataConsent, StateVehicleConfirmation:
			return Outcome{State: StateManualPlateInput, Log: "manual_plate_requested"}
		}

	case EvManualPlateSubmitted:
		if current == StateManualPlateInput {
			if known, ok := catalog.FindVehicleByPlate(e.Plate); ok {
				data.VehicleInfo = &models.VehicleInfo{
					LicensePlate: e.Plate,
					Model:        fmt.Sprintf("carModel.%s.%s", known.BrandID, known.ModelID),
					Confidence:   1.0,
				}
				data.SelectedBrandID = known.BrandID
				return Outcome{State: StatePrePaymentAuth, Log: "manual_plate_known"}
			}
			data.VehicleInfo = &models.VehicleInfo{
				LicensePlate: e.Plate,
				Model:        unknownModelKey,
				Confidence:   1.0,
			}
			data.SelectedBrandID = ""
			return Outcome{State: StateSelectCarBrand, Log: "manual_plate_unknown"}
		}

	case EvBrandSelected:
		if current == StateSelectCarBrand {
			data.SelectedBrandID = e.BrandID
			return Outcome{State: StateSelectCarModel, Log: "brand_selected"}
		}

	case EvModelSelected:
		if current == StateSelectCarModel {
			mergeModelSelection(data, e.Vehicle, translate)
			return Outcome{State: StatePrePaymentAuth, Log: "model_selected"}
		}

	case EvSelectModelManually:
		switch current {
		case StateVehicleConfirmation, StateSelectConnectorType, StateSelectCarModel:
			return Outcome{State: StateSelectCarBrand, Log: "manual_model_selection"}
		}

	case EvVehicleConfirmed:
		if current == StateVehicleConfirmation {
			vehicle := e.Vehicle
			data.VehicleInfo = &vehicle
			return Outcome{State: StatePrePaymentAuth, Log: "vehicle_confirmed"}
		}

	case EvPaymentAuthSuccess:
		if current == StatePrePaymentAuth {
			if data.AssignedSlotID == "" {
				slotID, ok := data.firstAvailableSlot()
				if !ok {
					return Outcome{State: StateQueue, Log: "queue_entered"}
				}
				data.AssignedSlotID = slotID
			}
			return Outcome{State: StateSelectConnectorType, Log: "payment_auth_success"}
		}

	case EvConnectorSelected:
		if current == StateSelectConnectorType {
			data.SelectedConnector = e.ConnectorID
			return Outcome{State: StateInitialPromptConnect, Log: "connector_selected"}
		}

	case EvChargerConnected:
		if current == StateInitialPromptConnect {
			return Outcome{State: StateDetectingConnection, Log: "charger_connected"}
		}

	case EvConnectionDetected:
		if current == StateDetectingConnection {
			// Explicit confirmation is always required, quick mode included.
			return Outcome{State: StateConfirmStartCharging, Log: "connection_detected"}
		}

	case EvStartChargingConfirmed:
		if current == StateConfirmStartCharging {
			if data.AssignedSlotID == "" || data.VehicleInfo == nil || data.SelectedConnector == "" {
				return resetOutcome(data, translate, "charging_start_rejected", &Notice{
					TitleKey:       "toast.error.noSlotInfo.title",
					DescriptionKey: "toast.error.noSlotInfo.description",
					Severity:       "destructive",
				})
			}
			occupyAssignedSlot(data, translate)
			return Outcome{State: StateChargingInProgress, Log: "charging_started"}
		}

	case EvChargingStoppedOrCompleted:
		if current == StateChargingInProgress {
			bill := e.Bill
			data.FinalBill = &bill
			releaseAssignedSlot(data)
			return Outcome{State: StateChargingCompletePayment, Log: "charging_completed"}
		}

	case EvSimulateChargingError:
		switch current {
		case StateChargingInProgress, StateDetectingConnection, StateInitialPromptConnect:
			data.ChargingErrorMessage = translate(e.MessageKey, nil)
			return Outcome{State: StateChargingError, Log: "charging_error_simulated"}
		}

	case EvChargingErrorRetry:
		if current == StateChargingError {
			data.ChargingErrorMessage = ""
			return Outcome{State: StateSelectConnectorType, Log: "charging_error_retry"}
		}

	case EvPaymentProcessed:
		if current == StateChargingCompletePayment {
			if !models.ValidReceiptChoice(e.ReceiptChoice) {
				break
			}
			data.ReceiptPreference = e.ReceiptChoice
			return Outcome{State: StateThankYou, Log: "payment_processed"}
		}

	case EvSlotVacated:
		if current == StateVacateSlotReminder {
			return resetOutcome(data, translate, "slot_vacated", nil)
		}
	}

	return Outcome{State: current, Unhandled: true}
}

func resetOutcome(data *SessionData, translate TranslateFunc, log string, notice *Notice) Outcome {
	*data = *data.Reset(translate)
	return Outcome{State: StateInitialWelcome, Reset: true, Notice: notice, Log: log}
}

func syntheticVehicle(platePrefix string) *models.VehicleInfo {
	return &models.VehicleInfo{
		LicensePlate:            fmt.Sprintf("%s-%d", platePrefix, plateSuffix()),
		Model:                   scannedModelKey,
		Confidence:              0.98,
		PortLocationDescription: portLocationGeneric,
		RecommendedConnector:    catalog.DefaultConnector,
	}
}

// mergeModelSelection combines the partial model details with whatever the
// session already knows, then applies the brand-specific connector
// recommendation.
func mergeModelSelection(data *SessionData, partial models.VehicleInfo, translate TranslateFunc) {
	recommended := partial.RecommendedConnector
	if data.SelectedBrandID != "" {
		recommended = catalog.RecommendedConnectorForBrand(data.SelectedBrandID)
	}
	if recommended == "" {
		recommended = catalog.DefaultConnector
	}

	plate := partial.LicensePlate
	if plate == "" && data.VehicleInfo != nil {
		plate = data.VehicleInfo.LicensePlate
	}
	if plate == "" {
		plate = translate(manualPlateKey, nil)
	}

	model := partial.Model
	if model == "" {
		model = unknownModelKey
	}

	confidence := partial.Confidence
	if confidence == 0 {
		confidence = 1.0
	}

	portLocation := partial.PortLocationDescription
	if portLocation == "" {
		portLocation = portLocationGeneric
	}

	data.VehicleInfo = &models.VehicleInfo{
		LicensePlate:            plate,
		Model:                   model,
		Confidence:              confidence,
		PortLocationDescription: portLocation,
		ConnectionImageURL:      partial.ConnectionImageURL,
		RecommendedConnector:    recommended,
	}
}

// occupyAssignedSlot marks the session's slot as occupied by the current
// vehicle with zeroed live metrics.
func occupyAssignedSlot(data *SessionData, translate TranslateFunc) {
	idx := data.slotIndex(data.AssignedSlotID)
	if idx < 0 {
		return
	}
	slot := &data.CurrentSlots[idx]
	slot.Status = models.SlotOccupied
	vehicle := *data.VehicleInfo
	slot.Vehicle = &vehicle
	slot.User = vehicle.LicensePlate
	slot.CurrentChargeKW = 0
	slot.EstimatedCompletionTime = translate(calculatingKey, nil)
}

// releaseAssignedSlot returns the session's slot to the pool and
// recomputes whether anyone else is still charging.
func releaseAssignedSlot(data *SessionData) {
	if data.AssignedSlotID == "" {
		return
	}
	idx := data.slotIndex(data.AssignedSlotID)
	if idx >= 0 {
		slot := &data.CurrentSlots[idx]
		slot.Status = models.SlotAvailable
		slot.Vehicle = nil
		slot.User = ""
		slot.CurrentChargeKW = 0
		slot.EstimatedCompletionTime = ""
	}
	otherOccupied := false
	for i := range data.CurrentSlots {
		if data.CurrentSlots[i].Status == models.SlotOccupied {
			otherOccupied = true
			break
		}
	}
	data.IsQueueNotEmpty = otherOccupied
}

package kiosk

// State identifies the active kiosk screen. Values match what the
// presentation layer stores and renders, so they survive round-trips
// through the persistence scopes unchanged.
type State string

const (
	StatePreProcessingCamera     State = "PRE_PROCESSING_CAMERA_FEED"
	StateInitialWelcome          State = "INITIAL_WELCOME"
	StateDataConsent             State = "DATA_CONSENT"
	StateManualPlateInput        State = "MANUAL_PLATE_INPUT"
	StateSelectCarBrand          State = "SELECT_CAR_BRAND"
	StateSelectCarModel          State = "SELECT_CAR_MODEL"
	StateVehicleConfirmation     State = "VEHICLE_CONFIRMATION"
	StatePrePaymentAuth          State = "PRE_PAYMENT_AUTH"
	StateSelectConnectorType     State = "SELECT_CONNECTOR_TYPE"
	StateInitialPromptConnect    State = "INITIAL_PROMPT_CONNECT"
	StateDetectingConnection     State = "DETECTING_CONNECTION"
	StateConfirmStartCharging    State = "CONFIRM_START_CHARGING"
	StateChargingInProgress      State = "CHARGING_IN_PROGRESS"
	StateChargingCompletePayment State = "CHARGING_COMPLETE_PAYMENT"
	StateVacateSlotReminder      State = "VACATE_SLOT_REMINDER"
	StateThankYou                State = "THANK_YOU"
	StateQueue                   State = "QUEUE"
	StateChargingError           State = "CHARGING_ERROR"
	StateScanning                State = "SCANNING"
	StateAssigningSlot           State = "ASSIGNING_SLOT"
)

var validStates = map[State]struct{}{
	StatePreProcessingCamera:     {},
	StateInitialWelcome:          {},
	StateDataConsent:             {},
	StateManualPlateInput:        {},
	StateSelectCarBrand:          {},
	StateSelectCarModel:          {},
	StateVehicleConfirmation:     {},
	StatePrePaymentAuth:          {},
	StateSelectConnectorType:     {},
	StateInitialPromptConnect:    {},
	StateDetectingConnection:     {},
	StateConfirmStartCharging:    {},
	StateChargingInProgress:      {},
	StateChargingCompletePayment: {},
	StateVacateSlotReminder:      {},
	StateThankYou:                {},
	StateQueue:                   {},
	StateChargingError:           {},
	StateScanning:                {},
	StateAssigningSlot:           {},
}

// ParseState maps a stored string onto a known state. Unknown values are
// rejected so the caller can fall back to a fresh InitialWelcome.
func ParseState(raw string) (State, bool) {
	s := State(raw)
	_, ok := validStates[s]
	return s, ok
}

// IdleEligible reports whether the inactivity timer runs in this state.
func (s State) IdleEligible() bool {
	return s == StateThankYou || s == StateVacateSlotReminder
}

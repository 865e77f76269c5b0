package kiosk

// GuardResult says where the kiosk actually lands after checking that the
// target state has the data it needs to render.
type GuardResult struct {
	State  State
	Reset  bool
	Notice *Notice
	Reason string
}

// Guard validates that a state's required session data is present. States
// whose prerequisites are missing resolve to a safe alternative instead of
// crashing the presentation layer: usually a full reset to the welcome
// screen, except for a missing slot assignment which routes back through
// slot selection or the queue. It also normalizes fields whose invariants
// bind them to specific states.
func Guard(state State, data *SessionData, translate TranslateFunc) GuardResult {
	switch state {
	case StateVehicleConfirmation, StateDetectingConnection:
		if data.VehicleInfo == nil {
			return guardReset(data, translate, "missing vehicle info", nil)
		}

	case StateInitialPromptConnect:
		if data.AssignedSlotID == "" {
			if data.anySlotAvailable() {
				return GuardResult{State: StateSelectConnectorType, Reason: "missing slot assignment"}
			}
			return GuardResult{State: StateQueue, Reason: "missing slot assignment, none available"}
		}
		if data.VehicleInfo == nil {
			return guardReset(data, translate, "missing vehicle info", nil)
		}

	case StateChargingInProgress:
		if data.AssignedSlotID == "" || data.VehicleInfo == nil || data.SelectedConnector == "" {
			return guardReset(data, translate, "missing charging prerequisites", &Notice{
				TitleKey:       "toast.error.noSlotInfo.title",
				DescriptionKey: "toast.error.noSlotInfo.description",
				Severity:       "destructive",
			})
		}

	case StateChargingCompletePayment:
		if data.FinalBill == nil {
			return guardReset(data, translate, "missing final bill", &Notice{
				TitleKey:       "error.genericTitle",
				DescriptionKey: "toast.error.noSlotInfo.description",
				Severity:       "destructive",
			})
		}
	}

	if state != StateChargingError && data.ChargingErrorMessage != "" {
		data.ChargingErrorMessage = ""
	}
	if state != StateChargingCompletePayment && state != StateThankYou && data.FinalBill != nil {
		data.FinalBill = nil
	}

	return GuardResult{State: state}
}

func guardReset(data *SessionData, translate TranslateFunc, reason string, notice *Notice) GuardResult {
	*data = *data.Reset(translate)
	return GuardResult{State: StateInitialWelcome, Reset: true, Notice: notice, Reason: reason}
}

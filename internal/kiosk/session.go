package kiosk

import (
	"evkiosk/internal/catalog"
	"evkiosk/internal/models"
)

// SessionData accumulates everything learned about the current kiosk
// visit. One instance exists per kiosk; the state machine is its only
// writer.
type SessionData struct {
	VehicleInfo          *models.VehicleInfo   `json:"vehicleInfo"`
	AssignedSlotID       string                `json:"assignedSlotId,omitempty"`
	CurrentSlots         []models.ChargingSlot `json:"currentSlots"`
	SelectedConnector    string                `json:"selectedConnectorType,omitempty"`
	FinalBill            *models.BillDetails   `json:"finalBill"`
	ReceiptPreference    models.ReceiptChoice  `json:"receiptPreference,omitempty"`
	IsQueueNotEmpty      bool                  `json:"isQueueNotEmpty"`
	ConsentSkipped       bool                  `json:"consentSkipped"`
	SelectedBrandID      string                `json:"selectedBrandId,omitempty"`
	Language             models.Language       `json:"language"`
	CurrentMode          models.OperatingMode  `json:"currentMode"`
	ChargingErrorMessage string                `json:"chargingErrorMessage,omitempty"`
}

// NewSessionData returns the boot defaults for a kiosk in the given
// language.
func NewSessionData(lang models.Language) *SessionData {
	if lang != models.LanguageEnglish {
		lang = models.LanguageKorean
	}
	return &SessionData{
		CurrentSlots: catalog.InitialSlots(),
		Language:     lang,
		CurrentMode:  models.ModeStandard,
	}
}

// Reset returns fresh session data. Only the language survives; the slot
// layout is rebuilt with the demo occupant's estimate set to the
// translated "calculating" placeholder.
func (d *SessionData) Reset(translate TranslateFunc) *SessionData {
	fresh := NewSessionData(d.Language)
	for i := range fresh.CurrentSlots {
		if fresh.CurrentSlots[i].Status == models.SlotOccupied {
			fresh.CurrentSlots[i].EstimatedCompletionTime = translate("waitTimeDisplay.calculating", nil)
		}
	}
	return fresh
}

// Clone deep-copies the session so snapshots handed to observers cannot
// alias the machine's working state.
func (d *SessionData) Clone() *SessionData {
	if d == nil {
		return nil
	}
	clone := *d
	clone.CurrentSlots = make([]models.ChargingSlot, len(d.CurrentSlots))
	copy(clone.CurrentSlots, d.CurrentSlots)
	for i := range clone.CurrentSlots {
		if v := clone.CurrentSlots[i].Vehicle; v != nil {
			vehicle := *v
			clone.CurrentSlots[i].Vehicle = &vehicle
		}
	}
	if d.VehicleInfo != nil {
		vehicle := *d.VehicleInfo
		clone.VehicleInfo = &vehicle
	}
	if d.FinalBill != nil {
		bill := *d.FinalBill
		clone.FinalBill = &bill
	}
	return &clone
}

// slotIndex finds a slot by id, or -1.
func (d *SessionData) slotIndex(id string) int {
	for i := range d.CurrentSlots {
		if d.CurrentSlots[i].ID == id {
			return i
		}
	}
	return -1
}

// firstAvailableSlot returns the id of the first available slot, if any.
func (d *SessionData) firstAvailableSlot() (string, bool) {
	for i := range d.CurrentSlots {
		if d.CurrentSlots[i].Status == models.SlotAvailable {
			return d.CurrentSlots[i].ID, true
		}
	}
	return "", false
}

// anySlotAvailable reports whether any slot is free.
func (d *SessionData) anySlotAvailable() bool {
	_, ok := d.firstAvailableSlot()
	return ok
}

// TranslateFunc resolves a message key in the session's language.
type TranslateFunc func(key string, params map[string]string) string

package models

// Language selects the kiosk display language.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

// OperatingMode distinguishes the guided flow from the quick-start flow.
type OperatingMode string

const (
	ModeStandard OperatingMode = "standard"
	ModeQuick    OperatingMode = "quick"
)

// ReceiptChoice is the receipt option picked on the payment screen.
type ReceiptChoice string

const (
	ReceiptPrint ReceiptChoice = "print"
	ReceiptNone  ReceiptChoice = "none"
)

// ValidReceiptChoice reports whether the value is one of the closed set.
func ValidReceiptChoice(c ReceiptChoice) bool {
	return c == ReceiptPrint || c == ReceiptNone
}

// SlotStatus is the occupancy state of a charging slot.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
	SlotAlmostDone  SlotStatus = "almost_done"
)

// VehicleInfo describes the vehicle attached to the current session.
// Model and PortLocationDescription are translation keys, not display text.
type VehicleInfo struct {
	LicensePlate            string  `json:"licensePlate"`
	Model                   string  `json:"model"`
	Confidence              float64 `json:"confidence"`
	PortLocationDescription string  `json:"portLocationDescription,omitempty"`
	ConnectionImageURL      string  `json:"connectionImageUrl,omitempty"`
	RecommendedConnector    string  `json:"recommendedConnectorType,omitempty"`
}

// ChargingSlot is one physical charging bay.
type ChargingSlot struct {
	ID                      string       `json:"id"`
	Status                  SlotStatus   `json:"status"`
	Vehicle                 *VehicleInfo `json:"vehicle,omitempty"`
	User                    string       `json:"user,omitempty"`
	CurrentChargeKW         float64      `json:"currentChargeKW,omitempty"`
	EstimatedCompletionTime string       `json:"estimatedCompletionTime,omitempty"`
}

// BillDetails is the accumulated energy/time/cost of one charging session.
type BillDetails struct {
	KwhUsed         float64 `json:"kwhUsed"`
	DurationMinutes float64 `json:"durationMinutes"`
	TotalCost       int64   `json:"totalCost"`
}

// ChargingProgress is the ephemeral per-tick state of an active charging
// session. It lives in tab-scoped storage only while the engine runs.
type ChargingProgress struct {
	CurrentBill      BillDetails `json:"currentBill"`
	ElapsedSeconds   int         `json:"elapsedSeconds"`
	ChargePercentage float64     `json:"chargePercentage"`
}

// ConnectorTypeInfo is static connector catalog metadata.
type ConnectorTypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CarModel is a catalog entry under a brand.
type CarModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CarBrand groups catalog models.
type CarBrand struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Models []CarModel `json:"models"`
}

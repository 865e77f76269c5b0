package i18n

import (
	"strings"

	"evkiosk/internal/models"
)

// entry holds one message in both supported languages.
type entry struct {
	ko string
	en string
}

const missingKey = "missing.translation"

// translations covers the keys the kiosk core emits. Screen-only copy stays
// in the presentation layer; this table is what the state machine and the
// charging engine need to produce display strings and error messages.
var translations = map[string]entry{
	missingKey: {ko: "번역 없음: {{key}}", en: "Missing translation: {{key}}"},

	"error.genericTitle":   {ko: "오류", en: "Error"},
	"warning.genericTitle": {ko: "경고", en: "Warning"},

	"toast.error.noSlotInfo.title":       {ko: "세션 정보 오류", en: "Session Data Error"},
	"toast.error.noSlotInfo.description": {ko: "충전에 필요한 정보가 없어 처음 화면으로 돌아갑니다.", en: "Required charging details are missing. Returning to the start screen."},

	"dataConsent.toast.disagreeWarning.title":       {ko: "동의 거부", en: "Consent Declined"},
	"dataConsent.toast.disagreeWarning.description": {ko: "동의하지 않아 세션을 초기화합니다.", en: "The session will be reset because consent was declined."},

	"waitTimeDisplay.calculating":      {ko: "계산 중...", en: "Calculating..."},
	"waitTimeDisplay.completedStatus":  {ko: "충전 완료", en: "Charging Complete"},
	"waitTimeDisplay.almostDone":       {ko: "곧 완료", en: "Almost done"},
	"waitTimeDisplay.minutesRemaining": {ko: "{{minutes}}분 남음", en: "{{minutes}} min remaining"},

	"chargingError.messageCableDisconnect": {ko: "충전 케이블 연결이 끊어졌습니다. 케이블을 확인한 후 다시 시도해 주세요.", en: "The charging cable was disconnected. Please check the cable and try again."},
	"chargingError.messageGeneric":         {ko: "충전 중 오류가 발생했습니다. 다시 시도해 주세요.", en: "An error occurred while charging. Please try again."},

	"selectCarModel.unknownModel":            {ko: "알 수 없는 모델", en: "Unknown model"},
	"selectCarModel.manualEntryLicensePlate": {ko: "직접 입력", en: "Manual entry"},
	"selectCarModel.portLocationGeneric":     {ko: "충전구 위치는 차량에 따라 다릅니다.", en: "Charging port location varies by vehicle."},

	"queue.defaultWaitTime": {ko: "약 15분", en: "About 15 minutes"},

	"connector.ac_type_1.name":          {ko: "AC 완속 (Type 1)", en: "AC Type 1"},
	"connector.ac_type_1.description":   {ko: "완속 충전, kWh당 200원", en: "Slow charging, 200 KRW per kWh"},
	"connector.ccs_combo_2.name":        {ko: "DC 급속 (CCS2)", en: "DC Combo (CCS2)"},
	"connector.ccs_combo_2.description": {ko: "급속 충전, kWh당 300원", en: "Fast charging, 300 KRW per kWh"},

	"carBrand.hyundai": {ko: "현대", en: "Hyundai"},
	"carBrand.kia":     {ko: "기아", en: "Kia"},
	"carBrand.kgm":     {ko: "KG모빌리티", en: "KG Mobility"},
	"carBrand.tesla":   {ko: "테슬라", en: "Tesla"},
}

// Translate resolves key for the given language, substituting {{param}}
// placeholders. Unknown keys return a visible marker instead of failing.
func Translate(lang models.Language, key string, params map[string]string) string {
	e, ok := translations[key]
	if !ok {
		marker := translations[missingKey]
		return strings.ReplaceAll(pick(marker, lang), "{{key}}", key)
	}

	msg := pick(e, lang)
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
	}
	return msg
}

func pick(e entry, lang models.Language) string {
	if lang == models.LanguageEnglish {
		return e.en
	}
	return e.ko
}

package models

import "time"

// Receipt is a completed, paid charging session persisted for bookkeeping.
type Receipt struct {
	ID              int64         `db:"id" json:"id"`
	KioskID         string        `db:"kiosk_id" json:"kiosk_id"`
	SlotID          string        `db:"slot_id" json:"slot_id"`
	LicensePlate    string        `db:"license_plate" json:"license_plate"`
	ConnectorType   string        `db:"connector_type" json:"connector_type"`
	KwhUsed         float64       `db:"kwh_used" json:"kwh_used"`
	DurationMinutes float64       `db:"duration_minutes" json:"duration_minutes"`
	TotalCost       int64         `db:"total_cost" json:"total_cost"`
	ReceiptChoice   ReceiptChoice `db:"receipt_choice" json:"receipt_choice"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

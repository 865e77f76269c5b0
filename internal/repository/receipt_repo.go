package repository

import (
	"context"
	"database/sql"

	"evkiosk/internal/models"
)

// ReceiptRepository handles persistence of completed session receipts.
type ReceiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository returns repository.
func NewReceiptRepository(db *sql.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Save inserts one receipt row.
func (r *ReceiptRepository) Save(ctx context.Context, receipt models.Receipt) error {
	const query = `
		INSERT INTO kiosk_receipts (kiosk_id, slot_id, license_plate, connector_type, kwh_used, duration_minutes, total_cost, receipt_choice, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		receipt.KioskID,
		receipt.SlotID,
		receipt.LicensePlate,
		receipt.ConnectorType,
		receipt.KwhUsed,
		receipt.DurationMinutes,
		receipt.TotalCost,
		receipt.ReceiptChoice,
	).Scan(&receipt.ID, &receipt.CreatedAt)
}

// RecentByKiosk returns the last N receipts for a kiosk.
func (r *ReceiptRepository) RecentByKiosk(ctx context.Context, kioskID string, limit int) ([]models.Receipt, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, kiosk_id, slot_id, license_plate, connector_type, kwh_used, duration_minutes, total_cost, receipt_choice, created_at
		FROM kiosk_receipts
		WHERE kiosk_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, kioskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		var rec models.Receipt
		if err := rows.Scan(
			&rec.ID,
			&rec.KioskID,
			&rec.SlotID,
			&rec.LicensePlate,
			&rec.ConnectorType,
			&rec.KwhUsed,
			&rec.DurationMinutes,
			&rec.TotalCost,
			&rec.ReceiptChoice,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return receipts, nil
}

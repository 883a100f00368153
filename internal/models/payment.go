package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	OccupantID     string          `db:"occupant_id"`
	Amount         decimal.Decimal `db:"amount"`
	PaymentDate    time.Time       `db:"payment_date"`
	PaymentType    string          `db:"payment_type"`
	ForMonth       string          `db:"for_month"`
	Status         string          `db:"status"`
	Method         string          `db:"method"`
	TransactionRef string          `db:"transaction_ref"`
	Notes          string          `db:"notes"`
	AuditFields
}

// PaymentEdit is a row of the payment_edits audit table.
type PaymentEdit struct {
	EditID         string          `db:"edit_id"`
	PaymentID      string          `db:"payment_id"`
	Reason         string          `db:"reason"`
	EditedBy       string          `db:"edited_by"`
	EditedAt       time.Time       `db:"edited_at"`
	PreviousAmount decimal.Decimal `db:"previous_amount"`
	NewAmount      decimal.Decimal `db:"new_amount"`
	PreviousDate   time.Time       `db:"previous_date"`
	NewDate        time.Time       `db:"new_date"`
	PreviousNotes  string          `db:"previous_notes"`
	NewNotes       string          `db:"new_notes"`
	PreviousStatus string          `db:"previous_status"`
	NewStatus      string          `db:"new_status"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is what a payment (or a recurring charge) is for.
type PaymentType string

const (
	PaymentRent          PaymentType = "RENT"
	PaymentServiceCharge PaymentType = "SERVICE_CHARGE"
	PaymentWater         PaymentType = "WATER"
	PaymentDeposit       PaymentType = "DEPOSIT"
)

// IsRecurring reports whether the type is billed monthly by the ledger engine.
func (t PaymentType) IsRecurring() bool {
	return t == PaymentRent || t == PaymentServiceCharge
}

// Label is a human-readable name used in descriptions.
func (t PaymentType) Label() string {
	switch t {
	case PaymentRent:
		return "Rent"
	case PaymentServiceCharge:
		return "Service charge"
	case PaymentWater:
		return "Water"
	case PaymentDeposit:
		return "Deposit"
	}
	return string(t)
}

// PaymentRecordStatus is the settlement state of a recorded payment.
type PaymentRecordStatus string

const (
	PaymentPaid    PaymentRecordStatus = "PAID"
	PaymentPending PaymentRecordStatus = "PENDING"
	PaymentFailed  PaymentRecordStatus = "FAILED"
)

// PaymentMethod is how the money was received.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCard         PaymentMethod = "CARD"
)

// Payment is a financial event linked to exactly one occupant. Payments are
// corrected through audited edits and never deleted.
type Payment struct {
	PaymentID      string              `json:"paymentID"`
	OccupantID     string              `json:"occupantID"`
	Amount         decimal.Decimal     `json:"amount"`
	PaymentDate    time.Time           `json:"paymentDate"`
	PaymentType    PaymentType         `json:"paymentType"`
	ForMonth       string              `json:"forMonth"` // Free label, e.g. "2024-03" or "2024-01 to 2024-03"
	Status         PaymentRecordStatus `json:"status"`
	Method         PaymentMethod       `json:"method"`
	TransactionRef string              `json:"transactionRef"`
	Notes          string              `json:"notes"`
	AuditFields
}

// Settles reports whether the payment reduces a ledger of the given charge type as of asOf.
func (p Payment) Settles(kind PaymentType, asOf time.Time) bool {
	return p.Status == PaymentPaid &&
		p.PaymentType == kind &&
		!DateOnly(p.PaymentDate).After(DateOnly(asOf))
}

// PaymentEdit is the audit record of a correction.
type PaymentEdit struct {
	EditID         string              `json:"editID"`
	PaymentID      string              `json:"paymentID"`
	Reason         string              `json:"reason"`
	EditedBy       string              `json:"editedBy"`
	EditedAt       time.Time           `json:"editedAt"`
	PreviousAmount decimal.Decimal     `json:"previousAmount"`
	NewAmount      decimal.Decimal     `json:"newAmount"`
	PreviousDate   time.Time           `json:"previousDate"`
	NewDate        time.Time           `json:"newDate"`
	PreviousNotes  string              `json:"previousNotes"`
	NewNotes       string              `json:"newNotes"`
	PreviousStatus PaymentRecordStatus `json:"previousStatus"`
	NewStatus      PaymentRecordStatus `json:"newStatus"`
}

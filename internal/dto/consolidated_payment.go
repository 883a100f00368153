package dto

import (
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConsolidatedPaymentRequest records one payment against an owner's whole balance.
type ConsolidatedPaymentRequest struct {
	// Amount defaults to the full total due when omitted.
	Amount         *decimal.Decimal     `json:"amount"`
	PaymentDate    time.Time            `json:"paymentDate" binding:"required"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER MOBILE_MONEY CHEQUE CARD"`
	TransactionRef string               `json:"transactionRef" binding:"required"`
	Notes          string               `json:"notes"`
	// ExpectedTotalDue, when set, must equal the balance computed at write time.
	ExpectedTotalDue *decimal.Decimal `json:"expectedTotalDue"`
}

// ConsolidatedPaymentResponse describes the recorded payment and the recomputed balance.
type ConsolidatedPaymentResponse struct {
	Payment           PaymentResponse `json:"payment"`
	OccupantID        string          `json:"occupantID"`
	OccupantCreated   bool            `json:"occupantCreated"`
	TargetUnitID      string          `json:"targetUnitID"`
	PreviousTotalDue  decimal.Decimal `json:"previousTotalDue"`
	RemainingTotalDue decimal.Decimal `json:"remainingTotalDue"`
}

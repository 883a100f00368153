package dto

import (
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record a payment for an occupant.
type RecordPaymentRequest struct {
	OccupantID     string               `json:"occupantID" binding:"required"`
	Amount         decimal.Decimal      `json:"amount"` // Must be positive
	PaymentDate    time.Time            `json:"paymentDate" binding:"required"`
	PaymentType    domain.PaymentType   `json:"paymentType" binding:"required,oneof=RENT SERVICE_CHARGE WATER DEPOSIT"`
	ForMonth       string               `json:"forMonth" binding:"omitempty,yearmonth"` // Defaults to the payment month
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER MOBILE_MONEY CHEQUE CARD"`
	TransactionRef string               `json:"transactionRef"`
	Notes          string               `json:"notes"`
}

// UpdatePaymentRequest defines a correction to a payment. Reason is mandatory and
// Version must match the stored version.
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal            `json:"amount"`
	PaymentDate *time.Time                  `json:"paymentDate"`
	Notes       *string                     `json:"notes"`
	Status      *domain.PaymentRecordStatus `json:"status" binding:"omitempty,oneof=PAID PENDING FAILED"`
	Reason      string                      `json:"reason" binding:"required,min=3"`
	Version     int64                       `json:"version"`
}

// ListPaymentsParams defines query parameters for an occupant's payment history.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string                     `json:"paymentID"`
	OccupantID     string                     `json:"occupantID"`
	Amount         decimal.Decimal            `json:"amount"`
	PaymentDate    time.Time                  `json:"paymentDate"`
	PaymentType    domain.PaymentType         `json:"paymentType"`
	ForMonth       string                     `json:"forMonth"`
	Status         domain.PaymentRecordStatus `json:"status"`
	Method         domain.PaymentMethod       `json:"method"`
	TransactionRef string                     `json:"transactionRef"`
	Notes          string                     `json:"notes"`
	Version        int64                      `json:"version"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
	LastUpdatedAt  time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy  string                     `json:"lastUpdatedBy"`
}

// ListPaymentsResponse is a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// PaymentEditResponse is one entry of a payment's correction history.
type PaymentEditResponse struct {
	EditID         string                     `json:"editID"`
	Reason         string                     `json:"reason"`
	EditedBy       string                     `json:"editedBy"`
	EditedAt       time.Time                  `json:"editedAt"`
	PreviousAmount decimal.Decimal            `json:"previousAmount"`
	NewAmount      decimal.Decimal            `json:"newAmount"`
	PreviousDate   time.Time                  `json:"previousDate"`
	NewDate        time.Time                  `json:"newDate"`
	PreviousNotes  string                     `json:"previousNotes"`
	NewNotes       string                     `json:"newNotes"`
	PreviousStatus domain.PaymentRecordStatus `json:"previousStatus"`
	NewStatus      domain.PaymentRecordStatus `json:"newStatus"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		OccupantID:     p.OccupantID,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		PaymentType:    p.PaymentType,
		ForMonth:       p.ForMonth,
		Status:         p.Status,
		Method:         p.Method,
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.Payment.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// ToPaymentEditResponses converts a payment's edit history.
func ToPaymentEditResponses(edits []domain.PaymentEdit) []PaymentEditResponse {
	res := make([]PaymentEditResponse, len(edits))
	for i, e := range edits {
		res[i] = PaymentEditResponse{
			EditID:         e.EditID,
			Reason:         e.Reason,
			EditedBy:       e.EditedBy,
			EditedAt:       e.EditedAt,
			PreviousAmount: e.PreviousAmount,
			NewAmount:      e.NewAmount,
			PreviousDate:   e.PreviousDate,
			NewDate:        e.NewDate,
			PreviousNotes:  e.PreviousNotes,
			NewNotes:       e.NewNotes,
			PreviousStatus: e.PreviousStatus,
			NewStatus:      e.NewStatus,
		}
	}
	return res
}

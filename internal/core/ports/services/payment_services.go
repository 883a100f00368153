package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a single payment.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByOccupant retrieves a page of an occupant's payment history.
	ListPaymentsByOccupant(ctx context.Context, occupantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// ListPaymentEdits retrieves the correction history of a payment.
	ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// RecordPayment persists a new payment for an occupant.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error)

	// UpdatePayment corrects a payment. The reason and editor are stored as an audit entry.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, editorUserID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

// ConsolidatedPaymentSvcFacade records single payments covering an owner's whole balance
type ConsolidatedPaymentSvcFacade interface {
	// RecordConsolidatedPayment recomputes the owner's balance, ensures a billing occupant exists
	// and records one payment, all in a single transaction.
	RecordConsolidatedPayment(ctx context.Context, ref domain.OwnerRef, req dto.ConsolidatedPaymentRequest, creatorUserID string) (*dto.ConsolidatedPaymentResponse, error)
}

// BalanceSvcFacade maintains the stored balance cache of occupants
type BalanceSvcFacade interface {
	// RecalculateOccupantBalance recomputes and stores one occupant's balance.
	RecalculateOccupantBalance(ctx context.Context, occupantID string, asOf time.Time) (*domain.Occupant, error)

	// RefreshAllBalances recomputes every active occupant's balance and returns how many were updated.
	RefreshAllBalances(ctx context.Context, asOf time.Time) (int, error)
}

package repositories

import (
	"context"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payments
type PaymentReader interface {
	// FindPaymentByID retrieves a single payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByOccupant retrieves a page of an occupant's payments, newest first, using token-based pagination.
	// It returns the payments, a token for the next page, and an error.
	ListPaymentsByOccupant(ctx context.Context, occupantID string, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// ListPaymentEdits returns the correction history of a payment, oldest first.
	ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error)
}

// PaymentWriter defines write operations for payments
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// SavePaymentInTx persists a new payment inside an existing transaction.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// UpdatePaymentWithEdit applies a correction and records its audit entry atomically.
	// It returns ErrConflict when the stored version differs from expectedVersion.
	UpdatePaymentWithEdit(ctx context.Context, payment domain.Payment, edit domain.PaymentEdit, expectedVersion int64) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

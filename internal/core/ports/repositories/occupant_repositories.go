package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OccupantReader defines read operations for occupants
type OccupantReader interface {
	// FindOccupantByID retrieves an occupant, archived or not.
	FindOccupantByID(ctx context.Context, occupantID string) (*domain.Occupant, error)
}

// OccupantWriter defines write operations for occupants
type OccupantWriter interface {
	// UpdateOccupantBalance stores the recomputed balance cache of an occupant.
	UpdateOccupantBalance(ctx context.Context, occupantID string, due decimal.Decimal, status domain.BillingStatus, recomputedAt time.Time) error

	// FindOrCreateBillingOccupantInTx returns a live occupant representing the owner referenced by
	// candidate.Owner, inserting candidate when none exists. The boolean reports whether a row was created.
	FindOrCreateBillingOccupantInTx(ctx context.Context, tx pgx.Tx, candidate domain.Occupant) (*domain.Occupant, bool, error)
}

// OccupantRepositoryFacade combines all occupant-related repository interfaces
type OccupantRepositoryFacade interface {
	OccupantReader
	OccupantWriter
}

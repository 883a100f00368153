package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
)

// UnitLedgerReaderSvc defines read operations for unit ledgers
type UnitLedgerReaderSvc interface {
	// GetUnitLedger computes the ledger of a unit as of the given date.
	GetUnitLedger(ctx context.Context, unitID string, asOf time.Time) (*billing.UnitLedger, error)

	// GetUnitStatus classifies a unit for a reference month.
	GetUnitStatus(ctx context.Context, unitID string, month domain.YearMonth, asOf time.Time) (*domain.UnitStatus, error)
}

// OwnerLedgerReaderSvc defines read operations for owner-wide ledgers
type OwnerLedgerReaderSvc interface {
	// GetOwnerLedger computes the consolidated ledger of every unit an owner holds.
	GetOwnerLedger(ctx context.Context, ref domain.OwnerRef, asOf time.Time) (*billing.OwnerPortfolio, error)

	// GetOwnerStatus groups the statuses of an owner's units for a reference month.
	GetOwnerStatus(ctx context.Context, ref domain.OwnerRef, month domain.YearMonth, asOf time.Time) (*billing.OwnerStatus, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	UnitLedgerReaderSvc
	OwnerLedgerReaderSvc
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

// ledgerService computes unit and owner ledgers from a fresh snapshot on every call.
type ledgerService struct {
	BaseService
	snapshots portsrepo.SnapshotReader
	engine    *billing.Engine
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(snapshots portsrepo.SnapshotReader, engine *billing.Engine, opts ...Option) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(opts),
		snapshots:   snapshots,
		engine:      engine,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) load(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load billing snapshot")
		return domain.Snapshot{}, fmt.Errorf("failed to load billing snapshot: %w", err)
	}
	return snap, nil
}

// GetUnitLedger computes the ledger of a unit as of the given date.
func (s *ledgerService) GetUnitLedger(ctx context.Context, unitID string, asOf time.Time) (*billing.UnitLedger, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.engine.UnitLedger(snap, unitID, asOf)
	if err != nil {
		return nil, err
	}
	s.Metrics.LedgerComputed(metrics.ScopeUnit)
	if len(ledger.Issues) > 0 {
		s.LogDebug(ctx, "Unit ledger computed with issues", slog.String("unit_id", unitID), slog.Int("issues", len(ledger.Issues)))
	}
	return &ledger, nil
}

// GetUnitStatus classifies a unit for a reference month.
func (s *ledgerService) GetUnitStatus(ctx context.Context, unitID string, month domain.YearMonth, asOf time.Time) (*domain.UnitStatus, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.engine.UnitStatus(snap, unitID, month, asOf)
	if err != nil {
		return nil, err
	}
	s.Metrics.LedgerComputed(metrics.ScopeUnit)
	return &status, nil
}

// GetOwnerLedger computes the consolidated ledger of every unit an owner holds.
func (s *ledgerService) GetOwnerLedger(ctx context.Context, ref domain.OwnerRef, asOf time.Time) (*billing.OwnerPortfolio, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	portfolio, err := s.engine.OwnerBalance(snap, ref, asOf)
	if err != nil {
		return nil, err
	}
	s.Metrics.LedgerComputed(metrics.ScopeOwner)
	return &portfolio, nil
}

// GetOwnerStatus groups the statuses of an owner's units for a reference month.
func (s *ledgerService) GetOwnerStatus(ctx context.Context, ref domain.OwnerRef, month domain.YearMonth, asOf time.Time) (*billing.OwnerStatus, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.engine.OwnerStatus(snap, ref, month, asOf)
	if err != nil {
		return nil, err
	}
	s.Metrics.LedgerComputed(metrics.ScopeOwner)
	return &status, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

// balanceService refreshes the stored balance cache of occupants from the ledger.
type balanceService struct {
	BaseService
	snapshots    portsrepo.SnapshotReader
	occupantRepo portsrepo.OccupantWriter
	engine       *billing.Engine
}

// NewBalanceService creates a new balance service.
func NewBalanceService(snapshots portsrepo.SnapshotReader, occupantRepo portsrepo.OccupantWriter, engine *billing.Engine, opts ...Option) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService:  newBaseService(opts),
		snapshots:    snapshots,
		occupantRepo: occupantRepo,
		engine:       engine,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// RecalculateOccupantBalance recomputes and stores one occupant's balance.
func (s *balanceService) RecalculateOccupantBalance(ctx context.Context, occupantID string, asOf time.Time) (*domain.Occupant, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for balance recalculation")
		return nil, fmt.Errorf("failed to load billing snapshot: %w", err)
	}

	occupant, ok := snap.FindOccupant(occupantID)
	if !ok {
		return nil, fmt.Errorf("%w: occupant %s", apperrors.ErrNotFound, occupantID)
	}
	if occupant.IsArchived {
		return nil, fmt.Errorf("%w: occupant %s is archived", apperrors.ErrValidation, occupantID)
	}

	due, status, err := s.balanceOf(snap, occupant, asOf)
	if err != nil {
		return nil, err
	}

	recomputedAt := s.Now()
	if err := s.occupantRepo.UpdateOccupantBalance(ctx, occupantID, due, status, recomputedAt); err != nil {
		s.LogError(ctx, err, "Failed to store occupant balance", slog.String("occupant_id", occupantID))
		return nil, fmt.Errorf("failed to store balance of occupant %s: %w", occupantID, err)
	}
	s.Metrics.LedgerComputed(metrics.ScopeOccupant)

	occupant.DueBalance = due
	occupant.Lease.PaymentStatus = status
	occupant.BalanceRecomputedAt = &recomputedAt
	return &occupant, nil
}

// RefreshAllBalances recomputes the balance of every non-archived occupant from one snapshot.
// Failures on individual occupants are logged and reported together; the rest are still stored.
func (s *balanceService) RefreshAllBalances(ctx context.Context, asOf time.Time) (int, error) {
	start := time.Now()
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for balance refresh")
		return 0, fmt.Errorf("failed to load billing snapshot: %w", err)
	}

	recomputedAt := s.Now()
	updated := 0
	var errs []error
	for _, occupant := range snap.Occupants {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if occupant.IsArchived {
			continue
		}
		due, status, err := s.balanceOf(snap, occupant, asOf)
		if err != nil {
			s.LogError(ctx, err, "Skipping occupant balance", slog.String("occupant_id", occupant.OccupantID))
			errs = append(errs, err)
			continue
		}
		if err := s.occupantRepo.UpdateOccupantBalance(ctx, occupant.OccupantID, due, status, recomputedAt); err != nil {
			s.LogError(ctx, err, "Failed to store occupant balance", slog.String("occupant_id", occupant.OccupantID))
			errs = append(errs, fmt.Errorf("occupant %s: %w", occupant.OccupantID, err))
			continue
		}
		updated++
	}

	took := time.Since(start)
	s.Metrics.BalanceRefreshDone(updated, took)
	s.LogInfo(ctx, "Occupant balances refreshed",
		slog.Int("updated", updated),
		slog.Int("failed", len(errs)),
		slog.Duration("took", took))
	return updated, errors.Join(errs...)
}

// balanceOf returns the amount due and the status of the current month. Owner billing
// accounts carry their owner's consolidated balance; residents carry their unit's.
func (s *balanceService) balanceOf(snap domain.Snapshot, occupant domain.Occupant, asOf time.Time) (decimal.Decimal, domain.BillingStatus, error) {
	month := domain.YearMonthOf(asOf)

	if occupant.ResidentType == domain.ResidentOwnerBilling {
		if occupant.Owner == nil {
			return decimal.Zero, "", fmt.Errorf("%w: billing occupant %s has no owner", apperrors.ErrValidation, occupant.OccupantID)
		}
		status, err := s.engine.OwnerStatus(snap, *occupant.Owner, month, asOf)
		if err != nil {
			return decimal.Zero, "", err
		}
		return status.TotalDue, status.Status, nil
	}

	status, err := s.engine.UnitStatus(snap, occupant.UnitID, month, asOf)
	if err != nil {
		return decimal.Zero, "", err
	}
	if status.OccupantID != occupant.OccupantID {
		// Another resident is billed for this unit.
		return decimal.Zero, domain.StatusNotApplicable, nil
	}
	return status.AmountDue, status.Status, nil
}

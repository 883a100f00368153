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

// reportingService implements portfolio-wide reports
type reportingService struct {
	BaseService
	snapshots portsrepo.SnapshotReader
	engine    *billing.Engine
}

// NewReportingService creates a new reporting service.
func NewReportingService(snapshots portsrepo.SnapshotReader, engine *billing.Engine, opts ...Option) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService: newBaseService(opts),
		snapshots:   snapshots,
		engine:      engine,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetVacantArrears lists owners whose vacant, handed-over units owe money.
func (s *reportingService) GetVacantArrears(ctx context.Context, asOf time.Time) ([]domain.VacantArrearsAccount, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for vacant arrears")
		return nil, fmt.Errorf("failed to load billing snapshot: %w", err)
	}

	accounts := s.engine.VacantArrears(snap, asOf)
	s.Metrics.LedgerComputed(metrics.ScopePortfolio)
	s.LogInfo(ctx, "Vacant arrears computed",
		slog.String("as_of", asOf.Format(time.DateOnly)),
		slog.Int("accounts", len(accounts)))

	if accounts == nil {
		return []domain.VacantArrearsAccount{}, nil
	}
	return accounts, nil
}

// GetPortfolioSummary counts unit statuses for a reference month.
func (s *reportingService) GetPortfolioSummary(ctx context.Context, month domain.YearMonth, asOf time.Time) (*domain.PortfolioSummary, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for portfolio summary")
		return nil, fmt.Errorf("failed to load billing snapshot: %w", err)
	}

	summary := s.engine.PortfolioSummary(snap, month, asOf)
	s.Metrics.LedgerComputed(metrics.ScopePortfolio)
	if len(summary.Issues) > 0 {
		s.LogInfo(ctx, "Portfolio summary has billing issues", slog.Int("issues", len(summary.Issues)))
	}
	return &summary, nil
}

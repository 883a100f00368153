package services

import (
	"github.com/SscSPs/property_billing_app/internal/core/billing"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/platform/config"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	engine := billing.NewEngine(billing.Rules{GraceDay: cfg.BillingGraceDay})
	opts := []Option{WithMetrics(m)}

	return &portssvc.ServiceContainer{
		Ledger:  NewLedgerService(repos.SnapshotRepo, engine, opts...),
		Payment: NewPaymentService(repos.PaymentRepo, repos.OccupantRepo, opts...),
		ConsolidatedPayment: NewConsolidatedPaymentService(
			repos.SnapshotRepo,
			repos.OwnerRepo,
			repos.OccupantRepo,
			repos.PaymentRepo,
			engine,
			opts...,
		),
		Balance:   NewBalanceService(repos.SnapshotRepo, repos.OccupantRepo, engine, opts...),
		Reporting: NewReportingService(repos.SnapshotRepo, engine, opts...),
	}
}

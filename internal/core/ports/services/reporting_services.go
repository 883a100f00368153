package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
)

// ReportingSvcFacade defines portfolio-wide reports
type ReportingSvcFacade interface {
	// GetVacantArrears lists owners whose vacant, handed-over units owe money.
	GetVacantArrears(ctx context.Context, asOf time.Time) ([]domain.VacantArrearsAccount, error)

	// GetPortfolioSummary counts unit statuses for a reference month.
	GetPortfolioSummary(ctx context.Context, month domain.YearMonth, asOf time.Time) (*domain.PortfolioSummary, error)
}

package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetUnitLedger(ctx context.Context, unitID string, asOf time.Time) (*billing.UnitLedger, error) {
	args := m.Called(ctx, unitID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UnitLedger), args.Error(1)
}

func (m *MockLedgerService) GetUnitStatus(ctx context.Context, unitID string, month domain.YearMonth, asOf time.Time) (*domain.UnitStatus, error) {
	args := m.Called(ctx, unitID, month, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnitStatus), args.Error(1)
}

func (m *MockLedgerService) GetOwnerLedger(ctx context.Context, ref domain.OwnerRef, asOf time.Time) (*billing.OwnerPortfolio, error) {
	args := m.Called(ctx, ref, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.OwnerPortfolio), args.Error(1)
}

func (m *MockLedgerService) GetOwnerStatus(ctx context.Context, ref domain.OwnerRef, month domain.YearMonth, asOf time.Time) (*billing.OwnerStatus, error) {
	args := m.Called(ctx, ref, month, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.OwnerStatus), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPaymentsByOccupant(ctx context.Context, occupantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	args := m.Called(ctx, occupantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResponse), args.Error(1)
}

func (m *MockPaymentService) ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEdit), args.Error(1)
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, editorUserID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, req, editorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock ConsolidatedPaymentService ---
type MockConsolidatedPaymentService struct {
	mock.Mock
}

func (m *MockConsolidatedPaymentService) RecordConsolidatedPayment(ctx context.Context, ref domain.OwnerRef, req dto.ConsolidatedPaymentRequest, creatorUserID string) (*dto.ConsolidatedPaymentResponse, error) {
	args := m.Called(ctx, ref, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConsolidatedPaymentResponse), args.Error(1)
}

var _ portssvc.ConsolidatedPaymentSvcFacade = (*MockConsolidatedPaymentService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) RecalculateOccupantBalance(ctx context.Context, occupantID string, asOf time.Time) (*domain.Occupant, error) {
	args := m.Called(ctx, occupantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupant), args.Error(1)
}

func (m *MockBalanceService) RefreshAllBalances(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetVacantArrears(ctx context.Context, asOf time.Time) ([]domain.VacantArrearsAccount, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VacantArrearsAccount), args.Error(1)
}

func (m *MockReportingService) GetPortfolioSummary(ctx context.Context, month domain.YearMonth, asOf time.Time) (*domain.PortfolioSummary, error) {
	args := m.Called(ctx, month, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioSummary), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// fakePinger fails health checks when err is set.
type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

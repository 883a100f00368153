package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/core/services"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockSnapshots *MockSnapshotRepository
	service       portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockSnapshots = new(MockSnapshotRepository)
	suite.service = services.NewLedgerService(
		suite.mockSnapshots,
		billing.NewEngine(billing.DefaultRules()),
		services.WithMetrics(metrics.New()),
	)
}

func (suite *LedgerServiceTestSuite) TestGetUnitLedger_Tenant() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(vacantLandlordSnapshot(), nil).Once()

	ledger, err := suite.service.GetUnitLedger(ctx, "t1", fixedNow)

	suite.Require().NoError(err)
	suite.Equal("occ-t1", ledger.OccupantID)
	suite.Equal(domain.PaymentRent, ledger.Kind)
	suite.True(ledger.Billable)
	suite.Len(ledger.Charges, 2)
	suite.True(dec("20000").Equal(ledger.Ledger.AmountDue))
	suite.mockSnapshots.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetUnitLedger_VacantOwnerUnit() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(vacantLandlordSnapshot(), nil).Once()

	ledger, err := suite.service.GetUnitLedger(ctx, "a1", fixedNow)

	suite.Require().NoError(err)
	suite.Require().NotNil(ledger.Owner)
	suite.Equal(landlordRef, *ledger.Owner)
	suite.Len(ledger.Charges, 3)
	suite.True(dec("30000").Equal(ledger.Ledger.AmountDue))
}

func (suite *LedgerServiceTestSuite) TestGetUnitLedger_UnknownUnit() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(vacantLandlordSnapshot(), nil).Once()

	ledger, err := suite.service.GetUnitLedger(ctx, "nope", fixedNow)

	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetUnitLedger_SnapshotError() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(domain.Snapshot{}, assert.AnError).Once()

	ledger, err := suite.service.GetUnitLedger(ctx, "a1", fixedNow)

	suite.Nil(ledger)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *LedgerServiceTestSuite) TestGetUnitStatus() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(vacantLandlordSnapshot(), nil).Twice()

	march := domain.NewYearMonth(2024, 3)
	status, err := suite.service.GetUnitStatus(ctx, "t1", march, fixedNow)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, status.Status)

	feb := domain.NewYearMonth(2024, 2)
	status, err = suite.service.GetUnitStatus(ctx, "t1", feb, fixedNow)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, status.Status)
}

func (suite *LedgerServiceTestSuite) TestGetOwnerLedgerAndStatus() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", mock.Anything).Return(vacantLandlordSnapshot(), nil)

	portfolio, err := suite.service.GetOwnerLedger(ctx, landlordRef, fixedNow)
	suite.Require().NoError(err)
	suite.Len(portfolio.Units, 1)
	suite.True(dec("30000").Equal(portfolio.TotalDue))

	status, err := suite.service.GetOwnerStatus(ctx, landlordRef, domain.NewYearMonth(2024, 3), fixedNow)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, status.Status)
	suite.Equal("Jane Landlord", status.Name)
}

func (suite *LedgerServiceTestSuite) TestGetOwnerLedger_UnknownOwner() {
	ctx := context.Background()
	suite.mockSnapshots.On("LoadSnapshot", ctx).Return(vacantLandlordSnapshot(), nil).Once()

	ref := domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "ghost"}
	portfolio, err := suite.service.GetOwnerLedger(ctx, ref, fixedNow)

	suite.Nil(portfolio)
	suite.ErrorIs(err, apperrors.ErrOwnerNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	landlordRef = domain.OwnerRef{Kind: domain.OwnerKindLandlord, ID: "ll-1"}
	entityRef   = domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "po-1"}
)

// portfolioSnapshot builds one estate:
//   - A1, B1: vacant units of landlord ll-1 (10000 from Jan, 5000 from Apr)
//   - C1: vacant unit of entity po-1 (3000 from Mar)
//   - T1: agency unit let to a tenant (rent 20000 from Jan)
//   - P1: unit pending handover
func portfolioSnapshot(ownerPaid int64) domain.Snapshot {
	snap := domain.Snapshot{
		Properties: []domain.Property{{
			PropertyID: "prop-1",
			Name:       "Garden Court",
			Units: []domain.Unit{
				{
					UnitID: "a1", PropertyID: "prop-1", Name: "A1", ServiceCharge: decimal.NewFromInt(10000),
					OwnershipType: domain.ExternallyOwned, HandoverStatus: domain.HandedOver, HandoverDate: datePtr(2024, time.January, 5),
					OccupancyStatus: domain.Vacant, LandlordID: "ll-1",
				},
				{
					UnitID: "b1", PropertyID: "prop-1", Name: "B1", ServiceCharge: decimal.NewFromInt(5000),
					OwnershipType: domain.ExternallyOwned, HandoverStatus: domain.HandedOver, HandoverDate: datePtr(2024, time.March, 25),
					OccupancyStatus: domain.Vacant, LandlordID: "ll-1",
				},
				{
					UnitID: "c1", PropertyID: "prop-1", Name: "C1", ServiceCharge: decimal.NewFromInt(3000),
					OwnershipType: domain.ExternallyOwned, HandoverStatus: domain.HandedOver, HandoverDate: datePtr(2024, time.February, 20),
					OccupancyStatus: domain.Vacant,
				},
				{
					UnitID: "t1", PropertyID: "prop-1", Name: "T1", RentAmount: decimal.NewFromInt(20000),
					OwnershipType: domain.SelfManaged, HandoverStatus: domain.HandedOver,
					OccupancyStatus: domain.Occupied,
				},
				{
					UnitID: "p1", PropertyID: "prop-1", Name: "P1", ServiceCharge: decimal.NewFromInt(4000),
					OwnershipType: domain.SelfManaged, HandoverStatus: domain.PendingHandover,
					OccupancyStatus: domain.Vacant,
				},
			},
		}},
		Occupants: []domain.Occupant{
			{
				OccupantID: "occ-tenant", UnitID: "t1", PropertyID: "prop-1", ResidentType: domain.ResidentTenant,
				Lease: domain.Lease{StartDate: datePtr(2024, time.January, 1)},
			},
			{
				OccupantID: "occ-ll-1", UnitID: "a1", PropertyID: "prop-1", ResidentType: domain.ResidentOwnerBilling,
				Owner: &landlordRef,
			},
		},
		Payments: []domain.Payment{
			{PaymentID: "rent-apr", OccupantID: "occ-tenant", Amount: decimal.NewFromInt(20000), PaymentDate: date(2024, time.April, 15), PaymentType: domain.PaymentRent, Status: domain.PaymentPaid},
			{PaymentID: "water-mar", OccupantID: "occ-tenant", Amount: decimal.NewFromInt(500), PaymentDate: date(2024, time.March, 10), PaymentType: domain.PaymentWater, Status: domain.PaymentPaid},
		},
		Landlords:    []domain.Owner{domain.NewLandlordOwner("ll-1", "Jane Landlord")},
		EntityOwners: []domain.Owner{domain.NewEntityOwner("po-1", "Acme Holdings", []string{"c1"})},
	}
	if ownerPaid > 0 {
		snap.Payments = append(snap.Payments, domain.Payment{
			PaymentID: "owner-feb", OccupantID: "occ-ll-1", Amount: decimal.NewFromInt(ownerPaid),
			PaymentDate: date(2024, time.February, 1), PaymentType: domain.PaymentServiceCharge, Status: domain.PaymentPaid,
		})
	}
	return snap
}

// singleUnitSnapshot is the handover-on-the-5th unit occupied by a homeowner.
func singleUnitSnapshot(payments ...domain.Payment) domain.Snapshot {
	for i := range payments {
		payments[i].OccupantID = "occ-1"
	}
	return domain.Snapshot{
		Properties: []domain.Property{{
			PropertyID: "prop-1",
			Units: []domain.Unit{{
				UnitID: "u-1", PropertyID: "prop-1", Name: "A1", ServiceCharge: decimal.NewFromInt(10000),
				OwnershipType: domain.SelfManaged, HandoverStatus: domain.HandedOver, HandoverDate: datePtr(2024, time.January, 5),
				OccupancyStatus: domain.Occupied,
			}},
		}},
		Occupants: []domain.Occupant{{OccupantID: "occ-1", UnitID: "u-1", PropertyID: "prop-1", ResidentType: domain.ResidentHomeowner}},
		Payments:  payments,
	}
}

// residentOwnerSnapshot is entity po-9 holding h1, where a homeowner representing
// po-9 lives, and the vacant v1. Both owe 10000 a month from January.
func residentOwnerSnapshot(payments ...domain.Payment) domain.Snapshot {
	ref := domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "po-9"}
	unit := func(id string, occupancy domain.OccupancyStatus) domain.Unit {
		return domain.Unit{
			UnitID: id, PropertyID: "prop-9", Name: strings.ToUpper(id), ServiceCharge: decimal.NewFromInt(10000),
			OwnershipType: domain.ExternallyOwned, HandoverStatus: domain.HandedOver, HandoverDate: datePtr(2024, time.January, 5),
			OccupancyStatus: occupancy,
		}
	}
	return domain.Snapshot{
		Properties: []domain.Property{{
			PropertyID: "prop-9",
			Name:       "Hill View",
			Units:      []domain.Unit{unit("h1", domain.Occupied), unit("v1", domain.Vacant)},
		}},
		Occupants: []domain.Occupant{
			{OccupantID: "occ-home", UnitID: "h1", PropertyID: "prop-9", ResidentType: domain.ResidentHomeowner, Owner: &ref},
			{OccupantID: "occ-bill", UnitID: "v1", PropertyID: "prop-9", ResidentType: domain.ResidentOwnerBilling, Owner: &ref},
		},
		Payments:     payments,
		EntityOwners: []domain.Owner{domain.NewEntityOwner("po-9", "Hill Holdings", []string{"h1", "v1"})},
	}
}

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
	asOf   time.Time
	april  domain.YearMonth
}

func (s *EngineTestSuite) SetupTest() {
	s.engine = NewEngine(DefaultRules())
	s.asOf = date(2024, time.April, 15)
	s.april = domain.NewYearMonth(2024, time.April)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) TestUnitLedger_SinglePaymentScenario() {
	snap := singleUnitSnapshot(payment("p-1", date(2024, time.February, 1), 10000))

	l, err := s.engine.UnitLedger(snap, "u-1", s.asOf)
	s.Require().NoError(err)

	s.True(l.Billable)
	s.Equal("occ-1", l.OccupantID)
	s.Equal(domain.PaymentServiceCharge, l.Kind)
	s.Len(l.Charges, 4)
	s.True(decimal.NewFromInt(30000).Equal(l.Ledger.Balance))

	status, err := s.engine.UnitStatus(snap, "u-1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, status.Status)
	s.True(decimal.NewFromInt(30000).Equal(status.AmountDue))
}

func (s *EngineTestSuite) TestUnitLedger_FullyPaidScenario() {
	snap := singleUnitSnapshot(
		payment("p-1", date(2024, time.January, 1), 10000),
		payment("p-2", date(2024, time.February, 1), 10000),
		payment("p-3", date(2024, time.March, 1), 10000),
		payment("p-4", date(2024, time.April, 1), 10000),
	)

	status, err := s.engine.UnitStatus(snap, "u-1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, status.Status)
	s.True(status.AmountDue.IsZero())
}

func (s *EngineTestSuite) TestUnitLedger_IgnoresPaymentsAfterAsOf() {
	snap := singleUnitSnapshot(payment("late", date(2024, time.April, 20), 40000))

	l, err := s.engine.UnitLedger(snap, "u-1", s.asOf)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(40000).Equal(l.Ledger.AmountDue))
}

func (s *EngineTestSuite) TestUnitLedger_TenantPaysRent() {
	l, err := s.engine.UnitLedger(portfolioSnapshot(0), "t1", s.asOf)
	s.Require().NoError(err)

	s.Equal(domain.PaymentRent, l.Kind)
	s.Equal(SourceLeaseStart, l.Resolution.Source)
	s.Len(l.Charges, 4)
	s.True(decimal.NewFromInt(60000).Equal(l.Ledger.AmountDue), "water payment does not settle rent")
}

func (s *EngineTestSuite) TestUnitLedger_NonBillableUnit() {
	snap := portfolioSnapshot(0)

	l, err := s.engine.UnitLedger(snap, "p1", s.asOf)
	s.Require().NoError(err)
	s.False(l.Billable)
	s.Empty(l.Charges)
	s.Empty(l.Ledger.Entries)
	s.Require().Len(l.Issues, 1)
	s.Equal(domain.IssueNoOccupant, l.Issues[0].Code)

	status, err := s.engine.UnitStatus(snap, "p1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusNotApplicable, status.Status)
}

func (s *EngineTestSuite) TestUnitLedger_OccupiedButNotHandedOver() {
	snap := singleUnitSnapshot()
	snap.Properties[0].Units[0].HandoverStatus = domain.PendingHandover
	snap.Properties[0].Units[0].HandoverDate = nil

	status, err := s.engine.UnitStatus(snap, "u-1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusNotApplicable, status.Status)
	s.True(status.AmountDue.IsZero())
}

func (s *EngineTestSuite) TestUnitLedger_ZeroChargeAmount() {
	snap := singleUnitSnapshot()
	snap.Properties[0].Units[0].ServiceCharge = decimal.Zero

	status, err := s.engine.UnitStatus(snap, "u-1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusNotApplicable, status.Status)
	s.Require().Len(status.Issues, 1)
	s.Equal(domain.IssueInvalidChargeAmount, status.Issues[0].Code)
}

func (s *EngineTestSuite) TestUnitLedger_UnknownUnit() {
	_, err := s.engine.UnitLedger(portfolioSnapshot(0), "missing", s.asOf)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EngineTestSuite) TestUnitLedger_VacantOwnerUnitUsesOwnerAllocation() {
	snap := portfolioSnapshot(40000)

	a1, err := s.engine.UnitLedger(snap, "a1", s.asOf)
	s.Require().NoError(err)
	s.Require().NotNil(a1.Owner)
	s.Equal(landlordRef, *a1.Owner)
	s.True(a1.Ledger.AmountDue.IsZero())
	s.Require().Len(a1.Ledger.Entries, 5)
	s.Equal("owner-feb", a1.Ledger.Entries[2].PaymentID)

	b1, err := s.engine.UnitLedger(snap, "b1", s.asOf)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(5000).Equal(b1.Ledger.AmountDue))
	s.Equal(domain.NewYearMonth(2024, time.April), b1.Resolution.Start)
}

func (s *EngineTestSuite) TestOwnerStatus_OnePaidOnePending() {
	result, err := s.engine.OwnerStatus(portfolioSnapshot(40000), landlordRef, s.april, s.asOf)
	s.Require().NoError(err)

	s.Require().Len(result.Units, 2)
	s.Equal(domain.StatusPaid, result.Units[0].Status)
	s.Equal(domain.StatusPending, result.Units[1].Status)
	s.Equal(domain.StatusPending, result.Status)
	s.True(decimal.NewFromInt(5000).Equal(result.TotalDue))
}

func (s *EngineTestSuite) TestOwnerStatus_AllPaid() {
	result, err := s.engine.OwnerStatus(portfolioSnapshot(45000), landlordRef, s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, result.Status)
	s.True(result.TotalDue.IsZero())
}

func (s *EngineTestSuite) TestOwnerBalance_Unknown() {
	_, err := s.engine.OwnerBalance(portfolioSnapshot(0), domain.OwnerRef{Kind: domain.OwnerKindLandlord, ID: "nobody"}, s.asOf)
	s.ErrorIs(err, apperrors.ErrOwnerNotFound)

	_, err = s.engine.OwnerStatus(portfolioSnapshot(0), domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "nobody"}, s.april, s.asOf)
	s.ErrorIs(err, apperrors.ErrOwnerNotFound)
}

func (s *EngineTestSuite) TestOwnerBalance_ConsolidatesAllUnits() {
	p, err := s.engine.OwnerBalance(portfolioSnapshot(20000), landlordRef, s.asOf)
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(45000).Equal(p.Ledger.TotalCharges))
	s.True(decimal.NewFromInt(20000).Equal(p.Ledger.TotalPayments))
	s.True(decimal.NewFromInt(25000).Equal(p.TotalDue))

	a1, ok := p.Position("a1")
	s.Require().True(ok)
	s.True(decimal.NewFromInt(20000).Equal(a1.AmountDue))
	b1, ok := p.Position("b1")
	s.Require().True(ok)
	s.True(decimal.NewFromInt(5000).Equal(b1.AmountDue))
}

func (s *EngineTestSuite) TestVacantArrears() {
	accounts := s.engine.VacantArrears(portfolioSnapshot(20000), s.asOf)

	s.Require().Len(accounts, 2)

	landlord := accounts[0]
	s.Equal(landlordRef, landlord.Owner)
	s.Equal("Jane Landlord", landlord.OwnerName)
	s.True(decimal.NewFromInt(25000).Equal(landlord.TotalDue))
	s.Equal(1, landlord.MonthsInArrears)
	s.Require().Len(landlord.Units, 2)
	s.Equal("a1", landlord.Units[0].UnitID)
	s.Equal("Garden Court", landlord.Units[0].PropertyName)
	s.Equal(1, landlord.Units[0].MonthsInArrears)
	s.Equal([]domain.YearMonth{domain.NewYearMonth(2024, time.March), s.april}, landlord.Units[0].UnpaidMonths)
	s.Equal(0, landlord.Units[1].MonthsInArrears)

	entity := accounts[1]
	s.Equal(entityRef, entity.Owner)
	s.True(decimal.NewFromInt(6000).Equal(entity.TotalDue))
	s.Equal(1, entity.MonthsInArrears)
}

func (s *EngineTestSuite) TestVacantArrears_SkipsSettledAndOccupied() {
	snap := portfolioSnapshot(45000)
	snap.Properties[0].Units[2].OccupancyStatus = domain.Occupied

	s.Empty(s.engine.VacantArrears(snap, s.asOf))
}

func (s *EngineTestSuite) TestPortfolioSummary() {
	summary := s.engine.PortfolioSummary(portfolioSnapshot(20000), s.april, s.asOf)

	s.Equal(0, summary.PaidUnits)
	s.Equal(4, summary.PendingUnits)
	s.Equal(1, summary.NotApplicable)
	s.True(decimal.NewFromInt(91000).Equal(summary.TotalDue), "got %s", summary.TotalDue)
	s.True(decimal.NewFromInt(20000).Equal(summary.CollectedMonth))
	s.Require().Len(summary.Issues, 1)
	s.Equal("p1", summary.Issues[0].UnitID)
}

func TestComputeOwnerBalance_DoesNotMutateInput(t *testing.T) {
	units := []UnitPosition{{
		Unit:    domain.OwnedUnit{Unit: domain.Unit{UnitID: "u-1"}},
		Charges: scenarioCharges(),
	}}

	p := ComputeOwnerBalance(domain.NewLandlordOwner("ll-1", "L"), date(2024, time.April, 15), units, []domain.Payment{payment("p-1", date(2024, time.January, 1), 15000)})

	assert.Nil(t, units[0].Allocations)
	require.Len(t, p.Units[0].Allocations, 4)
	assert.True(t, decimal.NewFromInt(25000).Equal(p.TotalDue))
	require.Len(t, p.Units[0].Payments, 1)
	assert.True(t, decimal.NewFromInt(15000).Equal(p.Units[0].Payments[0].Amount))
}

func TestSplitPayments_AcrossUnits(t *testing.T) {
	combined := []ownedCharge{
		{unit: 0, charge: Charge{Month: domain.NewYearMonth(2024, time.January), Amount: decimal.NewFromInt(100)}},
		{unit: 1, charge: Charge{Month: domain.NewYearMonth(2024, time.January), Amount: decimal.NewFromInt(50)}},
		{unit: 0, charge: Charge{Month: domain.NewYearMonth(2024, time.February), Amount: decimal.NewFromInt(100)}},
	}
	payments := []domain.Payment{
		payment("late", date(2024, time.March, 1), 500),
		payment("early", date(2024, time.January, 10), 120),
	}

	split := splitPayments(combined, payments, 2)

	require.Len(t, split[0], 2)
	assert.Equal(t, "early", split[0][0].PaymentID)
	assert.True(t, decimal.NewFromInt(100).Equal(split[0][0].Amount))
	assert.Equal(t, "late", split[0][1].PaymentID)
	assert.True(t, decimal.NewFromInt(100).Equal(split[0][1].Amount))

	require.Len(t, split[1], 2)
	assert.True(t, decimal.NewFromInt(20).Equal(split[1][0].Amount))
	assert.True(t, decimal.NewFromInt(30).Equal(split[1][1].Amount))
}

func (s *EngineTestSuite) TestUnitLedger_ResidentOwnerSettledByConsolidatedPayment() {
	settle := payment("consolidated", date(2024, time.April, 2), 80000)
	settle.OccupantID = "occ-bill"
	snap := residentOwnerSnapshot(settle)
	ref := domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "po-9"}

	owner, err := s.engine.OwnerStatus(snap, ref, s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, owner.Status)
	s.True(owner.TotalDue.IsZero())

	h1, err := s.engine.UnitLedger(snap, "h1", s.asOf)
	s.Require().NoError(err)
	s.Equal("occ-home", h1.OccupantID)
	s.Require().NotNil(h1.Owner)
	s.Equal(ref, *h1.Owner)
	s.True(h1.Ledger.AmountDue.IsZero(), "got %s", h1.Ledger.AmountDue)

	status, err := s.engine.UnitStatus(snap, "h1", s.april, s.asOf)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, status.Status)
	s.Equal("occ-home", status.OccupantID)

	summary := s.engine.PortfolioSummary(snap, s.april, s.asOf)
	s.Equal(2, summary.PaidUnits)
	s.Equal(0, summary.PendingUnits)
	s.True(summary.TotalDue.IsZero())
}

func (s *EngineTestSuite) TestUnitLedger_ResidentOwnerPaymentSettlesOldestOwnerCharge() {
	own := payment("homeowner-jan", date(2024, time.January, 10), 10000)
	own.OccupantID = "occ-home"
	snap := residentOwnerSnapshot(own)

	h1, err := s.engine.UnitLedger(snap, "h1", s.asOf)
	s.Require().NoError(err)
	v1, err := s.engine.UnitLedger(snap, "v1", s.asOf)
	s.Require().NoError(err)

	// January of h1 comes first in unit order, so the homeowner's payment lands there.
	s.True(decimal.NewFromInt(30000).Equal(h1.Ledger.AmountDue), "got %s", h1.Ledger.AmountDue)
	s.True(decimal.NewFromInt(40000).Equal(v1.Ledger.AmountDue), "got %s", v1.Ledger.AmountDue)

	p, err := s.engine.OwnerBalance(snap, domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "po-9"}, s.asOf)
	s.Require().NoError(err)
	s.True(p.TotalDue.Equal(h1.Ledger.AmountDue.Add(v1.Ledger.AmountDue)))
}

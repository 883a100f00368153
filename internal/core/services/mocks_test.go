package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) LoadSnapshotInTx(ctx context.Context, tx pgx.Tx) (domain.Snapshot, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSnapshotRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock OwnerRepository ---
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) LockOwnerInTx(ctx context.Context, tx pgx.Tx, ref domain.OwnerRef) error {
	args := m.Called(ctx, tx, ref)
	return args.Error(0)
}

// --- Mock OccupantRepository ---
type MockOccupantRepository struct {
	mock.Mock
}

func (m *MockOccupantRepository) FindOccupantByID(ctx context.Context, occupantID string) (*domain.Occupant, error) {
	args := m.Called(ctx, occupantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupant), args.Error(1)
}

func (m *MockOccupantRepository) UpdateOccupantBalance(ctx context.Context, occupantID string, due decimal.Decimal, status domain.BillingStatus, recomputedAt time.Time) error {
	args := m.Called(ctx, occupantID, due, status, recomputedAt)
	return args.Error(0)
}

func (m *MockOccupantRepository) FindOrCreateBillingOccupantInTx(ctx context.Context, tx pgx.Tx, candidate domain.Occupant) (*domain.Occupant, bool, error) {
	args := m.Called(ctx, tx, candidate)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Occupant), args.Bool(1), args.Error(2)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByOccupant(ctx context.Context, occupantID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, occupantID, limit, nextToken)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return payments, token, args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEdit), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentWithEdit(ctx context.Context, payment domain.Payment, edit domain.PaymentEdit, expectedVersion int64) error {
	args := m.Called(ctx, payment, edit, expectedVersion)
	return args.Error(0)
}

// fakeTx stands in for an open transaction; the mocked repositories never use it.
type fakeTx struct {
	pgx.Tx
}

// --- Fixtures ---

var (
	landlordRef = domain.OwnerRef{Kind: domain.OwnerKindLandlord, ID: "ll-1"}
	fixedNow    = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
)

func clock() time.Time { return fixedNow }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// vacantLandlordSnapshot has one vacant unit handed over on 2024-01-05 at 10000 a month,
// owned by landlord ll-1, and one tenant unit at 20000 rent from 2024-02-01 with
// February paid.
func vacantLandlordSnapshot() domain.Snapshot {
	handover := date(2024, 1, 5)
	leaseStart := date(2024, 2, 1)
	return domain.Snapshot{
		Properties: []domain.Property{{
			PropertyID: "prop-1",
			Name:       "Riverside",
			Units: []domain.Unit{
				{
					UnitID:          "a1",
					PropertyID:      "prop-1",
					Name:            "A1",
					ServiceCharge:   dec("10000"),
					OwnershipType:   domain.ExternallyOwned,
					HandoverStatus:  domain.HandedOver,
					HandoverDate:    &handover,
					OccupancyStatus: domain.Vacant,
					LandlordID:      "ll-1",
				},
				{
					UnitID:          "t1",
					PropertyID:      "prop-1",
					Name:            "T1",
					RentAmount:      dec("20000"),
					ServiceCharge:   dec("3000"),
					OwnershipType:   domain.SelfManaged,
					HandoverStatus:  domain.HandedOver,
					OccupancyStatus: domain.Occupied,
				},
			},
		}},
		Occupants: []domain.Occupant{{
			OccupantID:   "occ-t1",
			Name:         "Tenant One",
			UnitID:       "t1",
			PropertyID:   "prop-1",
			ResidentType: domain.ResidentTenant,
			Lease:        domain.Lease{StartDate: &leaseStart},
		}},
		Payments: []domain.Payment{{
			PaymentID:   "pay-t1",
			OccupantID:  "occ-t1",
			Amount:      dec("20000"),
			PaymentDate: date(2024, 2, 3),
			PaymentType: domain.PaymentRent,
			Status:      domain.PaymentPaid,
		}},
		Landlords: []domain.Owner{{Ref: landlordRef, Name: "Jane Landlord", Email: "jane@example.com"}},
	}
}

// billingOccupant is the owner billing account of landlord ll-1.
func billingOccupant() domain.Occupant {
	ref := landlordRef
	return domain.Occupant{
		OccupantID:   "occ-bill",
		Name:         "Jane Landlord",
		UnitID:       "a1",
		PropertyID:   "prop-1",
		ResidentType: domain.ResidentOwnerBilling,
		Owner:        &ref,
	}
}

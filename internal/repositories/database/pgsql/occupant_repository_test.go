package pgsql

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var billingOwner = domain.OwnerRef{Kind: domain.OwnerKindEntity, ID: "po-1"}

type OccupantRepositoryTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo portsrepo.OccupantRepositoryFacade
	ctx  context.Context
}

func TestOccupantRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OccupantRepositoryTestSuite))
}

func (s *OccupantRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool = newTestPool(s.T())
	s.repo = newPgxOccupantRepository(s.pool)
}

func (s *OccupantRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE payment_edits, payments, occupants, property_owner_units, property_owners, units, properties, landlords CASCADE;`)
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `
		INSERT INTO properties (property_id, name, created_by, last_updated_by) VALUES ('prop-1', 'Garden Court', 'seed', 'seed');
		INSERT INTO units (unit_id, property_id, name, service_charge, ownership_type, management_status,
		                   handover_status, handover_date, occupancy_status, created_by, last_updated_by)
		VALUES ('u-1', 'prop-1', 'A1', 10000, 'EXTERNALLY_OWNED', 'MANAGED', 'HANDED_OVER', '2024-01-05', 'VACANT', 'seed', 'seed'),
		       ('u-2', 'prop-1', 'A2', 10000, 'EXTERNALLY_OWNED', 'MANAGED', 'HANDED_OVER', '2024-01-05', 'OCCUPIED', 'seed', 'seed');
		INSERT INTO property_owners (owner_id, name, created_by, last_updated_by) VALUES ('po-1', 'Acme Holdings', 'seed', 'seed');
		INSERT INTO property_owner_units (owner_id, unit_id, position) VALUES ('po-1', 'u-1', 0), ('po-1', 'u-2', 1);
	`)
	s.Require().NoError(err)
}

func (s *OccupantRepositoryTestSuite) candidate(id string) domain.Occupant {
	ref := billingOwner
	now := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	return domain.Occupant{
		OccupantID:   id,
		Name:         "Acme Holdings",
		UnitID:       "u-1",
		PropertyID:   "prop-1",
		ResidentType: domain.ResidentOwnerBilling,
		Owner:        &ref,
		DueBalance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: "user-1", LastUpdatedAt: now, LastUpdatedBy: "user-1", Version: 1,
		},
	}
}

// findOrCreate runs one call in its own committed transaction.
func (s *OccupantRepositoryTestSuite) findOrCreate(candidate domain.Occupant) (*domain.Occupant, bool) {
	tx, err := s.pool.Begin(s.ctx)
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(s.ctx) }()

	occupant, created, err := s.repo.FindOrCreateBillingOccupantInTx(s.ctx, tx, candidate)
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit(s.ctx))
	return occupant, created
}

func (s *OccupantRepositoryTestSuite) countRepresentatives(residentType domain.ResidentType) int {
	var n int
	err := s.pool.QueryRow(s.ctx,
		`SELECT count(*) FROM occupants WHERE owner_kind = $1 AND owner_id = $2 AND resident_type = $3;`,
		string(billingOwner.Kind), billingOwner.ID, string(residentType)).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *OccupantRepositoryTestSuite) TestFindOrCreate_IsIdempotent() {
	first, created := s.findOrCreate(s.candidate("occ-a"))
	s.True(created)
	s.Equal("occ-a", first.OccupantID)
	s.Require().NotNil(first.Owner)
	s.Equal(billingOwner, *first.Owner)

	second, created := s.findOrCreate(s.candidate("occ-b"))
	s.False(created)
	s.Equal("occ-a", second.OccupantID)

	s.Equal(1, s.countRepresentatives(domain.ResidentOwnerBilling))
}

func (s *OccupantRepositoryTestSuite) TestFindOrCreate_ReusesResidentHomeowner() {
	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO occupants (occupant_id, name, unit_id, property_id, resident_type, owner_kind, owner_id, created_by, last_updated_by)
		VALUES ('occ-home', 'Acme Director', 'u-2', 'prop-1', 'HOMEOWNER', 'ENTITY', 'po-1', 'seed', 'seed');
	`)
	s.Require().NoError(err)

	occupant, created := s.findOrCreate(s.candidate("occ-new"))

	s.False(created)
	s.Equal("occ-home", occupant.OccupantID)
	s.Equal(domain.ResidentHomeowner, occupant.ResidentType)
	s.Equal(0, s.countRepresentatives(domain.ResidentOwnerBilling))
}

func (s *OccupantRepositoryTestSuite) TestFindOrCreate_IgnoresArchivedAccount() {
	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO occupants (occupant_id, name, unit_id, property_id, resident_type, owner_kind, owner_id, is_archived, created_by, last_updated_by)
		VALUES ('occ-old', 'Acme Holdings', 'u-1', 'prop-1', 'OWNER_BILLING', 'ENTITY', 'po-1', TRUE, 'seed', 'seed');
	`)
	s.Require().NoError(err)

	occupant, created := s.findOrCreate(s.candidate("occ-new"))

	s.True(created)
	s.Equal("occ-new", occupant.OccupantID)
	s.Equal(2, s.countRepresentatives(domain.ResidentOwnerBilling))
}

func (s *OccupantRepositoryTestSuite) TestFindOrCreate_ConcurrentCallersShareOneAccount() {
	first, err := s.pool.Begin(s.ctx)
	s.Require().NoError(err)
	defer func() { _ = first.Rollback(s.ctx) }()

	account, isNew, err := s.repo.FindOrCreateBillingOccupantInTx(s.ctx, first, s.candidate("occ-a"))
	s.Require().NoError(err)
	s.True(isNew)

	type outcome struct {
		occupant *domain.Occupant
		created  bool
		err      error
	}
	done := make(chan outcome, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := pgx.BeginFunc(s.ctx, s.pool, func(tx pgx.Tx) error {
			occupant, isNew, err := s.repo.FindOrCreateBillingOccupantInTx(s.ctx, tx, s.candidate("occ-b"))
			done <- outcome{occupant: occupant, created: isNew, err: err}
			return err
		})
		if err != nil {
			s.T().Logf("second transaction: %v", err)
		}
	}()

	// The second insert waits on the unique index until the first commits.
	time.Sleep(200 * time.Millisecond)
	s.Require().NoError(first.Commit(s.ctx))
	wg.Wait()

	got := <-done
	s.Require().NoError(got.err)
	s.False(got.created)
	s.Equal(account.OccupantID, got.occupant.OccupantID)
	s.Equal(1, s.countRepresentatives(domain.ResidentOwnerBilling))
}

func (s *OccupantRepositoryTestSuite) TestFindOrCreate_RequiresOwner() {
	tx, err := s.pool.Begin(s.ctx)
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(s.ctx) }()

	c := s.candidate("occ-a")
	c.Owner = nil
	_, _, err = s.repo.FindOrCreateBillingOccupantInTx(s.ctx, tx, c)
	s.ErrorIs(err, apperrors.ErrValidation)
}

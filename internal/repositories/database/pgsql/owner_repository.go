package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_billing_app/internal/models"
	"github.com/SscSPs/property_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const landlordQuery = `
	SELECT landlord_id, name, email, phone, bank_account,
	       created_at, created_by, last_updated_at, last_updated_by, version
	FROM landlords
`

// Units are aggregated in assignment order so owner ledgers are stable.
const entityOwnerQuery = `
	SELECT o.owner_id, o.name, o.email, o.phone,
	       COALESCE(array_agg(ou.unit_id ORDER BY ou.position, ou.unit_id) FILTER (WHERE ou.unit_id IS NOT NULL), '{}') AS assigned_unit_ids,
	       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by, o.version
	FROM property_owners o
	LEFT JOIN property_owner_units ou ON ou.owner_id = o.owner_id
`

type PgxOwnerRepository struct {
	BaseRepository
}

// newPgxOwnerRepository creates a new repository for landlords and property owners.
func newPgxOwnerRepository(pool *pgxpool.Pool) portsrepo.OwnerRepositoryFacade {
	return &PgxOwnerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OwnerRepositoryFacade = (*PgxOwnerRepository)(nil)

func scanLandlord(row pgx.Row) (models.Landlord, error) {
	var m models.Landlord
	err := row.Scan(
		&m.LandlordID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.BankAccount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func scanEntityOwner(row pgx.Row) (models.PropertyOwner, error) {
	var m models.PropertyOwner
	err := row.Scan(
		&m.OwnerID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.AssignedUnitIDs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// LockOwnerInTx serialises consolidated payments of one owner until the transaction ends.
func (r *PgxOwnerRepository) LockOwnerInTx(ctx context.Context, tx pgx.Tx, ref domain.OwnerRef) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, ref.String()); err != nil {
		return apperrors.NewAppError(500, "failed to lock owner "+ref.String(), err)
	}
	return nil
}

func listLandlords(ctx context.Context, q querier) ([]domain.Owner, error) {
	rows, err := q.Query(ctx, landlordQuery+` ORDER BY name, landlord_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query landlords: %w", err)
	}
	modelLandlords, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Landlord, error) {
		return scanLandlord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan landlords: %w", err)
	}
	owners := make([]domain.Owner, 0, len(modelLandlords))
	for _, m := range modelLandlords {
		owners = append(owners, mapping.ToDomainLandlordOwner(m))
	}
	return owners, nil
}

func listEntityOwners(ctx context.Context, q querier) ([]domain.Owner, error) {
	rows, err := q.Query(ctx, entityOwnerQuery+` GROUP BY o.owner_id ORDER BY o.name, o.owner_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query property owners: %w", err)
	}
	modelOwners, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PropertyOwner, error) {
		return scanEntityOwner(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan property owners: %w", err)
	}
	owners := make([]domain.Owner, 0, len(modelOwners))
	for _, m := range modelOwners {
		owners = append(owners, mapping.ToDomainEntityOwner(m))
	}
	return owners, nil
}

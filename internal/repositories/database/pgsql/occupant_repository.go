package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_billing_app/internal/models"
	"github.com/SscSPs/property_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const occupantColumns = `occupant_id, name, email, phone, unit_id, property_id, resident_type,
	owner_kind, owner_id, lease_start_date, last_billed_period, payment_status,
	due_balance, balance_recomputed_at, is_archived,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxOccupantRepository struct {
	BaseRepository
}

// newPgxOccupantRepository creates a new repository for occupants.
func newPgxOccupantRepository(pool *pgxpool.Pool) portsrepo.OccupantRepositoryFacade {
	return &PgxOccupantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OccupantRepositoryFacade = (*PgxOccupantRepository)(nil)

func scanOccupant(row pgx.Row) (models.Occupant, error) {
	var m models.Occupant
	err := row.Scan(
		&m.OccupantID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.UnitID,
		&m.PropertyID,
		&m.ResidentType,
		&m.OwnerKind,
		&m.OwnerID,
		&m.LeaseStartDate,
		&m.LastBilledPeriod,
		&m.PaymentStatus,
		&m.DueBalance,
		&m.BalanceRecomputedAt,
		&m.IsArchived,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// FindOccupantByID retrieves an occupant by ID, archived or not.
func (r *PgxOccupantRepository) FindOccupantByID(ctx context.Context, occupantID string) (*domain.Occupant, error) {
	query := `SELECT ` + occupantColumns + ` FROM occupants WHERE occupant_id = $1;`
	m, err := scanOccupant(r.Pool.QueryRow(ctx, query, occupantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find occupant %s: %w", occupantID, err)
	}
	occupant := mapping.ToDomainOccupant(m)
	return &occupant, nil
}

func listOccupants(ctx context.Context, q querier) ([]domain.Occupant, error) {
	rows, err := q.Query(ctx, `SELECT `+occupantColumns+` FROM occupants ORDER BY created_at, occupant_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query occupants: %w", err)
	}
	modelOccupants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Occupant, error) {
		return scanOccupant(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan occupants: %w", err)
	}

	occupants := make([]domain.Occupant, 0, len(modelOccupants))
	for _, m := range modelOccupants {
		occupants = append(occupants, mapping.ToDomainOccupant(m))
	}
	return occupants, nil
}

// UpdateOccupantBalance stores the recomputed balance cache of an occupant.
// The version is not bumped: the cache is derived data, not a user edit.
func (r *PgxOccupantRepository) UpdateOccupantBalance(ctx context.Context, occupantID string, due decimal.Decimal, status domain.BillingStatus, recomputedAt time.Time) error {
	query := `
		UPDATE occupants
		SET due_balance = $2,
		    payment_status = $3,
		    balance_recomputed_at = $4
		WHERE occupant_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, occupantID, due, string(status), recomputedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance of occupant "+occupantID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: occupant %s", apperrors.ErrNotFound, occupantID)
	}
	return nil
}

// representativeQuery picks the live occupant paying for an owner: one on the target
// unit first, then resident homeowners, then the owner billing account.
const representativeQuery = `
	SELECT ` + occupantColumns + `
	FROM occupants
	WHERE owner_kind = $1 AND owner_id = $2
	  AND resident_type IN ('HOMEOWNER', 'OWNER_BILLING') AND NOT is_archived
	ORDER BY unit_id = $3 DESC, resident_type = 'OWNER_BILLING', created_at, occupant_id
	LIMIT 1;
`

// FindOrCreateBillingOccupantInTx returns a live occupant representing candidate.Owner,
// inserting candidate as its billing account when there is none. The partial unique
// index on (owner_kind, owner_id) keeps concurrent callers from creating two.
func (r *PgxOccupantRepository) FindOrCreateBillingOccupantInTx(ctx context.Context, tx pgx.Tx, candidate domain.Occupant) (*domain.Occupant, bool, error) {
	if candidate.Owner == nil {
		return nil, false, fmt.Errorf("%w: billing occupant requires an owner", apperrors.ErrValidation)
	}
	m := mapping.ToModelOccupant(candidate)

	found, err := scanOccupant(tx.QueryRow(ctx, representativeQuery, m.OwnerKind, m.OwnerID, m.UnitID))
	if err == nil {
		occupant := mapping.ToDomainOccupant(found)
		return &occupant, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to look up occupant of %s: %w", candidate.Owner, err)
	}

	insert := `
		INSERT INTO occupants (` + occupantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (owner_kind, owner_id) WHERE resident_type = 'OWNER_BILLING' AND NOT is_archived
		DO NOTHING
		RETURNING ` + occupantColumns + `;
	`
	created, err := scanOccupant(tx.QueryRow(ctx, insert,
		m.OccupantID,
		m.Name,
		m.Email,
		m.Phone,
		m.UnitID,
		m.PropertyID,
		m.ResidentType,
		m.OwnerKind,
		m.OwnerID,
		m.LeaseStartDate,
		m.LastBilledPeriod,
		m.PaymentStatus,
		m.DueBalance,
		m.BalanceRecomputedAt,
		m.IsArchived,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	))
	if err == nil {
		occupant := mapping.ToDomainOccupant(created)
		return &occupant, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, wrapWriteError(err, "failed to insert billing occupant for %s", candidate.Owner)
	}

	// Conflict: a concurrent transaction created the account after the lookup.
	existingQuery := `
		SELECT ` + occupantColumns + `
		FROM occupants
		WHERE owner_kind = $1 AND owner_id = $2
		  AND resident_type = 'OWNER_BILLING' AND NOT is_archived;
	`
	existing, err := scanOccupant(tx.QueryRow(ctx, existingQuery, m.OwnerKind, m.OwnerID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load billing occupant for %s: %w", candidate.Owner, err)
	}
	occupant := mapping.ToDomainOccupant(existing)
	return &occupant, false, nil
}

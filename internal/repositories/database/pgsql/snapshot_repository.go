package pgsql

import (
	"context"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a repository that materialises the billing snapshot.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryWithTx {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SnapshotRepositoryWithTx = (*PgxSnapshotRepository)(nil)

// LoadSnapshot reads every record the billing engine needs under one
// repeatable-read transaction so the tables agree with each other.
func (r *PgxSnapshotRepository) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()
	return loadSnapshot(ctx, tx)
}

// LoadSnapshotInTx reads the snapshot through an open transaction.
func (r *PgxSnapshotRepository) LoadSnapshotInTx(ctx context.Context, tx pgx.Tx) (domain.Snapshot, error) {
	return loadSnapshot(ctx, tx)
}

func loadSnapshot(ctx context.Context, q querier) (domain.Snapshot, error) {
	var (
		snap domain.Snapshot
		err  error
	)
	if snap.Properties, err = listProperties(ctx, q); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Occupants, err = listOccupants(ctx, q); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Payments, err = listPayments(ctx, q); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Landlords, err = listLandlords(ctx, q); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.EntityOwners, err = listEntityOwners(ctx, q); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

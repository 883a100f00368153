package pgsql

import (
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OccupantRepo: newPgxOccupantRepository(dbPool),
		OwnerRepo:    newPgxOwnerRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
	}
}

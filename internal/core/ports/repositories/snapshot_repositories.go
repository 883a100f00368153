package repositories

import (
	"context"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SnapshotReader loads everything the billing engine needs in one consistent read
type SnapshotReader interface {
	// LoadSnapshot reads all properties, occupants, payments and owners.
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)

	// LoadSnapshotInTx reads the same data through an open transaction.
	LoadSnapshotInTx(ctx context.Context, tx pgx.Tx) (domain.Snapshot, error)
}

// SnapshotRepositoryWithTx extends SnapshotReader with transaction capabilities
type SnapshotRepositoryWithTx interface {
	SnapshotReader
	TransactionManager
}

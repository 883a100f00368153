package repositories

import (
	"context"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OwnerLocker serialises writes made on behalf of one owner
type OwnerLocker interface {
	// LockOwnerInTx takes a transaction-scoped lock on the owner. It is released on commit or rollback.
	LockOwnerInTx(ctx context.Context, tx pgx.Tx, ref domain.OwnerRef) error
}

// OwnerRepositoryFacade combines all owner-related repository interfaces.
// Owners are read through the snapshot.
type OwnerRepositoryFacade interface {
	OwnerLocker
}

package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapWriteError(t *testing.T) {
	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_occupants_owner_billing"}
		err := wrapWriteError(pgErr, "failed to insert payment %s", "p-1")

		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		assert.Contains(t, err.Error(), "uq_occupants_owner_billing")
		assert.Contains(t, err.Error(), "p-1")
	})

	t.Run("other errors become internal app errors", func(t *testing.T) {
		err := wrapWriteError(errors.New("connection reset"), "failed to insert payment %s", "p-2")

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 500, appErr.Code)
		assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

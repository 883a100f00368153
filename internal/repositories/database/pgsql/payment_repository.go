package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_billing_app/internal/models"
	"github.com/SscSPs/property_billing_app/internal/utils/mapping"
	"github.com/SscSPs/property_billing_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, occupant_id, amount, payment_date, payment_type, for_month,
	status, method, transaction_ref, notes,
	created_at, created_by, last_updated_at, last_updated_by, version`

const defaultPageSize = 20

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments and their edit history.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.OccupantID,
		&m.Amount,
		&m.PaymentDate,
		&m.PaymentType,
		&m.ForMonth,
		&m.Status,
		&m.Method,
		&m.TransactionRef,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func collectPayments(rows pgx.Rows) ([]models.Payment, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		return scanPayment(row)
	})
}

func toDomainPayments(ms []models.Payment) []domain.Payment {
	payments := make([]domain.Payment, 0, len(ms))
	for _, m := range ms {
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	return payments
}

// FindPaymentByID retrieves a single payment.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

func listPayments(ctx context.Context, q querier) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY payment_date, created_at, payment_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	ms, err := collectPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	return toDomainPayments(ms), nil
}

// ListPaymentsByOccupant retrieves one page of an occupant's payments, newest first.
func (r *PgxPaymentRepository) ListPaymentsByOccupant(ctx context.Context, occupantID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	args := []any{occupantID}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
		}
		cursorClause = `AND (payment_date, created_at, payment_id) < ($2, $3, $4)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, fetchLimit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payments
		WHERE occupant_id = $1 %s
		ORDER BY payment_date DESC, created_at DESC, payment_id DESC
		LIMIT $%d;
	`, paymentColumns, cursorClause, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for occupant "+occupantID, err)
	}
	ms, err := collectPayments(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan payments for occupant "+occupantID, err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.PaymentDate, CreatedAt: last.CreatedAt, ID: last.PaymentID})
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return toDomainPayments(ms), nextTokenVal, nil
}

// ListPaymentEdits retrieves the correction history of a payment, oldest first.
func (r *PgxPaymentRepository) ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error) {
	query := `
		SELECT edit_id, payment_id, reason, edited_by, edited_at,
		       previous_amount, new_amount, previous_date, new_date,
		       previous_notes, new_notes, previous_status, new_status
		FROM payment_edits
		WHERE payment_id = $1
		ORDER BY edited_at, edit_id;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edits of payment %s: %w", paymentID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentEdit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan edits of payment %s: %w", paymentID, err)
	}

	edits := make([]domain.PaymentEdit, 0, len(ms))
	for _, m := range ms {
		edits = append(edits, mapping.ToDomainPaymentEdit(m))
	}
	return edits, nil
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	return insertPayment(ctx, r.Pool, payment)
}

// SavePaymentInTx inserts a new payment inside an existing transaction.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	return insertPayment(ctx, tx, payment)
}

func insertPayment(ctx context.Context, q querier, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := q.Exec(ctx, query,
		m.PaymentID,
		m.OccupantID,
		m.Amount,
		m.PaymentDate,
		m.PaymentType,
		m.ForMonth,
		m.Status,
		m.Method,
		m.TransactionRef,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return wrapWriteError(err, "failed to insert payment %s", m.PaymentID)
	}
	return nil
}

// UpdatePaymentWithEdit applies a correction and its audit row in one transaction.
func (r *PgxPaymentRepository) UpdatePaymentWithEdit(ctx context.Context, payment domain.Payment, edit domain.PaymentEdit, expectedVersion int64) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	m := mapping.ToModelPayment(payment)
	update := `
		UPDATE payments
		SET amount = $2,
		    payment_date = $3,
		    notes = $4,
		    status = $5,
		    last_updated_at = $6,
		    last_updated_by = $7,
		    version = version + 1
		WHERE payment_id = $1 AND version = $8;
	`
	cmdTag, err := tx.Exec(ctx, update,
		m.PaymentID,
		m.Amount,
		m.PaymentDate,
		m.Notes,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s at version %d", apperrors.ErrConflict, m.PaymentID, expectedVersion)
	}

	e := mapping.ToModelPaymentEdit(edit)
	insertEdit := `
		INSERT INTO payment_edits (edit_id, payment_id, reason, edited_by, edited_at,
		                           previous_amount, new_amount, previous_date, new_date,
		                           previous_notes, new_notes, previous_status, new_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertEdit,
		e.EditID,
		e.PaymentID,
		e.Reason,
		e.EditedBy,
		e.EditedAt,
		e.PreviousAmount,
		e.NewAmount,
		e.PreviousDate,
		e.NewDate,
		e.PreviousNotes,
		e.NewNotes,
		e.PreviousStatus,
		e.NewStatus,
	)
	if err != nil {
		return wrapWriteError(err, "failed to record edit of payment %s", e.PaymentID)
	}

	return r.Commit(ctx, tx)
}

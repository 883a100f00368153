package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
	"github.com/SscSPs/property_billing_app/internal/utils/accounting"
	"github.com/SscSPs/property_billing_app/internal/utils/pagination"
)

const (
	defaultPaymentPageSize = 20
	minEditReasonLength    = 3
)

// paymentService records and corrects individual payments.
type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	occupantRepo portsrepo.OccupantReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, occupantRepo portsrepo.OccupantReader, opts ...Option) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:  newBaseService(opts),
		paymentRepo:  paymentRepo,
		occupantRepo: occupantRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GetPaymentByID retrieves a single payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get payment", slog.String("payment_id", paymentID))
		}
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPaymentsByOccupant retrieves a page of an occupant's payment history, newest first.
func (s *paymentService) ListPaymentsByOccupant(ctx context.Context, occupantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	if params.NextToken != nil && *params.NextToken != "" {
		if _, err := pagination.DecodeCursor(*params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
	} else {
		params.NextToken = nil
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPaymentPageSize
	}

	if _, err := s.occupantRepo.FindOccupantByID(ctx, occupantID); err != nil {
		return nil, fmt.Errorf("failed to get occupant %s: %w", occupantID, err)
	}

	payments, nextToken, err := s.paymentRepo.ListPaymentsByOccupant(ctx, occupantID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("occupant_id", occupantID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

// ListPaymentEdits retrieves the correction history of a payment.
func (s *paymentService) ListPaymentEdits(ctx context.Context, paymentID string) ([]domain.PaymentEdit, error) {
	if _, err := s.paymentRepo.FindPaymentByID(ctx, paymentID); err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	edits, err := s.paymentRepo.ListPaymentEdits(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment edits", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to list payment edits: %w", err)
	}
	if edits == nil {
		return []domain.PaymentEdit{}, nil
	}
	return edits, nil
}

// RecordPayment persists a new payment for an occupant.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if err := accounting.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if req.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}

	occupant, err := s.occupantRepo.FindOccupantByID(ctx, req.OccupantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupant %s: %w", req.OccupantID, err)
	}
	if occupant.IsArchived {
		return nil, fmt.Errorf("%w: occupant %s is archived", apperrors.ErrValidation, occupant.OccupantID)
	}

	paymentDate := domain.DateOnly(req.PaymentDate)
	forMonth := strings.TrimSpace(req.ForMonth)
	if forMonth == "" {
		forMonth = domain.YearMonthOf(paymentDate).String()
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		OccupantID:     occupant.OccupantID,
		Amount:         accounting.RoundCents(req.Amount),
		PaymentDate:    paymentDate,
		PaymentType:    req.PaymentType,
		ForMonth:       forMonth,
		Status:         domain.PaymentPaid,
		Method:         req.Method,
		TransactionRef: strings.TrimSpace(req.TransactionRef),
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
			Version:       1,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("occupant_id", occupant.OccupantID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPaymentWriteFailed, err)
	}

	s.Metrics.PaymentRecorded(metrics.PaymentSingle)
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("occupant_id", payment.OccupantID),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

// UpdatePayment corrects a payment. The previous values, the reason and the editor
// are kept as an audit entry; the payment itself is never deleted.
func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, editorUserID string) (*domain.Payment, error) {
	reason := strings.TrimSpace(req.Reason)
	if len(reason) < minEditReasonLength {
		return nil, fmt.Errorf("%w: a reason of at least %d characters is required", apperrors.ErrValidation, minEditReasonLength)
	}
	if editorUserID == "" {
		return nil, fmt.Errorf("%w: editor is required", apperrors.ErrValidation)
	}

	current, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	if req.Version != current.Version {
		return nil, fmt.Errorf("%w: payment %s is at version %d, got %d", apperrors.ErrConflict, paymentID, current.Version, req.Version)
	}

	updated := *current
	if req.Amount != nil {
		if err := accounting.ValidatePositive(*req.Amount, "amount"); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		updated.Amount = accounting.RoundCents(*req.Amount)
	}
	if req.PaymentDate != nil {
		if req.PaymentDate.IsZero() {
			return nil, fmt.Errorf("%w: payment date must not be empty", apperrors.ErrValidation)
		}
		updated.PaymentDate = domain.DateOnly(*req.PaymentDate)
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}

	if updated.Amount.Equal(current.Amount) && updated.PaymentDate.Equal(current.PaymentDate) &&
		updated.Notes == current.Notes && updated.Status == current.Status {
		return nil, fmt.Errorf("%w: no changes to apply", apperrors.ErrValidation)
	}

	now := s.Now()
	updated.Version = current.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = editorUserID

	edit := domain.PaymentEdit{
		EditID:         uuid.NewString(),
		PaymentID:      paymentID,
		Reason:         reason,
		EditedBy:       editorUserID,
		EditedAt:       now,
		PreviousAmount: current.Amount,
		NewAmount:      updated.Amount,
		PreviousDate:   current.PaymentDate,
		NewDate:        updated.PaymentDate,
		PreviousNotes:  current.Notes,
		NewNotes:       updated.Notes,
		PreviousStatus: current.Status,
		NewStatus:      updated.Status,
	}

	if err := s.paymentRepo.UpdatePaymentWithEdit(ctx, updated, edit, current.Version); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		}
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}

	s.LogInfo(ctx, "Payment corrected",
		slog.String("payment_id", paymentID),
		slog.String("edit_id", edit.EditID),
		slog.Int64("version", updated.Version))
	return &updated, nil
}

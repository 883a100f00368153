package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

// Rejection reasons reported to metrics.
const (
	rejectNoPendingCharge = "no_pending_charge"
	rejectStaleBalance    = "stale_balance"
)

// consolidatedPaymentService records one payment against the whole balance of an owner.
type consolidatedPaymentService struct {
	BaseService
	snapshots    portsrepo.SnapshotRepositoryWithTx
	ownerLocker  portsrepo.OwnerLocker
	occupantRepo portsrepo.OccupantWriter
	paymentRepo  portsrepo.PaymentWriter
	engine       *billing.Engine
}

// NewConsolidatedPaymentService creates a new consolidated payment service.
func NewConsolidatedPaymentService(
	snapshots portsrepo.SnapshotRepositoryWithTx,
	ownerLocker portsrepo.OwnerLocker,
	occupantRepo portsrepo.OccupantWriter,
	paymentRepo portsrepo.PaymentWriter,
	engine *billing.Engine,
	opts ...Option,
) portssvc.ConsolidatedPaymentSvcFacade {
	return &consolidatedPaymentService{
		BaseService:  newBaseService(opts),
		snapshots:    snapshots,
		ownerLocker:  ownerLocker,
		occupantRepo: occupantRepo,
		paymentRepo:  paymentRepo,
		engine:       engine,
	}
}

var _ portssvc.ConsolidatedPaymentSvcFacade = (*consolidatedPaymentService)(nil)

// RecordConsolidatedPayment runs the whole operation in one transaction holding the
// owner's lock: the balance is recomputed from committed data, the billing occupant
// is found or created and the payment is written. Nothing is persisted on failure.
func (s *consolidatedPaymentService) RecordConsolidatedPayment(ctx context.Context, ref domain.OwnerRef, req dto.ConsolidatedPaymentRequest, creatorUserID string) (*dto.ConsolidatedPaymentResponse, error) {
	logger := s.GetLogger(ctx).With(slog.String("owner", ref.String()))

	tx, err := s.snapshots.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin consolidated payment transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.snapshots.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to roll back consolidated payment", slog.String("error", rbErr.Error()))
		}
	}()

	if err := s.ownerLocker.LockOwnerInTx(ctx, tx, ref); err != nil {
		return nil, fmt.Errorf("failed to lock owner %s: %w", ref, err)
	}

	snap, err := s.snapshots.LoadSnapshotInTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing snapshot: %w", err)
	}

	asOf := s.Now()
	portfolio, err := s.engine.OwnerBalance(snap, ref, asOf)
	if err != nil {
		return nil, err
	}

	if req.ExpectedTotalDue != nil && !req.ExpectedTotalDue.Equal(portfolio.TotalDue) {
		s.Metrics.ConsolidatedRejected(rejectStaleBalance)
		return nil, fmt.Errorf("%w: expected %s, computed %s",
			apperrors.ErrStaleBalance, req.ExpectedTotalDue.String(), portfolio.TotalDue.String())
	}

	planReq := billing.ConsolidatedPaymentRequest{
		PaymentDate:    req.PaymentDate,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	}
	if req.Amount != nil {
		planReq.Amount = *req.Amount
	}
	plan, err := billing.PlanConsolidatedPayment(portfolio, planReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoPendingCharge) {
			s.Metrics.ConsolidatedRejected(rejectNoPendingCharge)
		}
		return nil, err
	}

	now := s.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
		Version:       1,
	}

	candidate := billing.BillingOccupantFor(plan.Owner, plan.TargetUnit)
	candidate.OccupantID = uuid.NewString()
	candidate.AuditFields = audit
	occupant, created, err := s.occupantRepo.FindOrCreateBillingOccupantInTx(ctx, tx, candidate)
	if err != nil {
		logger.Error("Failed to find or create billing occupant", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrOccupantCreationFailed, err)
	}

	payment := plan.Payment
	payment.PaymentID = uuid.NewString()
	payment.OccupantID = occupant.OccupantID
	payment.AuditFields = audit
	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		logger.Error("Failed to save consolidated payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPaymentWriteFailed, err)
	}

	if err := s.snapshots.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit consolidated payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: commit: %w", apperrors.ErrPaymentWriteFailed, err)
	}
	committed = true
	s.Metrics.PaymentRecorded(metrics.PaymentConsolidated)

	remaining := s.remainingDue(snap, ref, asOf, occupant, created, payment)
	logger.Info("Consolidated payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("occupant_id", occupant.OccupantID),
		slog.Bool("occupant_created", created),
		slog.String("amount", payment.Amount.String()),
		slog.String("remaining_due", remaining.String()))

	return &dto.ConsolidatedPaymentResponse{
		Payment:           dto.ToPaymentResponse(&payment),
		OccupantID:        occupant.OccupantID,
		OccupantCreated:   created,
		TargetUnitID:      plan.TargetUnit.Unit.UnitID,
		PreviousTotalDue:  plan.TotalDue,
		RemainingTotalDue: remaining,
	}, nil
}

// remainingDue replays the committed writes onto the snapshot read inside the transaction.
func (s *consolidatedPaymentService) remainingDue(snap domain.Snapshot, ref domain.OwnerRef, asOf time.Time, occupant *domain.Occupant, created bool, payment domain.Payment) decimal.Decimal {
	if created {
		snap.Occupants = append(append([]domain.Occupant{}, snap.Occupants...), *occupant)
	}
	snap.Payments = append(append([]domain.Payment{}, snap.Payments...), payment)
	portfolio, err := s.engine.OwnerBalance(snap, ref, asOf)
	if err != nil {
		return decimal.Zero
	}
	return portfolio.TotalDue
}

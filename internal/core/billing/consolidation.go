package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ConsolidatedPaymentRequest is what an operator supplies to settle an owner's balance.
type ConsolidatedPaymentRequest struct {
	Amount         decimal.Decimal // Zero means the full total due; rounded to cents
	PaymentDate    time.Time
	Method         domain.PaymentMethod
	TransactionRef string
	Notes          string
}

// ConsolidatedPaymentPlan is the single payment to record for an owner, before
// it is attached to a billing occupant.
type ConsolidatedPaymentPlan struct {
	Owner      domain.Owner     `json:"owner"`
	TargetUnit domain.OwnedUnit `json:"targetUnit"`
	TotalDue   decimal.Decimal  `json:"totalDue"`
	Payment    domain.Payment   `json:"payment"`
}

// PlanConsolidatedPayment builds the one payment that covers the owner's outstanding
// balance. It fails with ErrNoPendingCharge when nothing is due.
func PlanConsolidatedPayment(portfolio OwnerPortfolio, req ConsolidatedPaymentRequest) (ConsolidatedPaymentPlan, error) {
	if !portfolio.TotalDue.IsPositive() {
		return ConsolidatedPaymentPlan{}, fmt.Errorf("%w: owner %s has total due %s",
			apperrors.ErrNoPendingCharge, portfolio.Owner.Ref, portfolio.TotalDue.String())
	}
	if req.Amount.IsNegative() {
		return ConsolidatedPaymentPlan{}, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if req.PaymentDate.IsZero() {
		return ConsolidatedPaymentPlan{}, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}

	amount := accounting.RoundCents(req.Amount)
	if amount.IsZero() && !req.Amount.IsZero() {
		return ConsolidatedPaymentPlan{}, fmt.Errorf("%w: amount %s rounds to zero", apperrors.ErrValidation, req.Amount.String())
	}
	if amount.IsZero() {
		amount = portfolio.TotalDue
	}

	var (
		target  *UnitPosition
		covered []string
		first   domain.YearMonth
		last    domain.YearMonth
	)
	for i := range portfolio.Units {
		pos := portfolio.Units[i]
		months := UnpaidMonths(pos.Allocations)
		if len(months) == 0 {
			continue
		}
		if target == nil {
			target = &portfolio.Units[i]
		}
		covered = append(covered, fmt.Sprintf("Unit %s (%s)", pos.Unit.Unit.Name, monthRange(months[0], months[len(months)-1], domain.YearMonth.Label, " - ")))
		if first.IsZero() || months[0].Before(first) {
			first = months[0]
		}
		if last.IsZero() || months[len(months)-1].After(last) {
			last = months[len(months)-1]
		}
	}
	if target == nil {
		// TotalDue is positive, so some charge must be unsettled.
		return ConsolidatedPaymentPlan{}, fmt.Errorf("%w: owner %s has no unsettled charge", apperrors.ErrNoPendingCharge, portfolio.Owner.Ref)
	}

	notes := "Consolidated payment covering " + strings.Join(covered, ", ")
	if req.Notes != "" {
		notes += "; " + req.Notes
	}

	return ConsolidatedPaymentPlan{
		Owner:      portfolio.Owner,
		TargetUnit: target.Unit,
		TotalDue:   portfolio.TotalDue,
		Payment: domain.Payment{
			Amount:         amount,
			PaymentDate:    domain.DateOnly(req.PaymentDate),
			PaymentType:    domain.PaymentServiceCharge,
			ForMonth:       monthRange(first, last, domain.YearMonth.String, " to "),
			Status:         domain.PaymentPaid,
			Method:         req.Method,
			TransactionRef: req.TransactionRef,
			Notes:          notes,
		},
	}, nil
}

// BillingOccupantFor is the minimal account that receives payments for an owner
// with nobody living in its units.
func BillingOccupantFor(owner domain.Owner, target domain.OwnedUnit) domain.Occupant {
	ref := owner.Ref
	return domain.Occupant{
		Name:         owner.Name,
		Email:        owner.Email,
		Phone:        owner.Phone,
		UnitID:       target.Unit.UnitID,
		PropertyID:   target.PropertyID,
		ResidentType: domain.ResidentOwnerBilling,
		Owner:        &ref,
		DueBalance:   decimal.Zero,
	}
}

func monthRange(first, last domain.YearMonth, format func(domain.YearMonth) string, sep string) string {
	if first == last {
		return format(first)
	}
	return format(first) + sep + format(last)
}

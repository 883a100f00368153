package billing

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Charge is one synthetic monthly charge event.
type Charge struct {
	Month       domain.YearMonth   `json:"month"`
	Date        time.Time          `json:"date"` // First of Month, UTC
	Amount      decimal.Decimal    `json:"amount"`
	Kind        domain.PaymentType `json:"kind"`
	UnitID      string             `json:"unitID"`
	Description string             `json:"description"`
}

// ScheduleRequest describes the charges to generate for one unit.
type ScheduleRequest struct {
	UnitID   string
	UnitName string
	Kind     domain.PaymentType
	Start    domain.YearMonth
	Amount   decimal.Decimal // Current monthly amount, applied to every month
	AsOf     time.Time
}

// GenerateChargeSchedule emits one charge per month from Start through the month
// containing AsOf, inclusive. A zero Start, a non-positive Amount, or a Start after
// the AsOf month yields an empty schedule.
func GenerateChargeSchedule(req ScheduleRequest) []Charge {
	if req.Start.IsZero() || !req.Amount.IsPositive() {
		return nil
	}

	last := domain.YearMonthOf(req.AsOf)
	if req.Start.After(last) {
		return nil
	}

	charges := make([]Charge, 0, req.Start.MonthsUntil(last)+1)
	for month := req.Start; !month.After(last); month = month.Next() {
		charges = append(charges, Charge{
			Month:       month,
			Date:        month.FirstDay(),
			Amount:      req.Amount,
			Kind:        req.Kind,
			UnitID:      req.UnitID,
			Description: chargeDescription(req.Kind, req.UnitName, month),
		})
	}
	return charges
}

func chargeDescription(kind domain.PaymentType, unitName string, month domain.YearMonth) string {
	if unitName == "" {
		return fmt.Sprintf("%s for %s", kind.Label(), month.Label())
	}
	return fmt.Sprintf("%s for %s (%s)", kind.Label(), month.Label(), unitName)
}

// scheduleIssues reports why a billable unit produced no charges.
func scheduleIssues(unitID string, amount decimal.Decimal) []domain.BillingIssue {
	if amount.IsPositive() {
		return nil
	}
	return []domain.BillingIssue{{
		UnitID: unitID,
		Code:   domain.IssueInvalidChargeAmount,
		Detail: fmt.Sprintf("monthly amount %s is not positive", amount.String()),
	}}
}

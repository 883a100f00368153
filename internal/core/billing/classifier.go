package billing

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ChargeAllocation is how much of a charge the available payments cover.
type ChargeAllocation struct {
	Charge      Charge          `json:"charge"`
	Applied     decimal.Decimal `json:"applied"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// IsSettled reports whether nothing is left to pay on the charge.
func (a ChargeAllocation) IsSettled() bool {
	return !a.Outstanding.IsPositive()
}

// AllocatePayments applies the paid total to charges oldest first. Charges must be
// in ledger order.
func AllocatePayments(charges []Charge, paid decimal.Decimal) []ChargeAllocation {
	remaining := paid
	allocations := make([]ChargeAllocation, 0, len(charges))
	for _, c := range charges {
		applied := decimal.Zero
		if remaining.IsPositive() {
			applied = decimal.Min(remaining, c.Amount)
			remaining = remaining.Sub(applied)
		}
		allocations = append(allocations, ChargeAllocation{
			Charge:      c,
			Applied:     applied,
			Outstanding: c.Amount.Sub(applied),
		})
	}
	return allocations
}

// TotalPaid sums payment amounts.
func TotalPaid(payments []domain.Payment) decimal.Decimal {
	return accounting.Sum(payments, func(p domain.Payment) decimal.Decimal { return p.Amount })
}

// StatusForMonth classifies the reference month. It is N/A when no charge falls in
// that month, Paid when every charge up to and including it is covered, and
// Pending otherwise.
func StatusForMonth(allocations []ChargeAllocation, ref domain.YearMonth) domain.BillingStatus {
	billed := false
	settled := true
	for _, a := range allocations {
		if a.Charge.Month.After(ref) {
			continue
		}
		if a.Charge.Month == ref {
			billed = true
		}
		if !a.IsSettled() {
			settled = false
		}
	}
	switch {
	case !billed:
		return domain.StatusNotApplicable
	case settled:
		return domain.StatusPaid
	default:
		return domain.StatusPending
	}
}

// GroupStatus folds unit statuses into an owner status: any Pending wins, then
// Paid if at least one unit is billable, otherwise N/A.
func GroupStatus(statuses ...domain.BillingStatus) domain.BillingStatus {
	result := domain.StatusNotApplicable
	for _, s := range statuses {
		switch s {
		case domain.StatusPending:
			return domain.StatusPending
		case domain.StatusPaid:
			result = domain.StatusPaid
		}
	}
	return result
}

// MonthsInArrears counts unpaid charges strictly before the reference month.
func MonthsInArrears(allocations []ChargeAllocation, ref domain.YearMonth) int {
	count := 0
	for _, a := range allocations {
		if !a.IsSettled() && a.Charge.Month.Before(ref) {
			count++
		}
	}
	return count
}

// UnpaidMonths lists the months with an outstanding amount, in allocation order.
func UnpaidMonths(allocations []ChargeAllocation) []domain.YearMonth {
	var months []domain.YearMonth
	for _, a := range allocations {
		if !a.IsSettled() {
			months = append(months, a.Charge.Month)
		}
	}
	return months
}

// Outstanding sums what is left to pay across allocations.
func Outstanding(allocations []ChargeAllocation) decimal.Decimal {
	return accounting.Sum(allocations, func(a ChargeAllocation) decimal.Decimal { return a.Outstanding })
}

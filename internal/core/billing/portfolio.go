package billing

import (
	"sort"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UnitPosition is one owned unit inside an owner's consolidated scope.
type UnitPosition struct {
	Unit        domain.OwnedUnit      `json:"unit"`
	OccupantID  string                `json:"occupantID,omitempty"` // Representing occupant living in the unit, if any
	Resolution  Resolution            `json:"resolution"`
	Charges     []Charge              `json:"charges"`
	Allocations []ChargeAllocation    `json:"allocations"`
	Payments    []domain.Payment      `json:"payments"` // Portions of owner payments applied to this unit
	AmountDue   decimal.Decimal       `json:"amountDue"`
	Issues      []domain.BillingIssue `json:"issues,omitempty"`
}

// OwnerPortfolio is the consolidated ledger of every unit an owner holds.
type OwnerPortfolio struct {
	Owner    domain.Owner          `json:"owner"`
	AsOf     time.Time             `json:"asOf"`
	Units    []UnitPosition        `json:"units"`
	Payments []domain.Payment      `json:"payments"`
	Ledger   domain.Ledger         `json:"ledger"`
	TotalDue decimal.Decimal       `json:"totalDue"`
	Issues   []domain.BillingIssue `json:"issues,omitempty"`
}

// Position returns the position of a unit in the portfolio.
func (p OwnerPortfolio) Position(unitID string) (UnitPosition, bool) {
	for _, u := range p.Units {
		if u.Unit.Unit.UnitID == unitID {
			return u, true
		}
	}
	return UnitPosition{}, false
}

type ownedCharge struct {
	unit   int
	charge Charge
}

// ComputeOwnerBalance merges the charges of every unit with every payment made on
// the owner's behalf. Payments settle the oldest charge first regardless of which
// unit it belongs to, and the share each unit received is recorded on its position.
// The input positions are not modified.
func ComputeOwnerBalance(owner domain.Owner, asOf time.Time, units []UnitPosition, payments []domain.Payment) OwnerPortfolio {
	positions := make([]UnitPosition, len(units))
	copy(positions, units)

	var combined []ownedCharge
	for i, u := range positions {
		for _, c := range u.Charges {
			combined = append(combined, ownedCharge{unit: i, charge: c})
		}
	}
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].charge.Month.Before(combined[j].charge.Month)
	})

	charges := make([]Charge, len(combined))
	for i, oc := range combined {
		charges[i] = oc.charge
	}

	allocations := AllocatePayments(charges, TotalPaid(payments))
	split := splitPayments(combined, payments, len(positions))

	var issues []domain.BillingIssue
	for i := range positions {
		positions[i].Allocations = nil
		positions[i].Payments = split[i]
		issues = append(issues, positions[i].Issues...)
	}
	for i, a := range allocations {
		idx := combined[i].unit
		positions[idx].Allocations = append(positions[idx].Allocations, a)
	}
	for i := range positions {
		positions[i].AmountDue = Outstanding(positions[i].Allocations)
	}

	ledger := MergeLedger(charges, payments)
	return OwnerPortfolio{
		Owner:    owner,
		AsOf:     asOf,
		Units:    positions,
		Payments: payments,
		Ledger:   ledger,
		TotalDue: ledger.AmountDue,
		Issues:   issues,
	}
}

// splitPayments walks payments in date order and hands each one out to the oldest
// outstanding charges. Any excess stays with the owner as credit and is not split.
func splitPayments(combined []ownedCharge, payments []domain.Payment, unitCount int) [][]domain.Payment {
	ordered := make([]domain.Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return domain.DateOnly(ordered[i].PaymentDate).Before(domain.DateOnly(ordered[j].PaymentDate))
	})

	outstanding := make([]decimal.Decimal, len(combined))
	for i, oc := range combined {
		outstanding[i] = oc.charge.Amount
	}

	result := make([][]domain.Payment, unitCount)
	cursor := 0
	for _, p := range ordered {
		remaining := p.Amount
		portions := make(map[int]decimal.Decimal)
		var order []int
		for remaining.IsPositive() && cursor < len(combined) {
			take := decimal.Min(remaining, outstanding[cursor])
			unit := combined[cursor].unit
			if _, seen := portions[unit]; !seen {
				order = append(order, unit)
			}
			portions[unit] = portions[unit].Add(take)
			outstanding[cursor] = outstanding[cursor].Sub(take)
			remaining = remaining.Sub(take)
			if !outstanding[cursor].IsPositive() {
				cursor++
			}
		}
		for _, unit := range order {
			portion := p
			portion.Amount = portions[unit]
			result[unit] = append(result[unit], portion)
		}
	}
	return result
}

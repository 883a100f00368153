package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Engine evaluates billing over a snapshot. It holds no state besides its rules
// and is safe for concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine creates an Engine with the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine policy.
func (e *Engine) Rules() Rules {
	return e.rules
}

// UnitLedger is the ledger of one unit. Billable is false when the unit owes
// nothing yet; Owner is set when the unit is billed through its owner's scope.
type UnitLedger struct {
	UnitID      string                `json:"unitID"`
	UnitName    string                `json:"unitName"`
	PropertyID  string                `json:"propertyID"`
	OccupantID  string                `json:"occupantID,omitempty"`
	Owner       *domain.OwnerRef      `json:"owner,omitempty"`
	Kind        domain.PaymentType    `json:"kind,omitempty"`
	Billable    bool                  `json:"billable"`
	Resolution  Resolution            `json:"resolution"`
	Charges     []Charge              `json:"charges"`
	Allocations []ChargeAllocation    `json:"allocations"`
	Ledger      domain.Ledger         `json:"ledger"`
	Issues      []domain.BillingIssue `json:"issues,omitempty"`
}

// OwnerStatus is the grouped status of an owner's units for a month.
type OwnerStatus struct {
	Owner    domain.OwnerRef      `json:"owner"`
	Name     string               `json:"name"`
	Month    domain.YearMonth     `json:"month"`
	Status   domain.BillingStatus `json:"status"`
	TotalDue decimal.Decimal      `json:"totalDue"`
	Units    []domain.UnitStatus  `json:"units"`
}

// UnitLedger computes the ledger of a unit as of asOf.
//
// An occupied unit is billed to its resident: rent for tenants, service charge for
// everyone else. A resident owner and a vacant externally owned unit are billed service
// charge through the owner's consolidated scope. Any other unit is not billable.
func (e *Engine) UnitLedger(snap domain.Snapshot, unitID string, asOf time.Time) (UnitLedger, error) {
	return e.newEvaluation(snap, asOf).unitLedger(unitID)
}

// UnitStatus classifies a unit for the reference month.
func (e *Engine) UnitStatus(snap domain.Snapshot, unitID string, month domain.YearMonth, asOf time.Time) (domain.UnitStatus, error) {
	return e.newEvaluation(snap, asOf).unitStatus(unitID, month)
}

// OwnerBalance computes the consolidated position of an owner.
func (e *Engine) OwnerBalance(snap domain.Snapshot, ref domain.OwnerRef, asOf time.Time) (OwnerPortfolio, error) {
	owner, ok := snap.FindOwner(ref)
	if !ok {
		return OwnerPortfolio{}, fmt.Errorf("%w: %s", apperrors.ErrOwnerNotFound, ref)
	}
	return e.newEvaluation(snap, asOf).portfolio(owner), nil
}

// OwnerStatus groups the statuses of an owner's units for the reference month.
func (e *Engine) OwnerStatus(snap domain.Snapshot, ref domain.OwnerRef, month domain.YearMonth, asOf time.Time) (OwnerStatus, error) {
	owner, ok := snap.FindOwner(ref)
	if !ok {
		return OwnerStatus{}, fmt.Errorf("%w: %s", apperrors.ErrOwnerNotFound, ref)
	}
	p := e.newEvaluation(snap, asOf).portfolio(owner)

	result := OwnerStatus{Owner: ref, Name: owner.Name, Month: month, TotalDue: p.TotalDue}
	statuses := make([]domain.BillingStatus, 0, len(p.Units))
	for _, pos := range p.Units {
		s := domain.UnitStatus{
			UnitID:     pos.Unit.Unit.UnitID,
			UnitName:   pos.Unit.Unit.Name,
			PropertyID: pos.Unit.PropertyID,
			OccupantID: pos.OccupantID,
			Month:      month,
			Status:     StatusForMonth(pos.Allocations, month),
			AmountDue:  pos.AmountDue,
			Issues:     pos.Issues,
		}
		result.Units = append(result.Units, s)
		statuses = append(statuses, s.Status)
	}
	result.Status = GroupStatus(statuses...)
	return result, nil
}

// VacantArrears lists, per owner, the vacant handed-over units that still owe money,
// ordered by total due (largest first).
func (e *Engine) VacantArrears(snap domain.Snapshot, asOf time.Time) []domain.VacantArrearsAccount {
	ev := e.newEvaluation(snap, asOf)
	ref := domain.YearMonthOf(asOf)

	var accounts []domain.VacantArrearsAccount
	for _, owner := range snap.Owners() {
		if account, ok := aggregateVacantArrears(ev.portfolio(owner), ref); ok {
			accounts = append(accounts, account)
		}
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		if c := accounts[i].TotalDue.Cmp(accounts[j].TotalDue); c != 0 {
			return c > 0
		}
		return accounts[i].Owner.String() < accounts[j].Owner.String()
	})
	return accounts
}

// PortfolioSummary counts unit statuses across every property for the reference month.
func (e *Engine) PortfolioSummary(snap domain.Snapshot, month domain.YearMonth, asOf time.Time) domain.PortfolioSummary {
	ev := e.newEvaluation(snap, asOf)
	summary := domain.PortfolioSummary{
		Month:          month,
		AsOf:           asOf,
		TotalDue:       decimal.Zero,
		CollectedMonth: decimal.Zero,
	}

	for _, p := range snap.Properties {
		for _, u := range p.Units {
			status, err := ev.unitStatus(u.UnitID, month)
			if err != nil {
				continue
			}
			switch status.Status {
			case domain.StatusPaid:
				summary.PaidUnits++
			case domain.StatusPending:
				summary.PendingUnits++
			default:
				summary.NotApplicable++
			}
			summary.TotalDue = summary.TotalDue.Add(status.AmountDue)
			summary.Issues = append(summary.Issues, status.Issues...)
		}
	}

	asOfDay := domain.DateOnly(asOf)
	for _, pay := range snap.Payments {
		if pay.Status == domain.PaymentPaid && month.Contains(pay.PaymentDate) && !domain.DateOnly(pay.PaymentDate).After(asOfDay) {
			summary.CollectedMonth = summary.CollectedMonth.Add(pay.Amount)
		}
	}
	return summary
}

func aggregateVacantArrears(p OwnerPortfolio, ref domain.YearMonth) (domain.VacantArrearsAccount, bool) {
	account := domain.VacantArrearsAccount{Owner: p.Owner.Ref, OwnerName: p.Owner.Name, TotalDue: decimal.Zero}
	for _, pos := range p.Units {
		unit := pos.Unit.Unit
		if !unit.IsVacant() || !unit.IsHandedOver() || !pos.AmountDue.IsPositive() {
			continue
		}
		months := MonthsInArrears(pos.Allocations, ref)
		account.Units = append(account.Units, domain.UnitArrears{
			UnitID:          unit.UnitID,
			UnitName:        unit.Name,
			PropertyID:      pos.Unit.PropertyID,
			PropertyName:    pos.Unit.PropertyName,
			HandoverDate:    unit.HandoverDate,
			MonthsInArrears: months,
			UnpaidMonths:    UnpaidMonths(pos.Allocations),
			AmountDue:       pos.AmountDue,
		})
		account.TotalDue = account.TotalDue.Add(pos.AmountDue)
		if months > account.MonthsInArrears {
			account.MonthsInArrears = months
		}
	}
	return account, len(account.Units) > 0
}

// evaluation memoises owner portfolios for one snapshot and reference date.
type evaluation struct {
	rules      Rules
	snap       domain.Snapshot
	asOf       time.Time
	portfolios map[domain.OwnerRef]OwnerPortfolio
}

func (e *Engine) newEvaluation(snap domain.Snapshot, asOf time.Time) *evaluation {
	return &evaluation{rules: e.rules, snap: snap, asOf: asOf, portfolios: make(map[domain.OwnerRef]OwnerPortfolio)}
}

func (ev *evaluation) schedule(unit domain.Unit, kind domain.PaymentType, res Resolution) ([]Charge, []domain.BillingIssue) {
	if !res.OK {
		return nil, nil
	}
	amount := unit.MonthlyAmount(kind)
	return GenerateChargeSchedule(ScheduleRequest{
		UnitID:   unit.UnitID,
		UnitName: unit.Name,
		Kind:     kind,
		Start:    res.Start,
		Amount:   amount,
		AsOf:     ev.asOf,
	}), scheduleIssues(unit.UnitID, amount)
}

func (ev *evaluation) portfolio(owner domain.Owner) OwnerPortfolio {
	if p, ok := ev.portfolios[owner.Ref]; ok {
		return p
	}

	representatives := ev.snap.OwnerOccupants(owner.Ref)
	occupantIDs := make([]string, 0, len(representatives))
	for _, o := range representatives {
		occupantIDs = append(occupantIDs, o.OccupantID)
	}

	owned := domain.ResolveOwnedUnits(owner, ev.snap.Properties)
	positions := make([]UnitPosition, 0, len(owned))
	for _, ou := range owned {
		pos := UnitPosition{Unit: ou}
		var lease *domain.Lease
		for _, o := range representatives {
			if o.UnitID == ou.Unit.UnitID && !o.IsArchived && o.ResidentType != domain.ResidentOwnerBilling {
				pos.OccupantID = o.OccupantID
				l := o.Lease
				lease = &l
				break
			}
		}
		pos.Resolution = ResolveFirstBillableMonth(ou.Unit, lease, ev.rules)
		charges, issues := ev.schedule(ou.Unit, domain.PaymentServiceCharge, pos.Resolution)
		pos.Charges = charges
		pos.Issues = append(append([]domain.BillingIssue{}, pos.Resolution.Issues...), issues...)
		positions = append(positions, pos)
	}

	payments := SettlingPayments(ev.snap.PaymentsFor(occupantIDs...), domain.PaymentServiceCharge, ev.asOf)
	p := ComputeOwnerBalance(owner, ev.asOf, positions, payments)
	ev.portfolios[owner.Ref] = p
	return p
}

func (ev *evaluation) unitLedger(unitID string) (UnitLedger, error) {
	property, unit, ok := ev.snap.FindUnit(unitID)
	if !ok {
		return UnitLedger{}, fmt.Errorf("%w: unit %s", apperrors.ErrNotFound, unitID)
	}
	result := UnitLedger{UnitID: unit.UnitID, UnitName: unit.Name, PropertyID: property.PropertyID}

	occupant, occupied := ev.snap.ActiveOccupant(unitID)
	if occupied && occupant.Owner != nil && occupant.ChargeKind() == domain.PaymentServiceCharge {
		// A resident owner shares one balance with the rest of the owner's units.
		if owner, ok := ev.snap.FindOwner(*occupant.Owner); ok {
			if pos, ok := ev.portfolio(owner).Position(unitID); ok {
				result.OccupantID = occupant.OccupantID
				fromPosition(&result, owner.Ref, pos)
				return result, nil
			}
		}
	}

	if occupied {
		result.OccupantID = occupant.OccupantID
		result.Kind = occupant.ChargeKind()
		lease := occupant.Lease
		result.Resolution = ResolveFirstBillableMonth(unit, &lease, ev.rules)
		charges, issues := ev.schedule(unit, result.Kind, result.Resolution)
		payments := SettlingPayments(ev.snap.PaymentsFor(occupant.OccupantID), result.Kind, ev.asOf)

		result.Charges = charges
		result.Allocations = AllocatePayments(charges, TotalPaid(payments))
		result.Ledger = MergeLedger(charges, payments)
		result.Billable = result.Resolution.OK && len(charges) > 0
		result.Issues = append(append(result.Issues, result.Resolution.Issues...), issues...)
		return result, nil
	}

	if unit.OwnershipType == domain.ExternallyOwned {
		if owner, ok := ev.snap.OwnerOf(unitID); ok {
			pos, _ := ev.portfolio(owner).Position(unitID)
			fromPosition(&result, owner.Ref, pos)
			return result, nil
		}
	}

	result.Ledger = MergeLedger(nil, nil)
	result.Issues = []domain.BillingIssue{{
		UnitID: unitID,
		Code:   domain.IssueNoOccupant,
		Detail: "unit has no resident and no owner to bill",
	}}
	return result, nil
}

// fromPosition fills a unit ledger from the unit's share of its owner's portfolio.
func fromPosition(result *UnitLedger, ref domain.OwnerRef, pos UnitPosition) {
	result.Owner = &ref
	result.Kind = domain.PaymentServiceCharge
	result.Resolution = pos.Resolution
	result.Charges = pos.Charges
	result.Allocations = pos.Allocations
	result.Ledger = MergeLedger(pos.Charges, pos.Payments)
	result.Billable = pos.Resolution.OK && len(pos.Charges) > 0
	result.Issues = pos.Issues
}

func (ev *evaluation) unitStatus(unitID string, month domain.YearMonth) (domain.UnitStatus, error) {
	l, err := ev.unitLedger(unitID)
	if err != nil {
		return domain.UnitStatus{}, err
	}
	status := domain.StatusNotApplicable
	if l.Billable {
		status = StatusForMonth(l.Allocations, month)
	}
	return domain.UnitStatus{
		UnitID:     l.UnitID,
		UnitName:   l.UnitName,
		PropertyID: l.PropertyID,
		OccupantID: l.OccupantID,
		Month:      month,
		Status:     status,
		AmountDue:  l.Ledger.AmountDue,
		Issues:     l.Issues,
	}, nil
}

package dto

import (
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/billing"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerQuery holds the reference date of a ledger read. AsOf defaults to today.
type LedgerQuery struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// StatusQuery selects the reference month of a status read. Month defaults to the AsOf month.
type StatusQuery struct {
	Month string `form:"month" binding:"omitempty,yearmonth"`
	AsOf  string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// Resolve returns the parsed reference date, falling back to now.
func (q LedgerQuery) Resolve(now time.Time) (time.Time, error) {
	return parseAsOf(q.AsOf, now)
}

// Resolve returns the reference month and date.
func (q StatusQuery) Resolve(now time.Time) (domain.YearMonth, time.Time, error) {
	asOf, err := parseAsOf(q.AsOf, now)
	if err != nil {
		return domain.YearMonth{}, time.Time{}, err
	}
	if q.Month == "" {
		return domain.YearMonthOf(asOf), asOf, nil
	}
	month, err := domain.ParseYearMonth(q.Month)
	if err != nil {
		return domain.YearMonth{}, time.Time{}, err
	}
	return month, asOf, nil
}

func parseAsOf(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return domain.DateOnly(now), nil
	}
	return time.Parse(time.DateOnly, value)
}

// LedgerEntryResponse is one ledger row.
type LedgerEntryResponse struct {
	Date        string                 `json:"date"` // YYYY-MM-DD
	Kind        domain.LedgerEntryKind `json:"kind"`
	Description string                 `json:"description"`
	UnitID      string                 `json:"unitID,omitempty"`
	PaymentID   string                 `json:"paymentID,omitempty"`
	Charge      decimal.Decimal        `json:"charge"`
	Payment     decimal.Decimal        `json:"payment"`
	Balance     decimal.Decimal        `json:"balance"`
}

// LedgerResponse is a ledger with totals.
type LedgerResponse struct {
	Entries       []LedgerEntryResponse `json:"entries"`
	TotalCharges  decimal.Decimal       `json:"totalCharges"`
	TotalPayments decimal.Decimal       `json:"totalPayments"`
	Balance       decimal.Decimal       `json:"balance"`
	AmountDue     decimal.Decimal       `json:"amountDue"`
	Currency      string                `json:"currency"`
}

// UnitLedgerResponse is the ledger of one unit.
type UnitLedgerResponse struct {
	UnitID            string                `json:"unitID"`
	UnitName          string                `json:"unitName"`
	PropertyID        string                `json:"propertyID"`
	OccupantID        string                `json:"occupantID,omitempty"`
	Owner             *domain.OwnerRef      `json:"owner,omitempty"`
	ChargeType        domain.PaymentType    `json:"chargeType,omitempty"`
	Billable          bool                  `json:"billable"`
	FirstBillingMonth *domain.YearMonth     `json:"firstBillingMonth,omitempty"`
	AsOf              string                `json:"asOf"`
	Ledger            LedgerResponse        `json:"ledger"`
	Issues            []domain.BillingIssue `json:"issues,omitempty"`
}

// OwnerUnitResponse is one unit inside an owner ledger.
type OwnerUnitResponse struct {
	UnitID            string                `json:"unitID"`
	UnitName          string                `json:"unitName"`
	PropertyID        string                `json:"propertyID"`
	PropertyName      string                `json:"propertyName"`
	FirstBillingMonth *domain.YearMonth     `json:"firstBillingMonth,omitempty"`
	UnpaidMonths      []domain.YearMonth    `json:"unpaidMonths"`
	AmountDue         decimal.Decimal       `json:"amountDue"`
	Issues            []domain.BillingIssue `json:"issues,omitempty"`
}

// OwnerLedgerResponse is an owner's consolidated ledger.
type OwnerLedgerResponse struct {
	Owner    domain.OwnerRef     `json:"owner"`
	Name     string              `json:"name"`
	AsOf     string              `json:"asOf"`
	TotalDue decimal.Decimal     `json:"totalDue"`
	Units    []OwnerUnitResponse `json:"units"`
	Ledger   LedgerResponse      `json:"ledger"`
}

// ToLedgerResponse converts a domain.Ledger.
func ToLedgerResponse(l domain.Ledger, currency string) LedgerResponse {
	entries := make([]LedgerEntryResponse, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = LedgerEntryResponse{
			Date:        e.Date.Format(time.DateOnly),
			Kind:        e.Kind,
			Description: e.Description,
			UnitID:      e.UnitID,
			PaymentID:   e.PaymentID,
			Charge:      e.Charge,
			Payment:     e.Payment,
			Balance:     e.Balance,
		}
	}
	return LedgerResponse{
		Entries:       entries,
		TotalCharges:  l.TotalCharges,
		TotalPayments: l.TotalPayments,
		Balance:       l.Balance,
		AmountDue:     l.AmountDue,
		Currency:      currency,
	}
}

// ToUnitLedgerResponse converts an engine unit ledger.
func ToUnitLedgerResponse(l *billing.UnitLedger, asOf time.Time, currency string) UnitLedgerResponse {
	return UnitLedgerResponse{
		UnitID:            l.UnitID,
		UnitName:          l.UnitName,
		PropertyID:        l.PropertyID,
		OccupantID:        l.OccupantID,
		Owner:             l.Owner,
		ChargeType:        l.Kind,
		Billable:          l.Billable,
		FirstBillingMonth: firstMonth(l.Resolution),
		AsOf:              asOf.Format(time.DateOnly),
		Ledger:            ToLedgerResponse(l.Ledger, currency),
		Issues:            l.Issues,
	}
}

// ToOwnerLedgerResponse converts an owner portfolio.
func ToOwnerLedgerResponse(p *billing.OwnerPortfolio, currency string) OwnerLedgerResponse {
	units := make([]OwnerUnitResponse, len(p.Units))
	for i, pos := range p.Units {
		unpaid := billing.UnpaidMonths(pos.Allocations)
		if unpaid == nil {
			unpaid = []domain.YearMonth{}
		}
		units[i] = OwnerUnitResponse{
			UnitID:            pos.Unit.Unit.UnitID,
			UnitName:          pos.Unit.Unit.Name,
			PropertyID:        pos.Unit.PropertyID,
			PropertyName:      pos.Unit.PropertyName,
			FirstBillingMonth: firstMonth(pos.Resolution),
			UnpaidMonths:      unpaid,
			AmountDue:         pos.AmountDue,
			Issues:            pos.Issues,
		}
	}
	return OwnerLedgerResponse{
		Owner:    p.Owner.Ref,
		Name:     p.Owner.Name,
		AsOf:     p.AsOf.Format(time.DateOnly),
		TotalDue: p.TotalDue,
		Units:    units,
		Ledger:   ToLedgerResponse(p.Ledger, currency),
	}
}

func firstMonth(r billing.Resolution) *domain.YearMonth {
	if !r.OK {
		return nil
	}
	start := r.Start
	return &start
}

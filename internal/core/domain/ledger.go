package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryKind distinguishes synthetic charges from real payments.
type LedgerEntryKind string

const (
	EntryCharge  LedgerEntryKind = "CHARGE"
	EntryPayment LedgerEntryKind = "PAYMENT"
)

// LedgerEntry is one derived ledger row. Ledgers are recomputed on demand and never stored.
type LedgerEntry struct {
	Date        time.Time       `json:"date"`
	Kind        LedgerEntryKind `json:"kind"`
	Description string          `json:"description"`
	UnitID      string          `json:"unitID,omitempty"`
	PaymentID   string          `json:"paymentID,omitempty"`
	Charge      decimal.Decimal `json:"charge"`
	Payment     decimal.Decimal `json:"payment"`
	Balance     decimal.Decimal `json:"balance"` // Running balance; negative is a credit
}

// Ledger is the merged, time-ordered sequence with its totals.
type Ledger struct {
	Entries       []LedgerEntry   `json:"entries"`
	TotalCharges  decimal.Decimal `json:"totalCharges"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	Balance       decimal.Decimal `json:"balance"`   // Final running balance, may be negative
	AmountDue     decimal.Decimal `json:"amountDue"` // Balance floored at zero
}

// BillingStatus is the payment status label of a unit or owner for a month.
type BillingStatus string

const (
	StatusPaid          BillingStatus = "Paid"
	StatusPending       BillingStatus = "Pending"
	StatusNotApplicable BillingStatus = "N/A"
)

// BillingIssue records a data problem that degraded a unit's billing instead of failing the batch.
type BillingIssue struct {
	UnitID     string `json:"unitID,omitempty"`
	OccupantID string `json:"occupantID,omitempty"`
	Code       string `json:"code"`
	Detail     string `json:"detail"`
}

// Issue codes.
const (
	IssueUnresolvableStart   = "UNRESOLVABLE_BILLING_START"
	IssueInvalidChargeAmount = "INVALID_CHARGE_AMOUNT"
	IssueMalformedLastBilled = "MALFORMED_LAST_BILLED_PERIOD"
	IssueNoOccupant          = "NO_BILLABLE_OCCUPANT"
)

// UnitArrears is the unpaid position of one vacant, handed-over unit.
type UnitArrears struct {
	UnitID          string          `json:"unitID"`
	UnitName        string          `json:"unitName"`
	PropertyID      string          `json:"propertyID"`
	PropertyName    string          `json:"propertyName"`
	HandoverDate    *time.Time      `json:"handoverDate,omitempty"`
	MonthsInArrears int             `json:"monthsInArrears"`
	UnpaidMonths    []YearMonth     `json:"unpaidMonths"`
	AmountDue       decimal.Decimal `json:"amountDue"`
}

// VacantArrearsAccount aggregates arrears of one owner's vacant units.
type VacantArrearsAccount struct {
	Owner           OwnerRef        `json:"owner"`
	OwnerName       string          `json:"ownerName"`
	Units           []UnitArrears   `json:"units"`
	TotalDue        decimal.Decimal `json:"totalDue"`
	MonthsInArrears int             `json:"monthsInArrears"` // Max over units
}

// UnitStatus is the classification of one unit for a reference month.
type UnitStatus struct {
	UnitID     string          `json:"unitID"`
	UnitName   string          `json:"unitName"`
	PropertyID string          `json:"propertyID"`
	OccupantID string          `json:"occupantID,omitempty"`
	Month      YearMonth       `json:"month"`
	Status     BillingStatus   `json:"status"`
	AmountDue  decimal.Decimal `json:"amountDue"`
	Issues     []BillingIssue  `json:"issues,omitempty"`
}

// PortfolioSummary is the dashboard view of all units for a reference month.
type PortfolioSummary struct {
	Month          YearMonth       `json:"month"`
	AsOf           time.Time       `json:"asOf"`
	PaidUnits      int             `json:"paidUnits"`
	PendingUnits   int             `json:"pendingUnits"`
	NotApplicable  int             `json:"notApplicableUnits"`
	TotalDue       decimal.Decimal `json:"totalDue"`
	CollectedMonth decimal.Decimal `json:"collectedThisMonth"`
	Issues         []BillingIssue  `json:"issues,omitempty"`
}

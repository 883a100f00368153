package dto

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VacantArrearsResponse lists owners with unpaid vacant units.
type VacantArrearsResponse struct {
	AsOf     string                        `json:"asOf"`
	Accounts []domain.VacantArrearsAccount `json:"accounts"`
	TotalDue decimal.Decimal               `json:"totalDue"`
}

// ToVacantArrearsResponse wraps the accounts with a grand total.
func ToVacantArrearsResponse(asOf string, accounts []domain.VacantArrearsAccount) VacantArrearsResponse {
	if accounts == nil {
		accounts = []domain.VacantArrearsAccount{}
	}
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.TotalDue)
	}
	return VacantArrearsResponse{AsOf: asOf, Accounts: accounts, TotalDue: total}
}

// BalanceResponse is the stored balance of an occupant after recalculation.
type BalanceResponse struct {
	OccupantID          string               `json:"occupantID"`
	DueBalance          decimal.Decimal      `json:"dueBalance"`
	PaymentStatus       domain.BillingStatus `json:"paymentStatus"`
	BalanceRecomputedAt string               `json:"balanceRecomputedAt"`
}

package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places amounts are stored and reported with.
const MoneyPrecision int32 = 2

// RoundCents rounds an amount to MoneyPrecision places.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// Sum adds up the amount extracted from each item.
func Sum[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

// AmountDue floors a running balance at zero. A credit balance is never reported as debt.
func AmountDue(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// ValidatePositive checks that an amount is strictly greater than zero.
func ValidatePositive(amount decimal.Decimal, field string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%s must be positive, got %s", field, amount.String())
	}
	return nil
}

// CheckConservation verifies that a final balance equals charges minus payments.
func CheckConservation(totalCharges, totalPayments, balance decimal.Decimal) error {
	expected := totalCharges.Sub(totalPayments)
	if !expected.Equal(balance) {
		return fmt.Errorf("ledger does not balance: charges %s - payments %s = %s, got %s",
			totalCharges.String(), totalPayments.String(), expected.String(), balance.String())
	}
	return nil
}

// FormatAmount renders an amount with its currency code, e.g. "KES 10000.00".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(MoneyPrecision)
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}

package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// entry ranks; charges sort before payments dated the same day.
const (
	rankCharge = iota
	rankPayment
)

type pendingEntry struct {
	entry domain.LedgerEntry
	rank  int
}

// MergeLedger interleaves charges and payments by date and computes the running
// balance. On equal dates every charge precedes every payment; otherwise input
// order is preserved, so identical inputs always give identical ledgers.
func MergeLedger(charges []Charge, payments []domain.Payment) domain.Ledger {
	pending := make([]pendingEntry, 0, len(charges)+len(payments))
	for _, c := range charges {
		pending = append(pending, pendingEntry{
			rank: rankCharge,
			entry: domain.LedgerEntry{
				Date:        domain.DateOnly(c.Date),
				Kind:        domain.EntryCharge,
				Description: c.Description,
				UnitID:      c.UnitID,
				Charge:      c.Amount,
				Payment:     decimal.Zero,
			},
		})
	}
	for _, p := range payments {
		pending = append(pending, pendingEntry{
			rank: rankPayment,
			entry: domain.LedgerEntry{
				Date:        domain.DateOnly(p.PaymentDate),
				Kind:        domain.EntryPayment,
				Description: paymentDescription(p),
				PaymentID:   p.PaymentID,
				Charge:      decimal.Zero,
				Payment:     p.Amount,
			},
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if !a.entry.Date.Equal(b.entry.Date) {
			return a.entry.Date.Before(b.entry.Date)
		}
		return a.rank < b.rank
	})

	ledger := domain.Ledger{
		Entries:       make([]domain.LedgerEntry, 0, len(pending)),
		TotalCharges:  decimal.Zero,
		TotalPayments: decimal.Zero,
		Balance:       decimal.Zero,
	}
	for _, p := range pending {
		e := p.entry
		ledger.TotalCharges = ledger.TotalCharges.Add(e.Charge)
		ledger.TotalPayments = ledger.TotalPayments.Add(e.Payment)
		ledger.Balance = ledger.Balance.Add(e.Charge).Sub(e.Payment)
		e.Balance = ledger.Balance
		ledger.Entries = append(ledger.Entries, e)
	}
	ledger.AmountDue = accounting.AmountDue(ledger.Balance)
	return ledger
}

// SettlingPayments keeps the payments that count against a ledger of the given
// charge type as of asOf, preserving their order.
func SettlingPayments(payments []domain.Payment, kind domain.PaymentType, asOf time.Time) []domain.Payment {
	var result []domain.Payment
	for _, p := range payments {
		if p.Settles(kind, asOf) {
			result = append(result, p)
		}
	}
	return result
}

func paymentDescription(p domain.Payment) string {
	desc := p.PaymentType.Label() + " payment"
	if p.ForMonth != "" {
		desc = fmt.Sprintf("%s for %s", desc, p.ForMonth)
	}
	if p.TransactionRef != "" {
		desc = fmt.Sprintf("%s (ref %s)", desc, p.TransactionRef)
	}
	return desc
}

// Package billing derives charge schedules, ledgers and payment statuses from
// an in-memory snapshot of property records. Every function is pure: the
// reference date is always passed in and no input is mutated.
package billing

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
)

// DefaultGraceDay is the last day of a month on which a handover still bills that month.
const DefaultGraceDay = 10

// Rules holds the tunable billing policy.
type Rules struct {
	GraceDay int
}

// DefaultRules returns the standard policy.
func DefaultRules() Rules {
	return Rules{GraceDay: DefaultGraceDay}
}

func (r Rules) graceDay() int {
	if r.GraceDay <= 0 {
		return DefaultGraceDay
	}
	return r.GraceDay
}

// ResolutionSource records which fact decided the first billable month.
type ResolutionSource string

const (
	SourceLastBilledPeriod ResolutionSource = "LAST_BILLED_PERIOD"
	SourceHandoverDate     ResolutionSource = "HANDOVER_DATE"
	SourceLeaseStart       ResolutionSource = "LEASE_START"
	SourceNone             ResolutionSource = ""
)

// Resolution is the outcome of ResolveFirstBillableMonth. When OK is false the
// unit is not yet billable and Start is the zero month.
type Resolution struct {
	Start  domain.YearMonth      `json:"start"`
	OK     bool                  `json:"ok"`
	Source ResolutionSource      `json:"source,omitempty"`
	Issues []domain.BillingIssue `json:"issues,omitempty"`
}

// ResolveFirstBillableMonth decides the first month a recurring charge is owed for.
//
// A well-formed lease.LastBilledPeriod wins and billing resumes the month after it.
// Otherwise a handed-over unit starts billing from its handover date (or the lease
// start when no handover date was recorded): a date on or before the grace day bills
// that month, a later date rolls to the next month. Anything else is not billable.
func ResolveFirstBillableMonth(unit domain.Unit, lease *domain.Lease, rules Rules) Resolution {
	var issues []domain.BillingIssue

	if lease != nil && lease.LastBilledPeriod != "" {
		last, err := domain.ParseYearMonth(lease.LastBilledPeriod)
		if err == nil {
			return Resolution{Start: last.Next(), OK: true, Source: SourceLastBilledPeriod}
		}
		issues = append(issues, domain.BillingIssue{
			UnitID: unit.UnitID,
			Code:   domain.IssueMalformedLastBilled,
			Detail: fmt.Sprintf("last billed period %q ignored: %v", lease.LastBilledPeriod, err),
		})
	}

	if !unit.IsHandedOver() {
		return Resolution{Issues: issues}
	}

	effective, source := effectiveDate(unit, lease)
	if source == SourceNone {
		issues = append(issues, domain.BillingIssue{
			UnitID: unit.UnitID,
			Code:   domain.IssueUnresolvableStart,
			Detail: "unit is handed over but has no valid handover date or lease start date",
		})
		return Resolution{Issues: issues}
	}

	start := domain.YearMonthOf(effective)
	if effective.Day() > rules.graceDay() {
		start = start.Next()
	}
	return Resolution{Start: start, OK: true, Source: source, Issues: issues}
}

func effectiveDate(unit domain.Unit, lease *domain.Lease) (time.Time, ResolutionSource) {
	if validDate(unit.HandoverDate) {
		return domain.DateOnly(*unit.HandoverDate), SourceHandoverDate
	}
	if lease != nil && validDate(lease.StartDate) {
		return domain.DateOnly(*lease.StartDate), SourceLeaseStart
	}
	return time.Time{}, SourceNone
}

func validDate(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

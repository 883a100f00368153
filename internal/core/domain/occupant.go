package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResidentType distinguishes rent-paying tenants from service-charge payers.
type ResidentType string

const (
	ResidentTenant       ResidentType = "TENANT"
	ResidentHomeowner    ResidentType = "HOMEOWNER"
	ResidentOwnerBilling ResidentType = "OWNER_BILLING" // Synthetic account created to receive owner payments
)

// Lease holds the billing facts of an occupancy.
type Lease struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	// LastBilledPeriod is kept raw ("YYYY-MM") because legacy records carry
	// malformed markers such as "2024-NaN".
	LastBilledPeriod string        `json:"lastBilledPeriod,omitempty"`
	PaymentStatus    BillingStatus `json:"paymentStatus,omitempty"` // Cached, see Occupant.BalanceRecomputedAt
}

// Occupant is a tenant, a homeowner, or a billing account opened on behalf of an owner.
type Occupant struct {
	OccupantID   string       `json:"occupantID"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	UnitID       string       `json:"unitID"`
	PropertyID   string       `json:"propertyID"`
	ResidentType ResidentType `json:"residentType"`
	Owner        *OwnerRef    `json:"owner,omitempty"` // Set for homeowners and owner billing accounts
	Lease        Lease        `json:"lease"`

	// DueBalance and BalanceRecomputedAt are a stored copy of the ledger result.
	// The ledger is the source of truth; these are refreshed by recalculation.
	DueBalance          decimal.Decimal `json:"dueBalance"`
	BalanceRecomputedAt *time.Time      `json:"balanceRecomputedAt,omitempty"`

	IsArchived bool `json:"isArchived"`
	AuditFields
}

// ChargeKind is the recurring charge this occupant is billed for.
func (o Occupant) ChargeKind() PaymentType {
	if o.ResidentType == ResidentTenant {
		return PaymentRent
	}
	return PaymentServiceCharge
}

// Represents reports whether the occupant pays on behalf of the given owner.
func (o Occupant) Represents(ref OwnerRef) bool {
	return o.Owner != nil && *o.Owner == ref
}

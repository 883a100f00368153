package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnershipType classifies who holds the unit.
type OwnershipType string

const (
	SelfManaged     OwnershipType = "SELF_MANAGED"
	ExternallyOwned OwnershipType = "EXTERNALLY_OWNED"
)

// ManagementStatus describes who collects money for the unit.
type ManagementStatus string

const (
	ManagedByAgency ManagementStatus = "MANAGED"
	OwnerManaged    ManagementStatus = "OWNER_MANAGED"
)

// HandoverStatus indicates whether the unit has been handed over to its occupant/owner.
type HandoverStatus string

const (
	HandedOver      HandoverStatus = "HANDED_OVER"
	PendingHandover HandoverStatus = "PENDING_HANDOVER"
)

// OccupancyStatus indicates whether somebody lives in the unit.
type OccupancyStatus string

const (
	Occupied OccupancyStatus = "OCCUPIED"
	Vacant   OccupancyStatus = "VACANT"
)

// Property groups units under one managed building or estate.
type Property struct {
	PropertyID string `json:"propertyID"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Units      []Unit `json:"units"`
	AuditFields
}

// Unit is a rentable or owned space within a property. Only the current
// monthly amounts are known; there is no rate history.
type Unit struct {
	UnitID           string           `json:"unitID"`
	PropertyID       string           `json:"propertyID"`
	Name             string           `json:"name"`
	RentAmount       decimal.Decimal  `json:"rentAmount"`
	ServiceCharge    decimal.Decimal  `json:"serviceCharge"`
	OwnershipType    OwnershipType    `json:"ownershipType"`
	ManagementStatus ManagementStatus `json:"managementStatus"`
	HandoverStatus   HandoverStatus   `json:"handoverStatus"`
	HandoverDate     *time.Time       `json:"handoverDate,omitempty"`
	OccupancyStatus  OccupancyStatus  `json:"occupancyStatus"`
	LandlordID       string           `json:"landlordID,omitempty"` // Direct owner assignment (nullable)
}

// IsHandedOver reports whether the unit is past handover.
func (u Unit) IsHandedOver() bool {
	return u.HandoverStatus == HandedOver
}

// IsVacant reports whether the unit has no occupant.
func (u Unit) IsVacant() bool {
	return u.OccupancyStatus == Vacant
}

// MonthlyAmount returns the configured monthly amount for a recurring charge type.
func (u Unit) MonthlyAmount(kind PaymentType) decimal.Decimal {
	switch kind {
	case PaymentRent:
		return u.RentAmount
	case PaymentServiceCharge:
		return u.ServiceCharge
	default:
		return decimal.Zero
	}
}

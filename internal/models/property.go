package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a row of the properties table.
type Property struct {
	PropertyID string `db:"property_id"`
	Name       string `db:"name"`
	Address    string `db:"address"`
	AuditFields
}

// Unit is a row of the units table.
type Unit struct {
	UnitID           string          `db:"unit_id"`
	PropertyID       string          `db:"property_id"`
	Name             string          `db:"name"`
	RentAmount       decimal.Decimal `db:"rent_amount"`
	ServiceCharge    decimal.Decimal `db:"service_charge"`
	OwnershipType    string          `db:"ownership_type"`
	ManagementStatus string          `db:"management_status"`
	HandoverStatus   string          `db:"handover_status"`
	HandoverDate     *time.Time      `db:"handover_date"` // Nullable
	OccupancyStatus  string          `db:"occupancy_status"`
	LandlordID       *string         `db:"landlord_id"` // Nullable
}

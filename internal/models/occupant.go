package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Occupant is a row of the occupants table.
type Occupant struct {
	OccupantID          string          `db:"occupant_id"`
	Name                string          `db:"name"`
	Email               string          `db:"email"`
	Phone               string          `db:"phone"`
	UnitID              string          `db:"unit_id"`
	PropertyID          string          `db:"property_id"`
	ResidentType        string          `db:"resident_type"`
	OwnerKind           *string         `db:"owner_kind"` // Nullable, set together with OwnerID
	OwnerID             *string         `db:"owner_id"`
	LeaseStartDate      *time.Time      `db:"lease_start_date"`
	LastBilledPeriod    *string         `db:"last_billed_period"`
	PaymentStatus       *string         `db:"payment_status"`
	DueBalance          decimal.Decimal `db:"due_balance"`
	BalanceRecomputedAt *time.Time      `db:"balance_recomputed_at"`
	IsArchived          bool            `db:"is_archived"`
	AuditFields
}

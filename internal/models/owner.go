package models

// Landlord is a row of the landlords table.
type Landlord struct {
	LandlordID  string  `db:"landlord_id"`
	Name        string  `db:"name"`
	Email       string  `db:"email"`
	Phone       string  `db:"phone"`
	BankAccount *string `db:"bank_account"`
	AuditFields
}

// PropertyOwner is a row of the property_owners table. Its units come from property_owner_units.
type PropertyOwner struct {
	OwnerID         string   `db:"owner_id"`
	Name            string   `db:"name"`
	Email           string   `db:"email"`
	Phone           string   `db:"phone"`
	AssignedUnitIDs []string `db:"assigned_unit_ids"` // Aggregated with array_agg
	AuditFields
}

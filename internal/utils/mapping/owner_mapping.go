package mapping

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/models"
)

// ToDomainLandlordOwner converts a landlord row to the landlord Owner variant
func ToDomainLandlordOwner(m models.Landlord) domain.Owner {
	o := domain.NewLandlordOwner(m.LandlordID, m.Name)
	o.Email = m.Email
	o.Phone = m.Phone
	o.BankAccount = derefString(m.BankAccount)
	o.AuditFields = ToDomainAuditFields(m.AuditFields)
	return o
}

// ToDomainEntityOwner converts a property owner row to the entity Owner variant
func ToDomainEntityOwner(m models.PropertyOwner) domain.Owner {
	o := domain.NewEntityOwner(m.OwnerID, m.Name, m.AssignedUnitIDs)
	o.Email = m.Email
	o.Phone = m.Phone
	o.AuditFields = ToDomainAuditFields(m.AuditFields)
	return o
}

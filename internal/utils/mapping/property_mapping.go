package mapping

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/models"
)

// ToDomainProperty converts a model Property and its units to a domain Property
func ToDomainProperty(m models.Property, units []models.Unit) domain.Property {
	p := domain.Property{
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		Address:     m.Address,
		Units:       make([]domain.Unit, 0, len(units)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for _, u := range units {
		p.Units = append(p.Units, ToDomainUnit(u))
	}
	return p
}

// ToDomainUnit converts a model Unit to a domain Unit
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:           m.UnitID,
		PropertyID:       m.PropertyID,
		Name:             m.Name,
		RentAmount:       m.RentAmount,
		ServiceCharge:    m.ServiceCharge,
		OwnershipType:    domain.OwnershipType(m.OwnershipType),
		ManagementStatus: domain.ManagementStatus(m.ManagementStatus),
		HandoverStatus:   domain.HandoverStatus(m.HandoverStatus),
		HandoverDate:     m.HandoverDate,
		OccupancyStatus:  domain.OccupancyStatus(m.OccupancyStatus),
		LandlordID:       derefString(m.LandlordID),
	}
}

// ToModelUnit converts a domain Unit to a model Unit
func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:           d.UnitID,
		PropertyID:       d.PropertyID,
		Name:             d.Name,
		RentAmount:       d.RentAmount,
		ServiceCharge:    d.ServiceCharge,
		OwnershipType:    string(d.OwnershipType),
		ManagementStatus: string(d.ManagementStatus),
		HandoverStatus:   string(d.HandoverStatus),
		HandoverDate:     d.HandoverDate,
		OccupancyStatus:  string(d.OccupancyStatus),
		LandlordID:       stringPtr(d.LandlordID),
	}
}

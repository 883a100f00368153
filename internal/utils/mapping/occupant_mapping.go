package mapping

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/models"
)

// ToModelOccupant converts a domain Occupant to a model Occupant
func ToModelOccupant(d domain.Occupant) models.Occupant {
	m := models.Occupant{
		OccupantID:          d.OccupantID,
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		UnitID:              d.UnitID,
		PropertyID:          d.PropertyID,
		ResidentType:        string(d.ResidentType),
		LeaseStartDate:      d.Lease.StartDate,
		LastBilledPeriod:    stringPtr(d.Lease.LastBilledPeriod),
		PaymentStatus:       stringPtr(string(d.Lease.PaymentStatus)),
		DueBalance:          d.DueBalance,
		BalanceRecomputedAt: d.BalanceRecomputedAt,
		IsArchived:          d.IsArchived,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.Owner != nil {
		kind := string(d.Owner.Kind)
		id := d.Owner.ID
		m.OwnerKind = &kind
		m.OwnerID = &id
	}
	return m
}

// ToDomainOccupant converts a model Occupant to a domain Occupant
func ToDomainOccupant(m models.Occupant) domain.Occupant {
	d := domain.Occupant{
		OccupantID:   m.OccupantID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		UnitID:       m.UnitID,
		PropertyID:   m.PropertyID,
		ResidentType: domain.ResidentType(m.ResidentType),
		Lease: domain.Lease{
			StartDate:        m.LeaseStartDate,
			LastBilledPeriod: derefString(m.LastBilledPeriod),
			PaymentStatus:    domain.BillingStatus(derefString(m.PaymentStatus)),
		},
		DueBalance:          m.DueBalance,
		BalanceRecomputedAt: m.BalanceRecomputedAt,
		IsArchived:          m.IsArchived,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	if m.OwnerKind != nil && m.OwnerID != nil {
		d.Owner = &domain.OwnerRef{Kind: domain.OwnerKind(*m.OwnerKind), ID: *m.OwnerID}
	}
	return d
}

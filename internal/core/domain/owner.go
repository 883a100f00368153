package domain

import (
	"fmt"
	"strings"
)

// OwnerKind tags the Owner variant.
type OwnerKind string

const (
	// OwnerKindLandlord owns units through Unit.LandlordID.
	OwnerKindLandlord OwnerKind = "LANDLORD"
	// OwnerKindEntity owns units through an explicit assigned-unit list.
	OwnerKindEntity OwnerKind = "ENTITY"
)

// ParseOwnerKind accepts the kind case-insensitively ("landlord", "ENTITY").
func ParseOwnerKind(s string) (OwnerKind, error) {
	switch OwnerKind(strings.ToUpper(s)) {
	case OwnerKindLandlord:
		return OwnerKindLandlord, nil
	case OwnerKindEntity:
		return OwnerKindEntity, nil
	}
	return "", fmt.Errorf("unknown owner kind %q", s)
}

// OwnerRef identifies an owner across both variants.
type OwnerRef struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

func (r OwnerRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Owner is either a landlord or a property-owning entity.
type Owner struct {
	Ref         OwnerRef `json:"ref"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	BankAccount string   `json:"bankAccount,omitempty"`
	// AssignedUnitIDs is only meaningful for OwnerKindEntity.
	AssignedUnitIDs []string `json:"assignedUnitIDs,omitempty"`
	AuditFields
}

// NewLandlordOwner builds the landlord variant.
func NewLandlordOwner(id, name string) Owner {
	return Owner{Ref: OwnerRef{Kind: OwnerKindLandlord, ID: id}, Name: name}
}

// NewEntityOwner builds the entity variant with its assigned units.
func NewEntityOwner(id, name string, assignedUnitIDs []string) Owner {
	return Owner{Ref: OwnerRef{Kind: OwnerKindEntity, ID: id}, Name: name, AssignedUnitIDs: assignedUnitIDs}
}

// OwnedUnit is a unit together with the property it belongs to.
type OwnedUnit struct {
	PropertyID   string `json:"propertyID"`
	PropertyName string `json:"propertyName"`
	Unit         Unit   `json:"unit"`
}

// ResolveOwnedUnits returns the owner's units in property order, then unit order.
func ResolveOwnedUnits(owner Owner, properties []Property) []OwnedUnit {
	var owns func(Unit) bool
	switch owner.Ref.Kind {
	case OwnerKindLandlord:
		owns = func(u Unit) bool { return u.LandlordID != "" && u.LandlordID == owner.Ref.ID }
	case OwnerKindEntity:
		assigned := make(map[string]struct{}, len(owner.AssignedUnitIDs))
		for _, id := range owner.AssignedUnitIDs {
			assigned[id] = struct{}{}
		}
		owns = func(u Unit) bool {
			_, ok := assigned[u.UnitID]
			return ok
		}
	default:
		return nil
	}

	var result []OwnedUnit
	for _, p := range properties {
		for _, u := range p.Units {
			if owns(u) {
				result = append(result, OwnedUnit{PropertyID: p.PropertyID, PropertyName: p.Name, Unit: u})
			}
		}
	}
	return result
}

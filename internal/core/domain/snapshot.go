package domain

// Snapshot is a fully materialised copy of the records the billing engine reads.
type Snapshot struct {
	Properties   []Property `json:"properties"`
	Occupants    []Occupant `json:"occupants"`
	Payments     []Payment  `json:"payments"`
	Landlords    []Owner    `json:"landlords"`
	EntityOwners []Owner    `json:"entityOwners"`
}

// FindUnit returns the unit and its property.
func (s Snapshot) FindUnit(unitID string) (Property, Unit, bool) {
	for _, p := range s.Properties {
		for _, u := range p.Units {
			if u.UnitID == unitID {
				return p, u, true
			}
		}
	}
	return Property{}, Unit{}, false
}

// ActiveOccupant returns the non-archived resident of the unit, if any.
// Owner billing accounts are attached to a unit but never occupy it.
func (s Snapshot) ActiveOccupant(unitID string) (Occupant, bool) {
	for _, o := range s.Occupants {
		if o.UnitID == unitID && !o.IsArchived && o.ResidentType != ResidentOwnerBilling {
			return o, true
		}
	}
	return Occupant{}, false
}

// FindOccupant looks an occupant up by ID, archived or not.
func (s Snapshot) FindOccupant(occupantID string) (Occupant, bool) {
	for _, o := range s.Occupants {
		if o.OccupantID == occupantID {
			return o, true
		}
	}
	return Occupant{}, false
}

// Owners returns landlords followed by entity owners.
func (s Snapshot) Owners() []Owner {
	owners := make([]Owner, 0, len(s.Landlords)+len(s.EntityOwners))
	owners = append(owners, s.Landlords...)
	return append(owners, s.EntityOwners...)
}

// FindOwner looks an owner up by reference.
func (s Snapshot) FindOwner(ref OwnerRef) (Owner, bool) {
	for _, o := range s.Owners() {
		if o.Ref == ref {
			return o, true
		}
	}
	return Owner{}, false
}

// OwnerOccupants returns every occupant (archived included) that pays on behalf of the owner.
func (s Snapshot) OwnerOccupants(ref OwnerRef) []Occupant {
	var result []Occupant
	for _, o := range s.Occupants {
		if o.Represents(ref) {
			result = append(result, o)
		}
	}
	return result
}

// PaymentsFor returns the payments of the given occupants, preserving snapshot order.
func (s Snapshot) PaymentsFor(occupantIDs ...string) []Payment {
	ids := make(map[string]struct{}, len(occupantIDs))
	for _, id := range occupantIDs {
		ids[id] = struct{}{}
	}
	var result []Payment
	for _, p := range s.Payments {
		if _, ok := ids[p.OccupantID]; ok {
			result = append(result, p)
		}
	}
	return result
}

// OwnerOf returns the owner holding the unit, landlords first.
func (s Snapshot) OwnerOf(unitID string) (Owner, bool) {
	_, unit, ok := s.FindUnit(unitID)
	if !ok {
		return Owner{}, false
	}
	for _, o := range s.Owners() {
		switch o.Ref.Kind {
		case OwnerKindLandlord:
			if unit.LandlordID != "" && unit.LandlordID == o.Ref.ID {
				return o, true
			}
		case OwnerKindEntity:
			for _, id := range o.AssignedUnitIDs {
				if id == unitID {
					return o, true
				}
			}
		}
	}
	return Owner{}, false
}

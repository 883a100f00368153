package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/models"
	"github.com/SscSPs/property_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const unitColumns = `unit_id, property_id, name, rent_amount, service_charge, ownership_type,
	management_status, handover_status, handover_date, occupancy_status, landlord_id`

// listProperties returns every property with its units, ordered by name.
func listProperties(ctx context.Context, q querier) ([]domain.Property, error) {
	rows, err := q.Query(ctx, `
		SELECT property_id, name, address, created_at, created_by, last_updated_at, last_updated_by, version
		FROM properties
		ORDER BY name, property_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	modelProps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Property, error) {
		var p models.Property
		err := row.Scan(
			&p.PropertyID,
			&p.Name,
			&p.Address,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
			&p.Version,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan properties: %w", err)
	}

	rows, err = q.Query(ctx, `SELECT `+unitColumns+` FROM units ORDER BY property_id, name, unit_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	modelUnits, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Unit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan units: %w", err)
	}

	unitsByProperty := make(map[string][]models.Unit, len(modelProps))
	for _, u := range modelUnits {
		unitsByProperty[u.PropertyID] = append(unitsByProperty[u.PropertyID], u)
	}

	properties := make([]domain.Property, 0, len(modelProps))
	for _, p := range modelProps {
		properties = append(properties, mapping.ToDomainProperty(p, unitsByProperty[p.PropertyID]))
	}
	return properties, nil
}

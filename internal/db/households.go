package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ActiveHouseholdIDs returns the ids of all active, non-deleted households.
func (d *DB) ActiveHouseholdIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
    SELECT id FROM households
    WHERE is_active = TRUE AND deleted_at IS NULL
    ORDER BY created_at`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get households: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan household id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

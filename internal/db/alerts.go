package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// CreateAlerts inserts a batch of alerts in a single transaction. The batch
// is all-or-nothing: any insert failure rolls back the whole batch.
func (d *DB) CreateAlerts(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin alert batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
    INSERT INTO alerts (
        id, household_id, type, category, severity, priority,
        title, message, description,
        related_entity_type, related_entity_id, related_entity_name,
        status, is_read, is_dismissed, created_at, expires_at,
        action_url, action_label, is_recurring
    ) VALUES (
        $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
    )`

	for _, a := range alerts {
		if _, err := tx.Exec(ctx, query,
			a.ID,
			a.HouseholdID,
			a.Type,
			a.Category,
			a.Severity,
			a.Priority,
			a.Title,
			a.Message,
			a.Description,
			a.RelatedEntityType,
			a.RelatedEntityID,
			a.RelatedEntityName,
			a.Status,
			a.IsRead,
			a.IsDismissed,
			a.CreatedAt,
			a.ExpiresAt,
			a.ActionURL,
			a.ActionLabel,
			a.IsRecurring,
		); err != nil {
			return fmt.Errorf("failed to insert alert %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit alert batch: %w", err)
	}
	return nil
}

// AlertExistsOn reports whether a non-deleted alert already exists for the
// given household/entity tuple on the given UTC calendar day.
func (d *DB) AlertExistsOn(ctx context.Context, householdID uuid.UUID, entityType string, entityID uuid.UUID, day time.Time) (bool, error) {
	query := `
    SELECT EXISTS (
        SELECT 1 FROM alerts
        WHERE household_id = $1
          AND related_entity_type = $2
          AND related_entity_id = $3
          AND created_at::date = $4::date
          AND deleted_at IS NULL
    )`

	var exists bool
	err := d.Pool.QueryRow(ctx, query, householdID, entityType, entityID, day.UTC()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check alert existence: %w", err)
	}
	return exists, nil
}

// AlertsByHousehold fetches the most recent non-deleted alerts for a household.
func (d *DB) AlertsByHousehold(ctx context.Context, householdID uuid.UUID, limit int) ([]models.Alert, error) {
	query := `
    SELECT
        id, household_id, type, category, severity, priority,
        title, message, COALESCE(description, ''),
        COALESCE(related_entity_type, ''),
        COALESCE(related_entity_id, '00000000-0000-0000-0000-000000000000'::uuid),
        COALESCE(related_entity_name, ''),
        status, is_read, is_dismissed, created_at, read_at, dismissed_at, expires_at,
        COALESCE(action_url, ''), COALESCE(action_label, ''), is_recurring
    FROM alerts
    WHERE household_id = $1 AND deleted_at IS NULL
    ORDER BY created_at DESC
    LIMIT $2`

	rows, err := d.Pool.Query(ctx, query, householdID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}
	defer rows.Close()

	var list []models.Alert
	for rows.Next() {
		var a models.Alert
		err := rows.Scan(
			&a.ID,
			&a.HouseholdID,
			&a.Type,
			&a.Category,
			&a.Severity,
			&a.Priority,
			&a.Title,
			&a.Message,
			&a.Description,
			&a.RelatedEntityType,
			&a.RelatedEntityID,
			&a.RelatedEntityName,
			&a.Status,
			&a.IsRead,
			&a.IsDismissed,
			&a.CreatedAt,
			&a.ReadAt,
			&a.DismissedAt,
			&a.ExpiresAt,
			&a.ActionURL,
			&a.ActionLabel,
			&a.IsRecurring,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// OpenMaintenanceTasks returns a household's maintenance tasks that are not completed.
func (d *DB) OpenMaintenanceTasks(ctx context.Context, householdID uuid.UUID) ([]models.MaintenanceTask, error) {
	query := `
    SELECT id, title, due_date, status
    FROM maintenance_tasks
    WHERE household_id = $1
      AND status <> 'Completed'
      AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.MaintenanceTask
	for rows.Next() {
		var t models.MaintenanceTask
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

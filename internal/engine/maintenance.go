package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// generateMaintenanceAlerts evaluates open maintenance tasks against the
// due-date thresholds.
func (e *Engine) generateMaintenanceAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	tasks, err := e.store.OpenMaintenanceTasks(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("fetch maintenance tasks: %w", err)
	}

	var staged []models.Alert
	for _, t := range tasks {
		c, ok := evaluateMaintenanceTask(t, now)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit maintenance alerts: %w", err)
	}
	return count, nil
}

func evaluateMaintenanceTask(t models.MaintenanceTask, now time.Time) (candidate, bool) {
	if t.DueDate.IsZero() {
		return candidate{}, false
	}

	c := candidate{
		entityType:  "Maintenance",
		entityID:    t.ID,
		entityName:  t.Title,
		category:    models.CategoryMaintenance,
		actionURL:   "/maintenance/" + t.ID.String(),
		actionLabel: "View Task",
	}

	switch days := daysUntil(now, t.DueDate); {
	case days == 7:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityMedium
		c.title = "Maintenance Task Due Soon"
		c.message = fmt.Sprintf("%s is due in 7 days", t.Title)
	case days == 3:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityHigh
		c.title = "Maintenance Task Due This Week"
		c.message = fmt.Sprintf("%s is due in 3 days", t.Title)
	case days < 0:
		c.alertType = models.AlertTypeError
		c.severity = models.SeverityHigh
		c.title = "Maintenance Task Overdue"
		c.message = fmt.Sprintf("%s is %d day(s) overdue", t.Title, -days)
	default:
		return candidate{}, false
	}
	return c, true
}

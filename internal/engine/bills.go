package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// generateBillAlerts evaluates every unpaid bill against the due-date
// thresholds and commits the surviving candidates as one batch.
func (e *Engine) generateBillAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	bills, err := e.store.UnpaidBills(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("fetch bills: %w", err)
	}

	var staged []models.Alert
	for _, b := range bills {
		c, ok := evaluateBill(b, now)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit bill alerts: %w", err)
	}
	return count, nil
}

// evaluateBill maps a bill's days-to-due-date onto the bill threshold table.
// Thresholds are exact-day triggers; a bill between thresholds produces
// nothing this cycle.
func evaluateBill(b models.Bill, now time.Time) (candidate, bool) {
	if b.DueDate.IsZero() {
		return candidate{}, false
	}

	c := candidate{
		entityType:  "Bill",
		entityID:    b.ID,
		entityName:  b.Name,
		category:    models.CategoryBills,
		actionURL:   "/bills/" + b.ID.String(),
		actionLabel: "View Bill",
	}

	switch days := daysUntil(now, b.DueDate); {
	case days == 7:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityMedium
		c.title = "Bill Due Soon"
		c.message = fmt.Sprintf("%s ($%.2f) is due in 7 days", b.Name, b.Amount)
	case days == 3:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityHigh
		c.title = "Bill Due This Week"
		c.message = fmt.Sprintf("%s ($%.2f) is due in 3 days", b.Name, b.Amount)
	case days == 0:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityCritical
		c.title = "Bill Due Today"
		c.message = fmt.Sprintf("%s ($%.2f) is due today", b.Name, b.Amount)
	case days < 0:
		c.alertType = models.AlertTypeError
		c.severity = models.SeverityCritical
		c.title = "Bill Overdue"
		c.message = fmt.Sprintf("%s ($%.2f) is %d day(s) overdue", b.Name, b.Amount, -days)
	default:
		return candidate{}, false
	}
	return c, true
}

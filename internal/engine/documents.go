package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// generateDocumentAlerts evaluates documents with an expiry date against the
// expiration thresholds.
func (e *Engine) generateDocumentAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	docs, err := e.store.ExpiringDocuments(ctx, householdID, now)
	if err != nil {
		return 0, fmt.Errorf("fetch documents: %w", err)
	}

	var staged []models.Alert
	for _, d := range docs {
		c, ok := evaluateDocument(d, now)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit document alerts: %w", err)
	}
	return count, nil
}

func evaluateDocument(d models.Document, now time.Time) (candidate, bool) {
	if d.ExpirationDate.IsZero() {
		return candidate{}, false
	}

	c := candidate{
		entityType:  "Document",
		entityID:    d.ID,
		entityName:  d.Title,
		category:    models.CategoryDocuments,
		actionURL:   "/documents/" + d.ID.String(),
		actionLabel: "View Document",
	}

	switch days := daysUntil(now, d.ExpirationDate); {
	case days == 30:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityMedium
		c.title = "Document Expiring Soon"
		c.message = fmt.Sprintf("%s expires in 30 days", d.Title)
	case days == 7:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityHigh
		c.title = "Document Expiring This Week"
		c.message = fmt.Sprintf("%s expires in 7 days", d.Title)
	default:
		return candidate{}, false
	}
	return c, true
}

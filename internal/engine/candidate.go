package engine

import (
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// candidate is a fully-computed alert that has not yet passed the dedup
// guard. Rule evaluators return (candidate, true) when a threshold matches
// and (candidate{}, false) otherwise.
type candidate struct {
	entityType string
	entityID   uuid.UUID
	entityName string

	category  models.AlertCategory
	alertType models.AlertType
	severity  models.AlertSeverity

	title   string
	message string

	actionURL   string
	actionLabel string
}

// truncateToDay drops the time-of-day component in UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntil returns the signed whole-day distance from now's UTC date to
// target's UTC date. Negative means the date has already passed.
func daysUntil(now, target time.Time) int {
	return int(truncateToDay(target).Sub(truncateToDay(now)).Hours() / 24)
}

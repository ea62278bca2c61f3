package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// refillWarningThreshold is the refill count at or below which a
// prescription-refill alert fires.
const refillWarningThreshold = 2

// generateHealthcareAlerts covers both upcoming appointments and
// prescription refills; the two feed one batch under the Healthcare category.
func (e *Engine) generateHealthcareAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	appts, err := e.store.UpcomingAppointments(ctx, householdID, now)
	if err != nil {
		return 0, fmt.Errorf("fetch appointments: %w", err)
	}
	meds, err := e.store.ActiveMedications(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("fetch medications: %w", err)
	}

	var staged []models.Alert
	for _, a := range appts {
		c, ok := evaluateAppointment(a, now)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}
	for _, m := range meds {
		c, ok := evaluateMedication(m)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit healthcare alerts: %w", err)
	}
	return count, nil
}

func evaluateAppointment(a models.Appointment, now time.Time) (candidate, bool) {
	if a.Date.IsZero() {
		return candidate{}, false
	}

	c := candidate{
		entityType:  "Appointment",
		entityID:    a.ID,
		entityName:  a.ProviderName,
		category:    models.CategoryHealthcare,
		actionURL:   "/appointments/" + a.ID.String(),
		actionLabel: "View Appointment",
	}

	when := a.ProviderName
	if a.Time != "" {
		when = fmt.Sprintf("%s at %s", a.ProviderName, a.Time)
	}

	switch days := daysUntil(now, a.Date); {
	case days == 7:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityMedium
		c.title = "Appointment Next Week"
		c.message = fmt.Sprintf("Appointment with %s in 7 days", when)
	case days == 3:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityHigh
		c.title = "Appointment This Week"
		c.message = fmt.Sprintf("Appointment with %s in 3 days", when)
	case days == 1:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityHigh
		c.title = "Appointment Tomorrow"
		c.message = fmt.Sprintf("Appointment with %s tomorrow", when)
	default:
		return candidate{}, false
	}
	return c, true
}

// evaluateMedication triggers on a refill count rather than a date: an
// active prescription at or below the threshold alerts every day until
// refilled (the dedup guard caps it at one per day).
func evaluateMedication(m models.Medication) (candidate, bool) {
	if !m.IsActive || m.RefillsRemaining > refillWarningThreshold {
		return candidate{}, false
	}
	return candidate{
		entityType:  "Medication",
		entityID:    m.ID,
		entityName:  m.Name,
		category:    models.CategoryHealthcare,
		alertType:   models.AlertTypeWarning,
		severity:    models.SeverityMedium,
		title:       "Prescription Refill Needed",
		message:     fmt.Sprintf("%s has %d refill(s) remaining", m.Name, m.RefillsRemaining),
		actionURL:   "/medications/" + m.ID.String(),
		actionLabel: "View Medication",
	}, true
}

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// generateInsuranceAlerts evaluates active policies against the renewal-date
// thresholds.
func (e *Engine) generateInsuranceAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	policies, err := e.store.ActiveInsurancePolicies(ctx, householdID, now)
	if err != nil {
		return 0, fmt.Errorf("fetch insurance policies: %w", err)
	}

	var staged []models.Alert
	for _, p := range policies {
		c, ok := evaluateInsurancePolicy(p, now)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit insurance alerts: %w", err)
	}
	return count, nil
}

func evaluateInsurancePolicy(p models.InsurancePolicy, now time.Time) (candidate, bool) {
	if p.RenewalDate.IsZero() {
		return candidate{}, false
	}

	name := p.Provider
	if p.PolicyNumber != "" {
		name = fmt.Sprintf("%s (#%s)", p.Provider, p.PolicyNumber)
	}
	c := candidate{
		entityType:  "Insurance",
		entityID:    p.ID,
		entityName:  name,
		category:    models.CategoryInsurance,
		actionURL:   "/insurance/" + p.ID.String(),
		actionLabel: "View Policy",
	}

	switch days := daysUntil(now, p.RenewalDate); {
	case days == 60:
		c.alertType = models.AlertTypeReminder
		c.severity = models.SeverityMedium
		c.title = "Insurance Policy Expiring Soon"
		c.message = fmt.Sprintf("%s renews in 60 days", name)
	case days == 30:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityHigh
		c.title = "Insurance Policy Expiring"
		c.message = fmt.Sprintf("%s renews in 30 days", name)
	case days == 7:
		c.alertType = models.AlertTypeError
		c.severity = models.SeverityCritical
		c.title = "Insurance Policy Expiring This Week"
		c.message = fmt.Sprintf("%s renews in 7 days", name)
	default:
		return candidate{}, false
	}
	return c, true
}

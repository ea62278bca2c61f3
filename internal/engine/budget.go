package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// generateBudgetAlerts compares each budget's spend in the period covering
// today against its limit. A failed spend lookup skips just that budget.
func (e *Engine) generateBudgetAlerts(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	budgets, err := e.store.ActiveBudgets(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("fetch budgets: %w", err)
	}

	var staged []models.Alert
	for _, b := range budgets {
		period, ok := activePeriod(b, now)
		if !ok || b.LimitAmount <= 0 {
			continue
		}
		spend, err := e.store.BudgetSpend(ctx, householdID, b.CategoryID, period.StartDate, period.EndDate)
		if err != nil {
			e.logger.Warnf("Household %s: spend lookup failed for budget %s: %v", householdID, b.ID, err)
			continue
		}
		c, ok := evaluateBudget(b, spend)
		if !ok {
			continue
		}
		staged = e.stageCandidate(ctx, householdID, now, c, staged)
	}

	count, err := e.commit(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("commit budget alerts: %w", err)
	}
	return count, nil
}

// activePeriod finds the budget period containing now's date, if any.
func activePeriod(b models.Budget, now time.Time) (models.BudgetPeriod, bool) {
	today := truncateToDay(now)
	for _, p := range b.Periods {
		if !today.Before(truncateToDay(p.StartDate)) && !today.After(truncateToDay(p.EndDate)) {
			return p, true
		}
	}
	return models.BudgetPeriod{}, false
}

// evaluateBudget maps percentage-of-limit used onto the budget tiers,
// highest tier first, so a budget yields at most one alert per cycle.
func evaluateBudget(b models.Budget, spend float64) (candidate, bool) {
	pct := spend / b.LimitAmount * 100

	c := candidate{
		entityType:  "Budget",
		entityID:    b.ID,
		entityName:  b.Name,
		category:    models.CategoryBudget,
		actionURL:   "/budgets/" + b.ID.String(),
		actionLabel: "View Budget",
	}

	switch {
	case pct >= 100:
		c.alertType = models.AlertTypeError
		c.severity = models.SeverityCritical
		c.title = "Budget Exceeded"
		c.message = fmt.Sprintf("%s is at %.0f%% of its $%.2f limit", b.Name, pct, b.LimitAmount)
	case pct >= 90:
		c.alertType = models.AlertTypeError
		c.severity = models.SeverityHigh
		c.title = "Budget Limit Reached"
		c.message = fmt.Sprintf("%s is at %.0f%% of its $%.2f limit", b.Name, pct, b.LimitAmount)
	case pct >= 80:
		c.alertType = models.AlertTypeWarning
		c.severity = models.SeverityMedium
		c.title = "Budget Warning"
		c.message = fmt.Sprintf("%s is at %.0f%% of its $%.2f limit", b.Name, pct, b.LimitAmount)
	default:
		return candidate{}, false
	}
	return c, true
}

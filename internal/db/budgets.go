package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// ActiveBudgets returns a household's budgets together with their periods.
func (d *DB) ActiveBudgets(ctx context.Context, householdID uuid.UUID) ([]models.Budget, error) {
	query := `
    SELECT id, name, category_id, limit_amount
    FROM budgets
    WHERE household_id = $1 AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Name, &b.CategoryID, &b.LimitAmount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		periods, err := d.budgetPeriods(ctx, budgets[i].ID)
		if err != nil {
			return nil, err
		}
		budgets[i].Periods = periods
	}
	return budgets, nil
}

func (d *DB) budgetPeriods(ctx context.Context, budgetID uuid.UUID) ([]models.BudgetPeriod, error) {
	query := `
    SELECT start_date, end_date
    FROM budget_periods
    WHERE budget_id = $1
    ORDER BY start_date`

	rows, err := d.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget periods: %w", err)
	}
	defer rows.Close()

	var periods []models.BudgetPeriod
	for rows.Next() {
		var p models.BudgetPeriod
		if err := rows.Scan(&p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan budget period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// BudgetSpend sums transaction amounts for a category within [from, to].
func (d *DB) BudgetSpend(ctx context.Context, householdID, categoryID uuid.UUID, from, to time.Time) (float64, error) {
	query := `
    SELECT COALESCE(SUM(amount), 0)
    FROM transactions
    WHERE household_id = $1
      AND category_id = $2
      AND date >= $3::date
      AND date <= $4::date
      AND deleted_at IS NULL`

	var total float64
	err := d.Pool.QueryRow(ctx, query, householdID, categoryID, from.UTC(), to.UTC()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum budget spend: %w", err)
	}
	return total, nil
}

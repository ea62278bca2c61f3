package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// UnpaidBills returns a household's non-deleted bills that are still payable.
func (d *DB) UnpaidBills(ctx context.Context, householdID uuid.UUID) ([]models.Bill, error) {
	query := `
    SELECT id, name, amount, due_date, status
    FROM bills
    WHERE household_id = $1
      AND status NOT IN ('Paid', 'Cancelled')
      AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &b.DueDate, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

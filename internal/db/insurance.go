package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// ActiveInsurancePolicies returns a household's policies with a renewal date
// still ahead of today.
func (d *DB) ActiveInsurancePolicies(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.InsurancePolicy, error) {
	query := `
    SELECT id, provider, policy_number, renewal_date
    FROM insurance_policies
    WHERE household_id = $1
      AND renewal_date >= $2::date
      AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance policies: %w", err)
	}
	defer rows.Close()

	var policies []models.InsurancePolicy
	for rows.Next() {
		var p models.InsurancePolicy
		if err := rows.Scan(&p.ID, &p.Provider, &p.PolicyNumber, &p.RenewalDate); err != nil {
			return nil, fmt.Errorf("failed to scan insurance policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

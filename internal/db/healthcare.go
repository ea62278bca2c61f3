package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// UpcomingAppointments returns a household's future-dated appointments with
// the provider's display name denormalized in.
func (d *DB) UpcomingAppointments(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.Appointment, error) {
	query := `
    SELECT a.id, COALESCE(p.name, ''), a.appointment_date, COALESCE(a.appointment_time, '')
    FROM appointments a
    LEFT JOIN healthcare_providers p ON p.id = a.provider_id
    WHERE a.household_id = $1
      AND a.appointment_date >= $2::date
      AND a.deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.ProviderName, &a.Date, &a.Time); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

// ActiveMedications returns a household's active prescriptions.
func (d *DB) ActiveMedications(ctx context.Context, householdID uuid.UUID) ([]models.Medication, error) {
	query := `
    SELECT id, name, refills_remaining, is_active
    FROM medications
    WHERE household_id = $1
      AND is_active = TRUE
      AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	defer rows.Close()

	var meds []models.Medication
	for rows.Next() {
		var m models.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.RefillsRemaining, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

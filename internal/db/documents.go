package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

// ExpiringDocuments returns a household's documents that have an expiration
// date set and not yet passed.
func (d *DB) ExpiringDocuments(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.Document, error) {
	query := `
    SELECT id, title, expiration_date
    FROM documents
    WHERE household_id = $1
      AND expiration_date IS NOT NULL
      AND expiration_date >= $2::date
      AND deleted_at IS NULL`

	rows, err := d.Pool.Query(ctx, query, householdID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.ExpirationDate); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

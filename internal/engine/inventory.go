package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// generateInventoryAlerts is a placeholder. The Inventory category exists in
// the alert taxonomy but has no generation rules yet, so this module always
// reports zero and reads nothing.
func (e *Engine) generateInventoryAlerts(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	return 0, nil
}

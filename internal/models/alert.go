package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertType classifies the tone of an alert.
type AlertType string

const (
	AlertTypeReminder AlertType = "Reminder"
	AlertTypeWarning  AlertType = "Warning"
	AlertTypeError    AlertType = "Error"
	AlertTypeInfo     AlertType = "Info"
	AlertTypeSuccess  AlertType = "Success"
)

// AlertCategory names the domain a generated alert belongs to.
type AlertCategory string

const (
	CategoryBills       AlertCategory = "Bills"
	CategoryMaintenance AlertCategory = "Maintenance"
	CategoryHealthcare  AlertCategory = "Healthcare"
	CategoryInsurance   AlertCategory = "Insurance"
	CategoryDocuments   AlertCategory = "Documents"
	CategoryInventory   AlertCategory = "Inventory"
	CategoryBudget      AlertCategory = "Budget"
	CategoryFinancial   AlertCategory = "Financial"
	CategorySystem      AlertCategory = "System"
)

// AlertSeverity ranks how serious an alert is.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// AlertPriority is the integer tier clients sort by.
type AlertPriority int

const (
	PriorityLow    AlertPriority = 1
	PriorityMedium AlertPriority = 2
	PriorityHigh   AlertPriority = 3
	PriorityUrgent AlertPriority = 4
)

// PriorityForSeverity maps a severity to its priority tier.
// Unknown severities fall back to the lowest tier.
func PriorityForSeverity(sev AlertSeverity) AlertPriority {
	switch sev {
	case SeverityMedium:
		return PriorityMedium
	case SeverityHigh:
		return PriorityHigh
	case SeverityCritical:
		return PriorityUrgent
	default:
		return PriorityLow
	}
}

// AlertStatus is the lifecycle state of an alert. The generation engine only
// ever produces Active; the other transitions belong to the CRUD layer.
type AlertStatus string

const (
	StatusActive    AlertStatus = "Active"
	StatusRead      AlertStatus = "Read"
	StatusDismissed AlertStatus = "Dismissed"
	StatusExpired   AlertStatus = "Expired"
	StatusArchived  AlertStatus = "Archived"
)

// Alert is a generated notification row scoped to a single household.
// (HouseholdID, RelatedEntityType, RelatedEntityID, date of CreatedAt) is the
// natural key the dedup guard enforces: at most one non-deleted alert per
// tuple per UTC calendar day.
type Alert struct {
	ID          uuid.UUID     `json:"id"`
	HouseholdID uuid.UUID     `json:"household_id"`
	Type        AlertType     `json:"type"`
	Category    AlertCategory `json:"category"`
	Severity    AlertSeverity `json:"severity"`
	Priority    AlertPriority `json:"priority"`

	Title       string `json:"title"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`

	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   uuid.UUID `json:"related_entity_id,omitempty"`
	RelatedEntityName string    `json:"related_entity_name,omitempty"`

	Status      AlertStatus `json:"status"`
	IsRead      bool        `json:"is_read"`
	IsDismissed bool        `json:"is_dismissed"`
	CreatedAt   time.Time   `json:"created_at"`
	ReadAt      *time.Time  `json:"read_at,omitempty"`
	DismissedAt *time.Time  `json:"dismissed_at,omitempty"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`

	ActionURL   string `json:"action_url,omitempty"`
	ActionLabel string `json:"action_label,omitempty"`

	// Recurrence columns exist in the schema but nothing populates or reads
	// them; carried for parity with the store.
	IsRecurring    bool       `json:"is_recurring"`
	RecurrenceRule string     `json:"recurrence_rule,omitempty"`
	NextOccurrence *time.Time `json:"next_occurrence,omitempty"`

	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

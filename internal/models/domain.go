package models

import (
	"time"

	"github.com/google/uuid"
)

// Household is the tenant unit; every domain record and alert belongs to one.
type Household struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Bill is an upcoming or overdue payable.
type Bill struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`
	Status  string    `json:"status"`
}

// MaintenanceTask is a scheduled home maintenance item.
type MaintenanceTask struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
	Status  string    `json:"status"`
}

// Appointment is a future healthcare visit.
type Appointment struct {
	ID           uuid.UUID `json:"id"`
	ProviderName string    `json:"provider_name"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
}

// Medication is an active prescription with a refill counter.
type Medication struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	RefillsRemaining int       `json:"refills_remaining"`
	IsActive         bool      `json:"is_active"`
}

// InsurancePolicy is an active policy approaching renewal.
type InsurancePolicy struct {
	ID           uuid.UUID `json:"id"`
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	RenewalDate  time.Time `json:"renewal_date"`
}

// Document is a stored document with an expiry date set.
type Document struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// BudgetPeriod is one start/end window of a budget.
type BudgetPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Budget is a spending limit for a transaction category, tracked per period.
type Budget struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	CategoryID  uuid.UUID      `json:"category_id"`
	LimitAmount float64        `json:"limit_amount"`
	Periods     []BudgetPeriod `json:"periods"`
}

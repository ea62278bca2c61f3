package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/config"
	"butler-alert-service/internal/logging"
	"butler-alert-service/internal/models"
)

// fakeStore is an in-memory Store for engine tests. Fetches for households
// in failHouseholds return errors; failEnumerate fails the cycle itself.
type fakeStore struct {
	households []uuid.UUID

	bills    map[uuid.UUID][]models.Bill
	tasks    map[uuid.UUID][]models.MaintenanceTask
	appts    map[uuid.UUID][]models.Appointment
	meds     map[uuid.UUID][]models.Medication
	policies map[uuid.UUID][]models.InsurancePolicy
	docs     map[uuid.UUID][]models.Document
	budgets  map[uuid.UUID][]models.Budget
	spend    map[uuid.UUID]float64 // keyed by budget category id

	alerts []models.Alert

	failHouseholds map[uuid.UUID]bool
	failEnumerate  bool
	readCalls      int
}

var errFakeStore = errors.New("store unavailable")

func newFakeStore() *fakeStore {
	return &fakeStore{
		bills:          make(map[uuid.UUID][]models.Bill),
		tasks:          make(map[uuid.UUID][]models.MaintenanceTask),
		appts:          make(map[uuid.UUID][]models.Appointment),
		meds:           make(map[uuid.UUID][]models.Medication),
		policies:       make(map[uuid.UUID][]models.InsurancePolicy),
		docs:           make(map[uuid.UUID][]models.Document),
		budgets:        make(map[uuid.UUID][]models.Budget),
		spend:          make(map[uuid.UUID]float64),
		failHouseholds: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) check(householdID uuid.UUID) error {
	f.readCalls++
	if f.failHouseholds[householdID] {
		return errFakeStore
	}
	return nil
}

func (f *fakeStore) ActiveHouseholdIDs(context.Context) ([]uuid.UUID, error) {
	if f.failEnumerate {
		return nil, errFakeStore
	}
	return f.households, nil
}

func (f *fakeStore) UnpaidBills(_ context.Context, hh uuid.UUID) ([]models.Bill, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.bills[hh], nil
}

func (f *fakeStore) OpenMaintenanceTasks(_ context.Context, hh uuid.UUID) ([]models.MaintenanceTask, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.tasks[hh], nil
}

func (f *fakeStore) UpcomingAppointments(_ context.Context, hh uuid.UUID, _ time.Time) ([]models.Appointment, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.appts[hh], nil
}

func (f *fakeStore) ActiveMedications(_ context.Context, hh uuid.UUID) ([]models.Medication, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.meds[hh], nil
}

func (f *fakeStore) ActiveInsurancePolicies(_ context.Context, hh uuid.UUID, _ time.Time) ([]models.InsurancePolicy, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.policies[hh], nil
}

func (f *fakeStore) ExpiringDocuments(_ context.Context, hh uuid.UUID, _ time.Time) ([]models.Document, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.docs[hh], nil
}

func (f *fakeStore) ActiveBudgets(_ context.Context, hh uuid.UUID) ([]models.Budget, error) {
	if err := f.check(hh); err != nil {
		return nil, err
	}
	return f.budgets[hh], nil
}

func (f *fakeStore) BudgetSpend(_ context.Context, hh, categoryID uuid.UUID, _, _ time.Time) (float64, error) {
	if err := f.check(hh); err != nil {
		return 0, err
	}
	return f.spend[categoryID], nil
}

func (f *fakeStore) AlertExistsOn(_ context.Context, hh uuid.UUID, entityType string, entityID uuid.UUID, day time.Time) (bool, error) {
	if err := f.check(hh); err != nil {
		return false, err
	}
	target := truncateToDay(day)
	for _, a := range f.alerts {
		if a.DeletedAt != nil {
			continue
		}
		if a.HouseholdID == hh && a.RelatedEntityType == entityType && a.RelatedEntityID == entityID &&
			truncateToDay(a.CreatedAt).Equal(target) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateAlerts(_ context.Context, alerts []models.Alert) error {
	f.alerts = append(f.alerts, alerts...)
	return nil
}

// newTestEngine builds an engine over the fake store with a fixed clock.
func newTestEngine(t *testing.T, store *fakeStore, now time.Time) *Engine {
	t.Helper()
	logger, err := logging.New(t.TempDir(), "debug")
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}
	var cfg config.Config
	cfg.Generation.IntervalMinutes = 60
	cfg.Generation.WarmupSeconds = 30
	e := New(store, logger, cfg)
	e.now = func() time.Time { return now }
	return e
}

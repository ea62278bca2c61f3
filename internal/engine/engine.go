package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/config"
	"butler-alert-service/internal/logging"
	"butler-alert-service/internal/models"
)

// ErrCycleRunning is returned when a cycle is requested while another is
// still in progress. Overlapping cycles are suppressed to keep the
// dedup-then-write sequence race free.
var ErrCycleRunning = errors.New("generation cycle already running")

// Store is the data-access boundary the engine reads domain records from and
// writes alerts to. *db.DB satisfies it.
type Store interface {
	ActiveHouseholdIDs(ctx context.Context) ([]uuid.UUID, error)

	UnpaidBills(ctx context.Context, householdID uuid.UUID) ([]models.Bill, error)
	OpenMaintenanceTasks(ctx context.Context, householdID uuid.UUID) ([]models.MaintenanceTask, error)
	UpcomingAppointments(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.Appointment, error)
	ActiveMedications(ctx context.Context, householdID uuid.UUID) ([]models.Medication, error)
	ActiveInsurancePolicies(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.InsurancePolicy, error)
	ExpiringDocuments(ctx context.Context, householdID uuid.UUID, now time.Time) ([]models.Document, error)
	ActiveBudgets(ctx context.Context, householdID uuid.UUID) ([]models.Budget, error)
	BudgetSpend(ctx context.Context, householdID, categoryID uuid.UUID, from, to time.Time) (float64, error)

	AlertExistsOn(ctx context.Context, householdID uuid.UUID, entityType string, entityID uuid.UUID, day time.Time) (bool, error)
	CreateAlerts(ctx context.Context, alerts []models.Alert) error
}

// Sink receives alerts after their batch has committed. Sinks must not block
// the generation cycle for long; failures are theirs to handle.
type Sink interface {
	AlertsCreated(alerts []models.Alert)
}

// Recorder receives the outcome counters of each completed cycle.
type Recorder interface {
	RecordCycle(stats CycleStats)
}

// CycleStats summarizes one full pass over all active households.
type CycleStats struct {
	StartedAt         time.Time                    `json:"started_at"`
	Duration          time.Duration                `json:"duration"`
	Households        int                          `json:"households"`
	HouseholdFailures int                          `json:"household_failures"`
	AlertsGenerated   int                          `json:"alerts_generated"`
	ByCategory        map[models.AlertCategory]int `json:"by_category"`
}

// Engine is the periodic alert-generation driver: it wakes on an interval,
// enumerates active households, and runs the rule modules over each.
type Engine struct {
	store    Store
	logger   *logging.Logger
	interval time.Duration
	warmup   time.Duration

	now      func() time.Time
	sinks    []Sink
	recorder Recorder

	running atomic.Bool

	mu   sync.Mutex
	last *CycleStats
}

// New constructs an Engine from the generation settings in cfg.
func New(store Store, logger *logging.Logger, cfg config.Config) *Engine {
	return &Engine{
		store:    store,
		logger:   logger,
		interval: time.Duration(cfg.Generation.IntervalMinutes) * time.Minute,
		warmup:   time.Duration(cfg.Generation.WarmupSeconds) * time.Second,
		now:      time.Now,
	}
}

// AddSink registers a sink notified after each committed batch.
func (e *Engine) AddSink(s Sink) {
	e.sinks = append(e.sinks, s)
}

// SetRecorder registers a cycle stats recorder.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// Start launches the scheduler loop in a background goroutine. The loop waits
// out the warm-up delay, runs the first cycle, then runs one cycle per
// interval tick until ctx is cancelled.
func (e *Engine) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.logger.Infof("Alert generation scheduler started (interval=%s, warmup=%s)", e.interval, e.warmup)

		select {
		case <-ctx.Done():
			e.logger.Infof("Alert generation scheduler stopped before first cycle")
			return
		case <-time.After(e.warmup):
		}
		e.runScheduled(ctx)

		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				e.logger.Infof("Alert generation scheduler stopped")
				return
			case <-ticker.C:
				e.runScheduled(ctx)
			}
		}
	}()
}

// runScheduled runs one cycle and logs the outcome. A failed cycle is logged
// and dropped; the next tick is the retry.
func (e *Engine) runScheduled(ctx context.Context) {
	stats, err := e.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, ErrCycleRunning) {
			e.logger.Warnf("Skipping generation cycle: previous cycle still running")
			return
		}
		e.logger.Errorf("Generation cycle failed: %v", err)
		return
	}
	e.logger.Infof("Generation cycle complete: %d households scanned, %d failed, %d alerts generated in %s",
		stats.Households, stats.HouseholdFailures, stats.AlertsGenerated, stats.Duration)
}

// RunCycle executes one full generation pass over all active households.
// Only one cycle runs at a time; concurrent calls get ErrCycleRunning.
func (e *Engine) RunCycle(ctx context.Context) (CycleStats, error) {
	if !e.running.CompareAndSwap(false, true) {
		return CycleStats{}, ErrCycleRunning
	}
	defer e.running.Store(false)

	started := e.now().UTC()
	stats := CycleStats{
		StartedAt:  started,
		ByCategory: make(map[models.AlertCategory]int),
	}

	ids, err := e.store.ActiveHouseholdIDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to enumerate households: %w", err)
	}

	for _, householdID := range ids {
		if ctx.Err() != nil {
			e.logger.Warnf("Generation cycle cancelled after %d households", stats.Households)
			break
		}
		stats.Households++

		// one "now" per household, threaded through every module
		now := e.now().UTC()
		if failed := e.processHousehold(ctx, householdID, now, &stats); failed {
			stats.HouseholdFailures++
		}
	}

	stats.Duration = e.now().UTC().Sub(started)
	e.mu.Lock()
	e.last = &stats
	e.mu.Unlock()
	if e.recorder != nil {
		e.recorder.RecordCycle(stats)
	}
	return stats, nil
}

// LastCycle returns the stats of the most recently completed cycle, if any.
func (e *Engine) LastCycle() (CycleStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return CycleStats{}, false
	}
	return *e.last, true
}

type ruleModule struct {
	category models.AlertCategory
	run      func(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error)
}

// modules returns the rule modules in their fixed execution order.
func (e *Engine) modules() []ruleModule {
	return []ruleModule{
		{models.CategoryBills, e.generateBillAlerts},
		{models.CategoryMaintenance, e.generateMaintenanceAlerts},
		{models.CategoryHealthcare, e.generateHealthcareAlerts},
		{models.CategoryInsurance, e.generateInsuranceAlerts},
		{models.CategoryDocuments, e.generateDocumentAlerts},
		{models.CategoryBudget, e.generateBudgetAlerts},
		{models.CategoryInventory, e.generateInventoryAlerts},
	}
}

// processHousehold runs every rule module for one household. Module failures
// are logged with the household id and category and do not stop the
// remaining modules. Returns true if any module failed.
func (e *Engine) processHousehold(ctx context.Context, householdID uuid.UUID, now time.Time, stats *CycleStats) bool {
	failed := false
	for _, m := range e.modules() {
		count, err := m.run(ctx, householdID, now)
		if err != nil {
			e.logger.Errorf("Household %s: %s alert generation failed: %v", householdID, m.category, err)
			failed = true
			continue
		}
		if count > 0 {
			stats.ByCategory[m.category] += count
			stats.AlertsGenerated += count
			e.logger.Debugf("Household %s: generated %d %s alert(s)", householdID, count, m.category)
		}
	}
	return failed
}

// stageCandidate runs the dedup guard for one candidate and, if no alert with
// the same entity tuple exists today, appends the constructed alert to staged.
// A failed dedup read skips just that candidate.
func (e *Engine) stageCandidate(ctx context.Context, householdID uuid.UUID, now time.Time, c candidate, staged []models.Alert) []models.Alert {
	exists, err := e.store.AlertExistsOn(ctx, householdID, c.entityType, c.entityID, now)
	if err != nil {
		e.logger.Warnf("Household %s: dedup check failed for %s %s: %v", householdID, c.entityType, c.entityID, err)
		return staged
	}
	if exists {
		e.logger.Debugf("Household %s: alert for %s %s already created today, skipping", householdID, c.entityType, c.entityID)
		return staged
	}
	return append(staged, e.buildAlert(householdID, now, c))
}

// buildAlert turns a candidate into a persistable alert in its initial state.
func (e *Engine) buildAlert(householdID uuid.UUID, now time.Time, c candidate) models.Alert {
	return models.Alert{
		ID:                uuid.New(),
		HouseholdID:       householdID,
		Type:              c.alertType,
		Category:          c.category,
		Severity:          c.severity,
		Priority:          models.PriorityForSeverity(c.severity),
		Title:             c.title,
		Message:           c.message,
		RelatedEntityType: c.entityType,
		RelatedEntityID:   c.entityID,
		RelatedEntityName: c.entityName,
		Status:            models.StatusActive,
		IsRead:            false,
		IsDismissed:       false,
		CreatedAt:         now,
		ActionURL:         c.actionURL,
		ActionLabel:       c.actionLabel,
	}
}

// commit writes the staged batch in one transaction and fans it out to sinks.
func (e *Engine) commit(ctx context.Context, staged []models.Alert) (int, error) {
	if len(staged) == 0 {
		return 0, nil
	}
	if err := e.store.CreateAlerts(ctx, staged); err != nil {
		return 0, err
	}
	for _, s := range e.sinks {
		s.AlertsCreated(staged)
	}
	return len(staged), nil
}

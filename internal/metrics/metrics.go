// Package metrics reports generation cycle counters to Redis so operators
// can watch the engine without a scrape endpoint.
package metrics

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"butler-alert-service/internal/engine"
	"butler-alert-service/internal/logging"
)

const (
	// MetricsKey is the Redis key the collector writes to.
	MetricsKey = "metrics:butler-alert-service"
	// MetricsTTL is how long a snapshot survives without a refresh.
	MetricsTTL = 2 * time.Minute
	// DefaultReportInterval is how often the snapshot is rewritten.
	DefaultReportInterval = 30 * time.Second
)

// Snapshot is the JSON document written to Redis.
type Snapshot struct {
	ServiceName       string    `json:"service_name"`
	StartedAt         time.Time `json:"started_at"`
	LastUpdated       time.Time `json:"last_updated"`
	CyclesRun         uint64    `json:"cycles_run"`
	HouseholdsScanned uint64    `json:"households_scanned"`
	HouseholdFailures uint64    `json:"household_failures"`
	AlertsGenerated   uint64    `json:"alerts_generated"`
	LastCycleAt       time.Time `json:"last_cycle_at,omitempty"`
	LastCycleDuration string    `json:"last_cycle_duration,omitempty"`
}

// Collector accumulates cycle counters and reports them to Redis on an
// interval. It implements engine.Recorder.
type Collector struct {
	client *redis.Client
	logger *logging.Logger

	startedAt time.Time

	cyclesRun         atomic.Uint64
	householdsScanned atomic.Uint64
	householdFailures atomic.Uint64
	alertsGenerated   atomic.Uint64

	mu        sync.Mutex
	lastCycle engine.CycleStats
}

// NewCollector connects to Redis at addr and returns a collector.
func NewCollector(addr string, logger *logging.Logger) (*Collector, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Collector{
		client:    client,
		logger:    logger,
		startedAt: time.Now().UTC(),
	}, nil
}

// RecordCycle folds one completed cycle into the counters.
func (c *Collector) RecordCycle(stats engine.CycleStats) {
	c.cyclesRun.Add(1)
	c.householdsScanned.Add(uint64(stats.Households))
	c.householdFailures.Add(uint64(stats.HouseholdFailures))
	c.alertsGenerated.Add(uint64(stats.AlertsGenerated))

	c.mu.Lock()
	c.lastCycle = stats
	c.mu.Unlock()
}

// Start launches the background report loop until ctx is cancelled.
func (c *Collector) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(DefaultReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				c.report(context.Background())
				c.client.Close()
				return
			case <-ticker.C:
				c.report(ctx)
			}
		}
	}()
}

func (c *Collector) report(ctx context.Context) {
	c.mu.Lock()
	last := c.lastCycle
	c.mu.Unlock()

	snap := Snapshot{
		ServiceName:       "butler-alert-service",
		StartedAt:         c.startedAt,
		LastUpdated:       time.Now().UTC(),
		CyclesRun:         c.cyclesRun.Load(),
		HouseholdsScanned: c.householdsScanned.Load(),
		HouseholdFailures: c.householdFailures.Load(),
		AlertsGenerated:   c.alertsGenerated.Load(),
	}
	if !last.StartedAt.IsZero() {
		snap.LastCycleAt = last.StartedAt
		snap.LastCycleDuration = last.Duration.String()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		c.logger.Errorf("Failed to marshal metrics snapshot: %v", err)
		return
	}
	if err := c.client.Set(ctx, MetricsKey, payload, MetricsTTL).Err(); err != nil {
		c.logger.Warnf("Failed to write metrics to Redis: %v", err)
	}
}

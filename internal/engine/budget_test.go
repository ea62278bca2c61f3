package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

func testBudget(limit float64) models.Budget {
	return models.Budget{
		ID:          uuid.New(),
		Name:        "Groceries",
		CategoryID:  uuid.New(),
		LimitAmount: limit,
		Periods: []models.BudgetPeriod{
			{StartDate: date(-14), EndDate: date(14)},
		},
	}
}

func TestEvaluateBudget_TierPrecedence(t *testing.T) {
	tests := []struct {
		name         string
		spend        float64
		wantAlert    bool
		wantTitle    string
		wantType     models.AlertType
		wantSeverity models.AlertSeverity
	}{
		{name: "79 percent", spend: 79, wantAlert: false},
		{name: "80 percent", spend: 80, wantAlert: true, wantTitle: "Budget Warning", wantType: models.AlertTypeWarning, wantSeverity: models.SeverityMedium},
		{name: "90 percent", spend: 90, wantAlert: true, wantTitle: "Budget Limit Reached", wantType: models.AlertTypeError, wantSeverity: models.SeverityHigh},
		{name: "exactly at limit", spend: 100, wantAlert: true, wantTitle: "Budget Exceeded", wantType: models.AlertTypeError, wantSeverity: models.SeverityCritical},
		{name: "105 percent wins highest tier only", spend: 105, wantAlert: true, wantTitle: "Budget Exceeded", wantType: models.AlertTypeError, wantSeverity: models.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBudget(100)
			c, ok := evaluateBudget(b, tt.spend)
			if ok != tt.wantAlert {
				t.Fatalf("evaluateBudget() ok = %v, want %v", ok, tt.wantAlert)
			}
			if !ok {
				return
			}
			if c.title != tt.wantTitle {
				t.Errorf("title = %q, want %q", c.title, tt.wantTitle)
			}
			if c.alertType != tt.wantType || c.severity != tt.wantSeverity {
				t.Errorf("classification = (%v, %v), want (%v, %v)", c.alertType, c.severity, tt.wantType, tt.wantSeverity)
			}
			if c.entityType != "Budget" {
				t.Errorf("entityType = %q, want Budget", c.entityType)
			}
		})
	}
}

func TestActivePeriod(t *testing.T) {
	b := models.Budget{
		Periods: []models.BudgetPeriod{
			{StartDate: date(-60), EndDate: date(-31)},
			{StartDate: date(-30), EndDate: date(0)},
		},
	}

	period, ok := activePeriod(b, testNow)
	if !ok {
		t.Fatal("activePeriod() found no period covering today")
	}
	if !truncateToDay(period.StartDate).Equal(truncateToDay(date(-30))) {
		t.Errorf("activePeriod() start = %v, want the period ending today", period.StartDate)
	}

	past := models.Budget{Periods: []models.BudgetPeriod{{StartDate: date(-60), EndDate: date(-31)}}}
	if _, ok := activePeriod(past, testNow); ok {
		t.Error("activePeriod() matched a period that ended before today")
	}
}

func TestGenerateBudgetAlerts_SkipsInactiveAndZeroLimit(t *testing.T) {
	store := newFakeStore()
	hh := uuid.New()
	store.households = []uuid.UUID{hh}

	noPeriod := models.Budget{ID: uuid.New(), Name: "Stale", CategoryID: uuid.New(), LimitAmount: 100,
		Periods: []models.BudgetPeriod{{StartDate: date(-60), EndDate: date(-31)}}}
	zeroLimit := models.Budget{ID: uuid.New(), Name: "Unbounded", CategoryID: uuid.New(), LimitAmount: 0,
		Periods: []models.BudgetPeriod{{StartDate: date(-1), EndDate: date(1)}}}
	active := testBudget(200)
	store.budgets[hh] = []models.Budget{noPeriod, zeroLimit, active}
	store.spend[active.CategoryID] = 210 // 105%

	e := newTestEngine(t, store, testNow)
	count, err := e.generateBudgetAlerts(context.Background(), hh, testNow)
	if err != nil {
		t.Fatalf("generateBudgetAlerts() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("generateBudgetAlerts() = %d, want 1 (only the active over-limit budget)", count)
	}
	if store.alerts[0].Title != "Budget Exceeded" {
		t.Errorf("alert title = %q, want Budget Exceeded", store.alerts[0].Title)
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		target time.Time
		want   int
	}{
		{name: "same day ignores time of day", now: testNow, target: testNow.Add(10 * time.Hour), want: 0},
		{name: "tomorrow just after midnight", now: testNow, target: time.Date(2025, 3, 16, 0, 30, 0, 0, time.UTC), want: 1},
		{name: "yesterday", now: testNow, target: testNow.AddDate(0, 0, -1), want: -1},
		{name: "a week ahead", now: testNow, target: testNow.AddDate(0, 0, 7), want: 7},
		{name: "non-UTC target converts first", now: testNow, target: time.Date(2025, 3, 16, 1, 0, 0, 0, time.FixedZone("ahead", 2*3600)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysUntil(tt.now, tt.target); got != tt.want {
				t.Errorf("daysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

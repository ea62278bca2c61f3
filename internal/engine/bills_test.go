package engine

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

func TestEvaluateBill_Thresholds(t *testing.T) {
	tests := []struct {
		name         string
		daysOut      int
		wantAlert    bool
		wantTitle    string
		wantType     models.AlertType
		wantSeverity models.AlertSeverity
	}{
		{name: "eight days out", daysOut: 8, wantAlert: false},
		{name: "seven days out", daysOut: 7, wantAlert: true, wantTitle: "Bill Due Soon", wantType: models.AlertTypeReminder, wantSeverity: models.SeverityMedium},
		{name: "six days out", daysOut: 6, wantAlert: false},
		{name: "four days out", daysOut: 4, wantAlert: false},
		{name: "three days out", daysOut: 3, wantAlert: true, wantTitle: "Bill Due This Week", wantType: models.AlertTypeWarning, wantSeverity: models.SeverityHigh},
		{name: "two days out", daysOut: 2, wantAlert: false},
		{name: "one day out", daysOut: 1, wantAlert: false},
		{name: "due today", daysOut: 0, wantAlert: true, wantTitle: "Bill Due Today", wantType: models.AlertTypeWarning, wantSeverity: models.SeverityCritical},
		{name: "one day overdue", daysOut: -1, wantAlert: true, wantTitle: "Bill Overdue", wantType: models.AlertTypeError, wantSeverity: models.SeverityCritical},
		{name: "thirty days overdue", daysOut: -30, wantAlert: true, wantTitle: "Bill Overdue", wantType: models.AlertTypeError, wantSeverity: models.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := models.Bill{ID: uuid.New(), Name: "Electric", Amount: 120.50, DueDate: date(tt.daysOut), Status: "Pending"}
			c, ok := evaluateBill(b, testNow)
			if ok != tt.wantAlert {
				t.Fatalf("evaluateBill() ok = %v, want %v", ok, tt.wantAlert)
			}
			if !ok {
				return
			}
			if c.title != tt.wantTitle {
				t.Errorf("title = %q, want %q", c.title, tt.wantTitle)
			}
			if c.alertType != tt.wantType {
				t.Errorf("type = %v, want %v", c.alertType, tt.wantType)
			}
			if c.severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", c.severity, tt.wantSeverity)
			}
			if c.entityType != "Bill" || c.entityID != b.ID {
				t.Errorf("entity = (%q, %s), want (Bill, %s)", c.entityType, c.entityID, b.ID)
			}
		})
	}
}

func TestEvaluateBill_OverdueMessageDayCount(t *testing.T) {
	for _, daysOverdue := range []int{1, 30} {
		b := models.Bill{ID: uuid.New(), Name: "Water", Amount: 45, DueDate: date(-daysOverdue), Status: "Pending"}
		c, ok := evaluateBill(b, testNow)
		if !ok {
			t.Fatalf("evaluateBill() overdue by %d produced no alert", daysOverdue)
		}
		want := fmt.Sprintf("Water ($45.00) is %d day(s) overdue", daysOverdue)
		if c.message != want {
			t.Errorf("message = %q, want %q", c.message, want)
		}
	}
}

func TestEvaluateBill_MissingDueDate(t *testing.T) {
	b := models.Bill{ID: uuid.New(), Name: "Broken", Amount: 10, Status: "Pending"}
	if _, ok := evaluateBill(b, testNow); ok {
		t.Error("evaluateBill() with zero due date must not alert")
	}
}

package engine

import (
	"testing"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

func TestEvaluateMaintenanceTask_Thresholds(t *testing.T) {
	tests := []struct {
		name         string
		daysOut      int
		wantAlert    bool
		wantTitle    string
		wantSeverity models.AlertSeverity
	}{
		{name: "eight days out", daysOut: 8, wantAlert: false},
		{name: "seven days out", daysOut: 7, wantAlert: true, wantTitle: "Maintenance Task Due Soon", wantSeverity: models.SeverityMedium},
		{name: "three days out", daysOut: 3, wantAlert: true, wantTitle: "Maintenance Task Due This Week", wantSeverity: models.SeverityHigh},
		{name: "due today has no threshold", daysOut: 0, wantAlert: false},
		{name: "overdue", daysOut: -2, wantAlert: true, wantTitle: "Maintenance Task Overdue", wantSeverity: models.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.MaintenanceTask{ID: uuid.New(), Title: "Gutter cleaning", DueDate: date(tt.daysOut), Status: "Pending"}
			c, ok := evaluateMaintenanceTask(task, testNow)
			if ok != tt.wantAlert {
				t.Fatalf("evaluateMaintenanceTask() ok = %v, want %v", ok, tt.wantAlert)
			}
			if !ok {
				return
			}
			if c.title != tt.wantTitle {
				t.Errorf("title = %q, want %q", c.title, tt.wantTitle)
			}
			if c.severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", c.severity, tt.wantSeverity)
			}
			if c.entityType != "Maintenance" {
				t.Errorf("entityType = %q, want Maintenance", c.entityType)
			}
		})
	}
}

package engine

import (
	"testing"

	"github.com/google/uuid"

	"butler-alert-service/internal/models"
)

func TestEvaluateDocument_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		daysOut   int
		wantAlert bool
		wantTitle string
	}{
		{name: "31 days out", daysOut: 31, wantAlert: false},
		{name: "30 days out", daysOut: 30, wantAlert: true, wantTitle: "Document Expiring Soon"},
		{name: "29 days out", daysOut: 29, wantAlert: false},
		{name: "7 days out", daysOut: 7, wantAlert: true, wantTitle: "Document Expiring This Week"},
		{name: "6 days out", daysOut: 6, wantAlert: false},
		{name: "today has no threshold", daysOut: 0, wantAlert: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := models.Document{ID: uuid.New(), Title: "Passport", ExpirationDate: date(tt.daysOut)}
			c, ok := evaluateDocument(d, testNow)
			if ok != tt.wantAlert {
				t.Fatalf("evaluateDocument() ok = %v, want %v", ok, tt.wantAlert)
			}
			if !ok {
				return
			}
			if c.title != tt.wantTitle {
				t.Errorf("title = %q, want %q", c.title, tt.wantTitle)
			}
			if c.entityType != "Document" {
				t.Errorf("entityType = %q, want Document", c.entityType)
			}
		})
	}
}

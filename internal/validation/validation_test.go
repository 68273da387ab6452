package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/botroom/internal/models"
)

func TestValidateDraft(t *testing.T) {
	valid := models.NewDraft()
	valid.Name = "Invoice Bot"
	valid.MachineName = "WKS-07"

	tests := []struct {
		name      string
		mutate    func(d *models.BotDraft)
		wantTypes []ConflictType
	}{
		{"valid draft", func(d *models.BotDraft) {}, nil},
		{"no days is still valid", func(d *models.BotDraft) { d.Days = 0 }, nil},
		{"blank name", func(d *models.BotDraft) { d.Name = "   " }, []ConflictType{ConflictMissingName}},
		{"blank machine", func(d *models.BotDraft) { d.MachineName = "" }, []ConflictType{ConflictMissingMachine}},
		{"unknown platform", func(d *models.BotDraft) { d.Platform = "Zapier" }, []ConflictType{ConflictUnknownPlatform}},
		{
			"fresh draft",
			func(d *models.BotDraft) { *d = models.NewDraft() },
			[]ConflictType{ConflictMissingName, ConflictMissingMachine},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			result := v.ValidateDraft(d)
			if len(result.Conflicts) != len(tt.wantTypes) {
				t.Fatalf("got %d conflicts (%v), want %d", len(result.Conflicts), result.Descriptions(), len(tt.wantTypes))
			}
			for i, want := range tt.wantTypes {
				if result.Conflicts[i].Type != want {
					t.Errorf("conflict %d type = %s, want %s", i, result.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	v := New()
	rec := models.BotRecord{ID: "1", Name: "A", MachineName: "M", Platform: models.PlatformBluePrism}
	if r := v.ValidateRecord(rec); r.HasConflicts() {
		t.Errorf("unexpected conflicts: %v", r.Descriptions())
	}

	rec.Name = ""
	if r := v.ValidateRecord(rec); !r.HasConflicts() {
		t.Error("expected a conflict for an empty name")
	}
}

func TestValidateRoster(t *testing.T) {
	bots := []models.BotRecord{
		{ID: "1", Name: "Invoice Bot", Schedule: models.ScheduleWindow{Start: "9:00 AM", End: "5:00 PM"}},
		{ID: "2", Name: "invoice bot ", Schedule: models.ScheduleWindow{Start: "9:00 AM", End: "5:00 PM"}},
		{ID: "3", Name: "Payroll", Schedule: models.ScheduleWindow{Start: "25:00", End: "5:00 PM"}},
	}

	result := New().ValidateRoster(bots)
	if len(result.Conflicts) != 2 {
		t.Fatalf("got %d conflicts, want 2: %v", len(result.Conflicts), result.Descriptions())
	}
	if result.Conflicts[0].Type != ConflictDuplicateBotName || len(result.Conflicts[0].BotIDs) != 2 {
		t.Errorf("first conflict = %+v, want duplicate name over 2 bots", result.Conflicts[0])
	}
	if result.Conflicts[1].Type != ConflictInvalidTime || result.Conflicts[1].BotIDs[0] != "3" {
		t.Errorf("second conflict = %+v, want invalid time for bot 3", result.Conflicts[1])
	}
	if !strings.Contains(result.FormatReport(), "Conflicts detected") {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestFormatReportEmpty(t *testing.T) {
	var r ValidationResult
	if got := r.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

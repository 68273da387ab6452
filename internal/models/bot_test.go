package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestRowRoundTrip(t *testing.T) {
	daySets := []WeekdaySet{
		NewWeekdaySet(),
		NewWeekdaySet(time.Monday, time.Wednesday, time.Friday),
		NewWeekdaySet(time.Sunday),
		EveryDay(),
	}

	for _, platform := range Platforms {
		for _, days := range daySets {
			rec := BotRecord{
				ID:          "bot-1",
				Name:        "Invoice Bot",
				MachineName: "WKS-07",
				Platform:    platform,
				Schedule: ScheduleWindow{
					Start: "9:00 AM",
					End:   "5:00 PM",
					Days:  days,
				},
			}

			got, err := FromRow(ToRow(rec))
			if err != nil {
				t.Fatalf("FromRow(ToRow(%+v)) failed: %v", rec, err)
			}
			if got != rec {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, rec)
			}
		}
	}
}

func TestToRowUsesWireNames(t *testing.T) {
	rec := BotRecord{
		ID:          "abc",
		Name:        "Invoice Bot",
		MachineName: "WKS-07",
		Platform:    PlatformUiPath,
		Schedule:    ScheduleWindow{Start: "9:00 AM", End: "5:00 PM", Days: NewWeekdaySet(time.Friday, time.Monday)},
	}

	data, err := json.Marshal(ToRow(rec))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"id", "name", "machine_name", "platform", "start_time", "end_time", "scheduled_days"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("wire row missing %q: %s", key, data)
		}
	}
	if len(fields) != 7 {
		t.Errorf("wire row has %d fields, want 7: %s", len(fields), data)
	}

	days := fields["scheduled_days"].([]any)
	if len(days) != 2 || days[0] != "Monday" || days[1] != "Friday" {
		t.Errorf("scheduled_days = %v, want [Monday Friday]", days)
	}
}

func TestFromRowRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		row  BotRow
	}{
		{"unknown platform", BotRow{ID: "1", Platform: "Zapier"}},
		{"unknown day", BotRow{ID: "1", Platform: string(PlatformUiPath), ScheduledDays: []string{"Caturday"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRow(tt.row); err == nil {
				t.Error("FromRow should fail")
			}
		})
	}
}

func TestFromRowAcceptsAbbreviatedDays(t *testing.T) {
	rec, err := FromRow(BotRow{ID: "1", Platform: "UiPath", ScheduledDays: []string{"Mon", "Wed", "Fri"}})
	if err != nil {
		t.Fatalf("FromRow failed: %v", err)
	}
	want := NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)
	if rec.Schedule.Days != want {
		t.Errorf("Days = %v, want %v", rec.Schedule.Days, want)
	}
}

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	if d.Name != "" || d.MachineName != "" {
		t.Errorf("fresh draft should have empty name and machine, got %+v", d)
	}
	if d.Platform != PlatformAutomationAnywhere {
		t.Errorf("Platform = %q, want first platform", d.Platform)
	}
	if d.Start != Midnight || d.End != Midnight {
		t.Errorf("fresh draft times = %s-%s, want midnight", d.Start, d.End)
	}
	if !d.Days.IsEmpty() {
		t.Errorf("fresh draft days = %v, want empty", d.Days)
	}
}

func TestDraftInsertRow(t *testing.T) {
	d := NewDraft()
	d.Name = "Invoice Bot"
	d.MachineName = "WKS-07"
	d.Platform = PlatformUiPath
	d.Start = ClockTime{9, 0, AM}
	d.End = ClockTime{5, 0, PM}
	d.ToggleDay(time.Monday)
	d.ToggleDay(time.Wednesday)
	d.ToggleDay(time.Friday)

	want := BotRow{
		Name:          "Invoice Bot",
		MachineName:   "WKS-07",
		Platform:      "UiPath",
		StartTime:     "9:00 AM",
		EndTime:       "5:00 PM",
		ScheduledDays: []string{"Monday", "Wednesday", "Friday"},
	}
	if got := d.InsertRow(); !reflect.DeepEqual(got, want) {
		t.Errorf("InsertRow() = %+v, want %+v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := BotRecord{ID: "1", Name: "A", Platform: PlatformBluePrism, Schedule: ScheduleWindow{Start: "1:00 AM", End: "2:00 AM"}}
	working := orig.Clone()

	working.Name = "B"
	working.ToggleDay(time.Tuesday)
	working.SetStart(ClockTime{3, 15, PM})

	if orig.Name != "A" || !orig.Schedule.Days.IsEmpty() || orig.Schedule.Start != "1:00 AM" {
		t.Errorf("mutating the clone changed the original: %+v", orig)
	}
	if working.Schedule.Start != "3:15 PM" {
		t.Errorf("SetStart stored %q, want 3:15 PM", working.Schedule.Start)
	}
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("  uipath ")
	if err != nil || p != PlatformUiPath {
		t.Errorf("ParsePlatform(uipath) = %q, %v", p, err)
	}
	if _, err := ParsePlatform("Zapier"); err == nil {
		t.Error("expected error for unknown platform")
	}
}

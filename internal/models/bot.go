package models

import (
	"fmt"
	"strings"
	"time"
)

type Platform string

const (
	PlatformAutomationAnywhere   Platform = "Automation Anywhere"
	PlatformBluePrism            Platform = "Blue Prism"
	PlatformPowerAutomateDesktop Platform = "Power Automate Desktop"
	PlatformUiPath               Platform = "UiPath"
	PlatformPowerAutomateCloud   Platform = "Power Automate Cloud"
)

// Platforms lists the supported automation platforms in display order.
// The first entry is the default for new drafts.
var Platforms = []Platform{
	PlatformAutomationAnywhere,
	PlatformBluePrism,
	PlatformPowerAutomateDesktop,
	PlatformUiPath,
	PlatformPowerAutomateCloud,
}

func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePlatform matches s against the supported platforms, ignoring case
// and surrounding whitespace.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// BotRecord is a committed bot. ID is assigned by the store.
type BotRecord struct {
	ID          string
	Name        string
	MachineName string
	Platform    Platform
	Schedule    ScheduleWindow
}

// Clone returns an independent copy of the record.
func (b BotRecord) Clone() BotRecord {
	return b
}

// SetStart replaces the start of the window with a freshly selected time.
func (b *BotRecord) SetStart(t ClockTime) {
	b.Schedule.Start = t.String()
}

// SetEnd replaces the end of the window with a freshly selected time.
func (b *BotRecord) SetEnd(t ClockTime) {
	b.Schedule.End = t.String()
}

// ToggleDay flips day in the record's schedule.
func (b *BotRecord) ToggleDay(day time.Weekday) {
	b.Schedule.Days = b.Schedule.Days.Toggle(day)
}

// BotDraft is an uncommitted bot being composed. It may be invalid until
// it is submitted.
type BotDraft struct {
	Name        string
	MachineName string
	Platform    Platform
	Start       ClockTime
	End         ClockTime
	Days        WeekdaySet
}

// NewDraft returns the initial empty draft.
func NewDraft() BotDraft {
	return BotDraft{
		Platform: Platforms[0],
		Start:    Midnight,
		End:      Midnight,
	}
}

// ToggleDay flips day in the draft's schedule.
func (d *BotDraft) ToggleDay(day time.Weekday) {
	d.Days = d.Days.Toggle(day)
}

// Window serializes the draft's schedule.
func (d BotDraft) Window() ScheduleWindow {
	return ScheduleWindow{
		Start: d.Start.String(),
		End:   d.End.String(),
		Days:  d.Days,
	}
}

// InsertRow returns the wire row sent to the store on create. It never
// carries an id.
func (d BotDraft) InsertRow() BotRow {
	return ToRow(BotRecord{
		Name:        d.Name,
		MachineName: d.MachineName,
		Platform:    d.Platform,
		Schedule:    d.Window(),
	})
}

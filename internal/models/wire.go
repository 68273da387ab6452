package models

import "fmt"

// BotRow is the wire shape of a bot as exchanged with the remote store.
type BotRow struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string   `json:"name" yaml:"name"`
	MachineName   string   `json:"machine_name" yaml:"machine_name"`
	Platform      string   `json:"platform" yaml:"platform"`
	StartTime     string   `json:"start_time" yaml:"start_time"`
	EndTime       string   `json:"end_time" yaml:"end_time"`
	ScheduledDays []string `json:"scheduled_days" yaml:"scheduled_days"`
}

// ToRow translates a record into its wire shape. Days are emitted as
// canonical labels in week order; an empty set is an empty, non-nil list.
func ToRow(b BotRecord) BotRow {
	return BotRow{
		ID:            b.ID,
		Name:          b.Name,
		MachineName:   b.MachineName,
		Platform:      string(b.Platform),
		StartTime:     b.Schedule.Start,
		EndTime:       b.Schedule.End,
		ScheduledDays: b.Schedule.Days.Labels(),
	}
}

// FromRow translates a wire row into a record. Unknown platforms or
// weekday labels are rejected.
func FromRow(r BotRow) (BotRecord, error) {
	platform := Platform(r.Platform)
	if !platform.Valid() {
		return BotRecord{}, fmt.Errorf("bot %s: unknown platform %q", r.ID, r.Platform)
	}
	days, err := ParseWeekdaySet(r.ScheduledDays)
	if err != nil {
		return BotRecord{}, fmt.Errorf("bot %s: %w", r.ID, err)
	}
	return BotRecord{
		ID:          r.ID,
		Name:        r.Name,
		MachineName: r.MachineName,
		Platform:    platform,
		Schedule: ScheduleWindow{
			Start: r.StartTime,
			End:   r.EndTime,
			Days:  days,
		},
	}, nil
}

// FromRows translates a list of rows, stopping at the first bad row.
func FromRows(rows []BotRow) ([]BotRecord, error) {
	records := make([]BotRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := FromRow(r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

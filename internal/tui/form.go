package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/botroom/internal/models"
)

// BotFormModel backs the add and edit forms. Times are picked from fixed
// hour, minute and period selectors so no free-text time is ever parsed.
type BotFormModel struct {
	Name     string
	Machine  string
	Platform models.Platform

	StartHour   int
	StartMinute int
	StartPeriod models.Meridiem
	EndHour     int
	EndMinute   int
	EndPeriod   models.Meridiem

	Days []time.Weekday

	// Reschedule gates time changes when editing.
	Reschedule bool
}

// minuteStep spaces the minute selector.
const minuteStep = 5

func formFromDraft(d models.BotDraft) *BotFormModel {
	return &BotFormModel{
		Name:        d.Name,
		Machine:     d.MachineName,
		Platform:    d.Platform,
		StartHour:   d.Start.Hour,
		StartMinute: d.Start.Minute,
		StartPeriod: d.Start.Period,
		EndHour:     d.End.Hour,
		EndMinute:   d.End.Minute,
		EndPeriod:   d.End.Period,
		Days:        d.Days.Days(),
	}
}

// formFromRecord prefills the selectors from the stored times when they
// read back cleanly, and from midnight otherwise.
func formFromRecord(b models.BotRecord) *BotFormModel {
	start := clockOrMidnight(b.Schedule.Start)
	end := clockOrMidnight(b.Schedule.End)
	return &BotFormModel{
		Name:        b.Name,
		Machine:     b.MachineName,
		Platform:    b.Platform,
		StartHour:   start.Hour,
		StartMinute: start.Minute,
		StartPeriod: start.Period,
		EndHour:     end.Hour,
		EndMinute:   end.Minute,
		EndPeriod:   end.Period,
		Days:        b.Schedule.Days.Days(),
	}
}

func clockOrMidnight(s string) models.ClockTime {
	t, err := models.ParseClockTime(s)
	if err != nil || t.Minute%minuteStep != 0 {
		return models.Midnight
	}
	return t
}

func (f *BotFormModel) Start() (models.ClockTime, error) {
	return models.NewClockTime(f.StartHour, f.StartMinute, f.StartPeriod)
}

func (f *BotFormModel) End() (models.ClockTime, error) {
	return models.NewClockTime(f.EndHour, f.EndMinute, f.EndPeriod)
}

func (f *BotFormModel) DaySet() models.WeekdaySet {
	return models.NewWeekdaySet(f.Days...)
}

func hourOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 12)
	for _, h := range []int{12, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11} {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", h), h))
	}
	return opts
}

func minuteOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 60/minuteStep)
	for m := 0; m < 60; m += minuteStep {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%02d", m), m))
	}
	return opts
}

func periodOptions() []huh.Option[models.Meridiem] {
	return huh.NewOptions(models.AM, models.PM)
}

func platformOptions() []huh.Option[models.Platform] {
	return huh.NewOptions(models.Platforms...)
}

func dayOptions() []huh.Option[time.Weekday] {
	opts := make([]huh.Option[time.Weekday], len(models.WeekOrder))
	for i, d := range models.WeekOrder {
		opts[i] = huh.NewOption(d.String(), d)
	}
	return opts
}

func timeFields(title string, hour, minute *int, period *models.Meridiem) []huh.Field {
	return []huh.Field{
		huh.NewSelect[int]().Title(title + " hour").Options(hourOptions()...).Value(hour),
		huh.NewSelect[int]().Title(title + " minute").Options(minuteOptions()...).Value(minute),
		huh.NewSelect[models.Meridiem]().Title(title + " period").Options(periodOptions()...).Value(period),
	}
}

// NewBotForm builds the add form, or the edit form when editing is set.
// The edit form only shows the time selectors after the operator opts in
// to rescheduling.
func NewBotForm(fm *BotFormModel, editing bool) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Machine").
				Value(&fm.Machine),
			huh.NewSelect[models.Platform]().
				Title("Platform").
				Options(platformOptions()...).
				Value(&fm.Platform),
		),
	}

	if editing {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Reschedule start and end times?").
				Value(&fm.Reschedule),
		))
	}

	times := append(timeFields("Start", &fm.StartHour, &fm.StartMinute, &fm.StartPeriod),
		timeFields("End", &fm.EndHour, &fm.EndMinute, &fm.EndPeriod)...)
	timeGroup := huh.NewGroup(times...)
	if editing {
		timeGroup = timeGroup.WithHideFunc(func() bool { return !fm.Reschedule })
	}
	groups = append(groups, timeGroup)

	groups = append(groups, huh.NewGroup(
		huh.NewMultiSelect[time.Weekday]().
			Title("Scheduled days").
			Options(dayOptions()...).
			Value(&fm.Days),
	))

	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

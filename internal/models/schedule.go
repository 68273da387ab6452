package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekOrder lists weekdays in the order they are shown to operators.
var WeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a weekday label. Full names, common abbreviations and
// digits 0-6 (0=Sunday) are accepted, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[key]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

// WeekdaySet is a set of weekdays stored as a 7-bit mask, one bit per
// time.Weekday. The zero value is the empty set.
type WeekdaySet uint8

const allDays WeekdaySet = 1<<7 - 1

// NewWeekdaySet builds a set from the given days. Repeated days collapse.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= bit(d)
	}
	return s
}

// EveryDay returns the set containing all seven weekdays.
func EveryDay() WeekdaySet { return allDays }

// ParseWeekdaySet parses a list of weekday labels into a set.
func ParseWeekdaySet(labels []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, l := range labels {
		wd, err := ParseWeekday(l)
		if err != nil {
			return 0, err
		}
		s |= bit(wd)
	}
	return s, nil
}

// ParseWeekdayList parses a comma-separated list of weekday labels.
// An empty string yields the empty set.
func ParseWeekdayList(s string) (WeekdaySet, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return ParseWeekdaySet(strings.Split(s, ","))
}

func bit(d time.Weekday) WeekdaySet {
	return 1 << (uint(d) % 7)
}

// Toggle removes day if present, otherwise adds it.
func (s WeekdaySet) Toggle(day time.Weekday) WeekdaySet {
	return s ^ bit(day)
}

// Has reports whether day is in the set.
func (s WeekdaySet) Has(day time.Weekday) bool {
	return s&bit(day) != 0
}

func (s WeekdaySet) Len() int {
	n := 0
	for _, d := range WeekOrder {
		if s.Has(d) {
			n++
		}
	}
	return n
}

func (s WeekdaySet) IsEmpty() bool { return s&allDays == 0 }

// Days returns the members in week order, Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for _, d := range WeekOrder {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// TogglesTo returns the days that must be toggled, in week order, to turn
// s into want.
func (s WeekdaySet) TogglesTo(want WeekdaySet) []time.Weekday {
	return (s ^ want).Days()
}

// Labels returns the canonical full weekday names in week order.
func (s WeekdaySet) Labels() []string {
	days := s.Days()
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.String()
	}
	return labels
}

// String returns abbreviated day names, e.g. "Mon,Wed,Fri", or "none".
func (s WeekdaySet) String() string {
	if s.IsEmpty() {
		return "none"
	}
	if s&allDays == allDays {
		return "every day"
	}
	days := s.Days()
	short := make([]string, len(days))
	for i, d := range days {
		short[i] = d.String()[:3]
	}
	return strings.Join(short, ",")
}

// Meridiem is the AM/PM half of a 12-hour clock time.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// ClockTime is a 12-hour wall-clock time without a timezone.
type ClockTime struct {
	Hour   int
	Minute int
	Period Meridiem
}

// Midnight is the default start and end of a fresh draft.
var Midnight = ClockTime{Hour: 12, Minute: 0, Period: AM}

// NewClockTime returns a ClockTime after range-checking its parts.
func NewClockTime(hour, minute int, period Meridiem) (ClockTime, error) {
	if hour < 1 || hour > 12 {
		return ClockTime{}, fmt.Errorf("hour must be between 1 and 12, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("minute must be between 0 and 59, got %d", minute)
	}
	switch period {
	case AM, PM:
	default:
		return ClockTime{}, fmt.Errorf("period must be AM or PM, got %q", period)
	}
	return ClockTime{Hour: hour, Minute: minute, Period: period}, nil
}

// ParseClockTime parses operator input such as "9:00 AM", "09:30pm" or
// "12:05 AM".
func ParseClockTime(s string) (ClockTime, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	var period Meridiem
	switch {
	case strings.HasSuffix(raw, string(AM)):
		period = AM
	case strings.HasSuffix(raw, string(PM)):
		period = PM
	default:
		return ClockTime{}, fmt.Errorf("invalid time %q (expected H:MM AM|PM)", s)
	}
	clock := strings.TrimSpace(strings.TrimSuffix(raw, string(period)))
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time %q (expected H:MM AM|PM)", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return NewClockTime(hour, minute, period)
}

// String renders the canonical wire form: hour unpadded, minute two digits.
func (c ClockTime) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour, c.Minute, c.Period)
}

// MinutesFromMidnight converts the time to a 24-hour offset in minutes.
func (c ClockTime) MinutesFromMidnight() int {
	h := c.Hour % 12
	if c.Period == PM {
		h += 12
	}
	return h*60 + c.Minute
}

// ScheduleWindow is the committed recurring run window of a bot. Start and
// End hold canonical ClockTime text and are carried as-is once stored.
// End is allowed to precede Start (overnight windows).
type ScheduleWindow struct {
	Start string
	End   string
	Days  WeekdaySet
}

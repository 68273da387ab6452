package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/botroom/internal/models"
)

// ErrNeverRuns is returned by NextStart for a window with no scheduled days.
var ErrNeverRuns = errors.New("bot has no scheduled days")

// Scheduler answers read-only questions about run windows. It never
// starts or dispatches anything.
type Scheduler struct {
	parser cron.Parser
}

func New() *Scheduler {
	return &Scheduler{
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

type window struct {
	start int // minutes from midnight
	end   int
	days  models.WeekdaySet
}

func parseWindow(w models.ScheduleWindow) (window, error) {
	start, err := models.ParseClockTime(w.Start)
	if err != nil {
		return window{}, fmt.Errorf("start time: %w", err)
	}
	end, err := models.ParseClockTime(w.End)
	if err != nil {
		return window{}, fmt.Errorf("end time: %w", err)
	}
	return window{
		start: start.MinutesFromMidnight(),
		end:   end.MinutesFromMidnight(),
		days:  w.Days,
	}, nil
}

// CronSpec renders the opening of w as a five-field cron expression,
// e.g. "0 9 * * 1,3,5".
func (s *Scheduler) CronSpec(w models.ScheduleWindow) (string, error) {
	win, err := parseWindow(w)
	if err != nil {
		return "", err
	}
	if win.days.IsEmpty() {
		return "", ErrNeverRuns
	}
	dow := make([]string, 0, win.days.Len())
	for _, d := range win.days.Days() {
		dow = append(dow, strconv.Itoa(int(d)))
	}
	return fmt.Sprintf("%d %d * * %s", win.start%60, win.start/60, strings.Join(dow, ",")), nil
}

// NextStart returns the first time strictly after now at which w opens,
// in now's location.
func (s *Scheduler) NextStart(w models.ScheduleWindow, now time.Time) (time.Time, error) {
	spec, err := s.CronSpec(w)
	if err != nil {
		return time.Time{}, err
	}
	sched, err := s.parser.Parse(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return sched.Next(now), nil
}

// ActiveAt reports whether now falls inside w. A window whose end is
// earlier than its start runs overnight and belongs to the day it opened.
// Equal start and end is an empty window.
func (s *Scheduler) ActiveAt(w models.ScheduleWindow, now time.Time) (bool, error) {
	win, err := parseWindow(w)
	if err != nil {
		return false, err
	}
	minute := now.Hour()*60 + now.Minute()
	today := now.Weekday()
	yesterday := (today + 6) % 7

	switch {
	case win.start == win.end:
		return false, nil
	case win.start < win.end:
		return win.days.Has(today) && minute >= win.start && minute < win.end, nil
	default:
		if win.days.Has(today) && minute >= win.start {
			return true, nil
		}
		return win.days.Has(yesterday) && minute < win.end, nil
	}
}

// Status is a one-line summary of a bot's window relative to a moment.
type Status struct {
	Active    bool
	NextStart time.Time // zero when the bot never runs
	Err       error
}

func (st Status) String() string {
	switch {
	case st.Err != nil && errors.Is(st.Err, ErrNeverRuns):
		return "never runs"
	case st.Err != nil:
		return "unreadable schedule"
	case st.Active:
		return "running window open"
	default:
		return "next " + st.NextStart.Format("Mon 3:04 PM")
	}
}

// StatusAt summarizes b's window at now.
func (s *Scheduler) StatusAt(b models.BotRecord, now time.Time) Status {
	active, err := s.ActiveAt(b.Schedule, now)
	if err != nil {
		return Status{Err: err}
	}
	next, err := s.NextStart(b.Schedule, now)
	if err != nil {
		return Status{Active: active, Err: err}
	}
	return Status{Active: active, NextStart: next}
}

// Package scheduler runs digest generation on cron schedules, one
// named entry per report type.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron-based digest runs.
type Scheduler struct {
	cron     *cron.Cron
	mu       sync.Mutex
	entries  map[string]cron.EntryID
	location *time.Location
}

// New creates a Scheduler in the given timezone.
func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		entries:  make(map[string]cron.EntryID),
		location: loc,
	}, nil
}

// Schedule registers task to run daily at the given time (HH:MM) under
// name. Scheduling an existing name replaces its previous entry.
func (s *Scheduler) Schedule(name, at string, task func()) error {
	return s.schedule(name, at, "%d %d * * *", task)
}

// ScheduleWeekly registers task to run every Monday at the given time
// (HH:MM) under name.
func (s *Scheduler) ScheduleWeekly(name, at string, task func()) error {
	return s.schedule(name, at, "%d %d * * 1", task)
}

func (s *Scheduler) schedule(name, at, exprFormat string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hour, minute, err := parseTime(at)
	if err != nil {
		return err
	}

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
	}

	expr := fmt.Sprintf(exprFormat, minute, hour)
	id, err := s.cron.AddFunc(expr, task)
	if err != nil {
		return fmt.Errorf("adding cron entry %q: %w", name, err)
	}

	s.entries[name] = id
	slog.Info("run scheduled", "name", name, "time", at, "cron", expr, "timezone", s.location.String())
	return nil
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// parseTime extracts hour and minute from HH:MM format.
func parseTime(t string) (int, int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", t)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", t)
		}
	}

	hour := (int(t[0]-'0') * 10) + int(t[1]-'0')
	minute := (int(t[3]-'0') * 10) + int(t[4]-'0')

	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: hour 0-23, minute 0-59", t)
	}

	return hour, minute, nil
}

package server

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitflow/internal/logger"
)

// Scheduler runs background jobs while the server is up.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler interprets cron specs in loc.
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// BackupFunc creates one backup and returns its path.
type BackupFunc func() (string, error)

// ScheduleBackup registers backup to run on the five-field cron spec.
func (s *Scheduler) ScheduleBackup(spec string, backup BackupFunc) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		path, err := backup()
		if err != nil {
			logger.Warn("Scheduled backup failed", "error", err)
			return
		}
		logger.Info("Scheduled backup created", "path", path)
	})
	if err != nil {
		return 0, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return id, nil
}

// Next returns the next run time of entry id, or the zero time when unknown.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

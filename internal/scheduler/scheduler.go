package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/hanzitutor/internal/backup"
)

// Backuper runs one backup and reports the snapshot it produced
type Backuper interface {
	Run() (*backup.Snapshot, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	backuper  Backuper
	interval  time.Duration
}

// New creates a scheduler that backs up the database every interval
func New(backuper Backuper, intervalHours int) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		backuper:  backuper,
		interval:  time.Duration(intervalHours) * time.Hour,
	}
}

// Start begins running all scheduled tasks in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(s.interval).Do(s.runBackup)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runBackup performs one automatic backup
func (s *Scheduler) runBackup() {
	snapshot, err := s.backuper.Run()
	if err != nil {
		log.Printf("Error running scheduled backup: %v", err)
		return
	}
	log.Printf("Scheduled backup written: %s (%d bytes)", snapshot.Name, snapshot.Size)
}

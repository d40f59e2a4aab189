// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultRetentionDays = 30
	cleanupTimeout       = 2 * time.Minute
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditCleanupScheduler periodically removes audit events older than the retention window.
type AuditCleanupScheduler struct {
	cleaner       AuditEventCleaner
	schedule      string
	retentionDays int
	logger        *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(cleaner AuditEventCleaner, schedule string, retentionDays int, logger *zap.Logger) *AuditCleanupScheduler {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditCleanupScheduler{
		cleaner:       cleaner,
		schedule:      schedule,
		retentionDays: retentionDays,
		logger:        logger,
		cron:          cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the cleanup job and starts the cron loop.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("audit cleanup scheduler started",
		zap.String("schedule", s.schedule),
		zap.Int("retention_days", s.retentionDays),
		zap.Time("next_run", s.cron.Entry(entryID).Next),
	)
	return nil
}

// Stop waits for a running cleanup to finish and stops the cron loop.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.logger.Info("audit cleanup scheduler stopped")
}

// RunNow performs a cleanup immediately and returns the number of deleted events.
func (s *AuditCleanupScheduler) RunNow() (int64, error) {
	return s.cleanup()
}

func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur, or nil when stopped.
func (s *AuditCleanupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *AuditCleanupScheduler) runCleanup() {
	if _, err := s.cleanup(); err != nil {
		s.logger.Error("audit cleanup failed", zap.Error(err))
	}
}

func (s *AuditCleanupScheduler) cleanup() (int64, error) {
	if s.cleaner == nil {
		return 0, fmt.Errorf("audit event cleaner not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	retention := time.Duration(s.retentionDays) * 24 * time.Hour
	deleted, err := s.cleaner.DeleteOldEvents(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("cleanup audit events: %w", err)
	}

	s.logger.Info("cleaned up audit events",
		zap.Int64("deleted", deleted),
		zap.Int("retention_days", s.retentionDays),
	)
	return deleted, nil
}

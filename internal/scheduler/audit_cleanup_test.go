package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCleaner struct {
	retention time.Duration
	calls     int
	deleted   int64
	err       error
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.calls++
	f.retention = retention
	return f.deleted, f.err
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 4}
	s := NewAuditCleanupScheduler(cleaner, "0 3 * * *", 7, zap.NewNop())

	deleted, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, 1, cleaner.calls)
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)
}

func TestAuditCleanupScheduler_DefaultRetention(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(cleaner, "0 3 * * *", 0, nil)

	_, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cleaner.retention)
}

func TestAuditCleanupScheduler_RunNowError(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db down")}
	s := NewAuditCleanupScheduler(cleaner, "0 3 * * *", 30, zap.NewNop())

	_, err := s.RunNow()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeCleaner{}, "0 3 * * *", 30, zap.NewNop())

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	next := s.NextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeCleaner{}, "not a schedule", 30, zap.NewNop())

	err := s.Start()
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

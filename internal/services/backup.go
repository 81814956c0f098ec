package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupScheduler periodically writes export snapshots so the only copy of
// the dataset never lives solely in one Bolt file.
type BackupScheduler struct {
	exporter *Exporter
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewBackupScheduler(exporter *Exporter, interval time.Duration, logger *zap.Logger) *BackupScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bs := &BackupScheduler{
		exporter: exporter,
		logger:   logger,
		cron:     cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = bs.cron.AddFunc(schedule, func() {
		if _, err := bs.exporter.Export(); err != nil {
			bs.logger.Error("scheduled backup failed", zap.Error(err))
		}
	})

	return bs
}

// Start launches the cron scheduler.
func (bs *BackupScheduler) Start() {
	if bs == nil || bs.cron == nil {
		return
	}
	bs.cron.Start()
	bs.logger.Info("backup scheduler started")
}

// Stop waits for an in-flight backup to finish, bounded by ctx.
func (bs *BackupScheduler) Stop(ctx context.Context) {
	if bs == nil || bs.cron == nil {
		return
	}
	stopCtx := bs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bs.logger.Info("backup scheduler stopped")
}

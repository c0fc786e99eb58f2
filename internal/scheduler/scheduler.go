package scheduler

import (
	"context"
	"log/slog"
	"time"

	"readinglog/internal/domain"
)

// Exporter defines the interface for backup runs.
type Exporter interface {
	Export(ctx context.Context) (*domain.BackupStats, error)
}

type Scheduler struct {
	exporter Exporter
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(exporter Exporter, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("backup scheduler started", "interval", s.interval)

	s.runExport(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("backup scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runExport(ctx)
		}
	}
}

func (s *Scheduler) runExport(ctx context.Context) {
	exportCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := s.exporter.Export(exportCtx); err != nil {
		s.logger.Error("backup failed", "error", err)
	}
}

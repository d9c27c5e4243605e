// Package scheduler は total_score のキャッシュを定期的に進捗から再計算します。
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Recalculator は total_score の再計算を行うもの (service.ProgressService が実装)
type Recalculator interface {
	RecalculateTotals(ctx context.Context) (int, error)
}

// Scheduler は gocron で再計算ジョブを回します
type Scheduler struct {
	scheduler *gocron.Scheduler
	recalc    Recalculator
	interval  time.Duration
	logger    *slog.Logger
}

func New(recalc Recalculator, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		recalc:    recalc,
		interval:  interval,
		logger:    logger,
	}
}

// Start はジョブを登録して非同期に実行を開始します。初回は即時に走ります
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.RunOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("Reconcile scheduler started", slog.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Reconcile scheduler stopped")
}

// RunOnce は再計算を1回だけ実行します
func (s *Scheduler) RunOnce() {
	started := time.Now()
	updated, err := s.recalc.RecalculateTotals(context.Background())
	if err != nil {
		s.logger.Error("Total score reconciliation failed", slog.Any("error", err), slog.Int("updated", updated))
		return
	}
	s.logger.Info("Total score reconciliation finished", slog.Int("updated", updated), slog.Duration("elapsed", time.Since(started)))
}

// Package workers runs the background jobs: the snapshot refresh
// sweeper that recomputes portfolios flagged by override mutations.
package workers

import (
	"context"
	"time"

	"folio/internal/logger"
	"folio/internal/repositories"
	"folio/internal/services/portfolio"

	"github.com/go-co-op/gocron/v2"
)

const (
	sweepInterval = time.Minute
	sweepBatch    = 25
)

// RefreshWorker sweeps snapshots flagged needs_refresh and recomputes
// them through the portfolio service.
type RefreshWorker struct {
	snapshots repositories.SnapshotRepository
	portfolio portfolio.Service
	scheduler gocron.Scheduler
}

func NewRefreshWorker(snapshots repositories.SnapshotRepository, svc portfolio.Service) *RefreshWorker {
	return &RefreshWorker{
		snapshots: snapshots,
		portfolio: svc,
	}
}

// Start schedules the sweep and begins running it.
func (w *RefreshWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(w.sweep),
	)
	if err != nil {
		return err
	}

	sched.Start()
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep.
func (w *RefreshWorker) Stop() {
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			logger.GetLogger().WithError(err).Warn("scheduler shutdown failed")
		}
	}
}

func (w *RefreshWorker) sweep() {
	log := logger.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), sweepInterval)
	defer cancel()

	flagged, err := w.snapshots.ListNeedsRefresh(ctx, sweepBatch)
	if err != nil {
		log.WithError(err).Warn("refresh sweep: listing flagged snapshots failed")
		return
	}
	if len(flagged) == 0 {
		return
	}

	log.WithField("count", len(flagged)).Info("refresh sweep: recomputing snapshots")
	for _, snapshot := range flagged {
		if err := w.portfolio.RefreshSnapshot(ctx, snapshot); err != nil {
			log.WithError(err).WithField("wallet", snapshot.WalletAddress).
				Warn("refresh sweep: snapshot refresh failed")
		}
	}
}

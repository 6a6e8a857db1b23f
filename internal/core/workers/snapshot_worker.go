package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

type SnapshotSaver interface {
	Save(ctx context.Context, period string) (*domain.Snapshot, error)
}

// SnapshotJob asks for one period to be re-scored and saved. An empty
// period means the current month.
type SnapshotJob struct {
	Period string
}

// SnapshotWorker keeps the snapshot history fresh in the background:
// on every tick it saves the current month, and it also serves queued
// jobs for other periods.
type SnapshotWorker struct {
	saver    SnapshotSaver
	interval time.Duration
	jobs     chan SnapshotJob
	done     chan struct{}
}

func NewSnapshotWorker(saver SnapshotSaver, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		saver:    saver,
		interval: interval,
		jobs:     make(chan SnapshotJob, 100),
		done:     make(chan struct{}),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		log.Println("[SNAPSHOT] Worker started in background...")

		// A nil channel never fires, so interval 0 only serves jobs.
		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				w.processJob(ctx, SnapshotJob{})
			case <-ctx.Done():
				log.Println("[SNAPSHOT] Worker shutting down...")
				return
			}
		}
	}()
}

// Done is closed once the worker loop has returned.
func (w *SnapshotWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks; it reports false when the queue is full and the
// job was dropped.
func (w *SnapshotWorker) Enqueue(period string) bool {
	select {
	case w.jobs <- SnapshotJob{Period: period}:
		return true
	default:
		log.Printf("[SNAPSHOT] Queue full! Dropping job for period %q", period)
		return false
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job SnapshotJob) {
	if _, err := w.saver.Save(ctx, job.Period); err != nil {
		log.Printf("[SNAPSHOT] Worker failed to save period %q: %v", job.Period, err)
	}
}

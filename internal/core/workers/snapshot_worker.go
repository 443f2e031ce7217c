package workers

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
	"github.com/comitanigiacomo/kanso-routines/internal/observability"
)

type SnapshotSource interface {
	Export() domain.Snapshot
}

const DefaultSaveTimeout = 10 * time.Second

// SnapshotWorker persists the store in the background. Notifications arriving while a
// save is pending collapse into one, and each save exports the latest state.
type SnapshotWorker struct {
	source      SnapshotSource
	repo        domain.SnapshotRepository
	jobs        chan struct{}
	done        chan struct{}
	saveTimeout time.Duration

	mu sync.Mutex
}

func NewSnapshotWorker(source SnapshotSource, repo domain.SnapshotRepository) *SnapshotWorker {
	return &SnapshotWorker{
		source:      source,
		repo:        repo,
		jobs:        make(chan struct{}, 1),
		done:        make(chan struct{}),
		saveTimeout: DefaultSaveTimeout,
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		logger.Debug("Snapshot worker started")
		for {
			select {
			case <-w.jobs:
				if err := w.save(ctx); err != nil {
					logger.Error("Snapshot save failed, will retry on next change", "err", err)
				}
			case <-ctx.Done():
				logger.Debug("Snapshot worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks. A save already queued covers this change too.
func (w *SnapshotWorker) Enqueue() {
	select {
	case w.jobs <- struct{}{}:
	default:
	}
}

// Done is closed once the worker goroutine has returned.
func (w *SnapshotWorker) Done() <-chan struct{} {
	return w.done
}

// Flush writes the current state synchronously.
func (w *SnapshotWorker) Flush(ctx context.Context) error {
	return w.save(ctx)
}

func (w *SnapshotWorker) save(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	started := time.Now()
	snap := w.source.Export()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.saveTimeout)
	defer cancel()

	err := w.repo.Save(saveCtx, &snap)
	observability.RecordSnapshotSave(started, err)
	if err == nil {
		logger.Debug("Snapshot saved", "routines", len(snap.Routines), "habits", len(snap.Habits))
	}
	return err
}

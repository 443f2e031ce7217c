package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/workers"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
)

// Session ties one store to its snapshot repository and background writer.
type Session struct {
	Store     *TrackingStore
	Analytics *AnalyticsService

	repo   domain.SnapshotRepository
	worker *workers.SnapshotWorker
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// OpenSession loads the last snapshot (a missing one starts empty), imports it and starts
// the writer. Changes made after this call are persisted in the background.
func OpenSession(ctx context.Context, store *TrackingStore, repo domain.SnapshotRepository) (*Session, error) {
	snap, err := repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		logger.Info("No snapshot found, starting with an empty store")
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		if err := store.Import(*snap); err != nil {
			return nil, fmt.Errorf("import snapshot: %w", err)
		}
		logger.Info("Snapshot loaded", "routines", len(snap.Routines), "habits", len(snap.Habits))
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	worker := workers.NewSnapshotWorker(store, repo)
	worker.Start(workerCtx)
	store.SetNotifier(worker)

	return &Session{
		Store:     store,
		Analytics: NewAnalyticsService(store),
		repo:      repo,
		worker:    worker,
		cancel:    cancel,
	}, nil
}

// Close stops the writer and flushes the final state. Calling it again returns the first result.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.Store.SetNotifier(nil)
		s.cancel()
		<-s.worker.Done()

		if err := s.worker.Flush(ctx); err != nil {
			s.closeErr = fmt.Errorf("final snapshot flush: %w", err)
			return
		}
		logger.Info("Session closed")
	})
	return s.closeErr
}

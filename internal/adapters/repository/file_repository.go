package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/codec"
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/gofrs/flock"
)

var _ domain.SnapshotRepository = (*FileSnapshotRepository)(nil)

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// FileSnapshotRepository keeps the snapshot in a single file guarded by a sibling .lock
// file, so a CLI and a server pointed at the same directory never interleave writes.
type FileSnapshotRepository struct {
	path     string
	format   codec.Format
	fileLock *flock.Flock

	mu sync.Mutex
}

// NewFileSnapshotRepository encodes as YAML for .yaml/.yml paths and JSON otherwise.
func NewFileSnapshotRepository(path string) *FileSnapshotRepository {
	return &FileSnapshotRepository{
		path:     path,
		format:   codec.FormatFromPath(path),
		fileLock: flock.New(path + ".lock"),
	}
}

func (r *FileSnapshotRepository) Path() string {
	return r.path
}

func (r *FileSnapshotRepository) lock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := r.fileLock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", r.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock on %s", r.path)
	}
	return func() { _ = r.fileLock.Unlock() }, nil
}

func (r *FileSnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}

	unlock, err := r.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrSnapshotNotFound
	}

	return codec.Unmarshal(data, r.format)
}

// Save writes to a temp file and renames it over the snapshot.
func (r *FileSnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := codec.Marshal(snap, r.format)
	if err != nil {
		return err
	}

	unlock, err := r.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tmpFile := r.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, r.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	return nil
}

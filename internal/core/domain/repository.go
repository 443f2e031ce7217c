package domain

import (
	"context"
	"errors"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SnapshotRepository interface {
	// Load returns the last saved snapshot, or ErrSnapshotNotFound when nothing was saved yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot *Snapshot) error
}

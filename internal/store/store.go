// Package store defines the snapshot persistence port for the calculator.
// Implementations include PostgreSQL (source of truth), Redis (read-through
// cache), and in-memory (for testing and storage-less deployments).
package store

import (
	"context"
	"errors"

	"github.com/covercall/calc-engine/internal/model"
)

// ErrSnapshotNotFound is returned when no snapshot exists under the given id.
var ErrSnapshotNotFound = errors.New("store: snapshot not found")

// Store is the persistence interface for input snapshots. Implementations
// must be safe for concurrent use.
type Store interface {
	// SaveSnapshot inserts or replaces the snapshot under its id.
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error

	// GetSnapshot retrieves a snapshot by id. Malformed stored inputs are
	// repaired field-by-field, never rejected wholesale.
	GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error)

	// ListSnapshots returns all snapshots, most recently updated first.
	ListSnapshots(ctx context.Context) ([]model.Snapshot, error)

	// DeleteSnapshot removes a snapshot by id.
	DeleteSnapshot(ctx context.Context, id string) error
}

package driven

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// SnapshotStore persists the retrieval snapshot of the last pipeline run.
// The snapshot is derived data; it is never read to answer a recommendation.
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load reads the last snapshot.
	// Returns domain.ErrSnapshotNotFound when none has been written.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Path returns where the snapshot lives.
	Path() string
}
